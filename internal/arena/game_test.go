package arena

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-arena/internal/core"
)

// scriptInput builds the intent frame for tick i of the determinism script:
// circling movement with periodic lights and dashes, plus blind menu picks so
// drafts and offers never stall the run.
func scriptInput(i int) core.Input {
	in := core.NewInput()
	switch (i / 45) % 4 {
	case 0:
		in.Right = true
	case 1:
		in.Down = true
	case 2:
		in.Left = true
	default:
		in.Up = true
	}
	if i%7 == 0 {
		in.Light = true
	}
	if i%180 == 0 {
		in.Dash = true
	}
	if i%11 == 0 {
		in.MutatorChoice = 0
	}
	if i%13 == 0 {
		in.EventAccept = true
	}
	return in
}

func runScripted(seed int64, ticks int) *Game {
	g := New(testCfg(), core.NewSeededRand(seed))
	for i := 0; i < ticks; i++ {
		g.Step(scriptInput(i), testDt)
		if g.CurrentPhase() == PhaseGameOver {
			break
		}
	}
	return g
}

func TestGameDeterminism(t *testing.T) {
	const ticks = 60 * 30
	g1 := runScripted(42, ticks)
	g2 := runScripted(42, ticks)

	if g1.Score != g2.Score {
		t.Errorf("scores diverged: %d vs %d", g1.Score, g2.Score)
	}
	if g1.Wave != g2.Wave {
		t.Errorf("waves diverged: %d vs %d", g1.Wave, g2.Wave)
	}
	if g1.Player.Pos != g2.Player.Pos {
		t.Errorf("player positions diverged: %+v vs %+v", g1.Player.Pos, g2.Player.Pos)
	}
	if g1.Player.HP != g2.Player.HP {
		t.Errorf("player HP diverged: %v vs %v", g1.Player.HP, g2.Player.HP)
	}
	if len(g1.Enemies) != len(g2.Enemies) {
		t.Fatalf("enemy counts diverged: %d vs %d", len(g1.Enemies), len(g2.Enemies))
	}
	for i := range g1.Enemies {
		if g1.Enemies[i].Pos != g2.Enemies[i].Pos {
			t.Errorf("enemy %d positions diverged", i)
		}
	}
}

func TestGameSeedsDiverge(t *testing.T) {
	const ticks = 60 * 20
	g1 := runScripted(1, ticks)
	g2 := runScripted(2, ticks)

	same := g1.Score == g2.Score && g1.Player.Pos == g2.Player.Pos &&
		len(g1.Enemies) == len(g2.Enemies)
	if same {
		t.Error("different seeds produced identical runs")
	}
}

func TestDailySameDateSameRun(t *testing.T) {
	run := func() *Game {
		g := NewDaily(testCfg(), "2026-08-30")
		for i := 0; i < 60*15; i++ {
			g.Step(scriptInput(i), testDt)
			if g.CurrentPhase() == PhaseGameOver {
				break
			}
		}
		return g
	}
	g1, g2 := run(), run()
	if g1.Score != g2.Score || g1.Player.Pos != g2.Player.Pos || g1.Wave != g2.Wave {
		t.Error("same daily date produced different runs")
	}
	if !g1.Daily || g1.DailyDate != "2026-08-30" {
		t.Errorf("daily metadata = %v %q", g1.Daily, g1.DailyDate)
	}
}

func TestGameStartsOnWaveOne(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	if g.Wave != 1 {
		t.Errorf("starting wave = %d, want 1", g.Wave)
	}
	if g.CurrentPhase() != PhaseRunning {
		t.Errorf("starting phase = %v, want running", g.CurrentPhase())
	}
	if len(g.Enemies) == 0 {
		t.Error("wave 1 spawned no enemies")
	}
	if g.ContractStatus != ContractActive {
		t.Errorf("starting contract status = %v, want active", g.ContractStatus)
	}
}

func TestWaveClearOpensDraft(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))

	// Execute everything instantly and let the wave settle.
	for _, e := range g.Enemies {
		e.Alive = false
	}
	for i := 0; i < 60*3 && g.CurrentPhase() == PhaseRunning; i++ {
		g.Step(core.NewInput(), testDt)
	}

	if ph := g.CurrentPhase(); ph != PhaseMutatorSelect {
		t.Fatalf("phase after clear = %v, want mutator select", ph)
	}
	if len(g.MutatorOffer) == 0 {
		t.Fatal("draft opened with no choices")
	}

	// Picking advances to wave 2.
	in := core.NewInput()
	in.MutatorChoice = 0
	g.Step(in, testDt)

	if g.Wave != 2 {
		t.Errorf("wave after pick = %d, want 2", g.Wave)
	}
	if len(g.ActiveMutators()) != 1 {
		t.Errorf("active mutators = %d, want 1", len(g.ActiveMutators()))
	}
}

func TestDraftIgnoresOutOfRangeChoice(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	for _, e := range g.Enemies {
		e.Alive = false
	}
	for i := 0; i < 60*3 && g.CurrentPhase() == PhaseRunning; i++ {
		g.Step(core.NewInput(), testDt)
	}
	if g.CurrentPhase() != PhaseMutatorSelect {
		t.Skip("no draft opened")
	}

	in := core.NewInput()
	in.MutatorChoice = 99
	g.Step(in, testDt)
	if g.CurrentPhase() != PhaseMutatorSelect {
		t.Error("invalid choice index closed the draft")
	}
}

func TestMutatorPickRaisesMaxHP(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	g.Player.HP = 50

	m, _ := MutatorByID("conditioning") // +20 max HP
	g.applyMutator(m)

	if g.Player.MaxHP != 120 {
		t.Errorf("max HP = %v, want 120", g.Player.MaxHP)
	}
	// The gained maximum is also granted as current HP.
	if g.Player.HP != 70 {
		t.Errorf("HP = %v, want 70", g.Player.HP)
	}
}

func TestContractFailurePenaltyDropsHP(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	g.Contract = contractByID(t, "untouchable")
	g.ContractStatus = ContractActive
	g.Progress.WasHit = true

	g.evaluateContract(false)

	if g.ContractStatus != ContractFailed {
		t.Fatalf("status = %v, want failed", g.ContractStatus)
	}
	if g.Player.HP != 1 {
		t.Errorf("player HP = %v after penalty, want 1", g.Player.HP)
	}

	// The terminal state latches: another evaluation changes nothing.
	g.Player.HP = 50
	g.evaluateContract(true)
	if g.Player.HP != 50 || g.ContractStatus != ContractFailed {
		t.Error("terminal contract state re-evaluated")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	g.Score = 500
	g.Player.Alive = false
	g.Player.HP = 0
	g.DeathCause = "normal"

	g.Step(core.NewInput(), testDt)
	// Let the start delay pass so the death check actually runs.
	for i := 0; i < 120 && g.CurrentPhase() != PhaseGameOver; i++ {
		g.Step(core.NewInput(), testDt)
	}
	if g.CurrentPhase() != PhaseGameOver {
		t.Fatalf("phase = %v with a dead player, want game over", g.CurrentPhase())
	}
	if g.HighScore != 500 {
		t.Errorf("high score = %d, want 500", g.HighScore)
	}

	in := core.NewInput()
	in.Restart = true
	g.Step(in, testDt)

	if g.CurrentPhase() != PhaseRunning || g.Wave != 1 {
		t.Errorf("restart left phase %v wave %d", g.CurrentPhase(), g.Wave)
	}
	if g.Score != 0 {
		t.Errorf("restart kept score %d", g.Score)
	}
	if g.HighScore != 500 {
		t.Errorf("restart dropped high score: %d", g.HighScore)
	}
	if !g.Player.Alive {
		t.Error("restart left the player dead")
	}
}

func TestLastStandBurnsOncePerRun(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	if !g.LastStandAvailable {
		t.Fatal("run started without its Last Stand")
	}
	g.foldPlayerHit(PlayerHit{Took: true, By: EnemyBoss, Amount: 20, LastStand: true})
	if g.LastStandAvailable {
		t.Error("Last Stand still available after triggering")
	}
}

func TestPauseHaltsSimulation(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	// Burn the start delay first.
	for i := 0; i < 90; i++ {
		g.Step(core.NewInput(), testDt)
	}

	in := core.NewInput()
	in.Pause = true
	g.Step(in, testDt)
	if !g.Paused {
		t.Fatal("pause intent ignored")
	}

	wave := g.WaveTime
	positions := make([]core.Vec2, len(g.Enemies))
	for i, e := range g.Enemies {
		positions[i] = e.Pos
	}
	for i := 0; i < 60; i++ {
		g.Step(core.NewInput(), testDt)
	}
	if g.WaveTime != wave {
		t.Error("wave clock advanced while paused")
	}
	for i, e := range g.Enemies {
		if e.Pos != positions[i] {
			t.Fatal("enemy moved while paused")
		}
	}

	// Unpause resumes.
	g.Step(in, testDt)
	g.Step(core.NewInput(), testDt)
	if g.WaveTime == wave {
		t.Error("wave clock frozen after unpause")
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	g.Score = 123

	s := g.State()
	if s.Score != 123 || s.Wave != 1 || s.Phase != PhaseRunning {
		t.Errorf("snapshot = %+v", s)
	}
	if s.HP != g.Player.HP || s.MaxHP != g.Player.MaxHP {
		t.Error("snapshot HP mismatch")
	}
	if s.EnemiesLeft != len(g.Enemies) {
		t.Errorf("snapshot enemies = %d, want %d", s.EnemiesLeft, len(g.Enemies))
	}
}

func TestSpawnerAddsAreNormal(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	g.Enemies = nil

	sp := newEnemy(99, EnemySpawner, core.V(50, 0), unitScale(), nil, g.rng)
	sp.PendingSpawn = true
	g.Enemies = []*Enemy{sp}

	g.consumeSpawnIntents()

	if len(g.Enemies) != 2 {
		t.Fatalf("enemies after spawn = %d, want 2", len(g.Enemies))
	}
	add := g.Enemies[1]
	if add.Type != EnemyNormal {
		t.Errorf("spawner add type = %s, want %s", add.Type, EnemyNormal)
	}
	if add.Pos.Sub(sp.Pos).Len() > sp.Radius+16 {
		t.Errorf("add spawned too far from spawner: %v", add.Pos)
	}
	if sp.SpawnedCount != 1 || sp.PendingSpawn {
		t.Error("pending-spawn intent not consumed")
	}
}

func TestSnapshotDamageRecap(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))

	if g.State().DamageTaken != nil {
		t.Error("fresh run should have no damage recap")
	}

	g.DamageByType[EnemyNormal] = 30
	g.DamageByType[EnemyHeavy] = 55

	s := g.State()
	if s.DamageTaken["heavy"] != 55 || s.DamageTaken["normal"] != 30 {
		t.Errorf("recap = %v", s.DamageTaken)
	}
}

func TestRenderProducesArena(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	scr := core.NewScreen(80, 24)

	g.Render(scr)

	found := false
	for y := 0; y < scr.Height() && !found; y++ {
		for x := 0; x < scr.Width(); x++ {
			if scr.Get(x, y) == PlayerChar {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("player glyph not rendered")
	}
	// HUD row carries the wave readout.
	if row := scr.Row(0); len(row) == 0 {
		t.Error("empty HUD row")
	}
}

func TestRenderGameOverPanel(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	g.Player.Alive = false
	g.Player.HP = 0
	g.DeathCause = "normal"
	for i := 0; i < 120 && g.CurrentPhase() != PhaseGameOver; i++ {
		g.Step(core.NewInput(), testDt)
	}
	if g.CurrentPhase() != PhaseGameOver {
		t.Fatal("could not reach game over")
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	corners := 0
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			switch scr.Get(x, y) {
			case '┌', '┐', '└', '┘':
				corners++
			}
		}
	}
	if corners != 4 {
		t.Errorf("game over panel corners = %d, want 4", corners)
	}
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over title missing")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := New(testCfg(), core.NewSeededRand(1))
	scr := core.NewScreen(10, 4)
	g.Render(scr) // must not panic
}
