package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
)

// Phase is the orchestrator's top-level state. Simulation only advances in
// PhaseRunning; the other phases wait on a UI intent.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseMutatorSelect
	PhaseEventOffer
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMutatorSelect:
		return "mutator-select"
	case PhaseEventOffer:
		return "event-offer"
	case PhaseGameOver:
		return "game-over"
	default:
		return "running"
	}
}

// Orchestration tuning.
const (
	mutatorChoiceCount = 3
	waveClearBase      = 100 // score per cleared wave, scaled by wave number
	waveStartDelay     = 1.0

	effectTTL       = 0.35
	damageNumberTTL = 0.8
	shakeDecay      = 8.0 // magnitude lost per second
)

// Effect is a short-lived visual marker the renderer draws until its TTL
// runs out.
type Effect struct {
	Pos     core.Vec2
	Kind    AttackKind
	Blocked bool
	Death   bool
	TTL     float64
}

// FloatingNumber is a damage readout drifting upward from its hit position.
type FloatingNumber struct {
	Pos    core.Vec2
	Amount float64
	TTL    float64
}

// Game is the complete deterministic simulation of one run. All state lives
// here; Step is the only mutator and takes exactly one intent frame per tick.
type Game struct {
	cfg config.ArenaConfig
	rng core.Rand

	Player *Player
	mods   CombinedModifiers

	activeMutators []Mutator
	ownedCounts    map[string]int
	baseMaxHP      float64
	baseMaxEnergy  float64
	baseRegen      float64

	Enemies []*Enemy
	nextID  int

	Wave     int
	Level    LevelContext
	WaveTime float64
	RunTime  float64
	Paused   bool

	Contract       WaveContract
	ContractStatus ContractStatus
	Progress       *ContractProgress

	phase        Phase
	MutatorOffer []Mutator
	PendingEvent *WaveEvent
	acceptedEv   *WaveEvent

	Score        int
	HighScore    int
	Kills        int
	KillsByType  map[EnemyType]int
	DamageByType map[EnemyType]float64
	DeathCause   string

	LastStandAvailable bool
	lastStandSlow      float64

	Daily     bool
	DailyDate string

	hitFreeze  float64
	Shake      float64
	Effects    []Effect
	Numbers    []FloatingNumber
	startDelay float64
}

// New creates a run with the given config and RNG source. Pass a seeded
// source for reproducible runs, or core.NewDefaultRand for free play.
func New(cfg config.ArenaConfig, rng core.Rand) *Game {
	g := &Game{
		cfg:           cfg,
		rng:           rng,
		ownedCounts:   make(map[string]int),
		KillsByType:   make(map[EnemyType]int),
		DamageByType:  make(map[EnemyType]float64),
		baseMaxHP:     cfg.Player.MaxHP,
		baseMaxEnergy: cfg.Player.MaxEnergy,
		baseRegen:     cfg.Player.EnergyRegen,
	}
	g.reset()
	return g
}

// NewDaily creates the seeded daily-challenge run for a date string in the
// form "2006-01-02". Identical date and config always produce the identical
// run, tick for tick.
func NewDaily(cfg config.ArenaConfig, date string) *Game {
	g := New(cfg, core.NewMulberry32(core.DateSeed(date)))
	g.Daily = true
	g.DailyDate = date
	return g
}

// reset restores run-start state, keeping the high score across restarts.
func (g *Game) reset() {
	g.Player = NewPlayer(g.baseMaxHP, g.baseMaxEnergy, g.cfg.Player.Speed, g.baseRegen)
	g.mods = NeutralModifiers()
	g.activeMutators = nil
	g.ownedCounts = make(map[string]int)
	g.Enemies = nil
	g.nextID = 1
	g.Wave = 0
	g.RunTime = 0
	g.Score = 0
	g.Kills = 0
	g.KillsByType = make(map[EnemyType]int)
	g.DamageByType = make(map[EnemyType]float64)
	g.DeathCause = ""
	g.LastStandAvailable = true
	g.lastStandSlow = 0
	g.Paused = false
	g.phase = PhaseRunning
	g.MutatorOffer = nil
	g.PendingEvent = nil
	g.acceptedEv = nil
	g.hitFreeze = 0
	g.Shake = 0
	g.Effects = nil
	g.Numbers = nil
	g.startWave(1)
}

// CurrentPhase returns the orchestrator phase.
func (g *Game) CurrentPhase() Phase { return g.phase }

// Step advances the run by one fixed tick with the given intent frame.
func (g *Game) Step(in core.Input, dt float64) {
	switch g.phase {
	case PhaseGameOver:
		if in.Restart {
			g.reset()
		}
		return
	case PhaseMutatorSelect:
		g.stepMutatorSelect(in)
		return
	case PhaseEventOffer:
		g.stepEventOffer(in)
		return
	}

	if in.Pause {
		g.Paused = !g.Paused
	}
	if g.Paused {
		return
	}

	g.RunTime += dt

	// Hit-freeze: cosmetic timers keep counting, simulation holds.
	g.decayEffects(dt)
	if g.hitFreeze > 0 {
		g.hitFreeze -= dt
		return
	}
	if g.startDelay > 0 {
		g.startDelay -= dt
		return
	}

	g.WaveTime += dt
	g.Progress.WaveTime = g.WaveTime

	timeScale := 1.0
	if g.Player.TimeSlowActive {
		timeScale = TimeSlowFactor
	}
	if g.lastStandSlow > 0 {
		g.lastStandSlow -= dt
		timeScale = math.Min(timeScale, 0.3)
	}

	// Auto-fire capability presses light on the player's behalf.
	if g.mods.Caps.AutoLight && !in.Light && g.enemyInLightRange() {
		in.Light = true
	}

	g.Player.Update(in, dt, g.mods, g.Level)
	if g.Player.Combo > g.Progress.MaxCombo {
		g.Progress.MaxCombo = g.Player.Combo
	}

	res := ResolvePlayerAttack(g.Player, g.Enemies, g.mods, g.rng)
	g.foldAttackResult(res)

	for _, e := range g.Enemies {
		e.Update(g.Player, dt, timeScale, g.Level, g.rng)
	}
	g.consumeSpawnIntents()

	hit := ResolveEnemyAttacks(g.Player, g.Enemies, g.LastStandAvailable)
	g.foldPlayerHit(hit)

	g.dispatchDeathEffects()
	g.removeDead()

	g.evaluateContract(false)

	if !g.Player.Alive {
		g.finishRun()
		return
	}
	if len(g.Enemies) == 0 {
		g.finishWave()
	}
}

// enemyInLightRange reports whether any living enemy sits inside the light
// attack's reach, used to gate the auto-fire capability.
func (g *Game) enemyInLightRange() bool {
	for _, e := range g.Enemies {
		if e.Alive && g.Player.Pos.Dist(e.Pos) <= lightRange+e.Radius {
			return true
		}
	}
	return false
}

// foldAttackResult merges one attack pass into run state: energy, score,
// kill bookkeeping, contract progress, and visuals.
func (g *Game) foldAttackResult(res AttackResult) {
	if res.HitCount == 0 && len(res.Hits) == 0 {
		return
	}
	g.Player.Energy = math.Min(g.Player.MaxEnergy, g.Player.Energy+res.Energy)
	g.hitFreeze = math.Max(g.hitFreeze, res.Freeze)
	g.Shake = math.Max(g.Shake, res.Shake)

	for _, h := range res.Hits {
		g.Effects = append(g.Effects, Effect{Pos: h.Pos, Kind: h.Kind, Blocked: h.Blocked, TTL: effectTTL})
	}
	for _, n := range res.Numbers {
		g.Numbers = append(g.Numbers, FloatingNumber{Pos: n.Pos, Amount: n.Amount, TTL: damageNumberTTL})
	}
	for _, k := range res.Kills {
		g.Kills++
		g.KillsByType[k.Type]++
		g.Score += k.Score
		g.Progress.RecordKill(k.Type)
	}
}

// foldPlayerHit merges one enemy attack pass into run state.
func (g *Game) foldPlayerHit(hit PlayerHit) {
	if !hit.Took {
		return
	}
	g.Progress.WasHit = true
	g.Progress.HitByType[hit.By] = true
	g.DamageByType[hit.By] += hit.Amount
	g.Shake = math.Max(g.Shake, shakeHeavy)

	if hit.LastStand {
		// One per run. The brief slow-motion beat sells the save.
		g.LastStandAvailable = false
		g.lastStandSlow = lastStandSlowTime
		return
	}
	if !g.Player.Alive {
		g.DeathCause = hit.By.String()
	}
}

// consumeSpawnIntents instantiates the adds that spawners and the boss phase
// transition requested this tick.
func (g *Game) consumeSpawnIntents() {
	scale := waveScale(g.Wave, g.Level, g.cfg)
	for _, e := range g.Enemies {
		if e.PendingSpawn {
			e.PendingSpawn = false
			e.SpawnedCount++
			pos := e.Pos.Add(core.FromAngle(core.Range(g.rng, 0, 2*math.Pi)).Scale(e.Radius + 15))
			add := newEnemy(g.nextID, EnemyNormal, pos, scale, nil, g.rng)
			g.nextID++
			g.Enemies = append(g.Enemies, add)
		}
		if e.SpawnMinions {
			e.SpawnMinions = false
			for i := 0; i < 3; i++ {
				pos := e.Pos.Add(core.FromAngle(core.Range(g.rng, 0, 2*math.Pi)).Scale(e.Radius + 20))
				add := newEnemy(g.nextID, EnemyNormal, pos, scale, nil, g.rng)
				g.nextID++
				g.Enemies = append(g.Enemies, add)
			}
		}
	}
}

// dispatchDeathEffects runs each dead enemy's one-shot death behavior exactly
// once, before the corpse is removed.
func (g *Game) dispatchDeathEffects() {
	for _, e := range g.Enemies {
		if e.Alive || e.DeathEffectEmitted {
			continue
		}
		e.DeathEffectEmitted = true
		g.Effects = append(g.Effects, Effect{Pos: e.Pos, Death: true, TTL: effectTTL})

		if dmg := ExplodeVolatile(e, g.Player); dmg > 0 {
			g.Progress.WasHit = true
			g.Progress.HitByType[e.Type] = true
			g.DamageByType[e.Type] += dmg
			g.Shake = math.Max(g.Shake, shakeHeavy)
			if !g.Player.Alive {
				g.DeathCause = "volatile " + e.Type.String()
			}
		}
	}
}

// removeDead compacts the enemy list, keeping only the living.
func (g *Game) removeDead() {
	out := g.Enemies[:0]
	for _, e := range g.Enemies {
		if e.Alive {
			out = append(out, e)
		}
	}
	g.Enemies = out
}

// evaluateContract runs the contract machine while it is still active and
// applies the failure penalty on the failing edge.
func (g *Game) evaluateContract(waveEnded bool) {
	if g.ContractStatus != ContractActive {
		return
	}
	remaining := 0
	if g.Contract.HasTypeGate {
		for _, e := range g.Enemies {
			if e.Alive && e.Type == g.Contract.RequiresType {
				remaining++
			}
		}
	}
	st := EvaluateContract(g.Contract, g.Progress, waveEnded, remaining)
	if st == g.ContractStatus {
		return
	}
	g.ContractStatus = st
	if st == ContractFailed && g.Contract.Penalty == PenaltyDropTo1HP && g.Player.Alive {
		g.Player.HP = 1
	}
}

// finishWave settles the cleared wave (contract outcome, rewards, score) and
// routes to the next phase: an event offer, a mutator draft, or straight into
// the next wave when the draft comes up empty.
func (g *Game) finishWave() {
	g.evaluateContract(true)
	if g.ContractStatus == ContractCompleted {
		r := g.Contract.Reward
		g.Score += r.Score
		g.Player.HP = math.Min(g.Player.MaxHP, g.Player.HP+r.HP)
		g.Player.Energy = math.Min(g.Player.MaxEnergy, g.Player.Energy+r.Energy)
	}
	g.Score += waveClearBase * g.Wave / 2
	if g.acceptedEv != nil {
		g.Score += g.acceptedEv.ScoreBonus
		g.acceptedEv = nil
	}

	next := g.Wave + 1
	if ev := MaybeWaveEvent(g.rng, next, g.cfg); ev != nil {
		g.PendingEvent = ev
		g.phase = PhaseEventOffer
		return
	}
	g.offerMutators(next)
}

// offerMutators opens the draft before the given wave, or starts the wave
// directly when the pool has nothing left to offer.
func (g *Game) offerMutators(next int) {
	g.MutatorOffer = DrawMutatorChoices(g.rng, mutatorChoiceCount, g.ownedCounts)
	if len(g.MutatorOffer) == 0 {
		g.startWave(next)
		return
	}
	g.Wave = next - 1 // startWave advances it
	g.phase = PhaseMutatorSelect
}

func (g *Game) stepMutatorSelect(in core.Input) {
	if in.MutatorChoice < 0 || in.MutatorChoice >= len(g.MutatorOffer) {
		return
	}
	g.applyMutator(g.MutatorOffer[in.MutatorChoice])
	g.MutatorOffer = nil
	g.startWave(g.Wave + 1)
}

func (g *Game) stepEventOffer(in core.Input) {
	switch {
	case in.EventAccept:
		g.acceptedEv = g.PendingEvent
	case in.EventDecline:
		g.acceptedEv = nil
	default:
		return
	}
	g.PendingEvent = nil
	g.offerMutators(g.Wave + 1)
}

// applyMutator adds a drafted mutator to the run and recomputes the combined
// modifiers. Max HP / energy gains also grant the gained amount immediately.
func (g *Game) applyMutator(m Mutator) {
	g.activeMutators = append(g.activeMutators, m)
	g.ownedCounts[m.ID]++
	g.mods = ComposeModifiers(g.activeMutators)

	p := g.Player
	newMaxHP := math.Max(1, g.baseMaxHP+g.mods.Bonus.MaxHP)
	if d := newMaxHP - p.MaxHP; d > 0 {
		p.HP += d
	}
	p.MaxHP = newMaxHP
	p.HP = math.Min(p.HP, p.MaxHP)

	newMaxEnergy := math.Max(0, g.baseMaxEnergy+g.mods.Bonus.MaxEnergy)
	if d := newMaxEnergy - p.MaxEnergy; d > 0 {
		p.Energy += d
	}
	p.MaxEnergy = newMaxEnergy
	p.Energy = math.Min(p.Energy, p.MaxEnergy)
}

// ActiveMutators returns the drafted mutators in pick order.
func (g *Game) ActiveMutators() []Mutator { return g.activeMutators }

// Modifiers returns the current combined modifier fold.
func (g *Game) Modifiers() CombinedModifiers { return g.mods }

// startWave composes and spawns the given wave number.
func (g *Game) startWave(wave int) {
	g.Wave = wave
	g.Level = LevelForWave(wave, g.cfg)
	g.WaveTime = 0
	g.startDelay = waveStartDelay

	g.Enemies = ComposeWave(g.rng, wave, &g.nextID, g.Level, g.cfg)
	g.Enemies = ApplyWaveEvent(g.rng, g.acceptedEv, g.Enemies, wave, &g.nextID, g.Level, g.cfg)

	present := make([]EnemyType, 0, len(g.Enemies))
	seen := make(map[EnemyType]bool)
	for _, e := range g.Enemies {
		if !seen[e.Type] {
			seen[e.Type] = true
			present = append(present, e.Type)
		}
	}
	g.Contract = SelectContractForWave(g.rng, wave, present)
	g.ContractStatus = ContractActive
	g.Progress = NewContractProgress()

	g.phase = PhaseRunning
}

// finishRun transitions to game over, keeping the run state for the recap.
func (g *Game) finishRun() {
	g.phase = PhaseGameOver
	if g.DeathCause == "" {
		g.DeathCause = "unknown"
	}
	if g.Score > g.HighScore {
		g.HighScore = g.Score
	}
}

// decayEffects ages visual state; runs even during hit-freeze so feedback
// never looks stalled.
func (g *Game) decayEffects(dt float64) {
	g.Shake = math.Max(0, g.Shake-shakeDecay*dt)

	fx := g.Effects[:0]
	for _, e := range g.Effects {
		e.TTL -= dt
		if e.TTL > 0 {
			fx = append(fx, e)
		}
	}
	g.Effects = fx

	nums := g.Numbers[:0]
	for _, n := range g.Numbers {
		n.TTL -= dt
		n.Pos.Y -= 18 * dt
		if n.TTL > 0 {
			nums = append(nums, n)
		}
	}
	g.Numbers = nums
}
