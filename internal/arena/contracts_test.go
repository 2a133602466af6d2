package arena

import (
	"testing"

	"github.com/vovakirdan/tui-arena/internal/core"
)

func contractByID(t *testing.T, id string) WaveContract {
	t.Helper()
	for _, c := range contractPool {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("contract %q missing from pool", id)
	return WaveContract{}
}

func TestCleanupCompletesOnWaveEnd(t *testing.T) {
	c := contractByID(t, "cleanup")
	pr := NewContractProgress()

	if st := EvaluateContract(c, pr, false, 0); st != ContractActive {
		t.Errorf("mid-wave status = %v, want active", st)
	}
	if st := EvaluateContract(c, pr, true, 0); st != ContractCompleted {
		t.Errorf("wave-end status = %v, want completed", st)
	}
}

func TestUntouchableFailsOnFirstHit(t *testing.T) {
	c := contractByID(t, "untouchable")
	pr := NewContractProgress()
	pr.WaveTime = 3

	if st := EvaluateContract(c, pr, false, 0); st != ContractActive {
		t.Fatalf("status = %v before any hit, want active", st)
	}
	pr.WasHit = true
	if st := EvaluateContract(c, pr, false, 0); st != ContractFailed {
		t.Errorf("status = %v after a hit, want failed", st)
	}
	if c.Penalty != PenaltyDropTo1HP {
		t.Errorf("untouchable penalty = %v, want drop to 1 HP", c.Penalty)
	}
}

func TestFirstBloodTiming(t *testing.T) {
	c := contractByID(t, "first_blood")

	pr := NewContractProgress()
	pr.WaveTime = 3
	pr.RecordKill(EnemyNormal)
	if st := EvaluateContract(c, pr, false, 0); st != ContractCompleted {
		t.Errorf("kill at 3s: status = %v, want completed", st)
	}

	pr = NewContractProgress()
	pr.WaveTime = 6
	if st := EvaluateContract(c, pr, false, 0); st != ContractFailed {
		t.Errorf("no kill by 6s: status = %v, want failed", st)
	}
}

func TestRampageRollingWindow(t *testing.T) {
	c := contractByID(t, "rampage")
	pr := NewContractProgress()

	// Kills at 1s, 8s, 9s, 10s: the last three land inside 4 seconds.
	for _, at := range []float64{1, 8, 9, 10} {
		pr.WaveTime = at
		pr.RecordKill(EnemyNormal)
	}
	if st := EvaluateContract(c, pr, false, 0); st != ContractCompleted {
		t.Errorf("status = %v, want completed", st)
	}

	// Spread kills never satisfy the window.
	pr = NewContractProgress()
	for _, at := range []float64{1, 6, 11, 16} {
		pr.WaveTime = at
		pr.RecordKill(EnemyNormal)
	}
	if st := EvaluateContract(c, pr, true, 0); st != ContractFailed {
		t.Errorf("spread kills: status = %v, want failed", st)
	}
}

func TestHeavyPriorityKillOrder(t *testing.T) {
	c := contractByID(t, "heavy_priority")

	// Killing a normal while a heavy still lives fails immediately.
	pr := NewContractProgress()
	pr.RecordKill(EnemyNormal)
	if st := EvaluateContract(c, pr, false, 1); st != ContractFailed {
		t.Errorf("off-order kill: status = %v, want failed", st)
	}

	// Heavies first, then the rest: completes once the last heavy drops.
	pr = NewContractProgress()
	pr.RecordKill(EnemyHeavy)
	if st := EvaluateContract(c, pr, false, 1); st != ContractActive {
		t.Errorf("one heavy down, one alive: status = %v, want active", st)
	}
	pr.RecordKill(EnemyHeavy)
	if st := EvaluateContract(c, pr, false, 0); st != ContractCompleted {
		t.Errorf("all heavies down: status = %v, want completed", st)
	}
}

func TestSpeedClearDeadline(t *testing.T) {
	c := contractByID(t, "speed_clear")

	pr := NewContractProgress()
	pr.WaveTime = 30
	if st := EvaluateContract(c, pr, true, 0); st != ContractCompleted {
		t.Errorf("clear at 30s: status = %v, want completed", st)
	}

	pr = NewContractProgress()
	pr.WaveTime = 50
	if st := EvaluateContract(c, pr, false, 0); st != ContractFailed {
		t.Errorf("50s elapsed: status = %v, want failed", st)
	}
}

func TestComboFinishResolvesAtWaveEnd(t *testing.T) {
	c := contractByID(t, "combo_finish")
	pr := NewContractProgress()
	pr.MaxCombo = 5

	if st := EvaluateContract(c, pr, false, 0); st != ContractActive {
		t.Errorf("mid-wave status = %v, want active", st)
	}
	if st := EvaluateContract(c, pr, true, 0); st != ContractCompleted {
		t.Errorf("wave-end status = %v, want completed", st)
	}

	pr.MaxCombo = 2
	if st := EvaluateContract(c, pr, true, 0); st != ContractFailed {
		t.Errorf("low combo at wave end: status = %v, want failed", st)
	}
}

func TestSniperPurgeTracksDamageSource(t *testing.T) {
	c := contractByID(t, "sniper_purge")
	pr := NewContractProgress()

	// Melee damage is fine; sniper damage fails.
	pr.WasHit = true
	pr.HitByType[EnemyNormal] = true
	if st := EvaluateContract(c, pr, true, 0); st != ContractCompleted {
		t.Errorf("melee-only damage: status = %v, want completed", st)
	}
	pr.HitByType[EnemySniper] = true
	if st := EvaluateContract(c, pr, false, 0); st != ContractFailed {
		t.Errorf("sniper damage: status = %v, want failed", st)
	}
}

func TestSelectContractRespectsTypeGate(t *testing.T) {
	rng := core.NewSeededRand(11)
	present := []EnemyType{EnemyNormal, EnemyFast}

	for i := 0; i < 300; i++ {
		c := SelectContractForWave(rng, 8, present)
		if c.HasTypeGate {
			t.Fatalf("gated contract %q offered with no %v present", c.ID, c.RequiresType)
		}
	}
}

func TestSelectContractRespectsMinWave(t *testing.T) {
	rng := core.NewSeededRand(11)
	for i := 0; i < 300; i++ {
		c := SelectContractForWave(rng, 1, []EnemyType{EnemyNormal})
		if c.MinWave > 1 {
			t.Fatalf("contract %q with MinWave %d offered on wave 1", c.ID, c.MinWave)
		}
	}
}

func TestSelectContractFallback(t *testing.T) {
	// With no enemy types present every gated contract is filtered; the
	// ungated remainder still yields an offer.
	c := SelectContractForWave(core.NewSeededRand(1), 2, nil)
	if c.ID == "" {
		t.Fatal("no contract selected")
	}
	if c.HasTypeGate {
		t.Errorf("gated contract %q offered with nothing present", c.ID)
	}
}
