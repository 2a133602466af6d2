package arena

import "github.com/vovakirdan/tui-arena/internal/core"

// ContractDifficulty grades per-wave contracts; harder contracts carry bigger
// rewards and are weighted up on later waves.
type ContractDifficulty int

const (
	ContractEasy ContractDifficulty = iota
	ContractMedium
	ContractHard
)

func (d ContractDifficulty) String() string {
	switch d {
	case ContractMedium:
		return "medium"
	case ContractHard:
		return "hard"
	default:
		return "easy"
	}
}

// ContractStatus is the 3-state contract machine. Active transitions to
// exactly one of Completed or Failed and is then terminal for the wave.
type ContractStatus int

const (
	ContractActive ContractStatus = iota
	ContractCompleted
	ContractFailed
)

func (s ContractStatus) String() string {
	switch s {
	case ContractCompleted:
		return "completed"
	case ContractFailed:
		return "failed"
	default:
		return "active"
	}
}

// PenaltyKind is the fixed penalty applied by the orchestrator when a
// contract fails.
type PenaltyKind int

const (
	PenaltyNone PenaltyKind = iota
	PenaltyDropTo1HP
)

// ContractReward is granted by the orchestrator at wave end when the
// contract completed.
type ContractReward struct {
	Score  int
	HP     float64
	Energy float64
}

// WaveContract is an immutable pool entry. Exactly one contract is offered
// per wave.
type WaveContract struct {
	ID         string
	Name       string
	Desc       string
	Difficulty ContractDifficulty

	MinWave      int
	MaxWave      int // 0 = unbounded
	RequiresType EnemyType
	HasTypeGate  bool // RequiresType only binds when set

	Penalty PenaltyKind
	Reward  ContractReward
}

// ContractProgress accumulates wave-scoped observations the evaluator reads.
// Reset every wave.
type ContractProgress struct {
	Kills     map[EnemyType]int
	KillOrder []EnemyType
	KillTimes []float64 // wave-relative seconds, parallel to KillOrder
	WasHit    bool
	HitByType map[EnemyType]bool
	MaxCombo  int
	WaveTime  float64
}

// NewContractProgress returns a fresh accumulator.
func NewContractProgress() *ContractProgress {
	return &ContractProgress{
		Kills:     make(map[EnemyType]int),
		HitByType: make(map[EnemyType]bool),
	}
}

// RecordKill appends one kill observation.
func (pr *ContractProgress) RecordKill(t EnemyType) {
	pr.Kills[t]++
	pr.KillOrder = append(pr.KillOrder, t)
	pr.KillTimes = append(pr.KillTimes, pr.WaveTime)
}

// TotalKills returns the number of kills recorded this wave.
func (pr *ContractProgress) TotalKills() int {
	return len(pr.KillOrder)
}

var contractPool = []WaveContract{
	{ID: "cleanup", Name: "Cleanup", Desc: "Clear the wave", Difficulty: ContractEasy,
		Reward: ContractReward{Score: 50}},
	{ID: "first_blood", Name: "First Blood", Desc: "First kill within 5 seconds", Difficulty: ContractEasy,
		Reward: ContractReward{Score: 100}},
	{ID: "pacifist_start", Name: "Cold Open", Desc: "Take no damage for the first 10 seconds", Difficulty: ContractEasy,
		Reward: ContractReward{Energy: 30}},
	{ID: "exterminator", Name: "Exterminator", Desc: "Kill at least 10 enemies", Difficulty: ContractEasy,
		MinWave: 6, Reward: ContractReward{Score: 150}},
	{ID: "rampage", Name: "Rampage", Desc: "Kill 3 enemies within 4 seconds", Difficulty: ContractMedium,
		MinWave: 2, Reward: ContractReward{Energy: 50}},
	{ID: "combo_finish", Name: "Flourish", Desc: "End the wave with combo 4 or higher", Difficulty: ContractMedium,
		Reward: ContractReward{Energy: 40}},
	{ID: "speed_clear", Name: "Quick Work", Desc: "Clear the wave within 45 seconds", Difficulty: ContractMedium,
		MinWave: 3, Reward: ContractReward{Score: 250}},
	{ID: "heavy_priority", Name: "Biggest First", Desc: "Kill every heavy before anything else", Difficulty: ContractMedium,
		RequiresType: EnemyHeavy, HasTypeGate: true, Reward: ContractReward{Score: 200}},
	{ID: "sniper_purge", Name: "Counter-Sniper", Desc: "Clear the wave without taking sniper damage", Difficulty: ContractMedium,
		RequiresType: EnemySniper, HasTypeGate: true, Reward: ContractReward{HP: 15}},
	{ID: "untouchable", Name: "Untouchable", Desc: "Take no damage this wave", Difficulty: ContractHard,
		MinWave: 2, Penalty: PenaltyDropTo1HP, Reward: ContractReward{Score: 300}},
}

// contractDifficultyWeights returns selection weights per difficulty for a
// wave number; later waves push toward harder contracts.
func contractDifficultyWeights(wave int) [3]int {
	switch {
	case wave < 4:
		return [3]int{4, 2, 1}
	case wave <= 9:
		return [3]int{2, 3, 2}
	default:
		return [3]int{1, 3, 3}
	}
}

// SelectContractForWave picks the wave's single contract offer, filtered by
// wave-range and required-enemy-type gates. When nothing matches, the
// always-eligible first pool entry is the guaranteed fallback.
func SelectContractForWave(rng core.Rand, wave int, present []EnemyType) WaveContract {
	presentSet := make(map[EnemyType]bool, len(present))
	for _, t := range present {
		presentSet[t] = true
	}

	weights := contractDifficultyWeights(wave)
	total := 0
	var eligible []WaveContract
	var acc []int
	for _, c := range contractPool {
		if c.MinWave > wave {
			continue
		}
		if c.MaxWave > 0 && wave > c.MaxWave {
			continue
		}
		if c.HasTypeGate && !presentSet[c.RequiresType] {
			continue
		}
		w := weights[c.Difficulty]
		if w <= 0 {
			continue
		}
		eligible = append(eligible, c)
		total += w
		acc = append(acc, total)
	}
	if total == 0 {
		return contractPool[0]
	}

	roll := core.Intn(rng, total)
	for i, top := range acc {
		if roll < top {
			return eligible[i]
		}
	}
	return eligible[len(eligible)-1]
}

// EvaluateContract runs the per-contract-id check against the progress
// accumulator. remainingRequired is the count of still-living enemies of the
// contract's gated type (used by kill-order contracts). The caller holds the
// terminal-state latch: once it has seen Completed or Failed it must stop
// calling. waveEnded finalizes checks that can only resolve at wave end.
func EvaluateContract(c WaveContract, pr *ContractProgress, waveEnded bool, remainingRequired int) ContractStatus {
	switch c.ID {
	case "cleanup":
		if waveEnded {
			return ContractCompleted
		}

	case "first_blood":
		if len(pr.KillTimes) > 0 {
			if pr.KillTimes[0] <= 5 {
				return ContractCompleted
			}
			return ContractFailed
		}
		if pr.WaveTime > 5 {
			return ContractFailed
		}

	case "pacifist_start":
		if pr.WasHit && pr.WaveTime <= 10 {
			return ContractFailed
		}
		if pr.WaveTime > 10 {
			return ContractCompleted
		}

	case "exterminator":
		if pr.TotalKills() >= 10 {
			return ContractCompleted
		}
		if waveEnded {
			return ContractFailed
		}

	case "rampage":
		// Rolling window over the kill timestamps.
		n := len(pr.KillTimes)
		for i := 0; i+2 < n; i++ {
			if pr.KillTimes[i+2]-pr.KillTimes[i] <= 4 {
				return ContractCompleted
			}
		}
		if waveEnded {
			return ContractFailed
		}

	case "combo_finish":
		if waveEnded {
			if pr.MaxCombo >= 4 {
				return ContractCompleted
			}
			return ContractFailed
		}

	case "speed_clear":
		if pr.WaveTime > 45 {
			return ContractFailed
		}
		if waveEnded {
			return ContractCompleted
		}

	case "heavy_priority":
		// Incremental running check: any non-heavy kill while heavies remain
		// alive fails immediately; no per-tick replay of the kill log.
		if len(pr.KillOrder) > 0 {
			last := pr.KillOrder[len(pr.KillOrder)-1]
			if last != EnemyHeavy && remainingRequired > 0 {
				return ContractFailed
			}
		}
		if remainingRequired == 0 && pr.Kills[EnemyHeavy] > 0 {
			return ContractCompleted
		}
		if waveEnded {
			return ContractFailed
		}

	case "sniper_purge":
		if pr.HitByType[EnemySniper] {
			return ContractFailed
		}
		if waveEnded {
			return ContractCompleted
		}

	case "untouchable":
		if pr.WasHit {
			return ContractFailed
		}
		if waveEnded {
			return ContractCompleted
		}
	}
	return ContractActive
}
