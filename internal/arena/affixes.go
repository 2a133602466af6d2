package arena

import "github.com/vovakirdan/tui-arena/internal/core"

// AffixTier grades wave affixes. The selection weight schedule shifts from
// mild toward strong as waves climb.
type AffixTier int

const (
	TierMild AffixTier = iota
	TierMedium
	TierStrong
)

func (t AffixTier) String() string {
	switch t {
	case TierMedium:
		return "medium"
	case TierStrong:
		return "strong"
	default:
		return "mild"
	}
}

// WaveAffix is an immutable descriptor applied to every enemy spawned in its
// wave. Multiplier fields use 0 to mean "unset". At most one affix is active
// per wave.
type WaveAffix struct {
	ID      string
	Name    string
	Tier    AffixTier
	MinWave int

	HPMult       float64
	SpeedMult    float64
	CooldownMult float64 // attack cooldown, <1 = faster

	DamageReduction  float64 // 0..0.95, fraction of incoming damage absorbed
	ExplodeOnDeath   bool
	BerserkThreshold float64 // HP ratio below which the enemy speeds up once
	RegenPerSec      float64
}

var affixPool = []WaveAffix{
	{ID: "swift", Name: "Swift", Tier: TierMild, MinWave: 2, SpeedMult: 1.2},
	{ID: "tough", Name: "Tough", Tier: TierMild, MinWave: 2, HPMult: 1.4},
	{ID: "frenzied", Name: "Frenzied", Tier: TierMedium, MinWave: 5, CooldownMult: 0.7},
	{ID: "berserker", Name: "Berserker", Tier: TierMedium, MinWave: 6, BerserkThreshold: 0.4},
	{ID: "volatile", Name: "Volatile", Tier: TierStrong, MinWave: 8, ExplodeOnDeath: true},
	{ID: "armored", Name: "Armored", Tier: TierStrong, MinWave: 10, DamageReduction: 0.6, RegenPerSec: 1},
}

// affixTierWeights returns the selection weight per tier for a wave number.
// Early waves favor mild; from wave 16 on, strong carries the maximum weight.
func affixTierWeights(wave int) [3]int {
	switch {
	case wave < 6:
		return [3]int{6, 1, 0}
	case wave <= 10:
		return [3]int{3, 3, 1}
	case wave <= 15:
		return [3]int{1, 3, 2}
	default:
		return [3]int{1, 2, 4}
	}
}

// SelectAffixForWave picks the wave's affix. Wave 1 never has one. The pick
// is tier-weighted over the pool entries whose MinWave allows the wave;
// returns nil when nothing is eligible.
func SelectAffixForWave(rng core.Rand, wave int) *WaveAffix {
	if wave <= 1 {
		return nil
	}

	weights := affixTierWeights(wave)
	total := 0
	var eligible []*WaveAffix
	var acc []int
	for i := range affixPool {
		a := &affixPool[i]
		if a.MinWave > wave {
			continue
		}
		w := weights[a.Tier]
		if w <= 0 {
			continue
		}
		eligible = append(eligible, a)
		total += w
		acc = append(acc, total)
	}
	if total == 0 {
		return nil
	}

	roll := core.Intn(rng, total)
	for i, top := range acc {
		if roll < top {
			return eligible[i]
		}
	}
	return eligible[len(eligible)-1]
}

// affixByID looks an affix up by id, nil when unknown.
func affixByID(id string) *WaveAffix {
	for i := range affixPool {
		if affixPool[i].ID == id {
			return &affixPool[i]
		}
	}
	return nil
}
