package arena

import "github.com/vovakirdan/tui-arena/internal/core"

// Rarity tiers for mutator drafting. Weights: common 3, rare 2, epic 1.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
)

func (r Rarity) String() string {
	switch r {
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	default:
		return "common"
	}
}

func (r Rarity) weight() int {
	switch r {
	case RarityCommon:
		return 3
	case RarityRare:
		return 2
	default:
		return 1
	}
}

// Multipliers compose multiplicatively (product, seeded at 1.0). A zero field
// means the mutator does not touch that stat; the composition skips it. The
// split into Multipliers and Bonuses is deliberate: composition behavior is
// carried by the type, not by a field-naming convention.
type Multipliers struct {
	Damage         float64
	Speed          float64
	AttackCooldown float64
	EnergyCost     float64
	DashCooldown   float64
}

// Bonuses compose additively (sum, seeded at 0).
type Bonuses struct {
	MaxHP       float64
	MaxEnergy   float64
	EnergyRegen float64
	EnergyOnHit float64
	ComboWindow float64
}

// Capabilities compose by logical OR.
type Capabilities struct {
	AutoLight  bool // light attack auto-fires whenever it legally could
	HeavyChain bool // heavy hits arc to nearby enemies at reduced damage
	FreeSlow   bool // time-slow costs no energy
}

// Mutator is an immutable pool entry. Chosen mutators accumulate for the
// whole run and are never removed.
type Mutator struct {
	ID       string
	Name     string
	Desc     string
	Rarity   Rarity
	StackCap int // 0 = non-stacking (one copy per run)

	Mult  Multipliers
	Bonus Bonuses
	Caps  Capabilities
}

// CombinedModifiers is the fold of every active mutator, recomputed on each
// pick. Multiplier fields are always usable directly (identity 1.0).
type CombinedModifiers struct {
	Mult  Multipliers
	Bonus Bonuses
	Caps  Capabilities
}

// NeutralModifiers returns the identity combination.
func NeutralModifiers() CombinedModifiers {
	return CombinedModifiers{
		Mult: Multipliers{Damage: 1, Speed: 1, AttackCooldown: 1, EnergyCost: 1, DashCooldown: 1},
	}
}

func mulInto(dst *float64, v float64) {
	if v != 0 {
		*dst *= v
	}
}

// ComposeModifiers folds the active mutator list into one combined record.
// Pure and order-independent: products and sums commute.
func ComposeModifiers(active []Mutator) CombinedModifiers {
	c := NeutralModifiers()
	for _, m := range active {
		mulInto(&c.Mult.Damage, m.Mult.Damage)
		mulInto(&c.Mult.Speed, m.Mult.Speed)
		mulInto(&c.Mult.AttackCooldown, m.Mult.AttackCooldown)
		mulInto(&c.Mult.EnergyCost, m.Mult.EnergyCost)
		mulInto(&c.Mult.DashCooldown, m.Mult.DashCooldown)

		c.Bonus.MaxHP += m.Bonus.MaxHP
		c.Bonus.MaxEnergy += m.Bonus.MaxEnergy
		c.Bonus.EnergyRegen += m.Bonus.EnergyRegen
		c.Bonus.EnergyOnHit += m.Bonus.EnergyOnHit
		c.Bonus.ComboWindow += m.Bonus.ComboWindow

		c.Caps.AutoLight = c.Caps.AutoLight || m.Caps.AutoLight
		c.Caps.HeavyChain = c.Caps.HeavyChain || m.Caps.HeavyChain
		c.Caps.FreeSlow = c.Caps.FreeSlow || m.Caps.FreeSlow
	}
	return c
}

// mutatorPool is the static draft pool.
var mutatorPool = []Mutator{
	{ID: "whetstone", Name: "Whetstone", Desc: "+15% damage", Rarity: RarityCommon, StackCap: 3,
		Mult: Multipliers{Damage: 1.15}},
	{ID: "swift_boots", Name: "Swift Boots", Desc: "+10% move speed", Rarity: RarityCommon, StackCap: 2,
		Mult: Multipliers{Speed: 1.1}},
	{ID: "conditioning", Name: "Conditioning", Desc: "+20 max HP", Rarity: RarityCommon, StackCap: 3,
		Bonus: Bonuses{MaxHP: 20}},
	{ID: "battery", Name: "Battery", Desc: "+25 max energy", Rarity: RarityCommon, StackCap: 2,
		Bonus: Bonuses{MaxEnergy: 25}},
	{ID: "focus", Name: "Focus", Desc: "+4 energy regen", Rarity: RarityCommon,
		Bonus: Bonuses{EnergyRegen: 4}},
	{ID: "leech", Name: "Leech", Desc: "+2 energy per hit", Rarity: RarityCommon,
		Bonus: Bonuses{EnergyOnHit: 2}},
	{ID: "long_memory", Name: "Long Memory", Desc: "combo lasts 0.75s longer", Rarity: RarityCommon,
		Bonus: Bonuses{ComboWindow: 0.75}},
	{ID: "oiled_joints", Name: "Oiled Joints", Desc: "-10% attack cooldowns", Rarity: RarityCommon,
		Mult: Multipliers{AttackCooldown: 0.9}},

	{ID: "heavy_hands", Name: "Heavy Hands", Desc: "+30% damage, -5% speed", Rarity: RarityRare,
		Mult: Multipliers{Damage: 1.3, Speed: 0.95}},
	{ID: "dash_master", Name: "Dash Master", Desc: "-40% dash cooldown", Rarity: RarityRare,
		Mult: Multipliers{DashCooldown: 0.6}},
	{ID: "cheap_tricks", Name: "Cheap Tricks", Desc: "-20% energy costs", Rarity: RarityRare,
		Mult: Multipliers{EnergyCost: 0.8}},
	{ID: "adrenaline", Name: "Adrenaline", Desc: "+15% speed, +2 regen", Rarity: RarityRare,
		Mult: Multipliers{Speed: 1.15}, Bonus: Bonuses{EnergyRegen: 2}},
	{ID: "glass_cannon", Name: "Glass Cannon", Desc: "+50% damage, -25 max HP", Rarity: RarityRare,
		Mult: Multipliers{Damage: 1.5}, Bonus: Bonuses{MaxHP: -25}},
	{ID: "stone_skin", Name: "Stone Skin", Desc: "+40 max HP, -8% speed", Rarity: RarityRare,
		Bonus: Bonuses{MaxHP: 40}, Mult: Multipliers{Speed: 0.92}},

	{ID: "auto_fencer", Name: "Auto Fencer", Desc: "light attacks fire on their own", Rarity: RarityEpic,
		Caps: Capabilities{AutoLight: true}},
	{ID: "arc_conductor", Name: "Arc Conductor", Desc: "heavy hits chain to nearby enemies", Rarity: RarityEpic,
		Caps: Capabilities{HeavyChain: true}},
	{ID: "time_lord", Name: "Time Lord", Desc: "time-slow costs no energy", Rarity: RarityEpic,
		Caps: Capabilities{FreeSlow: true}},
	{ID: "executioner", Name: "Executioner", Desc: "+25% damage, +3 energy per hit", Rarity: RarityEpic,
		Mult: Multipliers{Damage: 1.25}, Bonus: Bonuses{EnergyOnHit: 3}},
}

// MutatorByID looks up a pool entry. Returns false for unknown ids.
func MutatorByID(id string) (Mutator, bool) {
	for _, m := range mutatorPool {
		if m.ID == id {
			return m, true
		}
	}
	return Mutator{}, false
}

// DrawMutatorChoices performs a rarity-weighted draw of n distinct mutators
// without replacement. Mutators already owned are excluded unless they stack
// and their owned count is below the stack cap. An empty result is a valid
// outcome the caller must tolerate (the draft is simply skipped).
func DrawMutatorChoices(rng core.Rand, n int, owned map[string]int) []Mutator {
	// Weight-expanded candidate list, then Fisher-Yates and first n distinct.
	var candidates []Mutator
	for _, m := range mutatorPool {
		count := owned[m.ID]
		if count > 0 && (m.StackCap == 0 || count >= m.StackCap) {
			continue
		}
		for i := 0; i < m.Rarity.weight(); i++ {
			candidates = append(candidates, m)
		}
	}

	core.Shuffle(rng, len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	choices := make([]Mutator, 0, n)
	seen := make(map[string]bool)
	for _, m := range candidates {
		if len(choices) == n {
			break
		}
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		choices = append(choices, m)
	}
	return choices
}
