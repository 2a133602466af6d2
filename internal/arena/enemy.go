package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/core"
)

// EnemyType is the closed set of hostile archetypes. The AI dispatch switches
// exhaustively over it so the compiler flags a missing case when a new type
// is added.
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemySniper
	EnemyHeavy
	EnemyFast
	EnemyShielder
	EnemySpawner
	EnemyBoss
	enemyTypeCount
)

func (t EnemyType) String() string {
	switch t {
	case EnemyNormal:
		return "normal"
	case EnemySniper:
		return "sniper"
	case EnemyHeavy:
		return "heavy"
	case EnemyFast:
		return "fast"
	case EnemyShielder:
		return "shielder"
	case EnemySpawner:
		return "spawner"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// enemyStats is the per-archetype baseline before wave/level/affix scaling.
type enemyStats struct {
	HP          float64
	Speed       float64
	Damage      float64
	AttackRange float64
	Cooldown    float64
	Radius      float64
	Score       int
}

var baseStats = map[EnemyType]enemyStats{
	EnemyNormal:   {HP: 40, Speed: 80, Damage: 8, AttackRange: 30, Cooldown: 1.2, Radius: 10, Score: 10},
	EnemySniper:   {HP: 25, Speed: 70, Damage: 14, AttackRange: 300, Cooldown: 2.8, Radius: 9, Score: 15},
	EnemyHeavy:    {HP: 90, Speed: 45, Damage: 18, AttackRange: 40, Cooldown: 2.2, Radius: 16, Score: 25},
	EnemyFast:     {HP: 18, Speed: 140, Damage: 5, AttackRange: 25, Cooldown: 0.5, Radius: 7, Score: 15},
	EnemyShielder: {HP: 60, Speed: 60, Damage: 10, AttackRange: 32, Cooldown: 1.6, Radius: 12, Score: 20},
	EnemySpawner:  {HP: 70, Speed: 40, Damage: 0, AttackRange: 0, Cooldown: 0, Radius: 14, Score: 30},
	EnemyBoss:     {HP: 600, Speed: 65, Damage: 22, AttackRange: 45, Cooldown: 2.0, Radius: 24, Score: 200},
}

// Enemy AI tuning shared across archetypes.
const (
	enemyAttackWindow   = 0.25 // active hit window after an attack fires
	enemyStunTime       = 0.12
	enemyFlashTime      = 0.15
	knockbackDecay      = 0.9 // per tick, exponential
	knockbackMinSq      = 4.0 // below this the knockback is considered spent
	sniperWarnTime      = 0.8
	sniperStandoff      = 180.0
	sniperBeamHalfWidth = 12.0
	sniperFireWindow    = 0.15
	heavyShockDuration  = 0.5
	heavyShockMaxRadius = 90.0
	shockRingWidth      = 14.0
	fastDodgeChance     = 0.35
	fastDodgeDistance   = 60.0
	fastDodgeCooldown   = 1.5
	fastCloseSpeedMult  = 0.7
	shielderBlockArc    = math.Pi / 3 // ±60°
	shielderEnrageMult  = 1.5
	spawnerInterval     = 4.0
	spawnerCap          = 5
	bossChargeWindup    = 0.9
	bossChargeDuration  = 0.5
	bossChargeSpeedMult = 6.0
	bossChargeRecover   = 2.5
	bossCreepMult       = 0.35
	bossPhase2SpeedUp   = 25.0
	bossRingInterval    = 5.0
	bossRingDuration    = 0.8
	bossRingMaxRadius   = 140.0
)

// bossChargePhase enumerates the boss dash-attack cycle.
type bossChargePhase int

const (
	bossIdle bossChargePhase = iota
	bossWindup
	bossCharging
	bossRecover
)

// Enemy is one spawned hostile. Instances are created by the wave spawner (or
// a spawner enemy, or a boss phase transition) and removed once dead and
// their one-shot death effects have been dispatched.
type Enemy struct {
	ID   int
	Type EnemyType

	Pos    core.Vec2
	Vel    core.Vec2
	Facing float64

	HP, MaxHP float64
	Speed     float64
	Damage    float64
	Radius    float64
	Score     int

	AttackRange    float64
	AttackCooldown float64
	AttackTimer    float64 // counts down to next attack
	Attacking      bool
	AttackWindow   float64 // remaining active hit window

	FlashTime float64 // cosmetic, never scaled by time-slow
	StunTime  float64
	KnockVel  core.Vec2

	// Sniper.
	Aiming   bool
	AimAngle float64
	WarnTime float64

	// Heavy and boss shockwave hazard.
	ShockTime    float64 // remaining, 0 = inactive
	ShockTotal   float64
	ShockMax     float64
	ShockOrigin  core.Vec2
	ShockHitDone bool

	// Fast.
	DodgeCooldown float64
	OrbitDir      float64 // +1 or -1, picked at spawn
	OrbitPhase    float64

	// Shielder: enrages (drops shield, charges) below half HP.
	Enraged bool

	// Spawner.
	SpawnTimer   float64
	SpawnedCount int
	PendingSpawn bool // consumed by the orchestrator

	// Boss.
	BossPhase    int
	ChargePhase  bossChargePhase
	ChargeTimer  float64
	ChargeDir    core.Vec2
	RingTimer    float64
	SpawnMinions bool // one-shot, consumed by the orchestrator

	// Affix state. The descriptor is shared across the wave; the mutable
	// fields below are per enemy.
	Affix      *WaveAffix
	Berserked  bool
	RegenAccum float64

	Alive              bool
	DeathEffectEmitted bool
}

// spawnScale holds the wave/level/config multipliers folded into an enemy's
// stats at creation time.
type spawnScale struct {
	HP     float64
	Damage float64
	Speed  float64
}

// newEnemy constructs an enemy of the given type at pos, folding wave scaling
// and the wave's affix (if any) into its stats before first use.
func newEnemy(id int, t EnemyType, pos core.Vec2, scale spawnScale, affix *WaveAffix, rng core.Rand) *Enemy {
	st := baseStats[t]

	e := &Enemy{
		ID:             id,
		Type:           t,
		Pos:            pos,
		HP:             st.HP * scale.HP,
		Speed:          st.Speed * scale.Speed,
		Damage:         st.Damage * scale.Damage,
		Radius:         st.Radius,
		Score:          st.Score,
		AttackRange:    st.AttackRange,
		AttackCooldown: st.Cooldown,
		AttackTimer:    st.Cooldown, // never attacks on the spawn tick
		Alive:          true,
		Affix:          affix,
		BossPhase:      1,
		RingTimer:      bossRingInterval,
		SpawnTimer:     spawnerInterval,
	}

	if affix != nil {
		if affix.HPMult != 0 {
			e.HP *= affix.HPMult
		}
		if affix.SpeedMult != 0 {
			e.Speed *= affix.SpeedMult
		}
		if affix.CooldownMult != 0 {
			e.AttackCooldown *= affix.CooldownMult
			e.AttackTimer = e.AttackCooldown
		}
	}
	e.MaxHP = e.HP

	if t == EnemyFast {
		e.OrbitDir = 1
		if core.Chance(rng, 0.5) {
			e.OrbitDir = -1
		}
	}
	return e
}

// DamageBy applies damage with knockback to the enemy and reports whether
// this hit killed it. The active affix's damage reduction applies first, but
// reduced damage is floored at 1 so any defense value can still be chipped
// down. Calling on an already-dead enemy is a no-op returning false.
func (e *Enemy) DamageBy(raw float64, knockDir core.Vec2, knockMagnitude float64) bool {
	if !e.Alive || raw <= 0 {
		return false
	}

	dmg := raw
	if e.Affix != nil && e.Affix.DamageReduction > 0 {
		dmg = raw * (1 - e.Affix.DamageReduction)
		if dmg < 1 {
			dmg = 1
		}
	}

	e.HP -= dmg
	e.FlashTime = enemyFlashTime
	e.StunTime = enemyStunTime
	e.KnockVel = knockDir.Normalize().Scale(knockMagnitude)

	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		return true
	}
	return false
}

// hpRatio returns current HP as a fraction of max.
func (e *Enemy) hpRatio() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return e.HP / e.MaxHP
}
