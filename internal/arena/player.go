// Package arena implements the deterministic simulation core for the arena
// combat game: player and enemy entities, the combat resolver, the
// mutator/affix/contract systems and the wave orchestrator. It contains no
// external dependencies (especially no Bubble Tea) so the logic stays pure
// and testable; the platform handles input mapping, timing, and display.
package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/core"
)

// AttackKind identifies the player's active attack, if any.
type AttackKind int

const (
	AttackNone AttackKind = iota
	AttackLight
	AttackHeavy
	AttackPulse
)

func (k AttackKind) String() string {
	switch k {
	case AttackLight:
		return "light"
	case AttackHeavy:
		return "heavy"
	case AttackPulse:
		return "pulse"
	default:
		return "none"
	}
}

// Player combat tuning. World units are pixels-ish: the default arena radius
// is 250 and base move speed 150 units/second.
const (
	PlayerRadius = 8.0

	dashSpeedMult   = 3.2
	dashDuration    = 0.18
	dashIFrameBonus = 0.08 // i-frames outlast the dash slightly
	dashCooldown    = 1.2
	dashEnergyCost  = 25.0

	lightBaseDamage = 12.0
	lightDuration   = 0.18
	lightCooldown   = 0.32
	lightRange      = 55.0
	lightHalfArc    = math.Pi / 3

	comboCap        = 5
	comboWindow     = 2.0
	comboDamageStep = 0.15 // light damage bonus per combo step

	heavyBaseDamage = 28.0
	heavyDuration   = 0.35
	heavyCooldown   = 0.9
	heavyRange      = 70.0
	heavyHalfArc    = math.Pi * 0.42
	heavyMaxCharge  = 1.0
	heavyCreepMult  = 0.45 // movement fraction while charging

	attackMoveMult = 0.3 // movement fraction mid-attack

	pulseDamage     = 18.0
	pulseDuration   = 0.4
	pulseRange      = 110.0
	pulseEnergyCost = 35.0

	timeSlowCost     = 30.0
	timeSlowDuration = 2.5
	TimeSlowFactor   = 0.4

	hurtIFrames     = 0.8
	hurtFlashTime   = 0.15
	energyPerHit    = 4.0
	trailMaxEntries = 10
)

// Player is the singleton controllable entity of a run. It is created once at
// run start, mutated every tick, and persists through game over for display.
type Player struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Facing float64

	HP, MaxHP         float64
	Energy, MaxEnergy float64
	Speed             float64
	EnergyRegen       float64

	Dashing      bool
	DashTime     float64
	DashCooldown float64
	DashDir      core.Vec2

	Attack         AttackKind
	AttackTime     float64 // remaining duration of the active attack
	AttackTotal    float64 // full duration of the active attack
	AttackCooldown float64
	AttackHitDone  bool // one swing hits at most once

	Combo      int
	ComboDecay float64

	HeavyCharging bool
	ChargeTime    float64
	ChargeRatio   float64 // charge factor of the released heavy, 0..1

	TimeSlowActive bool
	TimeSlowTime   float64

	IFrames   float64
	FlashTime float64
	Alive     bool

	// Cosmetic trailing positions, maintained only while dashing.
	Trail []core.Vec2
}

// NewPlayer creates a player at the arena center with the given base stats.
func NewPlayer(maxHP, maxEnergy, speed, regen float64) *Player {
	return &Player{
		HP:          maxHP,
		MaxHP:       maxHP,
		Energy:      maxEnergy,
		MaxEnergy:   maxEnergy,
		Speed:       speed,
		EnergyRegen: regen,
		Alive:       true,
		Trail:       make([]core.Vec2, 0, trailMaxEntries),
	}
}

// Update advances the player by one tick. The ordering below is load-bearing:
// timers first, then attack resolution, then movement, then integration and
// arena clamping. Side effects are confined to the player itself.
func (p *Player) Update(in core.Input, dt float64, mods CombinedModifiers, lvl LevelContext) {
	if !p.Alive {
		return
	}

	// Timers.
	p.IFrames = math.Max(0, p.IFrames-dt)
	p.FlashTime = math.Max(0, p.FlashTime-dt)
	p.DashCooldown = math.Max(0, p.DashCooldown-dt)
	p.AttackCooldown = math.Max(0, p.AttackCooldown-dt)
	if p.ComboDecay > 0 {
		p.ComboDecay -= dt
		if p.ComboDecay <= 0 {
			p.Combo = 0
		}
	}

	// Time-slow window decay.
	if p.TimeSlowActive {
		p.TimeSlowTime -= dt
		if p.TimeSlowTime <= 0 {
			p.TimeSlowActive = false
		}
	}

	// Active attack winds down.
	if p.Attack != AttackNone {
		p.AttackTime -= dt
		if p.AttackTime <= 0 {
			p.Attack = AttackNone
			p.AttackTime = 0
		}
	}

	// Movement intent. Diagonals normalize to unit length.
	move := core.Vec2{}
	if in.Up {
		move.Y -= 1
	}
	if in.Down {
		move.Y += 1
	}
	if in.Left {
		move.X -= 1
	}
	if in.Right {
		move.X += 1
	}
	moving := move.X != 0 || move.Y != 0
	if moving {
		move = move.Normalize()
		p.Facing = move.Angle() // retained when idle
	}

	// Heavy charge start / continue / release.
	p.resolveHeavyCharge(in, dt, mods)

	// Dash start. Blocked mid-attack; costs energy; grants i-frames slightly
	// longer than the dash itself; cooldown starts immediately.
	cost := dashEnergyCost * mods.Mult.EnergyCost
	if in.Dash && !p.Dashing && p.Attack == AttackNone && p.DashCooldown <= 0 && p.Energy >= cost {
		p.Dashing = true
		p.DashTime = dashDuration
		p.IFrames = math.Max(p.IFrames, dashDuration+dashIFrameBonus)
		p.DashCooldown = dashCooldown * mods.Mult.DashCooldown
		p.Energy -= cost
		if moving {
			p.DashDir = move
		} else {
			p.DashDir = core.FromAngle(p.Facing)
		}
	}
	if p.Dashing {
		p.DashTime -= dt
		if p.DashTime <= 0 {
			p.Dashing = false
		}
	}

	// Velocity by priority: dash > attack-lock > heavy-charge creep > free.
	speed := p.Speed * mods.Mult.Speed
	switch {
	case p.Dashing:
		p.Vel = p.DashDir.Scale(speed * dashSpeedMult)
	case p.Attack != AttackNone:
		p.Vel = move.Scale(speed * attackMoveMult)
	case p.HeavyCharging:
		p.Vel = move.Scale(speed * heavyCreepMult)
	default:
		p.Vel = move.Scale(speed)
	}

	// Light attack and pulse wave starts. Both blocked while attacking,
	// dashing, or charging a heavy.
	canStart := p.Attack == AttackNone && !p.Dashing && !p.HeavyCharging
	if in.Light && canStart && p.AttackCooldown <= 0 {
		p.beginAttack(AttackLight, lightDuration, lightCooldown*mods.Mult.AttackCooldown)
		p.Combo = core.Min(p.Combo+1, comboCap)
		p.ComboDecay = comboWindow + mods.Bonus.ComboWindow
	}
	pulseCost := pulseEnergyCost * mods.Mult.EnergyCost
	if in.Pulse && canStart && p.Attack == AttackNone && p.Energy >= pulseCost {
		p.beginAttack(AttackPulse, pulseDuration, 0)
		p.Energy -= pulseCost
	}

	// Time slow.
	slowCost := timeSlowCost * mods.Mult.EnergyCost
	if mods.Caps.FreeSlow {
		slowCost = 0
	}
	if in.TimeSlow && !p.TimeSlowActive && p.Energy >= slowCost {
		p.TimeSlowActive = true
		p.TimeSlowTime = timeSlowDuration
		p.Energy -= slowCost
	}

	// Energy regen up to cap.
	p.Energy = math.Min(p.MaxEnergy, p.Energy+(p.EnergyRegen+mods.Bonus.EnergyRegen)*dt)

	// Integrate and clamp to the circular arena (radial clamp, no bounce).
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Pos = clampToArena(p.Pos, PlayerRadius, lvl)
	p.Pos = pushOutOfObstacles(p.Pos, PlayerRadius, lvl)

	// Dash trail ring buffer.
	if p.Dashing {
		p.Trail = append(p.Trail, p.Pos)
		if len(p.Trail) > trailMaxEntries {
			p.Trail = p.Trail[1:]
		}
	} else if len(p.Trail) > 0 {
		p.Trail = p.Trail[:0]
	}
}

// resolveHeavyCharge handles the charge state machine. Release happens on
// explicit release input or at max charge, whichever comes first.
func (p *Player) resolveHeavyCharge(in core.Input, dt float64, mods CombinedModifiers) {
	if !p.HeavyCharging {
		if in.HeavyPress && p.Attack == AttackNone && p.AttackCooldown <= 0 && !p.Dashing {
			p.HeavyCharging = true
			p.ChargeTime = 0
		}
		return
	}

	p.ChargeTime += dt
	if in.HeavyRelease || p.ChargeTime >= heavyMaxCharge {
		p.HeavyCharging = false
		p.ChargeRatio = core.ClampF(p.ChargeTime/heavyMaxCharge, 0, 1)
		p.beginAttack(AttackHeavy, heavyDuration, heavyCooldown*mods.Mult.AttackCooldown)
	}
}

func (p *Player) beginAttack(kind AttackKind, duration, cooldown float64) {
	p.Attack = kind
	p.AttackTime = duration
	p.AttackTotal = duration
	p.AttackCooldown = cooldown
	p.AttackHitDone = false
}

// Damage applies incoming damage to the player. It is a no-op returning false
// while invulnerable, dashing, or already dead. Lethal-hit interception (Last
// Stand) lives in the combat resolver, not here.
func (p *Player) Damage(amount float64) bool {
	if !p.Alive || p.IFrames > 0 || p.Dashing {
		return false
	}
	p.HP -= amount
	p.IFrames = hurtIFrames
	p.FlashTime = hurtFlashTime
	if p.HP <= 0 {
		p.HP = 0
		p.Alive = false
	}
	return true
}

// attackRange returns the reach of the given attack kind.
func attackRange(kind AttackKind) float64 {
	switch kind {
	case AttackHeavy:
		return heavyRange
	case AttackPulse:
		return pulseRange
	default:
		return lightRange
	}
}

// attackHalfArc returns the angular half-width of the given attack kind.
// Pulse is radial: the full circle.
func attackHalfArc(kind AttackKind) float64 {
	switch kind {
	case AttackHeavy:
		return heavyHalfArc
	case AttackPulse:
		return math.Pi
	default:
		return lightHalfArc
	}
}

// clampToArena keeps a position inside the circular arena boundary,
// clamping radially toward the center.
func clampToArena(pos core.Vec2, radius float64, lvl LevelContext) core.Vec2 {
	maxDist := lvl.ArenaRadius - radius
	d := pos.Len()
	if d <= maxDist || maxDist <= 0 {
		return pos
	}
	return pos.Normalize().Scale(maxDist)
}

// pushOutOfObstacles resolves overlap with the level's static blockers,
// pushing the body radially out of each one it intersects.
func pushOutOfObstacles(pos core.Vec2, radius float64, lvl LevelContext) core.Vec2 {
	for _, o := range lvl.Obstacles() {
		to := pos.Sub(o.Pos)
		min := o.Radius + radius
		d := to.Len()
		if d >= min {
			continue
		}
		if d == 0 {
			// Dead center: pick an arbitrary eject direction.
			to = core.V(1, 0)
			d = 1
		}
		pos = o.Pos.Add(to.Scale(min / d))
	}
	return pos
}
