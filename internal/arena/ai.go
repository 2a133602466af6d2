package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/core"
)

// Update advances one enemy by one tick. timeScale multiplies the enemy's
// internal clocks (from global time-slow effects) but not its cosmetic flash
// timer: visual feedback must not look slowed even when gameplay is.
func (e *Enemy) Update(p *Player, dt, timeScale float64, lvl LevelContext, rng core.Rand) {
	if !e.Alive {
		return
	}

	// Cosmetic flash runs on wall-clock dt.
	e.FlashTime = math.Max(0, e.FlashTime-dt)

	sdt := dt * timeScale

	e.applyAffixTick(sdt)

	// Knockback overrides AI entirely while it lasts.
	if e.KnockVel.LenSq() > knockbackMinSq {
		e.Pos = e.Pos.Add(e.KnockVel.Scale(sdt))
		e.KnockVel = e.KnockVel.Scale(knockbackDecay)
		e.Pos = clampToArena(e.Pos, e.Radius, lvl)
		e.Pos = pushOutOfObstacles(e.Pos, e.Radius, lvl)
		return
	}
	e.KnockVel = core.Vec2{}

	// Stun zeroes velocity and skips AI. The clamp still runs: a dodge can
	// displace the enemy past the boundary between ticks.
	if e.StunTime > 0 {
		e.StunTime -= sdt
		e.Vel = core.Vec2{}
		e.Pos = clampToArena(e.Pos, e.Radius, lvl)
		return
	}

	if e.AttackTimer > 0 {
		e.AttackTimer -= sdt
	}
	if e.AttackWindow > 0 {
		e.AttackWindow -= sdt
		if e.AttackWindow <= 0 {
			e.Attacking = false
		}
	}
	if e.ShockTime > 0 {
		e.ShockTime -= sdt
	}
	if e.DodgeCooldown > 0 {
		e.DodgeCooldown -= sdt
	}

	toPlayer := p.Pos.Sub(e.Pos)
	dist := toPlayer.Len()
	dir := toPlayer.Normalize()

	switch e.Type {
	case EnemyNormal:
		e.aiNormal(dist, dir)
	case EnemySniper:
		e.aiSniper(p, dist, dir, sdt)
	case EnemyHeavy:
		e.aiHeavy(dist, dir)
	case EnemyFast:
		e.aiFast(p, dist, dir, sdt)
	case EnemyShielder:
		e.aiShielder(dist, dir)
	case EnemySpawner:
		e.aiSpawner(sdt, lvl)
	case EnemyBoss:
		e.aiBoss(p, dist, dir, sdt)
	}

	e.Pos = e.Pos.Add(e.Vel.Scale(sdt))
	e.Pos = clampToArena(e.Pos, e.Radius, lvl)
	e.Pos = pushOutOfObstacles(e.Pos, e.Radius, lvl)
}

// applyAffixTick runs the per-enemy mutable affix behaviors: regeneration and
// the one-shot berserk speed boost below the threshold HP ratio.
func (e *Enemy) applyAffixTick(sdt float64) {
	if e.Affix == nil {
		return
	}
	if e.Affix.RegenPerSec > 0 && e.HP < e.MaxHP {
		e.RegenAccum += e.Affix.RegenPerSec * sdt
		if e.RegenAccum >= 1 {
			heal := math.Floor(e.RegenAccum)
			e.RegenAccum -= heal
			e.HP = math.Min(e.MaxHP, e.HP+heal)
		}
	}
	if e.Affix.BerserkThreshold > 0 && !e.Berserked && e.hpRatio() <= e.Affix.BerserkThreshold {
		e.Berserked = true
		e.Speed *= 1.5
	}
}

// fireAttack opens the active hit window and restarts the cooldown.
func (e *Enemy) fireAttack(window float64) {
	e.Attacking = true
	e.AttackWindow = window
	e.AttackTimer = e.AttackCooldown
}

func (e *Enemy) aiNormal(dist float64, dir core.Vec2) {
	const creepMult = 0.3
	if dist > e.AttackRange+10 {
		e.Vel = dir.Scale(e.Speed)
		return
	}
	e.Vel = dir.Scale(e.Speed * creepMult)
	if e.AttackTimer <= 0 {
		e.fireAttack(enemyAttackWindow)
	}
}

func (e *Enemy) aiSniper(p *Player, dist float64, dir core.Vec2, sdt float64) {
	// Telegraphed shot: lock the firing angle for the warning duration, then
	// fire a line attack along it.
	if e.Aiming {
		e.Vel = core.Vec2{}
		e.WarnTime -= sdt
		if e.WarnTime <= 0 {
			e.Aiming = false
			e.fireAttack(sniperFireWindow)
		}
		return
	}

	switch {
	case dist < sniperStandoff*0.7:
		e.Vel = dir.Scale(-e.Speed) // retreat
	case dist > sniperStandoff*1.3:
		e.Vel = dir.Scale(e.Speed) // approach
	default:
		e.Vel = core.Vec2{}
		if e.AttackTimer <= 0 {
			e.Aiming = true
			e.WarnTime = sniperWarnTime
			e.AimAngle = p.Pos.Sub(e.Pos).Angle() // locked until the shot
		}
	}
}

func (e *Enemy) aiHeavy(dist float64, dir core.Vec2) {
	if dist > e.AttackRange {
		e.Vel = dir.Scale(e.Speed)
		return
	}
	e.Vel = core.Vec2{} // roots in place to swing
	if e.AttackTimer <= 0 {
		e.fireAttack(enemyAttackWindow)
		e.startShockwave(heavyShockDuration, heavyShockMaxRadius)
	}
}

func (e *Enemy) startShockwave(duration, maxRadius float64) {
	e.ShockTime = duration
	e.ShockTotal = duration
	e.ShockMax = maxRadius
	e.ShockOrigin = e.Pos
	e.ShockHitDone = false
}

// shockRadius returns the current expanding ring radius, or -1 if inactive.
func (e *Enemy) shockRadius() float64 {
	if e.ShockTime <= 0 || e.ShockTotal <= 0 {
		return -1
	}
	return e.ShockMax * (1 - e.ShockTime/e.ShockTotal)
}

func (e *Enemy) aiFast(p *Player, dist float64, dir core.Vec2, sdt float64) {
	const orbitRange = 90.0
	if dist > orbitRange {
		// Approach at an angle, orbiting to the side on a time-based
		// sinusoidal offset so the path weaves instead of beelining.
		e.OrbitPhase += sdt * 3
		offset := math.Sin(e.OrbitPhase) * 0.8
		orbitDir := core.FromAngle(dir.Angle() + offset*e.OrbitDir)
		e.Vel = orbitDir.Scale(e.Speed)
		return
	}
	// Close in: high attack tempo at a speed penalty.
	e.Vel = dir.Scale(e.Speed * fastCloseSpeedMult)
	if dist <= e.AttackRange+5 && e.AttackTimer <= 0 {
		e.fireAttack(enemyAttackWindow * 0.6)
	}
}

// tryDodge gives a fast enemy a probabilistic sidestep out of an incoming
// light attack. Displacement is instant, in a random direction, with its own
// cooldown. Returns true if the dodge happened (the attack misses).
func (e *Enemy) tryDodge(rng core.Rand) bool {
	if e.Type != EnemyFast || e.DodgeCooldown > 0 {
		return false
	}
	if !core.Chance(rng, fastDodgeChance) {
		return false
	}
	angle := core.Range(rng, 0, 2*math.Pi)
	e.Pos = e.Pos.Add(core.FromAngle(angle).Scale(fastDodgeDistance))
	e.DodgeCooldown = fastDodgeCooldown
	return true
}

func (e *Enemy) aiShielder(dist float64, dir core.Vec2) {
	// The shield always tracks the player.
	e.Facing = dir.Angle()

	if !e.Enraged && e.hpRatio() <= 0.5 {
		// Shield drops for good; the enrage is one-way.
		e.Enraged = true
		e.Speed *= shielderEnrageMult
		e.AttackCooldown *= 0.6
	}

	if e.Enraged {
		if dist > e.AttackRange {
			e.Vel = dir.Scale(e.Speed)
		} else {
			e.Vel = core.Vec2{}
			if e.AttackTimer <= 0 {
				e.fireAttack(enemyAttackWindow)
			}
		}
		return
	}

	// Defensive stance: hold position, poke when the player comes close.
	e.Vel = core.Vec2{}
	if dist <= e.AttackRange && e.AttackTimer <= 0 {
		e.fireAttack(enemyAttackWindow)
	}
}

// blocksFrontal reports whether the shielder's raised shield covers an attack
// arriving from the given direction (attacker position relative to shielder).
func (e *Enemy) blocksFrontal(from core.Vec2) bool {
	if e.Type != EnemyShielder || e.Enraged {
		return false
	}
	incoming := from.Sub(e.Pos).Angle()
	return math.Abs(core.AngleDiff(incoming, e.Facing)) <= shielderBlockArc
}

func (e *Enemy) aiSpawner(sdt float64, lvl LevelContext) {
	// Drifts toward the arena center and holds there.
	const holdRadius = 40.0
	if e.Pos.Len() > holdRadius {
		e.Vel = e.Pos.Normalize().Scale(-e.Speed)
	} else {
		e.Vel = core.Vec2{}
	}

	if e.SpawnedCount >= spawnerCap {
		return
	}
	e.SpawnTimer -= sdt
	if e.SpawnTimer <= 0 {
		e.SpawnTimer = spawnerInterval
		e.PendingSpawn = true // the orchestrator instantiates the add
	}
}

func (e *Enemy) aiBoss(p *Player, dist float64, dir core.Vec2, sdt float64) {
	// HP-gated phase machine. Transitions are monotonic one-way edges; the
	// phase-2 speed bonus is applied here and only here.
	if e.BossPhase == 1 && e.hpRatio() <= 0.66 {
		e.BossPhase = 2
		e.Speed += bossPhase2SpeedUp
	}
	if e.BossPhase == 2 && e.hpRatio() <= 0.33 {
		e.BossPhase = 3
		e.SpawnMinions = true // one-shot, consumed by the orchestrator
	}

	// Radial ring pulse on its own clock from phase 2 on.
	if e.BossPhase >= 2 {
		e.RingTimer -= sdt
		if e.RingTimer <= 0 {
			e.RingTimer = bossRingInterval
			e.startShockwave(bossRingDuration, bossRingMaxRadius)
		}
	}

	// Windup -> charge -> recover dash cycle, independent of phase.
	switch e.ChargePhase {
	case bossIdle:
		e.Vel = dir.Scale(e.Speed)
		if e.AttackTimer <= 0 {
			e.ChargePhase = bossWindup
			e.ChargeTimer = bossChargeWindup
		}
	case bossWindup:
		// Telegraph: creep toward the player while winding up.
		e.Vel = dir.Scale(e.Speed * bossCreepMult)
		e.ChargeTimer -= sdt
		if e.ChargeTimer <= 0 {
			e.ChargePhase = bossCharging
			e.ChargeTimer = bossChargeDuration
			e.ChargeDir = p.Pos.Sub(e.Pos).Normalize()
		}
	case bossCharging:
		e.Vel = e.ChargeDir.Scale(e.Speed * bossChargeSpeedMult)
		e.ChargeTimer -= sdt
		arrived := dist <= e.AttackRange
		if arrived || e.ChargeTimer <= 0 {
			e.fireAttack(enemyAttackWindow)
			e.ChargePhase = bossRecover
			e.ChargeTimer = bossChargeRecover
		}
	case bossRecover:
		e.Vel = core.Vec2{}
		e.ChargeTimer -= sdt
		if e.ChargeTimer <= 0 {
			e.ChargePhase = bossIdle
			e.AttackTimer = e.AttackCooldown
		}
	}
}
