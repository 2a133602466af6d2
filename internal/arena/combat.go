package arena

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-arena/internal/core"
)

// Combat resolver tuning.
const (
	knockLight = 120.0
	knockHeavy = 260.0
	knockPulse = 200.0

	chainMaxTargets = 3
	chainDamageMult = 0.5
	chainRange      = 90.0

	hitFreezeLight = 0.03
	hitFreezeHeavy = 0.08
	shakeLight     = 1.5
	shakeHeavy     = 4.0

	lastStandIFrames  = 2.0
	lastStandSlowTime = 1.5

	volatileExplodeRadius = 45.0
	volatileExplodeDamage = 12.0
)

// HitEffect is a one-tick visual event the renderer consumes.
type HitEffect struct {
	Pos     core.Vec2
	Kind    AttackKind
	Blocked bool // shielder absorbed it
}

// DamageNumber is a floating damage readout spawned at the hit position.
type DamageNumber struct {
	Pos    core.Vec2
	Amount float64
}

// KillRecord is one enemy death attributed to the player this tick.
type KillRecord struct {
	Type  EnemyType
	Pos   core.Vec2
	Score int
}

// AttackResult aggregates everything a player attack pass produced. The
// orchestrator folds it into score, contract progress, energy, and effects.
type AttackResult struct {
	Hits     []HitEffect
	Numbers  []DamageNumber
	Kills    []KillRecord
	Energy   float64
	Shake    float64
	Freeze   float64
	HitCount int
}

// PlayerHit is the outcome of an enemy attack pass against the player.
type PlayerHit struct {
	Took      bool
	Amount    float64
	By        EnemyType
	Dir       core.Vec2 // hit direction, enemy toward player
	LastStand bool      // lethal hit converted to survival at 1 HP
}

// attackDamage computes the damage one swing of the given kind deals before
// shield or affix reduction. Light scales with the combo counter, heavy with
// the released charge ratio.
func attackDamage(p *Player, kind AttackKind, mods CombinedModifiers) float64 {
	var base float64
	switch kind {
	case AttackHeavy:
		base = heavyBaseDamage * (1 + p.ChargeRatio)
	case AttackPulse:
		base = pulseDamage
	default:
		combo := p.Combo
		if combo < 1 {
			combo = 1
		}
		base = lightBaseDamage * (1 + comboDamageStep*float64(combo-1))
	}
	return base * mods.Mult.Damage
}

// attackKnockback returns the knockback magnitude per attack kind.
func attackKnockback(kind AttackKind) float64 {
	switch kind {
	case AttackHeavy:
		return knockHeavy
	case AttackPulse:
		return knockPulse
	default:
		return knockLight
	}
}

// inAttackArc reports whether an enemy intersects the player's current swing:
// a sector of attackRange reach and attackHalfArc half-width centered on the
// facing angle. The enemy's body radius extends the reach check.
func inAttackArc(p *Player, e *Enemy, kind AttackKind) bool {
	to := e.Pos.Sub(p.Pos)
	dist := to.Len()
	if dist > attackRange(kind)+e.Radius {
		return false
	}
	if kind == AttackPulse {
		return true
	}
	return math.Abs(core.AngleDiff(to.Angle(), p.Facing)) <= attackHalfArc(kind)
}

// ResolvePlayerAttack applies the player's active attack to the enemy list.
// An attack connects exactly once, on the first tick past the midpoint of its
// duration (the visual swing reaches full extension there). Returns the zero
// result when nothing happened this tick.
func ResolvePlayerAttack(p *Player, enemies []*Enemy, mods CombinedModifiers, rng core.Rand) AttackResult {
	var res AttackResult
	if p.Attack == AttackNone || p.AttackHitDone {
		return res
	}
	// Hit moment: remaining time drops below half of the total.
	if p.AttackTime > p.AttackTotal/2 {
		return res
	}
	p.AttackHitDone = true

	kind := p.Attack
	dmg := attackDamage(p, kind, mods)
	knock := attackKnockback(kind)

	var struck []*Enemy
	for _, e := range enemies {
		if !e.Alive || !inAttackArc(p, e, kind) {
			continue
		}
		// Fast enemies may sidestep light attacks entirely.
		if kind == AttackLight && e.tryDodge(rng) {
			continue
		}
		if e.blocksFrontal(p.Pos) {
			// A blocked hit still registers as contact: effect, no damage.
			res.Hits = append(res.Hits, HitEffect{Pos: e.Pos, Kind: kind, Blocked: true})
			continue
		}
		struck = append(struck, e)
		res.applyHit(p, e, kind, dmg, knock, mods)
	}

	// Heavy chain: arc reduced damage to the nearest few enemies around each
	// struck target that the swing itself missed.
	if kind == AttackHeavy && mods.Caps.HeavyChain && len(struck) > 0 {
		res.applyChain(p, struck, enemies, dmg*chainDamageMult, mods)
	}

	// Blocked contacts count here too: a shield absorbing the swing still
	// lands with full impact feedback.
	if len(res.Hits) > 0 {
		switch kind {
		case AttackHeavy, AttackPulse:
			res.Shake = shakeHeavy
			res.Freeze = hitFreezeHeavy
		default:
			res.Shake = shakeLight
			res.Freeze = hitFreezeLight
		}
	}
	return res
}

// applyHit damages one enemy and records the outcome on the result.
func (res *AttackResult) applyHit(p *Player, e *Enemy, kind AttackKind, dmg, knock float64, mods CombinedModifiers) {
	dir := e.Pos.Sub(p.Pos)
	killed := e.DamageBy(dmg, dir, knock)

	res.HitCount++
	res.Hits = append(res.Hits, HitEffect{Pos: e.Pos, Kind: kind})
	res.Numbers = append(res.Numbers, DamageNumber{Pos: e.Pos, Amount: dmg})
	res.Energy += energyPerHit + mods.Bonus.EnergyOnHit
	if killed {
		res.Kills = append(res.Kills, KillRecord{Type: e.Type, Pos: e.Pos, Score: e.Score})
	}
}

func (res *AttackResult) applyChain(p *Player, struck, enemies []*Enemy, dmg float64, mods CombinedModifiers) {
	already := make(map[int]bool, len(struck))
	for _, e := range struck {
		already[e.ID] = true
	}

	type cand struct {
		e    *Enemy
		dist float64
	}
	var cands []cand
	for _, e := range enemies {
		if !e.Alive || already[e.ID] {
			continue
		}
		best := math.Inf(1)
		for _, s := range struck {
			if d := e.Pos.Dist(s.Pos); d < best {
				best = d
			}
		}
		if best <= chainRange {
			cands = append(cands, cand{e, best})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > chainMaxTargets {
		cands = cands[:chainMaxTargets]
	}
	for _, c := range cands {
		if c.e.blocksFrontal(p.Pos) {
			res.Hits = append(res.Hits, HitEffect{Pos: c.e.Pos, Kind: AttackHeavy, Blocked: true})
			continue
		}
		res.applyHit(p, c.e, AttackHeavy, dmg, knockLight, mods)
	}
}

// enemyHitsPlayer reports whether the enemy's currently open attack window
// connects with the player this tick, per archetype geometry.
func enemyHitsPlayer(e *Enemy, p *Player) bool {
	switch e.Type {
	case EnemySniper:
		return sniperBeamHits(e, p.Pos)
	default:
		return e.Pos.Dist(p.Pos) <= e.AttackRange+PlayerRadius
	}
}

// sniperBeamHits tests the locked sniper ray against the player: positive
// projection along the aim direction and perpendicular distance within the
// beam half-width.
func sniperBeamHits(e *Enemy, pos core.Vec2) bool {
	aim := core.FromAngle(e.AimAngle)
	to := pos.Sub(e.Pos)
	t := to.Dot(aim)
	if t < 0 {
		return false
	}
	perp := to.Sub(aim.Scale(t)).Len()
	return perp <= sniperBeamHalfWidth+PlayerRadius
}

// shockwaveHits tests the expanding ring hazard: the player must sit inside
// the ring band at its current radius. Each shockwave hits at most once.
func shockwaveHits(e *Enemy, pos core.Vec2) bool {
	r := e.shockRadius()
	if r < 0 || e.ShockHitDone {
		return false
	}
	d := e.ShockOrigin.Dist(pos)
	return math.Abs(d-r) <= shockRingWidth
}

// ResolveEnemyAttacks applies every enemy's open attack window and active
// shockwave to the player. At most one damaging hit lands per tick (i-frames
// from the first hit absorb the rest). When the hit would be lethal and
// lastStandAvailable is true, the player survives at 1 HP with extended
// invulnerability instead; the caller burns the flag.
func ResolveEnemyAttacks(p *Player, enemies []*Enemy, lastStandAvailable bool) PlayerHit {
	var hit PlayerHit
	for _, e := range enemies {
		if !e.Alive {
			continue
		}

		if shockwaveHits(e, p.Pos) {
			if applyPlayerDamage(p, e, e.Damage, lastStandAvailable, &hit) {
				e.ShockHitDone = true
			}
		}

		if e.Attacking && e.AttackWindow > 0 && enemyHitsPlayer(e, p) {
			if applyPlayerDamage(p, e, e.Damage, lastStandAvailable, &hit) {
				// A connected swing closes its window; the same swing never
				// hits twice.
				e.Attacking = false
				e.AttackWindow = 0
			}
		}
	}
	return hit
}

// applyPlayerDamage routes one damage instance through the Last Stand check
// and the player's own guards, recording the first landed hit.
func applyPlayerDamage(p *Player, e *Enemy, amount float64, lastStandAvailable bool, hit *PlayerHit) bool {
	if p.IFrames > 0 || p.Dashing || !p.Alive {
		return false
	}

	if lastStandAvailable && !hit.LastStand && p.HP-amount <= 0 {
		p.HP = 1
		p.IFrames = lastStandIFrames
		p.FlashTime = hurtFlashTime
		hit.Took = true
		hit.Amount = amount
		hit.By = e.Type
		hit.Dir = p.Pos.Sub(e.Pos).Normalize()
		hit.LastStand = true
		return true
	}

	if !p.Damage(amount) {
		return false
	}
	if !hit.Took {
		hit.Took = true
		hit.Amount = amount
		hit.By = e.Type
		hit.Dir = p.Pos.Sub(e.Pos).Normalize()
	}
	return true
}

// ExplodeVolatile applies a volatile enemy's death explosion to the player.
// Returns the damage dealt, 0 when out of range or absorbed.
func ExplodeVolatile(e *Enemy, p *Player) float64 {
	if e.Affix == nil || !e.Affix.ExplodeOnDeath {
		return 0
	}
	if e.Pos.Dist(p.Pos) > volatileExplodeRadius+PlayerRadius {
		return 0
	}
	if !p.Damage(volatileExplodeDamage) {
		return 0
	}
	return volatileExplodeDamage
}
