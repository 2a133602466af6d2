package arena

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-arena/internal/core"
)

func unitScale() spawnScale {
	return spawnScale{HP: 1, Damage: 1, Speed: 1}
}

func testRng() core.Rand {
	return core.NewSeededRand(1)
}

func TestNormalEnemyChasesPlayer(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyNormal, core.V(200, 0), unitScale(), nil, testRng())

	start := e.Pos.Dist(p.Pos)
	for i := 0; i < 60; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if got := e.Pos.Dist(p.Pos); got >= start {
		t.Errorf("enemy did not close distance: %v -> %v", start, got)
	}
}

func TestNormalEnemyFiresInRange(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyNormal, core.V(20, 0), unitScale(), nil, testRng())
	e.AttackTimer = 0

	e.Update(p, testDt, 1, testLevel(), testRng())

	if !e.Attacking || e.AttackWindow <= 0 {
		t.Error("enemy in range with expired cooldown did not attack")
	}
}

func TestEnemyNeverAttacksOnSpawnTick(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyNormal, core.V(20, 0), unitScale(), nil, testRng())

	e.Update(p, testDt, 1, testLevel(), testRng())

	if e.Attacking {
		t.Error("fresh enemy attacked before its first cooldown elapsed")
	}
}

func TestTimeScaleSlowsEnemyClock(t *testing.T) {
	p := testPlayer()
	lvl := testLevel()
	full := newEnemy(1, EnemyNormal, core.V(200, 0), unitScale(), nil, testRng())
	slow := newEnemy(2, EnemyNormal, core.V(200, 0), unitScale(), nil, testRng())

	for i := 0; i < 60; i++ {
		full.Update(p, testDt, 1, lvl, testRng())
		slow.Update(p, testDt, 0.4, lvl, testRng())
	}

	fullMoved := 200 - full.Pos.Dist(p.Pos)
	slowMoved := 200 - slow.Pos.Dist(p.Pos)
	if slowMoved >= fullMoved {
		t.Errorf("slowed enemy moved %v, full-speed moved %v", slowMoved, fullMoved)
	}
}

func TestEnemyFlashIgnoresTimeScale(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyNormal, core.V(200, 0), unitScale(), nil, testRng())
	e.FlashTime = enemyFlashTime

	// Even at a heavy slow, the flash runs out on wall-clock time.
	for i := 0; i < int(enemyFlashTime/testDt)+2; i++ {
		e.Update(p, testDt, 0.1, testLevel(), testRng())
	}
	if e.FlashTime != 0 {
		t.Errorf("flash time = %v under time slow, want 0", e.FlashTime)
	}
}

func TestSniperTelegraphLocksAngle(t *testing.T) {
	p := testPlayer()
	p.Pos = core.V(0, 0)
	e := newEnemy(1, EnemySniper, core.V(sniperStandoff, 0), unitScale(), nil, testRng())
	e.AttackTimer = 0

	e.Update(p, testDt, 1, testLevel(), testRng())
	if !e.Aiming {
		t.Fatal("sniper at standoff with expired cooldown did not aim")
	}
	locked := e.AimAngle

	// The player moves; the locked angle must not follow.
	p.Pos = core.V(0, 100)
	for i := 0; i < 10; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if e.AimAngle != locked {
		t.Errorf("aim angle drifted from %v to %v during telegraph", locked, e.AimAngle)
	}

	// After the full warning the shot fires.
	for i := 0; e.Aiming && i < int(sniperWarnTime/testDt)+5; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if e.Aiming {
		t.Error("sniper still aiming after warn time")
	}
	if !e.Attacking {
		t.Error("sniper did not fire after telegraph")
	}
}

func TestSniperKeepsStandoffDistance(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemySniper, core.V(50, 0), unitScale(), nil, testRng())

	e.Update(p, testDt, 1, testLevel(), testRng())

	// Too close: the sniper retreats, increasing distance.
	if e.Vel.X <= 0 {
		t.Errorf("sniper velocity %+v, want retreat away from player", e.Vel)
	}
}

func TestHeavyShockwaveExpands(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyHeavy, core.V(30, 0), unitScale(), nil, testRng())
	e.AttackTimer = 0

	e.Update(p, testDt, 1, testLevel(), testRng())
	if e.ShockTime <= 0 {
		t.Fatal("heavy attack did not start a shockwave")
	}

	r1 := e.shockRadius()
	e.Update(p, testDt, 1, testLevel(), testRng())
	r2 := e.shockRadius()
	if r2 <= r1 {
		t.Errorf("shock radius did not expand: %v -> %v", r1, r2)
	}

	// Expired shockwave reports inactive.
	for i := 0; i < int(heavyShockDuration/testDt)+5; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if e.shockRadius() >= 0 {
		t.Error("expired shockwave still reports a radius")
	}
}

func TestFastDodgeRespectsCooldown(t *testing.T) {
	e := newEnemy(1, EnemyFast, core.V(30, 0), unitScale(), nil, testRng())
	e.DodgeCooldown = 1

	if e.tryDodge(testRng()) {
		t.Error("dodge fired during cooldown")
	}

	// Only fast enemies dodge at all.
	n := newEnemy(2, EnemyNormal, core.V(30, 0), unitScale(), nil, testRng())
	for i := 0; i < 100; i++ {
		if n.tryDodge(testRng()) {
			t.Fatal("non-fast enemy dodged")
		}
	}
}

func TestStunnedDodgerStaysInArena(t *testing.T) {
	lvl := testLevel()
	rng := testRng()
	e := newEnemy(1, EnemyFast, core.V(0, 0), unitScale(), nil, rng)
	limit := lvl.ArenaRadius - e.Radius

	// Force a dodge that lands outside the boundary.
	escaped := false
	for i := 0; i < 200 && !escaped; i++ {
		e.DodgeCooldown = 0
		e.Pos = core.V(limit, 0)
		escaped = e.tryDodge(rng) && e.Pos.Len() > limit
	}
	if !escaped {
		t.Fatal("could not provoke an out-of-bounds dodge")
	}

	// A stunned enemy must still be pulled back on the next tick.
	e.StunTime = 0.5
	p := testPlayer()
	e.Update(p, testDt, 1, lvl, rng)

	if dist := e.Pos.Len(); dist > limit+0.001 {
		t.Errorf("stunned enemy outside arena: dist %v, limit %v", dist, limit)
	}
}

func TestShielderBlocksFrontalOnly(t *testing.T) {
	e := newEnemy(1, EnemyShielder, core.V(100, 0), unitScale(), nil, testRng())
	e.Facing = math.Pi // shield toward the arena center

	if !e.blocksFrontal(core.V(0, 0)) {
		t.Error("frontal attack not blocked")
	}
	if e.blocksFrontal(core.V(200, 0)) {
		t.Error("attack from behind blocked")
	}
}

func TestShielderEnrageIsOneWay(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyShielder, core.V(100, 0), unitScale(), nil, testRng())
	baseSpeed := e.Speed

	e.HP = e.MaxHP * 0.4
	e.Update(p, testDt, 1, testLevel(), testRng())
	if !e.Enraged {
		t.Fatal("shielder below half HP did not enrage")
	}
	if e.Speed <= baseSpeed {
		t.Error("enrage did not raise speed")
	}
	enragedSpeed := e.Speed

	// Healing back up does not restore the shield or reset the speed.
	e.HP = e.MaxHP
	e.Update(p, testDt, 1, testLevel(), testRng())
	if !e.Enraged {
		t.Error("enrage reverted")
	}
	if e.Speed != enragedSpeed {
		t.Error("enrage speed applied more than once or reverted")
	}
	if e.blocksFrontal(core.V(0, 0)) {
		t.Error("enraged shielder still blocks")
	}
}

func TestSpawnerRequestsAdds(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemySpawner, core.V(30, 0), unitScale(), nil, testRng())

	spawned := 0
	for i := 0; i < int(spawnerInterval/testDt)*(spawnerCap+2); i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
		if e.PendingSpawn {
			e.PendingSpawn = false
			e.SpawnedCount++
			spawned++
		}
	}
	if spawned != spawnerCap {
		t.Errorf("spawner produced %d adds, want cap %d", spawned, spawnerCap)
	}
}

func TestBossPhasesAreMonotonic(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyBoss, core.V(200, 0), unitScale(), nil, testRng())
	baseSpeed := e.Speed

	e.HP = e.MaxHP * 0.6
	e.Update(p, testDt, 1, testLevel(), testRng())
	if e.BossPhase != 2 {
		t.Fatalf("phase = %d at 60%% HP, want 2", e.BossPhase)
	}
	if e.Speed != baseSpeed+bossPhase2SpeedUp {
		t.Errorf("speed = %v, want %v", e.Speed, baseSpeed+bossPhase2SpeedUp)
	}

	// More ticks in phase 2 must not stack the bonus.
	for i := 0; i < 30; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if e.Speed != baseSpeed+bossPhase2SpeedUp {
		t.Errorf("phase-2 speed bonus applied more than once: %v", e.Speed)
	}

	e.HP = e.MaxHP * 0.2
	e.Update(p, testDt, 1, testLevel(), testRng())
	if e.BossPhase != 3 {
		t.Fatalf("phase = %d at 20%% HP, want 3", e.BossPhase)
	}
	if !e.SpawnMinions {
		t.Error("phase 3 transition did not request minions")
	}

	// Healing never walks the phase back.
	e.HP = e.MaxHP
	e.Update(p, testDt, 1, testLevel(), testRng())
	if e.BossPhase != 3 {
		t.Errorf("phase regressed to %d", e.BossPhase)
	}
}

func TestBossChargeCycle(t *testing.T) {
	p := testPlayer()
	e := newEnemy(1, EnemyBoss, core.V(200, 0), unitScale(), nil, testRng())
	e.AttackTimer = 0

	e.Update(p, testDt, 1, testLevel(), testRng())
	if e.ChargePhase != bossWindup {
		t.Fatalf("charge phase = %v, want windup", e.ChargePhase)
	}

	for i := 0; i < int(bossChargeWindup/testDt)+2; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if e.ChargePhase != bossCharging {
		t.Fatalf("charge phase = %v after windup, want charging", e.ChargePhase)
	}

	// The charge runs at a hard speed multiple.
	if sp := e.Vel.Len(); sp < e.Speed*bossChargeSpeedMult*0.9 {
		t.Errorf("charge speed = %v, want about %v", sp, e.Speed*bossChargeSpeedMult)
	}
}

func TestAffixDamageReductionFloorsAtOne(t *testing.T) {
	af := affixByID("armored")
	if af == nil {
		t.Fatal("armored affix missing from pool")
	}
	e := newEnemy(1, EnemyNormal, core.V(0, 0), unitScale(), af, testRng())
	hp := e.HP

	e.DamageBy(2, core.V(1, 0), 0) // 2 * 0.4 = 0.8, floored to 1
	if got := hp - e.HP; got != 1 {
		t.Errorf("chip damage = %v, want floor of 1", got)
	}
}

func TestAffixBerserkTriggersOnce(t *testing.T) {
	af := affixByID("berserker")
	if af == nil {
		t.Fatal("berserker affix missing from pool")
	}
	p := testPlayer()
	e := newEnemy(1, EnemyNormal, core.V(200, 0), unitScale(), af, testRng())
	baseSpeed := e.Speed

	e.HP = e.MaxHP * 0.3
	e.Update(p, testDt, 1, testLevel(), testRng())
	if !e.Berserked {
		t.Fatal("berserk did not trigger below threshold")
	}
	want := baseSpeed * 1.5
	if e.Speed != want {
		t.Fatalf("berserk speed = %v, want %v", e.Speed, want)
	}
	for i := 0; i < 30; i++ {
		e.Update(p, testDt, 1, testLevel(), testRng())
	}
	if e.Speed != want {
		t.Errorf("berserk speed stacked: %v", e.Speed)
	}
}

func TestDeadEnemyIsInert(t *testing.T) {
	e := newEnemy(1, EnemyNormal, core.V(50, 0), unitScale(), nil, testRng())
	e.DamageBy(1000, core.V(1, 0), 100)
	if e.Alive {
		t.Fatal("enemy alive after lethal damage")
	}
	if e.DamageBy(10, core.V(1, 0), 0) {
		t.Error("dead enemy reported a kill twice")
	}
	pos := e.Pos
	e.Update(testPlayer(), testDt, 1, testLevel(), testRng())
	if e.Pos != pos {
		t.Error("dead enemy moved")
	}
}
