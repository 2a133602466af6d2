package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
)

// LevelContext describes the arena the current wave plays in. It is threaded
// explicitly into every update so the combat code never reads level state
// from a global.
type LevelContext struct {
	Index          int
	Theme          string
	ArenaRadius    float64
	DifficultyMult float64
	ObstacleCount  int
}

// levelThemes cycle as the player advances; each level tightens or widens the
// arena and scales enemy stats.
var levelThemes = []struct {
	theme     string
	radiusMul float64
	diffMul   float64
	obstacles int
}{
	{theme: "courtyard", radiusMul: 1.0, diffMul: 1.0, obstacles: 0},
	{theme: "catacombs", radiusMul: 0.85, diffMul: 1.1, obstacles: 2},
	{theme: "rooftops", radiusMul: 0.75, diffMul: 1.2, obstacles: 3},
	{theme: "throne", radiusMul: 1.1, diffMul: 1.35, obstacles: 1},
}

// LevelForWave maps a 1-based wave number to its level context.
func LevelForWave(wave int, cfg config.ArenaConfig) LevelContext {
	per := cfg.Waves.WavesPerLevel
	if per < 1 {
		per = 5
	}
	idx := (wave - 1) / per
	th := levelThemes[idx%len(levelThemes)]
	// Each full cycle through the themes compounds difficulty.
	cycle := idx / len(levelThemes)
	diff := th.diffMul * math.Pow(1.25, float64(cycle))
	return LevelContext{
		Index:          idx + 1,
		Theme:          th.theme,
		ArenaRadius:    cfg.World.ArenaRadius * th.radiusMul,
		DifficultyMult: diff,
		ObstacleCount:  th.obstacles,
	}
}

// Obstacle is a static circular blocker inside the arena.
type Obstacle struct {
	Pos    core.Vec2
	Radius float64
}

const obstacleRadius = 14.0

// Obstacles returns the level's static blockers, spaced evenly on a mid-ring
// and rotated by level index. The layout is a pure function of the context so
// every run of a level sees the same arena.
func (lvl LevelContext) Obstacles() []Obstacle {
	if lvl.ObstacleCount <= 0 {
		return nil
	}
	obs := make([]Obstacle, lvl.ObstacleCount)
	ring := lvl.ArenaRadius * 0.55
	offset := 0.7 * float64(lvl.Index)
	for i := range obs {
		ang := offset + 2*math.Pi*float64(i)/float64(lvl.ObstacleCount)
		obs[i] = Obstacle{Pos: core.FromAngle(ang).Scale(ring), Radius: obstacleRadius}
	}
	return obs
}

// waveMix returns the enemy types that may spawn on a given wave. The roster
// unlocks gradually so early waves stay readable.
func waveMix(wave int) []EnemyType {
	mix := []EnemyType{EnemyNormal}
	if wave >= 2 {
		mix = append(mix, EnemyFast)
	}
	if wave >= 3 {
		mix = append(mix, EnemySniper)
	}
	if wave >= 4 {
		mix = append(mix, EnemyHeavy)
	}
	if wave >= 6 {
		mix = append(mix, EnemyShielder)
	}
	if wave >= 7 {
		mix = append(mix, EnemySpawner)
	}
	return mix
}

// IsBossWave reports whether the wave spawns a boss instead of the usual mix.
func IsBossWave(wave int, cfg config.ArenaConfig) bool {
	return cfg.Waves.BossInterval > 0 && wave%cfg.Waves.BossInterval == 0
}

// waveScale compounds wave number, level difficulty and config scales into
// the stat multipliers applied at spawn time.
func waveScale(wave int, lvl LevelContext, cfg config.ArenaConfig) spawnScale {
	w := float64(wave - 1)
	return spawnScale{
		HP:     (1 + 0.08*w) * lvl.DifficultyMult * cfg.Enemies.HPScale,
		Damage: (1 + 0.05*w) * lvl.DifficultyMult * cfg.Enemies.DamageScale,
		Speed:  cfg.Enemies.SpeedScale,
	}
}

// rimSpawnPos picks a spawn point on the arena rim, jittered inward so
// enemies never start exactly on the clamp boundary.
func rimSpawnPos(rng core.Rand, lvl LevelContext) core.Vec2 {
	ang := core.Range(rng, 0, 2*math.Pi)
	r := lvl.ArenaRadius - core.Range(rng, 10, 30)
	return core.FromAngle(ang).Scale(r)
}

// ComposeWave builds the enemy roster for a wave. IDs are assigned from
// nextID upward; the caller owns the counter. Boss waves spawn one boss plus
// a small escort of the current mix.
func ComposeWave(rng core.Rand, wave int, nextID *int, lvl LevelContext, cfg config.ArenaConfig) []*Enemy {
	scale := waveScale(wave, lvl, cfg)
	affix := SelectAffixForWave(rng, wave)

	var out []*Enemy
	spawn := func(t EnemyType) {
		e := newEnemy(*nextID, t, rimSpawnPos(rng, lvl), scale, affix, rng)
		*nextID++
		out = append(out, e)
	}

	if IsBossWave(wave, cfg) {
		spawn(EnemyBoss)
		escort := 2 + wave/10
		mix := waveMix(wave)
		for i := 0; i < escort; i++ {
			spawn(mix[core.Intn(rng, len(mix))])
		}
		return out
	}

	count := cfg.Waves.BaseCount + int(cfg.Waves.GrowthPerWave*float64(wave-1))
	if count < 1 {
		count = 1
	}
	mix := waveMix(wave)
	for i := 0; i < count; i++ {
		spawn(mix[core.Intn(rng, len(mix))])
	}
	return out
}

// WaveEvent is an opt-in wager offered before certain waves: accept for the
// modifier and the score bonus, decline and the wave runs unchanged.
type WaveEvent struct {
	ID         string
	Name       string
	Desc       string
	ScoreBonus int

	ExtraEnemies  int     // additional spawns from the wave mix
	ForceAffix    string  // affix id applied to the whole wave
	EnemySpeedMul float64 // 0 = unchanged
}

var waveEventPool = []WaveEvent{
	{ID: "horde", Name: "Horde", Desc: "Double the enemies, double the score",
		ScoreBonus: 300, ExtraEnemies: -1},
	{ID: "elite", Name: "Elite Wave", Desc: "Every enemy is armored",
		ScoreBonus: 250, ForceAffix: "armored"},
	{ID: "bloodrush", Name: "Blood Rush", Desc: "Enemies move faster, rewards grow",
		ScoreBonus: 200, EnemySpeedMul: 1.3},
}

// MaybeWaveEvent returns the event offered before the wave, or nil. Events
// land on the configured interval and never on boss waves.
func MaybeWaveEvent(rng core.Rand, wave int, cfg config.ArenaConfig) *WaveEvent {
	if cfg.Waves.EventInterval <= 0 || wave%cfg.Waves.EventInterval != 0 {
		return nil
	}
	if IsBossWave(wave, cfg) {
		return nil
	}
	ev := waveEventPool[core.Intn(rng, len(waveEventPool))]
	return &ev
}

// ApplyWaveEvent mutates a freshly composed wave according to an accepted
// event. ExtraEnemies of -1 doubles the roster.
func ApplyWaveEvent(rng core.Rand, ev *WaveEvent, enemies []*Enemy, wave int, nextID *int, lvl LevelContext, cfg config.ArenaConfig) []*Enemy {
	if ev == nil {
		return enemies
	}
	scale := waveScale(wave, lvl, cfg)

	extra := ev.ExtraEnemies
	if extra < 0 {
		extra = len(enemies)
	}
	mix := waveMix(wave)
	for i := 0; i < extra; i++ {
		e := newEnemy(*nextID, mix[core.Intn(rng, len(mix))], rimSpawnPos(rng, lvl), scale, nil, rng)
		*nextID++
		enemies = append(enemies, e)
	}

	if ev.ForceAffix != "" {
		if af := affixByID(ev.ForceAffix); af != nil {
			for _, e := range enemies {
				if e.Affix == nil {
					e.Affix = af
				}
			}
		}
	}
	if ev.EnemySpeedMul > 0 {
		for _, e := range enemies {
			e.Speed *= ev.EnemySpeedMul
		}
	}
	return enemies
}
