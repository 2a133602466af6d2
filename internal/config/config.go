// Package config provides YAML-based gameplay tuning and difficulty
// management for the arena platform.
package config

// ArenaConfig contains all tunable parameters for the arena game.
// Fine-grained combat timing lives as constants next to the code that uses
// it; this file holds the numbers a player or server operator plausibly wants
// to change.
type ArenaConfig struct {
	Player  PlayerConfig  `yaml:"player"`
	Enemies EnemiesConfig `yaml:"enemies"`
	Waves   WavesConfig   `yaml:"waves"`
	World   WorldConfig   `yaml:"world"`
}

// PlayerConfig defines the player's base resources.
type PlayerConfig struct {
	MaxHP       float64 `yaml:"max_hp"`
	MaxEnergy   float64 `yaml:"max_energy"`
	Speed       float64 `yaml:"speed"`
	EnergyRegen float64 `yaml:"energy_regen"` // per second
}

// EnemiesConfig scales all enemy base stats uniformly.
type EnemiesConfig struct {
	HPScale     float64 `yaml:"hp_scale"`
	DamageScale float64 `yaml:"damage_scale"`
	SpeedScale  float64 `yaml:"speed_scale"`
}

// WavesConfig defines wave cadence and growth.
type WavesConfig struct {
	BaseCount     int     `yaml:"base_count"`      // enemies in wave 1
	GrowthPerWave float64 `yaml:"growth_per_wave"` // extra enemies per wave
	BossInterval  int     `yaml:"boss_interval"`   // boss every Nth wave
	EventInterval int     `yaml:"event_interval"`  // wave-event offer cadence
	WavesPerLevel int     `yaml:"waves_per_level"` // themed level span
}

// WorldConfig defines arena geometry.
type WorldConfig struct {
	ArenaRadius float64 `yaml:"arena_radius"` // base radius; levels scale it
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyArenaPreset modifies the config based on a difficulty preset.
func ApplyArenaPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHP = 130
		cfg.Enemies.HPScale = 0.85
		cfg.Enemies.DamageScale = 0.8
	case DifficultyHard:
		cfg.Player.MaxHP = 80
		cfg.Enemies.HPScale = 1.2
		cfg.Enemies.DamageScale = 1.25
		cfg.Waves.GrowthPerWave = cfg.Waves.GrowthPerWave * 1.3
	}
}
