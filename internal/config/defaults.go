package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Player: PlayerConfig{
			MaxHP:       100,
			MaxEnergy:   100,
			Speed:       150,
			EnergyRegen: 12,
		},
		Enemies: EnemiesConfig{
			HPScale:     1.0,
			DamageScale: 1.0,
			SpeedScale:  1.0,
		},
		Waves: WavesConfig{
			BaseCount:     4,
			GrowthPerWave: 1.5,
			BossInterval:  10,
			EventInterval: 5,
			WavesPerLevel: 5,
		},
		World: WorldConfig{
			ArenaRadius: 250,
		},
	}
}
