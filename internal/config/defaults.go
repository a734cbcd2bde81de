package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:  0.8,
			Friction: 0.8,
		},
		Player: PlatformerPlayer{
			Width:     40,
			Height:    50,
			Speed:     5,
			JumpPower: 16,
		},
		Enemies: PlatformerEnemies{
			Width:      35,
			Height:     40,
			FastSpeed:  1.5,
			SlowSpeed:  0.8,
			FlipChance: 0.01,
		},
		Coins: PlatformerCoins{
			Width:  16,
			Height: 24,
		},
		Scoring: PlatformerScoring{
			Coin:        100,
			Stomp:       200,
			StompBounce: -15,
		},
		World: PlatformerWorld{
			FallLimit: 700,
		},
		Camera: PlatformerCamera{
			ViewportW: 1000,
			ViewportH: 600,
			MinX:      0,
			MinY:      -200,
			MaxY:      0,
		},
		Flow: PlatformerFlow{
			CompleteTicks: 180,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 2,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				FlipMultiplier:  1.0,
			},
		},
	}
}
