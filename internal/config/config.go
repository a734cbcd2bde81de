// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import (
	"errors"
	"fmt"
)

// PlatformerConfig contains all tunables of the platformer simulation.
// The defaults reproduce the canonical constants exactly.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Enemies    PlatformerEnemies `yaml:"enemies"`
	Coins      PlatformerCoins   `yaml:"coins"`
	Scoring    PlatformerScoring `yaml:"scoring"`
	World      PlatformerWorld   `yaml:"world"`
	Camera     PlatformerCamera  `yaml:"camera"`
	Flow       PlatformerFlow    `yaml:"flow"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines integration parameters shared by all bodies.
type PlatformerPhysics struct {
	Gravity  float64 `yaml:"gravity"`  // Added to VY every tick
	Friction float64 `yaml:"friction"` // VX multiplier when the player has no horizontal intent
}

// PlatformerPlayer defines the player body.
type PlatformerPlayer struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`
	JumpPower float64 `yaml:"jump_power"`
}

// PlatformerEnemies defines patrolling enemy bodies.
type PlatformerEnemies struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FastSpeed  float64 `yaml:"fast_speed"`
	SlowSpeed  float64 `yaml:"slow_speed"`
	FlipChance float64 `yaml:"flip_chance"` // Per-tick probability of a spontaneous turn
}

// PlatformerCoins defines collectible size.
type PlatformerCoins struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformerScoring defines score awards.
type PlatformerScoring struct {
	Coin        int     `yaml:"coin"`
	Stomp       int     `yaml:"stomp"`
	StompBounce float64 `yaml:"stomp_bounce"` // Player VY after a stomp
}

// PlatformerWorld defines world limits.
type PlatformerWorld struct {
	FallLimit float64 `yaml:"fall_limit"` // Player Y beyond which the run is lost
}

// PlatformerCamera defines the camera viewport and vertical clamp.
type PlatformerCamera struct {
	ViewportW float64 `yaml:"viewport_w"`
	ViewportH float64 `yaml:"viewport_h"`
	MinX      float64 `yaml:"min_x"`
	MinY      float64 `yaml:"min_y"`
	MaxY      float64 `yaml:"max_y"`
}

// PlatformerFlow defines level flow timings in ticks.
type PlatformerFlow struct {
	CompleteTicks int `yaml:"complete_ticks"` // Banner duration before advancing
}

// Validate checks that the configuration describes a playable world.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", c.Player.Width, c.Player.Height))
	}
	if c.Enemies.Width <= 0 || c.Enemies.Height <= 0 {
		errs = append(errs, fmt.Errorf("enemy size must be positive, got %vx%v", c.Enemies.Width, c.Enemies.Height))
	}
	if c.Coins.Width <= 0 || c.Coins.Height <= 0 {
		errs = append(errs, fmt.Errorf("coin size must be positive, got %vx%v", c.Coins.Width, c.Coins.Height))
	}
	if c.Physics.Friction < 0 || c.Physics.Friction > 1 {
		errs = append(errs, fmt.Errorf("friction must be in [0, 1], got %v", c.Physics.Friction))
	}
	if c.Enemies.FlipChance < 0 || c.Enemies.FlipChance > 1 {
		errs = append(errs, fmt.Errorf("flip_chance must be in [0, 1], got %v", c.Enemies.FlipChance))
	}
	if c.Camera.ViewportW <= 0 || c.Camera.ViewportH <= 0 {
		errs = append(errs, fmt.Errorf("camera viewport must be positive, got %vx%v", c.Camera.ViewportW, c.Camera.ViewportH))
	}
	if c.Camera.MinY > c.Camera.MaxY {
		errs = append(errs, fmt.Errorf("camera min_y %v exceeds max_y %v", c.Camera.MinY, c.Camera.MaxY))
	}
	if c.Flow.CompleteTicks < 0 {
		errs = append(errs, fmt.Errorf("complete_ticks must not be negative, got %d", c.Flow.CompleteTicks))
	}
	return errors.Join(errs...)
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across a campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Cumulative score or level id at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
	FlipMultiplier  float64 `yaml:"flip_multiplier"`  // Multiplier added to flip chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
