// Package config provides YAML-based game configuration loading and
// difficulty management for Flappy Ostrich.
package config

import (
	"errors"
	"fmt"
)

// OstrichConfig contains all tunable parameters of the simulation.
type OstrichConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Background BackgroundConfig `yaml:"background"`
	Pickups    PickupConfig     `yaml:"pickups"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Loop       LoopConfig       `yaml:"loop"`
}

// WorldConfig defines the playfield dimensions in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HorizonRatio float64 `yaml:"horizon_ratio"` // Fraction of height where the ground starts
}

// HorizonY returns the y coordinate of the horizon line.
func (w WorldConfig) HorizonY() float64 {
	return w.Height * w.HorizonRatio
}

// PhysicsConfig defines integrator parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`          // Acceleration per normalized frame
	JumpForce      float64 `yaml:"jump_force"`       // Negative = up
	TargetFrameMs  float64 `yaml:"target_frame_ms"`  // Elapsed ms that equals dt=1
	MaxTimeScale   float64 `yaml:"max_time_scale"`   // Upper bound for dt
	JumpCooldownMs int     `yaml:"jump_cooldown_ms"` // Minimum gap between accepted jumps
}

// PlayerConfig defines the player's start position and hitbox.
type PlayerConfig struct {
	XRatio float64 `yaml:"x_ratio"`
	YRatio float64 `yaml:"y_ratio"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines gap obstacle geometry and generation.
type ObstacleConfig struct {
	Width                float64 `yaml:"width"`
	Gap                  float64 `yaml:"gap"`
	MinHeight            float64 `yaml:"min_height"`
	DefaultSpeed         float64 `yaml:"default_speed"`
	DefaultSpacing       float64 `yaml:"default_spacing"`
	PairDistance         float64 `yaml:"pair_distance"`
	OffsetShift          float64 `yaml:"offset_shift"`
	OscillationAmplitude float64 `yaml:"oscillation_amplitude"`
	OscillationPeriodMs  float64 `yaml:"oscillation_period_ms"`
}

// MaxGapTop returns the largest valid gap-top y for the given world height.
func (o ObstacleConfig) MaxGapTop(worldHeight float64) float64 {
	return worldHeight - o.Gap - o.MinHeight
}

// DifficultyConfig defines the difficulty table and score progression.
type DifficultyConfig struct {
	Default        string                  `yaml:"default"`
	MediumAt       int                     `yaml:"medium_at"`
	HardAt         int                     `yaml:"hard_at"`
	EvalIntervalMs int                     `yaml:"eval_interval_ms"`
	Tiers          map[string]TierSettings `yaml:"tiers"`
}

// TierSettings is one row of the difficulty table.
type TierSettings struct {
	Speed           float64 `yaml:"speed"`
	Spacing         float64 `yaml:"spacing"`
	PatternChance   float64 `yaml:"pattern_chance"`   // Chance a spawn is paired/offset
	OscillateChance float64 `yaml:"oscillate_chance"` // Chance a spawn oscillates
}

// BackgroundConfig defines decorative layer generation.
type BackgroundConfig struct {
	CloudChance float64 `yaml:"cloud_chance"` // Per normalized frame
	BushChance  float64 `yaml:"bush_chance"`  // Per normalized frame
	SpeedFactor float64 `yaml:"speed_factor"` // Fraction of world speed
	ExitMargin  float64 `yaml:"exit_margin"`  // Removed once x <= -ExitMargin
}

// PickupConfig defines collectible and world power-up spawning.
type PickupConfig struct {
	CollectibleIntervalMs  int     `yaml:"collectible_interval_ms"`
	CollectibleSize        float64 `yaml:"collectible_size"`
	CollectibleBonus       int     `yaml:"collectible_bonus"`
	CollectibleSpeedFactor float64 `yaml:"collectible_speed_factor"`
	PowerUpIntervalMs      int     `yaml:"powerup_interval_ms"`
	PowerUpSize            float64 `yaml:"powerup_size"`
	PowerUpSpeedFactor     float64 `yaml:"powerup_speed_factor"`
}

// PowerUpConfig defines power-up durations and effect magnitudes.
type PowerUpConfig struct {
	SlowMotionFactor float64         `yaml:"slow_motion_factor"`
	ScoreMultiplier  int             `yaml:"score_multiplier"`
	Durations        DurationsConfig `yaml:"durations"`
}

// DurationsConfig holds per-type power-up durations in milliseconds.
type DurationsConfig struct {
	Invincibility   int `yaml:"invincibility"`
	DoubleJump      int `yaml:"double_jump"`
	SlowMotion      int `yaml:"slow_motion"`
	ScoreMultiplier int `yaml:"score_multiplier"`
}

// LoopConfig defines scheduler limits.
type LoopConfig struct {
	MaxDeltaMs float64 `yaml:"max_delta_ms"` // Frames with a delta at or above this are dropped
}

// Validate checks values the simulation cannot run without.
func (c OstrichConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Physics.TargetFrameMs <= 0 {
		errs = append(errs, errors.New("physics.target_frame_ms must be positive"))
	}
	if c.Obstacles.MaxGapTop(c.World.Height) < c.Obstacles.MinHeight {
		errs = append(errs, fmt.Errorf("obstacle gap %v does not fit world height %v", c.Obstacles.Gap, c.World.Height))
	}
	if c.Difficulty.HardAt < c.Difficulty.MediumAt {
		errs = append(errs, errors.New("difficulty.hard_at must not be below medium_at"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
