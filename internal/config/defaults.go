package config

import (
	_ "embed"
)

//go:embed defaults/ostrich.yaml
var defaultOstrichYAML []byte

// DefaultOstrichConfig returns the built-in configuration.
// It mirrors defaults/ostrich.yaml and is used if the embedded file fails to parse.
func DefaultOstrichConfig() OstrichConfig {
	return OstrichConfig{
		World: WorldConfig{
			Width:        800,
			Height:       600,
			HorizonRatio: 0.7,
		},
		Physics: PhysicsConfig{
			Gravity:        0.8,
			JumpForce:      -10,
			TargetFrameMs:  16.667,
			MaxTimeScale:   5,
			JumpCooldownMs: 100,
		},
		Player: PlayerConfig{
			XRatio: 0.2,
			YRatio: 0.5,
			Width:  60,
			Height: 60,
		},
		Obstacles: ObstacleConfig{
			Width:                60,
			Gap:                  180,
			MinHeight:            50,
			DefaultSpeed:         3,
			DefaultSpacing:       300,
			PairDistance:         180,
			OffsetShift:          60,
			OscillationAmplitude: 40,
			OscillationPeriodMs:  2000,
		},
		Difficulty: DifficultyConfig{
			Default:        string(TierMedium),
			MediumAt:       10,
			HardAt:         20,
			EvalIntervalMs: 1000,
			Tiers: map[string]TierSettings{
				string(TierEasy):   {Speed: 2, Spacing: 350},
				string(TierMedium): {Speed: 3, Spacing: 300, PatternChance: 0.2, OscillateChance: 0.15},
				string(TierHard):   {Speed: 4, Spacing: 250, PatternChance: 0.35, OscillateChance: 0.3},
			},
		},
		Background: BackgroundConfig{
			CloudChance: 0.01,
			BushChance:  0.02,
			SpeedFactor: 0.5,
			ExitMargin:  100,
		},
		Pickups: PickupConfig{
			CollectibleIntervalMs:  3000,
			CollectibleSize:        30,
			CollectibleBonus:       5,
			CollectibleSpeedFactor: 0.8,
			PowerUpIntervalMs:      12000,
			PowerUpSize:            40,
			PowerUpSpeedFactor:     1.0,
		},
		PowerUps: PowerUpConfig{
			SlowMotionFactor: 0.5,
			ScoreMultiplier:  2,
			Durations: DurationsConfig{
				Invincibility:   5000,
				DoubleJump:      8000,
				SlowMotion:      5000,
				ScoreMultiplier: 10000,
			},
		},
		Loop: LoopConfig{
			MaxDeltaMs: 100,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultOstrichYAML
}
