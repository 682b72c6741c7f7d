package config

import "strings"

// Tier is a named difficulty bucket.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Tiers lists all tiers from easiest to hardest.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// ParseTier maps a user-supplied name to a tier. "normal" is accepted as an
// alias for medium.
func ParseTier(name string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return TierEasy, true
	case "medium", "normal":
		return TierMedium, true
	case "hard":
		return TierHard, true
	default:
		return "", false
	}
}

// Rank orders tiers; unknown tiers rank below easy.
func (t Tier) Rank() int {
	switch t {
	case TierEasy:
		return 0
	case TierMedium:
		return 1
	case TierHard:
		return 2
	default:
		return -1
	}
}

// Next returns the following tier, wrapping from hard to easy.
func (t Tier) Next() Tier {
	switch t {
	case TierEasy:
		return TierMedium
	case TierMedium:
		return TierHard
	default:
		return TierEasy
	}
}

// DifficultyManager resolves tiers to speed/spacing settings and maps score
// to a tier.
type DifficultyManager struct {
	cfg      DifficultyConfig
	fallback TierSettings
}

// NewDifficultyManager creates a difficulty manager. Tiers missing from the
// table resolve to the obstacle defaults.
func NewDifficultyManager(cfg DifficultyConfig, obstacles ObstacleConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg: cfg,
		fallback: TierSettings{
			Speed:   obstacles.DefaultSpeed,
			Spacing: obstacles.DefaultSpacing,
		},
	}
}

// DefaultTier returns the configured starting tier, or medium if the
// configured name is not a known tier.
func (d *DifficultyManager) DefaultTier() Tier {
	if t, ok := ParseTier(d.cfg.Default); ok {
		return t
	}
	return TierMedium
}

// Settings returns the table row for a tier.
// Unrecognized tiers fall back to the default speed and spacing.
func (d *DifficultyManager) Settings(t Tier) TierSettings {
	if s, ok := d.cfg.Tiers[string(t)]; ok && s.Speed > 0 && s.Spacing > 0 {
		return s
	}
	return d.fallback
}

// TierForScore maps cumulative score to a tier. It is recomputed from
// scratch on every call since score can jump by more than one at a time.
func (d *DifficultyManager) TierForScore(score int) Tier {
	switch {
	case score >= d.cfg.HardAt:
		return TierHard
	case score >= d.cfg.MediumAt:
		return TierMedium
	default:
		return TierEasy
	}
}

// Effective combines the player's selected tier with score progression.
// Progression can raise the tier but never lowers it below the selection.
func (d *DifficultyManager) Effective(selected Tier, score int) Tier {
	progressed := d.TierForScore(score)
	if selected.Rank() >= progressed.Rank() {
		return selected
	}
	return progressed
}
