package ostrich

import (
	"time"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
)

// PowerUpType enumerates the timed modifiers.
type PowerUpType int

const (
	PowerUpInvincibility   PowerUpType = iota // Obstacle hits are ignored
	PowerUpDoubleJump                         // Second jump inside the cooldown
	PowerUpSlowMotion                         // World speed scaled down
	PowerUpScoreMultiplier                    // Collectible bonus multiplied
	powerUpTypeCount
)

// PowerUpTypes lists every type in declaration order.
var PowerUpTypes = []PowerUpType{
	PowerUpInvincibility,
	PowerUpDoubleJump,
	PowerUpSlowMotion,
	PowerUpScoreMultiplier,
}

// String returns the type name.
func (p PowerUpType) String() string {
	switch p {
	case PowerUpInvincibility:
		return "invincibility"
	case PowerUpDoubleJump:
		return "doubleJump"
	case PowerUpSlowMotion:
		return "slowMotion"
	case PowerUpScoreMultiplier:
		return "scoreMultiplier"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a power-up type.
func (p PowerUpType) Glyph() rune {
	switch p {
	case PowerUpInvincibility:
		return '*'
	case PowerUpDoubleJump:
		return '^'
	case PowerUpSlowMotion:
		return '~'
	case PowerUpScoreMultiplier:
		return 'x'
	default:
		return '?'
	}
}

// PowerUpDuration returns the configured lifetime of a type.
func PowerUpDuration(cfg config.PowerUpConfig, t PowerUpType) time.Duration {
	var ms int
	switch t {
	case PowerUpInvincibility:
		ms = cfg.Durations.Invincibility
	case PowerUpDoubleJump:
		ms = cfg.Durations.DoubleJump
	case PowerUpSlowMotion:
		ms = cfg.Durations.SlowMotion
	case PowerUpScoreMultiplier:
		ms = cfg.Durations.ScoreMultiplier
	}
	return time.Duration(ms) * time.Millisecond
}

// Activate returns active with a new record for t starting at now.
// Records of the same type stack independently.
func Activate(active []ActivePowerUp, t PowerUpType, now time.Time, d time.Duration) []ActivePowerUp {
	out := make([]ActivePowerUp, 0, len(active)+1)
	out = append(out, active...)
	return append(out, ActivePowerUp{Type: t, StartTime: now, Duration: d})
}

// Prune returns the records still live at now and the ones that expired.
// Expiry is purely time based: a record is dropped once StartTime+Duration <= now.
func Prune(active []ActivePowerUp, now time.Time) (live, expired []ActivePowerUp) {
	live = make([]ActivePowerUp, 0, len(active))
	for _, a := range active {
		if a.Live(now) {
			live = append(live, a)
		} else {
			expired = append(expired, a)
		}
	}
	return live, expired
}

// SpeedMultiplier combines every slow-motion record multiplicatively.
func SpeedMultiplier(active []ActivePowerUp, slowFactor float64) float64 {
	m := 1.0
	for _, a := range active {
		if a.Type == PowerUpSlowMotion {
			m *= slowFactor
		}
	}
	return m
}

// Invincible reports whether any invincibility record is active.
func Invincible(active []ActivePowerUp) bool {
	return hasType(active, PowerUpInvincibility)
}

// DoubleJump reports whether any double-jump record is active.
func DoubleJump(active []ActivePowerUp) bool {
	return hasType(active, PowerUpDoubleJump)
}

// ScoreMultiplier returns factor^k for k active score multiplier records.
func ScoreMultiplier(active []ActivePowerUp, factor int) int {
	m := 1
	for _, a := range active {
		if a.Type == PowerUpScoreMultiplier && factor > 1 {
			m *= factor
		}
	}
	return m
}

func hasType(active []ActivePowerUp, t PowerUpType) bool {
	for _, a := range active {
		if a.Type == t {
			return true
		}
	}
	return false
}
