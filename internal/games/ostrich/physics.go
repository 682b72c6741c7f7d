package ostrich

import (
	"math"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
)

// Integrate advances the player by one step of normalized length dt.
// Without a jump: v' = v + g*dt, y' = y + v'*dt. A pending jump replaces the
// gravity accumulation for this step with v' = jumpForce.
func Integrate(p Player, gravity, jumpForce, dt float64, jump bool) Player {
	v := p.Velocity + gravity*dt
	if jump {
		v = jumpForce
	}
	p.Velocity = v
	p.Y += v * dt
	return p
}

// OutOfBounds reports whether the player has left the world vertically:
// above the top edge or below worldHeight-playerHeight.
func OutOfBounds(p Player, worldHeight float64) bool {
	return p.Y < 0 || p.Y > worldHeight-p.H
}

// AdvanceObstacles moves obstacles left by dx, updates oscillating gaps,
// marks obstacles whose trailing edge crossed playerX as passed and drops the
// ones fully off the left edge. It returns a new slice and the number of
// obstacles passed in this step.
func AdvanceObstacles(in []Obstacle, cfg config.ObstacleConfig, worldHeight, dx, elapsedMs, playerX float64) ([]Obstacle, int) {
	out := make([]Obstacle, 0, len(in))
	passed := 0
	maxTop := cfg.MaxGapTop(worldHeight)

	for _, o := range in {
		o.X -= dx
		o.AgeMs += elapsedMs

		if o.Behavior == BehaviorOscillating && cfg.OscillationPeriodMs > 0 {
			phase := 2 * math.Pi * o.AgeMs / cfg.OscillationPeriodMs
			o.GapTop = core.ClampF(o.BaseGapTop+cfg.OscillationAmplitude*math.Sin(phase), cfg.MinHeight, maxTop)
		}

		if !o.Passed && o.Right() < playerX {
			o.Passed = true
			passed++
		}

		if o.Right() > 0 {
			out = append(out, o)
		}
	}
	return out, passed
}

// AdvanceCollectibles moves collectibles left by their own speed scaled by
// mult*dt and drops those fully off the left edge.
func AdvanceCollectibles(in []Collectible, mult, dt float64) []Collectible {
	out := make([]Collectible, 0, len(in))
	for _, c := range in {
		c.X -= c.Speed * mult * dt
		if c.X+c.Size > 0 {
			out = append(out, c)
		}
	}
	return out
}

// AdvancePowerUps moves world power-ups like AdvanceCollectibles.
func AdvancePowerUps(in []PowerUp, mult, dt float64) []PowerUp {
	out := make([]PowerUp, 0, len(in))
	for _, p := range in {
		p.X -= p.Speed * mult * dt
		if p.X+p.Size > 0 {
			out = append(out, p)
		}
	}
	return out
}
