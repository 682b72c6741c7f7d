package ostrich

import (
	"math/rand"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
)

// Cloud band and bush placement relative to the horizon.
const (
	cloudBandMargin = 100 // Clouds spawn in [0, horizon-cloudBandMargin)
	bushLift        = 10  // Bushes sit this far above the horizon
)

// Generator produces obstacles, decoration, collectibles and power-ups.
// It owns the random source and the id counters; the entity slices it is
// given are never modified in place.
type Generator struct {
	cfg config.OstrichConfig
	rng *rand.Rand

	nextID    int // Obstacle ids, monotonically increasing per run
	nextGroup int
	nextDecor int
	nextItem  int // Shared by collectibles and world power-ups
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(cfg config.OstrichConfig, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Reset restarts the id counters. The random stream continues.
func (g *Generator) Reset() {
	g.nextID = 0
	g.nextGroup = 0
	g.nextDecor = 0
	g.nextItem = 0
}

// Rightmost returns the largest X among obstacles and false if there are none.
func Rightmost(obstacles []Obstacle) (float64, bool) {
	if len(obstacles) == 0 {
		return 0, false
	}
	x := obstacles[0].X
	for _, o := range obstacles[1:] {
		if o.X > x {
			x = o.X
		}
	}
	return x, true
}

// NeedsObstacle reports whether the spawn rule fires: no obstacles, or the
// rightmost one is further left than worldWidth-spacing.
func NeedsObstacle(obstacles []Obstacle, worldWidth, spacing float64) bool {
	x, ok := Rightmost(obstacles)
	return !ok || x < worldWidth-spacing
}

// SpawnObstacles appends a new obstacle group at the right edge when the
// spawn rule fires, otherwise it returns the input unchanged.
func (g *Generator) SpawnObstacles(in []Obstacle, tier config.TierSettings) []Obstacle {
	if !NeedsObstacle(in, g.cfg.World.Width, tier.Spacing) {
		return in
	}

	oc := g.cfg.Obstacles
	top := g.gapTop()
	behavior := BehaviorStatic
	if g.roll(tier.OscillateChance) {
		behavior = BehaviorOscillating
	}
	pattern := PatternSingle
	if g.roll(tier.PatternChance) {
		pattern = PatternPaired
		if g.rng.Intn(2) == 1 {
			pattern = PatternOffset
		}
	}

	g.nextGroup++
	out := make([]Obstacle, 0, len(in)+2)
	out = append(out, in...)
	out = append(out, g.newObstacle(g.cfg.World.Width, top, behavior, pattern))

	switch pattern {
	case PatternPaired:
		out = append(out, g.newObstacle(g.cfg.World.Width+oc.PairDistance, top, behavior, pattern))
	case PatternOffset:
		shift := oc.OffsetShift
		if g.rng.Intn(2) == 0 {
			shift = -shift
		}
		second := core.ClampF(top+shift, oc.MinHeight, oc.MaxGapTop(g.cfg.World.Height))
		out = append(out, g.newObstacle(g.cfg.World.Width+oc.PairDistance, second, behavior, pattern))
	}
	return out
}

func (g *Generator) newObstacle(x, top float64, b Behavior, p Pattern) Obstacle {
	g.nextID++
	return Obstacle{
		ID:         g.nextID,
		X:          x,
		Width:      g.cfg.Obstacles.Width,
		GapTop:     top,
		BaseGapTop: top,
		Gap:        g.cfg.Obstacles.Gap,
		Behavior:   b,
		Pattern:    p,
		Group:      g.nextGroup,
	}
}

// gapTop draws uniformly from [MinHeight, WorldHeight-Gap-MinHeight].
func (g *Generator) gapTop() float64 {
	oc := g.cfg.Obstacles
	lo, hi := oc.MinHeight, oc.MaxGapTop(g.cfg.World.Height)
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

// Background moves decoration at a fraction of speed, drops elements past the
// exit margin and spawns new clouds and bushes with per-frame probabilities
// scaled by dt.
func (g *Generator) Background(in []BackgroundElement, speed, dt float64) []BackgroundElement {
	bc := g.cfg.Background
	out := make([]BackgroundElement, 0, len(in)+2)
	for _, e := range in {
		e.X -= speed * bc.SpeedFactor * dt
		if e.X > -bc.ExitMargin {
			out = append(out, e)
		}
	}

	horizon := g.cfg.World.HorizonY()
	if g.roll(bc.CloudChance * dt) {
		g.nextDecor++
		band := horizon - cloudBandMargin
		if band < 0 {
			band = 0
		}
		out = append(out, BackgroundElement{
			ID:    g.nextDecor,
			Kind:  KindCloud,
			X:     g.cfg.World.Width,
			Y:     g.rng.Float64() * band,
			Scale: 0.8 + g.rng.Float64()*0.4,
		})
	}
	if g.roll(bc.BushChance * dt) {
		g.nextDecor++
		out = append(out, BackgroundElement{
			ID:    g.nextDecor,
			Kind:  KindBush,
			X:     g.cfg.World.Width,
			Y:     horizon - bushLift,
			Scale: 0.6 + g.rng.Float64()*0.3,
		})
	}
	return out
}

// Collectible creates a collectible at the right edge moving at a fraction
// of speed.
func (g *Generator) Collectible(speed float64) Collectible {
	pc := g.cfg.Pickups
	g.nextItem++
	return Collectible{
		ID:    g.nextItem,
		X:     g.cfg.World.Width,
		Y:     g.itemY(pc.CollectibleSize),
		Size:  pc.CollectibleSize,
		Speed: speed * pc.CollectibleSpeedFactor,
		Bonus: pc.CollectibleBonus,
	}
}

// PowerUp creates a world power-up of a uniformly drawn type.
func (g *Generator) PowerUp(speed float64) PowerUp {
	pc := g.cfg.Pickups
	g.nextItem++
	return PowerUp{
		ID:    g.nextItem,
		Type:  PowerUpType(g.rng.Intn(int(powerUpTypeCount))),
		X:     g.cfg.World.Width,
		Y:     g.itemY(pc.PowerUpSize),
		Size:  pc.PowerUpSize,
		Speed: speed * pc.PowerUpSpeedFactor,
	}
}

// itemY draws a pickup's top edge so it stays inside the flyable band.
func (g *Generator) itemY(size float64) float64 {
	lo := g.cfg.Obstacles.MinHeight
	hi := g.cfg.World.Height - g.cfg.Obstacles.MinHeight - size
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) roll(p float64) bool {
	if p <= 0 {
		return false
	}
	return g.rng.Float64() < p
}
