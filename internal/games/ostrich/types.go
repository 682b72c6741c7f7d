// Package ostrich implements the Flappy Ostrich simulation core: a player
// falling under gravity through a stream of gap obstacles, with procedural
// background, collectibles and timed power-ups.
//
// All mutation goes through a Game, which owns the single State/Status pair.
// The components it orchestrates (integrator, generator, collision tests,
// power-up lifecycle) take values and return new values.
package ostrich

import (
	"slices"
	"time"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
)

// Phase is the state machine position of a run.
type Phase int

const (
	PhaseIdle     Phase = iota // Before the first start
	PhasePlaying               // Simulation advancing
	PhasePaused                // Frozen, reachable only from Playing
	PhaseGameOver              // Terminal until the next start
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Player is the controlled entity. X is fixed for the whole run.
type Player struct {
	X, Y     float64
	W, H     float64
	Velocity float64 // Positive = falling
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Behavior controls how an obstacle's gap moves.
type Behavior int

const (
	BehaviorStatic Behavior = iota
	BehaviorOscillating
)

// String returns the behavior name.
func (b Behavior) String() string {
	if b == BehaviorOscillating {
		return "oscillating"
	}
	return "static"
}

// Pattern tells how an obstacle was grouped at spawn time.
type Pattern int

const (
	PatternSingle Pattern = iota
	PatternPaired         // Two obstacles sharing one gap
	PatternOffset         // Two obstacles with shifted gaps
)

// String returns the pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternPaired:
		return "paired"
	case PatternOffset:
		return "offset"
	default:
		return "single"
	}
}

// Obstacle is a vertical barrier with a passable gap.
type Obstacle struct {
	ID         int
	X          float64 // Left edge
	Width      float64
	GapTop     float64 // Current top of the gap
	BaseGapTop float64 // Gap top at spawn; oscillation is centered on it
	Gap        float64 // Gap height
	Passed     bool
	Behavior   Behavior
	Pattern    Pattern
	Group      int     // Obstacles spawned together share a group
	AgeMs      float64 // Simulated time alive, drives oscillation
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 { return o.X + o.Width }

// GapBottom returns the bottom boundary of the gap.
func (o Obstacle) GapBottom() float64 { return o.GapTop + o.Gap }

// BackgroundKind selects the decorative layer.
type BackgroundKind int

const (
	KindCloud BackgroundKind = iota // Ambient layer, above the horizon
	KindBush                        // Foreground layer, on the horizon
)

// String returns the layer name.
func (k BackgroundKind) String() string {
	if k == KindBush {
		return "bush"
	}
	return "cloud"
}

// BackgroundElement is decoration. It never takes part in collisions.
type BackgroundElement struct {
	ID    int
	Kind  BackgroundKind
	X, Y  float64
	Scale float64
}

// Collectible grants a score bonus on pickup.
type Collectible struct {
	ID    int
	X, Y  float64
	Size  float64
	Speed float64
	Bonus int
}

// Box returns the collectible's bounding box.
func (c Collectible) Box() core.Box { return core.NewBox(c.X, c.Y, c.Size, c.Size) }

// PowerUp is a power-up floating in the world, waiting to be picked up.
type PowerUp struct {
	ID    int
	Type  PowerUpType
	X, Y  float64
	Size  float64
	Speed float64
}

// Box returns the power-up's bounding box.
func (p PowerUp) Box() core.Box { return core.NewBox(p.X, p.Y, p.Size, p.Size) }

// ActivePowerUp is a picked-up modifier, live while now < StartTime+Duration.
type ActivePowerUp struct {
	Type      PowerUpType
	StartTime time.Time
	Duration  time.Duration
}

// ExpiresAt returns the instant the record stops applying.
func (a ActivePowerUp) ExpiresAt() time.Time { return a.StartTime.Add(a.Duration) }

// Live reports whether the record still applies at now.
func (a ActivePowerUp) Live(now time.Time) bool { return a.ExpiresAt().After(now) }

// Remaining returns the time left at now, never negative.
func (a ActivePowerUp) Remaining(now time.Time) time.Duration {
	if d := a.ExpiresAt().Sub(now); d > 0 {
		return d
	}
	return 0
}

// State is the simulation aggregate.
type State struct {
	Player       Player
	Obstacles    []Obstacle
	Background   []BackgroundElement
	Collectibles []Collectible
	PowerUps     []PowerUp
	Active       []ActivePowerUp
	Tier         config.Tier // Effective difficulty tier
	Speed        float64     // Effective world speed after power-ups
}

// clone returns a deep copy.
func (s State) clone() State {
	s.Obstacles = slices.Clone(s.Obstacles)
	s.Background = slices.Clone(s.Background)
	s.Collectibles = slices.Clone(s.Collectibles)
	s.PowerUps = slices.Clone(s.PowerUps)
	s.Active = slices.Clone(s.Active)
	return s
}

// Status is run bookkeeping, orthogonal to State.
type Status struct {
	Phase     Phase
	Score     int
	HighScore int
}

// IsPlaying reports whether a run is in progress (playing or paused).
func (s Status) IsPlaying() bool {
	return s.Phase == PhasePlaying || s.Phase == PhasePaused
}

// GameOver reports whether the last run has ended.
func (s Status) GameOver() bool { return s.Phase == PhaseGameOver }

// Snapshot is an immutable copy of the simulation handed to presenters.
// Events lists what happened in the transition that produced it.
type Snapshot struct {
	State    State
	Status   Status
	Selected config.Tier // Tier chosen by the player
	Time     time.Time   // Clock reading at the transition
	Events   []Event
}

// Has reports whether the snapshot carries an event of the given kind.
func (s Snapshot) Has(kind EventKind) bool {
	for _, e := range s.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
