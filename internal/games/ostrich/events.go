package ostrich

// EventKind identifies a discrete thing that happened during a transition.
type EventKind int

const (
	EventStart        EventKind = iota
	EventJump                   // Jump accepted
	EventPass                   // Obstacle passed, +1
	EventCollect                // Collectible picked up
	EventPowerUp                // Power-up picked up and activated
	EventExpire                 // Active power-up ran out
	EventCollision              // Un-invincible obstacle hit
	EventBoundary               // Player left the world
	EventGameOver               // Run ended
	EventNewHighScore           // Run beat the stored high score
	EventPause
	EventResume
	EventDifficulty // Tier changed
)

// String returns the event name used on the wire and in logs.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventJump:
		return "jump"
	case EventPass:
		return "pass"
	case EventCollect:
		return "collect"
	case EventPowerUp:
		return "powerup"
	case EventExpire:
		return "expire"
	case EventCollision:
		return "collision"
	case EventBoundary:
		return "boundary"
	case EventGameOver:
		return "gameover"
	case EventNewHighScore:
		return "newhighscore"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventDifficulty:
		return "difficulty"
	default:
		return "unknown"
	}
}

// Event is one entry of a transition's side-effect list. Hosts map events to
// audio cues and log lines; nothing feeds back into the simulation.
type Event struct {
	Kind    EventKind
	PowerUp PowerUpType // For EventPowerUp and EventExpire
	Value   int         // Score delta, final score or new high score
	Tier    string      // For EventDifficulty
}
