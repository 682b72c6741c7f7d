package core

import "strings"

// Action represents a semantic input command, abstracted from physical key
// presses, pointer taps or network messages.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, Up, W, pointer tap
	ActionPause             // P, Escape - pause/resume toggle
	ActionStart             // Enter, R - start or restart a run
	ActionDifficulty        // D - cycle difficulty (only while not playing)
	ActionScores            // Tab - open scoreboard
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionJump:
		return "jump"
	case ActionPause:
		return "pause"
	case ActionStart:
		return "start"
	case ActionDifficulty:
		return "difficulty"
	case ActionScores:
		return "scores"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseAction maps a wire name back to an Action.
// Unknown names map to ActionNone.
func ParseAction(name string) Action {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jump", "tap":
		return ActionJump
	case "pause", "resume":
		return ActionPause
	case "start", "restart":
		return ActionStart
	case "difficulty":
		return ActionDifficulty
	case "scores":
		return ActionScores
	case "quit":
		return ActionQuit
	default:
		return ActionNone
	}
}
