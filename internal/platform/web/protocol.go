package web

import (
	"encoding/json"
	"time"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
)

// Client -> Server message types. They double as core.Action names.
const (
	MsgJump       = "jump"
	MsgPause      = "pause"
	MsgStart      = "start"
	MsgDifficulty = "difficulty"
)

// Server -> Client message types
const (
	MsgWelcome = "welcome"
	MsgState   = "state" // sent as a binary msgpack frame
	MsgError   = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// DifficultyMsg selects a tier. An empty tier cycles to the next one.
type DifficultyMsg struct {
	Tier string `json:"tier"`
}

// ErrorMsg reports a rejected request.
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// WelcomeMsg is the first message on a connection.
type WelcomeMsg struct {
	SessionID string    `json:"sid"`
	World     WorldInfo `json:"w"`
	Tiers     []string  `json:"tiers"`
}

// WorldInfo lets the client size its canvas.
type WorldInfo struct {
	Width   float64 `json:"w"`
	Height  float64 `json:"h"`
	Horizon float64 `json:"hz"`
}

// PlayerState is the ostrich on the wire.
type PlayerState struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
	VY float64 `json:"vy"`
}

// ObstacleState is one gap obstacle.
type ObstacleState struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	W      float64 `json:"w"`
	GapTop float64 `json:"gt"`
	Gap    float64 `json:"g"`
	Osc    bool    `json:"osc,omitempty"`
	Group  int     `json:"grp,omitempty"`
}

// DecorState is a cloud or bush.
type DecorState struct {
	Kind  string  `json:"k"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"s"`
}

// ItemState is a collectible or a world power-up.
type ItemState struct {
	ID   int     `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"sz"`
	Kind string  `json:"k,omitempty"` // Power-up type; empty for collectibles
}

// ActiveState is a running power-up effect.
type ActiveState struct {
	Kind        string `json:"k"`
	RemainingMs int64  `json:"ms"`
}

// StateMsg is the full simulation snapshot broadcast after every change.
type StateMsg struct {
	Phase        string          `json:"ph"`
	Score        int             `json:"sc"`
	HighScore    int             `json:"hs"`
	Tier         string          `json:"tier"`
	Selected     string          `json:"sel"`
	Speed        float64         `json:"spd"`
	Player       PlayerState     `json:"p"`
	Obstacles    []ObstacleState `json:"o"`
	Background   []DecorState    `json:"bg,omitempty"`
	Collectibles []ItemState     `json:"c,omitempty"`
	PowerUps     []ItemState     `json:"pu,omitempty"`
	Active       []ActiveState   `json:"a,omitempty"`
	Events       []string        `json:"ev,omitempty"`
	Time         int64           `json:"ts"` // Unix ms
}

// NewWelcomeMsg describes the world a session plays in.
func NewWelcomeMsg(sessionID string, cfg config.OstrichConfig) WelcomeMsg {
	tiers := make([]string, len(config.Tiers))
	for i, t := range config.Tiers {
		tiers[i] = string(t)
	}
	return WelcomeMsg{
		SessionID: sessionID,
		World: WorldInfo{
			Width:   cfg.World.Width,
			Height:  cfg.World.Height,
			Horizon: cfg.World.HorizonY(),
		},
		Tiers: tiers,
	}
}

// NewStateMsg flattens a snapshot into its wire form.
func NewStateMsg(snap ostrich.Snapshot) StateMsg {
	st := snap.State
	msg := StateMsg{
		Phase:     snap.Status.Phase.String(),
		Score:     snap.Status.Score,
		HighScore: snap.Status.HighScore,
		Tier:      string(st.Tier),
		Selected:  string(snap.Selected),
		Speed:     st.Speed,
		Player: PlayerState{
			X:  st.Player.X,
			Y:  st.Player.Y,
			W:  st.Player.W,
			H:  st.Player.H,
			VY: st.Player.Velocity,
		},
		Obstacles: make([]ObstacleState, len(st.Obstacles)),
		Time:      snap.Time.UnixMilli(),
	}

	for i, o := range st.Obstacles {
		msg.Obstacles[i] = ObstacleState{
			ID:     o.ID,
			X:      o.X,
			W:      o.Width,
			GapTop: o.GapTop,
			Gap:    o.Gap,
			Osc:    o.Behavior == ostrich.BehaviorOscillating,
			Group:  o.Group,
		}
	}
	for _, e := range st.Background {
		msg.Background = append(msg.Background, DecorState{Kind: e.Kind.String(), X: e.X, Y: e.Y, Scale: e.Scale})
	}
	for _, c := range st.Collectibles {
		msg.Collectibles = append(msg.Collectibles, ItemState{ID: c.ID, X: c.X, Y: c.Y, Size: c.Size})
	}
	for _, p := range st.PowerUps {
		msg.PowerUps = append(msg.PowerUps, ItemState{ID: p.ID, X: p.X, Y: p.Y, Size: p.Size, Kind: p.Type.String()})
	}
	for _, a := range st.Active {
		msg.Active = append(msg.Active, ActiveState{
			Kind:        a.Type.String(),
			RemainingMs: a.Remaining(snap.Time).Milliseconds(),
		})
	}
	for _, ev := range snap.Events {
		msg.Events = append(msg.Events, ev.Kind.String())
	}
	return msg
}

// Remaining converts the wire form back to a duration.
func (a ActiveState) Remaining() time.Duration {
	return time.Duration(a.RemainingMs) * time.Millisecond
}
