package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// startTestServer spins up an httptest.Server and returns the game server,
// its store and the WebSocket URL.
func startTestServer(t *testing.T) (*Server, *storage.Store, *httptest.Server, string) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	srv := NewServer(Options{Config: config.DefaultOstrichConfig(), Store: store, FPS: 60})
	hs := httptest.NewServer(srv.SetupRoutes())
	t.Cleanup(func() {
		srv.Close()
		hs.Close()
		store.Close()
	})

	wsURL := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"
	return srv, store, hs, wsURL
}

func dialWS(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial WS: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readText skips state frames until a JSON envelope arrives.
func readText(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read WS: %v", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var env InEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return env.T, env.D
	}
}

// waitState reads state frames until pred accepts one.
func waitState(t *testing.T, conn *websocket.Conn, pred func(StateMsg) bool) StateMsg {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read WS: %v", err)
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		var st StateMsg
		if err := msgpack.Unmarshal(raw, &st); err != nil {
			t.Fatalf("msgpack unmarshal: %v", err)
		}
		if pred(st) {
			return st
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write WS: %v", err)
	}
}

func TestWelcomeComesFirst(t *testing.T) {
	_, _, _, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read WS: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Fatalf("first frame type = %d, want text", msgType)
	}

	var env struct {
		T string     `json:"t"`
		D WelcomeMsg `json:"d"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.T != MsgWelcome {
		t.Fatalf("first message = %q, want welcome", env.T)
	}
	if !uuidRegex.MatchString(env.D.SessionID) {
		t.Errorf("session id %q is not a UUID", env.D.SessionID)
	}
	if env.D.World.Width != 800 || env.D.World.Height != 600 {
		t.Errorf("world = %+v", env.D.World)
	}
	if !slices.Equal(env.D.Tiers, []string{"easy", "medium", "hard"}) {
		t.Errorf("tiers = %v", env.D.Tiers)
	}

	st := waitState(t, conn, func(StateMsg) bool { return true })
	if st.Phase != "idle" {
		t.Errorf("initial phase = %q, want idle", st.Phase)
	}
}

func TestDifficultyThenStart(t *testing.T) {
	_, _, _, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)

	send(t, conn, `{"t":"difficulty","d":{"tier":"hard"}}`)
	waitState(t, conn, func(s StateMsg) bool { return s.Selected == "hard" })

	// pause right away so the run cannot end before it is observed
	send(t, conn, `{"t":"start"}`)
	send(t, conn, `{"t":"pause"}`)
	st := waitState(t, conn, func(s StateMsg) bool { return s.Phase == "paused" })
	if st.Tier != "hard" {
		t.Errorf("tier = %q, want hard", st.Tier)
	}
	if st.Speed != 4 {
		t.Errorf("speed = %v, want 4", st.Speed)
	}
}

func TestUnknownMessage(t *testing.T) {
	_, _, _, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)

	if typ, _ := readText(t, conn); typ != MsgWelcome {
		t.Fatalf("first message = %q", typ)
	}

	send(t, conn, `{"t":"fire"}`)
	typ, data := readText(t, conn)
	if typ != MsgError {
		t.Fatalf("message = %q, want error", typ)
	}
	var e ErrorMsg
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(e.Msg, "fire") {
		t.Errorf("error = %q", e.Msg)
	}

	send(t, conn, `not json`)
	if typ, _ := readText(t, conn); typ != MsgError {
		t.Errorf("malformed message answered with %q", typ)
	}
}

func TestSessionsTrackConnections(t *testing.T) {
	srv, _, _, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)
	readText(t, conn)

	if n := srv.Sessions(); n != 1 {
		t.Fatalf("sessions = %d, want 1", n)
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Sessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("session not released, %d left", srv.Sessions())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHealthz(t *testing.T) {
	_, _, hs, _ := startTestServer(t)

	resp, err := http.Get(hs.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestScoresEndpoint(t *testing.T) {
	_, store, hs, _ := startTestServer(t)
	for _, run := range []struct {
		tier  string
		score int
	}{{"hard", 21}, {"hard", 8}, {"easy", 50}} {
		if _, err := store.SaveScore(run.tier, run.score); err != nil {
			t.Fatalf("SaveScore() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		query  string
		status int
		scores []int
	}{
		{"all", "", http.StatusOK, []int{50, 21, 8}},
		{"filtered", "?difficulty=hard", http.StatusOK, []int{21, 8}},
		{"limited", "?limit=1", http.StatusOK, []int{50}},
		{"bad limit", "?limit=zero", http.StatusBadRequest, nil},
		{"bad tier", "?difficulty=insane", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(hs.URL + "/scores" + tt.query)
			if err != nil {
				t.Fatalf("GET: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}

			var entries []ScoreEntry
			if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
				t.Fatalf("decode: %v", err)
			}
			got := make([]int, len(entries))
			for i, e := range entries {
				got[i] = e.Score
			}
			if !slices.Equal(got, tt.scores) {
				t.Errorf("scores = %v, want %v", got, tt.scores)
			}
		})
	}
}

func TestNewStateMsg(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := ostrich.Snapshot{
		State: ostrich.State{
			Player: ostrich.Player{X: 160, Y: 300, W: 60, H: 60, Velocity: -10},
			Obstacles: []ostrich.Obstacle{
				{ID: 3, X: 500, Width: 60, GapTop: 120, Gap: 180, Behavior: ostrich.BehaviorOscillating, Group: 2},
			},
			PowerUps: []ostrich.PowerUp{{ID: 7, X: 700, Y: 200, Size: 40, Type: ostrich.PowerUpSlowMotion}},
			Active: []ostrich.ActivePowerUp{
				{Type: ostrich.PowerUpInvincibility, StartTime: now.Add(-time.Second), Duration: 5 * time.Second},
			},
			Tier:  config.TierMedium,
			Speed: 3,
		},
		Status:   ostrich.Status{Phase: ostrich.PhasePlaying, Score: 4, HighScore: 9},
		Selected: config.TierEasy,
		Time:     now,
		Events:   []ostrich.Event{{Kind: ostrich.EventPass, Value: 1}},
	}

	msg := NewStateMsg(snap)

	if msg.Phase != "playing" || msg.Score != 4 || msg.HighScore != 9 {
		t.Errorf("status = %s/%d/%d", msg.Phase, msg.Score, msg.HighScore)
	}
	if msg.Tier != "medium" || msg.Selected != "easy" {
		t.Errorf("tier = %s, selected = %s", msg.Tier, msg.Selected)
	}
	if msg.Player.VY != -10 || msg.Player.X != 160 {
		t.Errorf("player = %+v", msg.Player)
	}
	if len(msg.Obstacles) != 1 || !msg.Obstacles[0].Osc || msg.Obstacles[0].Group != 2 {
		t.Errorf("obstacles = %+v", msg.Obstacles)
	}
	if len(msg.PowerUps) != 1 || msg.PowerUps[0].Kind != "slowMotion" {
		t.Errorf("power-ups = %+v", msg.PowerUps)
	}
	if len(msg.Active) != 1 || msg.Active[0].Remaining() != 4*time.Second {
		t.Errorf("active = %+v", msg.Active)
	}
	if !slices.Equal(msg.Events, []string{"pass"}) {
		t.Errorf("events = %v", msg.Events)
	}
	if msg.Time != now.UnixMilli() {
		t.Errorf("time = %d", msg.Time)
	}

	data, err := msgpack.Marshal(msg)
	if err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	var back StateMsg
	if err := msgpack.Unmarshal(data, &back); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	if back.Obstacles[0].GapTop != 120 || back.Active[0].Kind != "invincibility" {
		t.Errorf("round trip = %+v", back)
	}
}
