package ostrich

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-ostrich/internal/clock"
	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
)

// HighScoreStore persists the best score under a fixed key.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// RunRecorder can optionally be implemented by a HighScoreStore to keep a
// history of finished runs.
type RunRecorder interface {
	RecordRun(score int, difficulty string) error
}

// ErrorHandler receives persistence failures. They never change the outcome
// of a run.
type ErrorHandler func(op string, err error)

// Option configures a Game.
type Option func(*Game)

// WithClock sets the time source for power-up expiry and jump rate limiting.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithRand sets the random source used by the generator.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed seeds a fresh random source. Seed 0 means seed from the clock.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithStore sets the high score store.
func WithStore(s HighScoreStore) Option {
	return func(g *Game) { g.store = s }
}

// WithErrorHandler sets the callback for swallowed persistence errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(g *Game) {
		if h != nil {
			g.onError = h
		}
	}
}

// Game is the state machine that owns the simulation. It is not safe for
// concurrent use: hosts call it from a single goroutine.
type Game struct {
	cfg     config.OstrichConfig
	diff    *config.DifficultyManager
	clock   clock.Clock
	rng     *rand.Rand
	gen     *Generator
	store   HighScoreStore
	onError ErrorHandler

	state    State
	status   Status
	selected config.Tier

	pendingJump bool
	lastJump    time.Time
	burst       int // Jumps accepted in the current cooldown window
}

// New creates a game in the Idle phase and loads the stored high score.
func New(cfg config.OstrichConfig, opts ...Option) *Game {
	g := &Game{
		cfg:     cfg,
		diff:    config.NewDifficultyManager(cfg.Difficulty, cfg.Obstacles),
		clock:   clock.System{},
		onError: func(string, error) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.gen = NewGenerator(cfg, g.rng)
	g.selected = g.diff.DefaultTier()
	g.state = g.initialState()
	g.status = Status{Phase: PhaseIdle}

	if g.store != nil {
		hs, err := g.store.LoadHighScore()
		if err != nil {
			g.onError("load high score", err)
		} else {
			g.status.HighScore = hs
		}
	}
	return g
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.OstrichConfig { return g.cfg }

// Status returns the current run bookkeeping.
func (g *Game) Status() Status { return g.status }

// Snapshot returns a copy of the current simulation.
func (g *Game) Snapshot() Snapshot { return g.snapshot(nil) }

func (g *Game) initialState() State {
	w, p := g.cfg.World, g.cfg.Player
	return State{
		Player: Player{
			X: w.Width * p.XRatio,
			Y: w.Height * p.YRatio,
			W: p.Width,
			H: p.Height,
		},
		Tier:  g.selected,
		Speed: g.diff.Settings(g.selected).Speed,
	}
}

// Start resets the state and begins a run. Only the selected difficulty and
// the high score carry over. Ignored while a run is in progress.
func (g *Game) Start() Snapshot {
	if g.status.IsPlaying() {
		return g.snapshot(nil)
	}
	g.gen.Reset()
	g.state = g.initialState()
	g.status = Status{Phase: PhasePlaying, HighScore: g.status.HighScore}
	g.pendingJump = false
	g.lastJump = time.Time{}
	g.burst = 0
	return g.snapshot([]Event{{Kind: EventStart, Tier: string(g.selected)}})
}

// TogglePause switches between Playing and Paused.
func (g *Game) TogglePause() Snapshot {
	switch g.status.Phase {
	case PhasePlaying:
		g.status.Phase = PhasePaused
		return g.snapshot([]Event{{Kind: EventPause}})
	case PhasePaused:
		g.status.Phase = PhasePlaying
		return g.snapshot([]Event{{Kind: EventResume}})
	default:
		return g.snapshot(nil)
	}
}

// Jump requests an upward impulse applied on the next tick. Jumps are
// rate limited by the configured cooldown. The only exception is an active
// double-jump power-up, which admits one extra jump inside each cooldown
// window. Outside Playing the request is ignored.
func (g *Game) Jump() Snapshot {
	if g.status.Phase != PhasePlaying {
		return g.snapshot(nil)
	}

	now := g.clock.Now()
	cooldown := time.Duration(g.cfg.Physics.JumpCooldownMs) * time.Millisecond
	live, _ := Prune(g.state.Active, now)

	switch {
	case g.lastJump.IsZero() || now.Sub(g.lastJump) >= cooldown:
		g.lastJump = now
		g.burst = 1
	case g.burst < 2 && DoubleJump(live):
		g.burst++
	default:
		return g.snapshot(nil)
	}

	g.pendingJump = true
	return g.snapshot([]Event{{Kind: EventJump}})
}

// Tick advances the simulation by elapsed wall time. The order within a tick
// is fixed: power-up expiry, integration and bounds, world generation,
// collisions, pickups, commit. A run that ends keeps the last valid state.
func (g *Game) Tick(elapsed time.Duration) Snapshot {
	if g.status.Phase != PhasePlaying {
		return g.snapshot(nil)
	}

	now := g.clock.Now()
	pc := g.cfg.Physics
	dt := clock.TimeScale(elapsed, pc.TargetFrameMs, pc.MaxTimeScale)
	elapsedMs := dt * pc.TargetFrameMs
	var events []Event

	active, expired := Prune(g.state.Active, now)
	for _, a := range expired {
		events = append(events, Event{Kind: EventExpire, PowerUp: a.Type})
	}

	player := Integrate(g.state.Player, pc.Gravity, pc.JumpForce, dt, g.pendingJump)
	g.pendingJump = false
	if OutOfBounds(player, g.cfg.World.Height) {
		return g.endRun(append(events, Event{Kind: EventBoundary}))
	}

	tier := g.diff.Settings(g.state.Tier)
	slowFactor := g.cfg.PowerUps.SlowMotionFactor
	mult := SpeedMultiplier(active, slowFactor)
	speed := tier.Speed * mult

	obstacles, passed := AdvanceObstacles(g.state.Obstacles, g.cfg.Obstacles, g.cfg.World.Height, speed*dt, elapsedMs, player.X)
	obstacles = g.gen.SpawnObstacles(obstacles, tier)
	background := g.gen.Background(g.state.Background, speed, dt)
	collectibles := AdvanceCollectibles(g.state.Collectibles, mult, dt)
	powerUps := AdvancePowerUps(g.state.PowerUps, mult, dt)

	box := player.Box()
	if !Invincible(active) && FirstObstacleHit(box, obstacles) >= 0 {
		return g.endRun(append(events, Event{Kind: EventCollision}))
	}

	score := g.status.Score + passed
	for i := 0; i < passed; i++ {
		events = append(events, Event{Kind: EventPass, Value: 1})
	}

	collectibles, taken := CollectPickups(box, collectibles)
	bonusMult := ScoreMultiplier(active, g.cfg.PowerUps.ScoreMultiplier)
	for _, c := range taken {
		bonus := c.Bonus * bonusMult
		score += bonus
		events = append(events, Event{Kind: EventCollect, Value: bonus})
	}

	powerUps, picked := CollectPowerUps(box, powerUps)
	for _, p := range picked {
		active = Activate(active, p.Type, now, PowerUpDuration(g.cfg.PowerUps, p.Type))
		events = append(events, Event{Kind: EventPowerUp, PowerUp: p.Type})
	}

	g.state = State{
		Player:       player,
		Obstacles:    obstacles,
		Background:   background,
		Collectibles: collectibles,
		PowerUps:     powerUps,
		Active:       active,
		Tier:         g.state.Tier,
		Speed:        tier.Speed * SpeedMultiplier(active, slowFactor),
	}
	g.status.Score = score
	return g.snapshot(events)
}

// endRun moves to GameOver without committing the step that caused it.
func (g *Game) endRun(events []Event) Snapshot {
	g.status.Phase = PhaseGameOver
	g.pendingJump = false
	score := g.status.Score
	events = append(events, Event{Kind: EventGameOver, Value: score})

	if score > g.status.HighScore {
		g.status.HighScore = score
		events = append(events, Event{Kind: EventNewHighScore, Value: score})
		if g.store != nil {
			if err := g.store.SaveHighScore(score); err != nil {
				g.onError("save high score", err)
			}
		}
	}
	if rec, ok := g.store.(RunRecorder); ok {
		if err := rec.RecordRun(score, string(g.selected)); err != nil {
			g.onError("record run", err)
		}
	}
	return g.snapshot(events)
}

// SetDifficulty selects the starting tier. Only allowed while no run is in
// progress; unknown names select the configured default.
func (g *Game) SetDifficulty(name string) Snapshot {
	if g.status.IsPlaying() {
		return g.snapshot(nil)
	}
	tier, ok := config.ParseTier(name)
	if !ok {
		tier = g.diff.DefaultTier()
	}
	g.selected = tier
	// A finished run keeps its last state; Start applies the selection.
	if g.status.Phase == PhaseIdle {
		g.state.Tier = tier
		g.state.Speed = g.diff.Settings(tier).Speed
	}
	return g.snapshot([]Event{{Kind: EventDifficulty, Tier: string(tier)}})
}

// CycleDifficulty selects the next tier, wrapping from hard to easy.
func (g *Game) CycleDifficulty() Snapshot {
	return g.SetDifficulty(string(g.selected.Next()))
}

// ReevaluateDifficulty recomputes the effective tier from the current score.
// Driven by a wall-clock timer while Playing.
func (g *Game) ReevaluateDifficulty() Snapshot {
	if g.status.Phase != PhasePlaying {
		return g.snapshot(nil)
	}
	tier := g.diff.Effective(g.selected, g.status.Score)
	if tier == g.state.Tier {
		return g.snapshot(nil)
	}
	live, _ := Prune(g.state.Active, g.clock.Now())
	g.state.Tier = tier
	g.state.Speed = g.diff.Settings(tier).Speed * SpeedMultiplier(live, g.cfg.PowerUps.SlowMotionFactor)
	return g.snapshot([]Event{{Kind: EventDifficulty, Tier: string(tier)}})
}

// SpawnCollectible adds a collectible at the right edge. Driven by a
// wall-clock timer while Playing.
func (g *Game) SpawnCollectible() Snapshot {
	if g.status.Phase != PhasePlaying {
		return g.snapshot(nil)
	}
	c := g.gen.Collectible(g.diff.Settings(g.state.Tier).Speed)
	g.state.Collectibles = append(g.state.Collectibles, c)
	return g.snapshot(nil)
}

// SpawnPowerUp adds a world power-up of random type at the right edge.
// Driven by a wall-clock timer while Playing.
func (g *Game) SpawnPowerUp() Snapshot {
	if g.status.Phase != PhasePlaying {
		return g.snapshot(nil)
	}
	p := g.gen.PowerUp(g.diff.Settings(g.state.Tier).Speed)
	g.state.PowerUps = append(g.state.PowerUps, p)
	return g.snapshot(nil)
}

// Apply routes a semantic input action to the matching transition. arg
// names the difficulty for ActionDifficulty; empty cycles to the next tier.
func (g *Game) Apply(a core.Action, arg string) Snapshot {
	switch a {
	case core.ActionJump:
		return g.Jump()
	case core.ActionPause:
		return g.TogglePause()
	case core.ActionStart:
		return g.Start()
	case core.ActionDifficulty:
		if arg == "" {
			return g.CycleDifficulty()
		}
		return g.SetDifficulty(arg)
	default:
		return g.snapshot(nil)
	}
}

func (g *Game) snapshot(events []Event) Snapshot {
	now := g.clock.Now()
	st := g.state.clone()
	st.Active, _ = Prune(st.Active, now)
	return Snapshot{
		State:    st,
		Status:   g.status,
		Selected: g.selected,
		Time:     now,
		Events:   events,
	}
}
