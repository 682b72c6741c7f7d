// Package audio plays short synthesized cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Cue identifies one sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueJump
	CueCollect
	CuePowerUp
	CueCollision
	CueHighScore
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueCollect:
		return "collect"
	case CuePowerUp:
		return "powerup"
	case CueCollision:
		return "collision"
	case CueHighScore:
		return "highscore"
	default:
		return "none"
	}
}

// CueFor maps a game event to its sound. Events without a sound return false.
func CueFor(kind ostrich.EventKind) (Cue, bool) {
	switch kind {
	case ostrich.EventJump:
		return CueJump, true
	case ostrich.EventCollect:
		return CueCollect, true
	case ostrich.EventPowerUp:
		return CuePowerUp, true
	case ostrich.EventCollision, ostrich.EventBoundary:
		return CueCollision, true
	case ostrich.EventNewHighScore:
		return CueHighScore, true
	default:
		return CueNone, false
	}
}

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(c Cue)
}

// Silent discards every cue. It is used when no audio device is available
// and for remote sessions.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Cue) {}

// PlayEvents plays the cue of every event that has one. A collision and a
// boundary hit in the same batch produce a single crash sound.
func PlayEvents(p Player, events []ostrich.Event) {
	if p == nil {
		return
	}
	played := make(map[Cue]bool, len(events))
	for _, e := range events {
		c, ok := CueFor(e.Kind)
		if !ok || played[c] {
			continue
		}
		played[c] = true
		p.Play(c)
	}
}

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it again after success is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open.
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play queues a one-shot cue. It is a no-op until Initialize succeeds.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := Streamer(c)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Streamer returns a finite streamer for the cue, or nil for CueNone.
func Streamer(c Cue) beep.Streamer {
	switch c {
	case CueJump:
		// quick upward chirp
		return beep.Take(sampleRate.N(time.Millisecond*90), NewSweepGenerator(sampleRate, 420, 880, 0.25, 30))
	case CueCollect:
		return beep.Seq(
			beep.Take(sampleRate.N(time.Millisecond*60), NewSweepGenerator(sampleRate, 988, 988, 0.2, 20)),
			beep.Take(sampleRate.N(time.Millisecond*120), NewSweepGenerator(sampleRate, 1319, 1319, 0.2, 15)),
		)
	case CuePowerUp:
		return beep.Take(sampleRate.N(time.Millisecond*300), NewSweepGenerator(sampleRate, 330, 1320, 0.2, 6))
	case CueCollision:
		return beep.Take(sampleRate.N(time.Millisecond*350), NewCrashGenerator(sampleRate))
	case CueHighScore:
		return beep.Seq(
			beep.Take(sampleRate.N(time.Millisecond*100), NewSweepGenerator(sampleRate, 523, 523, 0.2, 10)),
			beep.Take(sampleRate.N(time.Millisecond*100), NewSweepGenerator(sampleRate, 659, 659, 0.2, 10)),
			beep.Take(sampleRate.N(time.Millisecond*250), NewSweepGenerator(sampleRate, 784, 784, 0.2, 6)),
		)
	default:
		return nil
	}
}
