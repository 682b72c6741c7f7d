package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SweepGenerator produces a sine tone gliding from one frequency to another
// over 300ms, with an exponential decay envelope.
type SweepGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	volume    float64
	decay     float64
	pos       int
	phase     float64
	sweepSize int
}

// NewSweepGenerator creates a sweep. decay is the envelope rate per second.
func NewSweepGenerator(sr beep.SampleRate, from, to, volume, decay float64) *SweepGenerator {
	return &SweepGenerator{
		sr:        sr,
		from:      from,
		to:        to,
		volume:    volume,
		decay:     decay,
		sweepSize: sr.N(time.Millisecond * 300),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		progress := math.Min(float64(g.pos)/float64(g.sweepSize), 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		sample := g.volume * math.Exp(-t*g.decay) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// CrashGenerator produces a low thud mixed with decaying noise.
type CrashGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrashGenerator creates a crash sound generator
func NewCrashGenerator(sr beep.SampleRate) *CrashGenerator {
	return &CrashGenerator{
		sr:   sr,
		seed: 1,
	}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 10)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		thud := 0.4 * math.Sin(2*math.Pi*(90-40*t)*t)

		sample := envelope * (0.3*noise + thud)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}
