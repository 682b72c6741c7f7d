package ostrich

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
)

func TestSpacingInvariantHoldsAfterGeneration(t *testing.T) {
	cfg := config.DefaultOstrichConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty, cfg.Obstacles)

	for _, tier := range config.Tiers {
		t.Run(string(tier), func(t *testing.T) {
			gen := NewGenerator(cfg, rand.New(rand.NewSource(7)))
			settings := diff.Settings(tier)
			maxTop := cfg.Obstacles.MaxGapTop(cfg.World.Height)

			var obs []Obstacle
			lastID := 0
			for i := 0; i < 3000; i++ {
				dt := float64(1 + i%5)
				obs, _ = AdvanceObstacles(obs, cfg.Obstacles, cfg.World.Height, settings.Speed*dt, 16*dt, 160)
				obs = gen.SpawnObstacles(obs, settings)

				if NeedsObstacle(obs, cfg.World.Width, settings.Spacing) {
					x, _ := Rightmost(obs)
					t.Fatalf("step %d: rightmost x=%v < %v after generation", i, x, cfg.World.Width-settings.Spacing)
				}
				for _, o := range obs {
					if o.GapTop < cfg.Obstacles.MinHeight || o.GapTop > maxTop {
						t.Fatalf("gap top %v outside [%v, %v]", o.GapTop, cfg.Obstacles.MinHeight, maxTop)
					}
					if o.ID > lastID {
						lastID = o.ID
					}
				}
				for j := 1; j < len(obs); j++ {
					if obs[j].ID <= obs[j-1].ID {
						t.Fatalf("ids not increasing: %d then %d", obs[j-1].ID, obs[j].ID)
					}
				}
			}
			if lastID < 10 {
				t.Errorf("expected many obstacles to spawn, last id %d", lastID)
			}
		})
	}
}

func TestSpawnObstaclesRule(t *testing.T) {
	cfg := config.DefaultOstrichConfig()
	gen := NewGenerator(cfg, rand.New(rand.NewSource(1)))
	tier := config.TierSettings{Speed: 3, Spacing: 300}

	out := gen.SpawnObstacles(nil, tier)
	if len(out) != 1 || out[0].X != cfg.World.Width || out[0].ID != 1 {
		t.Fatalf("expected one obstacle at the right edge, got %+v", out)
	}

	// 501 is not left of 800-300, nothing to spawn.
	in := []Obstacle{{ID: 1, X: 501, Width: 60}}
	if got := gen.SpawnObstacles(in, tier); len(got) != 1 {
		t.Errorf("spawned too early: %+v", got)
	}

	in = []Obstacle{{ID: 1, X: 499, Width: 60}}
	got := gen.SpawnObstacles(in, tier)
	if len(got) != 2 || got[1].ID != 2 {
		t.Errorf("expected a second obstacle with id 2, got %+v", got)
	}
	if len(in) != 1 {
		t.Error("input slice must not grow")
	}
}

func TestSpawnPatterns(t *testing.T) {
	cfg := config.DefaultOstrichConfig()
	gen := NewGenerator(cfg, rand.New(rand.NewSource(3)))
	tier := config.TierSettings{Speed: 3, Spacing: 300, PatternChance: 1, OscillateChance: 1}

	seen := map[Pattern]bool{}
	for i := 0; i < 50; i++ {
		out := gen.SpawnObstacles(nil, tier)
		if len(out) != 2 {
			t.Fatalf("grouped spawn should create two obstacles, got %d", len(out))
		}
		a, b := out[0], out[1]
		if a.Group != b.Group {
			t.Error("grouped obstacles must share a group")
		}
		if b.X-a.X != cfg.Obstacles.PairDistance {
			t.Errorf("pair distance = %v", b.X-a.X)
		}
		if a.Behavior != BehaviorOscillating {
			t.Error("oscillate chance 1 should always oscillate")
		}
		switch a.Pattern {
		case PatternPaired:
			if a.GapTop != b.GapTop {
				t.Error("paired obstacles share the gap")
			}
		case PatternOffset:
			if a.GapTop == b.GapTop && cfg.Obstacles.OffsetShift != 0 {
				shifted := a.GapTop+cfg.Obstacles.OffsetShift > cfg.Obstacles.MaxGapTop(cfg.World.Height) ||
					a.GapTop-cfg.Obstacles.OffsetShift < cfg.Obstacles.MinHeight
				if !shifted {
					t.Error("offset obstacle should have a shifted gap")
				}
			}
		default:
			t.Errorf("unexpected pattern %s", a.Pattern)
		}
		seen[a.Pattern] = true
	}
	if !seen[PatternPaired] || !seen[PatternOffset] {
		t.Errorf("expected both grouped patterns, saw %v", seen)
	}
}

func TestBackgroundSpawnAndRemoval(t *testing.T) {
	cfg := config.DefaultOstrichConfig()
	cfg.Background.CloudChance = 1
	cfg.Background.BushChance = 1
	gen := NewGenerator(cfg, rand.New(rand.NewSource(5)))

	in := []BackgroundElement{{ID: 99, Kind: KindCloud, X: -99, Y: 10, Scale: 1}}
	out := gen.Background(in, 3, 1)

	if len(out) != 2 {
		t.Fatalf("expected old element removed and two spawned, got %+v", out)
	}
	horizon := cfg.World.HorizonY()
	for _, e := range out {
		if e.X != cfg.World.Width {
			t.Errorf("%s spawned at x=%v", e.Kind, e.X)
		}
		switch e.Kind {
		case KindCloud:
			if e.Y < 0 || e.Y >= horizon-cloudBandMargin {
				t.Errorf("cloud y=%v outside band", e.Y)
			}
			if e.Scale < 0.8 || e.Scale > 1.2 {
				t.Errorf("cloud scale %v", e.Scale)
			}
		case KindBush:
			if e.Y != horizon-bushLift {
				t.Errorf("bush y=%v", e.Y)
			}
			if e.Scale < 0.6 || e.Scale > 0.9 {
				t.Errorf("bush scale %v", e.Scale)
			}
		}
	}
	if in[0].X != -99 {
		t.Error("input slice must not be modified")
	}
}

func TestBackgroundMovesAtFractionOfSpeed(t *testing.T) {
	cfg := config.DefaultOstrichConfig()
	cfg.Background.CloudChance = 0
	cfg.Background.BushChance = 0
	gen := NewGenerator(cfg, rand.New(rand.NewSource(5)))

	out := gen.Background([]BackgroundElement{{X: 400}}, 4, 2)
	if len(out) != 1 || out[0].X != 396 {
		t.Errorf("expected x=396, got %+v", out)
	}
}

func TestPickupGeneration(t *testing.T) {
	cfg := config.DefaultOstrichConfig()
	gen := NewGenerator(cfg, rand.New(rand.NewSource(11)))

	c := gen.Collectible(3)
	if c.X != cfg.World.Width || c.Size != 30 || c.Bonus != 5 {
		t.Errorf("unexpected collectible %+v", c)
	}
	if c.Speed != 3*cfg.Pickups.CollectibleSpeedFactor {
		t.Errorf("collectible speed = %v", c.Speed)
	}

	counts := map[PowerUpType]int{}
	for i := 0; i < 400; i++ {
		p := gen.PowerUp(3)
		counts[p.Type]++
		if p.Y < cfg.Obstacles.MinHeight || p.Y+p.Size > cfg.World.Height-cfg.Obstacles.MinHeight {
			t.Fatalf("power-up y=%v outside the flyable band", p.Y)
		}
	}
	for _, typ := range PowerUpTypes {
		if counts[typ] < 50 {
			t.Errorf("type %s drawn %d times out of 400", typ, counts[typ])
		}
	}
}
