package ostrich

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
)

// Visual characters for rendering
const (
	ObstacleChar    = '█'
	ObstacleCapTop  = '▀'
	ObstacleCapDown = '▄'
	HorizonChar     = '▁'
	GroundChar      = '░'
	CollectibleChar = '$'
	PlayerBodyChar  = '▓'
	PlayerHeadChar  = '◆'
	BushChar        = '♣'
)

var cloudSprite = []string{" .--. ", "(____)"}

// viewport maps world coordinates onto the cell grid.
type viewport struct {
	sx, sy float64
	w, h   int
}

func newViewport(dst *core.Screen, world config.WorldConfig) viewport {
	return viewport{
		sx: float64(dst.Width()) / world.Width,
		sy: float64(dst.Height()) / world.Height,
		w:  dst.Width(),
		h:  dst.Height(),
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// rect converts a world box to at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.col(b.Left()), v.row(b.Top())
	x1, y1 := v.col(b.Right()), v.row(b.Bottom())
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.Snapshot(), g.cfg)
}

// Draw renders a snapshot scaled to the screen size: sky, ground, decoration,
// obstacles, pickups, the player, the HUD and the phase overlay.
func Draw(dst *core.Screen, snap Snapshot, cfg config.OstrichConfig) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(dst, cfg.World)
	st := snap.State

	horizon := v.row(cfg.World.HorizonY())
	dst.DrawHLine(0, horizon, v.w, HorizonChar, core.ColorBrown)
	for y := horizon + 1; y < v.h; y++ {
		dst.DrawHLine(0, y, v.w, GroundChar, core.ColorBrown)
	}

	for _, e := range st.Background {
		drawDecoration(dst, v, e)
	}
	for _, o := range st.Obstacles {
		drawObstacle(dst, v, o)
	}
	for _, c := range st.Collectibles {
		r := v.rect(c.Box())
		dst.DrawRect(r, CollectibleChar, core.ColorBrightYellow)
	}
	for _, p := range st.PowerUps {
		r := v.rect(p.Box())
		dst.DrawRect(r, p.Type.Glyph(), core.ColorMagenta)
	}
	drawPlayer(dst, v, st.Player, Invincible(st.Active))

	drawHUD(dst, snap)

	switch snap.Status.Phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "FLAPPY OSTRICH",
			fmt.Sprintf("Difficulty: %s  |  D to change", strings.ToUpper(string(snap.Selected))),
			"Press SPACE or ENTER to start")
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseGameOver:
		title := "GAME OVER"
		if snap.Has(EventNewHighScore) || (snap.Status.Score > 0 && snap.Status.Score == snap.Status.HighScore) {
			title = "GAME OVER - NEW HIGH SCORE!"
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  |  Best: %d", snap.Status.Score, snap.Status.HighScore),
			"Press ENTER to play again")
	}
}

func drawDecoration(dst *core.Screen, v viewport, e BackgroundElement) {
	x, y := v.col(e.X), v.row(e.Y)
	switch e.Kind {
	case KindCloud:
		for i, line := range cloudSprite {
			dst.DrawTextColored(x, y+i, line, core.ColorWhite)
		}
	case KindBush:
		n := max(1, int(math.Round(3*e.Scale)))
		dst.DrawHLine(x, y, n, BushChar, core.ColorGreen)
	}
}

// drawObstacle renders both solid regions of an obstacle, leaving the gap open.
func drawObstacle(dst *core.Screen, v viewport, o Obstacle) {
	x0 := v.col(o.X)
	width := max(1, v.col(o.Right())-x0)
	gapTop := v.row(o.GapTop)
	gapBottom := v.row(o.GapBottom())

	color := core.ColorBrightGreen
	if o.Behavior == BehaviorOscillating {
		color = core.ColorCyan
	}

	for y := 0; y < gapTop; y++ {
		dst.DrawHLine(x0, y, width, ObstacleChar, color)
	}
	if gapTop > 0 {
		dst.DrawHLine(x0, gapTop-1, width, ObstacleCapTop, color)
	}
	for y := gapBottom; y < v.h; y++ {
		dst.DrawHLine(x0, y, width, ObstacleChar, color)
	}
	if gapBottom < v.h {
		dst.DrawHLine(x0, gapBottom, width, ObstacleCapDown, color)
	}
}

func drawPlayer(dst *core.Screen, v viewport, p Player, invincible bool) {
	r := v.rect(p.Box())
	color := core.ColorOrange
	if invincible {
		color = core.ColorBrightYellow
	}
	dst.DrawRect(r, PlayerBodyChar, color)
	dst.SetColored(r.Right()-1, r.Y, PlayerHeadChar, color)
}

// drawHUD writes score, best score, tier and active power-ups on the top row.
func drawHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Score: %d  Best: %d  [%s] ",
		snap.Status.Score, snap.Status.HighScore, strings.ToUpper(string(snap.State.Tier)))
	dst.DrawTextColored(1, 0, hud, core.ColorWhite)

	x := 1 + len([]rune(hud))
	for _, a := range snap.State.Active {
		secs := int(math.Ceil(a.Remaining(snap.Time).Seconds()))
		label := fmt.Sprintf("%c%ds ", a.Type.Glyph(), secs)
		dst.DrawTextColored(x, 0, label, core.ColorMagenta)
		x += len([]rune(label))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w, h := dst.Width(), dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 3 + 2*len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len([]rune(l)))/2, boxY+3+2*i, l, core.ColorDefault)
	}
}
