package platformer

import (
	"fmt"
	"math"
	"unicode"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
)

// Visual characters for rendering
const (
	PlatformChar = '█'
	CoinChar     = 'o'
	EnemyChar    = '▒'
	PlayerChar   = '█'
	PoleChar     = '│'
	FlagChar     = '▸'
	EyeRight     = '▶'
	EyeLeft      = '◀'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.layoutW, g.layoutH = dst.Width(), dst.Height()
	if g.world == nil {
		return
	}

	snap := g.Snapshot()
	vp := Viewport{W: g.cfg.Camera.ViewportW, H: g.cfg.Camera.ViewportH}
	for _, cmd := range DrawCommands(snap, vp) {
		rasterize(dst, vp, cmd)
	}

	g.drawHUD(dst, snap)
	g.drawStrip(dst)

	switch {
	case g.overview:
		g.drawOverview(dst)
	case snap.State == sim.Lost:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score), core.ColorBrightRed)
	case snap.State == sim.Won && g.progress.HasNext(snap.LevelID):
		left := max(g.cfg.Flow.CompleteTicks-g.completeTimer, 0)
		secs := int(math.Ceil(float64(left) / float64(max(g.runtime.TickRate, 1))))
		drawCenteredMessage(dst, "LEVEL COMPLETE!", fmt.Sprintf("Score: %d  |  Next level in %ds", snap.Score, secs), core.ColorBrightGreen)
	case snap.State == sim.Won:
		drawCenteredMessage(dst, "ALL LEVELS COMPLETE!", fmt.Sprintf("Total: %d  |  Press R to replay", g.progress.Score()), core.ColorGold)
	}
}

// cellSpan maps a world span [lo, hi) to at least one cell.
func cellSpan(lo, hi, scale float64, offset int) (int, int) {
	a := int(math.Floor(lo*scale)) + offset
	b := int(math.Ceil(hi*scale)) + offset
	if b <= a {
		b = a + 1
	}
	return a, b
}

// rasterize draws one command into the playfield.
func rasterize(dst *core.Screen, vp Viewport, cmd DrawCommand) {
	px, py, pw, ph := playfield(dst.Width(), dst.Height())
	if pw == 0 || ph == 0 {
		return
	}
	sx := float64(pw) / vp.W
	sy := float64(ph) / vp.H

	x0, x1 := cellSpan(cmd.Rect.X, cmd.Rect.Right(), sx, px)
	y0, y1 := cellSpan(cmd.Rect.Y, cmd.Rect.Bottom(), sy, py)
	x0, x1 = max(x0, px), min(x1, px+pw)
	y0, y1 = max(y0, py), min(y1, py+ph)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	switch cmd.Shape {
	case ShapePlatform:
		dst.DrawRect(x0, y0, x1-x0, y1-y0, PlatformChar, cmd.Color)
	case ShapeCoin:
		dst.DrawRect(x0, y0, x1-x0, y1-y0, CoinChar, cmd.Color)
	case ShapeGoal:
		for y := y0; y < y1; y++ {
			dst.SetColored(x0, y, PoleChar, cmd.Color)
		}
		dst.SetColored(x0+1, y0, FlagChar, cmd.Color)
	case ShapeEnemy:
		dst.DrawRect(x0, y0, x1-x0, y1-y0, EnemyChar, cmd.Color)
		mark := '?'
		if cmd.Label != "" {
			mark = unicode.ToUpper([]rune(cmd.Label)[0])
		}
		if cmd.FacingRight {
			dst.SetColored(x1-1, y0, mark, cmd.Color)
		} else {
			dst.SetColored(x0, y0, mark, cmd.Color)
		}
	case ShapePlayer:
		dst.DrawRect(x0, y0, x1-x0, y1-y0, PlayerChar, cmd.Color)
		if cmd.FacingRight {
			dst.SetColored(x1-1, y0, EyeRight, core.ColorBrightWhite)
		} else {
			dst.SetColored(x0, y0, EyeLeft, core.ColorBrightWhite)
		}
	}
}

// drawHUD draws the run score, level name and campaign total.
func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	scoreText := fmt.Sprintf(" Score: %d ", snap.Score)
	dst.DrawTextColored(1, 0, scoreText, core.ColorBrightWhite)

	levelText := fmt.Sprintf("Level %d/%d: %s", snap.LevelID, snap.LevelCount, snap.LevelName)
	dst.DrawTextCentered(0, levelText, core.ColorBrightYellow)

	totalText := fmt.Sprintf(" Total: %d ", g.progress.Score())
	dst.DrawTextColored(dst.Width()-len(totalText)-1, 0, totalText, core.ColorGray)
}

// levelColor picks the marker color for a level's progression state.
func (g *Game) levelColor(id int) core.Color {
	switch {
	case g.world != nil && id == g.world.LevelID():
		return core.ColorBrightGreen
	case g.progress.IsCompleted(id):
		return core.ColorGold
	case g.progress.IsUnlocked(id):
		return core.ColorWhite
	default:
		return core.ColorGray
	}
}

// drawStrip draws the clickable level markers on the bottom row.
func (g *Game) drawStrip(dst *core.Screen) {
	buttons := stripButtons(dst.Width(), dst.Height(), len(g.defs))
	if len(buttons) == 0 {
		return
	}
	dst.DrawTextColored(1, dst.Height()-1, "Esc: levels", core.ColorGray)
	for _, b := range buttons {
		label := fmt.Sprintf("[%d]", b.ID)
		if !g.progress.IsUnlocked(b.ID) {
			label = "[#]"
		}
		dst.DrawTextColored(b.X, b.Y, label, g.levelColor(b.ID))
	}
}

// drawOverview draws the level overview panel with one button per level.
func (g *Game) drawOverview(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	buttons := overviewButtons(w, h, len(g.defs))

	panelW := max(len(buttons)*(overviewButtonW+overviewButtonGap)+2, 40)
	panelH := overviewButtonH + 6
	panelX := (w - panelW) / 2
	panelY := h/2 - overviewButtonH/2 - 3

	dst.DrawRect(panelX, panelY, panelW, panelH, ' ', core.ColorDefault)
	dst.DrawBox(panelX, panelY, panelW, panelH, core.ColorBrightYellow)
	dst.DrawTextCentered(panelY+1, "SELECT LEVEL", core.ColorBrightYellow)

	for _, b := range buttons {
		c := g.levelColor(b.ID)
		if b.ID == g.overviewCursor {
			c = core.ColorBrightYellow
		}
		dst.DrawBox(b.X, b.Y, b.W, b.H, c)

		status := "PLAY"
		switch {
		case !g.progress.IsUnlocked(b.ID):
			status = "LOCKED"
		case g.progress.IsCompleted(b.ID):
			status = "DONE"
		}
		drawInButton(dst, b, 1, fmt.Sprintf("Level %d", b.ID), c)
		drawInButton(dst, b, 3, status, c)
	}

	dst.DrawTextCentered(panelY+panelH-2, "←/→ choose  Space play  Esc close", core.ColorGray)
}

func drawInButton(dst *core.Screen, b button, row int, text string, c core.Color) {
	n := len([]rune(text))
	dst.DrawTextColored(b.X+(b.W-n)/2, b.Y+row, text, c)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	// Draw text
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, c)
	dst.DrawTextColored(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorDefault)
}
