package redlight

import (
	"fmt"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// Glyphs used on the playfield.
const (
	PlayerChar     = '●'
	DeadPlayerChar = '✕'
	GuardChar      = '☻'
	FinishChar     = '▒'
)

// Minimum terminal size that still fits the field.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// Render draws the HUD, the field and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Invalid configuration", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorDefault)
		return
	}
	if g.session == nil {
		return
	}
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorYellow)
		return
	}

	snap := g.session.Snapshot()
	field := g.session.Field()

	g.drawHUD(dst, snap)

	box := core.NewRect(0, 1, dst.Width(), dst.Height()-2)
	borderColor := core.ColorGray
	if snap.State == StateActive {
		borderColor = core.ColorGreen
		if snap.HazardActive {
			borderColor = core.ColorRed
		}
	}
	dst.DrawBox(box, borderColor)

	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
	toScreen := func(p core.Point) core.Point {
		return core.Point{
			X: inner.X + core.Clamp(core.Scale(p.X, field.Width, inner.W), 0, inner.W-1),
			Y: inner.Y + core.Clamp(core.Scale(p.Y, field.Height, inner.H), 0, inner.H-1),
		}
	}

	// Finish zone, at least one cell
	tl := toScreen(core.Point{X: field.Finish.X, Y: field.Finish.Y})
	br := toScreen(core.Point{X: field.Finish.Right(), Y: field.Finish.Bottom()})
	dst.DrawRect(core.NewRect(tl.X, tl.Y, max(1, br.X-tl.X), max(1, br.Y-tl.Y)), FinishChar, core.ColorYellow)

	guard := toScreen(field.Guard)
	guardColor := core.ColorGray
	if snap.HazardActive {
		guardColor = core.ColorBrightRed
	}
	dst.SetColored(guard.X, guard.Y, GuardChar, guardColor)

	player := toScreen(core.Point{X: snap.PlayerX, Y: snap.PlayerY})
	if snap.PlayerAlive {
		dst.SetColored(player.X, player.Y, PlayerChar, core.ColorBlue)
	} else {
		dst.SetColored(player.X, player.Y, DeadPlayerChar, core.ColorBrightRed)
	}

	dst.DrawText(1, dst.Height()-1, "←↑↓→ move  Space stop  Enter start  R restart  Q quit", core.ColorGray)

	switch snap.State {
	case StateIdle:
		drawCenteredMessage(dst, "RED LIGHT, GREEN LIGHT", "Press Enter to start", core.ColorWhite)
	case StateCountdown:
		drawCenteredMessage(dst, fmt.Sprintf("%d", snap.Countdown), "Get ready...", core.ColorYellow)
	case StateWon:
		drawCenteredMessage(dst, "YOU WIN", snap.Message+"  Press R to play again", core.ColorBrightGreen)
	case StateLost:
		title := "ELIMINATED"
		if snap.Reason == ReasonTimeout {
			title = "TIME'S UP"
		}
		drawCenteredMessage(dst, title, snap.Message+"  Press R to play again", core.ColorBrightRed)
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	light, color := " GREEN LIGHT ", core.ColorBrightGreen
	if snap.Phase == PhaseRed {
		light, color = " RED LIGHT ", core.ColorBrightRed
	}
	dst.DrawText(1, 0, "●"+light, color)

	timer := fmt.Sprintf("Time: %ds ", snap.SecondsRemaining)
	dst.DrawText(dst.Width()-len(timer)-1, 0, timer, core.ColorWhite)
}

// drawCenteredMessage draws a two-line message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, color core.Color) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, title, color)
	dst.DrawTextCentered(y+1, subtitle, core.ColorDefault)
}
