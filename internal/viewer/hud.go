package viewer

import (
	"fmt"
	"image/color"
	"time"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const hudHeight = 56

var hudFace = text.NewGoXFace(basicfont.Face7x13)

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, hudFace, op)
}

// phaseLabel is the scoreboard caption for the match phase.
func phaseLabel(p game.Phase, running bool) string {
	switch p {
	case game.PhaseResetPlay:
		return "GOAL - back to the centre"
	case game.PhaseKickoutPlay:
		return "BEHIND - kick out"
	case game.PhaseQuarterBreak:
		return "QUARTER BREAK - Enter to resume"
	case game.PhaseFullTime:
		return "FULL TIME"
	case game.PhasePaused:
		return "PAUSED - Space to resume"
	default:
		if !running {
			return "READY - Space to start"
		}
		return "PLAY"
	}
}

// drawHUD renders the scoreboard strip above the field.
func drawHUD(screen *ebiten.Image, s game.Snapshot, width int, running bool, period time.Duration, status string) {
	vector.FillRect(screen, 0, 0, float32(width), hudHeight, color.RGBA{R: 16, G: 18, B: 16, A: 255}, false)
	vector.StrokeLine(screen, 0, hudHeight, float32(width), hudHeight, 1, color.RGBA{R: 60, G: 80, B: 60, A: 255}, false)

	home := fmt.Sprintf("HOME %s", s.ScoreOf(game.SideHome))
	away := fmt.Sprintf("AWAY %s", s.ScoreOf(game.SideAway))
	drawText(screen, home, 10, 6, colHome)
	drawText(screen, away, 180, 6, colAway)
	drawText(screen, fmt.Sprintf("Q%d  %s", s.Quarter, s.Clock()), 360, 6, color.White)
	drawText(screen, fmt.Sprintf("%dms/tick  T=%d", period.Milliseconds(), s.Tick), 480, 6, color.RGBA{R: 160, G: 170, B: 160, A: 255})

	caption := phaseLabel(s.Phase, running)
	if status != "" {
		caption = status
	}
	drawText(screen, caption, 10, 22, color.RGBA{R: 220, G: 210, B: 120, A: 255})
	drawText(screen, "[Space] run  [H/A] deploy  [+/-] speed  [K] kick  [C] copy", 300, 22, color.RGBA{R: 120, G: 130, B: 120, A: 255})
	drawText(screen, s.QuarterLine(), 10, 38, color.RGBA{R: 180, G: 190, B: 180, A: 255})
	drawText(screen, "[U] place unit  [T] side  [R] role", 300, 38, color.RGBA{R: 120, G: 130, B: 120, A: 255})
}
