package viewer

import (
	"image/color"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colDefensive = color.RGBA{R: 46, G: 104, B: 52, A: 255}
	colMidfield  = color.RGBA{R: 52, G: 116, B: 58, A: 255}
	colForward   = color.RGBA{R: 46, G: 104, B: 52, A: 255}
	colPocket    = color.RGBA{R: 74, G: 140, B: 70, A: 255}
	colGoal      = color.RGBA{R: 200, G: 200, B: 190, A: 90}
	colBoundary  = color.RGBA{R: 235, G: 235, B: 225, A: 255}
	colArc       = color.RGBA{R: 220, G: 220, B: 210, A: 110}
	colGridLine  = color.RGBA{R: 0, G: 0, B: 0, A: 28}

	colHome = color.RGBA{R: 200, G: 40, B: 50, A: 255}
	colAway = color.RGBA{R: 40, G: 80, B: 200, A: 255}
	colBall = color.RGBA{R: 180, G: 90, B: 30, A: 255}
)

func sideColor(s game.Side) color.RGBA {
	if s == game.SideAway {
		return colAway
	}
	return colHome
}

// tint darkens a side colour by fatigue band so tired units stand out.
func tint(c color.RGBA, b game.FatigueBand) color.RGBA {
	f := map[game.FatigueBand]float64{
		game.BandFresh:     1.0,
		game.BandMinor:     0.85,
		game.BandTired:     0.65,
		game.BandExhausted: 0.45,
	}[b]
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

func zoneColor(z game.Zone) color.RGBA {
	switch z {
	case game.ZoneDefensive:
		return colDefensive
	case game.ZoneMidfield:
		return colMidfield
	case game.ZoneForward:
		return colForward
	default:
		return colPocket
	}
}

// fieldLayer is the static part of the field, drawn once into an image.
func fieldLayer(g *game.Grid, cell int) *ebiten.Image {
	img := ebiten.NewImage(g.Cols()*cell, g.Rows()*cell)
	cs := float32(cell)
	for _, c := range g.Cells() {
		x, y := float32(c.X)*cs, float32(c.Y)*cs
		vector.FillRect(img, x, y, cs, cs, zoneColor(c.Zone), false)
		if c.GoalSquare {
			vector.FillRect(img, x, y, cs, cs, colGoal, false)
		}
		if c.FiftyArc {
			vector.FillRect(img, x+cs/2-1, y+cs/2-1, 2, 2, colArc, false)
		}
		vector.StrokeRect(img, x, y, cs, cs, 0.5, colGridLine, false)
		if c.Boundary {
			vector.StrokeRect(img, x+1, y+1, cs-2, cs-2, 1.0, colBoundary, false)
		}
	}
	return img
}

// drawUnits draws each unit as a disc tinted by fatigue with a role letter.
func drawUnits(screen *ebiten.Image, s game.Snapshot, cell int, offY int) {
	cs := float32(cell)
	for _, u := range s.Units {
		cx := float32(u.X)*cs + cs/2
		cy := float32(u.Y)*cs + cs/2 + float32(offY)
		vector.FillCircle(screen, cx, cy, cs*0.42, tint(sideColor(u.Side), u.Band), true)
		if u.Name == s.Ball.Carrier {
			vector.StrokeCircle(screen, cx, cy, cs*0.48, 1.5, colBall, true)
		}
		ebitenutil.DebugPrintAt(screen, u.Role.Code(), int(cx)-3, int(cy)-8)
	}
}

// drawBall draws the ball at its flight position or cell.
func drawBall(screen *ebiten.Image, s game.Snapshot, cell int, offY int) {
	cs := float32(cell)
	var bx, by float32
	if s.Ball.Mode == game.BallAirborne {
		bx = float32(s.Ball.FlightX)*cs + cs/2
		by = float32(s.Ball.FlightY)*cs + cs/2
	} else {
		bx = float32(s.Ball.Cell.X)*cs + cs/2
		by = float32(s.Ball.Cell.Y)*cs + cs/2
	}
	by += float32(offY)
	r := cs * 0.22
	if s.Ball.Mode == game.BallCarried {
		bx += cs * 0.3
		by -= cs * 0.3
	}
	if s.Ball.Mode == game.BallAirborne {
		r = cs * 0.3
	}
	clr := colBall
	if s.Ball.Status == game.BallDead {
		clr = color.RGBA{R: 110, G: 90, B: 80, A: 220}
	}
	vector.FillCircle(screen, bx, by, r, clr, true)
}
