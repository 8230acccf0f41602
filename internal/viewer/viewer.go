// Package viewer renders a match with Ebiten and maps keys to match
// commands. It only reads snapshots; every change goes through the driver
// loop or a Match command.
package viewer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/Footy-Sense/internal/driver"
	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// Game implements ebiten.Game for one match.
type Game struct {
	loop   *driver.Loop
	events *EventLog
	log    zerolog.Logger

	cell  int
	field *ebiten.Image
	snap  game.Snapshot

	status      string
	statusUntil time.Time

	// side and role for units placed with the create key
	createSide game.Side
	createRole game.Role
}

// New builds a viewer for a match created with events as one of its
// observers.
func New(lp *driver.Loop, events *EventLog, log zerolog.Logger) *Game {
	m := lp.Match()
	return &Game{
		loop:   lp,
		events: events,
		log:    log,
		cell:   m.Config().CellSize,
		snap:   m.Snapshot(),

		createRole: game.RoleForward,
	}
}

// WindowSize returns the outer window size in pixels.
func (g *Game) WindowSize() (int, int) {
	m := g.loop.Match()
	return m.Grid().Cols()*g.cell + logPanelWidth, m.Grid().Rows()*g.cell + hudHeight
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.WindowSize()
}

// Update implements ebiten.Game: input first, then as many ticks as the
// elapsed frame time allows.
func (g *Game) Update() error {
	g.handleInput()
	g.loop.Advance(time.Second / time.Duration(ebiten.TPS()))
	g.snap = g.loop.Match().Snapshot()
	return nil
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(3 * time.Second)
	g.events.Note(g.snap.Tick, msg)
}

func (g *Game) handleInput() {
	m := g.loop.Match()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.loop.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.deploy(game.SideHome)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.deploy(game.SideAway)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.loop.SpeedUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.loop.SpeedDown()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if !m.Resume() {
			g.setStatus("nothing to resume")
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.kickAtGoal()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyScore()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.createSide = g.createSide.Opponent()
		g.setStatus(fmt.Sprintf("new units: %s %s", g.createSide, g.createRole))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.createRole = nextRole(g.createRole)
		g.setStatus(fmt.Sprintf("new units: %s %s", g.createSide, g.createRole))
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		cx, cy, ok := g.cursorCell()
		if !ok {
			g.setStatus("point at the field to place a unit")
			return
		}
		msg, err := createUnitAt(m, g.createSide, g.createRole, cx, cy)
		if err != nil && !errors.Is(err, game.ErrCellOccupied) {
			g.log.Warn().Err(err).Int("x", cx).Int("y", cy).Msg("create unit failed")
		}
		g.setStatus(msg)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if cx, cy, ok := g.cursorCell(); ok && !m.KickTo(cx, cy) {
			g.setStatus("no carrier to kick")
		}
	}
}

// cursorCell maps the mouse position to a field cell.
func (g *Game) cursorCell() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	if my < hudHeight {
		return 0, 0, false
	}
	cx, cy := mx/g.cell, (my-hudHeight)/g.cell
	return cx, cy, g.loop.Match().Grid().InBounds(cx, cy)
}

func nextRole(r game.Role) game.Role {
	if r == game.RoleForward {
		return game.RoleDefender
	}
	return r + 1
}

// createUnitAt places one unit and returns the status line to show.
func createUnitAt(m *game.Match, side game.Side, role game.Role, x, y int) (string, error) {
	u, err := m.CreateUnit(game.UnitSpec{Side: side, Role: role, X: x, Y: y})
	switch {
	case err == nil:
		return fmt.Sprintf("%s created at (%d,%d)", u.Name, x, y), nil
	case errors.Is(err, game.ErrCellOccupied):
		return fmt.Sprintf("(%d,%d) is occupied", x, y), err
	case errors.Is(err, game.ErrOutOfBounds):
		return fmt.Sprintf("(%d,%d) is off the field", x, y), err
	default:
		return err.Error(), err
	}
}

func (g *Game) deploy(side game.Side) {
	err := g.loop.Match().DeployTeam(side)
	switch {
	case err == nil:
		g.setStatus(fmt.Sprintf("%s team deployed", side))
	case errors.Is(err, game.ErrTeamDeployed):
		g.setStatus(fmt.Sprintf("%s team is already on the field", side))
	default:
		g.log.Warn().Err(err).Str("side", side.String()).Msg("deploy failed")
		g.setStatus(err.Error())
	}
}

// kickAtGoal sends the ball from the carrier toward the centre of its
// attacking goal.
func (g *Game) kickAtGoal() {
	m := g.loop.Match()
	c := m.Ball().Carrier()
	if c == nil {
		g.setStatus("no carrier to kick")
		return
	}
	tx := m.Grid().Cols() - 1
	if c.Side == game.SideAway {
		tx = 0
	}
	m.KickTo(tx, m.Grid().Rows()/2)
}

// ScoreReport is the text placed on the clipboard: the scoreline and the
// recent event log.
func ScoreReport(s game.Snapshot, entries []EventEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Q%d %s  %s\n", s.Quarter, s.Clock(), s.Scoreline())
	if line := s.QuarterLine(); line != "" {
		sb.WriteString(line + "\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "%4d %s\n", e.Tick, e.Message)
	}
	return sb.String()
}

func (g *Game) copyScore() {
	if err := clipboard.WriteAll(ScoreReport(g.snap, g.events.Recent())); err != nil {
		g.log.Warn().Err(err).Msg("clipboard write failed")
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("score copied to clipboard")
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	m := g.loop.Match()
	if g.field == nil {
		g.field = fieldLayer(m.Grid(), g.cell)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, hudHeight)
	screen.DrawImage(g.field, op)

	drawUnits(screen, g.snap, g.cell, hudHeight)
	drawBall(screen, g.snap, g.cell, hudHeight)

	status := ""
	if time.Now().Before(g.statusUntil) {
		status = g.status
	}
	w, h := g.WindowSize()
	drawHUD(screen, g.snap, w-logPanelWidth, g.loop.Running(), g.loop.Period(), status)
	g.events.Draw(screen, w-logPanelWidth, h)
}
