package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// MaxStamina is the upper stamina bound; units are created at full stamina.
const MaxStamina = 100

// Side distinguishes the two teams.
type Side int

const (
	SideHome Side = iota // attacks +x
	SideAway             // attacks -x
	sideCount
)

func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	default:
		return "unknown"
	}
}

// Valid reports whether s is home or away.
func (s Side) Valid() bool { return s >= SideHome && s < sideCount }

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// AttackDir is the x step toward the side's attacking end.
func (s Side) AttackDir() int {
	if s == SideAway {
		return -1
	}
	return 1
}

// Role is a unit's positional role.
type Role int

const (
	RoleDefender Role = iota
	RoleMidfielder
	RoleForward
)

func (r Role) String() string {
	switch r {
	case RoleDefender:
		return "defender"
	case RoleMidfielder:
		return "midfielder"
	case RoleForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the three field roles.
func (r Role) Valid() bool { return r >= RoleDefender && r <= RoleForward }

// Code is the one-letter role tag used in unit names.
func (r Role) Code() string {
	switch r {
	case RoleDefender:
		return "d"
	case RoleMidfielder:
		return "m"
	case RoleForward:
		return "f"
	default:
		return "x"
	}
}

// UnitState is the behavioural state of a unit.
type UnitState int

const (
	StateChase UnitState = iota
	StateCarry
	StateRecover
	StateIdle
	StateShadow
	StateAnticipate
	StateSupport
	StateFatigue
)

func (s UnitState) String() string {
	switch s {
	case StateChase:
		return "chase"
	case StateCarry:
		return "carry"
	case StateRecover:
		return "recover"
	case StateIdle:
		return "idle"
	case StateShadow:
		return "shadow"
	case StateAnticipate:
		return "anticipate"
	case StateSupport:
		return "support"
	case StateFatigue:
		return "fatigue"
	default:
		return "unknown"
	}
}

// FatigueBand is a display label for a stamina level.
type FatigueBand int

const (
	BandFresh FatigueBand = iota
	BandMinor
	BandTired
	BandExhausted
)

func (b FatigueBand) String() string {
	switch b {
	case BandFresh:
		return "fresh"
	case BandMinor:
		return "minor"
	case BandTired:
		return "tired"
	default:
		return "exhausted"
	}
}

// Band classifies stamina against the thresholds.
func (f FatigueThresholds) Band(stamina int) FatigueBand {
	switch {
	case stamina <= f.Exhausted:
		return BandExhausted
	case stamina <= f.Tired:
		return BandTired
	case stamina <= f.Minor:
		return BandMinor
	default:
		return BandFresh
	}
}

// ScoreKind is the kind of score a carrier reports.
type ScoreKind int

const (
	ScoreGoal ScoreKind = iota
	ScoreBehind
)

func (k ScoreKind) String() string {
	if k == ScoreGoal {
		return "goal"
	}
	return "behind"
}

// Points is the value of the score kind.
func (k ScoreKind) Points() int {
	if k == ScoreGoal {
		return 6
	}
	return 1
}

// ScoreEvent is raised by a carrying unit that reaches a scorable cell.
type ScoreEvent struct {
	Tick int
	Kind ScoreKind
	Side Side
	Unit string
}

// TickContext is the world a unit sees while it advances.
type TickContext struct {
	Tick  int
	Grid  *Grid
	Ball  *Ball
	Phase Phase
	Cfg   *Config
	Rand  *rand.Rand
	Log   zerolog.Logger
}

// Unit is one player-agent on the field.
type Unit struct {
	Name string
	Role Role
	Side Side

	x, y         int
	state        UnitState
	stamina      int
	homeX, homeY int
}

func newUnit(name string, role Role, side Side) *Unit {
	return &Unit{
		Name:    name,
		Role:    role,
		Side:    side,
		state:   StateChase,
		stamina: MaxStamina,
	}
}

// X returns the unit's column.
func (u *Unit) X() int { return u.x }

// Y returns the unit's row.
func (u *Unit) Y() int { return u.y }

// Pos returns the unit's cell.
func (u *Unit) Pos() Point { return Point{u.x, u.y} }

// Index returns the unit's linear cell index on a grid of the given width.
func (u *Unit) Index(cols int) int { return u.y*cols + u.x }

// Home returns the reset anchor.
func (u *Unit) Home() Point { return Point{u.homeX, u.homeY} }

// State returns the current behavioural state.
func (u *Unit) State() UnitState { return u.state }

// Stamina returns the current stamina in [0, MaxStamina].
func (u *Unit) Stamina() int { return u.stamina }

// AtHome reports whether the unit is on its home cell.
func (u *Unit) AtHome() bool { return u.x == u.homeX && u.y == u.homeY }

// step tries to move by (dx,dy) through the grid.
func (u *Unit) step(g *Grid, dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	return g.MoveOccupant(u.Pos(), Point{u.x + dx, u.y + dy})
}

// stepToward takes one sign-vector step toward (tx,ty).
func (u *Unit) stepToward(g *Grid, tx, ty int) bool {
	return u.step(g, sign(tx-u.x), sign(ty-u.y))
}

// Advance runs one tick of the unit's state machine. It returns a score
// event when the unit, carrying the ball, reaches a scorable cell.
func (u *Unit) Advance(ctx *TickContext) (ScoreEvent, bool) {
	cfg := ctx.Cfg

	// 1. Stamina.
	u.stamina = clampStamina(u.stamina + cfg.StaminaDelta[u.state])

	// 2. Fatigue override.
	if u.stamina <= cfg.Fatigue.Exhausted {
		u.state = StateFatigue
	} else if u.state == StateFatigue && u.stamina > cfg.Fatigue.Tired {
		u.state = StateRecover
	}

	// 3. Phase override.
	switch ctx.Phase {
	case PhaseResetPlay:
		if u.AtHome() {
			u.state = StateIdle
		} else {
			u.stepToward(ctx.Grid, u.homeX, u.homeY)
		}
		return ScoreEvent{}, false
	case PhaseKickoutPlay:
		if opp := nearestOpponent(u, ctx.Grid); opp != nil {
			u.stepToward(ctx.Grid, opp.x, opp.y)
		}
		return ScoreEvent{}, false
	case PhasePlay:
	default:
		return ScoreEvent{}, false
	}

	// 4. Normal behaviour.
	var ev ScoreEvent
	scored := false
	switch u.state {
	case StateChase:
		u.chase(ctx)
	case StateCarry:
		ev, scored = u.carry(ctx)
	case StateRecover:
		if u.stamina >= cfg.Fatigue.Recovered {
			u.state = StateIdle
		}
	case StateIdle, StateShadow, StateAnticipate, StateSupport, StateFatigue:
	default:
		ctx.Log.Warn().Str("unit", u.Name).Int("state", int(u.state)).Msg("unhandled unit state, holding")
	}

	// 5. Re-engagement.
	b := ctx.Ball
	if b.Status() == BallLive && b.Carrier() == nil &&
		(u.state == StateIdle || u.state == StateRecover) &&
		u.stamina > cfg.Fatigue.Reengage &&
		ctx.Rand.Float64() < cfg.Fatigue.ReengageChance {
		u.state = StateChase
	}
	return ev, scored
}

func (u *Unit) chase(ctx *TickContext) {
	b := ctx.Ball
	if u.stamina < ctx.Cfg.Fatigue.Tired || b.Status() != BallLive {
		return
	}
	if b.Carrier() == u {
		u.state = StateCarry
		return
	}
	target := b.Position()
	dx := sign(target.X - u.x)
	dy := sign(target.Y - u.y)
	if !u.step(ctx.Grid, dx, dy) {
		for _, alt := range [][2]int{{dx, 0}, {0, dy}, {dx, -dy}, {-dx, dy}} {
			if u.step(ctx.Grid, alt[0], alt[1]) {
				break
			}
		}
	}
	if b.Carrier() == nil && b.Mode() == BallResting && b.Position() == u.Pos() {
		b.PickUp(u)
		if b.Carrier() == u {
			u.state = StateCarry
		}
	}
}

func (u *Unit) carry(ctx *TickContext) (ScoreEvent, bool) {
	b := ctx.Ball
	g := ctx.Grid
	if b.Status() != BallLive {
		return ScoreEvent{}, false
	}
	if b.Carrier() != u {
		u.state = StateChase
		return ScoreEvent{}, false
	}
	cell := g.Cell(u.x, u.y)
	if cell.Scorable && u.inScoringRange(g.Cols(), ctx.Cfg.ScoringRange) {
		kind := ScoreBehind
		if cell.Zone == ZoneForwardPocket {
			kind = ScoreGoal
		}
		u.state = StateIdle
		return ScoreEvent{Tick: ctx.Tick, Kind: kind, Side: u.Side, Unit: u.Name}, true
	}

	dir := u.Side.AttackDir()
	if u.step(g, dir, 0) {
		return ScoreEvent{}, false
	}
	dy := -1
	if ctx.Rand.Float64() > 0.5 {
		dy = 1
	}
	if u.step(g, dir, dy) {
		return ScoreEvent{}, false
	}
	if u.onAttackingEndLine(g.Cols()) {
		u.stepToward(g, u.x, g.Rows()/2)
	}
	return ScoreEvent{}, false
}

// inScoringRange reports whether the unit is within rng cells of its
// attacking end.
func (u *Unit) inScoringRange(cols, rng int) bool {
	if u.Side == SideAway {
		return u.x <= rng-1
	}
	return u.x >= cols-rng
}

func (u *Unit) onAttackingEndLine(cols int) bool {
	if u.Side == SideAway {
		return u.x == 0
	}
	return u.x == cols-1
}

// nearestOpponent returns the Manhattan-nearest unit of the other side,
// ties broken by grid scan order.
func nearestOpponent(u *Unit, g *Grid) *Unit {
	var best *Unit
	bestD := 0
	cells := g.Cells()
	for i := range cells {
		o := cells[i].occupant
		if o == nil || o.Side == u.Side {
			continue
		}
		d := abs(o.x-u.x) + abs(o.y-u.y)
		if best == nil || d < bestD {
			best = o
			bestD = d
		}
	}
	return best
}

func clampStamina(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxStamina {
		return MaxStamina
	}
	return v
}
