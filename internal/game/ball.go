package game

import "math"

// BallMode is the possession mode; exactly one applies at any time.
type BallMode int

const (
	BallResting BallMode = iota
	BallCarried
	BallAirborne
)

func (m BallMode) String() string {
	switch m {
	case BallResting:
		return "resting"
	case BallCarried:
		return "carried"
	case BallAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// BallStatus gates which interactions are allowed.
type BallStatus int

const (
	BallLive BallStatus = iota
	BallDead
	BallInFlight
)

func (s BallStatus) String() string {
	switch s {
	case BallLive:
		return "live"
	case BallDead:
		return "dead"
	case BallInFlight:
		return "airborne"
	default:
		return "unknown"
	}
}

// Projectile is the flight state of a kicked ball.
type Projectile struct {
	X, Y      float64
	VX, VY    float64
	Duration  int
	Remaining int
}

// Ball holds possession and flight state. The zero value is not usable;
// call Reset first.
type Ball struct {
	mode    BallMode
	status  BallStatus
	index   int
	carrier *Unit
	flight  *Projectile
	cols    int
	rows    int
}

// NewBall returns a ball resting live at the centre of g.
func NewBall(g *Grid) *Ball {
	b := &Ball{}
	b.Reset(g)
	return b
}

// Reset places the ball live at the centre cell with no carrier or flight.
func (b *Ball) Reset(g *Grid) {
	b.cols, b.rows = g.Cols(), g.Rows()
	b.mode = BallResting
	b.status = BallLive
	b.index = g.Index(g.Cols()/2, g.Rows()/2)
	b.carrier = nil
	b.flight = nil
}

// Mode returns the possession mode.
func (b *Ball) Mode() BallMode { return b.mode }

// Status returns the interaction status.
func (b *Ball) Status() BallStatus { return b.status }

// Carrier returns the carrying unit, or nil.
func (b *Ball) Carrier() *Unit { return b.carrier }

// Flight returns a copy of the projectile while airborne.
func (b *Ball) Flight() (Projectile, bool) {
	if b.flight == nil {
		return Projectile{}, false
	}
	return *b.flight, true
}

// RestingIndex returns the linear cell index while resting.
func (b *Ball) RestingIndex() (int, bool) {
	if b.mode != BallResting {
		return 0, false
	}
	return b.index, true
}

// Position returns the cell the ball is displayed at: the carrier's cell,
// the resting cell, or the rounded flight position.
func (b *Ball) Position() Point {
	switch b.mode {
	case BallCarried:
		return b.carrier.Pos()
	case BallAirborne:
		return Point{int(math.Round(b.flight.X)), int(math.Round(b.flight.Y))}
	default:
		return Point{b.index % b.cols, b.index / b.cols}
	}
}

// PickUp gives the ball to u. It is a no-op unless the ball is live and
// not already carried.
func (b *Ball) PickUp(u *Unit) {
	if b.status != BallLive || b.mode == BallCarried || u == nil {
		return
	}
	b.mode = BallCarried
	b.carrier = u
	b.index = 0
	b.flight = nil
}

// Drop leaves a carried ball resting on the carrier's cell.
func (b *Ball) Drop() {
	if b.mode != BallCarried {
		return
	}
	b.index = b.carrier.Index(b.cols)
	b.carrier = nil
	b.mode = BallResting
}

// DefaultKickTicks is the flight duration used when KickTo gets ticks <= 0.
const DefaultKickTicks = 5

// KickTo launches a carried ball toward (tx,ty) over ticks updates at a
// constant velocity. It is a no-op unless the ball is carried.
func (b *Ball) KickTo(tx, ty, ticks int) {
	if b.mode != BallCarried {
		return
	}
	if ticks <= 0 {
		ticks = DefaultKickTicks
	}
	sx, sy := float64(b.carrier.x), float64(b.carrier.y)
	b.flight = &Projectile{
		X:         sx,
		Y:         sy,
		VX:        (float64(tx) - sx) / float64(ticks),
		VY:        (float64(ty) - sy) / float64(ticks),
		Duration:  ticks,
		Remaining: ticks,
	}
	b.carrier = nil
	b.mode = BallAirborne
	b.status = BallInFlight
}

// MarkDead stops all interaction until the next Reset or SetLive. A carried
// ball is dropped first so a dead ball never has a carrier.
func (b *Ball) MarkDead() {
	b.Drop()
	if b.mode == BallAirborne {
		b.land()
	}
	b.status = BallDead
}

// SetLive re-opens a dead resting ball for play.
func (b *Ball) SetLive() {
	if b.status == BallDead {
		b.status = BallLive
	}
}

// restAt drops the ball live onto (x,y). Used to stage scenarios.
func (b *Ball) restAt(g *Grid, x, y int) {
	b.Reset(g)
	b.index = g.Index(x, y)
}

// Update advances flight or resolves a loose-ball pickup.
func (b *Ball) Update(g *Grid) {
	if b.mode == BallCarried || b.status == BallDead {
		return
	}
	if b.mode == BallAirborne {
		p := b.flight
		p.X += p.VX
		p.Y += p.VY
		p.Remaining--
		if p.Remaining <= 0 {
			b.land()
			b.status = BallLive
		}
		return
	}
	x, y := g.Coords(b.index)
	if u := g.OccupantAt(x, y); u != nil {
		b.PickUp(u)
	}
}

// land converts the flight into a resting index, clamped onto the grid.
func (b *Ball) land() {
	x := clampInt(int(math.Round(b.flight.X)), 0, b.cols-1)
	y := clampInt(int(math.Round(b.flight.Y)), 0, b.rows-1)
	b.index = y*b.cols + x
	b.flight = nil
	b.mode = BallResting
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
