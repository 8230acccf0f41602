package game

import "math"

// Zone is the coarse field-region classification of a cell.
type Zone int

const (
	ZoneDefensive Zone = iota
	ZoneMidfield
	ZoneForward
	ZoneForwardPocket
)

func (z Zone) String() string {
	switch z {
	case ZoneDefensive:
		return "defensive"
	case ZoneMidfield:
		return "midfield"
	case ZoneForward:
		return "forward"
	case ZoneForwardPocket:
		return "forwardPocket"
	default:
		return "unknown"
	}
}

// TerrainKind tags the optional terrain modifier of a cell.
type TerrainKind int

const (
	TerrainNone     TerrainKind = iota
	TerrainAccuracy             // kicking accuracy bonus
)

// Terrain is a tagged modifier; Bonus is meaningful only for TerrainAccuracy.
type Terrain struct {
	Kind  TerrainKind
	Bonus int
}

// Cell is one square of the field.
type Cell struct {
	X, Y       int
	Zone       Zone
	Boundary   bool
	GoalSquare bool
	Scorable   bool
	FiftyArc   bool
	Terrain    Terrain

	occupant *Unit // weak reference; the grid does not own units
}

// Occupant returns the unit standing on the cell, or nil.
func (c *Cell) Occupant() *Unit {
	return c.occupant
}

// Grid is the fixed-size field. All occupancy changes go through Place and
// MoveOccupant so that a unit and its cell always agree.
type Grid struct {
	cols, rows int
	cells      []Cell
}

// NewGrid builds the field layout described by cfg.
func NewGrid(cfg Config) *Grid {
	g := &Grid{
		cols:  cfg.Cols,
		rows:  cfg.Rows,
		cells: make([]Cell, cfg.Cols*cfg.Rows),
	}
	pockets := make(map[int]bool, len(cfg.PocketRows))
	for _, r := range cfg.PocketRows {
		pockets[r] = true
	}
	midY := float64(cfg.Rows / 2)
	leftArcX := float64(cfg.ArcInset)
	rightArcX := float64(cfg.Cols - 1 - cfg.ArcInset)

	for y := 0; y < cfg.Rows; y++ {
		for x := 0; x < cfg.Cols; x++ {
			c := &g.cells[y*cfg.Cols+x]
			c.X, c.Y = x, y
			c.Zone = zoneFor(x, cfg)

			inGoalRows := y >= cfg.GoalRowMin && y <= cfg.GoalRowMax
			if inGoalRows && (x < cfg.GoalSquareDepth || x >= cfg.Cols-cfg.GoalSquareDepth) {
				c.GoalSquare = true
				c.Scorable = true
			}
			if x == 0 || y == 0 || x == cfg.Cols-1 || y == cfg.Rows-1 {
				c.Boundary = true
			}
			// Pockets sit one cell in from each end line.
			if pockets[y] && (x == cfg.Cols-2 || x == 1) {
				c.Zone = ZoneForwardPocket
				c.Scorable = true
				c.Terrain = Terrain{Kind: TerrainAccuracy, Bonus: cfg.PocketBonus}
			}

			dl := math.Hypot(float64(x)-leftArcX, float64(y)-midY)
			dr := math.Hypot(float64(x)-rightArcX, float64(y)-midY)
			if (dl >= cfg.ArcRadiusMin && dl <= cfg.ArcRadiusMax) ||
				(dr >= cfg.ArcRadiusMin && dr <= cfg.ArcRadiusMax) {
				c.FiftyArc = true
			}
		}
	}
	return g
}

func zoneFor(x int, cfg Config) Zone {
	fx := float64(x)
	switch {
	case fx < float64(cfg.Cols)*cfg.DefensiveThird:
		return ZoneDefensive
	case fx < float64(cfg.Cols)*cfg.ForwardThird:
		return ZoneMidfield
	default:
		return ZoneForward
	}
}

// Cols returns the field width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the field height in cells.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (x,y) is on the field.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// Index returns the linear index of (x,y).
func (g *Grid) Index(x, y int) int {
	return y*g.cols + x
}

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (int, int) {
	return i % g.cols, i / g.cols
}

// Cell returns the cell at (x,y), or nil when out of bounds.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[g.Index(x, y)]
}

// Cells returns the backing slice in scan order (row-major).
func (g *Grid) Cells() []Cell {
	return g.cells
}

// OccupantAt returns the unit at (x,y), or nil.
func (g *Grid) OccupantAt(x, y int) *Unit {
	c := g.Cell(x, y)
	if c == nil {
		return nil
	}
	return c.occupant
}

// IsOccupiable reports whether (x,y) is in bounds and empty.
func (g *Grid) IsOccupiable(x, y int) bool {
	c := g.Cell(x, y)
	return c != nil && c.occupant == nil
}

// Place registers a new unit at (x,y). It fails if the cell is taken.
func (g *Grid) Place(u *Unit, x, y int) bool {
	if !g.IsOccupiable(x, y) {
		return false
	}
	g.cells[g.Index(x, y)].occupant = u
	u.x, u.y = x, y
	return true
}

// MoveOccupant relocates the occupant of from onto to. The old cell is
// cleared, the new cell set and the unit's coordinates updated together, or
// nothing changes and false is returned. An empty from cell is a caller bug.
func (g *Grid) MoveOccupant(from, to Point) bool {
	src := g.Cell(from.X, from.Y)
	if src == nil || src.occupant == nil {
		panic("grid: MoveOccupant from a cell with no occupant")
	}
	if !g.IsOccupiable(to.X, to.Y) {
		return false
	}
	u := src.occupant
	src.occupant = nil
	g.cells[g.Index(to.X, to.Y)].occupant = u
	u.x, u.y = to.X, to.Y
	return true
}

// NearestFree returns the closest empty in-bounds cell to (x,y), searching
// square rings outward in scan order. ok is false only on a full grid.
func (g *Grid) NearestFree(x, y int) (Point, bool) {
	maxR := g.cols
	if g.rows > maxR {
		maxR = g.rows
	}
	for r := 0; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				if g.IsOccupiable(x+dx, y+dy) {
					return Point{x + dx, y + dy}, true
				}
			}
		}
	}
	return Point{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
