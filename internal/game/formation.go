package game

import "fmt"

// deployOrder is the role order used for deployment and naming.
var deployOrder = []Role{RoleDefender, RoleMidfielder, RoleForward}

// deploySpot is one resolved formation slot for a side.
type deploySpot struct {
	Role  Role
	Index int // 1-based within the role
	At    Point
}

// Name returns the unit label for the slot, e.g. "d_home_1".
func (ds deploySpot) Name(side Side) string {
	return fmt.Sprintf("%s_%s_%d", ds.Role.Code(), side, ds.Index)
}

// mirrorSpot maps a home-side spot to the away side: flipped horizontally
// and shifted down by rowOffset so opposing units never share a cell.
func mirrorSpot(p Point, cols, rowOffset int) Point {
	return Point{X: cols - 1 - p.X, Y: p.Y + rowOffset}
}

// spots resolves the formation for one side in deployment order.
func (f Formation) spots(side Side, cfg Config) []deploySpot {
	var out []deploySpot
	for _, role := range deployOrder {
		for i, p := range f[role] {
			at := p
			if side == SideAway {
				at = mirrorSpot(p, cfg.Cols, cfg.AwayRowOffset)
			}
			out = append(out, deploySpot{Role: role, Index: i + 1, At: at})
		}
	}
	return out
}

// validate checks that both sides fit on the grid without overlapping.
func (f Formation) validate(cfg Config) error {
	seen := map[Point]string{}
	for _, side := range []Side{SideHome, SideAway} {
		for _, s := range f.spots(side, cfg) {
			if s.At.X < 0 || s.At.Y < 0 || s.At.X >= cfg.Cols || s.At.Y >= cfg.Rows {
				return invalid("formation spot %s at (%d,%d) out of bounds", s.Name(side), s.At.X, s.At.Y)
			}
			if prev, ok := seen[s.At]; ok {
				return invalid("formation spot %s at (%d,%d) overlaps %s", s.Name(side), s.At.X, s.At.Y, prev)
			}
			seen[s.At] = s.Name(side)
		}
	}
	return nil
}

// kickoutSpot is where a side's kickout is taken: in front of its own goal.
func kickoutSpot(side Side, cfg Config) Point {
	if side == SideAway {
		return Point{X: cfg.Cols - 1 - cfg.KickoutInset, Y: cfg.Rows / 2}
	}
	return Point{X: cfg.KickoutInset, Y: cfg.Rows / 2}
}
