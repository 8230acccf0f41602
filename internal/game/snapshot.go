package game

import (
	"fmt"
	"strings"
)

// SideScore is one side's tally.
type SideScore struct {
	Goals   int
	Behinds int
}

// Points returns goals*6 + behinds.
func (s SideScore) Points() int {
	return s.Goals*ScoreGoal.Points() + s.Behinds*ScoreBehind.Points()
}

// String formats the score the way a scoreboard does, e.g. "3.4 (22)".
func (s SideScore) String() string {
	return fmt.Sprintf("%d.%d (%d)", s.Goals, s.Behinds, s.Points())
}

// UnitView is a copy of one unit's renderable state.
type UnitView struct {
	Name    string
	Role    Role
	Side    Side
	X, Y    int
	State   UnitState
	Stamina int
	Band    FatigueBand
}

// BallView is a copy of the ball's renderable state.
type BallView struct {
	Mode    BallMode
	Status  BallStatus
	Cell    Point  // display cell for any mode
	Carrier string // empty unless carried
	FlightX float64
	FlightY float64
}

// Snapshot is an immutable view of the match after a tick. It shares no
// memory with the live simulation.
type Snapshot struct {
	Tick      int
	Phase     Phase
	Quarter   int
	TimeLeft  int // seconds left in the quarter
	Score     [sideCount]SideScore
	Units     []UnitView
	Ball      BallView
	LastScore *ScoreEvent

	// QuarterScores holds the running score at the end of each completed
	// quarter.
	QuarterScores [][sideCount]SideScore
}

// Clock formats TimeLeft as MM:SS.
func (s Snapshot) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.TimeLeft/60, s.TimeLeft%60)
}

// ScoreOf returns the tally for a side.
func (s Snapshot) ScoreOf(side Side) SideScore {
	return s.Score[side]
}

// Scoreline formats both sides, e.g. "home 3.4 (22) - away 1.2 (8)".
func (s Snapshot) Scoreline() string {
	return fmt.Sprintf("%s %s - %s %s", SideHome, s.Score[SideHome], SideAway, s.Score[SideAway])
}

// QuarterLine formats the score at each quarter's end, e.g.
// "Q1 2.1-0.3  Q2 4.2-1.5". The final quarter of a finished match is
// labelled FT. It is empty before the first quarter ends.
func (s Snapshot) QuarterLine() string {
	parts := make([]string, len(s.QuarterScores))
	for i, q := range s.QuarterScores {
		label := fmt.Sprintf("Q%d", i+1)
		if s.Phase == PhaseFullTime && i == len(s.QuarterScores)-1 {
			label = "FT"
		}
		parts[i] = fmt.Sprintf("%s %d.%d-%d.%d", label,
			q[SideHome].Goals, q[SideHome].Behinds, q[SideAway].Goals, q[SideAway].Behinds)
	}
	return strings.Join(parts, "  ")
}

// Unit returns the view for a named unit.
func (s Snapshot) Unit(name string) (UnitView, bool) {
	for _, u := range s.Units {
		if u.Name == name {
			return u, true
		}
	}
	return UnitView{}, false
}
