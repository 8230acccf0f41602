package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Formation maps each role to its home-side deployment spots, in order.
type Formation map[Role][]Point

// FatigueThresholds are the stamina levels that drive state overrides.
type FatigueThresholds struct {
	Minor          int     // cosmetic band only
	Tired          int     // chase stops moving below this; fatigue → recover above it
	Exhausted      int     // at or below: forced fatigue
	Recovered      int     // recover → idle at or above
	Reengage       int     // idle/recover units above this may re-engage
	ReengageChance float64 // per-tick probability of re-engaging
}

// Config fixes every tunable of a match. It is read once by NewMatch.
type Config struct {
	Cols     int
	Rows     int
	CellSize int // rendering only

	// Zone boundaries as fractions of Cols.
	DefensiveThird float64
	ForwardThird   float64

	GoalSquareDepth int
	GoalRowMin      int
	GoalRowMax      int
	PocketRows      []int
	PocketBonus     int

	ArcInset     int
	ArcRadiusMin float64
	ArcRadiusMax float64

	Formation      Formation
	AwayRowOffset  int
	KickoutInset   int
	ScoringRange   int
	KickFlightTick int

	Fatigue      FatigueThresholds
	StaminaDelta map[UnitState]int

	QuarterSeconds  int
	Quarters        int
	FollowUpTicks   int
	TickPeriodMs    int
	SpeedStepMs     int
	MinTickPeriodMs int
}

// DefaultFormation is the 17-a-side home layout on a 40x30 field.
func DefaultFormation() Formation {
	return Formation{
		RoleDefender: {
			{1, 8}, {1, 15}, {1, 22},
			{5, 8}, {5, 15}, {5, 22},
		},
		RoleMidfielder: {
			{15, 8}, {15, 22},
			{18, 13}, {19, 15}, {20, 17},
		},
		RoleForward: {
			{34, 8}, {34, 15}, {34, 22},
			{38, 8}, {38, 15}, {38, 22},
		},
	}
}

// DefaultStaminaDelta returns the per-tick stamina change for each state.
func DefaultStaminaDelta() map[UnitState]int {
	return map[UnitState]int{
		StateChase:      -5,
		StateCarry:      -3,
		StateSupport:    -2,
		StateShadow:     -1,
		StateAnticipate: -3,
		StateIdle:       2,
		StateRecover:    3,
		StateFatigue:    2,
	}
}

// DefaultConfig returns the standard 40x30 match setup.
func DefaultConfig() Config {
	return Config{
		Cols:     40,
		Rows:     30,
		CellSize: 20,

		DefensiveThird: 1.0 / 3.0,
		ForwardThird:   2.0 / 3.0,

		GoalSquareDepth: 3,
		GoalRowMin:      12,
		GoalRowMax:      17,
		PocketRows:      []int{12, 13, 14, 16, 17, 18},
		PocketBonus:     1,

		ArcInset:     5,
		ArcRadiusMin: 7,
		ArcRadiusMax: 8,

		Formation:      DefaultFormation(),
		AwayRowOffset:  1,
		KickoutInset:   1,
		ScoringRange:   2,
		KickFlightTick: 5,

		Fatigue: FatigueThresholds{
			Minor:          70,
			Tired:          40,
			Exhausted:      10,
			Recovered:      90,
			Reengage:       50,
			ReengageChance: 0.2,
		},
		StaminaDelta: DefaultStaminaDelta(),

		QuarterSeconds:  20 * 60,
		Quarters:        4,
		FollowUpTicks:   2,
		TickPeriodMs:    500,
		SpeedStepMs:     50,
		MinTickPeriodMs: 50,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate rejects configurations that would let the first tick run on a
// malformed field or formation.
func (c Config) Validate() error {
	if c.Cols < 6 || c.Rows < 3 {
		return invalid("grid %dx%d too small", c.Cols, c.Rows)
	}
	if c.DefensiveThird <= 0 || c.ForwardThird <= c.DefensiveThird || c.ForwardThird >= 1 {
		return invalid("zone thirds %.2f/%.2f out of order", c.DefensiveThird, c.ForwardThird)
	}
	if c.GoalSquareDepth < 1 || c.GoalSquareDepth*2 > c.Cols {
		return invalid("goal square depth %d", c.GoalSquareDepth)
	}
	if c.GoalRowMin < 0 || c.GoalRowMax >= c.Rows || c.GoalRowMin > c.GoalRowMax {
		return invalid("goal rows %d..%d", c.GoalRowMin, c.GoalRowMax)
	}
	for _, r := range c.PocketRows {
		if r < 0 || r >= c.Rows {
			return invalid("pocket row %d out of bounds", r)
		}
	}
	if c.ArcRadiusMin > c.ArcRadiusMax {
		return invalid("arc radius %.1f > %.1f", c.ArcRadiusMin, c.ArcRadiusMax)
	}
	if c.ScoringRange < 1 || c.KickFlightTick < 1 {
		return invalid("scoring range %d / kick ticks %d", c.ScoringRange, c.KickFlightTick)
	}
	f := c.Fatigue
	if !(f.Exhausted < f.Tired && f.Tired < f.Recovered && f.Recovered <= MaxStamina) || f.Exhausted < 0 {
		return invalid("fatigue thresholds exhausted=%d tired=%d recovered=%d", f.Exhausted, f.Tired, f.Recovered)
	}
	if f.ReengageChance < 0 || f.ReengageChance > 1 {
		return invalid("re-engage chance %.2f", f.ReengageChance)
	}
	if c.QuarterSeconds < 1 || c.Quarters < 1 {
		return invalid("quarter %ds x %d", c.QuarterSeconds, c.Quarters)
	}
	if c.FollowUpTicks < 0 {
		return invalid("follow-up ticks %d", c.FollowUpTicks)
	}
	if c.MinTickPeriodMs < 1 || c.TickPeriodMs < c.MinTickPeriodMs {
		return invalid("tick period %dms (min %dms)", c.TickPeriodMs, c.MinTickPeriodMs)
	}
	return c.Formation.validate(c)
}
