package game

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless match harness used by tests and the headless report.
// It mirrors the viewer's host loop (Match.Tick then Schedule.Pump) with
// deterministic seeding and no Ebiten dependency.
type TestSim struct {
	Match    *Match
	Log      *MatchLog
	Reporter *MatchReporter
	Schedule Schedule

	cfg        Config
	rng        *rand.Rand
	autoResume bool
	observers  []Observer
	fired      []FollowUpKind

	tick int // host ticks, including ones the match ignored
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, observers; before the match exists
	simOptUnit                       // teams and ad-hoc units
	simOptBall                       // ball placement, after units exist
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimConfig replaces the default match configuration.
func WithSimConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithAutoResume starts the next quarter as soon as a quarter break begins.
func WithAutoResume() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.autoResume = true
	}}
}

// WithReporter samples the match every sampleEvery ticks into ts.Reporter.
func WithReporter(windowTicks, sampleEvery int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Reporter = NewMatchReporter(windowTicks, sampleEvery)
		ts.observers = append(ts.observers, ts.Reporter)
	}}
}

// WithSimObserver attaches an extra observer to the match.
func WithSimObserver(o Observer) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.observers = append(ts.observers, o)
	}}
}

// WithTeam deploys a side's full formation.
func WithTeam(side Side) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		if err := ts.Match.DeployTeam(side); err != nil {
			panic(fmt.Sprintf("test sim: %v", err))
		}
	}}
}

// WithUnit injects a single named unit at (x,y).
func WithUnit(name string, role Role, side Side, x, y int) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		spec := UnitSpec{Name: name, Role: role, Side: side, X: x, Y: y}
		if _, err := ts.Match.CreateUnit(spec); err != nil {
			panic(fmt.Sprintf("test sim: %v", err))
		}
	}}
}

// WithUnitState forces a named unit's starting state and stamina.
func WithUnitState(name string, state UnitState, stamina int) SimOption {
	return SimOption{simOptBall, func(ts *TestSim) {
		u := ts.mustUnit(name)
		u.state = state
		u.stamina = stamina
	}}
}

// WithBallAt rests the live ball on (x,y) instead of the centre.
func WithBallAt(x, y int) SimOption {
	return SimOption{simOptBall, func(ts *TestSim) {
		ts.Match.ball.restAt(ts.Match.grid, x, y)
	}}
}

// WithCarrier hands the ball to a named unit and puts it in carry.
func WithCarrier(name string) SimOption {
	return SimOption{simOptBall, func(ts *TestSim) {
		u := ts.mustUnit(name)
		ts.Match.ball.restAt(ts.Match.grid, u.x, u.y)
		ts.Match.ball.PickUp(u)
		u.state = StateCarry
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (config, seed, observers)
//  2. Build the Match
//  3. Units
//  4. Ball and unit overrides
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg: DefaultConfig(),
		Log: NewMatchLog(),
		rng: rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	mopts := []MatchOption{WithRand(ts.rng), WithMatchLog(ts.Log)}
	for _, o := range ts.observers {
		mopts = append(mopts, WithObserver(o))
	}
	m, err := NewMatch(ts.cfg, mopts...)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Match = m
	for _, kind := range []simOptionKind{simOptUnit, simOptBall} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	return ts
}

func (ts *TestSim) mustUnit(name string) *Unit {
	u := ts.Match.Unit(name)
	if u == nil {
		panic(fmt.Sprintf("test sim: no unit %q", name))
	}
	return u
}

// Unit returns a named unit, or nil.
func (ts *TestSim) Unit(name string) *Unit {
	return ts.Match.Unit(name)
}

// RunTicks advances the host loop n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the host loop up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// runOneTick mirrors the viewer's host loop for the headless harness.
func (ts *TestSim) runOneTick() {
	ts.tick++
	ts.Match.Tick()
	ts.fired = append(ts.fired, ts.Schedule.Pump(ts.Match)...)
	if ts.autoResume && ts.Match.Phase() == PhaseQuarterBreak {
		ts.Match.Resume()
	}
}

// Fired returns every follow-up kind that has fired so far, in order.
func (ts *TestSim) Fired() []FollowUpKind {
	return ts.fired
}

// CurrentTick returns the number of host ticks run.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// Snapshot returns the match's current snapshot.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Match.Snapshot()
}
