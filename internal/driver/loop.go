// Package driver runs a match against wall-clock time: it owns the tick
// period, the follow-up schedule and the running/stopped switch.
package driver

import (
	"context"
	"time"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/rs/zerolog"
)

// Loop drives one match. Its methods are not safe for concurrent use; a
// caller running Run on one goroutine talks to it through Submit.
type Loop struct {
	match    *game.Match
	schedule game.Schedule
	fired    []game.FollowUpKind
	log      zerolog.Logger

	period     time.Duration
	minPeriod  time.Duration
	stepPeriod time.Duration
	accum      time.Duration

	running    bool
	autoResume bool

	cmds    chan func(*Loop)
	changed chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the loop's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(lp *Loop) { lp.log = l }
}

// WithAutoResume starts the next quarter as soon as a break begins.
func WithAutoResume(v bool) Option {
	return func(lp *Loop) { lp.autoResume = v }
}

// New wraps m using the tick period settings from its config. The loop
// starts stopped.
func New(m *game.Match, opts ...Option) *Loop {
	cfg := m.Config()
	lp := &Loop{
		match:      m,
		log:        zerolog.Nop(),
		period:     time.Duration(cfg.TickPeriodMs) * time.Millisecond,
		minPeriod:  time.Duration(cfg.MinTickPeriodMs) * time.Millisecond,
		stepPeriod: time.Duration(cfg.SpeedStepMs) * time.Millisecond,
		cmds:       make(chan func(*Loop), 16),
		changed:    make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(lp)
	}
	return lp
}

// Match returns the driven match.
func (lp *Loop) Match() *game.Match { return lp.match }

// Running reports whether Step advances the match.
func (lp *Loop) Running() bool { return lp.running }

// Period returns the current tick period.
func (lp *Loop) Period() time.Duration { return lp.period }

// Pending returns the number of scheduled follow-ups.
func (lp *Loop) Pending() int { return lp.schedule.Len() }

// Fired returns every follow-up kind fired so far, in order.
func (lp *Loop) Fired() []game.FollowUpKind { return lp.fired }

// Start lets Step advance the match. It also resumes a paused match.
func (lp *Loop) Start() {
	if lp.match.Phase() == game.PhasePaused {
		lp.match.Resume()
	}
	if !lp.running {
		lp.running = true
		lp.log.Info().Dur("period", lp.period).Msg("loop started")
	}
}

// Stop halts ticking and pauses the match so pending follow-ups hold.
func (lp *Loop) Stop() {
	if !lp.running {
		return
	}
	lp.running = false
	lp.accum = 0
	lp.match.Pause()
	lp.log.Info().Msg("loop stopped")
}

// Toggle flips between Start and Stop.
func (lp *Loop) Toggle() {
	if lp.running {
		lp.Stop()
		return
	}
	lp.Start()
}

// SetPeriod changes the tick period, never below the configured minimum.
// Pending follow-ups are counted in ticks, so they keep their place.
func (lp *Loop) SetPeriod(d time.Duration) {
	if d < lp.minPeriod {
		d = lp.minPeriod
	}
	if d == lp.period {
		return
	}
	lp.period = d
	lp.log.Debug().Dur("period", d).Msg("tick period changed")
	select {
	case lp.changed <- struct{}{}:
	default:
	}
}

// SetSpeed sets the tick period in milliseconds.
func (lp *Loop) SetSpeed(ms int) { lp.SetPeriod(time.Duration(ms) * time.Millisecond) }

// SpeedUp shortens the tick period by one step.
func (lp *Loop) SpeedUp() { lp.SetPeriod(lp.period - lp.stepPeriod) }

// SpeedDown lengthens the tick period by one step.
func (lp *Loop) SpeedDown() { lp.SetPeriod(lp.period + lp.stepPeriod) }

// Step runs one host tick: the match ticks, due follow-ups fire and new ones
// are queued. It does nothing while stopped.
func (lp *Loop) Step() bool {
	if !lp.running {
		return false
	}
	lp.match.Tick()
	for _, k := range lp.schedule.Pump(lp.match) {
		lp.fired = append(lp.fired, k)
		lp.log.Debug().Str("followUp", k.String()).Int("tick", lp.match.CurrentTick()).Msg("follow-up fired")
	}
	if lp.autoResume && lp.match.Phase() == game.PhaseQuarterBreak {
		lp.match.Resume()
	}
	return true
}

// Advance feeds elapsed wall time into the loop and runs every tick that
// fell due. It returns the number of ticks run.
func (lp *Loop) Advance(elapsed time.Duration) int {
	if !lp.running {
		return 0
	}
	lp.accum += elapsed
	n := 0
	for lp.accum >= lp.period {
		lp.accum -= lp.period
		if lp.Step() {
			n++
		}
	}
	return n
}

// Submit queues fn to run on the goroutine executing Run.
func (lp *Loop) Submit(fn func(*Loop)) {
	lp.cmds <- fn
}

// Run ticks the match on a timer until ctx is done or full time is reached.
func (lp *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(lp.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-lp.cmds:
			fn(lp)
		case <-lp.changed:
			ticker.Reset(lp.period)
		case <-ticker.C:
			lp.Step()
			if lp.match.Phase() == game.PhaseFullTime {
				lp.log.Info().Str("score", lp.match.Snapshot().Scoreline()).Msg("full time")
				return nil
			}
		}
	}
}
