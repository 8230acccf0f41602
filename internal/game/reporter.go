package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports.
const reportWindowTicks = 120

// MatchSample is the per-side summary of one collected snapshot.
type MatchSample struct {
	Tick       int
	Phase      Phase
	Possession Side // valid only when HasCarrier
	HasCarrier bool
	States     [sideCount]map[UnitState]int
	AvgStamina [sideCount]float64
	Fatigued   [sideCount]int
}

// MatchReporter is an Observer that samples snapshots and tallies scores so
// a report can be printed after a run.
type MatchReporter struct {
	history     []MatchSample
	windowTicks int
	sampleEvery int
	scores      []ScoreEvent
	possession  [sideCount]int
	loose       int
}

// NewMatchReporter samples every sampleEvery ticks and summarises the last
// windowTicks ticks.
func NewMatchReporter(windowTicks, sampleEvery int) *MatchReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	if sampleEvery <= 0 {
		sampleEvery = 1
	}
	return &MatchReporter{windowTicks: windowTicks, sampleEvery: sampleEvery}
}

// TickCompleted implements Observer.
func (r *MatchReporter) TickCompleted(s Snapshot) {
	if s.Ball.Carrier != "" {
		if u, ok := s.Unit(s.Ball.Carrier); ok {
			r.possession[u.Side]++
		}
	} else if s.Phase == PhasePlay {
		r.loose++
	}
	if s.Tick%r.sampleEvery != 0 {
		return
	}
	sample := MatchSample{Tick: s.Tick, Phase: s.Phase}
	for side := range sample.States {
		sample.States[side] = map[UnitState]int{}
	}
	var count [sideCount]int
	for _, u := range s.Units {
		sample.States[u.Side][u.State]++
		sample.AvgStamina[u.Side] += float64(u.Stamina)
		count[u.Side]++
		if u.State == StateFatigue {
			sample.Fatigued[u.Side]++
		}
		if u.Name == s.Ball.Carrier {
			sample.Possession = u.Side
			sample.HasCarrier = true
		}
	}
	for side := range count {
		if count[side] > 0 {
			sample.AvgStamina[side] /= float64(count[side])
		}
	}
	r.history = append(r.history, sample)
}

// Scored implements Observer.
func (r *MatchReporter) Scored(e ScoreEvent) {
	r.scores = append(r.scores, e)
}

// Scores returns every applied score event in order.
func (r *MatchReporter) Scores() []ScoreEvent {
	return r.scores
}

// PossessionTicks returns how many ticks each side carried the ball, and
// how many play ticks the ball was loose.
func (r *MatchReporter) PossessionTicks() (home, away, loose int) {
	return r.possession[SideHome], r.possession[SideAway], r.loose
}

// Latest returns the most recent sample, or nil.
func (r *MatchReporter) Latest() *MatchSample {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowReport aggregates samples over a tick window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	StatePct      [sideCount]map[UnitState]float64
	AvgStamina    [sideCount]float64
	AvgFatigued   [sideCount]float64
	PossessionPct [sideCount]float64
}

// WindowSummary averages the samples within the window ending at the latest
// sample.
func (r *MatchReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latest := r.history[len(r.history)-1].Tick
	cutoff := latest - r.windowTicks
	var window []MatchSample
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
	}
	var stateTotals [sideCount]map[UnitState]float64
	var unitTotals [sideCount]float64
	for side := range stateTotals {
		stateTotals[side] = map[UnitState]float64{}
		wr.StatePct[side] = map[UnitState]float64{}
	}
	for _, s := range window {
		for side := range s.States {
			for st, c := range s.States[side] {
				stateTotals[side][st] += float64(c)
				unitTotals[side] += float64(c)
			}
			wr.AvgStamina[side] += s.AvgStamina[side]
			wr.AvgFatigued[side] += float64(s.Fatigued[side])
		}
		if s.HasCarrier {
			wr.PossessionPct[s.Possession]++
		}
	}
	for side := range stateTotals {
		if unitTotals[side] > 0 {
			for st, c := range stateTotals[side] {
				wr.StatePct[side][st] = c / unitTotals[side] * 100
			}
		}
		wr.AvgStamina[side] /= n
		wr.AvgFatigued[side] /= n
		wr.PossessionPct[side] = wr.PossessionPct[side] / n * 100
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	states := []UnitState{StateChase, StateCarry, StateRecover, StateIdle, StateShadow, StateAnticipate, StateSupport, StateFatigue}
	for _, side := range []Side{SideHome, SideAway} {
		fmt.Fprintf(&sb, "--- %s --- stamina=%.1f fatigued=%.1f possession=%.1f%%\n",
			strings.ToUpper(side.String()), wr.AvgStamina[side], wr.AvgFatigued[side], wr.PossessionPct[side])
		for _, st := range states {
			if pct := wr.StatePct[side][st]; pct > 0.5 {
				fmt.Fprintf(&sb, "  %-11s %5.1f%%\n", st, pct)
			}
		}
	}
	return sb.String()
}
