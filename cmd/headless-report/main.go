package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/Garsondee/Footy-Sense/internal/config"
	"github.com/Garsondee/Footy-Sense/internal/driver"
	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/Garsondee/Footy-Sense/internal/logging"
	"github.com/rs/zerolog"
)

type runStats struct {
	runIndex int
	seed     int64

	score      [2]game.SideScore
	possession [2]int
	loose      int

	firstScoreTick int
	finalTick      int
	fullTime       bool

	stateChanges int
	pickups      int
	kicks        int
	kickouts     int
	quarterEnds  int
	ignored      int

	resetsFired   int
	kickoutsFired int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var cfgPath string
	var teams string
	var realtime bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 20000, "tick cap per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&cfgPath, "config", "", "optional config file (json, yaml or toml)")
	flag.StringVar(&teams, "teams", "both", "teams to deploy: both, home or away")
	flag.BoolVar(&realtime, "realtime", false, "drive matches on the wall-clock tick period")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	sides, err := parseTeams(teams)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	s, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	l := logging.New(s.LogLevel, s.LogFormat, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("teams=%s runs=%d ticks=%d seed_base=%d seed_step=%d realtime=%t quarter_seconds=%d\n\n",
		teams, runs, ticks, seedBase, seedStep, realtime, s.Game.QuarterSeconds)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		var stats runStats
		if realtime {
			stats, err = runRealtime(ctx, l, s.Game, i+1, seed, ticks, sides)
			if err != nil {
				fmt.Printf("error: run %d: %v\n", i+1, err)
				break
			}
		} else {
			stats = runHeadless(s.Game, i+1, seed, ticks, sides)
		}
		all = append(all, stats)
		printRun(stats)
		if ctx.Err() != nil {
			break
		}
	}

	printAggregate(all)
}

func parseTeams(v string) ([]game.Side, error) {
	switch v {
	case "both":
		return []game.Side{game.SideHome, game.SideAway}, nil
	case "home":
		return []game.Side{game.SideHome}, nil
	case "away":
		return []game.Side{game.SideAway}, nil
	}
	return nil, fmt.Errorf("unsupported -teams %q (supported: both, home, away)", v)
}

// runHeadless plays one match through the scenario harness as fast as the
// CPU allows.
func runHeadless(cfg game.Config, runIndex int, seed int64, ticks int, sides []game.Side) runStats {
	opts := []game.SimOption{
		game.WithSimConfig(cfg),
		game.WithSimSeed(seed),
		game.WithAutoResume(),
		game.WithReporter(0, 5),
	}
	for _, side := range sides {
		opts = append(opts, game.WithTeam(side))
	}
	ts := game.NewTestSim(opts...)
	ts.RunUntil(func(ts *game.TestSim) bool {
		return ts.Match.Phase() == game.PhaseFullTime
	}, ticks)
	return collect(runIndex, seed, ts.Match, ts.Reporter, ts.Fired())
}

// tickCap stops a real-time run once the match has run limit ticks.
type tickCap struct {
	limit  int
	cancel context.CancelFunc
}

func (c tickCap) TickCompleted(s game.Snapshot) {
	if s.Tick >= c.limit {
		c.cancel()
	}
}

func (c tickCap) Scored(game.ScoreEvent) {}

// runRealtime plays one match on the driver loop's timer.
func runRealtime(ctx context.Context, l zerolog.Logger, cfg game.Config, runIndex int, seed int64, ticks int, sides []game.Side) (runStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reporter := game.NewMatchReporter(0, 5)
	m, err := game.NewMatch(cfg,
		game.WithSeed(seed),
		game.WithLogger(l),
		game.WithObserver(reporter),
		game.WithObserver(tickCap{limit: ticks, cancel: cancel}),
	)
	if err != nil {
		return runStats{}, err
	}
	for _, side := range sides {
		if err := m.DeployTeam(side); err != nil {
			return runStats{}, err
		}
	}
	lp := driver.New(m, driver.WithLogger(l), driver.WithAutoResume(true))
	lp.Start()
	if err := lp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return runStats{}, err
	}
	return collect(runIndex, seed, m, reporter, lp.Fired()), nil
}

func collect(runIndex int, seed int64, m *game.Match, r *game.MatchReporter, fired []game.FollowUpKind) runStats {
	ml := m.Log()
	home, away, loose := r.PossessionTicks()
	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		score:          [2]game.SideScore{m.Score(game.SideHome), m.Score(game.SideAway)},
		possession:     [2]int{home, away},
		loose:          loose,
		firstScoreTick: -1,
		finalTick:      m.CurrentTick(),
		fullTime:       m.Phase() == game.PhaseFullTime,
		stateChanges:   ml.CountCategory("state", "change"),
		pickups:        ml.CountCategory("ball", "pickup"),
		kicks:          ml.CountCategory("ball", "kick"),
		kickouts:       ml.CountCategory("ball", "kickout"),
		quarterEnds:    ml.CountCategory("clock", "quarter_end"),
		ignored:        ml.CountCategory("score", "ignored"),
		windowSummary:  r.WindowSummary(),
	}
	if scores := r.Scores(); len(scores) > 0 {
		rs.firstScoreTick = scores[0].Tick
	}
	rs.resetsFired, rs.kickoutsFired = countFired(fired)
	return rs
}

// countFired splits fired follow-ups into centre resets and kickouts.
func countFired(fired []game.FollowUpKind) (resets, kickouts int) {
	for _, k := range fired {
		switch k {
		case game.FollowUpReset:
			resets++
		case game.FollowUpKickout:
			kickouts++
		}
	}
	return resets, kickouts
}

// margin is home points minus away points.
func margin(rs runStats) int {
	return rs.score[game.SideHome].Points() - rs.score[game.SideAway].Points()
}

func result(rs runStats) string {
	switch m := margin(rs); {
	case m > 0:
		return "home"
	case m < 0:
		return "away"
	default:
		return "draw"
	}
}

// possessionShare returns each side's share of carried ticks in percent.
func possessionShare(rs runStats) (home, away float64) {
	total := rs.possession[game.SideHome] + rs.possession[game.SideAway]
	if total == 0 {
		return 0, 0
	}
	return float64(rs.possession[game.SideHome]) / float64(total) * 100,
		float64(rs.possession[game.SideAway]) / float64(total) * 100
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s score: home %s away %s margin=%+d\n",
		result(rs), rs.score[game.SideHome], rs.score[game.SideAway], margin(rs))
	fmt.Printf("clock: final_tick=%d full_time=%t quarter_ends=%d first_score=%d\n",
		rs.finalTick, rs.fullTime, rs.quarterEnds, rs.firstScoreTick)
	hp, ap := possessionShare(rs)
	fmt.Printf("possession: home=%.1f%% away=%.1f%% loose_ticks=%d\n", hp, ap, rs.loose)
	fmt.Printf("event_totals: state_change=%d pickup=%d kick=%d kickout=%d score_ignored=%d\n",
		rs.stateChanges, rs.pickups, rs.kicks, rs.kickouts, rs.ignored)
	fmt.Printf("follow_ups_fired: reset=%d kickout=%d\n", rs.resetsFired, rs.kickoutsFired)
	fmt.Print(rs.windowSummary.Format())
	fmt.Println()
}

type aggregateStats struct {
	runs              int
	homeWins          int
	awayWins          int
	draws             int
	fullTimeRuns      int
	totalHomePoints   int
	totalAwayPoints   int
	totalMargin       int
	totalHomeGoals    int
	totalAwayGoals    int
	totalHomeBehinds  int
	totalAwayBehinds  int
	totalPickups      int
	totalStateChanges int
	firstScoreTicks   []int
}

func aggregate(all []runStats) aggregateStats {
	agg := aggregateStats{runs: len(all), firstScoreTicks: make([]int, 0, len(all))}
	for _, rs := range all {
		switch result(rs) {
		case "home":
			agg.homeWins++
		case "away":
			agg.awayWins++
		default:
			agg.draws++
		}
		if rs.fullTime {
			agg.fullTimeRuns++
		}
		h, a := rs.score[game.SideHome], rs.score[game.SideAway]
		agg.totalHomePoints += h.Points()
		agg.totalAwayPoints += a.Points()
		agg.totalHomeGoals += h.Goals
		agg.totalAwayGoals += a.Goals
		agg.totalHomeBehinds += h.Behinds
		agg.totalAwayBehinds += a.Behinds
		agg.totalMargin += margin(rs)
		agg.totalPickups += rs.pickups
		agg.totalStateChanges += rs.stateChanges
		if rs.firstScoreTick >= 0 {
			agg.firstScoreTicks = append(agg.firstScoreTicks, rs.firstScoreTick)
		}
	}
	return agg
}

func printAggregate(all []runStats) {
	agg := aggregate(all)
	n := agg.runs
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d full_time=%d\n", n, agg.fullTimeRuns)
	fmt.Printf("results: home=%d away=%d draw=%d\n", agg.homeWins, agg.awayWins, agg.draws)
	fmt.Printf("avg_points_per_run: home=%.1f away=%.1f margin=%+.1f\n",
		avg(agg.totalHomePoints, n), avg(agg.totalAwayPoints, n), avg(agg.totalMargin, n))
	fmt.Printf("avg_scores_per_run: home_goals=%.1f home_behinds=%.1f away_goals=%.1f away_behinds=%.1f\n",
		avg(agg.totalHomeGoals, n), avg(agg.totalHomeBehinds, n), avg(agg.totalAwayGoals, n), avg(agg.totalAwayBehinds, n))
	fmt.Printf("avg_events_per_run: pickup=%.1f state_change=%.1f\n",
		avg(agg.totalPickups, n), avg(agg.totalStateChanges, n))
	fmt.Printf("first_score_avg_tick=%s\n", avgTickString(agg.firstScoreTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
