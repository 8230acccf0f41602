package game

import (
	"testing"
)

// dumpLog prints the full MatchLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scoreline and, when present, the reporter window.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	s := ts.Snapshot()
	t.Logf("T=%d Q%d %s %s", ts.CurrentTick(), s.Quarter, s.Clock(), s.Scoreline())
	if ts.Reporter != nil {
		if wr := ts.Reporter.WindowSummary(); wr != nil {
			t.Log(wr.Format())
		}
	}
}

// --- Scenario: Lone forward runs in for a goal ---

func TestScenario_LoneForwardGoal(t *testing.T) {
	t.Log("=== TestScenario_LoneForwardGoal ===")
	ts := NewTestSim(
		WithUnit("f", RoleForward, SideHome, 30, 13),
		WithCarrier("f"),
	)
	ts.RunTicks(12)
	dumpLog(t, ts)

	if got := ts.Log.FirstTick("score", "goal", ""); got != 9 {
		t.Fatalf("goal expected on tick 9 after 8 steps, got %d", got)
	}
	if ts.Match.Score(SideHome).Goals != 1 {
		t.Fatalf("expected one goal, got %s", ts.Match.Score(SideHome))
	}
}

// --- Scenario: Central run ends in a behind ---

func TestScenario_CentralRunBehind(t *testing.T) {
	t.Log("=== TestScenario_CentralRunBehind ===")
	ts := NewTestSim(
		WithUnit("f", RoleForward, SideHome, 30, 15),
		WithCarrier("f"),
	)
	ts.RunTicks(9)
	dumpLog(t, ts)

	if got := ts.Log.FirstTick("score", "behind", ""); got != 9 {
		t.Fatalf("behind expected on tick 9, got %d", got)
	}
	if ts.Log.CountCategory("score", "goal") != 0 {
		t.Fatal("row 15 is not a pocket row, no goal expected")
	}
}

// --- Scenario: Away side attacks the other way ---

func TestScenario_AwayForwardGoal(t *testing.T) {
	ts := NewTestSim(
		WithUnit("f", RoleForward, SideAway, 9, 17),
		WithCarrier("f"),
	)
	ts.RunTicks(10)
	dumpLog(t, ts)
	if ts.Match.Score(SideAway).Goals != 1 || ts.Match.Score(SideHome).Points() != 0 {
		t.Fatalf("away goal expected, got %s", ts.Snapshot().Scoreline())
	}
}

// --- Scenario: Chase reaches the centre ball ---

func TestScenario_ChaseToCentre(t *testing.T) {
	ts := NewTestSim(WithUnit("m", RoleMidfielder, SideHome, 10, 15))
	got := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Match.Ball().Carrier() != nil
	}, 30)
	if got != 10 {
		t.Fatalf("expected pickup on tick 10, got %d", got)
	}
	if !ts.Log.HasEntry("ball", "pickup", "(20,15)") {
		t.Fatal("pickup should be logged at the centre")
	}
	if u := ts.Unit("m"); u.State() != StateCarry || u.Stamina() != 50 {
		t.Fatalf("expected carry at 50 stamina, got %s/%d", u.State(), u.Stamina())
	}
}

// --- Scenario: Contested centre ball goes to the first mover ---

func TestScenario_ContestedBall(t *testing.T) {
	ts := NewTestSim(
		WithUnit("h", RoleMidfielder, SideHome, 15, 15),
		WithUnit("a", RoleMidfielder, SideAway, 25, 15),
	)
	ts.RunTicks(5)
	dumpLog(t, ts)
	c := ts.Match.Ball().Carrier()
	if c == nil || c.Name != "h" {
		t.Fatalf("home unit advances first and should win the ball, got %v", c)
	}
	checkOccupancy(t, ts.Match)
}

// --- Scenario: Exhausted chaser drops out and comes back ---

func TestScenario_FatigueAndRecovery(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fatigue.ReengageChance = 1
	ts := NewTestSim(
		WithSimConfig(cfg),
		WithUnit("m", RoleMidfielder, SideHome, 5, 5),
		WithUnitState("m", StateChase, 20),
		WithBallAt(35, 25),
	)
	// 20 → 15 → 10: exhausted on the second tick.
	ts.RunTicks(2)
	if ts.Unit("m").State() != StateFatigue {
		t.Fatalf("expected fatigue, got %s", ts.Unit("m").State())
	}
	got := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Unit("m").State() == StateChase
	}, 200)
	dumpLog(t, ts)
	if got < 0 {
		t.Fatal("unit never re-engaged")
	}
	if s := ts.Unit("m").Stamina(); s <= cfg.Fatigue.Reengage {
		t.Fatalf("re-engaged at %d stamina, threshold is %d", s, cfg.Fatigue.Reengage)
	}
}

// --- Scenario: Full match with both teams ---

func TestScenario_FullMatch(t *testing.T) {
	t.Log("=== TestScenario_FullMatch ===")
	cfg := DefaultConfig()
	cfg.QuarterSeconds = 60
	ts := NewTestSim(
		WithSimConfig(cfg),
		WithSimSeed(42),
		WithAutoResume(),
		WithReporter(120, 10),
		WithTeam(SideHome),
		WithTeam(SideAway),
	)
	got := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Match.Phase() == PhaseFullTime
	}, 5000)
	dumpSummary(t, ts)

	if got < 0 {
		t.Fatalf("match did not reach full time, phase=%s Q%d", ts.Match.Phase(), ts.Match.Quarter())
	}
	if n := ts.Log.CountCategory("clock", "quarter_end"); n != 4 {
		t.Fatalf("expected 4 quarter ends, got %d", n)
	}
	if n := ts.Log.CountCategory("clock", "quarter_start"); n != 3 {
		t.Fatalf("expected 3 quarter starts, got %d", n)
	}
	if got < 4*cfg.QuarterSeconds {
		t.Fatalf("full time after %d ticks is shorter than the playing time", got)
	}
	scores := ts.Reporter.Scores()
	s := ts.Snapshot()
	if len(scores) != s.Score[SideHome].Goals+s.Score[SideHome].Behinds+s.Score[SideAway].Goals+s.Score[SideAway].Behinds {
		t.Fatalf("reporter saw %d scores, scoreboard says %s", len(scores), s.Scoreline())
	}
}
