package viewer

import (
	"strings"
	"testing"

	"github.com/Garsondee/Footy-Sense/internal/game"
)

func TestEventLog_RingWraps(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Note(i, "n")
	}
	recent := el.Recent()
	if len(recent) != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, len(recent))
	}
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected oldest 5 and newest %d, got %d..%d", logMaxEntries+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestEventLog_RecordsScoresAndPhases(t *testing.T) {
	el := NewEventLog()
	el.Scored(game.ScoreEvent{Tick: 9, Kind: game.ScoreGoal, Side: game.SideHome, Unit: "f_home_2"})
	el.TickCompleted(game.Snapshot{Tick: 9, Phase: game.PhaseResetPlay, Quarter: 1})
	el.TickCompleted(game.Snapshot{Tick: 10, Phase: game.PhaseResetPlay, Quarter: 1})
	el.TickCompleted(game.Snapshot{Tick: 12, Phase: game.PhasePlay, Quarter: 2})

	recent := el.Recent()
	if len(recent) != 4 {
		t.Fatalf("expected goal, two phase changes and a quarter start, got %d: %+v", len(recent), recent)
	}
	if recent[0].Message != "GOAL by f_home_2" || recent[0].Side != game.SideHome || recent[0].Match {
		t.Fatalf("unexpected goal entry %+v", recent[0])
	}
	if recent[1].Message != "play → resetPlay" || !recent[1].Match {
		t.Fatalf("unexpected phase entry %+v", recent[1])
	}
	if !strings.HasPrefix(recent[3].Message, "Q2 begins") {
		t.Fatalf("unexpected quarter entry %+v", recent[3])
	}
}

func TestScoreReport(t *testing.T) {
	s := game.Snapshot{Quarter: 3, TimeLeft: 65}
	s.Score[game.SideHome] = game.SideScore{Goals: 2}
	out := ScoreReport(s, []EventEntry{{Tick: 4, Message: "BEHIND by f_away_1"}})
	want := "Q3 01:05  home 2.0 (12) - away 0.0 (0)\n   4 BEHIND by f_away_1\n"
	if out != want {
		t.Fatalf("unexpected report:\n%q\nwant\n%q", out, want)
	}
}

func TestScoreReport_QuarterHistory(t *testing.T) {
	s := game.Snapshot{Phase: game.PhaseFullTime, Quarter: 2}
	s.Score[game.SideHome] = game.SideScore{Goals: 3, Behinds: 2}
	s.QuarterScores = [][2]game.SideScore{
		{{Goals: 1}, {Behinds: 1}},
		{{Goals: 3, Behinds: 2}, {Behinds: 1}},
	}
	out := ScoreReport(s, nil)
	want := "Q2 00:00  home 3.2 (20) - away 0.0 (0)\nQ1 1.0-0.1  FT 3.2-0.1\n"
	if out != want {
		t.Fatalf("unexpected report:\n%q\nwant\n%q", out, want)
	}
}
