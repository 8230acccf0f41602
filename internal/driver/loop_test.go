package driver

import (
	"context"
	"testing"
	"time"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoop(t *testing.T, cfg game.Config, opts ...Option) *Loop {
	t.Helper()
	m, err := game.NewMatch(cfg, game.WithSeed(3))
	require.NoError(t, err)
	return New(m, opts...)
}

// scoringLoop stages a home forward about to kick a goal from the pocket.
func scoringLoop(t *testing.T) *Loop {
	t.Helper()
	lp := newLoop(t, game.DefaultConfig())
	_, err := lp.Match().CreateUnit(game.UnitSpec{Name: "f", Role: game.RoleForward, Side: game.SideHome, X: 38, Y: 12})
	require.NoError(t, err)
	lp.Match().Ball().PickUp(lp.Match().Unit("f"))
	lp.Start()
	return lp
}

func TestLoop_PeriodFromConfig(t *testing.T) {
	lp := newLoop(t, game.DefaultConfig())
	assert.Equal(t, 500*time.Millisecond, lp.Period())
	assert.False(t, lp.Running())
}

func TestLoop_SpeedSteps(t *testing.T) {
	lp := newLoop(t, game.DefaultConfig())
	lp.SpeedUp()
	assert.Equal(t, 450*time.Millisecond, lp.Period())
	lp.SpeedDown()
	lp.SpeedDown()
	assert.Equal(t, 550*time.Millisecond, lp.Period())
	lp.SetPeriod(10 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, lp.Period(), "period should clamp to the minimum")
	lp.SpeedUp()
	assert.Equal(t, 50*time.Millisecond, lp.Period())
	lp.SetSpeed(250)
	assert.Equal(t, 250*time.Millisecond, lp.Period())
}

func TestLoop_StepRequiresStart(t *testing.T) {
	lp := newLoop(t, game.DefaultConfig())
	assert.False(t, lp.Step())
	assert.Equal(t, 0, lp.Match().CurrentTick())

	lp.Start()
	assert.True(t, lp.Step())
	assert.Equal(t, 1, lp.Match().CurrentTick())
}

func TestLoop_StopPausesMatch(t *testing.T) {
	lp := newLoop(t, game.DefaultConfig())
	lp.Start()
	lp.Step()
	lp.Stop()
	assert.Equal(t, game.PhasePaused, lp.Match().Phase())
	assert.False(t, lp.Step())

	lp.Toggle()
	assert.True(t, lp.Running())
	assert.Equal(t, game.PhasePlay, lp.Match().Phase())
}

func TestLoop_AdvanceAccumulates(t *testing.T) {
	lp := newLoop(t, game.DefaultConfig())
	lp.Start()
	assert.Equal(t, 2, lp.Advance(1200*time.Millisecond))
	assert.Equal(t, 0, lp.Advance(250*time.Millisecond))
	assert.Equal(t, 1, lp.Advance(50*time.Millisecond))
	assert.Equal(t, 3, lp.Match().CurrentTick())
}

func TestLoop_FollowUpSurvivesSpeedChange(t *testing.T) {
	lp := scoringLoop(t)
	lp.Step() // chase → carry
	lp.Step() // goal
	require.Equal(t, game.PhaseResetPlay, lp.Match().Phase())
	require.Equal(t, 1, lp.Pending())

	lp.SpeedUp()
	lp.SpeedUp()
	lp.Step()
	lp.Step()
	assert.Equal(t, game.PhasePlay, lp.Match().Phase())
	assert.Equal(t, 0, lp.Pending())
	assert.Equal(t, []game.FollowUpKind{game.FollowUpReset}, lp.Fired())
}

func TestLoop_FollowUpHeldWhileStopped(t *testing.T) {
	lp := scoringLoop(t)
	lp.Step()
	lp.Step()
	require.Equal(t, game.PhaseResetPlay, lp.Match().Phase())

	lp.Stop()
	for i := 0; i < 10; i++ {
		lp.Step()
	}
	assert.Equal(t, 1, lp.Pending(), "a stopped loop should not count follow-ups down")

	lp.Start()
	assert.Equal(t, game.PhaseResetPlay, lp.Match().Phase())
	lp.Step()
	lp.Step()
	assert.Equal(t, game.PhasePlay, lp.Match().Phase())
}

func TestLoop_AutoResume(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.QuarterSeconds = 2
	lp := newLoop(t, cfg, WithAutoResume(true))
	lp.Start()
	lp.Step()
	lp.Step()
	assert.Equal(t, 2, lp.Match().Quarter())
	assert.Equal(t, game.PhasePlay, lp.Match().Phase())
}

func fastConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.QuarterSeconds = 3
	cfg.Quarters = 1
	cfg.TickPeriodMs = 1
	cfg.MinTickPeriodMs = 1
	return cfg
}

func TestLoop_RunToFullTime(t *testing.T) {
	lp := newLoop(t, fastConfig())
	lp.Submit(func(lp *Loop) { lp.Start() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, lp.Run(ctx))
	assert.Equal(t, game.PhaseFullTime, lp.Match().Phase())
}

func TestLoop_RunCancelled(t *testing.T) {
	lp := newLoop(t, fastConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, lp.Run(ctx), context.Canceled)
}
