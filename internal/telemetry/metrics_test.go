package telemetry

import (
	"testing"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNewMetrics_GlobalMeter(t *testing.T) {
	_, err := NewMetrics(Meter())
	require.NoError(t, err)
}

func TestMetrics_TracksPoints(t *testing.T) {
	x, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	s := game.Snapshot{
		Tick:  12,
		Phase: game.PhasePlay,
		Units: []game.UnitView{
			{Name: "f_home_1", Side: game.SideHome, Stamina: 80},
			{Name: "d_away_1", Side: game.SideAway, Stamina: 55},
		},
		Ball: game.BallView{Mode: game.BallCarried, Carrier: "f_home_1"},
	}
	s.Score[game.SideHome] = game.SideScore{Goals: 2, Behinds: 1}
	x.TickCompleted(s)
	x.Scored(game.ScoreEvent{Tick: 12, Kind: game.ScoreGoal, Side: game.SideHome, Unit: "f_home_1"})

	assert.Equal(t, 13, x.Points(game.SideHome))
	assert.Equal(t, 0, x.Points(game.SideAway))
}

func TestMetrics_AsMatchObserver(t *testing.T) {
	x, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	m, err := game.NewMatch(game.DefaultConfig(), game.WithObserver(x))
	require.NoError(t, err)
	require.NoError(t, m.DeployTeam(game.SideHome))
	require.NoError(t, m.DeployTeam(game.SideAway))
	for i := 0; i < 200; i++ {
		m.Tick()
	}
	assert.Equal(t, m.Score(game.SideHome).Points(), x.Points(game.SideHome))
	assert.Equal(t, m.Score(game.SideAway).Points(), x.Points(game.SideAway))
}
