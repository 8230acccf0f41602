package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Garsondee/Footy-Sense/internal/telemetry"

// Meter returns the meter from the global OTel provider (a no-op unless one
// has been installed).
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics is a game.Observer that exports match counters.
type Metrics struct {
	ticks      metric.Int64Counter
	scores     metric.Int64Counter
	possession metric.Int64Counter
	stamina    metric.Float64Histogram
	points     metric.Int64ObservableGauge

	mu    sync.RWMutex
	score [2]game.SideScore
}

// NewMetrics registers the match instruments on m.
func NewMetrics(m metric.Meter) (*Metrics, error) {
	x := &Metrics{}
	var err error

	x.ticks, err = m.Int64Counter(
		"footy.match.ticks",
		metric.WithDescription("Simulation ticks completed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	x.scores, err = m.Int64Counter(
		"footy.match.scores",
		metric.WithDescription("Scores applied, by side and kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scores counter: %w", err)
	}

	x.possession, err = m.Int64Counter(
		"footy.ball.possession",
		metric.WithDescription("Ticks the ball was carried, by side"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating possession counter: %w", err)
	}

	x.stamina, err = m.Float64Histogram(
		"footy.unit.stamina",
		metric.WithDescription("Unit stamina sampled every tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stamina histogram: %w", err)
	}

	x.points, err = m.Int64ObservableGauge(
		"footy.match.points",
		metric.WithDescription("Current points total, by side"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating points gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			x.mu.RLock()
			defer x.mu.RUnlock()
			for _, side := range []game.Side{game.SideHome, game.SideAway} {
				o.ObserveInt64(x.points, int64(x.score[side].Points()),
					metric.WithAttributes(attribute.String("side", side.String())))
			}
			return nil
		},
		x.points,
	)
	if err != nil {
		return nil, fmt.Errorf("registering points callback: %w", err)
	}
	return x, nil
}

// TickCompleted implements game.Observer.
func (x *Metrics) TickCompleted(s game.Snapshot) {
	ctx := context.Background()
	x.ticks.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", s.Phase.String())))
	for _, u := range s.Units {
		x.stamina.Record(ctx, float64(u.Stamina), metric.WithAttributes(attribute.String("side", u.Side.String())))
		if u.Name == s.Ball.Carrier {
			x.possession.Add(ctx, 1, metric.WithAttributes(attribute.String("side", u.Side.String())))
		}
	}
	x.mu.Lock()
	x.score = [2]game.SideScore{s.ScoreOf(game.SideHome), s.ScoreOf(game.SideAway)}
	x.mu.Unlock()
}

// Scored implements game.Observer.
func (x *Metrics) Scored(e game.ScoreEvent) {
	x.scores.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("side", e.Side.String()),
		attribute.String("kind", e.Kind.String()),
	))
}

// Points returns the last points total seen for a side.
func (x *Metrics) Points(side game.Side) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.score[side].Points()
}
