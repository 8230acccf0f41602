package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Garsondee/Footy-Sense/internal/config"
	"github.com/Garsondee/Footy-Sense/internal/driver"
	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/Garsondee/Footy-Sense/internal/logging"
	"github.com/Garsondee/Footy-Sense/internal/telemetry"
	"github.com/Garsondee/Footy-Sense/internal/viewer"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "optional config file (json, yaml or toml)")
	flag.Parse()

	s, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	l := logging.New(s.LogLevel, s.LogFormat, nil)

	events := viewer.NewEventLog()
	opts := []game.MatchOption{
		game.WithSeed(s.Seed),
		game.WithLogger(l),
		game.WithObserver(events),
	}
	var provider *telemetry.Provider
	if s.OtelEnabled {
		provider, err = telemetry.NewProvider(os.Stdout, s.OtelInterval)
		if err != nil {
			l.Fatal().Err(err).Msg("telemetry setup failed")
		}
		provider.SetGlobal()
		metrics, err := telemetry.NewMetrics(provider.Meter())
		if err != nil {
			l.Fatal().Err(err).Msg("telemetry setup failed")
		}
		opts = append(opts, game.WithObserver(metrics))
	}

	m, err := game.NewMatch(s.Game, opts...)
	if err != nil {
		l.Fatal().Err(err).Msg("match setup failed")
	}
	lp := driver.New(m, driver.WithLogger(l), driver.WithAutoResume(s.AutoResume))

	v := viewer.New(lp, events, l)
	ebiten.SetWindowTitle("Footy Sense")
	ebiten.SetWindowSize(v.WindowSize())
	runErr := ebiten.RunGame(v)
	if provider != nil {
		if err := provider.Shutdown(context.Background()); err != nil {
			l.Error().Err(err).Msg("telemetry flush failed")
		}
	}
	if runErr != nil {
		l.Fatal().Err(runErr).Msg("viewer exited")
	}
}
