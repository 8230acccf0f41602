package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FOOTY_LOGLEVEL
// or FOOTY_MATCH_SEED.
const EnvPrefix = "FOOTY"

// Settings is the resolved runtime configuration.
type Settings struct {
	LogLevel     string
	LogFormat    string // console or json
	Seed         int64
	AutoResume   bool
	OtelEnabled  bool
	OtelInterval time.Duration // metric export period
	Game         game.Config
}

// setDefaults registers every key with the value game.DefaultConfig uses.
func setDefaults() {
	d := game.DefaultConfig()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.interval", "10s")

	viper.SetDefault("match.seed", 1)
	viper.SetDefault("match.autoResume", false)
	viper.SetDefault("match.quarterSeconds", d.QuarterSeconds)
	viper.SetDefault("match.quarters", d.Quarters)
	viper.SetDefault("match.followUpTicks", d.FollowUpTicks)
	viper.SetDefault("match.tickPeriodMs", d.TickPeriodMs)
	viper.SetDefault("match.speedStepMs", d.SpeedStepMs)
	viper.SetDefault("match.minTickPeriodMs", d.MinTickPeriodMs)
	viper.SetDefault("match.kickFlightTicks", d.KickFlightTick)
	viper.SetDefault("match.scoringRange", d.ScoringRange)
	viper.SetDefault("match.kickoutInset", d.KickoutInset)

	viper.SetDefault("field.cols", d.Cols)
	viper.SetDefault("field.rows", d.Rows)
	viper.SetDefault("field.cellSize", d.CellSize)
	viper.SetDefault("field.awayRowOffset", d.AwayRowOffset)
	viper.SetDefault("field.defensiveThird", d.DefensiveThird)
	viper.SetDefault("field.forwardThird", d.ForwardThird)
	viper.SetDefault("field.goalSquareDepth", d.GoalSquareDepth)
	viper.SetDefault("field.goalRowMin", d.GoalRowMin)
	viper.SetDefault("field.goalRowMax", d.GoalRowMax)
	viper.SetDefault("field.pocketRows", d.PocketRows)
	viper.SetDefault("field.pocketBonus", d.PocketBonus)
	viper.SetDefault("field.arcInset", d.ArcInset)
	viper.SetDefault("field.arcRadiusMin", d.ArcRadiusMin)
	viper.SetDefault("field.arcRadiusMax", d.ArcRadiusMax)

	for st, delta := range d.StaminaDelta {
		viper.SetDefault("stamina."+st.String(), delta)
	}

	viper.SetDefault("fatigue.minor", d.Fatigue.Minor)
	viper.SetDefault("fatigue.tired", d.Fatigue.Tired)
	viper.SetDefault("fatigue.exhausted", d.Fatigue.Exhausted)
	viper.SetDefault("fatigue.recovered", d.Fatigue.Recovered)
	viper.SetDefault("fatigue.reengage", d.Fatigue.Reengage)
	viper.SetDefault("fatigue.reengageChance", d.Fatigue.ReengageChance)
}

// Load reads configuration from an optional JSON/YAML/TOML file, applies
// FOOTY_* environment overrides and validates the resulting match config.
// An empty path uses defaults and the environment only.
func Load(path string) (*Settings, error) {
	setDefaults()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	g, err := gameConfig()
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("match config: %w", err)
	}
	return &Settings{
		LogLevel:     viper.GetString("logLevel"),
		LogFormat:    viper.GetString("logFormat"),
		Seed:         viper.GetInt64("match.seed"),
		AutoResume:   viper.GetBool("match.autoResume"),
		OtelEnabled:  viper.GetBool("otel.enabled"),
		OtelInterval: viper.GetDuration("otel.interval"),
		Game:         g,
	}, nil
}

func gameConfig() (game.Config, error) {
	g := game.DefaultConfig()

	g.QuarterSeconds = viper.GetInt("match.quarterSeconds")
	g.Quarters = viper.GetInt("match.quarters")
	g.FollowUpTicks = viper.GetInt("match.followUpTicks")
	g.TickPeriodMs = viper.GetInt("match.tickPeriodMs")
	g.SpeedStepMs = viper.GetInt("match.speedStepMs")
	g.MinTickPeriodMs = viper.GetInt("match.minTickPeriodMs")
	g.KickFlightTick = viper.GetInt("match.kickFlightTicks")
	g.ScoringRange = viper.GetInt("match.scoringRange")
	g.KickoutInset = viper.GetInt("match.kickoutInset")

	g.Cols = viper.GetInt("field.cols")
	g.Rows = viper.GetInt("field.rows")
	g.CellSize = viper.GetInt("field.cellSize")
	g.AwayRowOffset = viper.GetInt("field.awayRowOffset")
	g.DefensiveThird = viper.GetFloat64("field.defensiveThird")
	g.ForwardThird = viper.GetFloat64("field.forwardThird")
	g.GoalSquareDepth = viper.GetInt("field.goalSquareDepth")
	g.GoalRowMin = viper.GetInt("field.goalRowMin")
	g.GoalRowMax = viper.GetInt("field.goalRowMax")
	g.PocketRows = viper.GetIntSlice("field.pocketRows")
	g.PocketBonus = viper.GetInt("field.pocketBonus")
	g.ArcInset = viper.GetInt("field.arcInset")
	g.ArcRadiusMin = viper.GetFloat64("field.arcRadiusMin")
	g.ArcRadiusMax = viper.GetFloat64("field.arcRadiusMax")

	delta := make(map[game.UnitState]int, len(g.StaminaDelta))
	for st := range g.StaminaDelta {
		delta[st] = viper.GetInt("stamina." + st.String())
	}
	g.StaminaDelta = delta

	g.Fatigue.Minor = viper.GetInt("fatigue.minor")
	g.Fatigue.Tired = viper.GetInt("fatigue.tired")
	g.Fatigue.Exhausted = viper.GetInt("fatigue.exhausted")
	g.Fatigue.Recovered = viper.GetInt("fatigue.recovered")
	g.Fatigue.Reengage = viper.GetInt("fatigue.reengage")
	g.Fatigue.ReengageChance = viper.GetFloat64("fatigue.reengageChance")

	if viper.IsSet("formation") {
		f, err := formation()
		if err != nil {
			return g, err
		}
		g.Formation = f
	}
	return g, nil
}

var roleKeys = map[string]game.Role{
	"defender":   game.RoleDefender,
	"midfielder": game.RoleMidfielder,
	"forward":    game.RoleForward,
}

// formation decodes a home-side layout such as
//
//	"formation": { "defender": [[1,8],[1,15]], "forward": [[38,15]] }
//
// into a fresh value; a role left out deploys no units.
func formation() (game.Formation, error) {
	var raw map[string][][]int
	if err := viper.UnmarshalKey("formation", &raw); err != nil {
		return nil, fmt.Errorf("decode formation: %w", err)
	}
	out := game.Formation{}
	for key, spots := range raw {
		role, ok := roleKeys[strings.ToLower(key)]
		if !ok {
			return nil, fmt.Errorf("formation: unknown role %q: %w", key, game.ErrInvalidConfig)
		}
		for _, s := range spots {
			if len(s) != 2 {
				return nil, fmt.Errorf("formation %s: spot %v is not [x,y]: %w", key, s, game.ErrInvalidConfig)
			}
			out[role] = append(out[role], game.Point{X: s[0], Y: s[1]})
		}
	}
	return out, nil
}
