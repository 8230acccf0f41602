package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// Command errors returned by DeployTeam and CreateUnit.
var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrCellOccupied = errors.New("cell occupied")
	ErrTeamDeployed = errors.New("team already deployed")
	ErrInvalidUnit  = errors.New("invalid unit")
)

// Phase is the match phase. Only Match changes it.
type Phase int

const (
	PhasePlay Phase = iota
	PhaseResetPlay
	PhaseKickoutPlay
	PhaseQuarterBreak
	PhasePaused
	PhaseFullTime
)

func (p Phase) String() string {
	switch p {
	case PhasePlay:
		return "play"
	case PhaseResetPlay:
		return "resetPlay"
	case PhaseKickoutPlay:
		return "kickoutPlay"
	case PhaseQuarterBreak:
		return "quarterBreak"
	case PhasePaused:
		return "paused"
	case PhaseFullTime:
		return "fullTime"
	default:
		return "unknown"
	}
}

// Observer is notified after every tick and every applied score.
type Observer interface {
	TickCompleted(s Snapshot)
	Scored(e ScoreEvent)
}

// UnitSpec describes an ad-hoc unit. An empty Name is generated.
type UnitSpec struct {
	Name string
	Role Role
	Side Side
	X, Y int
}

// MatchOption configures a Match at construction.
type MatchOption func(*Match)

// WithRand injects the random source used for tie-breaks and re-engagement.
func WithRand(r *rand.Rand) MatchOption {
	return func(m *Match) { m.rng = r }
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) MatchOption {
	return func(m *Match) { m.rng = rand.New(rand.NewSource(seed)) } // #nosec G404 -- simulation only
}

// WithLogger sets the operational logger.
func WithLogger(l zerolog.Logger) MatchOption {
	return func(m *Match) { m.log = l }
}

// WithMatchLog records match events into ml.
func WithMatchLog(ml *MatchLog) MatchOption {
	return func(m *Match) { m.events = ml }
}

// WithObserver attaches an observer.
func WithObserver(o Observer) MatchOption {
	return func(m *Match) { m.observers = append(m.observers, o) }
}

// Match owns the grid, ball and units and drives one tick at a time.
type Match struct {
	cfg    Config
	grid   *Grid
	ball   *Ball
	units  []*Unit
	byName map[string]*Unit

	phase       Phase
	pausedFrom  Phase
	tick        int
	quarter     int
	timeLeft    int
	score       [sideCount]SideScore
	quarters    [][sideCount]SideScore
	deployed    [sideCount]bool
	lastScore   *ScoreEvent
	followUps   []FollowUp
	nextAdHocID int

	rng       *rand.Rand
	log       zerolog.Logger
	events    *MatchLog
	observers []Observer
}

// NewMatch validates cfg and builds a match ready for its first tick. A
// configuration error is returned before any state exists.
func NewMatch(cfg Config, opts ...MatchOption) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Match{
		cfg:      cfg,
		grid:     NewGrid(cfg),
		byName:   map[string]*Unit{},
		phase:    PhasePlay,
		quarter:  1,
		timeLeft: cfg.QuarterSeconds,
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- simulation default
		log:      zerolog.Nop(),
		events:   NewMatchLog(),
	}
	for _, o := range opts {
		o(m)
	}
	m.ball = NewBall(m.grid)
	m.log.Info().Int("cols", cfg.Cols).Int("rows", cfg.Rows).Msg("match initialised")
	return m, nil
}

// Config returns the match configuration.
func (m *Match) Config() Config { return m.cfg }

// Grid returns the field.
func (m *Match) Grid() *Grid { return m.grid }

// Ball returns the ball.
func (m *Match) Ball() *Ball { return m.ball }

// Units returns units in deployment order.
func (m *Match) Units() []*Unit { return m.units }

// Unit looks a unit up by name.
func (m *Match) Unit(name string) *Unit { return m.byName[name] }

// Phase returns the current phase.
func (m *Match) Phase() Phase { return m.phase }

// Quarter returns the 1-based quarter index.
func (m *Match) Quarter() int { return m.quarter }

// TimeLeft returns seconds left in the quarter.
func (m *Match) TimeLeft() int { return m.timeLeft }

// CurrentTick returns the simulation tick counter.
func (m *Match) CurrentTick() int { return m.tick }

// Score returns a side's tally.
func (m *Match) Score(side Side) SideScore { return m.score[side] }

// Log returns the match event log.
func (m *Match) Log() *MatchLog { return m.events }

// DeployTeam places a side's full formation. Either every unit is placed or
// none is.
func (m *Match) DeployTeam(side Side) error {
	if !side.Valid() {
		return fmt.Errorf("deploy side %d: %w", int(side), ErrInvalidUnit)
	}
	if m.deployed[side] {
		return fmt.Errorf("deploy %s: %w", side, ErrTeamDeployed)
	}
	spots := m.cfg.Formation.spots(side, m.cfg)
	for _, s := range spots {
		if !m.grid.InBounds(s.At.X, s.At.Y) {
			return fmt.Errorf("deploy %s at (%d,%d): %w", s.Name(side), s.At.X, s.At.Y, ErrOutOfBounds)
		}
		if !m.grid.IsOccupiable(s.At.X, s.At.Y) {
			return fmt.Errorf("deploy %s at (%d,%d): %w", s.Name(side), s.At.X, s.At.Y, ErrCellOccupied)
		}
	}
	for _, s := range spots {
		u := newUnit(s.Name(side), s.Role, side)
		m.register(u, s.At)
	}
	m.deployed[side] = true
	m.events.Add(m.tick, "--", side.String(), "deploy", "team", fmt.Sprintf("%d units", len(spots)))
	m.log.Info().Str("side", side.String()).Int("units", len(spots)).Msg("team deployed")
	return nil
}

// CreateUnit injects one unit at an explicit position.
func (m *Match) CreateUnit(spec UnitSpec) (*Unit, error) {
	if !spec.Side.Valid() {
		return nil, fmt.Errorf("create unit with side %d: %w", int(spec.Side), ErrInvalidUnit)
	}
	if !spec.Role.Valid() {
		return nil, fmt.Errorf("create unit with role %d: %w", int(spec.Role), ErrInvalidUnit)
	}
	if !m.grid.InBounds(spec.X, spec.Y) {
		return nil, fmt.Errorf("create unit at (%d,%d): %w", spec.X, spec.Y, ErrOutOfBounds)
	}
	if !m.grid.IsOccupiable(spec.X, spec.Y) {
		return nil, fmt.Errorf("create unit at (%d,%d): %w", spec.X, spec.Y, ErrCellOccupied)
	}
	name := spec.Name
	for name == "" || m.byName[name] != nil {
		m.nextAdHocID++
		name = fmt.Sprintf("%s_%s_x%d", spec.Role.Code(), spec.Side, m.nextAdHocID)
	}
	u := newUnit(name, spec.Role, spec.Side)
	m.register(u, Point{spec.X, spec.Y})
	return u, nil
}

func (m *Match) register(u *Unit, at Point) {
	m.grid.Place(u, at.X, at.Y)
	u.homeX, u.homeY = at.X, at.Y
	m.units = append(m.units, u)
	m.byName[u.Name] = u
	m.events.Add(m.tick, u.Name, u.Side.String(), "deploy", "unit", fmt.Sprintf("(%d,%d) %s", at.X, at.Y, u.Role))
	m.log.Debug().Str("unit", u.Name).Int("x", at.X).Int("y", at.Y).Msg("unit deployed")
}

// Tick advances the simulation by one step and returns the resulting
// snapshot. Paused, quarter-break and full-time phases leave state untouched.
func (m *Match) Tick() Snapshot {
	switch m.phase {
	case PhasePaused, PhaseQuarterBreak, PhaseFullTime:
		return m.Snapshot()
	}
	m.tick++

	if m.phase == PhasePlay {
		if m.timeLeft > 0 {
			m.timeLeft--
		}
		if m.timeLeft == 0 {
			m.endQuarter()
			return m.publish()
		}
	}

	ctx := &TickContext{
		Tick:  m.tick,
		Grid:  m.grid,
		Ball:  m.ball,
		Phase: m.phase,
		Cfg:   &m.cfg,
		Rand:  m.rng,
		Log:   m.log,
	}
	before := m.ball.Carrier()
	scored := false
	for _, u := range m.units {
		prev := u.state
		ev, ok := u.Advance(ctx)
		if u.state != prev {
			m.events.Add(m.tick, u.Name, u.Side.String(), "state", "change",
				fmt.Sprintf("%s → %s", prev, u.state))
		}
		if !ok {
			continue
		}
		if scored {
			m.events.Add(m.tick, u.Name, u.Side.String(), "score", "ignored", ev.Kind.String())
			continue
		}
		scored = true
		m.applyScore(ev)
		ctx.Phase = m.phase
	}

	m.ball.Update(m.grid)
	if c := m.ball.Carrier(); c != nil && c != before {
		m.events.Add(m.tick, c.Name, c.Side.String(), "ball", "pickup",
			fmt.Sprintf("(%d,%d)", c.x, c.y))
	}
	return m.publish()
}

func (m *Match) applyScore(ev ScoreEvent) {
	s := &m.score[ev.Side]
	switch ev.Kind {
	case ScoreGoal:
		s.Goals++
		m.ball.Reset(m.grid)
		m.ball.MarkDead()
		m.setPhase(PhaseResetPlay)
		m.followUps = append(m.followUps, FollowUp{Kind: FollowUpReset, AfterTicks: m.cfg.FollowUpTicks})
		m.events.Add(m.tick, ev.Unit, ev.Side.String(), "score", "goal",
			fmt.Sprintf("%s scores a GOAL from the pocket", ev.Unit))
	case ScoreBehind:
		s.Behinds++
		m.ball.MarkDead()
		m.setPhase(PhaseKickoutPlay)
		m.followUps = append(m.followUps, FollowUp{Kind: FollowUpKickout, AfterTicks: m.cfg.FollowUpTicks})
		m.events.Add(m.tick, ev.Unit, ev.Side.String(), "score", "behind",
			fmt.Sprintf("%s kicks a BEHIND", ev.Unit))
	}
	e := ev
	m.lastScore = &e
	m.log.Info().Str("unit", ev.Unit).Str("side", ev.Side.String()).Str("kind", ev.Kind.String()).
		Str("score", s.String()).Msg("score")
	for _, o := range m.observers {
		o.Scored(ev)
	}
}

func (m *Match) setPhase(p Phase) {
	if m.phase == p {
		return
	}
	m.events.Add(m.tick, "--", "--", "phase", "change", fmt.Sprintf("%s → %s", m.phase, p))
	m.log.Debug().Str("from", m.phase.String()).Str("to", p.String()).Msg("phase change")
	m.phase = p
}

func (m *Match) endQuarter() {
	m.events.Add(m.tick, "--", "--", "clock", "quarter_end", fmt.Sprintf("Q%d", m.quarter))
	m.quarters = append(m.quarters, m.score)
	if m.quarter >= m.cfg.Quarters {
		m.setPhase(PhaseFullTime)
		return
	}
	m.setPhase(PhaseQuarterBreak)
}

// TakeFollowUps returns and clears the follow-ups raised since the last call.
// The driver schedules them and calls Fire when they fall due.
func (m *Match) TakeFollowUps() []FollowUp {
	out := m.followUps
	m.followUps = nil
	return out
}

// Fire runs the entry point for a due follow-up.
func (m *Match) Fire(kind FollowUpKind) bool {
	switch kind {
	case FollowUpKickout:
		return m.BeginKickout()
	case FollowUpReset:
		return m.CompleteReset()
	default:
		return false
	}
}

// BeginKickout restarts play after a behind: a defender of the conceding
// side takes the ball in front of its own goal. It only acts in
// kickoutPlay, so a repeated call is a no-op.
func (m *Match) BeginKickout() bool {
	if m.phase != PhaseKickoutPlay {
		return false
	}
	conceding := SideHome
	if m.lastScore != nil {
		conceding = m.lastScore.Side.Opponent()
	}
	kicker := m.pickKicker(conceding)
	m.ball.SetLive()
	if kicker != nil {
		spot := kickoutSpot(kicker.Side, m.cfg)
		if kicker.Pos() != spot {
			if to, ok := m.grid.NearestFree(spot.X, spot.Y); ok {
				m.grid.MoveOccupant(kicker.Pos(), to)
			}
		}
		m.ball.PickUp(kicker)
		kicker.state = StateCarry
		m.events.Add(m.tick, kicker.Name, kicker.Side.String(), "ball", "kickout",
			fmt.Sprintf("(%d,%d)", kicker.x, kicker.y))
	}
	m.setPhase(PhasePlay)
	return true
}

// pickKicker prefers a defender of side, then any defender, then anyone.
func (m *Match) pickKicker(side Side) *Unit {
	for _, u := range m.units {
		if u.Role == RoleDefender && u.Side == side {
			return u
		}
	}
	for _, u := range m.units {
		if u.Role == RoleDefender {
			return u
		}
	}
	if len(m.units) > 0 {
		return m.units[0]
	}
	return nil
}

// CompleteReset restarts play after a goal with a centre ball. It only acts
// in resetPlay.
func (m *Match) CompleteReset() bool {
	if m.phase != PhaseResetPlay {
		return false
	}
	m.sendUnitsHome(false)
	m.ball.Reset(m.grid)
	m.setPhase(PhasePlay)
	return true
}

// sendUnitsHome returns every unit to its home cell where that cell is free.
// fresh also restores full stamina and the chase state.
func (m *Match) sendUnitsHome(fresh bool) {
	// A home cell can be held by a unit that moves off it later in the pass.
	for pass := 0; pass < len(m.units); pass++ {
		moved := false
		for _, u := range m.units {
			if !u.AtHome() && m.grid.MoveOccupant(u.Pos(), u.Home()) {
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	for _, u := range m.units {
		if fresh {
			u.stamina = MaxStamina
			u.state = StateChase
		} else if u.AtHome() {
			u.state = StateIdle
		}
	}
}

// KickTo forwards a kick command to the current carrier.
func (m *Match) KickTo(x, y int) bool {
	c := m.ball.Carrier()
	if m.phase != PhasePlay || c == nil {
		return false
	}
	m.ball.KickTo(x, y, m.cfg.KickFlightTick)
	c.state = StateChase
	m.events.Add(m.tick, c.Name, c.Side.String(), "ball", "kick", fmt.Sprintf("→ (%d,%d)", x, y))
	return true
}

// Pause freezes the match in its current phase.
func (m *Match) Pause() {
	if m.phase == PhasePaused {
		return
	}
	m.pausedFrom = m.phase
	m.setPhase(PhasePaused)
}

// Resume undoes Pause, or starts the next quarter from a quarter break.
func (m *Match) Resume() bool {
	switch m.phase {
	case PhasePaused:
		m.setPhase(m.pausedFrom)
		return true
	case PhaseQuarterBreak:
		m.quarter++
		m.timeLeft = m.cfg.QuarterSeconds
		m.ball.Reset(m.grid)
		m.sendUnitsHome(true)
		m.events.Add(m.tick, "--", "--", "clock", "quarter_start", fmt.Sprintf("Q%d", m.quarter))
		m.setPhase(PhasePlay)
		return true
	default:
		return false
	}
}

func (m *Match) publish() Snapshot {
	s := m.Snapshot()
	for _, o := range m.observers {
		o.TickCompleted(s)
	}
	return s
}

// Snapshot copies the renderable state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     m.tick,
		Phase:    m.phase,
		Quarter:  m.quarter,
		TimeLeft: m.timeLeft,
		Score:    m.score,
		Units:    make([]UnitView, len(m.units)),
	}
	if len(m.quarters) > 0 {
		s.QuarterScores = append([][sideCount]SideScore(nil), m.quarters...)
	}
	for i, u := range m.units {
		s.Units[i] = UnitView{
			Name:    u.Name,
			Role:    u.Role,
			Side:    u.Side,
			X:       u.x,
			Y:       u.y,
			State:   u.state,
			Stamina: u.stamina,
			Band:    m.cfg.Fatigue.Band(u.stamina),
		}
	}
	b := m.ball
	s.Ball = BallView{Mode: b.Mode(), Status: b.Status(), Cell: b.Position()}
	if c := b.Carrier(); c != nil {
		s.Ball.Carrier = c.Name
	}
	if p, ok := b.Flight(); ok {
		s.Ball.FlightX, s.Ball.FlightY = p.X, p.Y
	}
	if m.lastScore != nil {
		e := *m.lastScore
		s.LastScore = &e
	}
	return s
}
