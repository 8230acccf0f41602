package game

// FollowUpKind names a delayed phase action raised after a score.
type FollowUpKind int

const (
	FollowUpKickout FollowUpKind = iota // BeginKickout after a behind
	FollowUpReset                       // CompleteReset after a goal
)

func (k FollowUpKind) String() string {
	switch k {
	case FollowUpKickout:
		return "kickout"
	case FollowUpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// FollowUp asks the driver to fire Kind after AfterTicks host ticks.
type FollowUp struct {
	Kind       FollowUpKind
	AfterTicks int
}

type scheduled struct {
	kind      FollowUpKind
	remaining int
}

// Schedule counts pending follow-ups down in host-loop ticks. It carries no
// wall-clock state: a driver that changes speed keeps the same entries, and
// a paused driver simply stops calling Advance.
type Schedule struct {
	pending []scheduled
}

// Add queues a follow-up.
func (s *Schedule) Add(f FollowUp) {
	s.pending = append(s.pending, scheduled{kind: f.Kind, remaining: f.AfterTicks})
}

// Advance counts one host tick and returns the kinds that fell due, in the
// order they were added.
func (s *Schedule) Advance() []FollowUpKind {
	var due []FollowUpKind
	kept := s.pending[:0]
	for _, e := range s.pending {
		e.remaining--
		if e.remaining <= 0 {
			due = append(due, e.kind)
			continue
		}
		kept = append(kept, e)
	}
	s.pending = kept
	return due
}

// Cancel drops every pending entry of kind and reports how many were removed.
func (s *Schedule) Cancel(kind FollowUpKind) int {
	n := 0
	kept := s.pending[:0]
	for _, e := range s.pending {
		if e.kind == kind {
			n++
			continue
		}
		kept = append(kept, e)
	}
	s.pending = kept
	return n
}

// Pump runs the per-host-tick bookkeeping after a Match.Tick: due entries
// fire, then any follow-ups the tick raised are queued. It returns the kinds
// that fired. A paused match holds its schedule.
func (s *Schedule) Pump(m *Match) []FollowUpKind {
	if m.Phase() == PhasePaused {
		return nil
	}
	due := s.Advance()
	for _, k := range due {
		m.Fire(k)
	}
	for _, f := range m.TakeFollowUps() {
		s.Add(f)
	}
	return due
}

// Len returns the number of pending entries.
func (s *Schedule) Len() int {
	return len(s.pending)
}
