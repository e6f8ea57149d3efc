// Package session is the interactive host's view of one proposal: the client
// fields, the selection state and the control limits the host enforces
// before values reach the core.
package session

import (
	"fmt"
	"time"

	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/proposal/formatter"
	"proposal-workers/internal/proposal/selection"
	"proposal-workers/internal/proposal/snapshot"
)

// Limits bounds the contingency control.
type Limits struct {
	Min  int
	Max  int
	Step int
}

// DefaultLimits is 0..30 in steps of 5.
var DefaultLimits = Limits{Min: 0, Max: 30, Step: 5}

// Validate checks that the limits describe a usable range.
func (l Limits) Validate() error {
	if l.Min < 0 {
		return fmt.Errorf("contingency min must not be negative, got %d", l.Min)
	}
	if l.Max < l.Min {
		return fmt.Errorf("contingency max %d is below min %d", l.Max, l.Min)
	}
	if l.Step <= 0 {
		return fmt.Errorf("contingency step must be positive, got %d", l.Step)
	}
	return nil
}

// Clamp bounds n to [Min, Max] and snaps it to the nearest step above Min.
func (l Limits) Clamp(n int) int {
	if n <= l.Min {
		return l.Min
	}
	if n >= l.Max {
		return l.Max
	}
	if l.Step > 1 {
		off := n - l.Min
		off = (off + l.Step/2) / l.Step * l.Step
		n = l.Min + off
		if n > l.Max {
			n = l.Max
		}
	}
	return n
}

type Session struct {
	state  *selection.State
	client snapshot.Client
	limits Limits
	fmt    *formatter.Formatter
	now    func() time.Time

	// starting controls, reapplied by Reset; zero values keep the starter selection's own
	startApproach    catalog.Approach
	startContingency *int
}

type Option func(*Session)

// WithLimits overrides the contingency limits.
func WithLimits(l Limits) Option {
	return func(s *Session) { s.limits = l }
}

// WithStart sets the approach and contingency a new or reset session begins with.
func WithStart(approach catalog.Approach, contingency int) Option {
	return func(s *Session) {
		s.startApproach = approach
		s.startContingency = &contingency
	}
}

// WithClock overrides the time source used for snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session on the starter selection.
func New(cat *catalog.Catalog, f *formatter.Formatter, opts ...Option) *Session {
	s := &Session{
		state:  selection.NewDefault(cat),
		limits: DefaultLimits,
		fmt:    f,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyStart()
	return s
}

func (s *Session) applyStart() {
	if s.startApproach.Valid() {
		s.state.SetApproach(s.startApproach)
	}
	pct := s.state.ContingencyPercentage()
	if s.startContingency != nil {
		pct = *s.startContingency
	}
	s.state.SetContingencyPercentage(s.limits.Clamp(pct))
}

func (s *Session) State() *selection.State { return s.state }

func (s *Session) Client() snapshot.Client { return s.client }

func (s *Session) Limits() Limits { return s.limits }

func (s *Session) Formatter() *formatter.Formatter { return s.fmt }

func (s *Session) SetClientName(v string) { s.client.Name = v }

func (s *Session) SetRestaurantName(v string) { s.client.Restaurant = v }

func (s *Session) SetClientEmail(v string) { s.client.Email = v }

// SetContingency clamps n to the session limits and returns the stored value.
func (s *Session) SetContingency(n int) int {
	v := s.limits.Clamp(n)
	s.state.SetContingencyPercentage(v)
	return v
}

// Totals recomputes from the current state.
func (s *Session) Totals() aggregator.Totals {
	return s.state.Totals()
}

// RushPreview returns the estimated weeks the current selection would take
// with the rush flag flipped on.
func (s *Session) RushPreview() int {
	t := s.state.Totals()
	return aggregator.EstimatedWeeks(aggregator.EffortDays(t.RawEffortDays, true))
}

// Snapshot captures the session for export.
func (s *Session) Snapshot() snapshot.Snapshot {
	return snapshot.Take(s.state, s.client, s.fmt, s.now())
}

// Reset returns to the starter selection and clears the client fields.
func (s *Session) Reset() {
	s.state = selection.NewDefault(s.state.Catalog())
	s.applyStart()
	s.client = snapshot.Client{}
}
