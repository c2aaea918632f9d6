package pacer

import (
	"fmt"
	"sync"
	"time"

	"github.com/mvello/breathe/pkg/breath"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateActive
)

// String returns the display name for the state
func (s State) String() string {
	if s == StateActive {
		return "Active"
	}
	return "Idle"
}

// Summary captures the outcome of one finished session for display and for
// the history log.
type Summary struct {
	Config     breath.Config
	Durations  breath.Durations
	Adjustment *breath.Adjustment
	StartedAt  time.Time
	StoppedAt  time.Time
	Cycles     int   // completed full cycles
	Err        error // nil when stopped by the user
}

// Elapsed returns the session's wall-clock length.
func (s Summary) Elapsed() time.Duration {
	return s.StoppedAt.Sub(s.StartedAt)
}

// Session owns the running flag for one pacer instance and the config
// snapshot of the in-flight run. Start is Idle to Active only; Stop takes
// effect at the clock's next checkpoint, so at most one extra frame renders
// after a stop request. Config edits made while Active never touch the
// in-flight run; they apply to the next Start.
type Session struct {
	mu    sync.Mutex
	state State

	// Snapshot taken at Start.
	cfg        breath.Config
	durations  breath.Durations
	adjustment *breath.Adjustment
	startedAt  time.Time

	halt   *Halt
	clock  *Clock
	cycles int
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start validates and snapshots cfg, transitions Idle to Active, and
// prepares the clock. It is a no-op (with ok=false) when already Active.
// The returned adjustment, when non-nil, should be shown to the user.
func (s *Session) Start(cfg breath.Config) (adj *breath.Adjustment, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		return nil, false, nil
	}

	durations, adj, err := breath.Plan(cfg)
	if err != nil {
		return nil, false, fmt.Errorf("invalid breathing config: %w", err)
	}

	s.cfg = cfg
	s.durations = durations
	s.adjustment = adj
	s.startedAt = time.Now()
	s.cycles = 0
	s.halt = &Halt{}
	s.clock = NewClock(durations, s.halt, nil)
	s.clock.OnCycle(func() {
		s.mu.Lock()
		s.cycles++
		s.mu.Unlock()
	})
	s.state = StateActive
	return adj, true, nil
}

// Run drives the clock until stopped or until emit fails, then transitions
// back to Idle and returns the session summary. It blocks; callers that
// need a live UI run it on its own goroutine. Calling Run on an idle
// session returns an error.
func (s *Session) Run(emit EmitFunc) (Summary, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return Summary{}, fmt.Errorf("session is not active")
	}
	clock := s.clock
	clock.emit = emit
	s.mu.Unlock()

	runErr := clock.Run()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	return Summary{
		Config:     s.cfg,
		Durations:  s.durations,
		Adjustment: s.adjustment,
		StartedAt:  s.startedAt,
		StoppedAt:  time.Now(),
		Cycles:     s.cycles,
		Err:        runErr,
	}, runErr
}

// Stop requests cancellation. Safe to call from any goroutine and in any
// state; the active clock notices at its next checkpoint.
func (s *Session) Stop() {
	s.mu.Lock()
	halt := s.halt
	s.mu.Unlock()
	if halt != nil {
		halt.Set()
	}
}

// Durations returns the phase durations of the current or most recent run.
func (s *Session) Durations() breath.Durations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.durations
}
