// Package pacer drives the breathing animation: a cooperative timed loop
// that walks progress through each phase of the cycle and a session
// controller that owns start/stop state around it.
package pacer

import (
	"sync/atomic"
	"time"

	"github.com/mvello/breathe/pkg/breath"
)

// Steps is the number of animation increments per inhale or exhale, so each
// ramp emits Steps+1 frames covering progress 0 through 1 inclusive.
const Steps = 20

// holdPoll bounds how long a hold phase can outlive a stop request.
const holdPoll = 100 * time.Millisecond

// EmitFunc delivers one frame to the display surface. Returning an error
// aborts the run; the error surfaces from Clock.Run.
type EmitFunc func(breath.Frame) error

// Halt is the cancellation handle shared between the session controller and
// its clock. The controller is the only writer; the clock polls it at every
// checkpoint. Staleness of up to one sleep interval is acceptable, so no
// further synchronization is needed.
type Halt struct {
	flag atomic.Bool
}

// Set requests cancellation. The clock stops at its next checkpoint.
func (h *Halt) Set() { h.flag.Store(true) }

// Halted reports whether cancellation has been requested.
func (h *Halt) Halted() bool { return h.flag.Load() }

// Clock produces the frame sequence for repeated breath cycles, sleeping
// between emissions so that each phase spans its configured duration.
// Timing is best effort: sleeps are lower bounds, so a loaded system runs
// slightly slow, never fast.
type Clock struct {
	durations breath.Durations
	halt      *Halt
	emit      EmitFunc

	// onCycle, when set, is called after each completed cycle.
	onCycle func()

	// Injectable for tests; real runs use time.Sleep and time.Now.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewClock creates a clock for the given phase durations. The halt handle
// must not be nil; emit is called once per frame.
func NewClock(d breath.Durations, halt *Halt, emit EmitFunc) *Clock {
	return &Clock{
		durations: d,
		halt:      halt,
		emit:      emit,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// OnCycle registers a callback invoked after every completed cycle.
func (c *Clock) OnCycle(fn func()) { c.onCycle = fn }

// Run loops breath cycles until the halt flag is set or emit returns an
// error. A halted run returns nil; an emit failure returns that error.
func (c *Clock) Run() error {
	for {
		halted, err := c.Cycle()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
		if c.onCycle != nil {
			c.onCycle()
		}
	}
}

// Cycle runs exactly one inhale / hold / exhale sequence. It reports
// whether the run was halted; a halt mid-phase skips all later phases.
func (c *Clock) Cycle() (bool, error) {
	halted, err := c.ramp(breath.PhaseInhale, c.durations.Inhale, false)
	if halted || err != nil {
		return halted, err
	}

	if c.durations.Hold > 0 {
		halted, err = c.holdPhase()
		if halted || err != nil {
			return halted, err
		}
	}

	return c.ramp(breath.PhaseExhale, c.durations.Exhale, true)
}

// ramp emits Steps+1 frames walking progress across [0,1], ascending for
// inhale and descending for exhale. The halt flag is checked before every
// emission and again after every sleep.
func (c *Clock) ramp(phase breath.Phase, seconds float64, descending bool) (bool, error) {
	pause := time.Duration(seconds / Steps * float64(time.Second))
	for i := 0; i <= Steps; i++ {
		if c.halt.Halted() {
			return true, nil
		}
		progress := float64(i) / Steps
		if descending {
			progress = 1 - progress
		}
		if err := c.emit(breath.Frame{Progress: progress, Phase: phase}); err != nil {
			return false, err
		}
		c.sleep(pause)
		if c.halt.Halted() {
			return true, nil
		}
	}
	return false, nil
}

// holdPhase waits out the hold duration in short polling slices. The lungs
// stay full, so a single frame announces the phase and no progress frames
// follow; the flag is checked every slice.
func (c *Clock) holdPhase() (bool, error) {
	if err := c.emit(breath.Frame{Progress: 1, Phase: breath.PhaseHold}); err != nil {
		return false, err
	}
	deadline := time.Duration(c.durations.Hold * float64(time.Second))
	start := c.now()
	for c.now().Sub(start) < deadline {
		if c.halt.Halted() {
			return true, nil
		}
		c.sleep(holdPoll)
	}
	return false, nil
}
