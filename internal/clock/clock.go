// Package clock provides the process-wide controllable notion of "now".
// Every component reads the current instant through a Source instead of
// calling time.Now directly, so simulated time ("time travel") needs no
// special-casing anywhere else.
package clock

import (
	"sync"
	"time"
)

// Source yields the current instant. Tests and the classifier depend on this
// interface rather than on the concrete Clock so they can inject
// deterministic time.
type Source interface {
	Now() time.Time
}

// SystemSource is a Source backed directly by the real system clock.
type SystemSource struct{}

// Now returns the real wall-clock time.
func (SystemSource) Now() time.Time {
	return time.Now()
}

// State is a snapshot of the clock's simulation controls, safe to hand to
// the API layer.
type State struct {
	Now              time.Time
	Offset           time.Duration
	Paused           bool
	TimezoneOverride string
	SimulationActive bool
}

// Clock is the single substitution point for simulated time: a signed offset
// on the real clock, an optional frozen instant, and an auxiliary display
// timezone override. All operations are total; the mutex makes concurrent
// control mutations and Now reads safe.
type Clock struct {
	mu         sync.Mutex
	offset     time.Duration
	paused     bool
	frozenAt   time.Time
	tzOverride string
}

// New returns a Clock in the "no simulation" state: real time, not paused,
// no timezone override.
func New() *Clock {
	return &Clock{}
}

// Now returns the frozen instant while paused, otherwise the real clock plus
// the current offset.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return c.frozenAt
	}
	return time.Now().Add(c.offset)
}

// SetInstant adjusts the offset so that Now immediately equals target. If
// the clock is paused the frozen instant moves to target as well, so
// scrubbing while paused keeps the clock paused at the new point.
func (c *Clock) SetInstant(target time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = target.Sub(time.Now())
	if c.paused {
		c.frozenAt = target
	}
}

// Freeze captures the current instant and enters the paused state.
// Idempotent: freezing a paused clock leaves it untouched.
func (c *Clock) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.frozenAt = time.Now().Add(c.offset)
	c.paused = true
}

// Unfreeze recomputes the offset so that Now continues from the frozen
// instant forward in real time, then exits the paused state. Idempotent.
func (c *Clock) Unfreeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.offset = c.frozenAt.Sub(time.Now())
	c.paused = false
}

// Reset clears offset, pause, and timezone override, returning to
// unmodified real time.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = 0
	c.paused = false
	c.frozenAt = time.Time{}
	c.tzOverride = ""
}

// SetTimezoneOverride sets the display-timezone hint. Empty string means
// "use the viewer's platform-detected timezone". The override is orthogonal
// to the instant itself.
func (c *Clock) SetTimezoneOverride(tz string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tzOverride = tz
}

// TimezoneOverride returns the current display-timezone hint, or "".
func (c *Clock) TimezoneOverride() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tzOverride
}

// SimulationActive reports whether any simulation control is engaged:
// a non-zero offset, a paused clock, or a timezone override.
func (c *Clock) SimulationActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset != 0 || c.paused || c.tzOverride != ""
}

// Snapshot returns a consistent view of the clock's state for the control
// API.
func (c *Clock) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.frozenAt
	if !c.paused {
		now = time.Now().Add(c.offset)
	}
	return State{
		Now:              now,
		Offset:           c.offset,
		Paused:           c.paused,
		TimezoneOverride: c.tzOverride,
		SimulationActive: c.offset != 0 || c.paused || c.tzOverride != "",
	}
}
