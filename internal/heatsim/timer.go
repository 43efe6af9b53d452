package heatsim

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed stretch of a run, like "simulate" or "export".
type Phase struct {
	Name string
	Took time.Duration
}

// PhaseTimer splits wall time into consecutive named phases.
type PhaseTimer struct {
	now    func() time.Time
	last   time.Time
	phases []Phase
}

// StartPhases returns a timer whose first phase begins now.
func StartPhases() *PhaseTimer {
	t := &PhaseTimer{now: time.Now}
	t.last = t.now()
	return t
}

// Lap closes the running phase under name, starts the next one and returns
// how long the closed phase took. An empty name is not recorded.
func (t *PhaseTimer) Lap(name string) time.Duration {
	now := t.now()
	took := now.Sub(t.last)
	t.last = now
	if name != "" {
		t.phases = append(t.phases, Phase{Name: name, Took: took})
	}
	return took
}

// Since returns the time spent in the running phase so far.
func (t *PhaseTimer) Since() time.Duration {
	return t.now().Sub(t.last)
}

// Phases returns the recorded phases in order.
func (t *PhaseTimer) Phases() []Phase { return t.phases }

// String lists the recorded phases, e.g. "simulate=1.2s export=40ms".
func (t *PhaseTimer) String() string {
	parts := make([]string, len(t.phases))
	for i, p := range t.phases {
		parts[i] = fmt.Sprintf("%s=%v", p.Name, p.Took.Round(time.Millisecond))
	}
	return strings.Join(parts, " ")
}
