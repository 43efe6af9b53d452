package heatsim

import (
	"testing"
	"time"
)

func fakeClock(t *PhaseTimer, start time.Time) *time.Time {
	cur := start
	t.now = func() time.Time { return cur }
	t.last = cur
	return &cur
}

func TestPhaseTimer(t *testing.T) {
	pt := StartPhases()
	clock := fakeClock(pt, time.Unix(100, 0))

	*clock = clock.Add(1500 * time.Millisecond)
	if got := pt.Since(); got != 1500*time.Millisecond {
		t.Fatalf("Since = %v", got)
	}
	if got := pt.Lap("simulate"); got != 1500*time.Millisecond {
		t.Fatalf("simulate lap = %v", got)
	}
	*clock = clock.Add(20 * time.Millisecond)
	pt.Lap("")
	*clock = clock.Add(40 * time.Millisecond)
	if got := pt.Lap("export"); got != 40*time.Millisecond {
		t.Fatalf("export lap = %v", got)
	}

	phases := pt.Phases()
	if len(phases) != 2 || phases[0].Name != "simulate" || phases[1].Name != "export" {
		t.Fatalf("phases = %+v", phases)
	}
	if s := pt.String(); s != "simulate=1.5s export=40ms" {
		t.Fatalf("String = %q", s)
	}
}
