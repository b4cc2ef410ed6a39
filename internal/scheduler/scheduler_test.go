package scheduler

import (
	"testing"
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
)

func TestClassAIntervalTable(t *testing.T) {
	cases := []struct {
		status   ais.NavStatus
		sog      float64
		changing bool
		want     time.Duration
	}{
		{ais.NavAtAnchor, 1, false, 3 * time.Minute},
		{ais.NavMoored, 5, false, 10 * time.Second},
		{ais.NavUnderwayEngine, 5, false, 10 * time.Second},
		{ais.NavUnderwayEngine, 20, false, 6 * time.Second},
		{ais.NavUnderwayEngine, 20, true, 3333333333},
		{ais.NavUnderwayEngine, 25, false, 2 * time.Second},
	}
	for _, tc := range cases {
		got := ClassAInterval(tc.status, tc.sog, tc.changing)
		if got != tc.want {
			t.Errorf("ClassAInterval(%v, %v, %v) = %v, want %v", tc.status, tc.sog, tc.changing, got, tc.want)
		}
	}
}

func TestClassBIntervalTable(t *testing.T) {
	if got := ClassBInterval(1); got != 30*time.Second {
		t.Errorf("ClassBInterval(1) = %v, want 30s", got)
	}
	if got := ClassBInterval(5); got != 3*time.Second {
		t.Errorf("ClassBInterval(5) = %v, want 3s", got)
	}
}

type fakeEntity struct {
	id       uint32
	classes  []MessageClass
	interval time.Duration
}

func (f fakeEntity) SchedulerID() uint32        { return f.id }
func (f fakeEntity) Classes() []MessageClass    { return f.classes }
func (f fakeEntity) Interval(MessageClass) time.Duration { return f.interval }

func TestSchedulerFiresImmediatelyOnFirstDue(t *testing.T) {
	s := New()
	e := fakeEntity{id: 1, classes: []MessageClass{ClassPositionReport}, interval: 10 * time.Second}
	now := time.Unix(0, 0)
	due := s.Due(now, []Entity{e})
	if len(due) != 1 {
		t.Fatalf("expected 1 due entry on first call, got %d", len(due))
	}
}

func TestSchedulerHonorsInterval(t *testing.T) {
	s := New()
	e := fakeEntity{id: 1, classes: []MessageClass{ClassPositionReport}, interval: 10 * time.Second}
	now := time.Unix(0, 0)
	s.Due(now, []Entity{e})

	due := s.Due(now.Add(5*time.Second), []Entity{e})
	if len(due) != 0 {
		t.Fatalf("expected no due entries before interval elapses, got %d", len(due))
	}

	due = s.Due(now.Add(10*time.Second), []Entity{e})
	if len(due) != 1 {
		t.Fatalf("expected 1 due entry once interval elapses, got %d", len(due))
	}
}

func TestSchedulerNoCatchUpBurst(t *testing.T) {
	s := New()
	e := fakeEntity{id: 1, classes: []MessageClass{ClassPositionReport}, interval: 10 * time.Second}
	now := time.Unix(0, 0)
	s.Due(now, []Entity{e})

	// Skip ahead by 10 intervals -- should yield exactly one due entry,
	// not ten.
	due := s.Due(now.Add(100*time.Second), []Entity{e})
	if len(due) != 1 {
		t.Fatalf("expected exactly 1 due entry (no catch-up burst), got %d", len(due))
	}

	// The next-due time should now be anchored to the late tick, not
	// to a backlog of missed intervals.
	due = s.Due(now.Add(105*time.Second), []Entity{e})
	if len(due) != 0 {
		t.Fatalf("expected no due entry 5s after the late tick, got %d", len(due))
	}
}

func TestSchedulerResetClearsState(t *testing.T) {
	s := New()
	e := fakeEntity{id: 1, classes: []MessageClass{ClassPositionReport}, interval: 10 * time.Second}
	now := time.Unix(0, 0)
	s.Due(now, []Entity{e})
	s.Reset()
	due := s.Due(now.Add(1*time.Second), []Entity{e})
	if len(due) != 1 {
		t.Fatalf("expected fresh entity to fire immediately after Reset, got %d entries", len(due))
	}
}
