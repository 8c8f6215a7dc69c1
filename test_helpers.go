package junction

import (
	"sync"
	"testing"
	"time"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex        sync.RWMutex
	PhaseChanges []PhaseChangeEvent
	LaneStarts   []LaneStartEvent
	Releases     []ReleaseEvent
	Controls     []Action
}

type PhaseChangeEvent struct {
	From Phase
	To   Phase
	Lane *Direction
}

type LaneStartEvent struct {
	Lane Direction
	Mode Mode
}

type ReleaseEvent struct {
	Lane   Direction
	Served int
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		PhaseChanges: make([]PhaseChangeEvent, 0),
		LaneStarts:   make([]LaneStartEvent, 0),
		Releases:     make([]ReleaseEvent, 0),
		Controls:     make([]Action, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnPhaseChange(from Phase, to Phase, lane *Direction) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = append(o.PhaseChanges, PhaseChangeEvent{From: from, To: to, Lane: lane})
}

func (o *TestObserver) OnLaneStart(lane Direction, mode Mode) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.LaneStarts = append(o.LaneStarts, LaneStartEvent{Lane: lane, Mode: mode})
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnVehicleReleased(lane Direction, served int) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Releases = append(o.Releases, ReleaseEvent{Lane: lane, Served: served})
}

func (o *TestObserver) OnControl(action Action) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Controls = append(o.Controls, action)
}

// Reset clears all captured events
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = o.PhaseChanges[:0]
	o.LaneStarts = o.LaneStarts[:0]
	o.Releases = o.Releases[:0]
	o.Controls = o.Controls[:0]
}

// LaneStartOrder returns the sequence of lanes granted green so far
func (o *TestObserver) LaneStartOrder() []Direction {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	lanes := make([]Direction, 0, len(o.LaneStarts))
	for _, e := range o.LaneStarts {
		lanes = append(lanes, e.Lane)
	}
	return lanes
}

// testStart is the base instant for deterministic clock-driven tests
var testStart = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// CreateTestController builds a controller on a manual clock with fast
// timings suitable for deterministic stepping
func CreateTestController(t *testing.T, mode Mode) (*Controller, *ManualClock) {
	t.Helper()
	clock := NewManualClock(testStart)
	controller, err := NewBuilder().
		Mode(mode).
		GreenTime(2 * time.Second).
		YellowTime(1 * time.Second).
		ReleaseInterval(100 * time.Millisecond).
		WithClock(clock).
		Build()
	if err != nil {
		t.Fatalf("Expected no error building controller, got: %v", err)
	}
	return controller, clock
}

// AssertPhase fails the test if the snapshot is not in the expected phase
func AssertPhase(t *testing.T, snap Snapshot, expected Phase) {
	t.Helper()
	if snap.Phase != expected {
		t.Errorf("Expected phase %s, got %s", expected, snap.Phase)
	}
}

// AssertCurrentLane fails the test if the snapshot's active lane differs
// from expected; pass nil to assert no lane is active
func AssertCurrentLane(t *testing.T, snap Snapshot, expected *Direction) {
	t.Helper()
	switch {
	case expected == nil && snap.CurrentLane != nil:
		t.Errorf("Expected no current lane, got %s", *snap.CurrentLane)
	case expected != nil && snap.CurrentLane == nil:
		t.Errorf("Expected current lane %s, got none", *expected)
	case expected != nil && snap.CurrentLane != nil && *snap.CurrentLane != *expected:
		t.Errorf("Expected current lane %s, got %s", *expected, *snap.CurrentLane)
	}
}

// AssertWaiting fails the test if a lane's waiting count differs from expected
func AssertWaiting(t *testing.T, snap Snapshot, lane Direction, expected int) {
	t.Helper()
	if snap.Waiting[lane] != expected {
		t.Errorf("Expected %d waiting on %s, got %d", expected, lane, snap.Waiting[lane])
	}
}

// lanePtr returns a pointer to a copy of d, for optional-lane arguments
func lanePtr(d Direction) *Direction {
	return &d
}
