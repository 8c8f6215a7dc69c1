package junction

import (
	"time"

	"github.com/tiendc/go-deepcopy"
)

// intersectionState is the mutable record of one simulation session. All
// access goes through the Controller, which serializes mutation.
type intersectionState struct {
	Counts        LaneCounts
	Waiting       LaneCounts
	Served        int
	Phase         Phase
	CurrentLane   *Direction
	LastLane      *Direction
	GreenElapsed  time.Duration
	YellowElapsed time.Duration
	LastRelease   time.Time
	LastTick      time.Time
	VehicleMoving int
	Running       bool
}

func newIntersectionState() *intersectionState {
	return &intersectionState{
		Counts:  NewLaneCounts(),
		Waiting: NewLaneCounts(),
		Phase:   PhaseIdle,
	}
}

// Snapshot is a consistent, caller-owned view of the intersection. Maps and
// lane pointers are deep copies; mutating a Snapshot never touches the live
// session.
type Snapshot struct {
	ID              string
	Mode            Mode
	Counts          LaneCounts
	Waiting         LaneCounts
	Served          int
	Phase           Phase
	CurrentLane     *Direction
	LastLane        *Direction
	GreenTime       time.Duration
	YellowTime      time.Duration
	ReleaseInterval time.Duration
	GreenElapsed    time.Duration
	YellowElapsed   time.Duration
	LastRelease     time.Time
	LastTick        time.Time
	VehicleMoving   int
	Running         bool
}

// snapshot deep-copies the session state into a caller-owned Snapshot
func (st *intersectionState) snapshot(id string, cfg Config) Snapshot {
	var snap Snapshot
	if err := deepcopy.Copy(&snap, st); err != nil {
		panic(err)
	}
	snap.ID = id
	snap.Mode = cfg.Mode
	snap.GreenTime = cfg.GreenTime
	snap.YellowTime = cfg.YellowTime
	snap.ReleaseInterval = cfg.ReleaseInterval
	return snap
}
