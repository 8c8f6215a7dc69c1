package httpapi

import (
	"time"

	"github.com/anggasct/junction"
)

// StatePayload is the wire form of a controller snapshot. Durations travel
// as fractional seconds and lanes as their single-letter labels, null when
// no lane is active.
type StatePayload struct {
	ID              string         `json:"id"`
	Mode            string         `json:"mode"`
	Counts          map[string]int `json:"counts"`
	Waiting         map[string]int `json:"waiting"`
	Served          int            `json:"served"`
	CurrentLane     *string        `json:"current_lane"`
	LastLane        *string        `json:"last_lane"`
	Phase           string         `json:"phase"`
	GreenTime       float64        `json:"green_time"`
	YellowTime      float64        `json:"yellow_time"`
	ReleaseInterval float64        `json:"release_interval"`
	GreenElapsed    float64        `json:"green_elapsed"`
	YellowElapsed   float64        `json:"yellow_elapsed"`
	LastRelease     float64        `json:"last_release"`
	LastTick        float64        `json:"last_tick"`
	VehicleMoving   int            `json:"vehicle_moving"`
	Running         bool           `json:"running"`
	Logs            []string       `json:"logs"`
}

func statePayload(snap junction.Snapshot, logs []string) StatePayload {
	return StatePayload{
		ID:              snap.ID,
		Mode:            string(snap.Mode),
		Counts:          laneMap(snap.Counts),
		Waiting:         laneMap(snap.Waiting),
		Served:          snap.Served,
		CurrentLane:     laneLabel(snap.CurrentLane),
		LastLane:        laneLabel(snap.LastLane),
		Phase:           string(snap.Phase),
		GreenTime:       snap.GreenTime.Seconds(),
		YellowTime:      snap.YellowTime.Seconds(),
		ReleaseInterval: snap.ReleaseInterval.Seconds(),
		GreenElapsed:    snap.GreenElapsed.Seconds(),
		YellowElapsed:   snap.YellowElapsed.Seconds(),
		LastRelease:     unixSeconds(snap.LastRelease),
		LastTick:        unixSeconds(snap.LastTick),
		VehicleMoving:   snap.VehicleMoving,
		Running:         snap.Running,
		Logs:            logs,
	}
}

func laneMap(counts junction.LaneCounts) map[string]int {
	m := make(map[string]int, junction.NumDirections)
	for _, d := range junction.Order {
		m[d.String()] = counts[d]
	}
	return m
}

func laneLabel(lane *junction.Direction) *string {
	if lane == nil {
		return nil
	}
	label := lane.String()
	return &label
}

func unixSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}
