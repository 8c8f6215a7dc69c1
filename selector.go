package junction

import "github.com/samber/lo"

// NextLane applies the scheduling policy to the current queue state and
// returns the lane to serve next. The second result is false when no lane
// qualifies, which only happens in vehicle-actuated mode with zero demand.
func NextLane(mode Mode, waiting LaneCounts, last *Direction) (Direction, bool) {
	if mode == ModeFixedCycle {
		return nextFixedCycle(last), true
	}
	return nextActuated(waiting)
}

// nextFixedCycle walks the fixed service order N, E, S, W. A fresh cycle
// starts at North. Queue lengths are ignored entirely.
func nextFixedCycle(last *Direction) Direction {
	if last == nil {
		return North
	}
	return last.Next()
}

// nextActuated picks the lane with the most waiting vehicles. On equal
// counts the lane whose wire label sorts last wins: W over S, S over N,
// N over E.
func nextActuated(waiting LaneCounts) (Direction, bool) {
	best := lo.MaxBy(Order[:], func(a, b Direction) bool {
		if waiting[a] != waiting[b] {
			return waiting[a] > waiting[b]
		}
		return a.String() > b.String()
	})
	if waiting[best] == 0 {
		return 0, false
	}
	return best, true
}
