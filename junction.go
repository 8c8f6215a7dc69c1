// Package junction models a single four-way traffic intersection and
// decides, tick by tick, which approach receives right-of-way, for how
// long, and how its queued vehicles are released.
//
// The Controller is the entry point. It runs a three-phase signal machine
// (idle, green, yellow) over four approaches, in one of two scheduling
// modes: vehicle-actuated, where queue lengths drive both lane selection
// and green duration, and fixed-cycle, a timer-driven round robin that
// ignores demand. Time is supplied by the caller (or an injected Clock),
// never read internally, so runs are fully deterministic under test.
//
// Building a controller:
//
//	controller, err := junction.NewBuilder().
//		Mode(junction.ModeVehicleActuated).
//		ReleaseInterval(600 * time.Millisecond).
//		Build()
//
// The caller drives the simulation by invoking Tick with the current
// time; control actions, queue presets and timing changes are applied
// between ticks. pkg/httpapi exposes the same operations over JSON.
package junction
