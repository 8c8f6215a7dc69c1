package junction

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action is a discrete control operation on a simulation session
type Action string

const (
	// ActionStart arms the engine and reloads the waiting queues from the
	// configured counts
	ActionStart Action = "start"
	// ActionPause stops the engine in place; all other state is preserved
	ActionPause Action = "pause"
	// ActionReset clears queues, counters and timers and stops the engine
	ActionReset Action = "reset"
)

// ParseAction converts a wire value into an Action
func ParseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionStart, ActionPause, ActionReset:
		return Action(value), nil
	default:
		return "", NewInvalidActionError(value)
	}
}

// Controller owns one intersection simulation session. It advances the
// phase state machine one step per Tick, releases queued vehicles from the
// active lane, and applies control and configuration operations between
// steps. All methods are safe for concurrent use; mutation is serialized
// by a single write lock and reads observe consistent snapshots.
type Controller struct {
	id        string
	mutex     sync.RWMutex
	cfg       Config
	clock     Clock
	state     *intersectionState
	observers *ObserverManager
	sinks     []LogSink
}

// NewController creates a controller with the given configuration. The
// session starts idle and not running.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		id:        uuid.New().String(),
		cfg:       cfg,
		clock:     SystemClock{},
		state:     newIntersectionState(),
		observers: NewObserverManager(),
	}, nil
}

// ID returns the session identifier
func (c *Controller) ID() string {
	return c.id
}

// AddObserver registers an observer for controller notifications
func (c *Controller) AddObserver(observer Observer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.observers.Add(observer)
}

// RemoveObserver unregisters a previously added observer
func (c *Controller) RemoveObserver(observer Observer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.observers.Remove(observer)
}

// AddLogSink registers a sink for human-readable transition notices
func (c *Controller) AddLogSink(sink LogSink) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.sinks = append(c.sinks, sink)
}

// Status returns a consistent snapshot without advancing the simulation
func (c *Controller) Status() Snapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.state.snapshot(c.id, c.cfg)
}

// Config returns the active configuration
func (c *Controller) Config() Config {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cfg
}

// Step advances the simulation by one tick at the injected clock's time
func (c *Controller) Step() Snapshot {
	return c.Tick(c.clock.Now())
}

// Tick advances the simulation by one step at time now. A paused or
// unstarted session is left untouched. Within one step the phase blocks
// are evaluated in fixed order (green, yellow, idle), so a step may carry
// the machine through more than one transition, but lane selection is
// deferred to the next step when the same step has just cleared the
// current lane.
func (c *Controller) Tick(now time.Time) Snapshot {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	st := c.state
	if !st.Running {
		return st.snapshot(c.id, c.cfg)
	}

	var dt time.Duration
	if !st.LastTick.IsZero() {
		dt = now.Sub(st.LastTick)
	}
	st.LastTick = now

	if st.Phase == PhaseGreen && st.CurrentLane != nil {
		lane := *st.CurrentLane
		c.releaseVehicle(lane, now)
		switch c.cfg.Mode {
		case ModeVehicleActuated:
			if st.Waiting[lane] == 0 {
				c.beginYellow(lane, fmt.Sprintf("Cleared %s, Yellow.", lane))
			}
		case ModeFixedCycle:
			st.GreenElapsed += dt
			if st.GreenElapsed > c.cfg.GreenTime {
				c.beginYellow(lane, fmt.Sprintf("Green time up for %s.", lane))
			}
		}
	}

	clearedThisStep := false
	if st.Phase == PhaseYellow {
		st.YellowElapsed += dt
		if st.YellowElapsed >= c.cfg.YellowTime {
			lane := st.CurrentLane
			st.Phase = PhaseIdle
			st.CurrentLane = nil
			clearedThisStep = true
			c.observers.notifyPhaseChange(PhaseYellow, PhaseIdle, lane)
		}
	}

	if st.Phase == PhaseIdle && !clearedThisStep {
		c.selectLane(now)
	}

	// The release indicator is transient and never survives a step
	st.VehicleMoving = 0
	return st.snapshot(c.id, c.cfg)
}

// releaseVehicle releases at most one vehicle from the active lane. There
// is no batch catch-up for large deltas.
func (c *Controller) releaseVehicle(lane Direction, now time.Time) {
	st := c.state
	if st.Waiting[lane] > 0 && now.Sub(st.LastRelease) >= c.cfg.ReleaseInterval {
		st.Waiting[lane]--
		st.Served++
		st.VehicleMoving++
		st.LastRelease = now
		c.observers.notifyVehicleReleased(lane, st.Served)
	}
}

// beginYellow moves the active lane from green to yellow
func (c *Controller) beginYellow(lane Direction, notice string) {
	st := c.state
	st.Phase = PhaseYellow
	st.YellowElapsed = 0
	c.observers.notifyPhaseChange(PhaseGreen, PhaseYellow, &lane)
	c.emit(notice)
}

// selectLane consults the scheduling policy and, if a lane qualifies,
// grants it green
func (c *Controller) selectLane(now time.Time) {
	st := c.state
	lane, ok := NextLane(c.cfg.Mode, st.Waiting, st.LastLane)
	if !ok {
		return
	}
	current, last := lane, lane
	st.CurrentLane = &current
	st.LastLane = &last
	st.Phase = PhaseGreen
	st.GreenElapsed = 0
	st.LastRelease = now
	c.observers.notifyPhaseChange(PhaseIdle, PhaseGreen, &current)
	c.observers.notifyLaneStart(lane, c.cfg.Mode)
	if c.cfg.Mode == ModeVehicleActuated {
		c.emit(fmt.Sprintf("Green %s started (vehicle-based).", lane))
	} else {
		c.emit(fmt.Sprintf("Green %s started.", lane))
	}
}

// Control applies a start, pause or reset action
func (c *Controller) Control(action Action) (Snapshot, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	st := c.state
	switch action {
	case ActionStart:
		st.Waiting = st.Counts.Clone()
		st.Served = 0
		st.VehicleMoving = 0
		st.Phase = PhaseIdle
		st.CurrentLane = nil
		st.LastLane = nil
		st.GreenElapsed = 0
		st.YellowElapsed = 0
		st.LastRelease = time.Time{}
		st.LastTick = time.Time{}
		st.Running = true
		c.emit("Simulation started")
	case ActionPause:
		st.Running = false
		c.emit("Simulation paused")
	case ActionReset:
		st.Counts = NewLaneCounts()
		st.Waiting = NewLaneCounts()
		st.Served = 0
		st.VehicleMoving = 0
		st.Phase = PhaseIdle
		st.CurrentLane = nil
		st.LastLane = nil
		st.GreenElapsed = 0
		st.YellowElapsed = 0
		st.LastRelease = time.Time{}
		st.LastTick = time.Time{}
		st.Running = false
		c.emit("System reset")
	default:
		return st.snapshot(c.id, c.cfg), NewInvalidActionError(string(action))
	}
	c.observers.notifyControl(action)
	return st.snapshot(c.id, c.cfg), nil
}

// SetCounts updates the per-direction queue presets. Negative values are
// skipped per direction without failing the rest. Counts are frozen while
// the simulation is running; updates apply only between runs, and then
// also reload the waiting queues.
func (c *Controller) SetCounts(counts map[Direction]int) Snapshot {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	st := c.state
	if st.Running {
		return st.snapshot(c.id, c.cfg)
	}
	for d, n := range counts {
		if d < 0 || d >= NumDirections || n < 0 {
			continue
		}
		st.Counts[d] = n
		st.Waiting[d] = n
	}
	return st.snapshot(c.id, c.cfg)
}

// Preset replaces all four queue presets at once, in service order N, E,
// S, W. Negative entries are clamped to zero. Like SetCounts it is a
// no-op while running.
func (c *Controller) Preset(values [NumDirections]int) Snapshot {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	st := c.state
	if st.Running {
		return st.snapshot(c.id, c.cfg)
	}
	for i, d := range Order {
		n := values[i]
		if n < 0 {
			n = 0
		}
		st.Counts[d] = n
		st.Waiting[d] = n
	}
	return st.snapshot(c.id, c.cfg)
}

// SetConfig merges a partial timing update. Non-positive durations are
// rejected before anything is applied; a zero release interval would
// otherwise release without pacing and a zero green time would flap the
// phase immediately.
func (c *Controller) SetConfig(update ConfigUpdate) (Snapshot, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := update.apply(&c.cfg); err != nil {
		return c.state.snapshot(c.id, c.cfg), err
	}
	return c.state.snapshot(c.id, c.cfg), nil
}

// SetMode switches the scheduling policy. Allowed at any time; a running
// session picks up the new policy on its next lane selection.
func (c *Controller) SetMode(mode Mode) (Snapshot, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, err := ParseMode(string(mode)); err != nil {
		return c.state.snapshot(c.id, c.cfg), err
	}
	c.cfg.Mode = mode
	c.emit(fmt.Sprintf("Switched mode to %s", mode))
	return c.state.snapshot(c.id, c.cfg), nil
}

// emit pushes a transition notice to every registered sink
func (c *Controller) emit(message string) {
	for _, sink := range c.sinks {
		sink(message)
	}
}
