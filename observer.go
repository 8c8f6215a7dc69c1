package junction

// Observer represents an entity that observes controller lifecycle
type Observer interface {
	// OnPhaseChange is called when the signal phase changes. lane is the
	// lane the change concerns, or nil for transitions out of service.
	OnPhaseChange(from Phase, to Phase, lane *Direction)

	// OnLaneStart is called when a lane is granted green
	OnLaneStart(lane Direction, mode Mode)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnVehicleReleased is called for each vehicle released from the
	// active lane; served is the cumulative total for the run
	OnVehicleReleased(lane Direction, served int)

	// OnControl is called after a control action has been applied
	OnControl(action Action)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnPhaseChange implements the required Observer method
func (o *BaseObserver) OnPhaseChange(from Phase, to Phase, lane *Direction) {
	// Default implementation - no operation
}

// OnLaneStart implements the required Observer method
func (o *BaseObserver) OnLaneStart(lane Direction, mode Mode) {
	// Default implementation - no operation
}

// OnVehicleReleased implements the optional ExtendedObserver method
func (o *BaseObserver) OnVehicleReleased(lane Direction, served int) {
	// Default implementation - no operation
}

// OnControl implements the optional ExtendedObserver method
func (o *BaseObserver) OnControl(action Action) {
	// Default implementation - no operation
}

// ObserverManager maintains the observer list and dispatches notifications
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates an empty observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{observers: make([]Observer, 0)}
}

// Add registers an observer
func (m *ObserverManager) Add(observer Observer) {
	m.observers = append(m.observers, observer)
}

// Remove unregisters a previously added observer
func (m *ObserverManager) Remove(observer Observer) {
	for i, o := range m.observers {
		if o == observer {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

func (m *ObserverManager) notifyPhaseChange(from Phase, to Phase, lane *Direction) {
	for _, o := range m.observers {
		o.OnPhaseChange(from, to, lane)
	}
}

func (m *ObserverManager) notifyLaneStart(lane Direction, mode Mode) {
	for _, o := range m.observers {
		o.OnLaneStart(lane, mode)
	}
}

func (m *ObserverManager) notifyVehicleReleased(lane Direction, served int) {
	for _, o := range m.observers {
		if ext, ok := o.(ExtendedObserver); ok {
			ext.OnVehicleReleased(lane, served)
		}
	}
}

func (m *ObserverManager) notifyControl(action Action) {
	for _, o := range m.observers {
		if ext, ok := o.(ExtendedObserver); ok {
			ext.OnControl(action)
		}
	}
}

// LogSink receives the controller's human-readable transition notices.
// The sink owns timestamping and retention.
type LogSink func(message string)
