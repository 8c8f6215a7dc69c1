package junction

// Phase represents the signal state of the active lane
type Phase string

const (
	// PhaseIdle means no lane is being served
	PhaseIdle Phase = "idle"
	// PhaseGreen means the current lane is releasing vehicles
	PhaseGreen Phase = "green"
	// PhaseYellow means the current lane is clearing
	PhaseYellow Phase = "yellow"
)

// Mode selects the lane scheduling policy
type Mode string

const (
	// ModeVehicleActuated drives lane selection and green duration from
	// queue lengths
	ModeVehicleActuated Mode = "vehicle"
	// ModeFixedCycle runs a timer-driven round robin regardless of demand
	ModeFixedCycle Mode = "standard"
)

// ParseMode converts a wire value into a Mode
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeVehicleActuated, ModeFixedCycle:
		return Mode(value), nil
	default:
		return "", NewInvalidModeError(value)
	}
}
