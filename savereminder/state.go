package savereminder

// State is a step of the save flow.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateInvalid
	StateValid
	StateRegisteringGeofence
	StateRegistrationFailed
	StatePersisting
	StatePersistFailed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	case StateRegisteringGeofence:
		return "registering_geofence"
	case StateRegistrationFailed:
		return "registration_failed"
	case StatePersisting:
		return "persisting"
	case StatePersistFailed:
		return "persist_failed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
