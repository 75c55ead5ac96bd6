package domain

// genericOn is the stored value for an actuator that is on without a level.
const genericOn = 1.0

// State is the state of an actuator: off, on, or on at a level.
type State struct {
	On    bool
	Level *float64
}

func Off() State { return State{} }

func On() State { return State{On: true} }

func OnAt(level float64) State {
	return State{On: true, Level: &level}
}

// StateFromStored maps a nullable stored value back to a State.
// NULL is off, exactly 1.0 is on without a level, anything else is a level.
func StateFromStored(v *float64) State {
	switch {
	case v == nil:
		return Off()
	case *v == genericOn:
		return On()
	default:
		return OnAt(*v)
	}
}

// Stored is the inverse of StateFromStored.
func (s State) Stored() *float64 {
	if !s.On {
		return nil
	}
	v := genericOn
	if s.Level != nil {
		v = *s.Level
	}
	return &v
}
