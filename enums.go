package tinygo_gearmotor

type (
	// Direction is an enum to represent the commanded rotation direction of the gear motor.
	Direction uint8

	// State is an enum to represent which actuation channel, if any, is driving the motor.
	State uint8

	// Instance is an enum to represent the timer peripheral instances used by the motor.
	Instance uint8

	// UpdateKind is an enum to represent how a PWM update value is interpreted by the driver.
	UpdateKind uint8
)

const (
	DirectionForward Direction = iota
	DirectionReverse
)

const (
	StateStopped State = iota
	StateForward
	StateReverse
)

const (
	InstanceForward Instance = iota
	InstanceReverse
	InstanceSense
)

const (
	UpdateInDutyCycle UpdateKind = iota
	UpdateInTicks
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionReverse {
		return "reverse"
	}
	return "forward"
}

// Instance returns the PWM instance that drives the direction.
func (d Direction) Instance() Instance {
	if d == DirectionReverse {
		return InstanceReverse
	}
	return InstanceForward
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == DirectionReverse {
		return DirectionForward
	}
	return DirectionReverse
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateForward:
		return "forward"
	case StateReverse:
		return "reverse"
	default:
		return "stopped"
	}
}

// String returns the instance name.
func (i Instance) String() string {
	switch i {
	case InstanceForward:
		return "forward"
	case InstanceReverse:
		return "reverse"
	case InstanceSense:
		return "sense"
	default:
		return "unknown"
	}
}
