package tinygo_gearmotor

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

type (
	// Handler is the interface to handle gear motor actuation and speed sensing
	Handler interface {
		SetSpeed(speed Speed)
		GetSpeed() Speed
		Stop()
		SetSpeedForward(rpm uint16)
		SetSpeedReverse(rpm uint16)
		State() State
	}

	// Driver is the capability set of the timer/PWM peripheral driver used by the handler
	Driver interface {
		// InitPWM starts the PWM output of the instance with its static configuration
		InitPWM(instance Instance, config *PWMConfig) tinygoerrors.ErrorCode

		// DeinitPWM stops the PWM output of the instance, stopping an already stopped instance is a no-op
		DeinitPWM(instance Instance) tinygoerrors.ErrorCode

		// UpdatePWMDutyCycle pushes a new duty cycle value to an initialized instance
		UpdatePWMDutyCycle(
			instance Instance,
			channel uint8,
			kind UpdateKind,
			duty uint16,
			edge uint8,
			sync bool,
		) tinygoerrors.ErrorCode

		// GetInputCaptureMeasurement returns the latest captured period, in timer ticks, of the channel
		GetInputCaptureMeasurement(instance Instance, channel uint8) uint32

		// GetFrequency returns the counting frequency of the instance in Hz
		GetFrequency(instance Instance) uint32
	}

	// Logger is the logging seam used by the handler
	Logger interface {
		Debug(prefix []byte)
		DebugUint32(prefix []byte, value uint32)
	}
)
