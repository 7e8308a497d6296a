package tinygo_gearmotor

import (
	"sync"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

type (
	// DefaultHandler is the default implementation to handle gear motor actuation and speed sensing.
	DefaultHandler struct {
		afterSetSpeedFunc func(speed Speed)
		isMovementEnabled func() bool
		driver            Driver
		logger            Logger
		commanded         commandedSpeed
		actuationMutex    sync.Mutex
	}
)

var (
	// setSpeedForwardPrefix is the prefix for the log message when setting speed forward
	setSpeedForwardPrefix = []byte("Set Gear Motor speed forward to:")

	// setSpeedReversePrefix is the prefix for the log message when setting speed reverse
	setSpeedReversePrefix = []byte("Set Gear Motor speed reverse to:")

	// setDutyCyclePrefix is the prefix for the log message when updating the duty cycle
	setDutyCyclePrefix = []byte("Set Gear Motor duty cycle to:")

	// stopPrefix is the prefix for the log message when stopping the motor
	stopPrefix = []byte("Stop Gear Motor")

	// movementDisabledPrefix is the prefix for the log message when movement is disabled
	movementDisabledPrefix = []byte("Gear Motor movement disabled, stopping")

	// driverErrorPrefix is the prefix for the log message when a driver call fails
	driverErrorPrefix = []byte("Gear Motor driver call failed with code:")
)

// NewDefaultHandler creates a new instance of DefaultHandler
//
// Parameters:
//
// driver: The timer/PWM peripheral driver
// afterSetSpeedFunc: Function to call after setting the speed
// isMovementEnabled: Function to check if movement is enabled
// logger: The logger to log messages
//
// Returns:
//
// An instance of DefaultHandler and an error if any occurred during initialization
func NewDefaultHandler(
	driver Driver,
	afterSetSpeedFunc func(speed Speed),
	isMovementEnabled func() bool,
	logger Logger,
) (*DefaultHandler, tinygoerrors.ErrorCode) {
	// Check if the driver is nil
	if driver == nil {
		return nil, ErrorCodeGearMotorNilDriver
	}

	handler := &DefaultHandler{
		afterSetSpeedFunc: afterSetSpeedFunc,
		isMovementEnabled: isMovementEnabled,
		driver:            driver,
		logger:            logger,
	}

	// Stop the motor initially
	handler.Stop()

	return handler, tinygoerrors.ErrorCodeNil
}

// logErrorCode logs a failed driver call
func (h *DefaultHandler) logErrorCode(errorCode tinygoerrors.ErrorCode) {
	if errorCode == tinygoerrors.ErrorCodeNil || h.logger == nil {
		return
	}
	h.logger.DebugUint32(driverErrorPrefix, uint32(errorCode))
}

// stopInstance stops the PWM output of the instance
func (h *DefaultHandler) stopInstance(instance Instance) {
	if errorCode := h.driver.DeinitPWM(instance); errorCode != tinygoerrors.ErrorCodeNil {
		h.logErrorCode(ErrorCodeGearMotorFailedToDeinitPWM)
		h.logErrorCode(errorCode)
	}
}

// startInstance starts the PWM output of the direction with the given duty cycle
func (h *DefaultHandler) startInstance(direction Direction, duty uint16) {
	instance := direction.Instance()
	if errorCode := h.driver.InitPWM(instance, PWMConfigFor(direction)); errorCode != tinygoerrors.ErrorCodeNil {
		h.logErrorCode(ErrorCodeGearMotorFailedToInitPWM)
		h.logErrorCode(errorCode)
	}

	if errorCode := h.driver.UpdatePWMDutyCycle(
		instance,
		PWMChannel,
		UpdateInDutyCycle,
		duty,
		PWMEdge,
		true,
	); errorCode != tinygoerrors.ErrorCodeNil {
		h.logErrorCode(ErrorCodeGearMotorFailedToUpdateDutyCycle)
		h.logErrorCode(errorCode)
	}
}

// SetSpeed sets the gear motor speed.
//
// Parameters:
//
// speed: Requested speed, clamped to the operating band of the motor.
func (h *DefaultHandler) SetSpeed(speed Speed) {
	// Clamp the requested speed, a disabled movement is handled as a stop request
	speed.RPM = ClampRPM(speed.RPM)
	if h.isMovementEnabled != nil && !h.isMovementEnabled() {
		if speed.RPM != 0 && h.logger != nil {
			h.logger.Debug(movementDisabledPrefix)
		}
		speed.RPM = 0
	}

	h.actuationMutex.Lock()
	h.commanded.store(speed)

	// Calculate the duty cycle
	duty := DutyCycle(speed.RPM)

	// Both instances are stopped before starting one, so they are never active at the same time
	if speed.RPM == 0 {
		h.stopInstance(InstanceForward)
		h.stopInstance(InstanceReverse)
		if h.logger != nil {
			h.logger.Debug(stopPrefix)
		}
	} else {
		h.stopInstance(speed.Direction.Opposite().Instance())
		h.stopInstance(speed.Direction.Instance())
		h.startInstance(speed.Direction, duty)

		// Log the speed change
		if h.logger != nil {
			if speed.Direction == DirectionReverse {
				h.logger.DebugUint32(setSpeedReversePrefix, uint32(speed.RPM))
			} else {
				h.logger.DebugUint32(setSpeedForwardPrefix, uint32(speed.RPM))
			}
			h.logger.DebugUint32(setDutyCyclePrefix, uint32(duty))
		}
	}
	h.actuationMutex.Unlock()

	// Call the after set speed function if provided, outside the lock so it may command the motor
	if h.afterSetSpeedFunc != nil {
		h.afterSetSpeedFunc(speed)
	}
}

// GetSpeed returns the gear motor speed measured by the sense instance.
//
// Returns:
//
// The measured speed, with the direction of the last commanded speed since the encoder signal
// does not carry it.
func (h *DefaultHandler) GetSpeed() Speed {
	refFrequency := h.driver.GetFrequency(InstanceSense)
	capturedTicks := h.driver.GetInputCaptureMeasurement(InstanceSense, InputCaptureChannel)

	return Speed{
		RPM:       RPMFromFrequency(MeasuredFrequency(refFrequency, capturedTicks)),
		Direction: h.commanded.load().Direction,
	}
}

// GetCommandedSpeed returns the last speed accepted by SetSpeed, after clamping
func (h *DefaultHandler) GetCommandedSpeed() Speed {
	return h.commanded.load()
}

// State returns which actuation channel is driving the motor
func (h *DefaultHandler) State() State {
	speed := h.commanded.load()
	switch {
	case speed.RPM == 0:
		return StateStopped
	case speed.Direction == DirectionReverse:
		return StateReverse
	default:
		return StateForward
	}
}

// Stop stops the gear motor, keeping the last commanded direction.
func (h *DefaultHandler) Stop() {
	h.SetSpeed(Speed{RPM: 0, Direction: h.commanded.load().Direction})
}

// SetSpeedForward sets the gear motor speed forward.
//
// Parameters:
//
// rpm: Speed value between 0 (stop) and MaxRPM (full forward).
func (h *DefaultHandler) SetSpeedForward(rpm uint16) {
	h.SetSpeed(Speed{RPM: rpm, Direction: DirectionForward})
}

// SetSpeedReverse sets the gear motor speed reverse.
//
// Parameters:
//
// rpm: Speed value between 0 (stop) and MaxRPM (full reverse).
func (h *DefaultHandler) SetSpeedReverse(rpm uint16) {
	h.SetSpeed(Speed{RPM: rpm, Direction: DirectionReverse})
}
