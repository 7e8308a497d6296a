package tinygo_gearmotor

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

const (
	// ErrorCodeGearMotorStartNumber is the starting number for gear motor-related error codes.
	ErrorCodeGearMotorStartNumber uint16 = 5230
)

const (
	ErrorCodeGearMotorNilDriver tinygoerrors.ErrorCode = tinygoerrors.ErrorCode(iota + ErrorCodeGearMotorStartNumber)
	ErrorCodeGearMotorFailedToInitPWM
	ErrorCodeGearMotorFailedToDeinitPWM
	ErrorCodeGearMotorFailedToUpdateDutyCycle
	ErrorCodeGearMotorZeroFrequency
	ErrorCodeGearMotorFailedToConfigurePWM
	ErrorCodeGearMotorFailedToGetPWMChannel
	ErrorCodeGearMotorUnknownInstance
	ErrorCodeGearMotorNilPWM
	ErrorCodeGearMotorNilConfig
	ErrorCodeGearMotorFailedToConfigureCapture
	ErrorCodeGearMotorMissingCaptureChannel
	ErrorCodeGearMotorUnknownCaptureEdge
)
