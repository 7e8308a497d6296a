package tinygo_gearmotor

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

type (
	// TimerMode is the operating mode of a timer instance
	TimerMode uint8

	// Polarity is the active level of a PWM output or fault input
	Polarity uint8

	// ClockSource is the clock feeding a timer instance
	ClockSource uint8

	// CaptureMode is the operating mode of an input capture channel
	CaptureMode uint8

	// CaptureEdge is the signal edge that triggers an input capture
	CaptureEdge uint8

	// MeasurementType is the signal measurement performed by an input capture channel
	MeasurementType uint8

	// TimerConfig is the clocking configuration of a timer instance
	TimerConfig struct {
		Mode        TimerMode
		Prescaler   uint8
		ClockSource ClockSource
	}

	// FaultConfig is the fault input configuration of a PWM instance
	FaultConfig struct {
		SafeOutputState bool
		Interrupt       bool
		FilterValue     uint8
		Enabled         bool
	}

	// PWMChannelConfig is the configuration of an independent PWM channel
	PWMChannelConfig struct {
		HWChannel       uint8
		Polarity        Polarity
		DutyCycle       uint16
		ExternalTrigger bool
	}

	// PWMConfig is the static configuration record of a PWM instance
	PWMConfig struct {
		Timer            TimerConfig
		CombinedChannels uint8
		DeadTime         uint8
		DeadTimeDivider  uint8
		Frequency        uint32
		Channels         []PWMChannelConfig
		Fault            FaultConfig
	}

	// InputCaptureChannelConfig is the configuration of an input capture channel
	InputCaptureChannelConfig struct {
		Channel       uint8
		Mode          CaptureMode
		Edge          CaptureEdge
		Measurement   MeasurementType
		FilterValue   uint8
		FilterEnabled bool
		Continuous    bool
	}

	// InputCaptureConfig is the static configuration record of the sense instance
	InputCaptureConfig struct {
		Timer         TimerConfig
		MaxCountValue uint16
		Channels      []InputCaptureChannelConfig
	}
)

const (
	TimerModeCenterAlignedPWM TimerMode = iota
	TimerModeEdgeAlignedPWM
	TimerModeInputCapture
)

const (
	PolarityLow Polarity = iota
	PolarityHigh
)

const (
	ClockSourceSystem ClockSource = iota
	ClockSourceFixed
	ClockSourceExternal
)

const (
	CaptureModeEdgeDetect CaptureMode = iota
	CaptureModeSignalMeasurement
)

const (
	CaptureEdgeRising CaptureEdge = iota
	CaptureEdgeFalling
	CaptureEdgeBoth
)

const (
	MeasurementNone MeasurementType = iota
	MeasurementPeriodRisingEdges
	MeasurementPeriodFallingEdges
)

var (
	// ForwardPWMConfig is the configuration of the forward PWM instance
	ForwardPWMConfig = PWMConfig{
		Timer: TimerConfig{
			Mode:        TimerModeCenterAlignedPWM,
			Prescaler:   4,
			ClockSource: ClockSourceSystem,
		},
		Frequency: 600,
		Channels: []PWMChannelConfig{
			{
				HWChannel: PWMChannel,
				Polarity:  PolarityLow,
				DutyCycle: DutyCycleInverse,
			},
		},
	}

	// ReversePWMConfig is the configuration of the reverse PWM instance
	ReversePWMConfig = PWMConfig{
		Timer: TimerConfig{
			Mode:        TimerModeCenterAlignedPWM,
			Prescaler:   4,
			ClockSource: ClockSourceSystem,
		},
		Frequency: 1000,
		Channels: []PWMChannelConfig{
			{
				HWChannel: PWMChannel,
				Polarity:  PolarityLow,
				DutyCycle: DutyCycleInverse,
			},
		},
	}

	// SenseInputCaptureConfig is the configuration of the sense instance
	SenseInputCaptureConfig = InputCaptureConfig{
		Timer: TimerConfig{
			Mode:        TimerModeInputCapture,
			Prescaler:   4,
			ClockSource: ClockSourceExternal,
		},
		Channels: []InputCaptureChannelConfig{
			{
				Channel:     InputCaptureChannel,
				Mode:        CaptureModeEdgeDetect,
				Edge:        CaptureEdgeRising,
				Measurement: MeasurementNone,
				Continuous:  true,
			},
		},
	}
)

// PWMConfigFor returns the static PWM configuration of the direction
func PWMConfigFor(direction Direction) *PWMConfig {
	if direction == DirectionReverse {
		return &ReversePWMConfig
	}
	return &ForwardPWMConfig
}

// SenseChannel returns the input capture channel that measures the encoder signal
//
// Returns:
//
// The channel configuration and an error if the record is nil, has no InputCaptureChannel entry or
// uses an unknown edge
func (c *InputCaptureConfig) SenseChannel() (*InputCaptureChannelConfig, tinygoerrors.ErrorCode) {
	if c == nil {
		return nil, ErrorCodeGearMotorNilConfig
	}
	for i := range c.Channels {
		channel := &c.Channels[i]
		if channel.Channel != InputCaptureChannel {
			continue
		}
		if channel.Edge > CaptureEdgeBoth {
			return nil, ErrorCodeGearMotorUnknownCaptureEdge
		}
		return channel, tinygoerrors.ErrorCodeNil
	}
	return nil, ErrorCodeGearMotorMissingCaptureChannel
}

// OutputPulseWidth returns the on-time of a PWM channel for an inverse duty cycle value.
//
// PolarityLow drives the pin for PulseWidth, PolarityHigh drives it for the rest of the period.
func OutputPulseWidth(duty uint16, period uint32, polarity Polarity) uint32 {
	onTime := PulseWidth(duty, period)
	if polarity == PolarityHigh {
		return period - onTime
	}
	return onTime
}
