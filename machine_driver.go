//go:build tinygo && (rp2040 || rp2350)

package tinygo_gearmotor

import (
	"machine"
	"time"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
	tinygologger "github.com/ralvarezdev/tinygo-logger"
	tinygopwm "github.com/ralvarezdev/tinygo-pwm"
	"go.uber.org/atomic"
)

type (
	// pwmOutput is the state of a PWM instance driven through tinygo-pwm
	pwmOutput struct {
		pwm     tinygopwm.PWM
		pin     machine.Pin
		channel  uint8
		period   uint32
		polarity Polarity
		active   bool
	}

	// MachineDriver implements Driver on top of the machine PWM peripherals, capturing the
	// encoder signal period with pin interrupts
	MachineDriver struct {
		outputs       [2]pwmOutput
		sensePin      machine.Pin
		stallTimeout  time.Duration
		filterTicks   uint32
		capturedTicks atomic.Uint32
		lastEdge      atomic.Int64
	}

	// loggerAdapter adapts a tinygo-logger Logger to the Logger interface
	loggerAdapter struct {
		logger tinygologger.Logger
	}
)

const (
	// CaptureFrequency is the counting frequency of the sense instance, ticks are microseconds
	CaptureFrequency uint32 = 1_000_000
)

// NewMachineDriver creates a new instance of MachineDriver
//
// Parameters:
//
// forwardPWM: The PWM peripheral of the forward instance
// forwardPin: The pin driven by the forward instance
// reversePWM: The PWM peripheral of the reverse instance
// reversePin: The pin driven by the reverse instance
// sensePin: The pin connected to the encoder signal
// senseConfig: The input capture configuration of the sense instance, usually &SenseInputCaptureConfig
// stallTimeout: Time without an encoder edge after which the motor is reported as stopped
//
// Returns:
//
// An instance of MachineDriver and an error if any occurred during initialization
func NewMachineDriver(
	forwardPWM tinygopwm.PWM,
	forwardPin machine.Pin,
	reversePWM tinygopwm.PWM,
	reversePin machine.Pin,
	sensePin machine.Pin,
	senseConfig *InputCaptureConfig,
	stallTimeout time.Duration,
) (*MachineDriver, tinygoerrors.ErrorCode) {
	// Check if the PWM peripherals are nil
	if forwardPWM == nil || reversePWM == nil {
		return nil, ErrorCodeGearMotorNilPWM
	}

	// Get the capture channel of the encoder signal
	senseChannel, errorCode := senseConfig.SenseChannel()
	if errorCode != tinygoerrors.ErrorCodeNil {
		return nil, errorCode
	}

	driver := &MachineDriver{
		sensePin:     sensePin,
		stallTimeout: stallTimeout,
	}
	if senseChannel.FilterEnabled {
		driver.filterTicks = uint32(senseChannel.FilterValue)
	}
	driver.outputs[InstanceForward] = pwmOutput{pwm: forwardPWM, pin: forwardPin}
	driver.outputs[InstanceReverse] = pwmOutput{pwm: reversePWM, pin: reversePin}

	// Configure the input capture on the configured edges of the encoder signal
	change := machine.PinRising
	switch senseChannel.Edge {
	case CaptureEdgeFalling:
		change = machine.PinFalling
	case CaptureEdgeBoth:
		change = machine.PinToggle
	}
	sensePin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	if err := sensePin.SetInterrupt(change, driver.captureEdge); err != nil {
		return nil, ErrorCodeGearMotorFailedToConfigureCapture
	}

	return driver, tinygoerrors.ErrorCodeNil
}

// captureEdge records the period since the previous encoder edge, it runs in interrupt context
func (d *MachineDriver) captureEdge(machine.Pin) {
	now := time.Now().UnixNano()
	previous := d.lastEdge.Load()
	if previous == 0 {
		d.lastEdge.Store(now)
		return
	}

	// Edges closer than the filter are glitches
	ticks := CaptureTicks(now-previous, CaptureFrequency)
	if ticks < d.filterTicks {
		return
	}
	d.lastEdge.Store(now)
	d.capturedTicks.Store(ticks)
}

// output returns the PWM output of the instance
func (d *MachineDriver) output(instance Instance) (*pwmOutput, tinygoerrors.ErrorCode) {
	if instance != InstanceForward && instance != InstanceReverse {
		return nil, ErrorCodeGearMotorUnknownInstance
	}
	return &d.outputs[instance], tinygoerrors.ErrorCodeNil
}

// InitPWM configures the PWM peripheral of the instance and starts it with the initial duty cycle
func (d *MachineDriver) InitPWM(instance Instance, config *PWMConfig) tinygoerrors.ErrorCode {
	output, errorCode := d.output(instance)
	if errorCode != tinygoerrors.ErrorCodeNil {
		return errorCode
	}
	if config == nil {
		return ErrorCodeGearMotorNilConfig
	}
	if config.Frequency == 0 {
		return ErrorCodeGearMotorZeroFrequency
	}

	// Configure the PWM
	period := PWMPeriod(config.Frequency)
	if err := output.pwm.Configure(
		machine.PWMConfig{
			Period: uint64(period),
		},
	); err != nil {
		return ErrorCodeGearMotorFailedToConfigurePWM
	}

	// Get the channel from the pin
	channel, err := output.pwm.Channel(output.pin)
	if err != nil {
		return ErrorCodeGearMotorFailedToGetPWMChannel
	}
	output.channel = channel
	output.period = period
	output.polarity = PolarityLow
	output.active = true

	// Set the initial duty cycle
	duty := DutyCycleInverse
	if len(config.Channels) > 0 {
		duty = config.Channels[0].DutyCycle
		output.polarity = config.Channels[0].Polarity
	}
	tinygopwm.SetDuty(output.pwm, output.channel, output.pulseWidth(duty), output.period)
	return tinygoerrors.ErrorCodeNil
}

// DeinitPWM drives the output of the instance low
func (d *MachineDriver) DeinitPWM(instance Instance) tinygoerrors.ErrorCode {
	output, errorCode := d.output(instance)
	if errorCode != tinygoerrors.ErrorCodeNil {
		return errorCode
	}
	if !output.active {
		return tinygoerrors.ErrorCodeNil
	}

	tinygopwm.SetDuty(output.pwm, output.channel, 0, output.period)
	output.active = false
	return tinygoerrors.ErrorCodeNil
}

// UpdatePWMDutyCycle sets the duty cycle of a started instance
func (d *MachineDriver) UpdatePWMDutyCycle(
	instance Instance,
	channel uint8,
	kind UpdateKind,
	duty uint16,
	edge uint8,
	waitForSync bool,
) tinygoerrors.ErrorCode {
	output, errorCode := d.output(instance)
	if errorCode != tinygoerrors.ErrorCodeNil {
		return errorCode
	}
	if !output.active {
		return ErrorCodeGearMotorFailedToUpdateDutyCycle
	}

	pulse := uint32(duty)
	if kind == UpdateInDutyCycle {
		pulse = output.pulseWidth(duty)
	}
	tinygopwm.SetDuty(output.pwm, output.channel, pulse, output.period)
	return tinygoerrors.ErrorCodeNil
}

// GetInputCaptureMeasurement returns the last encoder period in microseconds, or 0 if the motor stalled
func (d *MachineDriver) GetInputCaptureMeasurement(instance Instance, channel uint8) uint32 {
	if instance != InstanceSense || channel != InputCaptureChannel {
		return 0
	}

	lastEdge := d.lastEdge.Load()
	if lastEdge == 0 || time.Since(time.Unix(0, lastEdge)) > d.stallTimeout {
		return 0
	}
	return d.capturedTicks.Load()
}

// GetFrequency returns the counting frequency of the instance in Hz
func (d *MachineDriver) GetFrequency(instance Instance) uint32 {
	if instance == InstanceSense {
		return CaptureFrequency
	}

	output, errorCode := d.output(instance)
	if errorCode != tinygoerrors.ErrorCodeNil || output.period == 0 {
		return 0
	}
	return PWMFrequency(output.period)
}

// pulseWidth converts an inverse duty cycle value to the on-time in nanoseconds
func (o *pwmOutput) pulseWidth(duty uint16) uint32 {
	return OutputPulseWidth(duty, o.period, o.polarity)
}

// NewLoggerAdapter wraps a tinygo-logger Logger so it can be passed to NewDefaultHandler
func NewLoggerAdapter(logger tinygologger.Logger) Logger {
	if logger == nil {
		return nil
	}
	return &loggerAdapter{logger: logger}
}

// Debug logs a message
func (l *loggerAdapter) Debug(prefix []byte) {
	l.logger.AddMessage(
		prefix,
		true,
	)
	l.logger.Debug()
}

// DebugUint32 logs a message followed by a value
func (l *loggerAdapter) DebugUint32(prefix []byte, value uint32) {
	l.logger.AddMessageWithUint32(
		prefix,
		value,
		true,
		true,
		false,
	)
	l.logger.Debug()
}

// NewMachineHandler creates a DefaultHandler driving the machine PWM peripherals
//
// Parameters:
//
// driver: The machine driver
// afterSetSpeedFunc: Function to call after setting the speed
// isMovementEnabled: Function to check if movement is enabled
// logger: The logger to log messages
//
// Returns:
//
// An instance of DefaultHandler and an error if any occurred during initialization
func NewMachineHandler(
	driver *MachineDriver,
	afterSetSpeedFunc func(speed Speed),
	isMovementEnabled func() bool,
	logger tinygologger.Logger,
) (*DefaultHandler, tinygoerrors.ErrorCode) {
	if driver == nil {
		return nil, ErrorCodeGearMotorNilDriver
	}
	return NewDefaultHandler(driver, afterSetSpeedFunc, isMovementEnabled, NewLoggerAdapter(logger))
}
