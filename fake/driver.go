// Package fake implements a fake timer/PWM peripheral driver for the gear motor.
package fake

import (
	"sync"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"

	gearmotor "github.com/ralvarezdev/tinygo-gearmotor"
)

type (
	// Op is the kind of driver call recorded by Driver
	Op uint8

	// Call is a recorded PWM call
	Call struct {
		Op       Op
		Instance gearmotor.Instance
		Duty     uint16
	}

	// Driver is a fake driver that records every PWM call and tracks which instances are active
	Driver struct {
		mu sync.Mutex

		Frequency     uint32
		CapturedTicks uint32

		// InitErrorCode is returned by InitPWM, it does not prevent the instance from starting
		InitErrorCode tinygoerrors.ErrorCode

		calls     []Call
		active    map[gearmotor.Instance]bool
		duty      map[gearmotor.Instance]uint16
		configs   map[gearmotor.Instance]*gearmotor.PWMConfig
		maxActive int
	}
)

const (
	OpInit Op = iota
	OpDeinit
	OpUpdate
)

// NewDriver creates a new instance of Driver with no active instance
//
// Parameters:
//
// frequency: The counting frequency reported for every instance
// capturedTicks: The period reported by the sense instance
//
// Returns:
//
// An instance of Driver
func NewDriver(frequency, capturedTicks uint32) *Driver {
	return &Driver{
		Frequency:     frequency,
		CapturedTicks: capturedTicks,
		active:        map[gearmotor.Instance]bool{},
		duty:          map[gearmotor.Instance]uint16{},
		configs:       map[gearmotor.Instance]*gearmotor.PWMConfig{},
	}
}

// InitPWM starts the instance.
func (d *Driver) InitPWM(instance gearmotor.Instance, config *gearmotor.PWMConfig) tinygoerrors.ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Op: OpInit, Instance: instance})
	d.active[instance] = true
	d.configs[instance] = config
	if config != nil && len(config.Channels) > 0 {
		d.duty[instance] = config.Channels[0].DutyCycle
	}
	if n := d.activeCount(); n > d.maxActive {
		d.maxActive = n
	}
	return d.InitErrorCode
}

// DeinitPWM stops the instance.
func (d *Driver) DeinitPWM(instance gearmotor.Instance) tinygoerrors.ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Op: OpDeinit, Instance: instance})
	delete(d.active, instance)
	delete(d.duty, instance)
	return tinygoerrors.ErrorCodeNil
}

// UpdatePWMDutyCycle sets the duty cycle of an active instance.
func (d *Driver) UpdatePWMDutyCycle(
	instance gearmotor.Instance,
	channel uint8,
	kind gearmotor.UpdateKind,
	duty uint16,
	edge uint8,
	waitForSync bool,
) tinygoerrors.ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Op: OpUpdate, Instance: instance, Duty: duty})
	if !d.active[instance] {
		return gearmotor.ErrorCodeGearMotorFailedToUpdateDutyCycle
	}
	d.duty[instance] = duty
	return tinygoerrors.ErrorCodeNil
}

// GetInputCaptureMeasurement returns CapturedTicks.
func (d *Driver) GetInputCaptureMeasurement(instance gearmotor.Instance, channel uint8) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.CapturedTicks
}

// GetFrequency returns Frequency.
func (d *Driver) GetFrequency(instance gearmotor.Instance) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Frequency
}

// SetCapture changes the values returned for the sense instance
//
// Parameters:
//
// frequency: The counting frequency reported for every instance
// capturedTicks: The period reported by the sense instance
func (d *Driver) SetCapture(frequency, capturedTicks uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Frequency = frequency
	d.CapturedTicks = capturedTicks
}

// Active reports whether the instance is started.
func (d *Driver) Active(instance gearmotor.Instance) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active[instance]
}

// Duty returns the duty cycle of an active instance
//
// Returns:
//
// The last duty cycle set on the instance and false if the instance is not active
func (d *Driver) Duty(instance gearmotor.Instance) (uint16, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	duty, ok := d.duty[instance]
	return duty, ok
}

// Config returns the configuration the instance was last started with.
func (d *Driver) Config(instance gearmotor.Instance) *gearmotor.PWMConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.configs[instance]
}

// MaxActive returns the highest number of instances that were active at the same time.
func (d *Driver) MaxActive() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxActive
}

// Calls returns the recorded calls.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	calls := make([]Call, len(d.calls))
	copy(calls, d.calls)
	return calls
}

// Reset clears the recorded calls.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// activeCount returns the number of active instances
func (d *Driver) activeCount() int {
	n := 0
	for _, on := range d.active {
		if on {
			n++
		}
	}
	return n
}
