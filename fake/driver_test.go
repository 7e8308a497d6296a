package fake

import (
	"testing"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
	"go.viam.com/test"

	gearmotor "github.com/ralvarezdev/tinygo-gearmotor"
)

var (
	_ gearmotor.Driver = (*Driver)(nil)
	_ gearmotor.Logger = (*Logger)(nil)
)

func TestDriver(t *testing.T) {
	d := NewDriver(5200, 2)

	t.Run("update before init fails", func(t *testing.T) {
		errorCode := d.UpdatePWMDutyCycle(gearmotor.InstanceForward, 0, gearmotor.UpdateInDutyCycle, 10, 0, true)
		test.That(t, errorCode, test.ShouldEqual, gearmotor.ErrorCodeGearMotorFailedToUpdateDutyCycle)
	})

	t.Run("init uses the configured duty cycle", func(t *testing.T) {
		errorCode := d.InitPWM(gearmotor.InstanceForward, &gearmotor.ForwardPWMConfig)
		test.That(t, errorCode, test.ShouldEqual, tinygoerrors.ErrorCodeNil)
		duty, ok := d.Duty(gearmotor.InstanceForward)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, duty, test.ShouldEqual, gearmotor.DutyCycleInverse)
	})

	t.Run("tracks overlapping instances", func(t *testing.T) {
		d.InitPWM(gearmotor.InstanceReverse, &gearmotor.ReversePWMConfig)
		test.That(t, d.MaxActive(), test.ShouldEqual, 2)

		d.DeinitPWM(gearmotor.InstanceReverse)
		d.DeinitPWM(gearmotor.InstanceReverse)
		test.That(t, d.Active(gearmotor.InstanceReverse), test.ShouldBeFalse)
		test.That(t, d.Active(gearmotor.InstanceForward), test.ShouldBeTrue)
	})

	t.Run("capture", func(t *testing.T) {
		test.That(t, d.GetFrequency(gearmotor.InstanceSense), test.ShouldEqual, 5200)
		test.That(t, d.GetInputCaptureMeasurement(gearmotor.InstanceSense, 0), test.ShouldEqual, 2)
		d.SetCapture(100, 0)
		test.That(t, d.GetInputCaptureMeasurement(gearmotor.InstanceSense, 0), test.ShouldEqual, 0)
	})

	t.Run("stopped instance has no duty cycle", func(t *testing.T) {
		_, ok := d.Duty(gearmotor.InstanceReverse)
		test.That(t, ok, test.ShouldBeFalse)
		test.That(t, d.Config(gearmotor.InstanceReverse), test.ShouldEqual, &gearmotor.ReversePWMConfig)
	})

	t.Run("reset clears calls", func(t *testing.T) {
		test.That(t, len(d.Calls()), test.ShouldBeGreaterThan, 0)
		d.Reset()
		test.That(t, d.Calls(), test.ShouldBeEmpty)
	})
}

func TestLogger(t *testing.T) {
	l := NewLogger()
	test.That(t, l.Messages(), test.ShouldBeEmpty)
	l.Debug([]byte("a"))
	l.DebugUint32([]byte("b"), 7)
	test.That(t, l.Messages(), test.ShouldResemble, []Message{
		{Prefix: "a"},
		{Prefix: "b", Value: 7, HasValue: true},
	})
}
