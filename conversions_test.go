package tinygo_gearmotor_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	gearmotor "github.com/ralvarezdev/tinygo-gearmotor"
)

func TestClampRPM(t *testing.T) {
	for _, tc := range []struct {
		name      string
		requested uint16
		expected  uint16
	}{
		{"zero", 0, 0},
		{"below minimum", 1, 0},
		{"just below minimum", gearmotor.MinRPM - 1, 0},
		{"minimum", gearmotor.MinRPM, gearmotor.MinRPM},
		{"in band", 75, 75},
		{"maximum", gearmotor.MaxRPM, gearmotor.MaxRPM},
		{"just above maximum", gearmotor.MaxRPM + 1, gearmotor.MaxRPM},
		{"far above maximum", math.MaxUint16, gearmotor.MaxRPM},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, gearmotor.ClampRPM(tc.requested), test.ShouldEqual, tc.expected)
		})
	}
}

func TestDutyCycle(t *testing.T) {
	t.Run("limits", func(t *testing.T) {
		test.That(t, gearmotor.DutyCycle(0), test.ShouldEqual, gearmotor.DutyCycleInverse)
		test.That(t, gearmotor.DutyCycle(gearmotor.MaxRPM), test.ShouldEqual, 0)
	})

	t.Run("known values", func(t *testing.T) {
		// 13 * 0x8000 / 150 = 2839
		test.That(t, gearmotor.DutyCycle(13), test.ShouldEqual, 0x8000-2839)
		// 75 * 0x8000 / 150 = 0x4000
		test.That(t, gearmotor.DutyCycle(75), test.ShouldEqual, 0x4000)
		// 100 * 0x8000 / 150 = 21845
		test.That(t, gearmotor.DutyCycle(100), test.ShouldEqual, 0x8000-21845)
	})

	t.Run("floor division across the band", func(t *testing.T) {
		previous := gearmotor.DutyCycle(gearmotor.MinRPM)
		for rpm := gearmotor.MinRPM; rpm <= gearmotor.MaxRPM; rpm++ {
			duty := gearmotor.DutyCycle(rpm)
			expected := 0x8000 - (uint32(rpm)*0x8000)/uint32(gearmotor.MaxRPM)
			test.That(t, uint32(duty), test.ShouldEqual, expected)
			test.That(t, duty, test.ShouldBeLessThanOrEqualTo, previous)
			previous = duty
		}
	})

	t.Run("unclamped input saturates at full on-time", func(t *testing.T) {
		test.That(t, gearmotor.DutyCycle(math.MaxUint16), test.ShouldEqual, 0)
	})
}

func TestMeasuredFrequency(t *testing.T) {
	test.That(t, gearmotor.MeasuredFrequency(5200, 2), test.ShouldEqual, 2600)
	test.That(t, gearmotor.MeasuredFrequency(5201, 2), test.ShouldEqual, 2600)
	test.That(t, gearmotor.MeasuredFrequency(5200, 0), test.ShouldEqual, 0)
	test.That(t, gearmotor.MeasuredFrequency(0, 10), test.ShouldEqual, 0)
}

func TestRPMFromFrequency(t *testing.T) {
	test.That(t, gearmotor.RPMFromFrequency(0), test.ShouldEqual, 0)
	test.That(t, gearmotor.RPMFromFrequency(2600), test.ShouldEqual, 75)
	test.That(t, gearmotor.RPMFromFrequency(5200), test.ShouldEqual, 150)
	// 34 * 150 / 5200 = 0.98
	test.That(t, gearmotor.RPMFromFrequency(34), test.ShouldEqual, 0)
	test.That(t, gearmotor.RPMFromFrequency(35), test.ShouldEqual, 1)

	t.Run("saturates instead of wrapping", func(t *testing.T) {
		test.That(t, gearmotor.RPMFromFrequency(math.MaxUint32), test.ShouldEqual, math.MaxUint16)
	})
}

func TestPulseWidth(t *testing.T) {
	for _, tc := range []struct {
		name     string
		duty     uint16
		period   uint32
		expected uint32
	}{
		{"inverse is off", gearmotor.DutyCycleInverse, 1_000_000, 0},
		{"zero is full period", 0, 1_000_000, 1_000_000},
		{"half", 0x4000, 1_000_000, 500_000},
		{"half of forward period", 0x4000, 1_666_666, 833_333},
		{"just above inverse clamps", gearmotor.DutyCycleInverse + 1, 1_000_000, 0},
		{"far above inverse clamps", math.MaxUint16, 1_000_000, 0},
		{"zero period", 0, 0, 0},
		{"largest period", 0, math.MaxUint32, math.MaxUint32},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, gearmotor.PulseWidth(tc.duty, tc.period), test.ShouldEqual, tc.expected)
		})
	}
}

func TestPWMPeriodAndFrequency(t *testing.T) {
	t.Run("period", func(t *testing.T) {
		test.That(t, gearmotor.PWMPeriod(gearmotor.ForwardPWMConfig.Frequency), test.ShouldEqual, 1_666_666)
		test.That(t, gearmotor.PWMPeriod(gearmotor.ReversePWMConfig.Frequency), test.ShouldEqual, 1_000_000)
		test.That(t, gearmotor.PWMPeriod(0), test.ShouldEqual, 0)
	})

	t.Run("frequency", func(t *testing.T) {
		test.That(t, gearmotor.PWMFrequency(1_666_666), test.ShouldEqual, 600)
		test.That(t, gearmotor.PWMFrequency(1_000_000), test.ShouldEqual, 1000)
		test.That(t, gearmotor.PWMFrequency(0), test.ShouldEqual, 0)
	})

	t.Run("round trip", func(t *testing.T) {
		for _, frequency := range []uint32{1, 600, 1000, 2600, 20_000} {
			test.That(t, gearmotor.PWMFrequency(gearmotor.PWMPeriod(frequency)), test.ShouldEqual, frequency)
		}
	})
}

func TestCaptureTicks(t *testing.T) {
	test.That(t, gearmotor.CaptureTicks(2_000_000, 1_000_000), test.ShouldEqual, 2000)
	test.That(t, gearmotor.CaptureTicks(2_000_999, 1_000_000), test.ShouldEqual, 2000)
	test.That(t, gearmotor.CaptureTicks(2_000_000, 2_000_000), test.ShouldEqual, 4000)
	test.That(t, gearmotor.CaptureTicks(0, 1_000_000), test.ShouldEqual, 0)
	test.That(t, gearmotor.CaptureTicks(-1_000, 1_000_000), test.ShouldEqual, 0)
	test.That(t, gearmotor.CaptureTicks(1_000_000, 0), test.ShouldEqual, 0)

	t.Run("saturates instead of wrapping", func(t *testing.T) {
		test.That(t, gearmotor.CaptureTicks(math.MaxInt64, 1_000_000), test.ShouldEqual, math.MaxUint32)
		// 5000 s at 1 MHz does not fit in 32 bits
		test.That(t, gearmotor.CaptureTicks(5_000_000_000_000, 1_000_000), test.ShouldEqual, math.MaxUint32)
	})
}
