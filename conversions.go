package tinygo_gearmotor

import (
	"golang.org/x/exp/constraints"
)

// saturate narrows value to the range of T, returning the maximum of T instead of wrapping
func saturate[T constraints.Unsigned](value uint64) T {
	maxValue := ^T(0)
	if value > uint64(maxValue) {
		return maxValue
	}
	return T(value)
}

// ClampRPM clamps a requested speed to the operating band of the motor.
//
// Requests above MaxRPM run at MaxRPM, requests below MinRPM stop the motor.
func ClampRPM(rpm uint16) uint16 {
	if rpm > MaxRPM {
		return MaxRPM
	}
	if rpm < MinRPM {
		return 0
	}
	return rpm
}

// DutyCycle returns the inverse duty cycle value for a clamped speed.
//
// 0 RPM maps to DutyCycleInverse (0% on-time) and MaxRPM maps to 0 (100% on-time).
func DutyCycle(rpm uint16) uint16 {
	inverse := uint32(rpm) * uint32(DutyCycleInverse) / uint32(MaxRPM)
	if inverse > uint32(DutyCycleInverse) {
		return 0
	}
	return DutyCycleInverse - uint16(inverse)
}

// MeasuredFrequency returns the encoder signal frequency for a captured period.
//
// A zero period means no edges were captured, and is reported as 0 Hz.
func MeasuredFrequency(refFrequency, capturedTicks uint32) uint32 {
	if capturedTicks == 0 {
		return 0
	}
	return refFrequency / capturedTicks
}

// RPMFromFrequency returns the shaft speed for an encoder signal frequency
func RPMFromFrequency(frequency uint32) uint16 {
	rpm := uint64(frequency) * uint64(MaxRPM) / (uint64(MaxFrequency) * uint64(RPMDivider))
	return saturate[uint16](rpm)
}

// PulseWidth converts an inverse duty cycle value to the on-time for a PWM period.
//
// DutyCycleInverse maps to 0 and 0 maps to the full period, values above DutyCycleInverse are
// handled as DutyCycleInverse.
func PulseWidth(duty uint16, period uint32) uint32 {
	if duty > DutyCycleInverse {
		duty = DutyCycleInverse
	}
	onTime := uint64(DutyCycleInverse-duty) * uint64(period) / uint64(DutyCycleInverse)
	return saturate[uint32](onTime)
}

// PWMPeriod returns the PWM period in nanoseconds for a frequency in Hz, 0 Hz returns 0
func PWMPeriod(frequency uint32) uint32 {
	if frequency == 0 {
		return 0
	}
	return uint32(1_000_000_000 / uint64(frequency))
}

// PWMFrequency returns the PWM frequency in Hz for a period in nanoseconds, a zero period returns 0
func PWMFrequency(period uint32) uint32 {
	if period == 0 {
		return 0
	}
	return uint32(1_000_000_000 / uint64(period))
}

// CaptureTicks converts the time between two encoder edges to ticks of a counter running at
// frequency Hz, saturating on long periods and returning 0 for negative ones
func CaptureTicks(elapsedNanoseconds int64, frequency uint32) uint32 {
	if elapsedNanoseconds <= 0 {
		return 0
	}
	microseconds := uint64(elapsedNanoseconds) / 1_000
	if frequency != 0 && microseconds > ^uint64(0)/uint64(frequency) {
		return ^uint32(0)
	}
	return saturate[uint32](microseconds * uint64(frequency) / 1_000_000)
}
