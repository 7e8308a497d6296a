package tinygo_gearmotor

const (
	// MaxRPM is the maximum speed that can be commanded
	MaxRPM uint16 = 150

	// MinRPM is the minimum speed the motor can sustain, lower requests stop the motor
	MinRPM uint16 = 13

	// MaxFrequency is the encoder signal frequency at full speed
	MaxFrequency uint32 = 2600

	// RPMDivider relates the encoder signal frequency to the shaft speed
	RPMDivider uint32 = 2

	// DutyCycleInverse is the duty cycle value for 0% on-time
	DutyCycleInverse uint16 = 0x8000

	// PWMChannel is the channel used inside each PWM instance
	PWMChannel uint8 = 0

	// PWMEdge is the edge selector used when updating the duty cycle
	PWMEdge uint8 = 0

	// InputCaptureChannel is the channel of the sense instance that captures the encoder signal
	InputCaptureChannel uint8 = 0
)
