package tinygo_gearmotor

import (
	"go.uber.org/atomic"
)

type (
	// Speed is the speed of the gear motor in RPM and its direction
	Speed struct {
		RPM       uint16
		Direction Direction
	}

	// commandedSpeed holds the last speed accepted by the handler, packed in a single word so
	// that the RPM and the direction are always read together
	commandedSpeed struct {
		packed atomic.Uint32
	}
)

const (
	// directionShift is the bit offset of the direction inside the packed speed
	directionShift = 16
)

// pack returns the speed packed in a single word
func (s Speed) pack() uint32 {
	return uint32(s.Direction)<<directionShift | uint32(s.RPM)
}

// unpackSpeed returns the speed packed by pack
func unpackSpeed(packed uint32) Speed {
	return Speed{
		RPM:       uint16(packed),
		Direction: Direction(packed >> directionShift),
	}
}

// load returns the last stored speed
func (c *commandedSpeed) load() Speed {
	return unpackSpeed(c.packed.Load())
}

// store replaces the stored speed
func (c *commandedSpeed) store(speed Speed) {
	c.packed.Store(speed.pack())
}
