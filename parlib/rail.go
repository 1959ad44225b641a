package parlib

import (
	"github.com/db47h/par/bits"
)

// A PowerRail is the hard 0 or 1 tie-off of the device. It has no
// configuration bits; Load and Save are no-ops. It exists so that the
// codec can walk every device resource uniformly.
//
type PowerRail struct {
	dev  *Device
	high bool
}

// NewPowerRail returns the device's ground (high=false) or Vcc
// (high=true) rail.
//
func NewPowerRail(dev *Device, high bool) *PowerRail {
	return &PowerRail{dev: dev, high: high}
}

// Description implements bits.Primitive.
//
func (r *PowerRail) Description() string {
	if r.high {
		return "VCC"
	}
	return "GND"
}

// ConfigBase implements bits.Primitive.
//
func (r *PowerRail) ConfigBase() int { return 0 }

// High reports the rail value.
//
func (r *PowerRail) High() bool { return r.high }

// Source returns the rail as a primitive input source.
//
func (r *PowerRail) Source() Source {
	if r.high {
		return Vcc
	}
	return Ground
}

// Save implements bits.Primitive.
//
func (r *PowerRail) Save(bits.Bitstream) error { return nil }

// Load implements bits.Primitive.
//
func (r *PowerRail) Load(bits.Bitstream) error { return nil }
