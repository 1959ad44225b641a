package parlib

import (
	"strconv"

	"github.com/db47h/par/bits"
)

// A ClockBuffer is a clock buffer with a single hardwired input source
// and one enable bit at its config base.
//
type ClockBuffer struct {
	dev     *Device
	num     int
	matrix  int
	base    int
	src     Source
	enabled bool
}

// NewClockBuffer returns clock buffer num driven by src, with its enable
// bit at offset base.
//
func NewClockBuffer(dev *Device, num, matrix, base int, src Source) *ClockBuffer {
	return &ClockBuffer{dev: dev, num: num, matrix: matrix, base: base, src: src}
}

// Description implements bits.Primitive.
//
func (b *ClockBuffer) Description() string {
	return "BUFG_" + strconv.Itoa(b.num)
}

// ConfigBase implements bits.Primitive.
//
func (b *ClockBuffer) ConfigBase() int { return b.base }

// Source returns the buffer's hardwired input source.
//
func (b *ClockBuffer) Source() Source { return b.src }

// Enabled reports whether the buffer drives its output.
//
func (b *ClockBuffer) Enabled() bool { return b.enabled }

// SetEnabled enables or disables the buffer.
//
func (b *ClockBuffer) SetEnabled(on bool) { b.enabled = on }

// Save implements bits.Primitive.
//
func (b *ClockBuffer) Save(bs bits.Bitstream) error {
	bs[b.base] = b.enabled
	return nil
}

// Load implements bits.Primitive.
//
func (b *ClockBuffer) Load(bs bits.Bitstream) error {
	b.enabled = bs[b.base]
	return nil
}
