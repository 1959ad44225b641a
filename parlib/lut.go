// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parlib

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/db47h/par/bits"
)

// A LUT is an n-input lookup table. Its 2^n truth-table bits live at its
// config base, LSB first: bit base+i holds the output for input value i.
//
type LUT struct {
	dev     *Device
	num     int
	matrix  int
	base    int
	ninputs int
	truth   uint32
}

// NewLUT returns lookup table num with ninputs inputs and its truth table
// at offset base. ninputs must be in [1, 5].
//
func NewLUT(dev *Device, num, matrix, base, ninputs int) *LUT {
	if ninputs < 1 || ninputs > 5 {
		panic("lut " + strconv.Itoa(num) + ": invalid input count " + strconv.Itoa(ninputs))
	}
	return &LUT{dev: dev, num: num, matrix: matrix, base: base, ninputs: ninputs}
}

// Description implements bits.Primitive.
//
func (l *LUT) Description() string {
	return "LUT" + strconv.Itoa(l.ninputs) + "_" + strconv.Itoa(l.num)
}

// ConfigBase implements bits.Primitive.
//
func (l *LUT) ConfigBase() int { return l.base }

// NumInputs returns the number of LUT inputs.
//
func (l *LUT) NumInputs() int { return l.ninputs }

// Truth returns the truth table: bit i is the output for input value i.
//
func (l *LUT) Truth() uint32 { return l.truth }

// SetTruth sets the truth table.
//
func (l *LUT) SetTruth(t uint32) { l.truth = t }

// Save implements bits.Primitive.
//
func (l *LUT) Save(bs bits.Bitstream) error {
	width := 1 << uint(l.ninputs)
	if l.truth>>uint(width) != 0 {
		return errors.Errorf("truth table %#x does not fit %d inputs", l.truth, l.ninputs)
	}
	bs.SetField(l.base, width, l.truth)
	return nil
}

// Load implements bits.Primitive.
//
func (l *LUT) Load(bs bits.Bitstream) error {
	l.truth = bs.Field(l.base, 1<<uint(l.ninputs))
	return nil
}
