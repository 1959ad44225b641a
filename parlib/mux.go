// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parlib

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/db47h/par/bits"
)

// A MuxInput is one legal input of a mux-select primitive together with
// its selector encoding.
//
type MuxInput struct {
	Src Source
	Sel uint32
}

// A MuxedClockBuffer is a clock buffer fed through a configuration mux:
// one of its legal input sources is encoded as a small integer into
// contiguous bits of the bitstream, LSB first.
//
// For a 2-bit selector with muxsel = s1*2 + s0, bit base+0 holds s0 and
// bit base+1 holds s1.
//
type MuxedClockBuffer struct {
	dev     *Device
	num     int
	matrix  int
	base    int
	selBits int
	sels    map[Source]uint32
	bySel   map[uint32]Source
	input   Source
}

// NewMuxedClockBuffer returns clock buffer num on the given routing
// matrix, with a selBits-wide selector at bit offset base. inputs lists
// the legal input sources; when two inputs share a selector the first one
// wins on load. The input defaults to ground.
//
func NewMuxedClockBuffer(dev *Device, num, matrix, base, selBits int, inputs []MuxInput) *MuxedClockBuffer {
	m := &MuxedClockBuffer{
		dev:     dev,
		num:     num,
		matrix:  matrix,
		base:    base,
		selBits: selBits,
		sels:    make(map[Source]uint32, len(inputs)),
		bySel:   make(map[uint32]Source, len(inputs)),
		input:   Ground,
	}
	for _, in := range inputs {
		if _, ok := m.sels[in.Src]; !ok {
			m.sels[in.Src] = in.Sel
		}
		if _, ok := m.bySel[in.Sel]; !ok {
			m.bySel[in.Sel] = in.Src
		}
	}
	return m
}

// Description implements bits.Primitive.
//
func (m *MuxedClockBuffer) Description() string {
	return "BUFGMUX_" + strconv.Itoa(m.num)
}

// ConfigBase implements bits.Primitive.
//
func (m *MuxedClockBuffer) ConfigBase() int { return m.base }

// Input returns the currently selected input source.
//
func (m *MuxedClockBuffer) Input() Source { return m.input }

// SetInput selects the input source.
//
func (m *MuxedClockBuffer) SetInput(src Source) { m.input = src }

// Save writes the selector for the current input into the bitstream.
// A grounded input is legal even if ground is not a valid muxsel: nothing
// is written and the selector bits keep whatever they were cleared to.
//
func (m *MuxedClockBuffer) Save(bs bits.Bitstream) error {
	if m.input.IsRail() && !m.input.High() {
		return nil
	}

	sel, ok := m.sels[m.input]
	if !ok {
		return errors.Wrapf(bits.ErrInvalidInput, "source %s", m.input)
	}

	bs.SetField(m.base, m.selBits, sel)
	return nil
}

// Load reads the selector from the bitstream and selects the matching
// input. A selector with no matching input leaves the current input
// unchanged; on a newly built buffer that is the default, ground.
//
func (m *MuxedClockBuffer) Load(bs bits.Bitstream) error {
	sel := bs.Field(m.base, m.selBits)
	if src, ok := m.bySel[sel]; ok {
		m.input = src
	}
	return nil
}
