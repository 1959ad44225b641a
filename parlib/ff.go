// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parlib

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/db47h/par/bits"
)

// ClockSrc is the clock source of a flip-flop.
//
type ClockSrc int

// Flip-flop clock sources. GCK0-2 are the global clock nets, PTC and CTC
// the product-term and control-term clocks.
const (
	ClkGCK0 ClockSrc = iota
	ClkGCK1
	ClkGCK2
	ClkPTC
	ClkCTC
)

// ResetSrc is the asynchronous reset source of a flip-flop.
//
type ResetSrc int

// Flip-flop reset sources.
const (
	RstPTA ResetSrc = iota
	RstGSR
	RstCTR
	RstDisabled
)

// SetSrc is the asynchronous set source of a flip-flop.
//
type SetSrc int

// Flip-flop set sources.
const (
	SetPTA SetSrc = iota
	SetGSR
	SetCTS
	SetDisabled
)

// ffBits is the width of a flip-flop's configuration slice:
//
//	bit 0: aclk (control-term clock when the clock pair reads 3)
//	bit 1: falling-edge trigger
//	bits 2-3: clock source pair
//	bits 4-5: reset source
//	bits 6-7: set source
//	bit 8: initial state
const ffBits = 9

// A FF is a flip-flop macrocell. Set and reset default to disabled and
// the initial state to 1.
//
type FF struct {
	dev    *Device
	num    int
	matrix int
	base   int

	clk         ClockSrc
	fallingEdge bool
	rst         ResetSrc
	set         SetSrc
	initState   bool
}

// NewFF returns flip-flop num with its configuration slice at offset
// base.
//
func NewFF(dev *Device, num, matrix, base int) *FF {
	return &FF{
		dev:       dev,
		num:       num,
		matrix:    matrix,
		base:      base,
		rst:       RstDisabled,
		set:       SetDisabled,
		initState: true,
	}
}

// Description implements bits.Primitive.
//
func (f *FF) Description() string { return "FF_" + strconv.Itoa(f.num) }

// ConfigBase implements bits.Primitive.
//
func (f *FF) ConfigBase() int { return f.base }

// Clock returns the clock source.
//
func (f *FF) Clock() ClockSrc { return f.clk }

// SetClock sets the clock source.
//
func (f *FF) SetClock(src ClockSrc) { f.clk = src }

// FallingEdge reports whether the flip-flop triggers on the falling
// clock edge.
//
func (f *FF) FallingEdge() bool { return f.fallingEdge }

// SetFallingEdge selects falling-edge triggering.
//
func (f *FF) SetFallingEdge(on bool) { f.fallingEdge = on }

// Reset returns the asynchronous reset source.
//
func (f *FF) Reset() ResetSrc { return f.rst }

// SetReset sets the asynchronous reset source.
//
func (f *FF) SetReset(src ResetSrc) { f.rst = src }

// Set returns the asynchronous set source.
//
func (f *FF) Set() SetSrc { return f.set }

// SetSet sets the asynchronous set source.
//
func (f *FF) SetSet(src SetSrc) { f.set = src }

// InitState returns the flip-flop's power-up state.
//
func (f *FF) InitState() bool { return f.initState }

// SetInitState sets the flip-flop's power-up state.
//
func (f *FF) SetInitState(s bool) { f.initState = s }

// Save implements bits.Primitive.
//
func (f *FF) Save(bs bits.Bitstream) error {
	var aclk, c0, c1 bool
	switch f.clk {
	case ClkGCK0:
	case ClkGCK1:
		c1 = true
	case ClkGCK2:
		c0 = true
	case ClkPTC:
		c0, c1 = true, true
	case ClkCTC:
		c0, c1, aclk = true, true, true
	default:
		return errors.Errorf("invalid clock source %d", f.clk)
	}
	if f.rst < RstPTA || f.rst > RstDisabled {
		return errors.Errorf("invalid reset source %d", f.rst)
	}
	if f.set < SetPTA || f.set > SetDisabled {
		return errors.Errorf("invalid set source %d", f.set)
	}

	bs[f.base+0] = aclk
	bs[f.base+1] = f.fallingEdge
	bs[f.base+2] = c0
	bs[f.base+3] = c1
	bs.SetField(f.base+4, 2, uint32(f.rst))
	bs.SetField(f.base+6, 2, uint32(f.set))
	bs[f.base+8] = f.initState
	return nil
}

// Load implements bits.Primitive.
//
func (f *FF) Load(bs bits.Bitstream) error {
	aclk := bs[f.base+0]
	c0, c1 := bs[f.base+2], bs[f.base+3]
	switch {
	case !c0 && !c1:
		f.clk = ClkGCK0
	case !c0 && c1:
		f.clk = ClkGCK1
	case c0 && !c1:
		f.clk = ClkGCK2
	case aclk:
		f.clk = ClkCTC
	default:
		f.clk = ClkPTC
	}

	f.fallingEdge = bs[f.base+1]
	f.rst = ResetSrc(bs.Field(f.base+4, 2))
	f.set = SetSrc(bs.Field(f.base+6, 2))
	f.initState = bs[f.base+8]
	return nil
}
