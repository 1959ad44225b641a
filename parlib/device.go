// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parlib

import (
	"github.com/db47h/par"
	"github.com/db47h/par/bits"
)

// A Device models one programmable device: its site/route graph for the
// placement engine, its catalog of configurable primitives and the length
// of its configuration bitstream.
//
type Device struct {
	graph *par.Graph
	prims []bits.Primitive
	nbits int
}

// NewDevice returns a device with a blank graph and an nbits-long
// bitstream.
//
func NewDevice(nbits int) *Device {
	return &Device{graph: new(par.Graph), nbits: nbits}
}

// Graph returns the device graph.
//
func (d *Device) Graph() *par.Graph { return d.graph }

// NumBits returns the length of the device's configuration bitstream.
//
func (d *Device) NumBits() int { return d.nbits }

// AddPrimitive appends a primitive to the device catalog. Primitives are
// serialized in insertion order.
//
func (d *Device) AddPrimitive(p bits.Primitive) { d.prims = append(d.prims, p) }

// Primitives returns the device catalog, in insertion order. The returned
// slice must not be modified.
//
func (d *Device) Primitives() []bits.Primitive { return d.prims }

// NewBitstream allocates a blank bitstream for the device.
//
func (d *Device) NewBitstream() bits.Bitstream { return bits.New(d.nbits) }

// Save serializes all primitives of the device into bs.
//
func (d *Device) Save(bs bits.Bitstream) error { return bits.Save(bs, d.prims) }

// Load populates all primitives of the device from bs.
//
func (d *Device) Load(bs bits.Bitstream) error { return bits.Load(bs, d.prims) }
