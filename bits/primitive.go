// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bits

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// ErrInvalidInput reports a primitive whose selected input is neither in
// its legal input set nor a grounded power rail.
//
var ErrInvalidInput = errors.New("invalid input")

// A Primitive is a configurable device resource with a slice of the
// bitstream to call its own.
//
// Save serializes the primitive's logical state into the bitstream and
// fails if that state is inconsistent, e.g. an input outside the legal
// set that is not a grounded power rail. Load populates the logical state
// from the bitstream and fails if the encoded state is invalid for this
// primitive.
//
type Primitive interface {
	// Description identifies the primitive in diagnostics.
	Description() string
	// ConfigBase is the absolute bit offset of the primitive's
	// configuration slice.
	ConfigBase() int
	Load(bs Bitstream) error
	Save(bs Bitstream) error
}

// Save serializes all primitives into the bitstream, in order. The first
// failure aborts serialization.
//
func Save(bs Bitstream, prims []Primitive) error {
	for _, p := range prims {
		if err := p.Save(bs); err != nil {
			klog.Errorf("bits: %s: save: %v", p.Description(), err)
			return errors.Wrap(err, p.Description())
		}
	}
	return nil
}

// Load populates all primitives from the bitstream, in order. The first
// failure aborts loading.
//
func Load(bs Bitstream, prims []Primitive) error {
	for _, p := range prims {
		if err := p.Load(bs); err != nil {
			klog.Errorf("bits: %s: load: %v", p.Description(), err)
			return errors.Wrap(err, p.Description())
		}
	}
	return nil
}
