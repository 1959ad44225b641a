// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parlib

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/db47h/par/bits"
)

// catalog is the YAML form of a device: its bitstream length, its site
// graph and its primitives. Wires refer to sites by index.
type catalog struct {
	Bits       int           `yaml:"bits"`
	Sites      []catalogSite `yaml:"sites"`
	Wires      []catalogWire `yaml:"wires"`
	Primitives []catalogPrim `yaml:"primitives"`
}

type catalogSite struct {
	Label uint32 `yaml:"label"`
	Name  string `yaml:"name,omitempty"`
}

type catalogWire struct {
	Src  int    `yaml:"src"`
	Dst  int    `yaml:"dst"`
	Port uint32 `yaml:"port"`
}

type catalogPrim struct {
	Kind    string            `yaml:"kind"`
	Num     int               `yaml:"num"`
	Matrix  int               `yaml:"matrix"`
	Base    int               `yaml:"base"`
	SelBits int               `yaml:"selbits,omitempty"` // bufgmux
	Inputs  []catalogMuxInput `yaml:"inputs,omitempty"`  // bufgmux
	Source  string            `yaml:"source,omitempty"`  // bufg
	NInputs int               `yaml:"ninputs,omitempty"` // lut
	High    bool              `yaml:"high,omitempty"`    // rail
}

type catalogMuxInput struct {
	Src string `yaml:"src"`
	Sel uint32 `yaml:"sel"`
}

// LoadCatalog reads a device description from its YAML form.
//
// The catalog is trusted to allocate disjoint primitive slices; the
// loader only checks that each slice fits the declared bitstream length.
//
func LoadCatalog(r io.Reader) (*Device, error) {
	var c catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	if c.Bits < 0 {
		return nil, errors.Errorf("invalid bitstream length %d", c.Bits)
	}

	d := NewDevice(c.Bits)
	for _, s := range c.Sites {
		d.graph.AddNode(s.Label).SetName(s.Name)
	}
	for i, w := range c.Wires {
		if w.Src < 0 || w.Src >= d.graph.NumNodes() {
			return nil, errors.Errorf("wire %d: invalid source site %d", i, w.Src)
		}
		if w.Dst < 0 || w.Dst >= d.graph.NumNodes() {
			return nil, errors.Errorf("wire %d: invalid destination site %d", i, w.Dst)
		}
		d.graph.AddEdge(d.graph.NodeByIndex(w.Src), d.graph.NodeByIndex(w.Dst), w.Port)
	}

	for i, p := range c.Primitives {
		prim, width, err := buildPrim(d, p)
		if err != nil {
			return nil, errors.Wrapf(err, "primitive %d", i)
		}
		if p.Base < 0 || p.Base+width > c.Bits {
			return nil, errors.Errorf("primitive %d (%s): config slice [%d, %d) out of bitstream range",
				i, prim.Description(), p.Base, p.Base+width)
		}
		d.AddPrimitive(prim)
	}
	return d, nil
}

func buildPrim(d *Device, p catalogPrim) (bits.Primitive, int, error) {
	switch p.Kind {
	case "bufgmux":
		if p.SelBits < 1 || p.SelBits > 32 {
			return nil, 0, errors.Errorf("invalid selector width %d", p.SelBits)
		}
		inputs := make([]MuxInput, 0, len(p.Inputs))
		for _, in := range p.Inputs {
			src, err := ParseSource(in.Src)
			if err != nil {
				return nil, 0, err
			}
			if in.Sel>>uint(p.SelBits) != 0 {
				return nil, 0, errors.Errorf("selector %d does not fit %d bits", in.Sel, p.SelBits)
			}
			inputs = append(inputs, MuxInput{Src: src, Sel: in.Sel})
		}
		return NewMuxedClockBuffer(d, p.Num, p.Matrix, p.Base, p.SelBits, inputs), p.SelBits, nil
	case "bufg":
		src, err := ParseSource(p.Source)
		if err != nil {
			return nil, 0, err
		}
		return NewClockBuffer(d, p.Num, p.Matrix, p.Base, src), 1, nil
	case "ff":
		return NewFF(d, p.Num, p.Matrix, p.Base), ffBits, nil
	case "lut":
		if p.NInputs < 1 || p.NInputs > 5 {
			return nil, 0, errors.Errorf("invalid input count %d", p.NInputs)
		}
		return NewLUT(d, p.Num, p.Matrix, p.Base, p.NInputs), 1 << uint(p.NInputs), nil
	case "rail":
		return NewPowerRail(d, p.High), 0, nil
	default:
		return nil, 0, errors.Errorf("unknown primitive kind %q", p.Kind)
	}
}
