// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package parlib provides a library of device primitives for par.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package parlib

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Source identifies the driver of a primitive input: either a net of a
// routing matrix, or a power rail tie-off.
//
// Power rails are sentinels: a primitive whose input is tied to ground is
// a legal configuration regardless of whether ground corresponds to any
// mux-select encoding.
//
type Source struct {
	matrix int
	net    int
	rail   bool
	high   bool
}

// Power rail sources.
var (
	Ground = Source{rail: true}
	Vcc    = Source{rail: true, high: true}
)

// MatrixNet returns the source driven by the given net of a routing
// matrix.
//
func MatrixNet(matrix, net int) Source {
	return Source{matrix: matrix, net: net}
}

// IsRail reports whether s is a power rail tie-off.
//
func (s Source) IsRail() bool { return s.rail }

// High reports the rail value of a power rail source: false for ground,
// true for Vcc.
//
func (s Source) High() bool { return s.high }

// Matrix returns the routing matrix of a net source.
//
func (s Source) Matrix() int { return s.matrix }

// Net returns the net number of a net source.
//
func (s Source) Net() int { return s.net }

func (s Source) String() string {
	if s.rail {
		if s.high {
			return "vcc"
		}
		return "ground"
	}
	return "m" + strconv.Itoa(s.matrix) + "." + strconv.Itoa(s.net)
}

// ParseSource parses the compact text form of a source: "ground", "vcc",
// or "mM.N" for net N of routing matrix M.
//
func ParseSource(str string) (Source, error) {
	switch str {
	case "ground":
		return Ground, nil
	case "vcc":
		return Vcc, nil
	}
	if !strings.HasPrefix(str, "m") {
		return Source{}, errors.Errorf("invalid source %q", str)
	}
	i := strings.IndexRune(str, '.')
	if i < 0 {
		return Source{}, errors.Errorf("invalid source %q: missing net number", str)
	}
	matrix, err := strconv.Atoi(str[1:i])
	if err != nil {
		return Source{}, errors.Wrapf(err, "invalid source %q", str)
	}
	net, err := strconv.Atoi(str[i+1:])
	if err != nil {
		return Source{}, errors.Wrapf(err, "invalid source %q", str)
	}
	if matrix < 0 || net < 0 {
		return Source{}, errors.Errorf("invalid source %q", str)
	}
	return MatrixNet(matrix, net), nil
}
