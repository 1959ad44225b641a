// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package partest provides utility functions for testing placements.
//
package partest

import (
	"testing"

	"github.com/db47h/par"
)

// CheckMates verifies the mating invariants on all nodes of g: a mated
// node's mate points back at it and both carry the same label.
//
func CheckMates(t *testing.T, g *par.Graph) {
	t.Helper()
	for i := 0; i < g.NumNodes(); i++ {
		n := g.NodeByIndex(i)
		m := n.Mate()
		if m == nil {
			continue
		}
		if m.Mate() != n {
			t.Errorf("node %d: asymmetric mating", i)
		}
		if m.Label() != n.Label() {
			t.Errorf("node %d: mated across labels %d and %d", i, n.Label(), m.Label())
		}
	}
}

// CheckComplete verifies that every node of g is mated.
//
func CheckComplete(t *testing.T, g *par.Graph) {
	t.Helper()
	for i := 0; i < g.NumNodes(); i++ {
		if g.NodeByIndex(i).Mate() == nil {
			t.Errorf("node %d: not mated", i)
		}
	}
}

// MatingOf captures the current mating as a slice mapping netlist node
// indexes to device node indexes, -1 for unmated nodes. Two runs of the
// engine produced the same placement if and only if their captures are
// equal.
//
func MatingOf(netlist, device *par.Graph) []int {
	index := make(map[*par.Node]int, device.NumNodes())
	for i := 0; i < device.NumNodes(); i++ {
		index[device.NodeByIndex(i)] = i
	}
	m := make([]int, netlist.NumNodes())
	for i := range m {
		if mate := netlist.NodeByIndex(i).Mate(); mate != nil {
			m[i] = index[mate]
		} else {
			m[i] = -1
		}
	}
	return m
}
