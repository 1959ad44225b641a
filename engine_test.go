package par_test

import (
	"strings"
	"testing"

	"github.com/db47h/par"
	"github.com/db47h/par/partest"
)

// greedy is a deterministic test strategy: the relocation candidates are
// the sources of unroutable edges and the proposed site is the first
// same-label site that is not the pivot's current mate.
type greedy struct {
	par.Exhaustive
}

func (greedy) FindSubOptimalPlacements(e *par.Engine) []*par.Node {
	_, unroutes := e.UnroutableCost()
	seen := make(map[*par.Node]bool)
	var bad []*par.Node
	for _, u := range unroutes {
		if !seen[u.Src] {
			seen[u.Src] = true
			bad = append(bad, u.Src)
		}
	}
	return bad
}

func (greedy) ProposeNewPlacement(e *par.Engine, pivot *par.Node) *par.Node {
	d := e.Device()
	n := d.NumNodesWithLabel(pivot.Label())
	for i := 0; i < n; i++ {
		if s := d.NodeByLabelAndIndex(pivot.Label(), i); s != pivot.Mate() {
			return s
		}
	}
	return nil
}

func TestPlaceAndRoute_singleNode(t *testing.T) {
	var net, dev par.Graph
	n := net.AddNode(0)
	d := dev.AddNode(0)

	e := par.NewEngine(&net, &dev, nil)
	if err := e.PlaceAndRoute(1); err != nil {
		t.Fatal(err)
	}
	if n.Mate() != d {
		t.Error("single node not mated to single site")
	}
	partest.CheckMates(t, &net)
	partest.CheckComplete(t, &net)
}

func TestPlaceAndRoute_designTooBig(t *testing.T) {
	var net, dev par.Graph
	net.AddNode(3)
	net.AddNode(3)
	dev.AddNode(3)

	err := par.NewEngine(&net, &dev, nil).PlaceAndRoute(1)
	tbe, ok := err.(*par.TooBigError)
	if !ok {
		t.Fatalf("got error %v, want TooBigError", err)
	}
	if tbe.Label != 3 || tbe.Netlist != 2 || tbe.Device != 1 {
		t.Fatalf("got %+v, want label 3, 2 netlist nodes, 1 device node", tbe)
	}
	if !strings.Contains(err.Error(), "netlist has 2 nodes with label 3, device only has 1") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestPlaceAndRoute_labelNotInDevice(t *testing.T) {
	var net, dev par.Graph
	net.AddNode(5)
	dev.AddNode(4)

	err := par.NewEngine(&net, &dev, nil).PlaceAndRoute(1)
	lre, ok := err.(*par.LabelRangeError)
	if !ok {
		t.Fatalf("got error %v, want LabelRangeError", err)
	}
	if lre.Netlist != 5 || lre.Device != 4 {
		t.Fatalf("got %+v, want netlist 5, device 4", lre)
	}
	if !strings.Contains(err.Error(), "node with label 5, largest in device is 4") {
		t.Errorf("unexpected message %q", err)
	}
}

// A four node netlist that admits exactly one legal placement must end up
// in that placement.
func TestPlaceAndRoute_uniquePlacement(t *testing.T) {
	var net, dev par.Graph
	a := net.AddNode(0)
	b := net.AddNode(0)
	c := net.AddNode(1)
	d := net.AddNode(1)
	net.AddEdge(a, c, 0)
	net.AddEdge(b, d, 1)

	d0 := dev.AddNode(0)
	d1 := dev.AddNode(0)
	d2 := dev.AddNode(1)
	d3 := dev.AddNode(1)
	dev.AddEdge(d0, d2, 0)
	dev.AddEdge(d1, d3, 1)

	e := par.NewEngine(&net, &dev, greedy{})
	if err := e.PlaceAndRoute(42); err != nil {
		t.Fatal(err)
	}
	if a.Mate() != d0 || b.Mate() != d1 || c.Mate() != d2 || d.Mate() != d3 {
		t.Errorf("got mating %v, want the unique placement [0 1 2 3]", partest.MatingOf(&net, &dev))
	}
	if cost, _ := e.UnroutableCost(); cost != 0 {
		t.Errorf("got unroutable cost %d, want 0", cost)
	}
	partest.CheckMates(t, &net)
}

// The initial placement here is unroutable; a single move repairs it.
func TestPlaceAndRoute_repair(t *testing.T) {
	var net, dev par.Graph
	n0 := net.AddNode(0)
	n1 := net.AddNode(1)
	net.AddEdge(n0, n1, 0)

	d0 := dev.AddNode(0)
	d1 := dev.AddNode(0)
	d2 := dev.AddNode(1)
	dev.AddEdge(d1, d2, 0)

	e := par.NewEngine(&net, &dev, greedy{})
	if err := e.PlaceAndRoute(7); err != nil {
		t.Fatal(err)
	}
	if n0.Mate() != d1 || n1.Mate() != d2 {
		t.Errorf("got mating %v, want [1 2]", partest.MatingOf(&net, &dev))
	}
	if d0.Mate() != nil {
		t.Error("vacated site still mated")
	}
}

// Moving a node onto an occupied site swaps the two netlist nodes.
func TestPlaceAndRoute_swap(t *testing.T) {
	var net, dev par.Graph
	n0 := net.AddNode(0)
	n2 := net.AddNode(0)
	n1 := net.AddNode(1)
	net.AddEdge(n0, n1, 0)

	d0 := dev.AddNode(0)
	d1 := dev.AddNode(0)
	d2 := dev.AddNode(1)
	dev.AddEdge(d1, d2, 0)

	e := par.NewEngine(&net, &dev, greedy{})
	if err := e.PlaceAndRoute(7); err != nil {
		t.Fatal(err)
	}
	if n0.Mate() != d1 || n1.Mate() != d2 {
		t.Errorf("got mating %v, want n0 on site 1, n1 on site 2", partest.MatingOf(&net, &dev))
	}
	if n2.Mate() != d0 {
		t.Error("displaced node not swapped onto the pivot's old site")
	}
	partest.CheckMates(t, &net)
}

func TestPlaceAndRoute_unroutable(t *testing.T) {
	var net, dev par.Graph
	n0 := net.AddNode(0)
	n0.SetName("src")
	n1 := net.AddNode(0)
	n1.SetName("dst")
	edge := net.AddEdge(n0, n1, 4)

	dev.AddNode(0)
	dev.AddNode(0)

	err := par.NewEngine(&net, &dev, nil).PlaceAndRoute(3)
	ure, ok := err.(*par.UnroutableError)
	if !ok {
		t.Fatalf("got error %v, want UnroutableError", err)
	}
	if len(ure.Edges) != 1 || ure.Edges[0] != edge {
		t.Fatalf("got unroutes %v, want the single netlist edge", ure.Edges)
	}
	// the partial mating stays visible for diagnostics
	if n0.Mate() == nil || n1.Mate() == nil {
		t.Error("partial mating not left in place on failure")
	}
}

// Identical seeds must yield identical matings, and any run terminates.
func TestPlaceAndRoute_deterministic(t *testing.T) {
	build := func() (*par.Graph, *par.Graph) {
		var net, dev par.Graph
		a := net.AddNode(0)
		b := net.AddNode(0)
		c := net.AddNode(1)
		net.AddEdge(a, c, 0)
		net.AddEdge(b, c, 1)
		for i := 0; i < 4; i++ {
			dev.AddNode(0)
		}
		s := dev.AddNode(1)
		for i := 0; i < 4; i++ {
			dev.AddEdge(dev.NodeByIndex(i), s, 0)
			dev.AddEdge(dev.NodeByIndex(i), s, 1)
		}
		return &net, &dev
	}

	net1, dev1 := build()
	err1 := par.NewEngine(net1, dev1, nil).PlaceAndRoute(1234)
	net2, dev2 := build()
	err2 := par.NewEngine(net2, dev2, nil).PlaceAndRoute(1234)

	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("runs disagree: %v vs %v", err1, err2)
	}
	m1 := partest.MatingOf(net1, dev1)
	m2 := partest.MatingOf(net2, dev2)
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("matings diverge at node %d: %v vs %v", i, m1, m2)
		}
	}
	partest.CheckMates(t, net1)
}

func TestUnroutableCost(t *testing.T) {
	var net, dev par.Graph
	a := net.AddNode(0)
	b := net.AddNode(0)
	net.AddEdge(a, b, 1)
	bad := net.AddEdge(a, b, 2)

	da := dev.AddNode(0)
	db := dev.AddNode(0)
	dev.AddEdge(da, db, 1)
	dev.AddEdge(da, db, 3) // right route, wrong port

	a.MateWith(da)
	b.MateWith(db)

	e := par.NewEngine(&net, &dev, nil)
	cost, unroutes := e.UnroutableCost()
	if cost != 1 {
		t.Fatalf("got cost %d, want 1", cost)
	}
	if len(unroutes) != 1 || unroutes[0] != bad {
		t.Fatalf("got unroutes %v, want the port-2 edge", unroutes)
	}
}

func TestExhaustive(t *testing.T) {
	var net, dev par.Graph
	a := net.AddNode(0)
	net.AddNode(0) // unmated
	da := dev.AddNode(0)
	a.MateWith(da)
	dev.CountLabels()
	dev.IndexNodesByLabel()

	e := par.NewEngine(&net, &dev, nil)

	var x par.Exhaustive
	bad := x.FindSubOptimalPlacements(e)
	if len(bad) != 1 || bad[0] != a {
		t.Fatalf("got candidates %v, want only the mated node", bad)
	}
	if x.TimingCost(e) != 0 || x.CongestionCost(e) != 0 {
		t.Error("default timing and congestion costs must be zero")
	}
}
