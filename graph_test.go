package par_test

import (
	"testing"

	"github.com/db47h/par"
)

func TestGraph_mating(t *testing.T) {
	var net, dev par.Graph
	a := net.AddNode(1)
	b := dev.AddNode(1)
	c := dev.AddNode(1)

	a.MateWith(b)
	if a.Mate() != b || b.Mate() != a {
		t.Fatal("mating not symmetric")
	}

	// re-mating breaks the old pair on both sides
	a.MateWith(c)
	if b.Mate() != nil {
		t.Error("old mate not detached")
	}
	if a.Mate() != c || c.Mate() != a {
		t.Error("new pair not established")
	}

	a.Unmate()
	if a.Mate() != nil || c.Mate() != nil {
		t.Error("unmate not symmetric")
	}
	// no-op on an unmated node
	a.Unmate()
}

func TestGraph_labelIndexes(t *testing.T) {
	var g par.Graph
	labels := []uint32{0, 3, 3, 1, 3, 0}
	for _, l := range labels {
		g.AddNode(l)
	}
	if g.NumNodes() != len(labels) {
		t.Fatalf("got %d nodes, want %d", g.NumNodes(), len(labels))
	}
	if g.MaxLabel() != 3 {
		t.Fatalf("got max label %d, want 3", g.MaxLabel())
	}

	g.CountLabels()
	for l, want := range map[uint32]int{0: 2, 1: 1, 2: 0, 3: 3, 4: 0} {
		if got := g.NumNodesWithLabel(l); got != want {
			t.Errorf("label %d: got %d nodes, want %d", l, got, want)
		}
	}

	g.IndexNodesByLabel()
	if got := len(g.NodesWithLabel(3)); got != 3 {
		t.Fatalf("label 3: got %d indexed nodes, want 3", got)
	}
	// insertion order within a label
	if g.NodeByLabelAndIndex(3, 0) != g.NodeByIndex(1) ||
		g.NodeByLabelAndIndex(3, 2) != g.NodeByIndex(4) {
		t.Error("by-label index out of insertion order")
	}
	if g.NodesWithLabel(7) != nil {
		t.Error("expected no nodes for out of range label")
	}
}

func TestGraph_edges(t *testing.T) {
	var g par.Graph
	a := g.AddNode(0)
	b := g.AddNode(0)

	g.AddEdge(a, b, 2)
	g.AddEdge(a, b, 3)
	if g.NumEdges() != 2 {
		t.Fatalf("got %d edges, want 2", g.NumEdges())
	}
	es := a.Edges()
	if len(es) != 2 || es[0].Port != 2 || es[1].Port != 3 {
		t.Fatalf("unexpected edge list %v", es)
	}
	if es[0].Src != a || es[0].Dst != b {
		t.Error("wrong edge endpoints")
	}
	if len(b.Edges()) != 0 {
		t.Error("edges are directed; b should have none")
	}
}
