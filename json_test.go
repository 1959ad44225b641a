package par_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/par"
)

const testGraphJSON = `{
	"nodes": [
		{"label": 0, "name": "ff0"},
		{"label": 0, "name": "ff1"},
		{"label": 2, "name": "clk"}
	],
	"edges": [
		{"src": 2, "dst": 0, "port": 1},
		{"src": 2, "dst": 1, "port": 1}
	]
}`

func TestReadGraph(t *testing.T) {
	g, err := par.ReadGraph(strings.NewReader(testGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 3 || g.NumEdges() != 2 {
		t.Fatalf("got %d nodes, %d edges, want 3 and 2", g.NumNodes(), g.NumEdges())
	}
	if g.MaxLabel() != 2 {
		t.Errorf("got max label %d, want 2", g.MaxLabel())
	}
	clk := g.NodeByIndex(2)
	if clk.Name() != "clk" || len(clk.Edges()) != 2 {
		t.Errorf("got node %q with %d edges, want clk with 2", clk.Name(), len(clk.Edges()))
	}
	if e := clk.Edges()[1]; e.Dst != g.NodeByIndex(1) || e.Port != 1 {
		t.Error("edge endpoints not resolved by index")
	}
}

func TestReadGraph_errors(t *testing.T) {
	td := []struct {
		name string
		in   string
	}{
		{"bad src", `{"nodes": [{"label": 0}], "edges": [{"src": 1, "dst": 0, "port": 0}]}`},
		{"bad dst", `{"nodes": [{"label": 0}], "edges": [{"src": 0, "dst": -1, "port": 0}]}`},
		{"unknown field", `{"wires": []}`},
		{"syntax", `{"nodes": [`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if _, err := par.ReadGraph(strings.NewReader(d.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteGraph_roundTrip(t *testing.T) {
	g, err := par.ReadGraph(strings.NewReader(testGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := par.WriteGraph(&buf, g); err != nil {
		t.Fatal(err)
	}
	h, err := par.ReadGraph(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.NumNodes() != g.NumNodes() || h.NumEdges() != g.NumEdges() {
		t.Fatalf("round trip changed the graph: %d/%d nodes, %d/%d edges",
			g.NumNodes(), h.NumNodes(), g.NumEdges(), h.NumEdges())
	}
	for i := 0; i < g.NumNodes(); i++ {
		a, b := g.NodeByIndex(i), h.NodeByIndex(i)
		if a.Label() != b.Label() || a.Name() != b.Name() {
			t.Errorf("node %d: got label %d name %q, want label %d name %q",
				i, b.Label(), b.Name(), a.Label(), a.Name())
		}
	}
}

func TestWriteMating(t *testing.T) {
	var net, dev par.Graph
	n := net.AddNode(0)
	n.SetName("ff0")
	net.AddNode(0) // unnamed, skipped
	d := dev.AddNode(0)
	d.SetName("MC_1")
	n.MateWith(d)

	var buf bytes.Buffer
	if err := par.WriteMating(&buf, &net); err != nil {
		t.Fatal(err)
	}
	want := `{"ff0":"MC_1"}` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
