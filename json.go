package par

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// jsonGraph is the interchange form of a Graph. Edges refer to nodes by
// their insertion index.
type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	Label uint32 `json:"label"`
	Name  string `json:"name,omitempty"`
}

type jsonEdge struct {
	Src  int    `json:"src"`
	Dst  int    `json:"dst"`
	Port uint32 `json:"port"`
}

// ReadGraph reads a graph from its JSON interchange form.
//
func ReadGraph(r io.Reader) (*Graph, error) {
	var jg jsonGraph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jg); err != nil {
		return nil, errors.Wrap(err, "decode graph")
	}

	g := new(Graph)
	for _, jn := range jg.Nodes {
		g.AddNode(jn.Label).SetName(jn.Name)
	}
	for i, je := range jg.Edges {
		if je.Src < 0 || je.Src >= g.NumNodes() {
			return nil, errors.Errorf("edge %d: invalid source node %d", i, je.Src)
		}
		if je.Dst < 0 || je.Dst >= g.NumNodes() {
			return nil, errors.Errorf("edge %d: invalid destination node %d", i, je.Dst)
		}
		g.AddEdge(g.NodeByIndex(je.Src), g.NodeByIndex(je.Dst), je.Port)
	}
	return g, nil
}

// WriteGraph writes a graph in its JSON interchange form.
//
func WriteGraph(w io.Writer, g *Graph) error {
	jg := jsonGraph{
		Nodes: make([]jsonNode, g.NumNodes()),
		Edges: make([]jsonEdge, 0, g.NumEdges()),
	}
	index := make(map[*Node]int, g.NumNodes())
	for i := 0; i < g.NumNodes(); i++ {
		n := g.NodeByIndex(i)
		index[n] = i
		jg.Nodes[i] = jsonNode{Label: n.Label(), Name: n.Name()}
	}
	for i := 0; i < g.NumNodes(); i++ {
		for _, e := range g.NodeByIndex(i).Edges() {
			jg.Edges = append(jg.Edges, jsonEdge{Src: i, Dst: index[e.Dst], Port: e.Port})
		}
	}
	enc := json.NewEncoder(w)
	return errors.Wrap(enc.Encode(&jg), "encode graph")
}

// WriteMating writes the current mating of a placed netlist as a JSON
// object mapping netlist node names to device node names. Unmated and
// unnamed nodes are skipped.
//
func WriteMating(w io.Writer, netlist *Graph) error {
	m := make(map[string]string, netlist.NumNodes())
	for i := 0; i < netlist.NumNodes(); i++ {
		n := netlist.NodeByIndex(i)
		if n.Name() == "" || n.Mate() == nil {
			continue
		}
		m[n.Name()] = n.Mate().Name()
	}
	enc := json.NewEncoder(w)
	return errors.Wrap(enc.Encode(m), "encode mating")
}
