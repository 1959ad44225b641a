// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package par

// A Node is a vertex in a Graph. A netlist node stands for a logic
// instance, a device node for a physical site. Nodes with equal labels are
// interchangeable for placement.
//
type Node struct {
	label uint32
	name  string
	mate  *Node
	edges []*Edge
}

// Label returns the node's label.
//
func (n *Node) Label() uint32 { return n.label }

// Name returns the node's name. Names are optional and only used in
// diagnostics.
//
func (n *Node) Name() string { return n.name }

// SetName sets the node's name.
//
func (n *Node) SetName(name string) { n.name = name }

// Mate returns the node's mate in the companion graph, or nil if the node
// is unmated.
//
func (n *Node) Mate() *Node { return n.mate }

// MateWith pairs n with m, first breaking any existing pair on either
// side. Mating is symmetric: after the call n.Mate() == m and
// m.Mate() == n.
//
func (n *Node) MateWith(m *Node) {
	n.Unmate()
	m.Unmate()
	n.mate = m
	m.mate = n
}

// Unmate detaches n and its mate from each other. It is a no-op on an
// unmated node.
//
func (n *Node) Unmate() {
	if n.mate != nil {
		n.mate.mate = nil
		n.mate = nil
	}
}

// Edges returns the node's outgoing edges, in insertion order. The
// returned slice must not be modified.
//
func (n *Node) Edges() []*Edge { return n.edges }

// An Edge is a directed connection between two nodes of the same graph.
// Port names the input pin of Dst that the edge feeds; a device edge can
// realize a netlist edge only if both ports are equal.
//
type Edge struct {
	Src  *Node
	Dst  *Node
	Port uint32
}

// A Graph is a labeled directed multigraph. The zero value is an empty
// graph ready for use.
//
// Graphs come in pairs, netlist and device, tied together by the mate
// relation on their nodes. The label counters and by-label indexes are
// built on demand by CountLabels and IndexNodesByLabel and are NOT kept
// consistent across later mutations; callers re-request them as needed.
//
type Graph struct {
	nodes    []*Node
	numEdges int
	maxLabel uint32

	counts  []int     // by CountLabels
	byLabel [][]*Node // by IndexNodesByLabel
}

// AddNode creates a new node with the given label and appends it to the
// graph.
//
func (g *Graph) AddNode(label uint32) *Node {
	n := &Node{label: label}
	g.nodes = append(g.nodes, n)
	if label > g.maxLabel {
		g.maxLabel = label
	}
	return n
}

// AddEdge creates a new edge from src to dst feeding the given
// destination port. Both nodes must belong to g.
//
func (g *Graph) AddEdge(src, dst *Node, port uint32) *Edge {
	e := &Edge{Src: src, Dst: dst, Port: port}
	src.edges = append(src.edges, e)
	g.numEdges++
	return e
}

// NumNodes returns the number of nodes in the graph.
//
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of edges in the graph.
//
func (g *Graph) NumEdges() int { return g.numEdges }

// NodeByIndex returns the i-th node in insertion order.
//
func (g *Graph) NodeByIndex(i int) *Node { return g.nodes[i] }

// MaxLabel returns the largest label of any node in the graph, or 0 for
// an empty graph.
//
func (g *Graph) MaxLabel() uint32 { return g.maxLabel }

// CountLabels builds the per-label node counters queried by
// NumNodesWithLabel.
//
func (g *Graph) CountLabels() {
	g.counts = make([]int, g.maxLabel+1)
	for _, n := range g.nodes {
		g.counts[n.label]++
	}
}

// NumNodesWithLabel returns the number of nodes with the given label.
// CountLabels must have been called since the last mutation.
//
func (g *Graph) NumNodesWithLabel(label uint32) int {
	if int(label) >= len(g.counts) {
		return 0
	}
	return g.counts[label]
}

// IndexNodesByLabel builds the by-label indexes queried by
// NodesWithLabel and NodeByLabelAndIndex.
//
func (g *Graph) IndexNodesByLabel() {
	g.byLabel = make([][]*Node, g.maxLabel+1)
	for _, n := range g.nodes {
		g.byLabel[n.label] = append(g.byLabel[n.label], n)
	}
}

// NodesWithLabel returns the nodes with the given label, in insertion
// order. IndexNodesByLabel must have been called since the last mutation.
// The returned slice must not be modified.
//
func (g *Graph) NodesWithLabel(label uint32) []*Node {
	if int(label) >= len(g.byLabel) {
		return nil
	}
	return g.byLabel[label]
}

// NodeByLabelAndIndex returns the i-th node with the given label, in
// insertion order. IndexNodesByLabel must have been called since the last
// mutation.
//
func (g *Graph) NodeByLabelAndIndex(label uint32, i int) *Node {
	return g.byLabel[label][i]
}
