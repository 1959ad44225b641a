// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package par

// A Strategy supplies the device specific placement heuristics and cost
// functions used by an Engine.
//
// FindSubOptimalPlacements returns the mated netlist nodes that
// contribute to the current cost and are candidates for relocation;
// unmated nodes must not be returned. ProposeNewPlacement
// returns a device site with the same label as pivot, or nil to skip the
// move. Proposing a site with a different label is an invariant violation
// and aborts the run.
//
// TimingCost and CongestionCost extend the engine's unroutability cost;
// implementations without timing or congestion models return 0.
//
type Strategy interface {
	FindSubOptimalPlacements(e *Engine) []*Node
	ProposeNewPlacement(e *Engine, pivot *Node) *Node
	TimingCost(e *Engine) uint32
	CongestionCost(e *Engine) uint32
}

// Exhaustive is the fallback Strategy: every mated netlist node is a
// relocation candidate and new sites are drawn uniformly at random among
// the sites with the pivot's label. Correct for any device, efficient for
// none.
//
type Exhaustive struct{}

// FindSubOptimalPlacements returns all mated netlist nodes.
//
func (Exhaustive) FindSubOptimalPlacements(e *Engine) []*Node {
	g := e.Netlist()
	nodes := make([]*Node, 0, g.NumNodes())
	for i := 0; i < g.NumNodes(); i++ {
		if n := g.NodeByIndex(i); n.Mate() != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// ProposeNewPlacement draws a random device site with the pivot's label.
// It returns nil if the drawn site is the pivot's current mate (always
// the case when that is the only such site) or if no such site exists.
//
func (Exhaustive) ProposeNewPlacement(e *Engine, pivot *Node) *Node {
	label := pivot.Label()
	n := e.Device().NumNodesWithLabel(label)
	if n == 0 {
		return nil
	}
	site := e.Device().NodeByLabelAndIndex(label, e.Rand().IntN(n))
	if site == pivot.Mate() {
		return nil
	}
	return site
}

// TimingCost returns 0: no timing analysis performed.
//
func (Exhaustive) TimingCost(*Engine) uint32 { return 0 }

// CongestionCost returns 0: no congestion analysis performed.
//
func (Exhaustive) CongestionCost(*Engine) uint32 { return 0 }
