// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package par

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plan-systems/klog"
)

// startTemperature is the initial annealing temperature. The temperature
// is also the percent probability of accepting a cost-worsening move.
const startTemperature = 100

// maxStall is the number of iterations without improvement after which
// the anneal loop gives up.
const maxStall = 5

// A TooBigError reports a netlist with more nodes of some label than the
// device has sites.
//
type TooBigError struct {
	Label   uint32
	Netlist int
	Device  int
}

func (e *TooBigError) Error() string {
	return fmt.Sprintf("design is too big for the device (netlist has %d nodes with label %d, device only has %d)",
		e.Netlist, e.Label, e.Device)
}

// A LabelRangeError reports a netlist node whose label does not exist in
// the device at all.
//
type LabelRangeError struct {
	Netlist uint32
	Device  uint32
}

func (e *LabelRangeError) Error() string {
	return fmt.Sprintf("netlist contains a node with label %d, largest in device is %d",
		e.Netlist, e.Device)
}

// An UnroutableError reports netlist edges that have no matching device
// edge between the mates of their endpoints after the anneal converged.
//
type UnroutableError struct {
	Edges []*Edge
}

func (e *UnroutableError) Error() string {
	return fmt.Sprintf("%d nets could not be completely routed", len(e.Edges))
}

// An Engine places a netlist graph onto a device graph by simulated
// annealing and verifies that the resulting mating is routable.
//
// An Engine owns both graphs for the duration of PlaceAndRoute;
// concurrent callers must serialize externally.
//
type Engine struct {
	netlist *Graph
	device  *Graph
	strat   Strategy

	rng         *rand.Rand
	temperature int
}

// NewEngine returns an engine placing netlist onto device using the given
// strategy. A nil strategy defaults to Exhaustive.
//
func NewEngine(netlist, device *Graph, strat Strategy) *Engine {
	if strat == nil {
		strat = Exhaustive{}
	}
	return &Engine{netlist: netlist, device: device, strat: strat}
}

// Netlist returns the netlist graph.
//
func (e *Engine) Netlist() *Graph { return e.netlist }

// Device returns the device graph.
//
func (e *Engine) Device() *Graph { return e.device }

// Rand returns the engine's random number generator. It is only valid
// during a PlaceAndRoute call, where strategies may use it so that runs
// stay reproducible under a fixed seed.
//
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Temperature returns the current annealing temperature, in [0, 100].
//
func (e *Engine) Temperature() int { return e.temperature }

// PlaceAndRoute mates every netlist node with a device node such that
// every netlist edge is realized by a device edge.
//
// The engine uses a PCG generator seeded from seed, so identical seeds
// yield identical matings on every platform. On failure the partial
// mating is left in place for diagnostics; callers may retry with a
// different seed to escape a bad local minimum.
//
func (e *Engine) PlaceAndRoute(seed uint64) error {
	klog.V(1).Infof("par: initializing (seed %d)", seed)
	e.temperature = startTemperature
	e.rng = rand.New(rand.NewPCG(seed, 0))

	// reject designs that are provably too big before doing any work
	if err := e.sanityCheck(); err != nil {
		klog.Errorf("par: %v", err)
		return err
	}

	e.initialPlacement()

	// converge until we get a passing placement
	bestCost := uint32(math.MaxUint32)
	stall := 0
	for iteration := 0; ; iteration++ {
		cost := e.logScore(iteration)
		stall++
		if cost < bestCost {
			bestCost = cost
			stall = 0
		}
		if stall >= maxStall {
			break
		}
		if !e.optimizePlacement() {
			break
		}
		// cool the system down
		if e.temperature > 0 {
			e.temperature--
		}
	}

	// check for any remaining unroutable nets
	cost, unroutes := e.UnroutableCost()
	if cost != 0 {
		err := &UnroutableError{Edges: unroutes}
		klog.Errorf("par: %v", err)
		e.logUnroutes(unroutes)
		return err
	}
	return nil
}

// sanityCheck quickly finds obviously unroutable designs: netlists with
// more nodes of some label than the device has sites.
//
func (e *Engine) sanityCheck() error {
	maxNet := e.netlist.MaxLabel()
	maxDev := e.device.MaxLabel()
	if maxNet > maxDev {
		return &LabelRangeError{Netlist: maxNet, Device: maxDev}
	}

	e.netlist.CountLabels()
	e.device.CountLabels()

	for label := uint32(0); label <= maxNet; label++ {
		nnet := e.netlist.NumNodesWithLabel(label)
		ndev := e.device.NumNodesWithLabel(label)
		if nnet > ndev {
			return &TooBigError{Label: label, Netlist: nnet, Device: ndev}
		}
	}
	return nil
}

// initialPlacement generates a placement that is legal but may or may not
// be routable: for each label, the i-th netlist node is mated with the
// i-th device site. Deterministic by construction.
//
func (e *Engine) initialPlacement() {
	klog.V(1).Infof("par: global placement of %d instances into %d sites (%d nets, %d routing channels)",
		e.netlist.NumNodes(), e.device.NumNodes(), e.netlist.NumEdges(), e.device.NumEdges())

	e.netlist.IndexNodesByLabel()
	e.device.IndexNodesByLabel()

	maxNet := e.netlist.MaxLabel()
	for label := uint32(0); label <= maxNet; label++ {
		nnet := e.netlist.NumNodesWithLabel(label)
		for i := 0; i < nnet; i++ {
			e.netlist.NodeByLabelAndIndex(label, i).MateWith(e.device.NodeByLabelAndIndex(label, i))
		}
	}
}

// optimizePlacement tries a single annealing move. It returns false once
// no further optimization is possible: the temperature reached zero or no
// node contributes to the cost.
//
func (e *Engine) optimizePlacement() bool {
	if e.temperature == 0 {
		return false
	}

	bad := e.strat.FindSubOptimalPlacements(e)
	if len(bad) == 0 {
		return false
	}

	// pick a pivot at random and ask the strategy for a new site for it.
	// No candidate site is a soft skip, not a failure.
	pivot := bad[e.rng.IntN(len(bad))]
	oldMate := pivot.Mate()
	newMate := e.strat.ProposeNewPlacement(e, pivot)
	if newMate == nil {
		return true
	}

	oldCost := e.computeCost()
	e.moveNode(pivot, newMate)
	newCost := e.computeCost()

	// accept improving moves, and worsening moves with probability
	// temperature/100
	if newCost < oldCost {
		return true
	}
	if e.rng.IntN(100) < e.temperature {
		return true
	}

	// revert
	e.moveNode(pivot, oldMate)
	return true
}

// moveNode moves a netlist node to a new device site. If the site is
// already mated to another netlist node, the two netlist nodes swap
// sites. A label mismatch here is an engine bug, not user error, and
// aborts the process.
//
func (e *Engine) moveNode(node, newpos *Node) {
	if node.Label() != newpos.Label() {
		klog.Fatalf("par: internal error: tried to assign node %q (label %d) to illegal site %q (label %d)",
			node.Name(), node.Label(), newpos.Name(), newpos.Label())
	}

	if other := newpos.Mate(); other != nil {
		if oldpos := node.Mate(); oldpos != nil {
			other.MateWith(oldpos)
		} else {
			other.Unmate()
		}
	}
	node.MateWith(newpos)
}

// computeCost computes the total cost of the current placement.
//
func (e *Engine) computeCost() uint32 {
	cost, _ := e.UnroutableCost()
	return cost + e.strat.TimingCost(e) + e.strat.CongestionCost(e)
}

// UnroutableCost computes the unroutability cost of the current mating:
// the number of netlist edges with no device edge between the mates of
// their endpoints feeding the same destination port. The offending edges
// are returned alongside.
//
// Shared-wire contention is deliberately not checked here; that is the
// congestion cost's job.
//
func (e *Engine) UnroutableCost() (uint32, []*Edge) {
	var cost uint32
	var unroutes []*Edge

	for i := 0; i < e.netlist.NumNodes(); i++ {
		netsrc := e.netlist.NodeByIndex(i)
		devsrc := netsrc.Mate()
		for _, nedge := range netsrc.Edges() {
			devdst := nedge.Dst.Mate()
			found := false
			if devsrc != nil && devdst != nil {
				for _, dedge := range devsrc.Edges() {
					if dedge.Dst == devdst && dedge.Port == nedge.Port {
						found = true
						break
					}
				}
			}
			if !found {
				unroutes = append(unroutes, nedge)
				cost++
			}
		}
	}
	return cost, unroutes
}

// logScore logs the cost breakdown for the current iteration and returns
// the total cost.
//
func (e *Engine) logScore(iteration int) uint32 {
	ucost, _ := e.UnroutableCost()
	tcost := e.strat.TimingCost(e)
	ccost := e.strat.CongestionCost(e)
	cost := ucost + tcost + ccost
	klog.V(1).Infof("par: iteration %d: unroutability %d, congestion %d, timing %d (total %d)",
		iteration, ucost, ccost, tcost, cost)
	return cost
}

// logUnroutes reports the unroutable edges.
//
func (e *Engine) logUnroutes(unroutes []*Edge) {
	for _, u := range unroutes {
		klog.Errorf("par: unroutable: %s -> %s (port %d)",
			nodeDesc(u.Src), nodeDesc(u.Dst), u.Port)
	}
}

func nodeDesc(n *Node) string {
	if n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("<label %d>", n.Label())
}
