/*
Package par implements graph-based place and route for tiny programmable
logic devices.

Both the synthesized netlist and the device are described by the same
labeled graph abstraction: nodes are logic instances (or device sites) and
edges are requested (or available) routes. Two nodes are
placement-compatible if and only if their labels are equal. The engine
anneals a mating between the two graphs until every netlist edge has a
matching device edge, or gives up.

Device specific placement heuristics and cost functions plug in through
the Strategy interface.
*/
package par
