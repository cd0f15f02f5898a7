package raptor

import (
	"github.com/transitcore/raptor/internal/index"
	"github.com/transitcore/raptor/internal/network"
)

// Engine is the query-serving front for a loaded Network, per spec
// §4.5's orchestrator. It owns the route/trip index built once at load
// time and reused across every query.
type Engine struct {
	net *network.Network
	idx *index.Index
}

// NewEngine builds an Engine over an already-validated Network.
func NewEngine(net *network.Network) *Engine {
	return &Engine{net: net, idx: index.Build(net)}
}

// Query runs one journey search (spec §4.5): validates the inputs,
// runs the round scan, and reconstructs the best journey found. Returns
// (nil, nil) for "no journey" — the absence of a result is not itself
// an error (spec §7).
func (e *Engine) Query(originGID, destinationGID string, departureSeconds, maxRounds int) (*Journey, error) {
	origin, ok := e.net.StopByGID(originGID)
	if !ok {
		return nil, unknownStop(originGID)
	}
	destination, ok := e.net.StopByGID(destinationGID)
	if !ok {
		return nil, unknownStop(destinationGID)
	}
	if departureSeconds < 0 {
		return nil, inputDomain("departure time must be non-negative")
	}
	if maxRounds < 1 {
		return nil, inputDomain("max_rounds must be at least 1")
	}

	tables := scanRounds(e.net, e.idx, origin, destination, departureSeconds, maxRounds)

	journey, found := reconstruct(e.net, tables, origin, destination, departureSeconds)
	if !found {
		return nil, nil
	}
	return journey, nil
}
