// Package index builds the two read-only lookups the RAPTOR round
// scanner needs: which routes serve a stop, and which trips run a route.
package index

import "github.com/transitcore/raptor/internal/network"

// Index is the eager, array-backed lookup built once from a Network. It
// is read-only and safe to share across concurrent queries.
type Index struct {
	// RoutesAtStop[s] lists, in deterministic insertion order and
	// de-duplicated, every route serving stop s. Stops served by no
	// route are simply absent (nil slice), per spec §4.1.
	RoutesAtStop [][]network.RouteID

	// TripsOnRoute[r] is network.Trips restricted to route r, already
	// sorted ascending by departure at the route's first stop (the
	// network builder performs the sort; this is just the partition).
	TripsOnRoute [][]network.Trip
}

// Build constructs the Index from net. net must already be validated.
func Build(net *network.Network) *Index {
	idx := &Index{
		RoutesAtStop: make([][]network.RouteID, len(net.Stops)),
		TripsOnRoute: make([][]network.Trip, len(net.Routes)),
	}

	seen := make([][]bool, len(net.Stops))
	for _, r := range net.Routes {
		for _, s := range r.Stops {
			if seen[s] == nil {
				seen[s] = make([]bool, len(net.Routes))
			}
			if seen[s][r.ID] {
				continue
			}
			seen[s][r.ID] = true
			idx.RoutesAtStop[s] = append(idx.RoutesAtStop[s], r.ID)
		}
	}

	for _, t := range net.Trips {
		idx.TripsOnRoute[t.Route] = append(idx.TripsOnRoute[t.Route], t)
	}

	return idx
}
