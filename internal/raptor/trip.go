package raptor

import "github.com/transitcore/raptor/internal/network"

// earliestTrip implements spec §4.2: the first trip of route whose
// departure at stopPos (the stop's position within the route's stop
// sequence) is >= readyTime. Trips for one route are pre-sorted by
// departure at the route's first stop (see network.Builder), so this is a
// linear scan with strict "<" replacement — the reference behavior spec.md
// calls out, and the same shape as the teacher's inline trip search in
// routing.Raptor.FindRoute ("for _, trip := range route.Trips { if dep >=
// prevArrival { ...; break } }"), lifted into its own function.
func earliestTrip(trips []network.Trip, stopPos int, readyTime int) (network.Trip, bool) {
	var best network.Trip
	found := false
	for _, t := range trips {
		dep := t.StopTimes[stopPos].Departure
		if dep < readyTime {
			continue
		}
		if !found || dep < best.StopTimes[stopPos].Departure {
			best = t
			found = true
		}
	}
	return best, found
}
