package raptor

import (
	"github.com/transitcore/raptor/internal/index"
	"github.com/transitcore/raptor/internal/network"
)

// scanRounds runs spec §4.3's K-round relaxation and returns one
// roundTable per round actually computed (tables[0] is the trivial
// round-0 label, tables[len-1] is the last round run before either
// maxRounds was reached or early termination fired).
func scanRounds(net *network.Network, idx *index.Index, origin network.StopID, destination network.StopID, departureSeconds int, maxRounds int) []roundTable {
	numStops := len(net.Stops)

	tables := make([]roundTable, 1, maxRounds+1)
	tables[0] = newRoundTable(numStops)
	tables[0][origin] = label{Arrival: departureSeconds, Round: 0}

	marked := []network.StopID{origin}
	inMarked := make([]bool, numStops)
	inMarked[origin] = true

	for k := 1; k <= maxRounds; k++ {
		prev := tables[k-1]
		cur := make(roundTable, numStops)
		copy(cur, prev)

		routeQueue := buildRouteQueue(idx, marked)

		// reset marked for this round's writes
		for _, s := range marked {
			inMarked[s] = false
		}
		marked = marked[:0]

		for _, r := range routeQueue {
			scanRoute(net, idx, r, k, prev, cur, destination, &marked, inMarked)
		}

		tables = append(tables, cur)

		// Early termination: once the destination has a label, a round that
		// did not improve it ends the scan. Before the destination is first
		// reached, rounds continue up to maxRounds.
		if cur.reached(destination) && !inMarked[destination] {
			break
		}
	}

	return tables
}

// buildRouteQueue collects, in deterministic insertion order, every route
// serving a marked stop, each appearing at most once. A plain Go map here
// (as the teacher's FindRoute does with `routesToProcess map[RouteID]StopID`)
// would make route-scan order depend on map iteration, which spec §5
// explicitly forbids for reproducible reconstruction; a seen-slice keeps
// the order tied to the marked-stop slice's own order instead.
func buildRouteQueue(idx *index.Index, marked []network.StopID) []network.RouteID {
	seen := make(map[network.RouteID]bool)
	var queue []network.RouteID
	for _, s := range marked {
		for _, r := range idx.RoutesAtStop[s] {
			if seen[r] {
				continue
			}
			seen[r] = true
			queue = append(queue, r)
		}
	}
	return queue
}

// scanRoute performs one route scan (spec §4.3 step 4): picks the hop-on
// stop, boards the earliest trip there, walks the route forward writing
// improved arrivals into cur, and — per the mandated boarding-update
// policy — re-checks at every subsequent stop whether labels[k-1] permits
// catching a strictly earlier trip, swapping the board point if so.
func scanRoute(net *network.Network, idx *index.Index, r network.RouteID, round int, prev, cur roundTable, destination network.StopID, marked *[]network.StopID, inMarked []bool) {
	stops := net.Routes[r].Stops
	trips := idx.TripsOnRoute[r]
	if len(trips) == 0 {
		return
	}

	hopPos := -1
	hopArrival := unreached
	for pos, s := range stops {
		if prev.reached(s) && prev.arrival(s) < hopArrival {
			hopArrival = prev.arrival(s)
			hopPos = pos
		}
	}
	if hopPos == -1 {
		return
	}

	var (
		boarded   bool
		boardStop network.StopID
		current   network.Trip
	)

	for pos := hopPos; pos < len(stops); pos++ {
		stop := stops[pos]

		if boarded {
			arrival := current.StopTimes[pos].Arrival
			improves := !cur.reached(stop) || arrival < cur.arrival(stop)
			beatsDestination := !cur.reached(destination) || arrival < cur.arrival(destination)
			if improves && beatsDestination {
				cur[stop] = label{
					Arrival: arrival,
					Parent:  boardStop,
					TripID:  current.ID,
					HasTrip: true,
					Round:   round,
				}
				if !inMarked[stop] {
					inMarked[stop] = true
					*marked = append(*marked, stop)
				}
			}
		}

		// Boarding-update policy (mandated swap, spec §4.3 / §9 open
		// question 1): re-check at every stop, not just the hop-on,
		// whether the round-(k-1) label here permits catching a trip
		// that reaches downstream stops earlier than the one currently
		// boarded. prev (not cur) bounds the ready time because a
		// passenger can only board using an arrival achieved in a
		// strictly earlier round.
		if prev.reached(stop) {
			ready := prev.arrival(stop)
			if candidate, ok := earliestTrip(trips, pos, ready); ok {
				if !boarded || candidate.StopTimes[pos].Arrival < current.StopTimes[pos].Arrival {
					current = candidate
					boardStop = stop
					boarded = true
				}
			}
		}
	}
}
