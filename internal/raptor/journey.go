package raptor

import "github.com/transitcore/raptor/internal/network"

// Leg is one boarded vehicle segment of a Journey.
type Leg struct {
	FromStop network.StopID
	ToStop   network.StopID
	Trip     network.Trip
	Depart   int
	Arrive   int
}

// Journey is the reconstructed result of a query (spec §3).
type Journey struct {
	Origin      network.StopID
	Destination network.StopID
	Departure   int
	Arrival     int
	Legs        []Leg
}

// Transfers is spec §8's J.get_num_transfers(): len(legs) - 1, floored at 0.
func (j *Journey) Transfers() int {
	if len(j.Legs) == 0 {
		return 0
	}
	return len(j.Legs) - 1
}

// reconstruct implements spec §4.4: find the best round for the
// destination, then walk parent pointers back to the origin, emitting
// legs in chronological order. Returns (nil, false) if no round reached
// the destination at all ("no journey").
func reconstruct(net *network.Network, tables []roundTable, origin, destination network.StopID, departure int) (*Journey, bool) {
	if origin == destination {
		return &Journey{Origin: origin, Destination: destination, Departure: departure, Arrival: departure}, true
	}

	bestK := -1
	bestArrival := unreached
	for k, t := range tables {
		if !t.reached(destination) {
			continue
		}
		a := t.arrival(destination)
		if a < bestArrival {
			bestArrival = a
			bestK = k
		}
	}
	if bestK <= 0 {
		// round 0 only ever holds the origin's own label; a destination
		// label there (other than origin==destination, handled above)
		// would itself be an invariant violation, not "no journey".
		if bestK == 0 {
			invariantViolation("round-0 label present at non-origin destination %d", destination)
		}
		return nil, false
	}

	// Walk backward. tables[k-1] is a prefix-copy of every earlier round
	// (see scanRounds' copy(cur, prev)), so a cell whose Round field
	// doesn't match the table index k it's being read from was only
	// carried forward, not written this round: descend k without
	// emitting a leg until we land on the round that actually wrote it.
	var legs []Leg
	stop := destination
	k := bestK
	for {
		cell := tables[k][stop]
		if cell.Round != k {
			k--
			if k < 0 {
				invariantViolation("reconstruction ran off round 0 at stop %d", stop)
			}
			continue
		}
		if k == 0 {
			break
		}
		if !cell.HasTrip {
			invariantViolation("round %d label at stop %d has no trip/parent", k, stop)
		}

		from := cell.Parent
		trip := net.Trips[cell.TripID]
		fromPos := net.StopIndexInRoute(trip.Route, from)
		toPos := net.StopIndexInRoute(trip.Route, stop)
		if fromPos < 0 || toPos < 0 || fromPos >= toPos {
			invariantViolation("corrupt leg: trip %d from %d to %d", trip.ID, from, stop)
		}

		legs = append(legs, Leg{
			FromStop: from,
			ToStop:   stop,
			Trip:     trip,
			Depart:   trip.StopTimes[fromPos].Departure,
			Arrive:   trip.StopTimes[toPos].Arrival,
		})

		stop = from
		k--
	}

	if stop != origin {
		invariantViolation("reconstruction did not terminate at origin: ended at %d", stop)
	}

	// legs were appended destination-first; reverse into chronological order.
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}

	return &Journey{
		Origin:      origin,
		Destination: destination,
		Departure:   legs[0].Depart,
		Arrival:     legs[len(legs)-1].Arrive,
		Legs:        legs,
	}, true
}
