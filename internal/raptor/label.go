package raptor

import (
	"math"

	"github.com/transitcore/raptor/internal/network"
)

// unreached is the sentinel arrival time for a stop with no label yet,
// per spec §9's "a vector of length |stops|... with a sentinel unreached
// arrival" recommendation (the teacher uses math.MaxInt32 as `Infinity`
// for the same purpose).
const unreached = math.MaxInt32

// label is the per-(round, stop) cell of spec §3's Label entity. A label
// with HasTrip set implies Parent and TripID are both set and Round >= 1.
type label struct {
	Arrival int
	Parent  network.StopID
	TripID  network.TripID
	HasTrip bool
	Round   int
}

// roundTable is one round's label vector, array-backed and indexed by
// dense StopID per spec §9, replacing the source's hash-based mapping.
type roundTable []label

func newRoundTable(numStops int) roundTable {
	t := make(roundTable, numStops)
	for i := range t {
		t[i].Arrival = unreached
	}
	return t
}

func (t roundTable) arrival(s network.StopID) int {
	return t[s].Arrival
}

func (t roundTable) reached(s network.StopID) bool {
	return t[s].Arrival != unreached
}
