package raptor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/raptor/internal/network"
)

func stop(b *network.Builder, gid string) {
	b.AddStop(network.StopInput{GID: gid, Name: gid})
}

func buildNetwork(t *testing.T, b *network.Builder) *network.Network {
	t.Helper()
	net, err := b.Build()
	require.NoError(t, err)
	return net
}

// Scenario A — single leg.
func TestScenarioA_SingleLeg(t *testing.T) {
	b := network.NewBuilder()
	stop(b, "A")
	stop(b, "B")
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
	}})
	net := buildNetwork(t, b)

	eng := NewEngine(net)
	j, err := eng.Query("A", "B", 28800, 5)
	require.NoError(t, err)
	require.NotNil(t, j)
	require.Len(t, j.Legs, 1)
	require.Equal(t, 29400, j.Arrival)
	require.Equal(t, "T1", j.Legs[0].Trip.GID)
}

// Scenario B — one transfer.
func TestScenarioB_OneTransfer(t *testing.T) {
	b := network.NewBuilder()
	for _, s := range []string{"A", "B", "C", "D"} {
		stop(b, s)
	}
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B", "C"}})
	b.AddRoute(network.RouteInput{GID: "R2", Stops: []string{"B", "D"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29000, Departure: 29400},
		{Arrival: 30000, Departure: 30000},
	}})
	b.AddTrip(network.TripInput{GID: "T2", RouteGID: "R2", StopTimes: []network.StopTime{
		{Arrival: 29700, Departure: 29700},
		{Arrival: 30300, Departure: 30300},
	}})
	net := buildNetwork(t, b)

	eng := NewEngine(net)
	j, err := eng.Query("A", "D", 28800, 5)
	require.NoError(t, err)
	require.NotNil(t, j)
	require.Len(t, j.Legs, 2)
	require.Equal(t, "T1", j.Legs[0].Trip.GID)
	require.Equal(t, "T2", j.Legs[1].Trip.GID)
	require.Equal(t, 30300, j.Arrival)
	require.Equal(t, 1, j.Transfers())
}

// Scenario C — wait dominates: T2 only departs B much later, must still
// be chosen since it's the only onward option.
func TestScenarioC_WaitDominates(t *testing.T) {
	b := network.NewBuilder()
	for _, s := range []string{"A", "B", "C", "D"} {
		stop(b, s)
	}
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B", "C"}})
	b.AddRoute(network.RouteInput{GID: "R2", Stops: []string{"B", "D"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29000, Departure: 29400},
		{Arrival: 30000, Departure: 30000},
	}})
	b.AddTrip(network.TripInput{GID: "T2", RouteGID: "R2", StopTimes: []network.StopTime{
		{Arrival: 35000, Departure: 35000},
		{Arrival: 35600, Departure: 35600},
	}})
	net := buildNetwork(t, b)

	eng := NewEngine(net)
	j, err := eng.Query("A", "D", 28800, 5)
	require.NoError(t, err)
	require.NotNil(t, j)
	require.Equal(t, 35600, j.Arrival)
}

// Scenario D — no journey: destination unreachable from the network.
func TestScenarioD_NoJourney(t *testing.T) {
	b := network.NewBuilder()
	for _, s := range []string{"A", "B", "D"} {
		stop(b, s)
	}
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
	}})
	net := buildNetwork(t, b)

	eng := NewEngine(net)
	j, err := eng.Query("A", "D", 28800, 5)
	require.NoError(t, err)
	require.Nil(t, j)
}

// Scenario E — early termination: a bounded max_rounds that still covers
// the round where the destination last improved must reconstruct the
// same journey as a much larger bound.
func TestScenarioE_EarlyTermination(t *testing.T) {
	b := network.NewBuilder()
	for _, s := range []string{"A", "B", "C", "D"} {
		stop(b, s)
	}
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B", "C"}})
	b.AddRoute(network.RouteInput{GID: "R2", Stops: []string{"B", "D"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29000, Departure: 29400},
		{Arrival: 30000, Departure: 30000},
	}})
	b.AddTrip(network.TripInput{GID: "T2", RouteGID: "R2", StopTimes: []network.StopTime{
		{Arrival: 29700, Departure: 29700},
		{Arrival: 30300, Departure: 30300},
	}})
	net := buildNetwork(t, b)

	eng := NewEngine(net)
	small, err := eng.Query("A", "D", 28800, 2)
	require.NoError(t, err)
	large, err := eng.Query("A", "D", 28800, 20)
	require.NoError(t, err)

	require.NotNil(t, small)
	require.NotNil(t, large)
	require.Equal(t, large.Arrival, small.Arrival)
	require.Equal(t, len(large.Legs), len(small.Legs))
}

// Scenario F — boarding swap: the hop-on stop must board the earliest trip
// it can still catch, skipping trips that have already departed; querying
// from an intermediate stop changes which trip is boardable there.
func TestScenarioF_BoardingSwap(t *testing.T) {
	b := network.NewBuilder()
	for _, s := range []string{"A", "B", "C"} {
		stop(b, s)
	}
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B", "C"}})
	b.AddTrip(network.TripInput{GID: "T1_early", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28000, Departure: 28000},
		{Arrival: 28600, Departure: 28600},
		{Arrival: 29200, Departure: 29200},
	}})
	b.AddTrip(network.TripInput{GID: "T1_late", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
		{Arrival: 30000, Departure: 30000},
	}})
	net := buildNetwork(t, b)
	eng := NewEngine(net)

	j, err := eng.Query("A", "C", 28500, 5)
	require.NoError(t, err)
	require.NotNil(t, j)
	require.Equal(t, "T1_late", j.Legs[0].Trip.GID)
	require.Equal(t, 30000, j.Arrival)

	j2, err := eng.Query("B", "C", 28500, 5)
	require.NoError(t, err)
	require.NotNil(t, j2)
	require.Equal(t, "T1_early", j2.Legs[0].Trip.GID)
	require.Equal(t, 29200, j2.Arrival)
}

func TestSameStopShortcut(t *testing.T) {
	b := network.NewBuilder()
	stop(b, "A")
	stop(b, "B")
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
	}})
	net := buildNetwork(t, b)

	eng := NewEngine(net)
	j, err := eng.Query("A", "A", 12345, 5)
	require.NoError(t, err)
	require.NotNil(t, j)
	require.Empty(t, j.Legs)
	require.Equal(t, 12345, j.Arrival)
	require.Equal(t, 0, j.Transfers())
}

func TestUnknownStopError(t *testing.T) {
	b := network.NewBuilder()
	stop(b, "A")
	stop(b, "B")
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
	}})
	net := buildNetwork(t, b)
	eng := NewEngine(net)

	_, err := eng.Query("Z", "B", 28800, 5)
	require.Error(t, err)
	rerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, KindUnknownStop, rerr.Kind)
}

func TestInputDomainErrors(t *testing.T) {
	b := network.NewBuilder()
	stop(b, "A")
	stop(b, "B")
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
	}})
	net := buildNetwork(t, b)
	eng := NewEngine(net)

	_, err := eng.Query("A", "B", -1, 5)
	require.Error(t, err)
	rerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, KindInputDomain, rerr.Kind)

	_, err = eng.Query("A", "B", 28800, 0)
	require.Error(t, err)
	rerr, ok = err.(*Error)
	require.True(t, ok)
	require.Equal(t, KindInputDomain, rerr.Kind)
}

// Monotonicity: a later departure never produces a strictly earlier arrival.
func TestMonotonicityOfDeparture(t *testing.T) {
	b := network.NewBuilder()
	for _, s := range []string{"A", "B", "C"} {
		stop(b, s)
	}
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B", "C"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28000, Departure: 28000},
		{Arrival: 28600, Departure: 28600},
		{Arrival: 29200, Departure: 29200},
	}})
	b.AddTrip(network.TripInput{GID: "T2", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
		{Arrival: 30000, Departure: 30000},
	}})
	net := buildNetwork(t, b)
	eng := NewEngine(net)

	early, err := eng.Query("A", "C", 27000, 5)
	require.NoError(t, err)
	late, err := eng.Query("A", "C", 28500, 5)
	require.NoError(t, err)

	require.NotNil(t, early)
	require.NotNil(t, late)
	require.LessOrEqual(t, early.Arrival, late.Arrival)
}

// Idempotence: repeated identical queries against the same Engine return
// the same journey.
func TestQueryIdempotence(t *testing.T) {
	b := network.NewBuilder()
	stop(b, "A")
	stop(b, "B")
	b.AddRoute(network.RouteInput{GID: "R1", Stops: []string{"A", "B"}})
	b.AddTrip(network.TripInput{GID: "T1", RouteGID: "R1", StopTimes: []network.StopTime{
		{Arrival: 28800, Departure: 28800},
		{Arrival: 29400, Departure: 29400},
	}})
	net := buildNetwork(t, b)
	eng := NewEngine(net)

	first, err := eng.Query("A", "B", 28800, 5)
	require.NoError(t, err)
	second, err := eng.Query("A", "B", 28800, 5)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
