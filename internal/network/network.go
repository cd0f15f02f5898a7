// Package network holds the immutable timetable value objects the RAPTOR
// engine operates on: stops, routes, trips, and the interned Network that
// owns them.
package network

import "fmt"

// StopID, RouteID and TripID are dense, zero-based indices assigned at
// build time. Keeping them as distinct types (rather than bare int) stops
// a stop index from being passed where a route index is expected.
type StopID int32
type RouteID int32
type TripID int32

// Stop is a physical boarding location. Identity is its GTFS-style string
// ID; the dense StopID is only meaningful within one Network.
type Stop struct {
	ID   StopID
	GID  string // stable external identifier (e.g. GTFS stop_id)
	Name string
	Lat  float64
	Lon  float64
}

// Route is an ordered, loop-free sequence of stops served by one or more
// trips. Two trips belong to the same Route only if they stop at exactly
// this sequence of stops.
type Route struct {
	ID    RouteID
	GID   string
	Name  string
	Stops []StopID
}

// StopTime is a trip's arrival/departure pair at one stop along its
// route, expressed in seconds since the service day's 00:00:00. Values
// may exceed 86400 to encode a trip that runs past midnight.
type StopTime struct {
	Arrival   int
	Departure int
}

// Trip is one scheduled run of a Route. StopTimes is indexed the same way
// as Route.Stops: StopTimes[i] belongs to Route.Stops[i].
type Trip struct {
	ID        TripID
	Route     RouteID
	GID       string
	Headsign  string
	StopTimes []StopTime
}

// Network is the immutable, query-ready timetable. It is built once by a
// loader and never mutated afterwards; concurrent queries may read it
// freely (see package raptor).
type Network struct {
	Stops  []Stop
	Routes []Route
	Trips  []Trip

	stopIndexByGID map[string]StopID
}

// StopByGID resolves an external stop identifier to its dense StopID.
func (n *Network) StopByGID(gid string) (StopID, bool) {
	id, ok := n.stopIndexByGID[gid]
	return id, ok
}

// StopIndexInRoute returns the position of stop within route's stop
// sequence, or -1 if the route does not serve that stop.
func (n *Network) StopIndexInRoute(route RouteID, stop StopID) int {
	for i, s := range n.Routes[route].Stops {
		if s == stop {
			return i
		}
	}
	return -1
}

// Validate checks the §3 invariants that a builder must enforce before
// handing a Network to the query engine. Builders call this once; the
// query engine assumes it already holds.
func (n *Network) Validate() error {
	for _, r := range n.Routes {
		if len(r.Stops) < 2 {
			return fmt.Errorf("network: route %s has fewer than 2 stops", r.GID)
		}
		seen := make(map[StopID]bool, len(r.Stops))
		for _, s := range r.Stops {
			if seen[s] {
				return fmt.Errorf("network: route %s visits stop %d more than once", r.GID, s)
			}
			seen[s] = true
		}
	}
	for _, t := range n.Trips {
		route := n.Routes[t.Route]
		if len(t.StopTimes) != len(route.Stops) {
			return fmt.Errorf("network: trip %s stop-time count %d does not match route %s length %d",
				t.GID, len(t.StopTimes), route.GID, len(route.Stops))
		}
		lastDeparture := -1
		for i, st := range t.StopTimes {
			if st.Arrival > st.Departure {
				return fmt.Errorf("network: trip %s stop %d has arrival after departure", t.GID, i)
			}
			if st.Arrival < 0 || st.Departure < 0 {
				return fmt.Errorf("network: trip %s stop %d has a negative time", t.GID, i)
			}
			if st.Departure < lastDeparture {
				return fmt.Errorf("network: trip %s departures are not monotonic at stop %d", t.GID, i)
			}
			lastDeparture = st.Departure
		}
	}
	return nil
}
