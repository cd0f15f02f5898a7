// Package gtfsloader builds a network.Network from an already-parsed GTFS
// feed, using patrickbr/gtfsparser the same way the go-raptor example's
// own test suite does (feed.Parse, then range feed.Stops/Routes/Trips).
// It deliberately does not fetch or unzip a feed itself, and does not
// filter trips by calendar/service-day: both are out of scope (spec.md
// §1's "raw GTFS feed download/extraction" non-goal), so callers hand in
// a feed already parsed and already restricted to one service day's trips.
package gtfsloader

import (
	"fmt"

	"github.com/patrickbr/gtfsparser"
	"github.com/patrickbr/gtfsparser/gtfs"

	"github.com/transitcore/raptor/internal/network"
)

// Load builds a Network from feed, keeping only the trips in
// activeTripIDs (the caller's calendar/service-day filter). Routes are
// formed from the distinct ordered stop sequences of the kept trips'
// patterns, the same "group trips into routes by stop sequence" idea
// the teacher's loader applies via (line_id, direction).
func Load(feed *gtfsparser.Feed, activeTripIDs map[string]bool) (*network.Network, error) {
	b := network.NewBuilder()

	for _, stop := range feed.Stops {
		b.AddStop(network.StopInput{GID: stop.Id, Name: stop.Name, Lat: stop.Lat, Lon: stop.Lon})
	}

	patternRouteGID := make(map[string]string) // stop-sequence signature -> synthetic route GID
	patternIndex := 0

	for _, trip := range feed.Trips {
		if activeTripIDs != nil && !activeTripIDs[trip.Id] {
			continue
		}
		if len(trip.StopTimes) < 2 {
			continue
		}

		signature, stopGIDs := patternSignature(trip)
		routeGID, ok := patternRouteGID[signature]
		if !ok {
			routeGID = routeGIDFor(trip, patternIndex)
			patternIndex++
			patternRouteGID[signature] = routeGID
			b.AddRoute(network.RouteInput{GID: routeGID, Name: routeName(trip), Stops: stopGIDs})
		}

		stopTimes := make([]network.StopTime, len(trip.StopTimes))
		for i, st := range trip.StopTimes {
			stopTimes[i] = network.StopTime{
				Arrival:   st.Arrival_time().SecondsSinceMidnight(),
				Departure: st.Departure_time().SecondsSinceMidnight(),
			}
		}

		headsign := ""
		if trip.Headsign != nil {
			headsign = *trip.Headsign
		}
		b.AddTrip(network.TripInput{
			GID:       trip.Id,
			RouteGID:  routeGID,
			Headsign:  headsign,
			StopTimes: stopTimes,
		})
	}

	return b.Build()
}

func patternSignature(trip *gtfs.Trip) (string, []string) {
	gids := make([]string, len(trip.StopTimes))
	for i, st := range trip.StopTimes {
		gids[i] = st.Stop().Id
	}
	sig := ""
	for _, g := range gids {
		sig += g + "\x00"
	}
	return sig, gids
}

func routeGIDFor(trip *gtfs.Trip, patternIndex int) string {
	if trip.Route != nil {
		return fmt.Sprintf("%s:%d", trip.Route.Id, patternIndex)
	}
	return fmt.Sprintf("pattern:%d", patternIndex)
}

func routeName(trip *gtfs.Trip) string {
	if trip.Route == nil {
		return ""
	}
	if trip.Route.Long_name != "" {
		return trip.Route.Long_name
	}
	return trip.Route.Short_name
}
