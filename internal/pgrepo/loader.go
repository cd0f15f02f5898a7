// Package pgrepo builds a network.Network from a PostgreSQL-backed
// timetable store and serves the read-only metadata queries the HTTP
// layer needs alongside it. It is grounded on the teacher's
// routing.Loader/LineRepository pair, generalized from its
// Morocco-specific PostGIS schema to a plain GTFS-shaped one
// (stops/routes/route_stops/trips/stop_times) so it can load any
// timetable that fits the Stop/Route/Trip model spec.md describes.
package pgrepo

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitcore/raptor/internal/network"
)

// Loader reads stops, routes and trips out of Postgres and assembles a
// validated network.Network, the same two-pass shape as the teacher's
// Loader.LoadData: load every stop first (so route/trip loading can
// resolve stop GIDs through the builder), then load routes and their
// trips.
type Loader struct {
	db *pgxpool.Pool
}

func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

func (l *Loader) Load(ctx context.Context) (*network.Network, error) {
	log.Println("pgrepo: loading timetable from database...")
	start := time.Now()

	b := network.NewBuilder()

	if err := l.loadStops(ctx, b); err != nil {
		return nil, err
	}
	routeGIDs, err := l.loadRoutes(ctx, b)
	if err != nil {
		return nil, err
	}
	if err := l.loadTrips(ctx, b, routeGIDs); err != nil {
		return nil, err
	}

	net, err := b.Build()
	if err != nil {
		return nil, err
	}
	log.Printf("pgrepo: loaded %d stops, %d routes, %d trips in %s",
		len(net.Stops), len(net.Routes), len(net.Trips), time.Since(start))
	return net, nil
}

func (l *Loader) loadStops(ctx context.Context, b *network.Builder) error {
	rows, err := l.db.Query(ctx, `SELECT gid, name, lat, lon FROM stops`)
	if err != nil {
		return err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var in network.StopInput
		if err := rows.Scan(&in.GID, &in.Name, &in.Lat, &in.Lon); err != nil {
			return err
		}
		b.AddStop(in)
		count++
	}
	log.Printf("pgrepo: loaded %d stops", count)
	return rows.Err()
}

// loadRoutes loads every route's GID/name and its ordered stop sequence,
// and returns the set of route GIDs seen so loadTrips can skip trips
// belonging to a route that failed to load (the teacher's "if rid, ok :=
// stopMap[sid]; ok" defensive-skip pattern, applied one level up).
func (l *Loader) loadRoutes(ctx context.Context, b *network.Builder) (map[string]bool, error) {
	routeGIDs := make(map[string]bool)

	rows, err := l.db.Query(ctx, `SELECT gid, name FROM routes ORDER BY gid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type routeRow struct {
		gid, name string
	}
	var routeRows []routeRow
	for rows.Next() {
		var rr routeRow
		if err := rows.Scan(&rr.gid, &rr.name); err != nil {
			return nil, err
		}
		routeRows = append(routeRows, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, rr := range routeRows {
		stopRows, err := l.db.Query(ctx, `
			SELECT s.gid FROM route_stops rs
			JOIN stops s ON s.id = rs.stop_id
			WHERE rs.route_gid = $1
			ORDER BY rs.sequence ASC
		`, rr.gid)
		if err != nil {
			return nil, err
		}
		var stopGIDs []string
		for stopRows.Next() {
			var gid string
			if err := stopRows.Scan(&gid); err != nil {
				stopRows.Close()
				return nil, err
			}
			stopGIDs = append(stopGIDs, gid)
		}
		stopRows.Close()
		if err := stopRows.Err(); err != nil {
			return nil, err
		}

		if len(stopGIDs) < 2 {
			log.Printf("pgrepo: skipping route %s, fewer than 2 resolvable stops", rr.gid)
			continue
		}

		b.AddRoute(network.RouteInput{GID: rr.gid, Name: rr.name, Stops: stopGIDs})
		routeGIDs[rr.gid] = true
	}
	log.Printf("pgrepo: loaded %d routes", len(routeGIDs))
	return routeGIDs, nil
}

func (l *Loader) loadTrips(ctx context.Context, b *network.Builder, routeGIDs map[string]bool) error {
	rows, err := l.db.Query(ctx, `SELECT gid, route_gid, headsign FROM trips ORDER BY gid`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type tripRow struct {
		gid, routeGID, headsign string
	}
	var tripRows []tripRow
	for rows.Next() {
		var tr tripRow
		if err := rows.Scan(&tr.gid, &tr.routeGID, &tr.headsign); err != nil {
			return err
		}
		tripRows = append(tripRows, tr)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	count := 0
	for _, tr := range tripRows {
		if !routeGIDs[tr.routeGID] {
			continue
		}

		stRows, err := l.db.Query(ctx, `
			SELECT arrival, departure FROM stop_times
			WHERE trip_gid = $1
			ORDER BY sequence ASC
		`, tr.gid)
		if err != nil {
			return err
		}
		var stopTimes []network.StopTime
		for stRows.Next() {
			var st network.StopTime
			if err := stRows.Scan(&st.Arrival, &st.Departure); err != nil {
				stRows.Close()
				return err
			}
			stopTimes = append(stopTimes, st)
		}
		stRows.Close()
		if err := stRows.Err(); err != nil {
			return err
		}

		if _, ok := b.AddTrip(network.TripInput{
			GID:       tr.gid,
			RouteGID:  tr.routeGID,
			Headsign:  tr.headsign,
			StopTimes: stopTimes,
		}); ok {
			count++
		}
	}
	log.Printf("pgrepo: loaded %d trips", count)
	return nil
}
