package network

// StopInput, RouteInput and TripInput are the flat, string-identified
// records a loader collects from its backing store before interning.
// This mirrors the teacher's loader pattern of scanning rows and
// assigning dense IDs in scan order (routing.Loader.LoadData), but keeps
// the assembled value generic over the network model instead of a single
// loader's own ad hoc struct.
type StopInput struct {
	GID  string
	Name string
	Lat  float64
	Lon  float64
}

type RouteInput struct {
	GID   string
	Name  string
	Stops []string // stop GIDs, in route order
}

type TripInput struct {
	GID       string
	RouteGID  string
	Headsign  string
	StopTimes []StopTime // aligned with RouteInput.Stops of the same route
}

// Builder assigns dense IDs to stops and routes in first-seen order and
// assembles a validated Network. It is the single funnel every loader
// (pgrepo, gtfsloader, hand-built test fixtures) goes through.
type Builder struct {
	stopIndex  map[string]StopID
	routeIndex map[string]RouteID
	stops      []Stop
	routes     []Route
	trips      []Trip
}

func NewBuilder() *Builder {
	return &Builder{
		stopIndex:  make(map[string]StopID),
		routeIndex: make(map[string]RouteID),
	}
}

// AddStop interns a stop, returning its dense ID. Re-adding the same GID
// is a no-op and returns the existing ID.
func (b *Builder) AddStop(in StopInput) StopID {
	if id, ok := b.stopIndex[in.GID]; ok {
		return id
	}
	id := StopID(len(b.stops))
	b.stops = append(b.stops, Stop{ID: id, GID: in.GID, Name: in.Name, Lat: in.Lat, Lon: in.Lon})
	b.stopIndex[in.GID] = id
	return id
}

// AddRoute interns a route given its ordered stop GIDs, which must already
// have been added via AddStop. Unknown stop GIDs are skipped, matching
// the teacher's defensive "if rid, ok := stopMap[sid]; ok" pattern when
// assembling a pattern's stop sequence.
func (b *Builder) AddRoute(in RouteInput) RouteID {
	if id, ok := b.routeIndex[in.GID]; ok {
		return id
	}
	stopIDs := make([]StopID, 0, len(in.Stops))
	for _, gid := range in.Stops {
		if id, ok := b.stopIndex[gid]; ok {
			stopIDs = append(stopIDs, id)
		}
	}
	id := RouteID(len(b.routes))
	b.routes = append(b.routes, Route{ID: id, GID: in.GID, Name: in.Name, Stops: stopIDs})
	b.routeIndex[in.GID] = id
	return id
}

// AddTrip interns a trip on an already-added route.
func (b *Builder) AddTrip(in TripInput) (TripID, bool) {
	routeID, ok := b.routeIndex[in.RouteGID]
	if !ok {
		return 0, false
	}
	id := TripID(len(b.trips))
	b.trips = append(b.trips, Trip{
		ID:        id,
		Route:     routeID,
		GID:       in.GID,
		Headsign:  in.Headsign,
		StopTimes: in.StopTimes,
	})
	return id, true
}

// Build finalizes the Network, sorts each route's trips by departure at
// the route's first stop (per spec §4.1), and validates §3's invariants.
func (b *Builder) Build() (*Network, error) {
	n := &Network{
		Stops:          b.stops,
		Routes:         b.routes,
		Trips:          b.trips,
		stopIndexByGID: b.stopIndex,
	}
	sortTripsByFirstDeparture(n)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func sortTripsByFirstDeparture(n *Network) {
	byRoute := make(map[RouteID][]Trip, len(n.Routes))
	for _, t := range n.Trips {
		byRoute[t.Route] = append(byRoute[t.Route], t)
	}
	for _, trips := range byRoute {
		insertionSortByFirstDeparture(trips)
	}
	ordered := make([]Trip, 0, len(n.Trips))
	for _, r := range n.Routes {
		ordered = append(ordered, byRoute[r.ID]...)
	}
	// Re-stamp IDs to match final position: callers (the round scanner,
	// journey reconstruction) index n.Trips directly by TripID, so the
	// ID assigned at AddTrip time (original insertion order) must be
	// replaced once the per-route sort has reordered the slice.
	for i := range ordered {
		ordered[i].ID = TripID(i)
	}
	n.Trips = ordered
}

// insertionSortByFirstDeparture keeps the sort stable and dependency-free;
// per-route trip counts are small enough that O(n^2) is not a concern.
func insertionSortByFirstDeparture(trips []Trip) {
	for i := 1; i < len(trips); i++ {
		for j := i; j > 0 && firstDeparture(trips[j]) < firstDeparture(trips[j-1]); j-- {
			trips[j], trips[j-1] = trips[j-1], trips[j]
		}
	}
}

func firstDeparture(t Trip) int {
	if len(t.StopTimes) == 0 {
		return 0
	}
	return t.StopTimes[0].Departure
}
