// Package handler wires the RAPTOR query engine and the metadata
// repository to HTTP, in the same chi-handler-per-endpoint shape as the
// teacher's TransportHandler.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/transitcore/raptor/internal/models"
	"github.com/transitcore/raptor/internal/network"
	"github.com/transitcore/raptor/internal/raptor"
)

const defaultDeparture = 8*3600 + 30*60 // 08:30, the teacher's own default

// MetadataRepo is the subset of pgrepo.MetadataRepo the handler needs,
// so a gtfs-sourced deployment (no database) can run the journey
// endpoint without one.
type MetadataRepo interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
	RouteStops(ctx context.Context, routeGID string) ([]string, error)
	ListStops(ctx context.Context) ([]models.Stop, error)
	StopDetails(ctx context.Context, gid string) (*models.Stop, error)
}

type Handler struct {
	Net       *network.Network
	Engine    *raptor.Engine
	Repo      MetadataRepo
	MaxRounds int
}

func New(net *network.Network, engine *raptor.Engine, repo MetadataRepo, maxRounds int) *Handler {
	return &Handler{Net: net, Engine: engine, Repo: repo, MaxRounds: maxRounds}
}

func (h *Handler) GetJourney(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "missing from/to stop id", http.StatusBadRequest)
		return
	}

	departure := defaultDeparture
	if v := r.URL.Query().Get("departure"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid departure time", http.StatusBadRequest)
			return
		}
		departure = parsed
	}

	maxRounds := h.MaxRounds
	if v := r.URL.Query().Get("max_rounds"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid max_rounds", http.StatusBadRequest)
			return
		}
		maxRounds = parsed
	}

	journey, err := h.Engine.Query(from, to, departure, maxRounds)
	if err != nil {
		if rerr, ok := err.(*raptor.Error); ok {
			switch rerr.Kind {
			case raptor.KindUnknownStop:
				http.Error(w, rerr.Error(), http.StatusBadRequest)
			case raptor.KindInputDomain:
				http.Error(w, rerr.Error(), http.StatusBadRequest)
			default:
				http.Error(w, rerr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if journey == nil {
		http.Error(w, "no journey found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.toDTO(journey))
}

func (h *Handler) toDTO(j *raptor.Journey) models.Journey {
	legs := make([]models.Leg, len(j.Legs))
	for i, leg := range j.Legs {
		legs[i] = models.Leg{
			FromStop: h.Net.Stops[leg.FromStop].GID,
			ToStop:   h.Net.Stops[leg.ToStop].GID,
			TripGID:  leg.Trip.GID,
			Headsign: leg.Trip.Headsign,
			Depart:   leg.Depart,
			Arrive:   leg.Arrive,
		}
	}
	return models.Journey{
		Origin:      h.Net.Stops[j.Origin].GID,
		Destination: h.Net.Stops[j.Destination].GID,
		Departure:   j.Departure,
		Arrival:     j.Arrival,
		Transfers:   j.Transfers(),
		Legs:        legs,
	}
}

func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "route metadata unavailable without a database source", http.StatusNotImplemented)
		return
	}
	routes, err := h.Repo.ListRoutes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(routes)
}

func (h *Handler) GetRouteStops(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "route metadata unavailable without a database source", http.StatusNotImplemented)
		return
	}
	gid := chi.URLParam(r, "gid")
	stops, err := h.Repo.RouteStops(r.Context(), gid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stops)
}

func (h *Handler) GetStops(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "stop metadata unavailable without a database source", http.StatusNotImplemented)
		return
	}
	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stops)
}

func (h *Handler) GetStopDetails(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "stop metadata unavailable without a database source", http.StatusNotImplemented)
		return
	}
	gid := chi.URLParam(r, "gid")
	stop, err := h.Repo.StopDetails(r.Context(), gid)
	if err != nil {
		http.Error(w, "stop not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stop)
}
