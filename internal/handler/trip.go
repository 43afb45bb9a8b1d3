package handler

import (
	"net/http"
	"strconv"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/domain"
)

const tripNotFound = "trip not found"

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body api.TripRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	created, err := s.trips.Create(r.Context(), body.Domain())
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.TripFrom(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	data := make([]api.Trip, len(trips))
	for i, t := range trips {
		data[i] = api.TripFrom(t)
	}
	writeJSON(w, http.StatusOK, api.TripList{
		Data:       data,
		Pagination: api.Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripId}: the full itinerary.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	trip, err := s.trips.GetItinerary(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.TripFrom(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	var body api.TripRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	trip := body.Domain()
	trip.ID = id
	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.TripFrom(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CopyTrip handles POST /trips/{tripId}/copy.
func (s *Server) CopyTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	cp, err := s.trips.Copy(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.TripFrom(cp))
}

// queryInt returns the integer query parameter, or nil when absent or not a
// number; NewPaginationParams applies the defaults.
func queryInt(r *http.Request, key string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}
