package handler

import (
	"net/http"

	"github.com/globetrotter/planner/internal/api"
)

const stopNotFound = "stop not found"

// CreateStop handles POST /trips/{tripId}/stops.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	var body api.StopRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	stop := body.Domain()
	stop.TripID = tripID
	created, err := s.stops.Create(r.Context(), stop)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.StopFrom(created))
}

// UpdateStop handles PUT /trips/{tripId}/stops/{stopId}.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopId", stopNotFound)
	if !ok {
		return
	}
	var body api.StopRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	stop := body.Domain()
	stop.ID, stop.TripID = stopID, tripID
	updated, err := s.stops.Update(r.Context(), stop)
	if err != nil {
		s.fail(w, r, err, stopNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.StopFrom(updated))
}

// DeleteStop handles DELETE /trips/{tripId}/stops/{stopId}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopId", stopNotFound)
	if !ok {
		return
	}
	if err := s.stops.Delete(r.Context(), tripID, stopID); err != nil {
		s.fail(w, r, err, stopNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
