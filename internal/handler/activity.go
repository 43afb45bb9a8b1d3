package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/domain"
)

const activityNotFound = "activity not found"

// CreateActivity handles POST /trips/{tripId}/stops/{stopId}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopId", stopNotFound)
	if !ok {
		return
	}
	var body api.ActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	a := body.Domain()
	a.StopID = stopID
	created, err := s.activities.Create(r.Context(), tripID, a)
	if err != nil {
		s.fail(w, r, err, stopNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.ActivityFrom(created))
}

// UpdateActivity handles PUT /activities/{activityId}. The body replaces
// every field; stop_id may point at another stop of the same trip.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "activityId", activityNotFound)
	if !ok {
		return
	}
	var body api.ActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	a := body.Domain()
	a.ID = id
	updated, err := s.activities.Update(r.Context(), a)
	if err != nil {
		s.fail(w, r, err, activityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ActivityFrom(updated))
}

// DeleteActivity handles DELETE /activities/{activityId}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "activityId", activityNotFound)
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, activityNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveActivity handles POST /trips/{tripId}/activities/{activityId}/move.
// Rejected drops answer 422 with the notification message; every other
// settled outcome answers 200.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityId", activityNotFound)
	if !ok {
		return
	}
	var body api.MoveRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	var target *time.Time
	if body.Date != nil {
		d := body.Date.Time
		target = &d
	}
	res, err := s.activities.Move(r.Context(), tripID, activityID, target)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody(activityNotFound))
			return
		}
		if res.Outcome == domain.MoveRejected && res.Notification != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(res.Notification.Message))
			return
		}
		s.fail(w, r, err, activityNotFound)
		return
	}

	resp := api.MoveResponse{Outcome: res.Outcome, Notification: res.Notification}
	if res.Activity != nil {
		a := api.ActivityFrom(*res.Activity)
		resp.Activity = &a
	}
	writeJSON(w, http.StatusOK, resp)
}
