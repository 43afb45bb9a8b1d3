// Package domain contains the core data types for the Globetrotter planner.
// This package has no dependencies beyond uuid and is imported by every
// other internal package (calendar, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a named journey bounded by an inclusive
// date range. Stops belong to a trip; activities belong to a stop.
//
// StartDate and EndDate are calendar dates held as UTC midnight.
// Stops is only populated when the full itinerary is loaded.
type Trip struct {
	ID            uuid.UUID `json:"id"`
	Owner         string    `json:"owner,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Budget        float64   `json:"budget"`
	CoverPhotoURL string    `json:"cover_photo_url,omitempty"`
	Stops         []Stop    `json:"stops,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Contains reports whether date falls within [StartDate, EndDate].
// Both bounds are inclusive; the time-of-day component of date is ignored.
func (t Trip) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(t.StartDate) && !d.After(t.EndDate)
}

// FindActivity locates an activity anywhere in the itinerary and returns it
// together with its owning stop.
func (t Trip) FindActivity(id uuid.UUID) (Stop, Activity, bool) {
	for _, s := range t.Stops {
		for _, a := range s.Activities {
			if a.ID == id {
				return s, a, true
			}
		}
	}
	return Stop{}, Activity{}, false
}
