package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is a city or segment within a trip.
// DepartureDate is nil when the traveller has not fixed a departure yet.
// Activities is only populated when the full itinerary is loaded.
type Stop struct {
	ID            uuid.UUID  `json:"id"`
	TripID        uuid.UUID  `json:"trip_id"`
	CityName      string     `json:"city_name"`
	Country       string     `json:"country,omitempty"`
	ArrivalDate   time.Time  `json:"arrival_date"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	TransportCost float64    `json:"transport_cost"`
	TransportMode string     `json:"transport_mode,omitempty"`
	OrderIndex    int        `json:"order_index"`
	Activities    []Activity `json:"activities,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
