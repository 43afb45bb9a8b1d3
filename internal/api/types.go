// Package api holds the JSON wire types of the planner HTTP API, shared by
// the server handlers and the Go client. Dates travel as "YYYY-MM-DD" through
// openapi_types.Date.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/planner/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
type TripRequest struct {
	Name          string             `json:"name" validate:"required,max=200"`
	Description   string             `json:"description,omitempty"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	Budget        float64            `json:"budget" validate:"gte=0"`
	CoverPhotoURL string             `json:"cover_photo_url,omitempty" validate:"omitempty,url"`
}

// StopRequest is the body of stop create and update.
type StopRequest struct {
	CityName      string              `json:"city_name" validate:"required,max=200"`
	Country       string              `json:"country,omitempty"`
	ArrivalDate   openapi_types.Date  `json:"arrival_date"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	TransportCost float64             `json:"transport_cost" validate:"gte=0"`
	TransportMode string              `json:"transport_mode,omitempty"`
	OrderIndex    int                 `json:"order_index" validate:"gte=0"`
}

// ActivityRequest is the body of activity create and of the full-replacement
// update. StopID is only read by the update; create takes it from the path.
type ActivityRequest struct {
	StopID      *openapi_types.UUID `json:"stop_id,omitempty"`
	Name        string              `json:"name" validate:"required,max=200"`
	Category    string              `json:"category,omitempty"`
	Cost        float64             `json:"cost" validate:"gte=0"`
	Description string              `json:"description,omitempty"`
	StartTime   string              `json:"start_time,omitempty"`
	EndTime     string              `json:"end_time,omitempty"`
	DayOffset   int                 `json:"day_offset" validate:"gte=0"`
}

// MoveRequest is the body of the move endpoint. A null date means the
// activity was dropped outside every day.
type MoveRequest struct {
	Date *openapi_types.Date `json:"date"`
}

// Trip is the API representation of a trip. Stops is set only on the
// itinerary read.
type Trip struct {
	Id            openapi_types.UUID `json:"id"`
	Owner         string             `json:"owner,omitempty"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	Budget        float64            `json:"budget"`
	CoverPhotoURL string             `json:"cover_photo_url,omitempty"`
	Stops         []Stop             `json:"stops,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Stop is the API representation of a stop.
type Stop struct {
	Id            openapi_types.UUID  `json:"id"`
	TripId        openapi_types.UUID  `json:"trip_id"`
	CityName      string              `json:"city_name"`
	Country       string              `json:"country,omitempty"`
	ArrivalDate   openapi_types.Date  `json:"arrival_date"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	TransportCost float64             `json:"transport_cost"`
	TransportMode string              `json:"transport_mode,omitempty"`
	OrderIndex    int                 `json:"order_index"`
	Activities    []Activity          `json:"activities,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Activity is the API representation of an activity.
type Activity struct {
	Id          openapi_types.UUID `json:"id"`
	StopId      openapi_types.UUID `json:"stop_id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Cost        float64            `json:"cost"`
	Description string             `json:"description,omitempty"`
	StartTime   string             `json:"start_time,omitempty"`
	EndTime     string             `json:"end_time,omitempty"`
	DayOffset   int                `json:"day_offset"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Pagination mirrors domain.Pagination on the wire.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// MoveResponse is the body of a move that was not rejected.
type MoveResponse struct {
	Outcome      domain.MoveOutcome   `json:"outcome"`
	Activity     *Activity            `json:"activity,omitempty"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// DailySpend is one day of the budget breakdown.
type DailySpend struct {
	Date   openapi_types.Date `json:"date"`
	Amount float64            `json:"amount"`
}

// Budget is the body of GET /trips/{tripId}/budget.
type Budget struct {
	TotalBudget  float64                `json:"total_budget"`
	TotalSpent   float64                `json:"total_spent"`
	Remaining    float64                `json:"remaining"`
	IsOverBudget bool                   `json:"is_over_budget"`
	ByCategory   []domain.CategoryTotal `json:"by_category"`
	Daily        []DailySpend           `json:"daily"`
}

// CalendarEntry is an activity placed on a day cell.
type CalendarEntry struct {
	Activity Activity           `json:"activity"`
	Date     openapi_types.Date `json:"date"`
	StopId   openapi_types.UUID `json:"stop_id"`
	Conflict bool               `json:"conflict"`
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date           openapi_types.Date `json:"date"`
	IsCurrentMonth bool               `json:"is_current_month"`
	IsTripDay      bool               `json:"is_trip_day"`
	Activities     []CalendarEntry    `json:"activities"`
}

// CalendarMonth is the body of GET /trips/{tripId}/calendar.
type CalendarMonth struct {
	TripId openapi_types.UUID `json:"trip_id"`
	Month  string             `json:"month"`
	Prev   string             `json:"prev"`
	Next   string             `json:"next"`
	Days   []CalendarDay      `json:"days"`
}

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ExportRow is the JSON form of one export row. Empty activity fields are
// omitted for stops without activities.
type ExportRow struct {
	TripName         string  `json:"trip_name"`
	StopCity         string  `json:"stop_city"`
	StopCountry      string  `json:"stop_country,omitempty"`
	ArrivalDate      string  `json:"arrival_date"`
	TransportMode    string  `json:"transport_mode,omitempty"`
	TransportCost    float64 `json:"transport_cost"`
	ActivityDate     string  `json:"activity_date,omitempty"`
	ActivityName     string  `json:"activity_name,omitempty"`
	ActivityCategory string  `json:"category,omitempty"`
	ActivityCost     float64 `json:"activity_cost"`
	StartTime        string  `json:"start_time,omitempty"`
	EndTime          string  `json:"end_time,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
