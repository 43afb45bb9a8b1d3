// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server. Methods are split into resource files
// (trip.go, stop.go, activity.go, ...) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Copy(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Calendar(ctx context.Context, id uuid.UUID, month *calendar.Month) (service.MonthView, error)
	Budget(ctx context.Context, id uuid.UUID) (domain.BudgetSummary, error)
}

// StopServicer defines the stop operations the handlers depend on.
type StopServicer interface {
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
}

// ActivityServicer defines the activity operations the handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error)
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, tripID, activityID uuid.UUID, target *time.Time) (domain.MoveResult, error)
}

// ExportServicer produces the flat itinerary export.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips      TripServicer
	stops      StopServicer
	activities ActivityServicer
	export     ExportServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, stops StopServicer, activities ActivityServicer, export ExportServicer, log *slog.Logger) *Server {
	return &Server{trips: trips, stops: stops, activities: activities, export: export, log: log}
}

// Mount registers every resource route on r.
func (s *Server) Mount(r chi.Router) {
	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/copy", s.CopyTrip)
			r.Get("/calendar", s.GetCalendar)
			r.Get("/budget", s.GetBudget)
			r.Get("/export", s.GetExport)
			r.Post("/stops", s.CreateStop)
			r.Put("/stops/{stopId}", s.UpdateStop)
			r.Delete("/stops/{stopId}", s.DeleteStop)
			r.Post("/stops/{stopId}/activities", s.CreateActivity)
			r.Post("/activities/{activityId}/move", s.MoveActivity)
		})
	})
	r.Put("/activities/{activityId}", s.UpdateActivity)
	r.Delete("/activities/{activityId}", s.DeleteActivity)
}
