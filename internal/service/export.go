package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/repo"
)

// ExportService flattens a trip itinerary into export rows.
type ExportService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.ActivityRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, stops repo.StopRepo, activities repo.ActivityRepo) *ExportService {
	return &ExportService{trips: trips, stops: stops, activities: activities}
}

// Export returns one ExportRow per activity, in itinerary order.
// Stops without activities contribute one row with empty activity fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := loadItinerary(ctx, s.trips, s.stops, s.activities, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, st := range trip.Stops {
		base := domain.ExportRow{
			TripName:      trip.Name,
			StopCity:      st.CityName,
			StopCountry:   st.Country,
			ArrivalDate:   st.ArrivalDate,
			TransportMode: st.TransportMode,
			TransportCost: st.TransportCost,
		}
		if len(st.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range st.Activities {
			row := base
			row.ActivityDate = calendar.ActivityDate(st.ArrivalDate, a.DayOffset)
			row.ActivityName = a.Name
			row.ActivityCategory = a.Category
			row.ActivityCost = a.Cost
			row.StartTime = a.StartTime
			row.EndTime = a.EndTime
			rows = append(rows, row)
		}
	}
	return rows, nil
}
