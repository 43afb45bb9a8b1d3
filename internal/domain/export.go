package domain

import "time"

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per activity, with trip and stop
// fields repeated. Stops without activities yield one row with zero values
// for the activity fields; a trip without stops yields no rows.
type ExportRow struct {
	TripName string

	StopCity      string
	StopCountry   string
	ArrivalDate   time.Time
	TransportMode string
	TransportCost float64

	// ActivityDate is the derived calendar date (arrival + day offset);
	// zero when the stop has no activities.
	ActivityDate     time.Time
	ActivityName     string
	ActivityCategory Category
	ActivityCost     float64
	StartTime        string
	EndTime          string
}
