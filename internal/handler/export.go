package handler

// export.go implements GET /trips/{tripId}/export.
// Returns the itinerary as a flat table, one row per activity.
// Supports ?format=csv (CSV) or default (JSON).

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_name", "stop_city", "stop_country", "arrival_date",
	"transport_mode", "transport_cost", "activity_date", "activity_name",
	"category", "activity_cost", "start_time", "end_time",
}

// GetExport handles GET /trips/{tripId}/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]api.ExportRow, len(rows))
	for i, row := range rows {
		out[i] = domainRowToJSON(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV into a buffer so Content-Length can be set.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func domainRowToJSON(r domain.ExportRow) api.ExportRow {
	return api.ExportRow{
		TripName:         r.TripName,
		StopCity:         r.StopCity,
		StopCountry:      r.StopCountry,
		ArrivalDate:      formatOptionalDate(r.ArrivalDate),
		TransportMode:    r.TransportMode,
		TransportCost:    r.TransportCost,
		ActivityDate:     formatOptionalDate(r.ActivityDate),
		ActivityName:     r.ActivityName,
		ActivityCategory: string(r.ActivityCategory),
		ActivityCost:     r.ActivityCost,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Zero dates and the cost of a missing activity are written as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	activityCost := ""
	if r.ActivityName != "" {
		activityCost = formatMoney(r.ActivityCost)
	}
	return []string{
		r.TripName,
		r.StopCity,
		r.StopCountry,
		formatOptionalDate(r.ArrivalDate),
		r.TransportMode,
		formatMoney(r.TransportCost),
		formatOptionalDate(r.ActivityDate),
		r.ActivityName,
		string(r.ActivityCategory),
		activityCost,
		r.StartTime,
		r.EndTime,
	}
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return calendar.FormatISO(t)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
