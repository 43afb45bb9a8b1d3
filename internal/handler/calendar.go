package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/service"
)

// GetCalendar handles GET /trips/{tripId}/calendar?month=YYYY-MM.
// Without month the view opens on the trip's start month.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	var month *calendar.Month
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := calendar.ParseMonth(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("month must be YYYY-MM"))
			return
		}
		month = &m
	}

	view, err := s.trips.Calendar(r.Context(), id, month)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, monthToResponse(view))
}

func monthToResponse(v service.MonthView) api.CalendarMonth {
	resp := api.CalendarMonth{
		TripId: v.Trip.ID,
		Month:  v.Month.String(),
		Prev:   v.Month.Prev().String(),
		Next:   v.Month.Next().String(),
		Days:   make([]api.CalendarDay, len(v.Cells)),
	}
	for i, c := range v.Cells {
		day := api.CalendarDay{
			Date:           openapi_types.Date{Time: c.Date},
			IsCurrentMonth: c.IsCurrentMonth,
			IsTripDay:      c.IsTripDay,
			Activities:     make([]api.CalendarEntry, len(c.Entries)),
		}
		for j, e := range c.Entries {
			day.Activities[j] = api.CalendarEntry{
				Activity: api.ActivityFrom(e.Activity),
				Date:     openapi_types.Date{Time: e.Date},
				StopId:   e.StopID,
				Conflict: e.Conflict,
			}
		}
		resp.Days[i] = day
	}
	return resp
}
