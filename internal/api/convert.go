package api

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/planner/internal/domain"
)

// TripFrom converts a domain trip, stops and activities included.
func TripFrom(t domain.Trip) Trip {
	resp := Trip{
		Id:            t.ID,
		Owner:         t.Owner,
		Name:          t.Name,
		Description:   t.Description,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		Budget:        t.Budget,
		CoverPhotoURL: t.CoverPhotoURL,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Stops != nil {
		resp.Stops = make([]Stop, len(t.Stops))
		for i, s := range t.Stops {
			resp.Stops[i] = StopFrom(s)
		}
	}
	return resp
}

// StopFrom converts a domain stop and its activities.
func StopFrom(s domain.Stop) Stop {
	resp := Stop{
		Id:            s.ID,
		TripId:        s.TripID,
		CityName:      s.CityName,
		Country:       s.Country,
		ArrivalDate:   openapi_types.Date{Time: s.ArrivalDate},
		TransportCost: s.TransportCost,
		TransportMode: s.TransportMode,
		OrderIndex:    s.OrderIndex,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.DepartureDate != nil {
		resp.DepartureDate = &openapi_types.Date{Time: *s.DepartureDate}
	}
	if s.Activities != nil {
		resp.Activities = make([]Activity, len(s.Activities))
		for i, a := range s.Activities {
			resp.Activities[i] = ActivityFrom(a)
		}
	}
	return resp
}

// ActivityFrom converts a domain activity.
func ActivityFrom(a domain.Activity) Activity {
	return Activity{
		Id:          a.ID,
		StopId:      a.StopID,
		Name:        a.Name,
		Category:    string(a.Category),
		Cost:        a.Cost,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		DayOffset:   a.DayOffset,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Domain converts the wire trip, stops and activities included.
func (t Trip) Domain() domain.Trip {
	out := domain.Trip{
		ID:            t.Id,
		Owner:         t.Owner,
		Name:          t.Name,
		Description:   t.Description,
		StartDate:     t.StartDate.Time,
		EndDate:       t.EndDate.Time,
		Budget:        t.Budget,
		CoverPhotoURL: t.CoverPhotoURL,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	for _, s := range t.Stops {
		out.Stops = append(out.Stops, s.Domain())
	}
	return out
}

// Domain converts the wire stop and its activities.
func (s Stop) Domain() domain.Stop {
	out := domain.Stop{
		ID:            s.Id,
		TripID:        s.TripId,
		CityName:      s.CityName,
		Country:       s.Country,
		ArrivalDate:   s.ArrivalDate.Time,
		TransportCost: s.TransportCost,
		TransportMode: s.TransportMode,
		OrderIndex:    s.OrderIndex,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.DepartureDate != nil {
		d := s.DepartureDate.Time
		out.DepartureDate = &d
	}
	for _, a := range s.Activities {
		out.Activities = append(out.Activities, a.Domain())
	}
	return out
}

// Domain converts the wire activity.
func (a Activity) Domain() domain.Activity {
	return domain.Activity{
		ID:          a.Id,
		StopID:      a.StopId,
		Name:        a.Name,
		Category:    domain.Category(a.Category),
		Cost:        a.Cost,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		DayOffset:   a.DayOffset,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ActivityRequestFrom builds the full-replacement payload for a.
func ActivityRequestFrom(a domain.Activity) ActivityRequest {
	stopID := a.StopID
	return ActivityRequest{
		StopID:      &stopID,
		Name:        a.Name,
		Category:    string(a.Category),
		Cost:        a.Cost,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		DayOffset:   a.DayOffset,
	}
}

// Domain converts the request body. ID and owner are left for the caller.
func (b TripRequest) Domain() domain.Trip {
	return domain.Trip{
		Name:          b.Name,
		Description:   b.Description,
		StartDate:     b.StartDate.Time,
		EndDate:       b.EndDate.Time,
		Budget:        b.Budget,
		CoverPhotoURL: b.CoverPhotoURL,
	}
}

// Domain converts the request body. The trip comes from the path.
func (b StopRequest) Domain() domain.Stop {
	s := domain.Stop{
		CityName:      b.CityName,
		Country:       b.Country,
		ArrivalDate:   b.ArrivalDate.Time,
		TransportCost: b.TransportCost,
		TransportMode: b.TransportMode,
		OrderIndex:    b.OrderIndex,
	}
	if b.DepartureDate != nil {
		d := b.DepartureDate.Time
		s.DepartureDate = &d
	}
	return s
}

func (b ActivityRequest) Domain() domain.Activity {
	a := domain.Activity{
		Name:        b.Name,
		Category:    domain.Category(b.Category),
		Cost:        b.Cost,
		Description: b.Description,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		DayOffset:   b.DayOffset,
	}
	if b.StopID != nil {
		a.StopID = *b.StopID
	}
	return a
}

// BudgetFrom converts a budget summary.
func BudgetFrom(sum domain.BudgetSummary) Budget {
	b := Budget{
		TotalBudget:  sum.TotalBudget,
		TotalSpent:   sum.TotalSpent,
		Remaining:    sum.Remaining,
		IsOverBudget: sum.IsOverBudget,
		ByCategory:   sum.ByCategory,
		Daily:        make([]DailySpend, len(sum.Daily)),
	}
	for i, d := range sum.Daily {
		b.Daily[i] = DailySpend{Date: openapi_types.Date{Time: d.Date}, Amount: d.Amount}
	}
	return b
}

// NewError builds the {"error": {...}} envelope.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
