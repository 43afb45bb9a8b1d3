// Package budget summarizes what a trip costs against what was budgeted.
package budget

import (
	"cmp"
	"slices"
	"time"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
)

// Summarize totals activity and transport costs for an itinerary.
//
// Transport costs count under CategoryTransport and are charged on the stop's
// arrival date. Activity costs are charged on the activity's derived date;
// activities without a positive cost are left out of the daily series.
func Summarize(trip domain.Trip) domain.BudgetSummary {
	byCategory := map[domain.Category]float64{}
	daily := map[time.Time]float64{}
	var spent float64

	for _, s := range trip.Stops {
		if s.TransportCost > 0 {
			spent += s.TransportCost
			byCategory[domain.CategoryTransport] += s.TransportCost
			daily[calendar.DateOf(s.ArrivalDate)] += s.TransportCost
		}
	}
	for _, p := range calendar.Project(trip) {
		a := p.Activity
		cat := a.Category
		if cat == "" {
			cat = domain.CategoryOther
		}
		spent += a.Cost
		byCategory[cat] += a.Cost
		if a.Cost > 0 {
			daily[p.Date] += a.Cost
		}
	}

	sum := domain.BudgetSummary{
		TotalBudget:  trip.Budget,
		TotalSpent:   spent,
		Remaining:    trip.Budget - spent,
		IsOverBudget: spent > trip.Budget,
		ByCategory:   make([]domain.CategoryTotal, 0, len(byCategory)),
		Daily:        make([]domain.DailySpend, 0, len(daily)),
	}
	for c, amt := range byCategory {
		sum.ByCategory = append(sum.ByCategory, domain.CategoryTotal{Category: c, Amount: amt})
	}
	slices.SortFunc(sum.ByCategory, func(a, b domain.CategoryTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	for d, amt := range daily {
		sum.Daily = append(sum.Daily, domain.DailySpend{Date: d, Amount: amt})
	}
	slices.SortFunc(sum.Daily, func(a, b domain.DailySpend) int {
		return a.Date.Compare(b.Date)
	})
	return sum
}
