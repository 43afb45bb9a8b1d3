package budget_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/planner/internal/budget"
	"github.com/globetrotter/planner/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	trip := domain.Trip{
		ID:        uuid.New(),
		Budget:    500,
		StartDate: day(1),
		EndDate:   day(10),
		Stops: []domain.Stop{
			{
				ArrivalDate:   day(1),
				TransportCost: 120,
				Activities: []domain.Activity{
					{Category: domain.CategoryFood, Cost: 40, DayOffset: 0},
					{Category: domain.CategoryFood, Cost: 25, DayOffset: 1},
					{Category: domain.CategorySightseeing, Cost: 0, DayOffset: 1},
				},
			},
			{
				ArrivalDate: day(4),
				Activities: []domain.Activity{
					{Category: "", Cost: 15, DayOffset: 0},
				},
			},
		},
	}

	got := budget.Summarize(trip)

	assert.InDelta(t, 500, got.TotalBudget, 0.001)
	assert.InDelta(t, 200, got.TotalSpent, 0.001)
	assert.InDelta(t, 300, got.Remaining, 0.001)
	assert.False(t, got.IsOverBudget)

	require.Len(t, got.ByCategory, 4)
	assert.Equal(t, domain.CategoryTransport, got.ByCategory[0].Category)
	assert.Equal(t, domain.CategoryFood, got.ByCategory[1].Category)
	assert.InDelta(t, 65, got.ByCategory[1].Amount, 0.001)
	assert.Equal(t, domain.CategoryOther, got.ByCategory[2].Category)

	require.Len(t, got.Daily, 3)
	assert.True(t, got.Daily[0].Date.Equal(day(1)))
	assert.InDelta(t, 160, got.Daily[0].Amount, 0.001, "transport + first dinner")
	assert.True(t, got.Daily[1].Date.Equal(day(2)))
	assert.InDelta(t, 25, got.Daily[1].Amount, 0.001)
	assert.True(t, got.Daily[2].Date.Equal(day(4)))
}

func TestSummarize_OverBudget(t *testing.T) {
	trip := domain.Trip{
		Budget: 10,
		Stops: []domain.Stop{{
			ArrivalDate: day(1),
			Activities:  []domain.Activity{{Category: domain.CategoryShopping, Cost: 11}},
		}},
	}

	got := budget.Summarize(trip)

	assert.True(t, got.IsOverBudget)
	assert.InDelta(t, -1, got.Remaining, 0.001)
}

func TestSummarize_EmptyTrip(t *testing.T) {
	got := budget.Summarize(domain.Trip{Budget: 100})

	assert.NotNil(t, got.ByCategory)
	assert.NotNil(t, got.Daily)
	assert.Empty(t, got.Daily)
	assert.InDelta(t, 100, got.Remaining, 0.001)
}
