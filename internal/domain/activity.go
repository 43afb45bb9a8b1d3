package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies an activity for budgeting and display.
type Category string

const (
	CategoryFood        Category = "Food"
	CategorySightseeing Category = "Sightseeing"
	CategoryAdventure   Category = "Adventure"
	CategoryRelaxation  Category = "Relaxation"
	CategoryShopping    Category = "Shopping"
	CategoryOther       Category = "Other"
	CategoryTransport   Category = "Transport"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryFood, CategorySightseeing, CategoryAdventure, CategoryRelaxation,
	CategoryShopping, CategoryOther, CategoryTransport,
}

// ParseCategory matches s case-insensitively against the known categories.
// An empty string maps to CategoryOther.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, true
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Activity is something scheduled at a stop.
//
// Its calendar date is never stored: it is derived as the owning stop's
// ArrivalDate plus DayOffset days. StartTime and EndTime are optional
// "HH:MM" local times; an empty string means unset.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	StopID      uuid.UUID `json:"stop_id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description,omitempty"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	DayOffset   int       `json:"day_offset"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
