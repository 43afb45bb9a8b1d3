package domain

import "time"

// BudgetSummary is the spend overview of a trip.
// TotalSpent sums activity costs and stop transport costs.
type BudgetSummary struct {
	TotalBudget  float64         `json:"total_budget"`
	TotalSpent   float64         `json:"total_spent"`
	Remaining    float64         `json:"remaining"`
	IsOverBudget bool            `json:"is_over_budget"`
	ByCategory   []CategoryTotal `json:"by_category"`
	Daily        []DailySpend    `json:"daily"`
}

// CategoryTotal is the summed cost of one category, transport included.
type CategoryTotal struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// DailySpend is the summed cost scheduled on one calendar date.
type DailySpend struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
