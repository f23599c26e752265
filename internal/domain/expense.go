package domain

import "time"

type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	SpentAt     time.Time `json:"spent_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseSummary agrega totales para la vista de presupuesto.
type ExpenseSummary struct {
	Total      float64            `json:"total"`
	MonthTotal float64            `json:"month_total"`
	ByCategory map[string]float64 `json:"by_category"`
}
