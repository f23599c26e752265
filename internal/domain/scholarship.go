package domain

import "time"

type Scholarship struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Amount       float64   `json:"amount"`
	MinGPA       float64   `json:"min_gpa"`
	AppliedCount int       `json:"applied_count"`
	Deadline     time.Time `json:"deadline"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
