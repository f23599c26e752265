package domain

import "time"

type Internship struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Stipend     float64   `json:"stipend"`
	Remote      bool      `json:"remote"`
	Deadline    time.Time `json:"deadline"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
