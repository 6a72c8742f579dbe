package domain

import "time"

// Project is a portfolio entry.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	RepoURL     string    `json:"repo_url"`
	LiveURL     string    `json:"live_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
