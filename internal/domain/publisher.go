package domain

import "time"

// Publisher owns redirect tags. Synced from the partner back-office.
type Publisher struct {
	ID        string
	Name      string
	SiteURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Campaign struct {
	ID        string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
