package models

import "time"

type PublisherModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"size:255;not null"`
	SiteURL   string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CampaignModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"size:255;not null"`
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
