package models

import (
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
)

type TransactionModel struct {
	ID            string                   `gorm:"primaryKey;type:uuid"`
	OrderID       string                   `gorm:"not null;uniqueIndex:idx_transaction_order"`
	WebsiteID     string                   `gorm:"index"`
	TotalPrice    string                   `gorm:"size:32"`
	Commission    string                   `gorm:"size:32"`
	CampaignID    string                   `gorm:"index"`
	CampaignName  string                   `gorm:"size:255"`
	Status        domain.TransactionStatus `gorm:"size:16;index:idx_transaction_status"`
	Currency      string                   `gorm:"size:8"`
	UserID        *string                  `gorm:"index:idx_transaction_user"`
	Tag           string                   `gorm:"size:64;index:idx_transaction_tag"`
	RedirectTagID *string                  `gorm:"type:uuid;index:idx_transaction_redirect_tag"`
	RedirectTag   *RedirectTagModel        `gorm:"foreignKey:RedirectTagID;references:ID"`
	OrderTime     time.Time                `gorm:"index:idx_transaction_order_time"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
