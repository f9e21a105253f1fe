package domain

import "time"

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusConfirmed TransactionStatus = "CONFIRMED"
	StatusRejected  TransactionStatus = "REJECTED"
)

// Transaction is one conversion (order) reported by the GA-Net partner
// API. Monetary fields stay decimal strings as delivered by the partner;
// they are parsed only at aggregation time.
type Transaction struct {
	ID            string
	OrderID       string
	WebsiteID     string
	TotalPrice    string
	Commission    string
	CampaignID    string
	CampaignName  string
	Status        TransactionStatus
	Currency      string
	UserID        *string
	Tag           string
	RedirectTagID *string
	OrderTime     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserConversionStats aggregates all transactions attributed to one user.
// Amounts are decimal strings at 2-digit scale.
type UserConversionStats struct {
	TotalTransactions int64
	TotalAmount       string
	TotalCommission   string
	ConfirmedCount    int64
	PendingCount      int64
	RejectedCount     int64
}

// TagConversionStats aggregates the transactions linked to one redirect tag.
type TagConversionStats struct {
	ClickTime         time.Time
	TotalTransactions int64
	TotalAmount       string
	TotalCommission   string
	ConversionRate    string
}

// PublisherConversionStats aggregates clicks and conversions for one
// publisher over a time window.
type PublisherConversionStats struct {
	ClickCount      int64
	ConversionCount int64
	ConversionRate  float64
	TotalAmount     string
	TotalCommission string
}
