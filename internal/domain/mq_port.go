package domain

import "time"

// ClickEvent is emitted when a redirect tag is created.
type ClickEvent struct {
	EventID     string    `json:"event_id"`
	TagID       string    `json:"tag_id"`
	Tag         string    `json:"tag"`
	PublisherID string    `json:"publisher_id"`
	CampaignID  string    `json:"campaign_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	ClickTime   time.Time `json:"click_time"`
}

// ConversionEvent is emitted when a transaction is linked to a redirect tag.
type ConversionEvent struct {
	EventID       string    `json:"event_id"`
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	Tag           string    `json:"tag"`
	RedirectTagID string    `json:"redirect_tag_id"`
	UserID        string    `json:"user_id,omitempty"`
	TotalPrice    string    `json:"total_price"`
	Commission    string    `json:"commission"`
	Status        string    `json:"status"`
	LinkedAt      time.Time `json:"linked_at"`
}

// EventPublisher pushes tracking events to the message broker. Publishing
// is best effort: usecases log failures and carry on.
type EventPublisher interface {
	PublishClick(event ClickEvent) error
	PublishConversion(event ConversionEvent) error
}
