package domain

type TransactionRepository interface {
	Create(tx *Transaction) error
	Update(tx *Transaction) error
	// UpsertByOrderID inserts the transaction or updates the existing row
	// carrying the same partner order id.
	UpsertByOrderID(tx *Transaction) error
	// FindByUserID returns the user's transactions ordered by order time
	// descending.
	FindByUserID(userID string) ([]*Transaction, error)
	FindByRedirectTagID(redirectTagID string) ([]*Transaction, error)
}

type PublisherRepository interface {
	// FindByID returns (nil, nil) when the publisher does not exist.
	FindByID(id string) (*Publisher, error)
}

type CampaignRepository interface {
	Upsert(c *Campaign) error
	FindByID(id string) (*Campaign, error)
}
