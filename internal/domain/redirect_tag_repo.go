package domain

import "time"

// RedirectTagRepository persists redirect tags. Lookup methods return
// (nil, nil) when no record matches; errors are reserved for storage
// failures.
type RedirectTagRepository interface {
	Create(tag *RedirectTag) error
	Update(tag *RedirectTag) error
	FindByTag(tagValue string) (*RedirectTag, error)
	FindActiveByTag(tagValue string, now time.Time) (*RedirectTag, error)
	// FindByUserID and FindByPublisherID list most-recent-first; a limit
	// of zero or less means unbounded.
	FindByUserID(userID string, limit int) ([]*RedirectTag, error)
	FindByPublisherID(publisherID string, limit int) ([]*RedirectTag, error)
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
	ClickStatsByDate(publisherID string, start, end time.Time) ([]ClickStat, error)
	ClickStatsByCampaign(publisherID string, start, end time.Time) ([]CampaignClickStat, error)
}
