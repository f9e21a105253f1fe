package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
)

// stubTagRepo keeps redirect tags in memory, keyed by tag value.
type stubTagRepo struct {
	tags       map[string]*domain.RedirectTag
	createErr  error
	updateErr  error
	lastLimit  int
	dateStats  []domain.ClickStat
	campStats  []domain.CampaignClickStat
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{tags: make(map[string]*domain.RedirectTag)}
}

func (s *stubTagRepo) Create(tag *domain.RedirectTag) error {
	if s.createErr != nil {
		return s.createErr
	}
	copied := *tag
	s.tags[tag.Tag] = &copied
	return nil
}

func (s *stubTagRepo) Update(tag *domain.RedirectTag) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	copied := *tag
	s.tags[tag.Tag] = &copied
	return nil
}

func (s *stubTagRepo) FindByTag(tagValue string) (*domain.RedirectTag, error) {
	tag, ok := s.tags[tagValue]
	if !ok {
		return nil, nil
	}
	copied := *tag
	return &copied, nil
}

func (s *stubTagRepo) FindActiveByTag(tagValue string, now time.Time) (*domain.RedirectTag, error) {
	tag, ok := s.tags[tagValue]
	if !ok || !tag.IsActiveAt(now) {
		return nil, nil
	}
	copied := *tag
	return &copied, nil
}

func (s *stubTagRepo) FindByUserID(userID string, limit int) ([]*domain.RedirectTag, error) {
	s.lastLimit = limit
	var result []*domain.RedirectTag
	for _, tag := range s.tags {
		if tag.UserID != nil && *tag.UserID == userID {
			result = append(result, tag)
		}
	}
	return capSorted(result, limit), nil
}

func (s *stubTagRepo) FindByPublisherID(publisherID string, limit int) ([]*domain.RedirectTag, error) {
	s.lastLimit = limit
	var result []*domain.RedirectTag
	for _, tag := range s.tags {
		if tag.PublisherID == publisherID {
			result = append(result, tag)
		}
	}
	return capSorted(result, limit), nil
}

func (s *stubTagRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	var removed int64
	for value, tag := range s.tags {
		if tag.ExpireTime != nil && tag.ExpireTime.Before(cutoff) {
			delete(s.tags, value)
			removed++
		}
	}
	return removed, nil
}

func (s *stubTagRepo) ClickStatsByDate(publisherID string, start, end time.Time) ([]domain.ClickStat, error) {
	return s.dateStats, nil
}

func (s *stubTagRepo) ClickStatsByCampaign(publisherID string, start, end time.Time) ([]domain.CampaignClickStat, error) {
	return s.campStats, nil
}

func capSorted(tags []*domain.RedirectTag, limit int) []*domain.RedirectTag {
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].ClickTime.After(tags[j].ClickTime)
	})
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

type stubTxRepo struct {
	transactions []*domain.Transaction
	updated      []*domain.Transaction
	upsertErr    error
}

func (s *stubTxRepo) Create(tx *domain.Transaction) error {
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *stubTxRepo) Update(tx *domain.Transaction) error {
	s.updated = append(s.updated, tx)
	for i, existing := range s.transactions {
		if existing.ID == tx.ID {
			s.transactions[i] = tx
			return nil
		}
	}
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *stubTxRepo) UpsertByOrderID(tx *domain.Transaction) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	for i, existing := range s.transactions {
		if existing.OrderID == tx.OrderID {
			tx.ID = existing.ID
			tx.RedirectTagID = existing.RedirectTagID
			s.transactions[i] = tx
			return nil
		}
	}
	if tx.ID == "" {
		tx.ID = "tx-" + tx.OrderID
	}
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *stubTxRepo) FindByUserID(userID string) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != nil && *tx.UserID == userID {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderTime.After(result[j].OrderTime)
	})
	return result, nil
}

func (s *stubTxRepo) FindByRedirectTagID(redirectTagID string) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range s.transactions {
		if tx.RedirectTagID != nil && *tx.RedirectTagID == redirectTagID {
			result = append(result, tx)
		}
	}
	return result, nil
}

type stubPublisherRepo struct {
	publishers map[string]*domain.Publisher
}

func (s *stubPublisherRepo) FindByID(id string) (*domain.Publisher, error) {
	return s.publishers[id], nil
}

type stubCampaignRepo struct {
	campaigns map[string]*domain.Campaign
	upsertErr error
}

func (s *stubCampaignRepo) Upsert(c *domain.Campaign) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if s.campaigns == nil {
		s.campaigns = make(map[string]*domain.Campaign)
	}
	s.campaigns[c.ID] = c
	return nil
}

func (s *stubCampaignRepo) FindByID(id string) (*domain.Campaign, error) {
	return s.campaigns[id], nil
}

type stubPartnerAPI struct {
	transactions []*domain.Transaction
	campaigns    []*domain.Campaign
	err          error
}

func (s *stubPartnerAPI) GetTransactions(ctx context.Context, since time.Time) ([]*domain.Transaction, error) {
	return s.transactions, s.err
}

func (s *stubPartnerAPI) GetCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	return s.campaigns, s.err
}

type stubEvents struct {
	clicks      []domain.ClickEvent
	conversions []domain.ConversionEvent
}

func (s *stubEvents) PublishClick(event domain.ClickEvent) error {
	s.clicks = append(s.clicks, event)
	return nil
}

func (s *stubEvents) PublishConversion(event domain.ConversionEvent) error {
	s.conversions = append(s.conversions, event)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
