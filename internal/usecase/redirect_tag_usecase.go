package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/metrics"
	"github.com/tourze/ganet-tracking-service/internal/tag"
	redirecttagdto "github.com/tourze/ganet-tracking-service/internal/usecase/dto/redirecttag"
)

type RedirectTagUsecase interface {
	CreateRedirectTag(input *redirecttagdto.CreateRedirectTagInput) (*domain.RedirectTag, error)
	GenerateTrackingURL(input *redirecttagdto.GenerateTrackingURLInput) (*redirecttagdto.TrackingURLOutput, error)

	FindByTag(tagValue string) (*domain.RedirectTag, error)
	FindActiveByTag(tagValue string) (*domain.RedirectTag, error)
	FindByUserID(userID string, limit int) ([]*domain.RedirectTag, error)
	FindByPublisher(publisherID string, limit int) ([]*domain.RedirectTag, error)

	CleanupExpiredTags(before *time.Time) (int64, error)
	GetClickStats(publisherID string, start, end time.Time) ([]domain.ClickStat, error)
	GetCampaignClickStats(publisherID string, start, end time.Time) ([]domain.CampaignClickStat, error)

	UpdateTagWithUserInfo(tagValue, userID string, extra domain.ContextData) (bool, error)
	AddContextData(redirectTag *domain.RedirectTag, key string, value any) error
}

const (
	defaultUserTagLimit      = 50
	defaultPublisherTagLimit = 100
)

type DefaultRedirectTagUsecase struct {
	TagRepo domain.RedirectTagRepository
	Events  domain.EventPublisher
	Metrics *metrics.TrackingMetrics
	// Now supplies the single per-operation time snapshot; tests override it.
	Now func() time.Time
}

func NewDefaultRedirectTagUsecase(
	tagRepo domain.RedirectTagRepository,
	events domain.EventPublisher,
	trackingMetrics *metrics.TrackingMetrics) *DefaultRedirectTagUsecase {

	return &DefaultRedirectTagUsecase{
		TagRepo: tagRepo,
		Events:  events,
		Metrics: trackingMetrics,
		Now:     time.Now,
	}
}

func (uc *DefaultRedirectTagUsecase) CreateRedirectTag(input *redirecttagdto.CreateRedirectTagInput) (*domain.RedirectTag, error) {
	if input == nil || input.PublisherID == "" {
		return nil, domain.ErrPublisherRequired
	}

	now := uc.Now()

	var campaignID, userID string
	if input.CampaignID != nil {
		campaignID = *input.CampaignID
	}
	if input.UserID != nil {
		userID = *input.UserID
	}

	redirectTag := &domain.RedirectTag{
		ID:          uuid.NewString(),
		Tag:         tag.Generate(input.PublisherID, campaignID, userID),
		PublisherID: input.PublisherID,
		CampaignID:  input.CampaignID,
		UserID:      input.UserID,
		ClickTime:   now,
		ExpireTime:  input.ExpireTime,
	}

	if rc := input.Request; rc != nil {
		redirectTag.ClientIP = rc.ClientIP
		redirectTag.UserAgent = rc.UserAgent
		redirectTag.Referrer = rc.Referrer
		redirectTag.Context = buildContextData(rc)
	}

	if err := uc.TagRepo.Create(redirectTag); err != nil {
		uc.Metrics.IncError("create_redirect_tag")
		return nil, fmt.Errorf("create redirect tag: %w", err)
	}

	uc.Metrics.IncClickCreated(redirectTag.PublisherID)
	uc.publishClick(redirectTag)

	return redirectTag, nil
}

func (uc *DefaultRedirectTagUsecase) GenerateTrackingURL(input *redirecttagdto.GenerateTrackingURLInput) (*redirecttagdto.TrackingURLOutput, error) {
	if input == nil {
		return nil, domain.ErrPublisherRequired
	}
	if input.TargetURL == "" {
		return nil, domain.ErrTargetURLRequired
	}

	redirectTag, err := uc.CreateRedirectTag(&input.CreateRedirectTagInput)
	if err != nil {
		return nil, err
	}
	if redirectTag.Tag == "" {
		return nil, domain.ErrTagMissing
	}

	separator := "?"
	if strings.Contains(input.TargetURL, "?") {
		separator = "&"
	}

	uc.Metrics.IncTrackingURLIssued(redirectTag.PublisherID)

	return &redirecttagdto.TrackingURLOutput{
		Tag:         redirectTag.Tag,
		TrackingURL: input.TargetURL + separator + "tag=" + redirectTag.Tag,
		RedirectTag: redirectTag,
	}, nil
}

func (uc *DefaultRedirectTagUsecase) FindByTag(tagValue string) (*domain.RedirectTag, error) {
	return uc.TagRepo.FindByTag(tagValue)
}

func (uc *DefaultRedirectTagUsecase) FindActiveByTag(tagValue string) (*domain.RedirectTag, error) {
	return uc.TagRepo.FindActiveByTag(tagValue, uc.Now())
}

func (uc *DefaultRedirectTagUsecase) FindByUserID(userID string, limit int) ([]*domain.RedirectTag, error) {
	if limit <= 0 {
		limit = defaultUserTagLimit
	}
	return uc.TagRepo.FindByUserID(userID, limit)
}

func (uc *DefaultRedirectTagUsecase) FindByPublisher(publisherID string, limit int) ([]*domain.RedirectTag, error) {
	if limit <= 0 {
		limit = defaultPublisherTagLimit
	}
	return uc.TagRepo.FindByPublisherID(publisherID, limit)
}

// CleanupExpiredTags removes tags whose expire time is strictly before the
// cutoff. A nil cutoff means "now". Re-running after a sweep removes zero more.
func (uc *DefaultRedirectTagUsecase) CleanupExpiredTags(before *time.Time) (int64, error) {
	cutoff := uc.Now()
	if before != nil {
		cutoff = *before
	}

	removed, err := uc.TagRepo.DeleteExpiredBefore(cutoff)
	if err != nil {
		uc.Metrics.IncError("cleanup_expired_tags")
		return 0, fmt.Errorf("cleanup expired tags: %w", err)
	}

	uc.Metrics.AddExpiredTagsRemoved(removed)
	return removed, nil
}

func (uc *DefaultRedirectTagUsecase) GetClickStats(publisherID string, start, end time.Time) ([]domain.ClickStat, error) {
	return uc.TagRepo.ClickStatsByDate(publisherID, start, end)
}

func (uc *DefaultRedirectTagUsecase) GetCampaignClickStats(publisherID string, start, end time.Time) ([]domain.CampaignClickStat, error) {
	return uc.TagRepo.ClickStatsByCampaign(publisherID, start, end)
}

// UpdateTagWithUserInfo attaches a user id to an active tag once the user is
// known, typically after registration. Returns false when no active tag
// carries the value.
func (uc *DefaultRedirectTagUsecase) UpdateTagWithUserInfo(tagValue, userID string, extra domain.ContextData) (bool, error) {
	redirectTag, err := uc.TagRepo.FindActiveByTag(tagValue, uc.Now())
	if err != nil {
		return false, fmt.Errorf("find active tag: %w", err)
	}
	if redirectTag == nil {
		return false, nil
	}

	redirectTag.UserID = &userID
	redirectTag.MergeContext(extra)

	if err := uc.TagRepo.Update(redirectTag); err != nil {
		return false, fmt.Errorf("update tag with user info: %w", err)
	}
	return true, nil
}

func (uc *DefaultRedirectTagUsecase) AddContextData(redirectTag *domain.RedirectTag, key string, value any) error {
	redirectTag.MergeContext(domain.ContextData{key: value})
	if err := uc.TagRepo.Update(redirectTag); err != nil {
		return fmt.Errorf("add context data: %w", err)
	}
	return nil
}

func (uc *DefaultRedirectTagUsecase) publishClick(redirectTag *domain.RedirectTag) {
	if uc.Events == nil {
		return
	}

	event := domain.ClickEvent{
		TagID:       redirectTag.ID,
		Tag:         redirectTag.Tag,
		PublisherID: redirectTag.PublisherID,
		ClickTime:   redirectTag.ClickTime,
	}
	if redirectTag.CampaignID != nil {
		event.CampaignID = *redirectTag.CampaignID
	}
	if redirectTag.UserID != nil {
		event.UserID = *redirectTag.UserID
	}

	if err := uc.Events.PublishClick(event); err != nil {
		slog.Warn("click event publish failed", "tag", redirectTag.Tag, "error", err)
	}
}

// buildContextData flattens the captured request into the context map.
// Empty values are dropped; query parameters keep their raw keys, with
// single-valued parameters stored as plain strings.
func buildContextData(rc *domain.RequestContext) domain.ContextData {
	data := domain.ContextData{}

	put := func(key, value string) {
		if value != "" {
			data[key] = value
		}
	}
	put("accept-language", rc.AcceptLanguage)
	put("accept-encoding", rc.AcceptEncoding)
	put("request-uri", rc.RequestURI)
	put("method", rc.Method)
	if !rc.RequestTime.IsZero() {
		data["request-time"] = rc.RequestTime.Format(time.RFC3339)
	}

	for key, values := range rc.Query {
		switch len(values) {
		case 0:
		case 1:
			put(key, values[0])
		default:
			data[key] = values
		}
	}

	return data
}
