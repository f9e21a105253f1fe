package usecase

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/metrics"
)

type TransactionTagUsecase interface {
	LinkTransactionWithTag(transaction *domain.Transaction, tagValue string) (bool, error)
	BatchLinkTransactionsWithTags(transactions []*domain.Transaction) (int, error)

	GetUserConversionStats(userID string) (*domain.UserConversionStats, error)
	GetTagConversionStats(redirectTag *domain.RedirectTag) (*domain.TagConversionStats, error)
	GetConversionRate(redirectTag *domain.RedirectTag) (float64, error)
	GetPublisherConversionStats(publisherID string, start, end time.Time) (*domain.PublisherConversionStats, error)
}

type DefaultTransactionTagUsecase struct {
	TxRepo        domain.TransactionRepository
	TagRepo       domain.RedirectTagRepository
	PublisherRepo domain.PublisherRepository
	Events        domain.EventPublisher
	Metrics       *metrics.TrackingMetrics
	Now           func() time.Time
}

func NewDefaultTransactionTagUsecase(
	txRepo domain.TransactionRepository,
	tagRepo domain.RedirectTagRepository,
	publisherRepo domain.PublisherRepository,
	events domain.EventPublisher,
	trackingMetrics *metrics.TrackingMetrics) *DefaultTransactionTagUsecase {

	return &DefaultTransactionTagUsecase{
		TxRepo:        txRepo,
		TagRepo:       tagRepo,
		PublisherRepo: publisherRepo,
		Events:        events,
		Metrics:       trackingMetrics,
		Now:           time.Now,
	}
}

// LinkTransactionWithTag attributes the transaction to the active redirect
// tag carrying tagValue. Expired tags are refused: an expired click cannot
// be credited. On success the tag's user id, when known, overwrites the
// transaction's.
func (uc *DefaultTransactionTagUsecase) LinkTransactionWithTag(transaction *domain.Transaction, tagValue string) (bool, error) {
	started := time.Now()
	defer func() {
		uc.Metrics.ObserveLinkDuration(time.Since(started))
	}()

	redirectTag, err := uc.TagRepo.FindActiveByTag(tagValue, uc.Now())
	if err != nil {
		uc.Metrics.IncError("link_transaction")
		return false, fmt.Errorf("find active tag %q: %w", tagValue, err)
	}
	if redirectTag == nil {
		uc.Metrics.IncLinkAttempt("refused")
		return false, nil
	}

	transaction.RedirectTagID = &redirectTag.ID
	if redirectTag.UserID != nil {
		userID := *redirectTag.UserID
		transaction.UserID = &userID
	}

	if err := uc.TxRepo.Update(transaction); err != nil {
		uc.Metrics.IncError("link_transaction")
		return false, fmt.Errorf("persist linked transaction %s: %w", transaction.ID, err)
	}

	uc.Metrics.IncLinkAttempt("linked")
	uc.publishConversion(transaction, redirectTag)

	return true, nil
}

// BatchLinkTransactionsWithTags attempts linkage for every transaction
// carrying a non-blank tag and returns the number of successes. Items are
// independent: a failing item is logged and skipped, never rolled back.
func (uc *DefaultTransactionTagUsecase) BatchLinkTransactionsWithTags(transactions []*domain.Transaction) (int, error) {
	linked := 0
	for _, transaction := range transactions {
		if transaction == nil || strings.TrimSpace(transaction.Tag) == "" {
			uc.Metrics.IncLinkAttempt("skipped")
			continue
		}

		ok, err := uc.LinkTransactionWithTag(transaction, transaction.Tag)
		if err != nil {
			slog.Warn("batch link item failed",
				"transaction_id", transaction.ID, "tag", transaction.Tag, "error", err)
			continue
		}
		if ok {
			linked++
		}
	}
	return linked, nil
}

func (uc *DefaultTransactionTagUsecase) GetUserConversionStats(userID string) (*domain.UserConversionStats, error) {
	transactions, err := uc.TxRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions for user %s: %w", userID, err)
	}

	stats := &domain.UserConversionStats{TotalTransactions: int64(len(transactions))}
	totalAmount := decimal.Zero
	totalCommission := decimal.Zero

	for _, transaction := range transactions {
		totalAmount = totalAmount.Add(toAmount(transaction.TotalPrice))
		totalCommission = totalCommission.Add(toAmount(transaction.Commission))

		switch transaction.Status {
		case domain.StatusConfirmed:
			stats.ConfirmedCount++
		case domain.StatusRejected:
			stats.RejectedCount++
		default:
			stats.PendingCount++
		}
	}

	stats.TotalAmount = totalAmount.StringFixed(2)
	stats.TotalCommission = totalCommission.StringFixed(2)
	return stats, nil
}

func (uc *DefaultTransactionTagUsecase) GetTagConversionStats(redirectTag *domain.RedirectTag) (*domain.TagConversionStats, error) {
	transactions, err := uc.TxRepo.FindByRedirectTagID(redirectTag.ID)
	if err != nil {
		return nil, fmt.Errorf("load transactions for tag %s: %w", redirectTag.ID, err)
	}

	totalAmount := decimal.Zero
	totalCommission := decimal.Zero
	for _, transaction := range transactions {
		totalAmount = totalAmount.Add(toAmount(transaction.TotalPrice))
		totalCommission = totalCommission.Add(toAmount(transaction.Commission))
	}

	// Per-tag conversion is a binary signal: any linked transaction at all.
	conversionRate := "0.00"
	if len(transactions) > 0 {
		conversionRate = "100.00"
	}

	return &domain.TagConversionStats{
		ClickTime:         redirectTag.ClickTime,
		TotalTransactions: int64(len(transactions)),
		TotalAmount:       totalAmount.StringFixed(2),
		TotalCommission:   totalCommission.StringFixed(2),
		ConversionRate:    conversionRate,
	}, nil
}

func (uc *DefaultTransactionTagUsecase) GetConversionRate(redirectTag *domain.RedirectTag) (float64, error) {
	transactions, err := uc.TxRepo.FindByRedirectTagID(redirectTag.ID)
	if err != nil {
		return 0, fmt.Errorf("load transactions for tag %s: %w", redirectTag.ID, err)
	}
	if len(transactions) > 0 {
		return 100.0, nil
	}
	return 0.0, nil
}

// GetPublisherConversionStats reports clicks and conversions for one
// publisher over [start, end] inclusive. A tag counts as converted when it
// has any linked transaction regardless of status, while monetary totals
// sum confirmed transactions only; the asymmetry matches the upstream
// partner back-office behavior.
func (uc *DefaultTransactionTagUsecase) GetPublisherConversionStats(publisherID string, start, end time.Time) (*domain.PublisherConversionStats, error) {
	zero := &domain.PublisherConversionStats{TotalAmount: "0.00", TotalCommission: "0.00"}

	publisher, err := uc.PublisherRepo.FindByID(publisherID)
	if err != nil {
		return nil, fmt.Errorf("resolve publisher %s: %w", publisherID, err)
	}
	if publisher == nil {
		return zero, nil
	}

	tags, err := uc.TagRepo.FindByPublisherID(publisher.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("load tags for publisher %s: %w", publisherID, err)
	}

	var clickCount, conversionCount int64
	totalAmount := decimal.Zero
	totalCommission := decimal.Zero

	for _, redirectTag := range tags {
		if redirectTag.ClickTime.Before(start) || redirectTag.ClickTime.After(end) {
			continue
		}
		clickCount++

		transactions, err := uc.TxRepo.FindByRedirectTagID(redirectTag.ID)
		if err != nil {
			return nil, fmt.Errorf("load transactions for tag %s: %w", redirectTag.ID, err)
		}
		if len(transactions) > 0 {
			conversionCount++
		}
		for _, transaction := range transactions {
			if transaction.Status != domain.StatusConfirmed {
				continue
			}
			totalAmount = totalAmount.Add(toAmount(transaction.TotalPrice))
			totalCommission = totalCommission.Add(toAmount(transaction.Commission))
		}
	}

	conversionRate := 0.0
	if clickCount > 0 {
		conversionRate = math.Round(float64(conversionCount)/float64(clickCount)*100*100) / 100
	}

	return &domain.PublisherConversionStats{
		ClickCount:      clickCount,
		ConversionCount: conversionCount,
		ConversionRate:  conversionRate,
		TotalAmount:     totalAmount.StringFixed(2),
		TotalCommission: totalCommission.StringFixed(2),
	}, nil
}

func (uc *DefaultTransactionTagUsecase) publishConversion(transaction *domain.Transaction, redirectTag *domain.RedirectTag) {
	if uc.Events == nil {
		return
	}

	event := domain.ConversionEvent{
		TransactionID: transaction.ID,
		OrderID:       transaction.OrderID,
		Tag:           redirectTag.Tag,
		RedirectTagID: redirectTag.ID,
		TotalPrice:    transaction.TotalPrice,
		Commission:    transaction.Commission,
		Status:        string(transaction.Status),
		LinkedAt:      uc.Now(),
	}
	if transaction.UserID != nil {
		event.UserID = *transaction.UserID
	}

	if err := uc.Events.PublishConversion(event); err != nil {
		slog.Warn("conversion event publish failed",
			"transaction_id", transaction.ID, "tag", redirectTag.Tag, "error", err)
	}
}

// toAmount parses a partner monetary field. Blank or malformed values
// contribute zero instead of aborting aggregation.
func toAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
