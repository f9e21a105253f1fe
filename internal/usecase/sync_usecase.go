package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/metrics"
	transactiondto "github.com/tourze/ganet-tracking-service/internal/usecase/dto/transaction"
)

// PartnerAPI is the slice of the GA-Net partner API the sync layer consumes.
type PartnerAPI interface {
	GetTransactions(ctx context.Context, since time.Time) ([]*domain.Transaction, error)
	GetCampaigns(ctx context.Context) ([]*domain.Campaign, error)
}

type SyncUsecase interface {
	PullTransactions(ctx context.Context, since time.Time) (*transactiondto.SyncResult, error)
	PullCampaigns(ctx context.Context) (int, error)
}

type DefaultSyncUsecase struct {
	Partner      PartnerAPI
	TxRepo       domain.TransactionRepository
	CampaignRepo domain.CampaignRepository
	Linker       TransactionTagUsecase
	Metrics      *metrics.TrackingMetrics
}

func NewDefaultSyncUsecase(
	partner PartnerAPI,
	txRepo domain.TransactionRepository,
	campaignRepo domain.CampaignRepository,
	linker TransactionTagUsecase,
	trackingMetrics *metrics.TrackingMetrics) *DefaultSyncUsecase {

	return &DefaultSyncUsecase{
		Partner:      partner,
		TxRepo:       txRepo,
		CampaignRepo: campaignRepo,
		Linker:       linker,
		Metrics:      trackingMetrics,
	}
}

// PullTransactions fetches partner-reported conversions, upserts them by
// order id and attempts attribution for every row carrying a tag. Upsert
// failures skip the row; linking failures are reported by the linker itself.
func (uc *DefaultSyncUsecase) PullTransactions(ctx context.Context, since time.Time) (*transactiondto.SyncResult, error) {
	transactions, err := uc.Partner.GetTransactions(ctx, since)
	if err != nil {
		uc.Metrics.IncError("pull_transactions")
		return nil, fmt.Errorf("fetch partner transactions: %w", err)
	}

	result := &transactiondto.SyncResult{Fetched: len(transactions)}

	upserted := make([]*domain.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if err := uc.TxRepo.UpsertByOrderID(transaction); err != nil {
			slog.Warn("transaction upsert failed",
				"order_id", transaction.OrderID, "error", err)
			continue
		}
		upserted = append(upserted, transaction)
	}
	result.Upserted = len(upserted)
	uc.Metrics.AddTransactionsSynced(len(upserted))

	linked, err := uc.Linker.BatchLinkTransactionsWithTags(upserted)
	if err != nil {
		return result, fmt.Errorf("batch link synced transactions: %w", err)
	}
	result.Linked = linked

	return result, nil
}

func (uc *DefaultSyncUsecase) PullCampaigns(ctx context.Context) (int, error) {
	campaigns, err := uc.Partner.GetCampaigns(ctx)
	if err != nil {
		uc.Metrics.IncError("pull_campaigns")
		return 0, fmt.Errorf("fetch partner campaigns: %w", err)
	}

	stored := 0
	for _, campaign := range campaigns {
		if err := uc.CampaignRepo.Upsert(campaign); err != nil {
			slog.Warn("campaign upsert failed", "campaign_id", campaign.ID, "error", err)
			continue
		}
		stored++
	}
	return stored, nil
}
