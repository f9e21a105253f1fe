package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) Create(tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	model := mappers.ToGORMTransaction(tx)
	if err := r.DB.Create(model).Error; err != nil {
		return err
	}
	tx.CreatedAt = model.CreatedAt
	tx.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultTransactionRepository) Update(tx *domain.Transaction) error {
	return r.DB.Save(mappers.ToGORMTransaction(tx)).Error
}

// UpsertByOrderID inserts or refreshes the row keyed by the partner order
// id. The attribution columns (redirect_tag_id) are never touched by the
// conflict update; the stored row's identity is copied back into tx so a
// later Update hits the right record.
func (r *DefaultTransactionRepository) UpsertByOrderID(tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	model := mappers.ToGORMTransaction(tx)

	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"website_id", "total_price", "commission",
			"campaign_id", "campaign_name", "status",
			"currency", "tag", "order_time", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upsert transaction %s: %w", tx.OrderID, err)
	}

	var stored models.TransactionModel
	if err := r.DB.First(&stored, "order_id = ?", tx.OrderID).Error; err != nil {
		return fmt.Errorf("reload transaction %s: %w", tx.OrderID, err)
	}
	tx.ID = stored.ID
	tx.RedirectTagID = stored.RedirectTagID
	if tx.UserID == nil {
		tx.UserID = stored.UserID
	}
	tx.CreatedAt = stored.CreatedAt
	tx.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *DefaultTransactionRepository) FindByUserID(userID string) ([]*domain.Transaction, error) {
	var txModels []models.TransactionModel
	err := r.DB.
		Where("user_id = ?", userID).
		Order("order_time DESC").
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = mappers.ToDomainTransaction(&txModels[i])
	}
	return transactions, nil
}

func (r *DefaultTransactionRepository) FindByRedirectTagID(redirectTagID string) ([]*domain.Transaction, error) {
	var txModels []models.TransactionModel
	err := r.DB.
		Where("redirect_tag_id = ?", redirectTagID).
		Order("order_time DESC").
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = mappers.ToDomainTransaction(&txModels[i])
	}
	return transactions, nil
}

type DefaultPublisherRepository struct {
	DB *gorm.DB
}

func NewDefaultPublisherRepository(db *gorm.DB) *DefaultPublisherRepository {
	return &DefaultPublisherRepository{DB: db}
}

func (r *DefaultPublisherRepository) FindByID(id string) (*domain.Publisher, error) {
	var model models.PublisherModel
	err := r.DB.First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainPublisher(&model), nil
}

type DefaultCampaignRepository struct {
	DB *gorm.DB
}

func NewDefaultCampaignRepository(db *gorm.DB) *DefaultCampaignRepository {
	return &DefaultCampaignRepository{DB: db}
}

func (r *DefaultCampaignRepository) Upsert(c *domain.Campaign) error {
	model := mappers.ToGORMCampaign(c)
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "start_date", "end_date", "updated_at",
		}),
	}).Create(model).Error
}

func (r *DefaultCampaignRepository) FindByID(id string) (*domain.Campaign, error) {
	var model models.CampaignModel
	err := r.DB.First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainCampaign(&model), nil
}
