package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRedirectTagRepository struct {
	DB *gorm.DB
}

func NewDefaultRedirectTagRepository(db *gorm.DB) *DefaultRedirectTagRepository {
	return &DefaultRedirectTagRepository{DB: db}
}

func (r *DefaultRedirectTagRepository) Create(tag *domain.RedirectTag) error {
	model := mappers.ToGORMRedirectTag(tag)
	if err := r.DB.Create(model).Error; err != nil {
		return err
	}
	tag.CreatedAt = model.CreatedAt
	tag.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultRedirectTagRepository) Update(tag *domain.RedirectTag) error {
	return r.DB.Save(mappers.ToGORMRedirectTag(tag)).Error
}

func (r *DefaultRedirectTagRepository) FindByTag(tagValue string) (*domain.RedirectTag, error) {
	var model models.RedirectTagModel
	err := r.DB.First(&model, "tag = ?", tagValue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainRedirectTag(&model), nil
}

func (r *DefaultRedirectTagRepository) FindActiveByTag(tagValue string, now time.Time) (*domain.RedirectTag, error) {
	var model models.RedirectTagModel
	err := r.DB.
		Where("tag = ?", tagValue).
		Where("expire_time IS NULL OR expire_time > ?", now).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainRedirectTag(&model), nil
}

func (r *DefaultRedirectTagRepository) FindByUserID(userID string, limit int) ([]*domain.RedirectTag, error) {
	return r.findAll(r.DB.Where("user_id = ?", userID), limit)
}

func (r *DefaultRedirectTagRepository) FindByPublisherID(publisherID string, limit int) ([]*domain.RedirectTag, error) {
	return r.findAll(r.DB.Where("publisher_id = ?", publisherID), limit)
}

func (r *DefaultRedirectTagRepository) findAll(query *gorm.DB, limit int) ([]*domain.RedirectTag, error) {
	var tagModels []models.RedirectTagModel
	query = query.Order("click_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&tagModels).Error; err != nil {
		return nil, err
	}

	tags := make([]*domain.RedirectTag, len(tagModels))
	for i := range tagModels {
		tags[i] = mappers.ToDomainRedirectTag(&tagModels[i])
	}
	return tags, nil
}

func (r *DefaultRedirectTagRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result := r.DB.
		Where("expire_time IS NOT NULL AND expire_time < ?", cutoff).
		Delete(&models.RedirectTagModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *DefaultRedirectTagRepository) ClickStatsByDate(publisherID string, start, end time.Time) ([]domain.ClickStat, error) {
	type dateAgg struct {
		ClickDate  time.Time
		ClickCount int64
	}
	var rows []dateAgg

	err := r.DB.Model(&models.RedirectTagModel{}).
		Select("DATE(click_time) AS click_date, COUNT(*) AS click_count").
		Where("publisher_id = ?", publisherID).
		Where("click_time BETWEEN ? AND ?", start, end).
		Group("DATE(click_time)").
		Order("click_date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("click stats by date: %w", err)
	}

	stats := make([]domain.ClickStat, len(rows))
	for i, row := range rows {
		stats[i] = domain.ClickStat{
			ClickDate:  row.ClickDate.Format("2006-01-02"),
			ClickCount: row.ClickCount,
		}
	}
	return stats, nil
}

func (r *DefaultRedirectTagRepository) ClickStatsByCampaign(publisherID string, start, end time.Time) ([]domain.CampaignClickStat, error) {
	var rows []domain.CampaignClickStat

	err := r.DB.Model(&models.RedirectTagModel{}).
		Select("redirect_tag_models.campaign_id AS campaign_id, campaign_models.name AS campaign_name, COUNT(*) AS click_count").
		Joins("JOIN campaign_models ON campaign_models.id = redirect_tag_models.campaign_id").
		Where("redirect_tag_models.publisher_id = ?", publisherID).
		Where("redirect_tag_models.click_time BETWEEN ? AND ?", start, end).
		Group("redirect_tag_models.campaign_id, campaign_models.name").
		Order("click_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("click stats by campaign: %w", err)
	}

	return rows, nil
}
