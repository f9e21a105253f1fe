package mappers

import (
	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/models"
)

func ToDomainRedirectTag(model *models.RedirectTagModel) *domain.RedirectTag {
	return &domain.RedirectTag{
		ID:          model.ID,
		Tag:         model.Tag,
		PublisherID: model.PublisherID,
		CampaignID:  model.CampaignID,
		UserID:      model.UserID,
		ClickTime:   model.ClickTime,
		ExpireTime:  model.ExpireTime,
		ClientIP:    model.ClientIP,
		UserAgent:   model.UserAgent,
		Referrer:    model.Referrer,
		Context:     domain.ContextData(model.ContextData),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMRedirectTag(tag *domain.RedirectTag) *models.RedirectTagModel {
	return &models.RedirectTagModel{
		ID:          tag.ID,
		Tag:         tag.Tag,
		PublisherID: tag.PublisherID,
		CampaignID:  tag.CampaignID,
		UserID:      tag.UserID,
		ClickTime:   tag.ClickTime,
		ExpireTime:  tag.ExpireTime,
		ClientIP:    tag.ClientIP,
		UserAgent:   tag.UserAgent,
		Referrer:    tag.Referrer,
		ContextData: models.JSONMap(tag.Context),
		CreatedAt:   tag.CreatedAt,
		UpdatedAt:   tag.UpdatedAt,
	}
}
