package mappers

import (
	"github.com/tourze/ganet-tracking-service/internal/domain"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:            model.ID,
		OrderID:       model.OrderID,
		WebsiteID:     model.WebsiteID,
		TotalPrice:    model.TotalPrice,
		Commission:    model.Commission,
		CampaignID:    model.CampaignID,
		CampaignName:  model.CampaignName,
		Status:        model.Status,
		Currency:      model.Currency,
		UserID:        model.UserID,
		Tag:           model.Tag,
		RedirectTagID: model.RedirectTagID,
		OrderTime:     model.OrderTime,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:            tx.ID,
		OrderID:       tx.OrderID,
		WebsiteID:     tx.WebsiteID,
		TotalPrice:    tx.TotalPrice,
		Commission:    tx.Commission,
		CampaignID:    tx.CampaignID,
		CampaignName:  tx.CampaignName,
		Status:        tx.Status,
		Currency:      tx.Currency,
		UserID:        tx.UserID,
		Tag:           tx.Tag,
		RedirectTagID: tx.RedirectTagID,
		OrderTime:     tx.OrderTime,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func ToDomainPublisher(model *models.PublisherModel) *domain.Publisher {
	return &domain.Publisher{
		ID:        model.ID,
		Name:      model.Name,
		SiteURL:   model.SiteURL,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToDomainCampaign(model *models.CampaignModel) *domain.Campaign {
	return &domain.Campaign{
		ID:        model.ID,
		Name:      model.Name,
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMCampaign(c *domain.Campaign) *models.CampaignModel {
	return &models.CampaignModel{
		ID:        c.ID,
		Name:      c.Name,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
