package postgres

import (
	"log"

	"github.com/tourze/ganet-tracking-service/internal/config"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.TrackingConfig) *gorm.DB {
	dsn := cfg.TrackingDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.PublisherModel{}, &models.CampaignModel{}, &models.RedirectTagModel{}, &models.TransactionModel{})

	return db
}
