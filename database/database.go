package database

import (
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/listings"
	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/restrictions"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(dsn string) {
	log := logger.Get()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	DB = db

	// gen_random_uuid() for media ids
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension", zap.Error(err))
	}

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},
		&users.VerificationToken{},

		// billing
		&plans.Plan{},
		&billing.Subscription{},
		&billing.Payment{},

		// profiles
		&profiles.TalentProfile{},
		&profiles.VisualWorker{},
		&profiles.ExpressiveWorker{},
		&profiles.HybridWorker{},
		&profiles.BackgroundProfile{},
		&media.Item{},
		&listings.Listing{},

		// bands
		&bands.Band{},
		&bands.Membership{},
		&bands.Invitation{},

		// dashboard
		&restrictions.RestrictedCountryUser{},
		&mailing.BulkEmail{},
		&mailing.Recipient{},
	); err != nil {
		log.Fatal("AutoMigrate error", zap.Error(err))
	}

	log.Info("Connected and migrated successfully")
}
