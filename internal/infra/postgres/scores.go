package postgres

import (
	"context"

	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/listings"
	"talent-marketplace/internal/domain/profiles"

	"gorm.io/gorm"
)

// ScoreLoader loads profiles with every relation the score tables read.
type ScoreLoader struct {
	db *gorm.DB
}

func NewScoreLoader(db *gorm.DB) *ScoreLoader {
	return &ScoreLoader{db: db}
}

func (l *ScoreLoader) LoadTalent(ctx context.Context, id uint) (*profiles.TalentProfile, error) {
	var p profiles.TalentProfile
	err := l.db.WithContext(ctx).
		Preload("VisualWorker").Preload("ExpressiveWorker").Preload("HybridWorker").
		Preload("Media").
		First(&p, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *ScoreLoader) LoadBackground(ctx context.Context, id uint) (*profiles.BackgroundProfile, error) {
	var p profiles.BackgroundProfile
	err := l.db.WithContext(ctx).Preload("Media").First(&p, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var n int64
	if err := l.db.WithContext(ctx).Model(&listings.Listing{}).
		Where("background_profile_id = ?", p.ID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	p.ListingCount = int(n)
	return &p, nil
}

func (l *ScoreLoader) LoadBand(ctx context.Context, id uint) (*bands.Band, error) {
	return NewBandStore(l.db).GetBand(ctx, id)
}
