package postgres

import (
	"context"

	"talent-marketplace/internal/domain/restrictions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestrictionStore struct {
	db *gorm.DB
}

func NewRestrictionStore(db *gorm.DB) *RestrictionStore {
	return &RestrictionStore{db: db}
}

// RecordAttempt locks the user's row and applies the attempt to it, creating
// the row on the first refusal. A concurrent first insert loses to the unique
// index on user_id and falls back to updating the winner's row.
func (s *RestrictionStore) RecordAttempt(ctx context.Context, a restrictions.Attempt) (*restrictions.RestrictedCountryUser, error) {
	var row restrictions.RestrictedCountryUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := lockByUser(tx, a.UserID, &row)
		if err != nil {
			return err
		}
		if !found {
			row = restrictions.NewRestrictedCountryUser(a)
			res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				return nil
			}
			row = restrictions.RestrictedCountryUser{}
			if _, err := lockByUser(tx, a.UserID, &row); err != nil {
				return err
			}
		}
		row.RecordAttempt(a)
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func lockByUser(tx *gorm.DB, userID uint, row *restrictions.RestrictedCountryUser) (bool, error) {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(row).Error
	if notFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *RestrictionStore) Get(ctx context.Context, id uint) (*restrictions.RestrictedCountryUser, error) {
	var row restrictions.RestrictedCountryUser
	err := s.db.WithContext(ctx).First(&row, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *RestrictionStore) List(ctx context.Context, status string) ([]restrictions.RestrictedCountryUser, error) {
	q := s.db.WithContext(ctx).Order("last_attempt_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []restrictions.RestrictedCountryUser
	return rows, q.Find(&rows).Error
}

func (s *RestrictionStore) Save(ctx context.Context, row *restrictions.RestrictedCountryUser) error {
	return s.db.WithContext(ctx).Save(row).Error
}

func (s *RestrictionStore) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&restrictions.RestrictedCountryUser{}).
		Where("status = ?", restrictions.StatusPending).
		Count(&n).Error
	return n, err
}
