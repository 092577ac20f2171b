package postgres

import (
	"context"

	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/users"

	"gorm.io/gorm"
)

// UserStore looks up users and the single profile each one owns.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) TalentProfile(ctx context.Context, userID uint) (*profiles.TalentProfile, error) {
	var p profiles.TalentProfile
	err := s.db.WithContext(ctx).
		Preload("VisualWorker").Preload("ExpressiveWorker").Preload("HybridWorker").
		Where("user_id = ?", userID).
		First(&p).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *UserStore) BackgroundProfile(ctx context.Context, userID uint) (*profiles.BackgroundProfile, error) {
	var p profiles.BackgroundProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileCountry returns the country on the user's own profile, "" when unset.
func (s *UserStore) ProfileCountry(ctx context.Context, u *users.User) (string, error) {
	if u.IsBackground() {
		p, err := s.BackgroundProfile(ctx, u.ID)
		if err != nil || p == nil {
			return "", err
		}
		return p.Country, nil
	}
	p, err := s.TalentProfile(ctx, u.ID)
	if err != nil || p == nil {
		return "", err
	}
	return p.Country, nil
}
