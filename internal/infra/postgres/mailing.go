package postgres

import (
	"context"
	"time"

	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/users"

	"gorm.io/gorm"
)

type MailingStore struct {
	db *gorm.DB
}

func NewMailingStore(db *gorm.DB) *MailingStore {
	return &MailingStore{db: db}
}

// Audience selects users by type, verification and profile country.
func (s *MailingStore) Audience(ctx context.Context, a mailing.Audience) ([]mailing.Contact, error) {
	q := s.db.WithContext(ctx).Model(&users.User{}).Select("users.id AS user_id, users.email AS email")

	if a.UserType != "" {
		q = q.Where("users.user_type = ?", a.UserType)
	}
	if a.VerifiedOnly {
		q = q.Where("users.is_verified = ?", true)
	}
	if a.Country != "" {
		talent := s.db.Model(&profiles.TalentProfile{}).Select("user_id").Where("LOWER(country) = LOWER(?)", a.Country)
		background := s.db.Model(&profiles.BackgroundProfile{}).Select("user_id").Where("LOWER(country) = LOWER(?)", a.Country)
		q = q.Where("users.id IN (?) OR users.id IN (?)", talent, background)
	}

	var out []mailing.Contact
	return out, q.Order("users.id").Scan(&out).Error
}

func (s *MailingStore) CreateBulk(ctx context.Context, b *mailing.BulkEmail) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *MailingStore) MarkRecipient(ctx context.Context, recipientID uint, status, errMsg string, at time.Time) error {
	updates := map[string]any{"status": status, "error": errMsg}
	if status == mailing.RecipientSent {
		updates["sent_at"] = at
	}
	return s.db.WithContext(ctx).Model(&mailing.Recipient{}).
		Where("id = ?", recipientID).
		Updates(updates).Error
}

func (s *MailingStore) GetBulk(ctx context.Context, id uint) (*mailing.BulkEmail, error) {
	var b mailing.BulkEmail
	err := s.db.WithContext(ctx).Preload("Recipients", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&b, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
