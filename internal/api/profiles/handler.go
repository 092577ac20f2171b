package profiles

import (
	"context"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/infra/postgres"

	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Users  *postgres.UserStore
	Loader *postgres.ScoreLoader
	Scores *scoring.Service
	AppURL string
}

// refreshTalent recomputes the completion flag after an edit and drops the cached score.
func (h *Handler) refreshTalent(ctx context.Context, id uint) error {
	h.Scores.Invalidate(ctx, scoring.KindTalent, id)
	p, err := h.Loader.LoadTalent(ctx, id)
	if err != nil || p == nil {
		return err
	}
	completed := scoring.TalentCompleted(p)
	if completed == p.IsCompleted {
		return nil
	}
	return h.DB.WithContext(ctx).Model(&profiles.TalentProfile{}).
		Where("id = ?", id).Update("is_completed", completed).Error
}

func (h *Handler) refreshBackground(ctx context.Context, id uint) error {
	h.Scores.Invalidate(ctx, scoring.KindBackground, id)
	p, err := h.Loader.LoadBackground(ctx, id)
	if err != nil || p == nil {
		return err
	}
	completed := scoring.BackgroundCompleted(p)
	if completed == p.IsCompleted {
		return nil
	}
	return h.DB.WithContext(ctx).Model(&profiles.BackgroundProfile{}).
		Where("id = ?", id).Update("is_completed", completed).Error
}

func (h *Handler) myTalent(ctx context.Context, userID uint) (*profiles.TalentProfile, error) {
	p, err := h.Users.TalentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}

func (h *Handler) myBackground(ctx context.Context, userID uint) (*profiles.BackgroundProfile, error) {
	p, err := h.Users.BackgroundProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}
