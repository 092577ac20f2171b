package postgres

import (
	"context"
	"time"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreInvalidator interface {
	Invalidate(ctx context.Context, kind string, id uint)
}

// Subscriptions stores per-family subscription rows and keeps profile tiers
// in step with them.
type Subscriptions struct {
	db     *gorm.DB
	scores ScoreInvalidator
}

func NewSubscriptions(db *gorm.DB, scores ScoreInvalidator) *Subscriptions {
	return &Subscriptions{db: db, scores: scores}
}

func (s *Subscriptions) FindSubscription(ctx context.Context, userID uint, family string) (*billing.Subscription, error) {
	var sub billing.Subscription
	err := s.db.WithContext(ctx).
		Preload("Plan").Preload("PendingPlan").
		Where("user_id = ? AND family = ?", userID, family).
		First(&sub).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Subscriptions) FindByStripeID(ctx context.Context, stripeSubscriptionID string) (*billing.Subscription, error) {
	var sub billing.Subscription
	err := s.db.WithContext(ctx).
		Preload("Plan").Preload("PendingPlan").
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&sub).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Subscriptions) HasLiveSubscription(ctx context.Context, userID uint, family string) (bool, error) {
	sub, err := s.FindSubscription(ctx, userID, family)
	if err != nil {
		return false, err
	}
	return sub.Live(), nil
}

func (s *Subscriptions) ListForUser(ctx context.Context, userID uint) ([]billing.Subscription, error) {
	var subs []billing.Subscription
	err := s.db.WithContext(ctx).
		Preload("Plan").Preload("PendingPlan").
		Where("user_id = ?", userID).
		Order("family").
		Find(&subs).Error
	return subs, err
}

// Upsert writes sub keyed on (user_id, family) and syncs the profile tier.
func (s *Subscriptions) Upsert(ctx context.Context, sub *billing.Subscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "family"}},
		UpdateAll: true,
	}).Omit("Plan", "PendingPlan").Create(sub).Error
	if err != nil {
		return err
	}
	return s.SyncTier(ctx, sub.UserID, sub.Family, effectiveTier(sub))
}

// Save updates an existing row and syncs the profile tier.
func (s *Subscriptions) Save(ctx context.Context, sub *billing.Subscription) error {
	if err := s.db.WithContext(ctx).Omit("Plan", "PendingPlan").Save(sub).Error; err != nil {
		return err
	}
	return s.SyncTier(ctx, sub.UserID, sub.Family, effectiveTier(sub))
}

// GrantManual activates family/tier without Stripe (restricted-country approvals).
func (s *Subscriptions) GrantManual(ctx context.Context, userID uint, family, tier string) error {
	now := time.Now()
	existing, err := s.FindSubscription(ctx, userID, family)
	if err != nil {
		return err
	}
	sub := existing
	if sub == nil {
		sub = &billing.Subscription{UserID: userID, Family: family}
	}
	sub.Tier = tier
	sub.Status = billing.StatusActive
	sub.IsActive = true
	sub.ManuallyGranted = true
	sub.CurrentPeriodStart = &now

	if sub.PlanID == nil {
		var plan plans.Plan
		err := s.db.WithContext(ctx).
			Where("family = ? AND tier = ?", family, tier).
			Order("price").
			First(&plan).Error
		if err == nil {
			sub.PlanID = &plan.ID
		} else if !notFound(err) {
			return err
		}
	}

	if existing == nil {
		return s.Upsert(ctx, sub)
	}
	return s.Save(ctx, sub)
}

// SyncTier writes tier to the profile owned by the family, when there is one.
func (s *Subscriptions) SyncTier(ctx context.Context, userID uint, family, tier string) error {
	var (
		model any
		kind  string
	)
	switch family {
	case plans.FamilyTalent:
		model, kind = &profiles.TalentProfile{}, scoring.KindTalent
	case plans.FamilyBackground:
		model, kind = &profiles.BackgroundProfile{}, scoring.KindBackground
	default:
		return nil
	}

	var ids []uint
	if err := s.db.WithContext(ctx).Model(model).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Update("account_tier", tier).Error; err != nil {
		return err
	}
	if s.scores != nil {
		for _, id := range ids {
			s.scores.Invalidate(ctx, kind, id)
		}
	}
	return nil
}

func effectiveTier(sub *billing.Subscription) string {
	if !sub.Live() {
		return plans.TierFree
	}
	if sub.Tier != "" && sub.Tier != plans.TierFree {
		return sub.Tier
	}
	return plans.PlanTier(sub.Plan)
}
