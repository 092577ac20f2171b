package restrictions

import (
	"context"
	"net/http"
	"strings"
	"time"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
)

// Attempt describes a refused checkout to record.
type Attempt struct {
	UserID uint
	PlanID *uint
	Resolution
	At time.Time
}

type Store interface {
	// RecordAttempt creates the user's row or applies
	// RestrictedCountryUser.RecordAttempt to the existing one.
	RecordAttempt(ctx context.Context, a Attempt) (*RestrictedCountryUser, error)
	Get(ctx context.Context, id uint) (*RestrictedCountryUser, error)
	List(ctx context.Context, status string) ([]RestrictedCountryUser, error)
	Save(ctx context.Context, r *RestrictedCountryUser) error
}

// Granter gives a user a plan tier without Stripe.
type Granter interface {
	GrantManual(ctx context.Context, userID uint, family, tier string) error
}

type Gate struct {
	store      Store
	resolver   *Resolver
	restricted List
	granter    Granter
	now        func() time.Time
}

func NewGate(store Store, resolver *Resolver, restricted List, granter Granter) *Gate {
	return &Gate{store: store, resolver: resolver, restricted: restricted, granter: granter, now: time.Now}
}

func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

var (
	errCountryRestricted = apperrors.New(apperrors.CodeCountryRestricted,
		"Online payments are not available in your country. Your request was sent to our team for manual approval.",
		http.StatusForbidden)
	errAlreadyReviewed = apperrors.New(apperrors.CodeConflict,
		"This request has already been reviewed.", http.StatusConflict)
)

// CheckCheckout refuses checkout for users resolved to a restricted country
// and records the attempt for manual review.
func (g *Gate) CheckCheckout(ctx context.Context, userID uint, planID *uint, req Request) error {
	res := g.resolver.Resolve(req)
	if !g.restricted.Contains(res.Country) {
		return nil
	}

	row, err := g.store.RecordAttempt(ctx, Attempt{
		UserID:     userID,
		PlanID:     planID,
		Resolution: res,
		At:         g.now(),
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("checkout blocked by country restriction",
		zap.Uint("user_id", userID),
		zap.String("country", res.Country),
		zap.String("source", res.Source),
		zap.Int("attempts", row.Attempts))

	return errCountryRestricted.WithDetails(map[string]any{
		"country":                res.Country,
		"restricted_user_id":     row.ID,
		"manual_approval_status": row.Status,
	})
}

// IsRestricted exposes the list check for callers that only need a yes/no.
func (g *Gate) IsRestricted(country string) bool {
	return g.restricted.Contains(country)
}

func (g *Gate) List(ctx context.Context, status string) ([]RestrictedCountryUser, error) {
	return g.store.List(ctx, status)
}

// Approve grants family/tier manually and marks the request approved.
func (g *Gate) Approve(ctx context.Context, id, reviewerID uint, family, tier, note string) (*RestrictedCountryUser, error) {
	family = strings.ToLower(strings.TrimSpace(family))
	tier = strings.ToLower(strings.TrimSpace(tier))
	if !plans.IsValidTier(family, tier) || tier == plans.TierFree {
		return nil, apperrors.Validation("Choose a paid tier valid for the selected plan family.")
	}

	row, err := g.pending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := g.granter.GrantManual(ctx, row.UserID, family, tier); err != nil {
		return nil, err
	}

	g.review(row, StatusApproved, reviewerID, note)
	row.GrantedFamily = family
	row.GrantedTier = tier
	if err := g.store.Save(ctx, row); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("restricted user approved",
		zap.Uint("user_id", row.UserID),
		zap.String("family", family),
		zap.String("tier", tier))
	return row, nil
}

func (g *Gate) Reject(ctx context.Context, id, reviewerID uint, note string) (*RestrictedCountryUser, error) {
	row, err := g.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	g.review(row, StatusRejected, reviewerID, note)
	if err := g.store.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (g *Gate) pending(ctx context.Context, id uint) (*RestrictedCountryUser, error) {
	row, err := g.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperrors.NotFound("Restricted user")
	}
	if row.Status != StatusPending {
		return nil, errAlreadyReviewed
	}
	return row, nil
}

func (g *Gate) review(row *RestrictedCountryUser, status string, reviewerID uint, note string) {
	now := g.now()
	row.Status = status
	row.ReviewedByID = &reviewerID
	row.ReviewedAt = &now
	row.ReviewNote = strings.TrimSpace(note)
}
