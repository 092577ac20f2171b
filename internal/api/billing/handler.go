package billing

import (
	"context"
	"errors"
	"net/http"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/restrictions"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/infra/postgres"

	"gorm.io/gorm"
)

type Handler struct {
	DB        *gorm.DB
	Users     *postgres.UserStore
	Subs      *postgres.Subscriptions
	Countries *restrictions.Gate
	Access    *access.Gate
	AppURL    string
	AppEnv    string
}

var (
	errUnknownPrice = apperrors.Validation("Unknown plan/price_id")
	errWrongFamily  = apperrors.Forbidden("This plan is not available for your account type.")
	errNotVerified  = apperrors.Forbidden("Please verify your email first")
	errNoCustomer   = apperrors.New(apperrors.CodeConflict, "No Stripe customer yet (subscribe first)", http.StatusConflict)
)

func (h *Handler) loadUser(ctx context.Context, id uint) (*users.User, error) {
	u, err := h.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (h *Handler) planByPrice(ctx context.Context, priceID string) (*plans.Plan, error) {
	var plan plans.Plan
	err := h.DB.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUnknownPrice
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FamilyAllowed tells whether a user of the given type may subscribe to family.
// Talent users buy talent and bands plans; background users buy background plans.
func FamilyAllowed(userType, family string) bool {
	switch family {
	case plans.FamilyTalent, plans.FamilyBands:
		return userType == users.TypeTalent
	case plans.FamilyBackground:
		return userType == users.TypeBackground
	}
	return false
}

func (h *Handler) returnURL(path string) string {
	base := h.AppURL
	if base == "" {
		base = "http://localhost:5173"
	}
	return base + path
}
