package access

import (
	"context"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/users"
)

// SubscriptionLookup returns the user's subscription row for a family, or nil
// when none exists.
type SubscriptionLookup interface {
	FindSubscription(ctx context.Context, userID uint, family string) (*billing.Subscription, error)
}

type Gate struct {
	subs SubscriptionLookup
}

func NewGate(subs SubscriptionLookup) *Gate {
	return &Gate{subs: subs}
}

func (g *Gate) Check(ctx context.Context, u users.User) (GateResult, error) {
	if !u.IsBackground() {
		return Check(u, nil), nil
	}
	sub, err := g.subs.FindSubscription(ctx, u.ID, plans.FamilyBackground)
	if err != nil {
		return GateResult{}, err
	}
	return Check(u, sub), nil
}

// Allows reports whether u may perform action.
func (g *Gate) Allows(ctx context.Context, u users.User, action Action) (bool, GateResult, error) {
	res, err := g.Check(ctx, u)
	if err != nil {
		return false, res, err
	}
	return res.CanAccessFeatures || !Restricts(action), res, nil
}
