package stripe

import (
	"strings"

	"talent-marketplace/internal/domain/billing"
)

// NormalizeStripeStatus folds Stripe's subscription statuses into the set
// stored on billing.Subscription.
func NormalizeStripeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return billing.StatusIncomplete
	case "active":
		return billing.StatusActive
	case "trialing":
		return billing.StatusTrialing
	case "past_due", "unpaid":
		return billing.StatusPastDue
	case "canceled", "incomplete_expired":
		return billing.StatusCanceled
	case "incomplete":
		return billing.StatusIncomplete
	default:
		return strings.TrimSpace(s)
	}
}

// GrantsAccess reports whether a raw Stripe status should mark the row active.
func GrantsAccess(s string) bool {
	return billing.IsActiveStatus(NormalizeStripeStatus(s))
}
