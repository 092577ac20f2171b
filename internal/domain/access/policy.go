package access

import (
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/users"
)

const (
	msgNotGated       = "No subscription required for this account type."
	msgActive         = "Subscription active."
	msgSubscribeFirst = "Subscribe to a background plan to share, rent or sell items, upload media, create listings and respond to jobs."
	msgInactive       = "Your background subscription is not active. Renew it to regain access to all features."
)

// Check evaluates the gate for u given its background subscription row
// (nil when the user never subscribed). Only background users are gated.
func Check(u users.User, sub *billing.Subscription) GateResult {
	if !u.IsBackground() {
		return GateResult{
			HasSubscription:   sub.Live(),
			CanAccessFeatures: true,
			Message:           msgNotGated,
			RestrictedActions: []Action{},
		}
	}

	if sub.Live() {
		return GateResult{
			HasSubscription:   true,
			CanAccessFeatures: true,
			Message:           msgActive,
			RestrictedActions: []Action{},
		}
	}

	msg := msgSubscribeFirst
	if sub != nil {
		msg = msgInactive
	}
	return GateResult{
		HasSubscription:   false,
		CanAccessFeatures: false,
		Message:           msg,
		RestrictedActions: RestrictedActions(),
	}
}
