package stripe

import (
	"testing"

	"talent-marketplace/internal/domain/billing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripeStatus(t *testing.T) {
	cases := map[string]string{
		"":                   billing.StatusIncomplete,
		"active":             billing.StatusActive,
		" trialing ":         billing.StatusTrialing,
		"unpaid":             billing.StatusPastDue,
		"past_due":           billing.StatusPastDue,
		"incomplete_expired": billing.StatusCanceled,
		"canceled":           billing.StatusCanceled,
		"paused":             "paused",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStripeStatus(in), "input %q", in)
	}
}

func TestGrantsAccess(t *testing.T) {
	assert.True(t, GrantsAccess("active"))
	assert.True(t, GrantsAccess("trialing"))
	assert.False(t, GrantsAccess("past_due"))
	assert.False(t, GrantsAccess("canceled"))
}
