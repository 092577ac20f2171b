package validation

import (
	"testing"

	"talent-marketplace/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"user_type" validate:"required,user_type"`
	Role     string `json:"role" validate:"omitempty,band_role"`
	Kind     string `json:"kind" validate:"omitempty,listing_kind"`
	Family   string `json:"family" validate:"omitempty,plan_family"`
	Tier     string `json:"tier" validate:"omitempty,account_tier"`
	Media    string `json:"media" validate:"omitempty,media_kind"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestCustomTags(t *testing.T) {
	v := newValidator(t)

	ok := sample{Email: "a@b.co", UserType: "background", Role: "admin", Kind: "rent", Family: "bands", Tier: "platinum", Media: "video"}
	assert.NoError(t, v.Struct(ok))

	bad := sample{Email: "a@b.co", UserType: "agency", Role: "owner", Kind: "lend", Family: "gold", Tier: "diamond", Media: "audio"}
	err := v.Struct(bad)
	require.Error(t, err)

	appErr, _ := apperrors.As(FromBindError(err))
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Equal(t, map[string]string{
		"user_type": "is not a valid user type",
		"role":      "is not a valid band role",
		"kind":      "is not a valid listing kind",
		"family":    "is not a valid plan family",
		"tier":      "is not a valid account tier",
		"media":     "is not a valid media kind",
	}, appErr.Details)
}

func TestBuiltInMessages(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(sample{Email: "nope"})
	appErr, _ := apperrors.As(FromBindError(err))
	require.NotNil(t, appErr)
	assert.Equal(t, map[string]string{
		"email":     "must be a valid email address",
		"user_type": "is required",
	}, appErr.Details)
}

func TestFromBindError_NonValidationError(t *testing.T) {
	appErr, ok := apperrors.As(FromBindError(assert.AnError))
	require.True(t, ok)
	assert.Equal(t, "Invalid request body.", appErr.Message)
}
