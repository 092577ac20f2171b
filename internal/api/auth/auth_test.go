package auth

import (
	"testing"
	"time"

	"talent-marketplace/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, isPasswordStrong("secret123"))
	assert.False(t, isPasswordStrong("short1"))
	assert.False(t, isPasswordStrong("onlyletters"))
	assert.False(t, isPasswordStrong("12345678"))
}

func TestIssueToken_CarriesUserType(t *testing.T) {
	now := time.Now()
	u := users.User{ID: 7, Email: "a@b.co", Role: users.RoleUser, UserType: users.TypeBackground}

	signed, err := issueToken(u, "test-secret", time.Hour, now)
	require.NoError(t, err)

	tok, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)

	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, users.TypeBackground, claims["user_type"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])
}

func TestGenerateToken(t *testing.T) {
	a, err := generateToken()
	require.NoError(t, err)
	b, err := generateToken()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestEmails(t *testing.T) {
	u := users.User{Name: "<Lina>", Email: "lina@example.com"}

	msg := verificationEmail("https://app.example.com/", u, "abc")
	assert.Equal(t, "lina@example.com", msg.To)
	assert.Contains(t, msg.HTML, "https://app.example.com/verify?token=abc")
	assert.Contains(t, msg.HTML, "&lt;Lina&gt;")

	msg = passwordResetEmail("https://app.example.com", u, "x y")
	assert.Contains(t, msg.HTML, "/reset-password?token=x+y")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "lina@example.com", normalizeEmail("  Lina@Example.COM "))
}
