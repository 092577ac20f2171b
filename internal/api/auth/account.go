package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func newToken(tx *gorm.DB, userID uint, kind string, ttl time.Duration) (users.VerificationToken, error) {
	value, err := generateToken()
	if err != nil {
		return users.VerificationToken{}, err
	}
	t := users.VerificationToken{
		UserID:    userID,
		Token:     value,
		Type:      kind,
		ExpiresAt: time.Now().Add(ttl),
	}
	return t, tx.Omit("User").Create(&t).Error
}

// createUserWithProfile inserts the user and the empty profile matching its
// type. Talent profiles get their public slug right away.
func createUserWithProfile(tx *gorm.DB, user *users.User) error {
	if err := tx.Create(user).Error; err != nil {
		return err
	}

	if user.IsBackground() {
		return tx.Create(&profiles.BackgroundProfile{
			UserID:      user.ID,
			CompanyName: strings.TrimSpace(user.Name + " " + user.Lastname),
		}).Error
	}

	p := profiles.TalentProfile{
		UserID:      user.ID,
		DisplayName: strings.TrimSpace(user.Name + " " + user.Lastname),
	}
	if err := tx.Create(&p).Error; err != nil {
		return err
	}
	_, err := profiles.EnsureTalentSlug(tx, &p)
	return err
}

// issueToken signs the app JWT read by AuthMiddleware.
func issueToken(user users.User, secret string, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   user.ID,
		"email":     user.Email,
		"role":      user.Role,
		"user_type": user.UserType,
		"exp":       now.Add(ttl).Unix(),
	})
	return t.SignedString([]byte(secret))
}
