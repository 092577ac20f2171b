package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"time"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const stateCookie = "oauth_state"

func GoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 300, "/", "", h.Cfg.SecureCookies, true)

	c.Redirect(http.StatusFound, h.Google.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		apperrors.Respond(c, apperrors.Validation("missing code/state"))
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		apperrors.Respond(c, apperrors.Validation("invalid oauth state"))
		return
	}

	ctx := c.Request.Context()
	tok, err := h.Google.Exchange(ctx, code)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.CodeUnauthorized, "failed to exchange code", http.StatusUnauthorized))
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		apperrors.Respond(c, apperrors.New(apperrors.CodeUnauthorized, "missing id_token", http.StatusUnauthorized))
		return
	}

	claims, err := h.verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.CodeUnauthorized, err.Error(), http.StatusUnauthorized))
		return
	}

	user, err := h.findOrCreateGoogleUser(c, claims)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	tokenString, err := issueToken(user, h.Cfg.JWTSecret, h.Cfg.TokenTTL, time.Now())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if h.Cfg.GoogleFrontendRedirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString, "user_type": user.UserType})
		return
	}
	c.Redirect(http.StatusFound, h.Cfg.GoogleFrontendRedirect+"?token="+url.QueryEscape(tokenString))
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

func (h *Handler) verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: h.Cfg.GoogleClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

// findOrCreateGoogleUser matches on google_sub, then on email (linking the
// account), and otherwise creates a verified talent user with an empty profile.
func (h *Handler) findOrCreateGoogleUser(c *gin.Context, gc *googleIDClaims) (users.User, error) {
	db := h.DB.WithContext(c.Request.Context())
	var user users.User

	if err := db.Where("google_sub = ?", gc.Sub).First(&user).Error; err == nil {
		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return users.User{}, err
	}

	email := normalizeEmail(gc.Email)
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.GoogleSub == nil {
			sub := gc.Sub
			user.GoogleSub = &sub
			user.IsVerified = true
			if err := db.Save(&user).Error; err != nil {
				return users.User{}, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return users.User{}, err
	}

	sub := gc.Sub
	user = users.User{
		Name:         firstNonEmpty(gc.GivenName, gc.Name),
		Lastname:     gc.FamilyName,
		Email:        email,
		AuthProvider: users.ProviderGoogle,
		GoogleSub:    &sub,
		Role:         users.RoleUser,
		UserType:     users.TypeTalent,
		IsVerified:   true,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return createUserWithProfile(tx, &user)
	}); err != nil {
		return users.User{}, err
	}

	logger.FromContext(c.Request.Context()).Info("google user created", zap.Uint("user_id", user.ID))
	return user, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
