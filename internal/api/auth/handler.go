package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/logger"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Mailer queues an email for best-effort delivery.
type Mailer interface {
	Send(msg mailing.Message)
}

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	AppURL    string
	// APIURL is the public base of this server; verification links hit it directly.
	APIURL         string
	GoogleClientID string

	// GoogleFrontendRedirect receives ?token= after Google sign-in; empty returns JSON.
	GoogleFrontendRedirect string
	SecureCookies          bool
}

type Handler struct {
	DB     *gorm.DB
	Mail   Mailer
	Google *oauth2.Config
	Cfg    Config
}

const (
	verificationTTL  = 24 * time.Hour
	passwordResetTTL = time.Hour
)

var (
	errWeakPassword       = apperrors.Validation("Password must be at least 8 characters long and contain both letters and numbers")
	errInvalidCredentials = apperrors.New(apperrors.CodeUnauthorized, "Invalid credentials", http.StatusUnauthorized)
	errEmailTaken         = apperrors.New(apperrors.CodeConflict, "Email may already exist", http.StatusConflict)
	errInvalidToken       = apperrors.Validation("Invalid or expired token")
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Lastname string `json:"lastname" binding:"max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required,user_type"`
}

func (h *Handler) Register(c *gin.Context) {
	var input registerRequest
	if err := validation.Bind(c, &input); err != nil {
		apperrors.Respond(c, err)
		return
	}
	if !isPasswordStrong(input.Password) {
		apperrors.Respond(c, errWeakPassword)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	password := string(hashed)

	user := users.User{
		Name:         strings.TrimSpace(input.Name),
		Lastname:     strings.TrimSpace(input.Lastname),
		Email:        normalizeEmail(input.Email),
		Password:     &password,
		AuthProvider: users.ProviderLocal,
		Role:         users.RoleUser,
		UserType:     input.UserType,
	}

	var token users.VerificationToken
	err = h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := createUserWithProfile(tx, &user); err != nil {
			return err
		}
		t, err := newToken(tx, user.ID, users.TokenTypeVerification, verificationTTL)
		token = t
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		apperrors.Respond(c, errEmailTaken)
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.Mail.Send(verificationEmail(h.Cfg.APIURL, user, token.Token))
	logger.FromContext(c.Request.Context()).Info("user registered",
		zap.Uint("user_id", user.ID), zap.String("user_type", user.UserType))

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully. Please check your email to verify your account."})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var input loginRequest
	if err := validation.Bind(c, &input); err != nil {
		apperrors.Respond(c, err)
		return
	}

	var user users.User
	if err := h.DB.WithContext(c.Request.Context()).
		Where("email = ?", normalizeEmail(input.Email)).
		First(&user).Error; err != nil {
		apperrors.Respond(c, errInvalidCredentials)
		return
	}

	if user.Password == nil || *user.Password == "" {
		apperrors.Respond(c, apperrors.New(apperrors.CodeUnauthorized,
			"This account uses Google sign-in", http.StatusUnauthorized))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		apperrors.Respond(c, errInvalidCredentials)
		return
	}
	if !user.IsVerified {
		apperrors.Respond(c, apperrors.Forbidden("Please verify your email before logging in"))
		return
	}

	tokenString, err := issueToken(user, h.Cfg.JWTSecret, h.Cfg.TokenTTL, time.Now())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "user_type": user.UserType})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var body emailRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	var user users.User
	if err := h.DB.WithContext(ctx).Where("email = ?", normalizeEmail(body.Email)).First(&user).Error; err != nil {
		apperrors.Respond(c, apperrors.ErrUserNotFound)
		return
	}
	if user.IsVerified {
		apperrors.Respond(c, apperrors.Validation("User already verified"))
		return
	}

	var token users.VerificationToken
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND type = ?", user.ID, users.TokenTypeVerification).
			Delete(&users.VerificationToken{}).Error; err != nil {
			return err
		}
		t, err := newToken(tx, user.ID, users.TokenTypeVerification, verificationTTL)
		token = t
		return err
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.Mail.Send(verificationEmail(h.Cfg.APIURL, user, token.Token))
	c.JSON(http.StatusOK, gin.H{"message": "Verification email resent"})
}

const resetAck = "If your email exists, you'll receive a reset link."

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var body emailRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	var user users.User
	if err := h.DB.WithContext(ctx).Where("email = ?", normalizeEmail(body.Email)).First(&user).Error; err != nil {
		// Don't expose whether the email exists
		c.JSON(http.StatusOK, gin.H{"message": resetAck})
		return
	}

	var token users.VerificationToken
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND type = ?", user.ID, users.TokenTypePasswordReset).
			Delete(&users.VerificationToken{}).Error; err != nil {
			return err
		}
		t, err := newToken(tx, user.ID, users.TokenTypePasswordReset, passwordResetTTL)
		token = t
		return err
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.Mail.Send(passwordResetEmail(h.Cfg.AppURL, user, token.Token))
	c.JSON(http.StatusOK, gin.H{"message": resetAck})
}

type resetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var body resetRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	if !isPasswordStrong(body.NewPassword) {
		apperrors.Respond(c, errWeakPassword)
		return
	}
	ctx := c.Request.Context()

	var reset users.VerificationToken
	err := h.DB.WithContext(ctx).
		Where("token = ? AND type = ?", body.Token, users.TokenTypePasswordReset).
		First(&reset).Error
	if err != nil || reset.Expired(time.Now()) {
		apperrors.Respond(c, errInvalidToken)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Delete(&reset).Error
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var body changePasswordRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	if !isPasswordStrong(body.NewPassword) {
		apperrors.Respond(c, errWeakPassword)
		return
	}
	ctx := c.Request.Context()

	var user users.User
	if err := h.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		apperrors.Respond(c, apperrors.ErrUserNotFound)
		return
	}
	if user.Password == nil || *user.Password == "" {
		apperrors.Respond(c, apperrors.Validation(
			"This account does not have a password. Sign in with Google or set a password first."))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(body.OldPassword)); err != nil {
		apperrors.Respond(c, apperrors.New(apperrors.CodeUnauthorized, "Old password is incorrect", http.StatusUnauthorized))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.DB.WithContext(ctx).Model(&user).Update("password", string(hashed)).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
