package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/infra/postgres"
	"talent-marketplace/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Users  *postgres.UserStore
	Subs   *postgres.Subscriptions
	Bands  bands.Store
	Access *access.Gate
	Scores *scoring.Service
	AppURL string
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	user, err := h.Users.Get(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if user == nil {
		apperrors.Respond(c, apperrors.ErrUserNotFound)
		return
	}

	resp := MeResponse{User: BuildUserDTO(*user)}

	var scoreKind string
	if user.IsBackground() {
		p, err := h.Users.BackgroundProfile(ctx, user.ID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		resp.Profile = BuildBackgroundDTO(p)
		scoreKind = scoring.KindBackground
	} else {
		p, err := h.Users.TalentProfile(ctx, user.ID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		resp.Profile = BuildTalentDTO(p, h.AppURL)
		scoreKind = scoring.KindTalent

		if p != nil {
			m, b, err := h.Bands.MembershipOf(ctx, p.ID)
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			resp.Band = BuildBandDTO(m, b)
		}
	}

	subs, err := h.Subs.ListForUser(ctx, user.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	resp.Subscriptions = BuildSubscriptionDTOs(subs)

	if resp.Access, err = h.Access.Check(ctx, *user); err != nil {
		apperrors.Respond(c, err)
		return
	}

	// A scoring failure degrades the response instead of failing it.
	if resp.Profile != nil {
		if score, err := h.Scores.Score(ctx, scoreKind, resp.Profile.ID); err == nil {
			resp.Score = &score
		} else {
			logger.FromContext(ctx).Warn("score unavailable for /me", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyEmail consumes a verification token and redirects to the sign-in page.
func (h *Handler) VerifyEmail(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		apperrors.Respond(c, apperrors.Validation("Missing token"))
		return
	}
	ctx := c.Request.Context()

	var t users.VerificationToken
	err := h.DB.WithContext(ctx).
		Where("token = ? AND type = ?", token, users.TokenTypeVerification).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && t.Expired(time.Now())) {
		apperrors.Respond(c, apperrors.Validation("Invalid or expired token"))
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, strings.TrimRight(h.AppURL, "/")+"/signin?verified=1")
}
