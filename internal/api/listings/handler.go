package listings

import (
	"errors"
	"net/http"
	"strings"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/listings"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/infra/postgres"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Users  *postgres.UserStore
	Access *access.Gate
	Scores *scoring.Service
}

type createRequest struct {
	Kind        string  `json:"kind" binding:"required,listing_kind"`
	Title       string  `json:"title" binding:"required,max=160"`
	Description string  `json:"description" binding:"max=5000"`
	Price       float64 `json:"price" binding:"min=0"`
	Currency    string  `json:"currency" binding:"omitempty,len=3"`
	Country     string  `json:"country" binding:"max=80"`
}

// ActionFor maps a listing kind to the gated action it needs.
func ActionFor(kind string) access.Action {
	if kind == listings.KindShare {
		return access.ActionShareItems
	}
	return access.ActionRentOrSell
}

func (h *Handler) myProfile(c *gin.Context) (*profiles.BackgroundProfile, error) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return nil, err
	}
	p, err := h.Users.BackgroundProfile(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.Forbidden("Only background profiles can manage listings.")
	}
	return p, nil
}

// Create adds a listing. RequireFeature has already loaded the user.
func (h *Handler) Create(c *gin.Context) {
	var body createRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	if u := reqctx.User(c); u != nil {
		ok, res, err := h.Access.Allows(ctx, *u, ActionFor(body.Kind))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if !ok {
			apperrors.Respond(c, apperrors.New(apperrors.CodeSubscriptionNeeded, res.Message, http.StatusForbidden).WithDetails(res))
			return
		}
	}

	p, err := h.myProfile(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	country := strings.TrimSpace(body.Country)
	if country == "" {
		country = p.Country
	}
	l := listings.Listing{
		BackgroundProfileID: p.ID,
		Kind:                body.Kind,
		Title:               strings.TrimSpace(body.Title),
		Description:         strings.TrimSpace(body.Description),
		Price:               body.Price,
		Currency:            strings.ToLower(body.Currency),
		Country:             country,
	}
	if err := h.DB.WithContext(ctx).Create(&l).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.Scores.Invalidate(ctx, scoring.KindBackground, p.ID)
	c.JSON(http.StatusCreated, l)
}

func (h *Handler) Mine(c *gin.Context) {
	p, err := h.myProfile(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	out := []listings.Listing{}
	if err := h.DB.WithContext(c.Request.Context()).
		Where("background_profile_id = ?", p.ID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	p, err := h.myProfile(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	var l listings.Listing
	err = h.DB.WithContext(ctx).
		Where("id = ? AND background_profile_id = ?", id, p.ID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Respond(c, apperrors.NotFound("Listing"))
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.DB.WithContext(ctx).Delete(&l).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	h.Scores.Invalidate(ctx, scoring.KindBackground, p.ID)
	c.Status(http.StatusNoContent)
}
