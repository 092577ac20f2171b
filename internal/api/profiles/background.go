package profiles

import (
	"net/http"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMyBackground(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	own, err := h.myBackground(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	p, err := h.Loader.LoadBackground(ctx, own.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, buildBackgroundDTO(p))
}

func (h *Handler) UpdateMyBackground(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body backgroundUpdate
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := h.myBackground(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	body.apply(p)

	if err := h.DB.WithContext(ctx).Omit("Media").Save(p).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.refreshBackground(ctx, p.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	updated, err := h.Loader.LoadBackground(ctx, p.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, buildBackgroundDTO(updated))
}

func (h *Handler) MyBackgroundScore(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := h.myBackground(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	score, err := h.Scores.Score(ctx, scoring.KindBackground, p.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}
