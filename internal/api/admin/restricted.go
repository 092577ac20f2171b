package admin

import (
	"net/http"
	"strings"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/restrictions"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

// ListRestricted shows checkout attempts from restricted countries.
// ?status= filters by review state; "all" lists every row.
func (h *Handler) ListRestricted(c *gin.Context) {
	status := strings.ToLower(c.DefaultQuery("status", restrictions.StatusPending))
	switch status {
	case "all":
		status = ""
	case restrictions.StatusPending, restrictions.StatusApproved, restrictions.StatusRejected:
	default:
		apperrors.Respond(c, apperrors.Validation("status must be pending, approved, rejected or all"))
		return
	}

	rows, err := h.Countries.List(c.Request.Context(), status)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) ApproveRestricted(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	reviewer, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body struct {
		Family string `json:"family" binding:"required,plan_family"`
		Tier   string `json:"tier" binding:"required,account_tier"`
		Note   string `json:"note" binding:"max=500"`
	}
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}

	row, err := h.Countries.Approve(c.Request.Context(), id, reviewer, body.Family, body.Tier, body.Note)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) RejectRestricted(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	reviewer, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body struct {
		Note string `json:"note" binding:"max=500"`
	}
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}

	row, err := h.Countries.Reject(c.Request.Context(), id, reviewer, body.Note)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
