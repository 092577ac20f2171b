package admin

import (
	"net/http"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

type bulkEmailRequest struct {
	Subject  string `json:"subject" binding:"required,max=200"`
	Body     string `json:"body" binding:"required"`
	Audience struct {
		UserType     string `json:"user_type" binding:"omitempty,user_type"`
		Country      string `json:"country"`
		VerifiedOnly bool   `json:"verified_only"`
	} `json:"audience"`
}

// SendBulkEmail stores the email and its recipients, then queues delivery.
// The response comes back before sending finishes.
func (h *Handler) SendBulkEmail(c *gin.Context) {
	adminID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body bulkEmailRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}

	bulk, err := h.Mail.SendBulk(c.Request.Context(), adminID, mailing.BulkInput{
		Subject: body.Subject,
		Body:    body.Body,
		Audience: mailing.Audience{
			UserType:     body.Audience.UserType,
			Country:      body.Audience.Country,
			VerifiedOnly: body.Audience.VerifiedOnly,
		},
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":         bulk.ID,
		"status":     bulk.Status,
		"recipients": len(bulk.Recipients),
	})
}

func (h *Handler) GetBulkEmail(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	bulk, summary, err := h.Mail.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bulk_email": bulk, "summary": summary})
}
