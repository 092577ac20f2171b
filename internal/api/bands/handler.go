package bands

import (
	"context"
	"net/http"
	"strings"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/infra/postgres"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *bands.Service
	Store   bands.Store
	Users   *postgres.UserStore
	Scores  *scoring.Service
}

var errTalentOnly = apperrors.Forbidden("Only talent profiles can join bands.")

func (h *Handler) actor(c *gin.Context) (bands.Actor, error) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return bands.Actor{}, err
	}
	p, err := h.Users.TalentProfile(c.Request.Context(), userID)
	if err != nil {
		return bands.Actor{}, err
	}
	if p == nil {
		return bands.Actor{}, errTalentOnly
	}
	return bands.Actor{UserID: userID, TalentProfileID: p.ID}, nil
}

type createRequest struct {
	Name        string               `json:"name" binding:"required,max=120"`
	Description string               `json:"description" binding:"max=5000"`
	PictureURL  string               `json:"picture_url" binding:"omitempty,url"`
	Genre       string               `json:"genre" binding:"max=80"`
	Country     string               `json:"country" binding:"max=80"`
	Social      profiles.SocialLinks `json:"social"`
}

func (h *Handler) Create(c *gin.Context) {
	var body createRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	band, err := h.Service.CreateBand(c.Request.Context(), actor, bands.CreateBandInput{
		Name:        body.Name,
		Description: body.Description,
		PictureURL:  strings.TrimSpace(body.PictureURL),
		Genre:       strings.TrimSpace(body.Genre),
		Country:     strings.TrimSpace(body.Country),
		Social:      body.Social,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, BuildBandDTO(band))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	band, err := h.Store.GetBand(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if band == nil {
		apperrors.Respond(c, apperrors.ErrBandNotFound)
		return
	}
	c.JSON(http.StatusOK, BuildBandDTO(band))
}

func (h *Handler) Score(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	score, err := h.Scores.Score(c.Request.Context(), scoring.KindBand, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *Handler) CreateInvitation(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	inv, err := h.Service.CreateInvitation(c.Request.Context(), actor, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":       inv.Code,
		"band_id":    inv.BandID,
		"expires_at": inv.ExpiresAt,
	})
}

type joinRequest struct {
	Code string `json:"code" binding:"required,len=8"`
}

func (h *Handler) Join(c *gin.Context) {
	var body joinRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	band, err := h.Service.JoinWithCode(c.Request.Context(), actor, body.Code)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined band", "band_id": band.ID, "name": band.Name})
}

func (h *Handler) Promote(c *gin.Context) {
	h.changeRole(c, h.Service.Promote)
}

func (h *Handler) Demote(c *gin.Context) {
	h.changeRole(c, h.Service.Demote)
}

type roleChange func(ctx context.Context, actor bands.Actor, bandID, talentProfileID uint) (*bands.Membership, error)

func (h *Handler) changeRole(c *gin.Context, change roleChange) {
	bandID, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	profileID, err := reqctx.ParamID(c, "profileID")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	m, err := change(c.Request.Context(), actor, bandID, profileID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, BuildMemberDTO(*m))
}

func (h *Handler) Leave(c *gin.Context) {
	bandID, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.Service.Leave(c.Request.Context(), actor, bandID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
