package profiles

import (
	"errors"
	"net/http"
	"strings"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) GetMyTalent(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	own, err := h.myTalent(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	p, err := h.Loader.LoadTalent(ctx, own.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTalentDTO(p, h.AppURL, true))
}

func (h *Handler) UpdateMyTalent(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body talentUpdate
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := h.myTalent(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	body.apply(p)

	if err := h.DB.WithContext(ctx).
		Omit("VisualWorker", "ExpressiveWorker", "HybridWorker", "Media").
		Save(p).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if _, err := profiles.EnsureTalentSlug(h.DB.WithContext(ctx), p); err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.refreshTalent(ctx, p.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	updated, err := h.Loader.LoadTalent(ctx, p.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTalentDTO(updated, h.AppURL, true))
}

type specializationInput struct {
	PrimaryCategory string `json:"primary_category" binding:"max=80"`
	HeightCM        int    `json:"height_cm" binding:"omitempty,min=50,max=260"`
	PerformerType   string `json:"performer_type" binding:"max=80"`
	Instruments     string `json:"instruments" binding:"max=200"`
	Skills          string `json:"skills" binding:"max=500"`
	YearsExperience int    `json:"years_experience" binding:"min=0,max=80"`
}

// PutSpecialization attaches or updates one specialization on the caller's profile.
func (h *Handler) PutSpecialization(c *gin.Context) {
	kind := c.Param("kind")
	if !profiles.IsValidSpecialization(kind) {
		apperrors.Respond(c, apperrors.Validation("Unknown specialization"))
		return
	}
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body specializationInput
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := h.myTalent(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	row := specializationRow(kind, p)
	if err := fillSpecialization(row, p.ID, body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.DB.WithContext(ctx).Save(row).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.refreshTalent(ctx, p.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) DeleteSpecialization(c *gin.Context) {
	kind := c.Param("kind")
	if !profiles.IsValidSpecialization(kind) {
		apperrors.Respond(c, apperrors.Validation("Unknown specialization"))
		return
	}
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := h.myTalent(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	model := specializationRow(kind, &profiles.TalentProfile{})
	if err := h.DB.WithContext(ctx).
		Where("talent_profile_id = ?", p.ID).
		Delete(model).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.refreshTalent(ctx, p.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// specializationRow returns the profile's existing row for kind, or a fresh one.
func specializationRow(kind string, p *profiles.TalentProfile) any {
	switch kind {
	case profiles.SpecializationVisual:
		if p.VisualWorker != nil {
			return p.VisualWorker
		}
		return &profiles.VisualWorker{}
	case profiles.SpecializationExpressive:
		if p.ExpressiveWorker != nil {
			return p.ExpressiveWorker
		}
		return &profiles.ExpressiveWorker{}
	default:
		if p.HybridWorker != nil {
			return p.HybridWorker
		}
		return &profiles.HybridWorker{}
	}
}

func fillSpecialization(row any, profileID uint, in specializationInput) error {
	switch r := row.(type) {
	case *profiles.VisualWorker:
		r.TalentProfileID = profileID
		r.PrimaryCategory = strings.TrimSpace(in.PrimaryCategory)
		r.HeightCM = in.HeightCM
		r.YearsExperience = in.YearsExperience
	case *profiles.ExpressiveWorker:
		r.TalentProfileID = profileID
		r.PerformerType = strings.TrimSpace(in.PerformerType)
		r.Instruments = strings.TrimSpace(in.Instruments)
		r.YearsExperience = in.YearsExperience
	case *profiles.HybridWorker:
		r.TalentProfileID = profileID
		r.Skills = strings.TrimSpace(in.Skills)
		r.YearsExperience = in.YearsExperience
	default:
		return errors.New("unknown specialization row")
	}
	return nil
}

// GetPublicTalent serves the public profile page by slug.
func (h *Handler) GetPublicTalent(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	ctx := c.Request.Context()

	var p profiles.TalentProfile
	err := h.DB.WithContext(ctx).Select("id").Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Respond(c, apperrors.ErrProfileNotFound)
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	full, err := h.Loader.LoadTalent(ctx, p.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if full == nil {
		apperrors.Respond(c, apperrors.ErrProfileNotFound)
		return
	}

	dto := buildTalentDTO(full, h.AppURL, false)
	if score, err := h.Scores.Score(ctx, scoring.KindTalent, full.ID); err == nil {
		dto.Score = &score
	}
	c.JSON(http.StatusOK, dto)
}

func (h *Handler) MyTalentScore(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := h.myTalent(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	score, err := h.Scores.Score(ctx, scoring.KindTalent, p.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}
