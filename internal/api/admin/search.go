package admin

import (
	"net/http"
	"strconv"
	"strings"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/scoring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SearchFilter is the parsed query of GET /admin/search.
type SearchFilter struct {
	Query    string
	Type     string
	Country  string
	Verified *bool
	Tier     string
}

type SearchResult struct {
	Type        string `json:"type"`
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Country     string `json:"country"`
	Tier        string `json:"tier,omitempty"`
	IsVerified  bool   `json:"is_verified"`
	IsCompleted bool   `json:"is_completed"`
}

// ParseSearchFilter reads and validates the query string. Type defaults to talent.
func ParseSearchFilter(values map[string]string) (SearchFilter, error) {
	f := SearchFilter{
		Query:   strings.TrimSpace(values["q"]),
		Type:    strings.ToLower(strings.TrimSpace(values["type"])),
		Country: strings.TrimSpace(values["country"]),
		Tier:    strings.ToLower(strings.TrimSpace(values["tier"])),
	}
	if f.Type == "" {
		f.Type = scoring.KindTalent
	}
	switch f.Type {
	case scoring.KindTalent, scoring.KindBackground, scoring.KindBand:
	default:
		return f, apperrors.Validation("type must be talent, background or band")
	}
	if f.Tier != "" && f.Type == scoring.KindBand {
		return f, apperrors.Validation("Bands have no tier")
	}
	if v := values["verified"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, apperrors.Validation("verified must be true or false")
		}
		f.Verified = &b
	}
	return f, nil
}

func (f SearchFilter) apply(q *gorm.DB, target searchTarget) *gorm.DB {
	table := target.table
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		if target.joinUsers {
			q = q.Where("LOWER("+target.nameCol+") LIKE ? OR LOWER(users.email) LIKE ?", like, like)
		} else {
			q = q.Where("LOWER("+target.nameCol+") LIKE ?", like)
		}
	}
	if f.Country != "" {
		q = q.Where("LOWER("+table+".country) = LOWER(?)", f.Country)
	}
	if f.Verified != nil {
		q = q.Where(table+".is_verified = ?", *f.Verified)
	}
	if f.Tier != "" {
		q = q.Where(table+".account_tier = ?", f.Tier)
	}
	return q
}

type searchTarget struct {
	table     string
	nameCol   string
	columns   string
	joinUsers bool
}

var searchTargets = map[string]searchTarget{
	scoring.KindTalent: {
		table:   "talent_profiles",
		nameCol: "talent_profiles.display_name",
		columns: "talent_profiles.id, talent_profiles.user_id, talent_profiles.display_name AS name, users.email, " +
			"talent_profiles.country, talent_profiles.account_tier AS tier, talent_profiles.is_verified, talent_profiles.is_completed",
		joinUsers: true,
	},
	scoring.KindBackground: {
		table:   "background_profiles",
		nameCol: "background_profiles.company_name",
		columns: "background_profiles.id, background_profiles.user_id, background_profiles.company_name AS name, users.email, " +
			"background_profiles.country, background_profiles.account_tier AS tier, background_profiles.is_verified, background_profiles.is_completed",
		joinUsers: true,
	},
	scoring.KindBand: {
		table:   "bands",
		nameCol: "bands.name",
		columns: "bands.id, bands.name, bands.country, bands.is_verified",
	},
}

func (h *Handler) Search(c *gin.Context) {
	f, err := ParseSearchFilter(map[string]string{
		"q":        c.Query("q"),
		"type":     c.Query("type"),
		"country":  c.Query("country"),
		"verified": c.Query("verified"),
		"tier":     c.Query("tier"),
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	page, limit := reqctx.Page(c, 25, 100)

	target := searchTargets[f.Type]
	base := h.DB.WithContext(c.Request.Context()).Table(target.table)
	if target.joinUsers {
		base = base.Joins("JOIN users ON users.id = " + target.table + ".user_id")
	}
	base = f.apply(base, target)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}

	var results []SearchResult
	err = base.Session(&gorm.Session{}).
		Select(target.columns).
		Order(target.table + ".id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&results).Error
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	for i := range results {
		results[i].Type = f.Type
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "total": total, "page": page, "limit": limit})
}
