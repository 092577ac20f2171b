package plans

import (
	"errors"
	"net/http"
	"strings"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
	// ProductIDs limits sync and listing to these Stripe products when set.
	ProductIDs []string
}

// ParseProductIDs splits a comma-separated env value.
func ParseProductIDs(csv string) []string {
	var out []string
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (h *Handler) allowedProduct(id string) bool {
	if len(h.ProductIDs) == 0 {
		return true
	}
	for _, p := range h.ProductIDs {
		if p == id {
			return true
		}
	}
	return false
}

// ListPlans returns synced plans, optionally filtered by ?family=.
func (h *Handler) ListPlans(c *gin.Context) {
	q := h.DB.WithContext(c.Request.Context()).Model(&plans.Plan{})
	if len(h.ProductIDs) > 0 {
		q = q.Where("stripe_product_id IN ?", h.ProductIDs)
	}
	if family := c.Query("family"); family != "" {
		if !plans.IsValidFamily(family) {
			apperrors.Respond(c, apperrors.Validation("Unknown plan family"))
			return
		}
		q = q.Where("family = ?", family)
	}

	var list []plans.Plan
	if err := q.Order("family ASC, price ASC").Find(&list).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PriceMetadata is what a Stripe price carries about the plan it sells.
type PriceMetadata struct {
	Name   string
	Family string
	Tier   string
	Hidden bool
}

// ReadPriceMetadata reads family/tier/plan/visible keys. Family falls back to
// the product metadata, then to "talent".
func ReadPriceMetadata(priceMeta, productMeta map[string]string, productName string) PriceMetadata {
	get := func(key string) string {
		if v := strings.TrimSpace(priceMeta[key]); v != "" {
			return v
		}
		return strings.TrimSpace(productMeta[key])
	}

	m := PriceMetadata{
		Name:   productName,
		Family: strings.ToLower(get("family")),
		Tier:   strings.ToLower(get("tier")),
		Hidden: priceMeta["visible"] == "false",
	}
	if v := strings.TrimSpace(priceMeta["plan"]); v != "" {
		m.Name = v
		if m.Tier == "" {
			m.Tier = strings.ToLower(v)
		}
	}
	if !plans.IsValidFamily(m.Family) {
		m.Family = plans.FamilyTalent
	}
	if !plans.IsValidTier(m.Family, m.Tier) {
		m.Tier = ""
	}
	return m
}

type syncResult struct {
	Synced  int `json:"synced"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// SyncPlansFromStripe mirrors active recurring prices into the plans table.
func (h *Handler) SyncPlansFromStripe(c *gin.Context) {
	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	ctx := c.Request.Context()
	var res syncResult

	it := price.List(params)
	for it.Next() {
		p := it.Price()
		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			res.Skipped++
			continue
		}
		if !h.allowedProduct(p.Product.ID) {
			res.Skipped++
			continue
		}

		meta := ReadPriceMetadata(p.Metadata, p.Product.Metadata, p.Product.Name)
		if meta.Hidden {
			res.Skipped++
			continue
		}

		var existing plans.Plan
		err := h.DB.WithContext(ctx).Where("stripe_price_id = ?", p.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = plans.Plan{StripePriceID: p.ID}
			res.Created++
		case err != nil:
			apperrors.Respond(c, err)
			return
		default:
			res.Updated++
		}

		existing.Name = meta.Name
		existing.Price = float64(p.UnitAmount) / 100.0
		existing.Currency = string(p.Currency)
		existing.StripeProductID = p.Product.ID
		existing.Interval = string(p.Recurring.Interval)
		existing.Family = meta.Family
		if meta.Tier != "" {
			existing.Tier = meta.Tier
		}

		if err := h.DB.WithContext(ctx).Save(&existing).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		res.Synced++
	}

	if err := it.Err(); err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.CodeExternalService,
			"Failed to fetch Stripe prices", http.StatusBadGateway))
		return
	}

	c.JSON(http.StatusOK, res)
}
