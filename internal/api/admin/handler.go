package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/domain/restrictions"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/infra/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type ScoreInvalidator interface {
	Invalidate(ctx context.Context, kind string, id uint)
}

type Handler struct {
	DB        *gorm.DB
	Subs      *postgres.Subscriptions
	Countries *restrictions.Gate
	Pending   PendingCounter
	Mail      *mailing.Service
	Scores    ScoreInvalidator
}

type AdminUser struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Lastname         string    `json:"lastname"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	UserType         string    `json:"user_type"`
	AuthProvider     string    `json:"auth_provider"`
	IsVerified       bool      `json:"is_verified"`
	StripeCustomerID *string   `json:"stripe_customer_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type AdminPayment struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	PlanName   *string `json:"plan_name,omitempty"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	InvoiceID  *string `json:"invoice_id,omitempty"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers             int            `json:"total_users"`
	UsersPerType           map[string]int `json:"users_per_type"`
	ActiveSubscriptions    map[string]int `json:"active_subscriptions"`
	PendingRestrictedUsers int            `json:"pending_restricted_users"`
	TotalBands             int            `json:"total_bands"`
	TotalRevenue           float64        `json:"total_revenue"`
	RecentRevenue          float64        `json:"recent_revenue"`
}

func toAdminUser(u users.User) AdminUser {
	return AdminUser{
		ID:               u.ID,
		Name:             u.Name,
		Lastname:         u.Lastname,
		Email:            u.Email,
		Role:             u.Role,
		UserType:         u.UserType,
		AuthProvider:     u.AuthProvider,
		IsVerified:       u.IsVerified,
		StripeCustomerID: u.StripeCustomerID,
		CreatedAt:        u.CreatedAt,
	}
}

func toAdminPayment(p billing.Payment) AdminPayment {
	var planName *string
	if p.Plan != nil {
		planName = &p.Plan.Name
	}
	return AdminPayment{
		ID:         p.ID,
		Email:      p.User.Email,
		PlanName:   planName,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     p.Status,
		InvoiceID:  p.InvoiceID,
		ReceiptURL: p.ReceiptURL,
		CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04"),
	}
}

type countRow struct {
	Key   string
	Count int
}

func countMap(rows []countRow) map[string]int {
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out
}

// Dashboard returns the headline numbers for the admin home page.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.DB.WithContext(ctx)

	var (
		stats       AdminStats
		totalUsers  int64
		totalBands  int64
		perType     []countRow
		activeByFam []countRow
	)
	since := time.Now().AddDate(0, 0, -30)

	if err := db.Model(&users.User{}).Count(&totalUsers).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := db.Table("bands").Count(&totalBands).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := db.Model(&users.User{}).
		Select("user_type AS key, COUNT(id) AS count").
		Group("user_type").
		Scan(&perType).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := db.Model(&billing.Subscription{}).
		Select("family AS key, COUNT(id) AS count").
		Where("status = ? AND is_active = ?", billing.StatusActive, true).
		Group("family").
		Scan(&activeByFam).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := db.Model(&billing.Payment{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := db.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.RecentRevenue).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}

	pending, err := h.Pending.CountPending(ctx)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	stats.TotalUsers = int(totalUsers)
	stats.TotalBands = int(totalBands)
	stats.UsersPerType = countMap(perType)
	stats.ActiveSubscriptions = countMap(activeByFam)
	stats.PendingRestrictedUsers = int(pending)

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := reqctx.Page(c, 50, 200)

	var total int64
	var rows []users.User
	q := h.DB.WithContext(c.Request.Context()).Model(&users.User{})
	if t := c.Query("type"); t != "" {
		q = q.Where("user_type = ?", t)
	}
	if err := q.Count(&total).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := q.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}

	out := make([]AdminUser, 0, len(rows))
	for _, u := range rows {
		out = append(out, toAdminUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out, "total": total, "page": page, "limit": limit})
}

func (h *Handler) ListPayments(c *gin.Context) {
	page, limit := reqctx.Page(c, 50, 200)

	var payments []billing.Payment
	err := h.DB.WithContext(c.Request.Context()).
		Preload("User").Preload("Plan").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&payments).Error
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	out := make([]AdminPayment, 0, len(payments))
	for _, p := range payments {
		out = append(out, toAdminPayment(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) UserDetails(c *gin.Context) {
	id, err := reqctx.ParamID(c, "id")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	var u users.User
	if err := h.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if isNotFound(err) {
			apperrors.Respond(c, apperrors.ErrUserNotFound)
			return
		}
		apperrors.Respond(c, err)
		return
	}

	subs, err := h.Subs.ListForUser(ctx, u.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var payments []billing.Payment
	if err := h.DB.WithContext(ctx).Preload("Plan").
		Where("user_id = ?", u.ID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	pays := make([]AdminPayment, 0, len(payments))
	for _, p := range payments {
		p.User = u
		pays = append(pays, toAdminPayment(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          toAdminUser(u),
		"subscriptions": subscriptionRows(subs),
		"payments":      pays,
	})
}

type adminSubscription struct {
	Family          string     `json:"family"`
	Tier            string     `json:"tier"`
	Status          string     `json:"status"`
	IsActive        bool       `json:"is_active"`
	ManuallyGranted bool       `json:"manually_granted"`
	PlanName        *string    `json:"plan_name,omitempty"`
	PeriodEnd       *time.Time `json:"current_period_end,omitempty"`
}

func subscriptionRows(subs []billing.Subscription) []adminSubscription {
	out := make([]adminSubscription, 0, len(subs))
	for _, s := range subs {
		row := adminSubscription{
			Family:          s.Family,
			Tier:            s.Tier,
			Status:          s.Status,
			IsActive:        s.Live(),
			ManuallyGranted: s.ManuallyGranted,
			PeriodEnd:       s.CurrentPeriodEnd,
		}
		if s.Plan != nil {
			row.PlanName = &s.Plan.Name
		}
		out = append(out, row)
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
