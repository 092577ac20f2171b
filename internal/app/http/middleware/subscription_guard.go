package middleware

import (
	"context"
	"net/http"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserLoader fetches the authenticated user.
type UserLoader func(ctx context.Context, id uint) (*users.User, error)

type FeatureGate interface {
	Allows(ctx context.Context, u users.User, action access.Action) (bool, access.GateResult, error)
}

// RequireFeature blocks background users without a live subscription from
// the given action. The gate result is returned so clients can render it.
func RequireFeature(load UserLoader, gate FeatureGate, action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		u, err := load(c.Request.Context(), userID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if u == nil {
			apperrors.Respond(c, apperrors.ErrUserNotFound)
			return
		}

		ok, res, err := gate.Allows(c.Request.Context(), *u, action)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        res.Message,
				"code":         apperrors.CodeSubscriptionNeeded,
				"subscription": res,
			})
			return
		}

		c.Set("user", u)
		c.Next()
	}
}
