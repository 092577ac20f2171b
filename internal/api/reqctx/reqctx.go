// Package reqctx reads the values AuthMiddleware and the router put on a gin context.
package reqctx

import (
	"strconv"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func UserID(c *gin.Context) (uint, error) {
	id := c.GetUint("user_id")
	if id == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// User returns the user RequireFeature already loaded, if any.
func User(c *gin.Context) *users.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	u, _ := v.(*users.User)
	return u
}

func ParamID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(n), nil
}

// Page reads page/limit query values with defaults and an upper bound on limit.
func Page(c *gin.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}
