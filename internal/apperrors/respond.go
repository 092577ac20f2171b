package apperrors

import (
	"net/http"

	"talent-marketplace/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Respond writes err as JSON. Unknown errors become a generic 500 so internals never leak.
func Respond(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		appErr = Internal(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", string(appErr.Code)),
			zap.Error(err))
	}

	body := gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.HTTPCode, body)
}
