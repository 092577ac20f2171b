package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"talent-marketplace/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// SanitizeAndCleanInputMiddleware strips HTML from every string in a JSON body,
// including nested objects and arrays, and leaves plain text as typed.
// Top-level htmlFields keep safe markup instead. Non-JSON bodies pass through.
func SanitizeAndCleanInputMiddleware(htmlFields ...string) gin.HandlerFunc {
	s := sanitizer{
		strict:     bluemonday.StrictPolicy(),
		ugc:        bluemonday.UGCPolicy(),
		htmlFields: make(map[string]bool, len(htmlFields)),
	}
	for _, f := range htmlFields {
		s.htmlFields[f] = true
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body any
		if err := json.Unmarshal(buf, &body); err != nil {
			logger.FromContext(c.Request.Context()).Debug("malformed JSON body", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, err := json.Marshal(s.body(body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

type sanitizer struct {
	strict     *bluemonday.Policy
	ugc        *bluemonday.Policy
	htmlFields map[string]bool
}

func (s sanitizer) body(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return s.value(v)
	}
	for k, inner := range obj {
		if str, isStr := inner.(string); isStr && s.htmlFields[k] {
			obj[k] = s.ugc.Sanitize(str)
			continue
		}
		obj[k] = s.value(inner)
	}
	return obj
}

func (s sanitizer) value(v any) any {
	switch val := v.(type) {
	case string:
		return s.text(val)
	case map[string]any:
		for k, inner := range val {
			val[k] = s.value(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = s.value(inner)
		}
		return val
	default:
		return v
	}
}

// maxTextPasses bounds the strip/unescape loop on nested entity encodings.
const maxTextPasses = 4

// text strips tags and undoes the policy's entity escaping, so "I'm & you"
// is stored as typed. Entity-encoded tags are decoded and stripped again.
func (s sanitizer) text(in string) string {
	out := in
	for i := 0; i < maxTextPasses; i++ {
		next := html.UnescapeString(s.strict.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	return s.strict.Sanitize(out)
}
