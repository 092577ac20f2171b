package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talent-marketplace/config"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	config.JWT_SECRET = "test-secret"

	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetUint("user_id"),
			"user_type": c.GetString("user_type"),
			"role":      c.GetString("role"),
		})
	})

	valid := signToken(t, "test-secret", jwt.MapClaims{
		"user_id":   12,
		"email":     "a@example.com",
		"role":      users.RoleUser,
		"user_type": users.TypeBackground,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, "test-secret", jwt.MapClaims{"user_id": 12, "exp": time.Now().Add(-time.Hour).Unix()})
	wrongKey := signToken(t, "other", jwt.MapClaims{"user_id": 12})
	noUser := signToken(t, "test-secret", jwt.MapClaims{"email": "a@example.com"})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"no user id", "Bearer " + noUser, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user_id":12,"user_type":"background","role":"user"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) { c.Set("role", users.RoleUser) }, RequireRole(users.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSanitizeStripsNestedHTML(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	payload := `{"bio":"<script>x()</script>Hello <b>there</b>","social":{"x":"<i>me</i>"},"tags":["<a href='#'>a</a>"],"age":3}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bio":"Hello there","social":{"x":"me"},"tags":["a"],"age":3}`, w.Body.String())
}

func echoSanitized(t *testing.T, payload string, htmlFields ...string) string {
	t.Helper()
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware(htmlFields...))
	r.PUT("/echo", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	req := httptest.NewRequest(http.MethodPut, "/echo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestSanitizeKeepsPlainTextAsTyped(t *testing.T) {
	out := echoSanitized(t, `{"bio":"I'm a singer & dancer","name":"Tom \"T\" <b>Lee</b>","tags":["R&B"]}`)
	assert.JSONEq(t, `{"bio":"I'm a singer & dancer","name":"Tom \"T\" Lee","tags":["R&B"]}`, out)

	again := echoSanitized(t, out)
	assert.JSONEq(t, out, again)
}

func TestSanitizeStripsEntityEncodedTags(t *testing.T) {
	out := echoSanitized(t, `{"bio":"&lt;script&gt;alert(1)&lt;/script&gt;hi"}`)
	assert.JSONEq(t, `{"bio":"hi"}`, out)
}

func TestSanitizeHTMLFieldsKeepSafeMarkup(t *testing.T) {
	out := echoSanitized(t, `{"subject":"<b>News</b> & more","body":"<p>Hello <b>all</b></p><script>x()</script>"}`, "body")
	assert.JSONEq(t, `{"subject":"News & more","body":"<p>Hello <b>all</b></p>"}`, out)
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"bio":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSanitizeSkipsMultipart(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("--x--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))
}

type staticSubs struct{ sub *billing.Subscription }

func (s staticSubs) FindSubscription(context.Context, uint, string) (*billing.Subscription, error) {
	return s.sub, nil
}

func TestRequireFeature(t *testing.T) {
	load := func(_ context.Context, id uint) (*users.User, error) {
		return &users.User{ID: id, UserType: users.TypeBackground}, nil
	}

	build := func(sub *billing.Subscription) *gin.Engine {
		r := gin.New()
		r.POST("/listings",
			func(c *gin.Context) { c.Set("user_id", uint(4)) },
			RequireFeature(load, access.NewGate(staticSubs{sub}), access.ActionCreateListings),
			func(c *gin.Context) { c.Status(http.StatusCreated) })
		return r
	}

	w := httptest.NewRecorder()
	build(nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/listings", nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Code         string            `json:"code"`
		Subscription access.GateResult `json:"subscription"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SUBSCRIPTION_REQUIRED", body.Code)
	assert.False(t, body.Subscription.CanAccessFeatures)
	assert.Len(t, body.Subscription.RestrictedActions, 5)

	w = httptest.NewRecorder()
	build(&billing.Subscription{Status: billing.StatusActive, IsActive: true}).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/listings", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
