package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcontext "github.com/SeakMengs/certgen/internal/app_context"
	"github.com/SeakMengs/certgen/internal/auth"
	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/constant"
	ratelimiter "github.com/SeakMengs/certgen/internal/rate_limiter"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestApp() *appcontext.Application {
	logger := zap.NewNop().Sugar()
	return &appcontext.Application{
		Logger:     logger,
		JWTService: auth.NewJwt(config.AuthConfig{JWT_SECRET: "secret", TOKEN_TTL: time.Hour}, logger),
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := newTestApp()
	m := NewMiddleware(app, nil)

	r := gin.New()
	r.GET("/students", m.AuthMiddleware, func(c *gin.Context) {
		claims := c.MustGet(constant.CTX_AUTH_USER).(*auth.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"college": claims.College})
	})

	token, err := app.JWTService.GenerateAccessToken(auth.JWTPayload{UserID: "u1", Username: "admin", College: "c1", Role: "admin"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		status int
		error  string
	}{
		{"missing", "", http.StatusUnauthorized, constant.ERR_ACCESS_TOKEN_REQUIRED},
		{"not bearer", "Basic abc", http.StatusUnauthorized, constant.ERR_ACCESS_TOKEN_REQUIRED},
		{"garbage", "Bearer abc", http.StatusForbidden, constant.ERR_INVALID_TOKEN},
		{"valid", "Bearer " + token, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/students", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			body := decodeError(t, w)
			if tt.error != "" && body["error"] != tt.error {
				t.Errorf("expected error %q, got %q", tt.error, body["error"])
			}
			if tt.error == "" && body["college"] != "c1" {
				t.Errorf("claims not in context: %v", body)
			}
		})
	}
}

func TestRequireDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := newTestApp()
	app.PingDatabase = func(context.Context) error { return errors.New("dial tcp: i/o timeout") }
	m := NewMiddleware(app, nil)

	r := gin.New()
	r.GET("/colleges", m.RequireDatabase, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/colleges", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	body := decodeError(t, w)
	if body["error"] != constant.ERR_DATABASE_UNAVAILABLE || body["details"] != constant.ERR_DATABASE_GUIDANCE {
		t.Errorf("unexpected body %v", body)
	}

	app.PingDatabase = func(context.Context) error { return nil }
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/colleges", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 once the store answers, got %d", w.Code)
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := newTestApp()
	rl := ratelimiter.NewRateLimiter(config.RateLimiterConfig{RequestsPerTimeFrame: 1, TimeFrame: time.Minute, Enabled: true}, nil, app.Logger)
	m := NewMiddleware(app, rl)

	r := gin.New()
	r.Use(m.RateLimiterMiddleware)
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}
