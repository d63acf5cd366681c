package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"psytech/internal/lib/logger/handlers/slogdiscard"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func basic(password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:"+password))
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		header   string
		want     int
	}{
		{name: "plain ok", password: "psytech2026", header: basic("psytech2026"), want: http.StatusOK},
		{name: "plain wrong", password: "psytech2026", header: basic("wrong"), want: http.StatusUnauthorized},
		{name: "missing header", password: "psytech2026", want: http.StatusUnauthorized},
		{name: "bearer scheme", password: "psytech2026", header: "Bearer psytech2026", want: http.StatusUnauthorized},
		{name: "bcrypt ok", hash: string(hash), header: basic("hashed-secret"), want: http.StatusOK},
		{name: "bcrypt wins over plain", password: "plain", hash: string(hash), header: basic("plain"), want: http.StatusUnauthorized},
		{name: "no credentials configured", header: basic(""), want: http.StatusUnauthorized},
		{name: "undecodable credentials", password: "psytech2026", header: "Basic !!!notbase64", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			g := e.Group("/admin", AdminAuth(slogdiscard.NewDiscardLogger(), tt.password, tt.hash))
			g.GET("/posts", okHandler)

			req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			rec := serve(e, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, `basic realm="admin"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestAdminAuth_HandlerErrorsPassThrough(t *testing.T) {
	e := echo.New()
	g := e.Group("/admin", AdminAuth(slogdiscard.NewDiscardLogger(), "psytech2026", ""))
	g.GET("/posts", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad query")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.Header.Set(echo.HeaderAuthorization, basic("psytech2026"))

	rec := serve(e, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		allowed bool
		err     error
		want    int
	}{
		{name: "allowed", allowed: true, want: http.StatusOK},
		{name: "limited", allowed: false, want: http.StatusTooManyRequests},
		{name: "redis down fails open", err: errors.New("connection refused"), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := new(MockRateLimiter)
			limiter.On("Allow", mock.Anything, "contact:203.0.113.7").Return(tt.allowed, tt.err).Once()

			e := echo.New()
			e.POST("/contact", okHandler, RateLimit(slogdiscard.NewDiscardLogger(), limiter, "contact"))

			req := httptest.NewRequest(http.MethodPost, "/contact", nil)
			req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")

			rec := serve(e, req)

			assert.Equal(t, tt.want, rec.Code)
			limiter.AssertExpectations(t)
		})
	}
}

func TestPrometheusMetrics(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics)
	e.GET("/posts/:slug", okHandler)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/posts/hello-en", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
