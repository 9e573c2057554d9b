package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mockPinger struct {
	err error
}

func (p *mockPinger) Ping(_ context.Context) error {
	return p.err
}

func healthRouter(db, cache Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHealthHandler(zap.NewNop(), db, cache)
	r.GET("/health", h.Health)
	return r
}

func TestHealth_AllDependenciesUp(t *testing.T) {
	r := healthRouter(&mockPinger{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealth_DependencyDown(t *testing.T) {
	r := healthRouter(&mockPinger{}, &mockPinger{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
