package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"twofa-api/internal/service"
)

func protectedRouter(env *testEnv) *gin.Engine {
	r := gin.New()
	r.GET("/protected", BearerAuthMiddleware(env.authSvc, service.TokenKindAccess), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func TestBearerAuthMiddleware_AllowsAccessToken(t *testing.T) {
	env := newTestEnv()
	r := protectedRouter(env)

	accessToken, err := env.tokens.Issue(7, service.TokenKindAccess)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBearerAuthMiddleware_RejectsMissingToken(t *testing.T) {
	env := newTestEnv()
	r := protectedRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerAuthMiddleware_UniformRejection(t *testing.T) {
	env := newTestEnv()
	r := protectedRouter(env)

	loginToken, err := env.tokens.Issue(7, service.TokenKindLogin)
	if err != nil {
		t.Fatalf("issue login token: %v", err)
	}

	reqKind := httptest.NewRequest(http.MethodGet, "/protected", nil)
	reqKind.Header.Set("Authorization", "Bearer "+loginToken)
	recKind := httptest.NewRecorder()
	r.ServeHTTP(recKind, reqKind)

	reqGarbage := httptest.NewRequest(http.MethodGet, "/protected", nil)
	reqGarbage.Header.Set("Authorization", "Bearer garbage")
	recGarbage := httptest.NewRecorder()
	r.ServeHTTP(recGarbage, reqGarbage)

	if recKind.Code != http.StatusUnauthorized || recGarbage.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", recKind.Code, recGarbage.Code)
	}
	// Tipo equivocado y token basura deben ser indistinguibles.
	if recKind.Body.String() != recGarbage.Body.String() {
		t.Fatalf("expected identical bodies, got %q vs %q", recKind.Body.String(), recGarbage.Body.String())
	}
}
