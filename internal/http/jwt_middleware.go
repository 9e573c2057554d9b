package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"twofa-api/internal/service"
)

const authClaimsKey = "auth_claims"

// BearerAuthMiddleware valida bearer tokens del tipo esperado y guarda claims en el contexto.
func BearerAuthMiddleware(authServ *service.AuthService, kind service.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authServ == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])

		// Falla de decode y tipo equivocado responden identico.
		claims, err := authServ.Authorize(token, kind)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene claims del token desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
