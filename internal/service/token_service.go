package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distingue el proposito de un token emitido.
type TokenKind string

const (
	// TokenKindAccess autoriza el acceso a recursos protegidos.
	TokenKindAccess TokenKind = "access"

	// TokenKindLogin solo es valido para completar la verificacion 2FA.
	TokenKindLogin TokenKind = "login"
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSchema    = errors.New("token claims invalid")
	ErrTokenKind      = errors.New("invalid token kind")
)

// Claims es el claim set firmado dentro de cada token.
type Claims struct {
	UserID    int64     `json:"user_id"`
	TokenType TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService emite y valida tokens JWT tipados.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
	loginTTL  time.Duration
}

func NewTokenService(secret string, accessTTL, loginTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 60 * time.Minute
	}
	if loginTTL <= 0 {
		loginTTL = 10 * time.Minute
	}
	return &TokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		loginTTL:  loginTTL,
	}
}

// Issue firma un token del tipo indicado; ttl opcional sobreescribe el default.
func (s *TokenService) Issue(userID int64, kind TokenKind, ttl ...time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenMalformed
	}

	var lifetime time.Duration
	switch kind {
	case TokenKindAccess:
		lifetime = s.accessTTL
	case TokenKindLogin:
		lifetime = s.loginTTL
	default:
		return "", ErrTokenKind
	}
	if len(ttl) > 0 {
		lifetime = ttl[0]
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify decodifica y valida un token, distinguiendo malformado, expirado y schema.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenMalformed
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenMalformed
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}

	if !isValidClaims(claims) {
		return Claims{}, ErrTokenSchema
	}
	return claims, nil
}

func isValidClaims(claims Claims) bool {
	if claims.UserID <= 0 {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.TokenType == TokenKindAccess || claims.TokenType == TokenKindLogin
}
