package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"twofa-api/internal/domain"
	"twofa-api/internal/email"
	"twofa-api/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPDelivery        = errors.New("otp delivery failed")
	ErrInvalidLoginToken  = errors.New("invalid or expired login token")
	ErrOTPNotFound        = errors.New("otp expired or not found")
	ErrOTPMismatch        = errors.New("otp mismatch")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthService orquesta registro, login y verificacion 2FA.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	otps   *OTPStore
	tokens *TokenService
	sender email.Sender
	otpTTL time.Duration
}

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	otps *OTPStore,
	tokens *TokenService,
	sender email.Sender,
	otpTTL time.Duration,
) *AuthService {
	if otpTTL <= 0 {
		otpTTL = 5 * time.Minute
	}
	return &AuthService{
		logger: logger,
		users:  users,
		otps:   otps,
		tokens: tokens,
		sender: sender,
		otpTTL: otpTTL,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Surname     string
	Requires2FA bool
}

// Register da de alta un usuario nuevo; no autentica.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	_, err := s.users.GetByEmail(ctx, input.Email)
	if err == nil {
		return domain.User{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Email:        input.Email,
		Name:         input.Name,
		Surname:      input.Surname,
		PasswordHash: passwordHash,
		Requires2FA:  input.Requires2FA,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Create(ctx, user)
}

type LoginResult struct {
	Requires2FA bool
	TmpToken    string
	AccessToken string
}

// Login valida credenciales; con 2FA emite un token de login y envia el OTP.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	if !user.Requires2FA {
		accessToken, err := s.tokens.Issue(user.ID, TokenKindAccess)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Requires2FA: false, AccessToken: accessToken}, nil
	}

	code, err := GenerateOTP()
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.otps.Put(ctx, user.ID, code, s.otpTTL); err != nil {
		return LoginResult{}, err
	}

	// El OTP guardado no se revierte si el envio falla; expira por TTL.
	body := fmt.Sprintf("Your OTP code is: %s", code)
	if err := s.sender.Send(ctx, user.Email, "Your OTP Code", body); err != nil {
		s.logger.Error("send otp email failed", zap.Error(err), zap.Int64("user_id", user.ID))
		return LoginResult{}, ErrOTPDelivery
	}

	tmpToken, err := s.tokens.Issue(user.ID, TokenKindLogin)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Requires2FA: true, TmpToken: tmpToken}, nil
}

// Verify2FA consume el OTP del usuario y emite el token de acceso.
func (s *AuthService) Verify2FA(ctx context.Context, tmpToken, code string) (string, error) {
	claims, err := s.tokens.Verify(tmpToken)
	if err != nil {
		return "", ErrInvalidLoginToken
	}
	if claims.TokenType != TokenKindLogin {
		return "", ErrTokenKind
	}

	stored, found, err := s.otps.Get(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrOTPNotFound
	}
	if stored != code {
		return "", ErrOTPMismatch
	}

	// Borrado antes de emitir: un reenvio del mismo codigo ya no encuentra OTP.
	if err := s.otps.Delete(ctx, claims.UserID); err != nil {
		return "", err
	}
	return s.tokens.Issue(claims.UserID, TokenKindAccess)
}

// Authorize valida un bearer token del tipo esperado; toda falla es uniforme.
func (s *AuthService) Authorize(tokenString string, kind TokenKind) (Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return Claims{}, ErrUnauthorized
	}
	if claims.TokenType != kind {
		return Claims{}, ErrUnauthorized
	}
	return claims, nil
}
