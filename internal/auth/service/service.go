package service

import (
	"context"
	"strings"
	"time"

	"quotedesk/internal/auth/password"
	"quotedesk/internal/auth/repository"
	"quotedesk/internal/auth/token"
	"quotedesk/internal/auth/transport"
	"quotedesk/internal/events"
	"quotedesk/platform/apperr"
	"quotedesk/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// Invalid email and wrong password report the same message so login attempts
// cannot probe which addresses have accounts.
const invalidCredentialsMsg = "invalid email or password"

// Service provides account and token business logic.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
}

// New creates a new auth service.
func New(repo *repository.Repository, cfg config.AuthServiceConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// SetEventBus injects the event bus (set after construction by the composition root).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Register creates an account and returns a token pair.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (*transport.TokenResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "registration failed", err).WithOp("auth.Register")
	}

	user := &repository.User{
		ID:           uuid.New(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.UserRegistered{
			BaseEvent: events.NewBaseEvent(),
			UserID:    user.ID,
			Email:     user.Email,
		})
	}

	return s.issueTokens(ctx, user.ID)
}

// Login verifies credentials and returns a token pair.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (*transport.TokenResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized(invalidCredentialsMsg)
		}
		return nil, err
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperr.Unauthorized(invalidCredentialsMsg)
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates a refresh token and issues a new pair.
func (s *Service) Refresh(ctx context.Context, req transport.RefreshRequest) (*transport.TokenResponse, error) {
	userID, err := s.repo.ConsumeRefreshToken(ctx, token.HashSHA256(req.RefreshToken))
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, userID)
}

// Logout revokes every refresh token the user holds.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteRefreshTokensForUser(ctx, userID)
}

// Me returns the authenticated user's public profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*transport.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &transport.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (*transport.TokenResponse, error) {
	accessToken, err := s.signJWT(userID, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "token issuing failed", err).WithOp("auth.issueTokens")
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "token issuing failed", err).WithOp("auth.issueTokens")
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		return nil, err
	}

	return &transport.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) signJWT(userID uuid.UUID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": accessTokenType,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
