package service

import (
	"errors"

	"github.com/forgo/clubs/api/internal/model"
	"github.com/forgo/clubs/api/pkg/jwt"
)

// TokenService issues and verifies bearer tokens
type TokenService struct {
	jwtService *jwt.Service
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService *jwt.Service
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{jwtService: cfg.JWTService}
}

// IssueToken creates a bearer token encoding the user's identity
func (s *TokenService) IssueToken(user *model.User) (string, error) {
	return s.jwtService.Sign(jwt.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	})
}

// ValidateToken verifies a bearer token and returns the identity it carries.
// Every verification failure is reported as ErrInvalidToken wrapping the cause.
func (s *TokenService) ValidateToken(token string) (*model.Identity, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	role := model.UserRole(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, nil
}

// TokenLifetimeSeconds returns the configured token lifetime
func (s *TokenService) TokenLifetimeSeconds() int {
	return int(s.jwtService.GetExpiration().Seconds())
}
