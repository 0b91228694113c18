package jwt

import (
	"github.com/google/uuid"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

var _ usecase.JWTService = (*JWTServiceAdapter)(nil)

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) *JWTServiceAdapter {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateAccessToken issues an access token for a user.
func (a *JWTServiceAdapter) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	return a.mgr.GenerateAccessToken(userID, string(role))
}

// GenerateRefreshToken issues a refresh token for a user.
func (a *JWTServiceAdapter) GenerateRefreshToken(userID string, role entity.UserRole) (string, error) {
	return a.mgr.GenerateRefreshToken(uuid.New().String(), userID, string(role))
}

// ParseAccessToken validates an access token and returns Claims.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	c, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return toClaims(c), nil
}

// ParseRefreshToken validates a refresh token and returns Claims.
func (a *JWTServiceAdapter) ParseRefreshToken(tokenStr string) (*entity.Claims, error) {
	c, err := a.mgr.VerifyRefreshToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return toClaims(c), nil
}

func toClaims(c *CustomClaims) *entity.Claims {
	return &entity.Claims{
		UserID:           c.Subject,
		Role:             entity.UserRole(c.Role),
		RegisteredClaims: c.RegisteredClaims,
	}
}
