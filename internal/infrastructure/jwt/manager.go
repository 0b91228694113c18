package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "workmatch"

// CustomClaims are the claims signed into every token. Subject holds the user id.
type CustomClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens. Access and refresh tokens use
// different secrets, so one can never be replayed as the other.
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (m *JWTManager) GenerateAccessToken(userID, role string) (string, error) {
	return m.sign(m.accessSecret, "", userID, role, m.accessTTL)
}

// GenerateRefreshToken carries tokenID as jti so two refresh tokens issued in
// the same second still differ.
func (m *JWTManager) GenerateRefreshToken(tokenID, userID, role string) (string, error) {
	return m.sign(m.refreshSecret, tokenID, userID, role, m.refreshTTL)
}

func (m *JWTManager) VerifyToken(tokenStr string) (*CustomClaims, error) {
	return m.verify(tokenStr, m.accessSecret)
}

func (m *JWTManager) VerifyRefreshToken(tokenStr string) (*CustomClaims, error) {
	return m.verify(tokenStr, m.refreshSecret)
}

func (m *JWTManager) sign(secret []byte, tokenID, userID, role string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) verify(tokenStr string, secret []byte) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
