package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenTypeRefresh TokenType = "refresh"
)

// Token is a stored (hashed) refresh token.
type Token struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenType TokenType `bson:"token_type" json:"token_type"`
	TokenHash string    `bson:"token_hash" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Revoke    bool      `bson:"revoke" json:"revoke"`
}

// Claims are the JWT claims carried by access and refresh tokens.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
