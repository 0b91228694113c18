package contract

import (
	"context"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type ITokenRepository interface {
	CreateToken(ctx context.Context, token *entity.Token) error
	// GetTokenByUserID returns the newest non-revoked token of the user.
	GetTokenByUserID(ctx context.Context, userID string) (*entity.Token, error)
	UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error
	RevokeToken(ctx context.Context, id string) error
	RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error
}
