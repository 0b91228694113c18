package usecasecontract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error)
	LoginWithOAuth(ctx context.Context, name, email, photoURL string) (string, string, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
}
