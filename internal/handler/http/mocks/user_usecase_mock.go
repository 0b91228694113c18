package mocks

import (
	"context"
	"fmt"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/usecase"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser     bool
	ShouldFailLogin          bool
	ShouldFailGetByID        bool
	ShouldFailUpdateUser     bool
	ShouldFailRefreshToken   bool
	ShouldFailLogout         bool
	ShouldFailAuthenticate   bool
	ShouldFailLoginWithOAuth bool

	// Return values
	MockUser         entity.User
	MockAccessToken  string
	MockRefreshToken string

	// Recorded arguments
	LastUpdates map[string]interface{}
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:    "mock-user-id",
			Name:  "Test Worker",
			Email: "test@example.com",
			Role:  entity.UserRoleUser,
		},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
	}
}

// NewMockAdminUsecase authenticates every token as an admin.
func NewMockAdminUsecase() *MockUserUsecase {
	m := NewMockUserUsecase()
	m.MockUser.ID = "mock-admin-id"
	m.MockUser.Role = entity.UserRoleAdmin
	return m
}

func (m *MockUserUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if m.ShouldFailCreateUser {
		return nil, fmt.Errorf("user with email %s already exists: %w", email, usecase.ErrInvalidState)
	}
	user := m.MockUser
	user.Name, user.Email = name, email
	return &user, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	if m.ShouldFailLogin {
		return nil, "", "", usecase.ErrInvalidCredentials
	}
	return &m.MockUser, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, fmt.Errorf("user: %w", usecase.ErrNotFound)
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	m.LastUpdates = updates
	if m.ShouldFailUpdateUser {
		return nil, fmt.Errorf("name cannot be empty: %w", usecase.ErrInvalidInput)
	}
	user := m.MockUser
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	return &user, nil
}

func (m *MockUserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.ShouldFailRefreshToken {
		return "", "", fmt.Errorf("invalid refresh token: %w", usecase.ErrAuthRequired)
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.ShouldFailLogout {
		return fmt.Errorf("%w: connection refused", usecase.ErrBackendUnavailable)
	}
	return nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if m.ShouldFailAuthenticate || accessToken != m.MockAccessToken {
		return nil, usecase.ErrAuthRequired
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, name, email, photoURL string) (string, string, error) {
	if m.ShouldFailLoginWithOAuth {
		return "", "", fmt.Errorf("%w: oauth login", usecase.ErrBackendUnavailable)
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}
