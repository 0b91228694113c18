package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	tokenRepo     contract.ITokenRepository
	hasher        contract.IHasher
	jwtService    JWTService
	mailService   contract.IEmailService
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	mailService contract.IEmailService,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		mailService:   mailService,
		logger:        logger,
		config:        cfg,
		validator:     validator,
		uuidGenerator: uuidGenerator,
	}
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register handles user registration.
func (uc *UserUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", ErrInvalidInput)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, fmt.Errorf("weak password: %v: %w", err, ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, storeErr(err, "user")
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists: %w", email, ErrInvalidState)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:             uc.uuidGenerator.NewUUID(),
		Name:           strings.TrimSpace(name),
		Email:          email,
		PasswordHash:   hashedPassword,
		Role:           entity.DefaultRole(),
		SavedJobs:      []string{},
		WorkedJobs:     []string{},
		DeletionStatus: entity.DeletionStatusNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, fmt.Errorf("user with email %s already exists: %w", email, ErrInvalidState)
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, storeErr(err, "user")
	}

	// welcome mail is best effort
	if uc.mailService != nil {
		body := fmt.Sprintf("Hi %s,\n\nWelcome to WorkMatch. You can start browsing jobs at %s.\n", user.Name, uc.config.GetAppBaseURL())
		if err := uc.mailService.SendEmail(ctx, user.Email, "Welcome to WorkMatch", body); err != nil {
			uc.logger.Warnf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

// Login handles user login and token generation.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", "", storeErr(err, "user")
	}
	if user.PasswordHash == "" {
		// OAuth-only account
		return nil, "", "", ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := uc.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

func (uc *UserUsecase) issueTokens(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", "", errors.New("failed to generate token")
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return "", "", errors.New("failed to generate token")
	}

	refreshTokenExpiry := uc.config.GetRefreshTokenExpiry()
	if refreshTokenExpiry <= 0 {
		uc.logger.Errorf("invalid refresh token expiry configuration: %v", refreshTokenExpiry)
		return "", "", errors.New("invalid refresh token expiry configuration")
	}

	now := time.Now().UTC()
	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypeRefresh,
		TokenHash: uc.hasher.HashString(refreshToken),
		ExpiresAt: now.Add(refreshTokenExpiry),
		CreatedAt: now,
		Revoke:    false,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store refresh token for user %s: %v", user.ID, err)
		return "", "", storeErr(err, "token")
	}
	return accessToken, refreshToken, nil
}

// Authenticate handles user authentication using access tokens.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %v: %w", err, ErrAuthRequired)
	}
	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrAuthRequired
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, storeErr(err, "user")
	}
	return user, nil
}

// RefreshToken rotates the stored refresh token and issues a new pair.
func (uc *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Debugf("failed to parse refresh token: %v", err)
		return "", "", fmt.Errorf("invalid refresh token: %w", ErrAuthRequired)
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return "", "", fmt.Errorf("refresh token not found or invalidated, please log in again: %w", ErrAuthRequired)
		}
		uc.logger.Errorf("failed to retrieve stored refresh token: %v", err)
		return "", "", storeErr(err, "token")
	}
	if storedToken.Revoke {
		return "", "", fmt.Errorf("refresh token has been revoked, please log in again: %w", ErrAuthRequired)
	}
	if !uc.hasher.CheckHash(refreshToken, storedToken.TokenHash) {
		uc.logger.Warnf("refresh token mismatch for user %s", claims.UserID)
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("invalid refresh token: %w", ErrAuthRequired)
	}
	if storedToken.ExpiresAt.Before(time.Now()) {
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("refresh token expired, please log in again: %w", ErrAuthRequired)
	}

	// role may have changed since the token was issued (employer approval)
	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", "", storeErr(err, "user")
	}

	newAccessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new access token during refresh: %v", err)
		return "", "", errors.New("failed to generate new access token")
	}
	newRefreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new refresh token during refresh: %v", err)
		return "", "", errors.New("failed to generate new refresh token")
	}

	err = uc.tokenRepo.UpdateToken(ctx, storedToken.ID, uc.hasher.HashString(newRefreshToken), time.Now().Add(uc.config.GetRefreshTokenExpiry()))
	if err != nil {
		uc.logger.Errorf("failed to update refresh token in db: %v", err)
		return "", "", storeErr(err, "token")
	}
	return newAccessToken, newRefreshToken, nil
}

// Logout revokes the stored refresh token. Unknown tokens are treated as
// already logged out.
func (uc *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warnf("failed to parse refresh token on logout, assuming it's already invalid: %v", err)
		return nil
	}
	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			uc.logger.Warnf("refresh token for user %s not found during logout", claims.UserID)
			return nil
		}
		uc.logger.Errorf("failed to retrieve stored refresh token for user %s: %v", claims.UserID, err)
		return storeErr(err, "token")
	}
	if err := uc.tokenRepo.RevokeToken(ctx, storedToken.ID); err != nil {
		uc.logger.Errorf("failed to revoke refresh token for user %s: %v", claims.UserID, err)
		return storeErr(err, "token")
	}
	return nil
}

// UpdateProfile completes or edits profile details. Only name, phone and
// photo_url can be changed here.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	user, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	for k, v := range updates {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch k {
		case "name":
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("name cannot be empty: %w", ErrInvalidInput)
			}
			set["name"] = strings.TrimSpace(s)
		case "phone", "photo_url":
			set[k] = s
		}
	}
	if len(set) == 0 {
		return user, nil
	}

	name, _ := set["name"].(string)
	if name == "" {
		name = user.Name
	}
	phone, hasPhone := set["phone"].(string)
	if !hasPhone && user.Phone != nil {
		phone = *user.Phone
	}
	set["profile_complete"] = name != "" && phone != ""
	set["updated_at"] = time.Now().UTC()

	updated, err := uc.userRepo.UpdateUser(ctx, userID, set)
	if err != nil {
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, storeErr(err, "user")
	}
	return updated, nil
}

// LoginWithOAuth signs in a Google user, creating the account on first login.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, name, email, photoURL string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return "", "", storeErr(err, "user")
	}

	if user == nil {
		now := time.Now().UTC()
		newUser := &entity.User{
			ID:             uc.uuidGenerator.NewUUID(),
			Name:           name,
			Email:          email,
			Role:           entity.DefaultRole(),
			SavedJobs:      []string{},
			WorkedJobs:     []string{},
			DeletionStatus: entity.DeletionStatusNone,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if photoURL != "" {
			newUser.PhotoURL = &photoURL
		}
		if err := uc.userRepo.CreateUser(ctx, newUser); err != nil {
			uc.logger.Errorf("failed to create user from OAuth: %v", err)
			return "", "", storeErr(err, "user")
		}
		user = newUser
	}

	return uc.issueTokens(ctx, user)
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, contract.ErrNotFound) {
			uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		}
		return nil, storeErr(err, "user")
	}
	return user, nil
}
