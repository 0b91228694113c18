package dto

import (
	"time"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// UserResponse is the DTO for a user.
type UserResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	IsEmployer      bool     `json:"is_employer"`
	PendingEmployer bool     `json:"pending_employer"`
	Phone           *string  `json:"phone,omitempty"`
	PhotoURL        *string  `json:"photo_url,omitempty"`
	Rating          float64  `json:"rating"`
	ProfileComplete bool     `json:"profile_complete"`
	SavedJobs       []string `json:"saved_jobs"`
	WorkedJobs      []string `json:"worked_jobs"`
	PendingDeletion bool     `json:"pending_deletion"`
	DeletionStatus  string   `json:"deletion_status,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// LoginResponse is the DTO for a successful login.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// TokenResponse is returned by refresh and OAuth login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	saved, worked := user.SavedJobs, user.WorkedJobs
	if saved == nil {
		saved = []string{}
	}
	if worked == nil {
		worked = []string{}
	}
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            string(user.Role),
		IsEmployer:      user.IsEmployer,
		PendingEmployer: user.PendingEmployer,
		Phone:           user.Phone,
		PhotoURL:        user.PhotoURL,
		Rating:          user.Rating,
		ProfileComplete: user.ProfileComplete,
		SavedJobs:       saved,
		WorkedJobs:      worked,
		PendingDeletion: user.PendingDeletion,
		DeletionStatus:  string(user.DeletionStatus),
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(*u))
	}
	return out
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CountResponse carries a single counter.
type CountResponse struct {
	Count int64 `json:"count"`
}
