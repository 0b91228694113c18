package dto

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest completes or edits the profile. Nil fields are left as they are.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
}

// DeletionRequest asks an admin to delete the caller's account.
type DeletionRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// ToUpdates keeps only the fields that were sent.
func (r UpdateProfileRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.PhotoURL != nil {
		updates["photo_url"] = *r.PhotoURL
	}
	return updates
}
