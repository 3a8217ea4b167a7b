package dto

import (
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	Address      *string   `json:"address,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type CheckUserResponse struct {
	Exists bool          `json:"exists"`
	User   *UserResponse `json:"user,omitempty"`
}

type VerifyTokenResponse struct {
	Valid     bool         `json:"valid"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		FullName:     u.FullName,
		Email:        u.Email,
		Mobile:       u.Mobile,
		Address:      u.Address,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func NewUserList(us []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for i := range us {
		out = append(out, NewUserResponse(&us[i]))
	}
	return out
}

func NewAuthResponse(r *service.AuthResult) AuthResponse {
	return AuthResponse{Token: r.Token, ExpiresAt: r.ExpiresAt, User: NewUserResponse(r.User)}
}
