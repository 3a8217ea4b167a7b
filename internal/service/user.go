package service

import (
	"context"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
)

const (
	minMobileLength  = 10
	maxPasswordBytes = 72
)

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Mobile   string
}

type ProfileInput struct {
	Email   *string
	Address *string
	Bio     *string
}

type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*Claims, error)
	Logout(ctx context.Context, claims *Claims) error

	GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*models.User, error)
	UpdateProfileImage(ctx context.Context, id uuid.UUID, image *ImageUpload) (*models.User, error)

	EmailExists(ctx context.Context, email string) (bool, error)
	FindUser(ctx context.Context, id *uuid.UUID, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
