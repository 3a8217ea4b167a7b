package service

import (
	"context"
	"io"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"

	"github.com/google/uuid"
)

type CategoryRepo interface {
	EnsureCategories(ctx context.Context, cats []models.Category) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)

	EnsureSubCategories(ctx context.Context, subs []models.SubCategory) (int64, error)
	CreateSubCategory(ctx context.Context, s *models.SubCategory) error
	CountSubCategories(ctx context.Context, categoryID uuid.UUID) (int64, error)
	ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]models.SubCategory, error)
	ListAllSubCategories(ctx context.Context) ([]models.SubCategory, error)
	GetSubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	GetSubCategoryByName(ctx context.Context, categoryID uuid.UUID, name string) (*models.SubCategory, error)
}

type ServiceRepo interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	List(ctx context.Context, f repo.ServiceListFilter) ([]models.Service, error)
	Update(ctx context.Context, id uuid.UUID, u repo.ServiceUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, f repo.OrderListFilter) ([]models.Order, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from []models.OrderStatus, to models.OrderStatus) (bool, error)
}

type PaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	List(ctx context.Context, f repo.PaymentListFilter) ([]models.Payment, int64, error)
	Transition(ctx context.Context, orderID string, from []models.PaymentStatus, upd repo.PaymentUpdate) (bool, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcept(ctx context.Context, email string, id uuid.UUID) (bool, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p repo.ProfileUpdate) error
	UpdateProfileImage(ctx context.Context, id uuid.UUID, path string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID  uuid.UUID
	Role    string
	TokenID string
	Exp     time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// TokenBlacklist: отзыв access-токенов по jti (Redis). nil отключает отзыв.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type ImageStore interface {
	Save(ctx context.Context, img *ImageUpload) (path string, err error)
	Remove(path string) error
}

// ChecksumSigner считает и проверяет HMAC платёжного шлюза.
type ChecksumSigner interface {
	Sign(fields ...string) string
	Verify(sum string, fields ...string) bool
}
