package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	users     UserRepo
	hasher    PasswordHasher
	tokens    TokenProvider
	blacklist TokenBlacklist // может быть nil, если Redis выключен
	images    ImageStore

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewUserService(
	users UserRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	blacklist TokenBlacklist,
	images ImageStore,
	accessTTL time.Duration,
	log *zap.Logger,
) UserService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &userService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		images:    images,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (s *userService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)

	switch {
	case in.FullName == "":
		return nil, invalid("fullName", "fullName is required")
	case in.Email == "":
		return nil, invalid("email", "email is required")
	case in.Password == "":
		return nil, invalid("password", "password is required")
	case len(in.Password) > maxPasswordBytes:
		return nil, invalid("password", "password must be at most 72 bytes")
	case len(in.Mobile) < minMobileLength:
		return nil, invalid("mobile", "mobile number must be at least 10 characters")
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}
	exists, err = s.users.ExistsByMobile(ctx, in.Mobile)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMobileExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:       uuid.New(),
		FullName: in.FullName,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()))
	return s.issue(ctx, u)
}

// Login не различает «нет пользователя» и «неверный пароль».
func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *userService) issue(ctx context.Context, u *models.User) (*AuthResult, error) {
	token, exp, err := s.tokens.SignAccess(ctx, u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if s.blacklist != nil && claims.TokenID != "" {
		revoked, err := s.blacklist.IsTokenBlacklisted(ctx, claims.TokenID)
		if err != nil {
			s.log.Error("token blacklist lookup failed", zap.Error(err))
			return nil, ErrUnauthorized
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

func (s *userService) Logout(ctx context.Context, claims *Claims) error {
	if s.blacklist == nil || claims == nil || claims.TokenID == "" {
		return nil
	}
	ttl := claims.Exp.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.BlacklistToken(ctx, claims.TokenID, ttl)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile меняет только email, адрес и bio.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*models.User, error) {
	var upd repo.ProfileUpdate

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, invalid("email", "email must not be empty")
		}
		taken, err := s.users.ExistsByEmailExcept(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
		upd.Email = &email
	}
	if in.Address != nil {
		a := strings.TrimSpace(*in.Address)
		upd.Address = &a
	}
	if in.Bio != nil {
		b := strings.TrimSpace(*in.Bio)
		upd.Bio = &b
	}

	if err := s.users.UpdateProfile(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

func (s *userService) UpdateProfileImage(ctx context.Context, id uuid.UUID, image *ImageUpload) (*models.User, error) {
	if image == nil || image.Content == nil {
		return nil, ErrImageRequired
	}
	current, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	path, err := s.images.Save(ctx, image)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfileImage(ctx, id, path); err != nil {
		if rmErr := s.images.Remove(path); rmErr != nil {
			s.log.Warn("failed to remove orphaned image", zap.String("path", path), zap.Error(rmErr))
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.ProfileImage != nil && *current.ProfileImage != path {
		if err := s.images.Remove(*current.ProfileImage); err != nil {
			s.log.Warn("failed to remove previous profile image", zap.String("path", *current.ProfileImage), zap.Error(err))
		}
	}
	return s.GetProfile(ctx, id)
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, invalid("email", "email is required")
	}
	return s.users.ExistsByEmail(ctx, email)
}

func (s *userService) FindUser(ctx context.Context, id *uuid.UUID, email string) (*models.User, error) {
	var (
		u   *models.User
		err error
	)
	switch {
	case id != nil:
		u, err = s.users.GetByID(ctx, *id)
	case strings.TrimSpace(email) != "":
		u, err = s.users.GetByEmail(ctx, normalizeEmail(email))
	default:
		return nil, invalid("email", "either id or email is required")
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
