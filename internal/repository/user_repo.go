package repository

import (
	"context"
	"errors"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileUpdate struct {
	Email   *string
	Address *string
	Bio     *string
}

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	list := make([]models.User, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("lower(email) = lower(?)", email).Count(&cnt).Error
	return cnt > 0, err
}

// ExistsByEmailExcept проверяет, занят ли email другим аккаунтом.
func (r *UserRepo) ExistsByEmailExcept(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("lower(email) = lower(?) AND id <> ?", email, id).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *UserRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("mobile = ?", mobile).Count(&cnt).Error
	return cnt > 0, err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, p ProfileUpdate) error {
	upd := map[string]any{}
	if p.Email != nil {
		upd["email"] = *p.Email
	}
	if p.Address != nil {
		upd["address"] = *p.Address
	}
	if p.Bio != nil {
		upd["bio"] = *p.Bio
	}
	if len(upd) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateProfileImage(ctx context.Context, id uuid.UUID, path string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("profile_image", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
