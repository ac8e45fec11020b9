package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pressfeed/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user in its own transaction. A failed insert leaves
// no partial row behind; a duplicate login surfaces as ErrDuplicateLogin.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateLogin
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by login failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count user by login failed: %w", err)
	}
	return count > 0, nil
}

// SwapPasswordHash replaces the stored digest inside one transaction.
// The current digest is handed to verify, and the hash verify returns is
// written back. Any error from verify rolls everything back, so policy
// failures never leave a half-applied change.
func (r *UserRepository) SwapPasswordHash(ctx context.Context, login string, verify func(currentHash string) (string, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Where("login = ?", login).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownLogin
			}
			return fmt.Errorf("query user for password change failed: %w", err)
		}

		newHash, err := verify(user.PasswordHash)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("login = ?", login).
			Update("password_hash", newHash).Error; err != nil {
			return fmt.Errorf("update password hash failed: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) UpdateDescription(ctx context.Context, login, description string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("login = ?", login).
		Update("description", description)
	if res.Error != nil {
		return fmt.Errorf("update description failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUnknownLogin
	}
	return nil
}
