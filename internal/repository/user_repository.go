package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"salesacademy/internal/models"
)

// DevAdminTelegramID is the synthetic identity the development-only login
// path issues sessions for. No real Telegram account has a negative id.
const DevAdminTelegramID int64 = -1

// UserRepository handles the user store behind login and /me.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromLogin finds or creates a user by Telegram id. A new user gets
// role USER; an existing user keeps whatever role it has, so login never
// grants or revokes privilege. Display fields are refreshed either way.
// Two concurrent first logins can both attempt the create; the unique
// index rejects the loser, which falls back to the update branch.
func (r *UserRepository) UpsertFromLogin(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	db := r.db.WithContext(ctx)

	var user models.User
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			TelegramID: telegramID,
			Username:   username,
			FirstName:  firstName,
			LastName:   lastName,
			Role:       models.RoleUser,
		}
		if createErr := db.Create(&user).Error; createErr != nil {
			// Lost the first-login race; the row exists now.
			if findErr := db.Where("telegram_id = ?", telegramID).First(&user).Error; findErr != nil {
				return nil, fmt.Errorf("create user: %w", createErr)
			}
		} else {
			return &user, nil
		}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	updates := map[string]interface{}{
		"username":   username,
		"first_name": firstName,
		"last_name":  lastName,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// PromoteDevAdmin upserts the synthetic development admin and forces its
// role to ADMIN. Only the dev login handler calls this.
func (r *UserRepository) PromoteDevAdmin(ctx context.Context) (*models.User, error) {
	db := r.db.WithContext(ctx)

	var user models.User
	err := db.Where("telegram_id = ?", DevAdminTelegramID).First(&user).Error
	switch {
	case err == nil:
		if err := db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, fmt.Errorf("promote dev admin: %w", err)
		}
		user.Role = models.RoleAdmin
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			TelegramID: DevAdminTelegramID,
			Username:   "dev",
			FirstName:  "Dev",
			LastName:   "Admin",
			Role:       models.RoleAdmin,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create dev admin: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find dev admin: %w", err)
	}
}

// GetByID fetches a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
