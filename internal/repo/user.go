package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/models"
)

// UserPatch holds the columns an update may change. Nil members are left untouched.
type UserPatch struct {
	Username     *string
	PasswordHash *string
	IsActive     *bool
	IsSuperuser  *bool
}

func (p UserPatch) columns() map[string]any {
	cols := make(map[string]any, 4)
	if p.Username != nil {
		cols["username"] = *p.Username
	}
	if p.PasswordHash != nil {
		cols["password_hash"] = *p.PasswordHash
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.IsSuperuser != nil {
		cols["is_superuser"] = *p.IsSuperuser
	}
	return cols
}

func usernameTaken(tx *gorm.DB, username string, except uuid.UUID) (bool, error) {
	var count int64
	q := tx.Model(&models.User{}).Where("username = ?", username)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser inserts u. The unique index on username is the source of truth;
// the pre-check only avoids a failed insert in the common case.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.withTx(ctx, func(tx *gorm.DB) error {
		taken, err := usernameTaken(tx, u.Username, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		if err := tx.Create(u).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	})
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *GormRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	var user models.User
	err := r.withTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return notFound(err)
		}

		cols := patch.columns()
		if len(cols) == 0 {
			return nil
		}

		if patch.Username != nil && *patch.Username != user.Username {
			taken, err := usernameTaken(tx, *patch.Username, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrUsernameTaken
			}
		}

		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return err
		}

		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
