package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/models"
)

// Revoke records jti as invalidated until expiresAt. A jti can be revoked once.
func (r *GormRepo) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.withTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyRevoked
		}

		record := models.RevokedToken{
			JTI:       jti,
			ExpiresAt: expiresAt.UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyRevoked
			}
			return err
		}
		return nil
	})
}

// IsRevoked reports whether jti has a revocation record whose expiry is still ahead.
// Expired records count as absent whether or not they were pruned.
func (r *GormRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, r.now()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) FindRevokedByJTI(ctx context.Context, jti string) (*models.RevokedToken, error) {
	var token models.RevokedToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

// PruneRevoked hard deletes records that expired at or before the given instant.
func (r *GormRepo) PruneRevoked(ctx context.Context, before time.Time) (int64, error) {
	var removed int64
	err := r.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("expires_at <= ?", before.UTC()).Delete(&models.RevokedToken{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
