package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/models"
)

func (r *GormRepo) GetCartlines(ctx context.Context) ([]models.Cartline, error) {
	var lines []models.Cartline
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Poster").
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormRepo) GetCartlinesByUser(ctx context.Context, userID uint) ([]models.Cartline, error) {
	var lines []models.Cartline
	if err := r.DB.WithContext(ctx).
		Preload("Poster").
		Where("user_id = ?", userID).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormRepo) GetCartline(ctx context.Context, id uint) (*models.Cartline, error) {
	var line models.Cartline
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Poster").
		First(&line, id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// AddOrMergeCartline merges into an existing (user, poster) line by a single
// additive UPDATE, falling back to an insert when no row matched. Both steps
// run in one transaction so a concurrent duplicate insert hits the composite
// unique index instead of silently splitting the line.
func (r *GormRepo) AddOrMergeCartline(ctx context.Context, line *models.Cartline) (merged bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cartline{}).
			Where("user_id = ? AND poster_id = ?", line.UserID, line.PosterID).
			Update("quantity", gorm.Expr("quantity + ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			merged = true
			return tx.Where("user_id = ? AND poster_id = ?", line.UserID, line.PosterID).First(line).Error
		}

		return tx.Create(line).Error
	})
	return merged, err
}

func (r *GormRepo) UpdateCartlineQuantity(ctx context.Context, id uint, quantity int) (*models.Cartline, error) {
	var line models.Cartline
	if err := r.DB.WithContext(ctx).First(&line, id).Error; err != nil {
		return nil, err
	}

	line.Quantity = quantity
	if err := r.DB.WithContext(ctx).Save(&line).Error; err != nil {
		return nil, err
	}

	return &line, nil
}

func (r *GormRepo) DeleteCartline(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Cartline{}, id)
	return notFoundIfNoRows(res)
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Cartline{}).Error
}
