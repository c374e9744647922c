package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/models"
)

func (r *GormRepo) GetRatings(ctx context.Context) ([]models.UserRating, error) {
	var ratings []models.UserRating
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Poster").
		Order("id ASC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *GormRepo) GetRatingsByPoster(ctx context.Context, posterID uint) ([]models.UserRating, error) {
	var ratings []models.UserRating
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Where("poster_id = ?", posterID).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *GormRepo) GetRatingsByUser(ctx context.Context, userID uint) ([]models.UserRating, error) {
	var ratings []models.UserRating
	if err := r.DB.WithContext(ctx).
		Preload("Poster").
		Where("user_id = ?", userID).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *GormRepo) GetRating(ctx context.Context, id uint) (*models.UserRating, error) {
	var rating models.UserRating
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Poster").
		First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// SetRating replaces the stars on an existing (user, poster) rating or
// inserts a new row, in one transaction. Same shape as AddOrMergeCartline
// but with overwrite semantics.
func (r *GormRepo) SetRating(ctx context.Context, rating *models.UserRating) (replaced bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserRating{}).
			Where("user_id = ? AND poster_id = ?", rating.UserID, rating.PosterID).
			Update("num_stars", rating.NumStars)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			replaced = true
			return tx.Where("user_id = ? AND poster_id = ?", rating.UserID, rating.PosterID).First(rating).Error
		}

		return tx.Create(rating).Error
	})
	return replaced, err
}

func (r *GormRepo) DeleteRating(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.UserRating{}, id)
	return notFoundIfNoRows(res)
}
