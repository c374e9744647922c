package repo

import (
	"context"

	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/transport"
)

func (r *GormRepo) GetPosters(ctx context.Context, offset, limit int) (int64, []models.Poster, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Poster{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Poster
	if err := r.DB.WithContext(ctx).
		Preload("Genres.Genre").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetPoster(ctx context.Context, id uint) (*models.Poster, error) {
	var poster models.Poster
	if err := r.DB.WithContext(ctx).
		Preload("Genres.Genre").
		Preload("Ratings").
		First(&poster, id).Error; err != nil {
		return nil, err
	}
	return &poster, nil
}

func (r *GormRepo) GetPosterBySlug(ctx context.Context, slug string) (*models.Poster, error) {
	var poster models.Poster
	if err := r.DB.WithContext(ctx).
		Preload("Genres.Genre").
		Preload("Ratings").
		Where("slug = ?", slug).
		First(&poster).Error; err != nil {
		return nil, err
	}
	return &poster, nil
}

func (r *GormRepo) CreatePoster(ctx context.Context, poster *models.Poster) error {
	return r.DB.WithContext(ctx).Create(poster).Error
}

func (r *GormRepo) PatchPoster(ctx context.Context, req transport.PatchPosterRequest, id uint) (*models.Poster, error) {
	var poster models.Poster
	if err := r.DB.WithContext(ctx).First(&poster, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		poster.Name = *req.Name
	}
	if req.Slug != nil {
		poster.Slug = *req.Slug
	}
	if req.Description != nil {
		poster.Description = *req.Description
	}
	if req.Image != nil {
		poster.Image = *req.Image
	}
	if req.Width != nil {
		poster.Width = *req.Width
	}
	if req.Height != nil {
		poster.Height = *req.Height
	}
	if req.Price != nil {
		poster.Price = *req.Price
	}
	if req.Stock != nil {
		poster.Stock = *req.Stock
	}

	if err := r.DB.WithContext(ctx).Save(&poster).Error; err != nil {
		return nil, err
	}

	return &poster, nil
}

func (r *GormRepo) DeletePoster(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Poster{}, id)
	return notFoundIfNoRows(res)
}
