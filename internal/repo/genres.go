package repo

import (
	"context"

	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/transport"
)

func (r *GormRepo) GetGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.DB.WithContext(ctx).
		Preload("Posters.Poster").
		Order("id ASC").
		Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GormRepo) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.DB.WithContext(ctx).
		Preload("Posters.Poster").
		First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GormRepo) GetGenreBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.DB.WithContext(ctx).
		Preload("Posters.Poster").
		Where("slug = ?", slug).
		First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GormRepo) CreateGenre(ctx context.Context, genre *models.Genre) error {
	return r.DB.WithContext(ctx).Create(genre).Error
}

func (r *GormRepo) PatchGenre(ctx context.Context, req transport.PatchGenreRequest, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.DB.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, err
	}

	if req.Title != nil {
		genre.Title = *req.Title
	}
	if req.Slug != nil {
		genre.Slug = *req.Slug
	}

	if err := r.DB.WithContext(ctx).Save(&genre).Error; err != nil {
		return nil, err
	}

	return &genre, nil
}

func (r *GormRepo) DeleteGenre(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Genre{}, id)
	return notFoundIfNoRows(res)
}
