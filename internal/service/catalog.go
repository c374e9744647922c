package service

import (
	"context"
	"fmt"

	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/repo"
	"github.com/kasperbn/poster_shop/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetPosters(ctx context.Context, offset, limit int) (int64, []models.Poster, error) {
	return s.Repo.GetPosters(ctx, offset, limit)
}

func (s *CatalogService) GetPoster(ctx context.Context, id uint) (*models.Poster, error) {
	return s.Repo.GetPoster(ctx, id)
}

func (s *CatalogService) GetPosterBySlug(ctx context.Context, slug string) (*models.Poster, error) {
	return s.Repo.GetPosterBySlug(ctx, slug)
}

func (s *CatalogService) CreatePoster(ctx context.Context, req transport.CreatePosterRequest) (*models.Poster, error) {
	if req.Name == "" || req.Slug == "" || req.Description == "" || req.Image == "" ||
		req.Width == 0 || req.Height == 0 || req.Price == 0 || req.Stock == nil {
		return nil, fmt.Errorf("name, slug, description, image, width, height, price and stock are required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	poster := models.Poster{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		Width:       req.Width,
		Height:      req.Height,
		Price:       req.Price,
		Stock:       *req.Stock,
	}

	if err := s.Repo.CreatePoster(ctx, &poster); err != nil {
		return nil, err
	}
	return &poster, nil
}

func (s *CatalogService) PatchPoster(ctx context.Context, req transport.PatchPosterRequest, id uint) (*models.Poster, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	return s.Repo.PatchPoster(ctx, req, id)
}

func (s *CatalogService) DeletePoster(ctx context.Context, id uint) error {
	return s.Repo.DeletePoster(ctx, id)
}

func (s *CatalogService) GetGenres(ctx context.Context) ([]models.Genre, error) {
	return s.Repo.GetGenres(ctx)
}

func (s *CatalogService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	return s.Repo.GetGenre(ctx, id)
}

func (s *CatalogService) GetGenreBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	return s.Repo.GetGenreBySlug(ctx, slug)
}

func (s *CatalogService) CreateGenre(ctx context.Context, req transport.CreateGenreRequest) (*models.Genre, error) {
	if req.Title == "" || req.Slug == "" {
		return nil, fmt.Errorf("title and slug are required: %w", ErrValidation)
	}

	genre := models.Genre{Title: req.Title, Slug: req.Slug}
	if err := s.Repo.CreateGenre(ctx, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (s *CatalogService) PatchGenre(ctx context.Context, req transport.PatchGenreRequest, id uint) (*models.Genre, error) {
	return s.Repo.PatchGenre(ctx, req, id)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, id uint) error {
	return s.Repo.DeleteGenre(ctx, id)
}
