package service

import (
	"context"
	"fmt"

	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/repo"
	"github.com/kasperbn/poster_shop/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCartlines(ctx context.Context) ([]models.Cartline, error) {
	return s.Repo.GetCartlines(ctx)
}

func (s *CartService) GetCartlinesByUser(ctx context.Context, userID uint) ([]models.Cartline, error) {
	return s.Repo.GetCartlinesByUser(ctx, userID)
}

func (s *CartService) GetCartline(ctx context.Context, id uint) (*models.Cartline, error) {
	return s.Repo.GetCartline(ctx, id)
}

// AddToCart upserts a cart line: an existing (user, poster) line has the
// requested quantity added to it, otherwise a new line is inserted.
// merged reports which of the two happened.
func (s *CartService) AddToCart(ctx context.Context, req transport.CreateCartlineRequest) (*models.Cartline, bool, error) {
	if req.UserID == 0 || req.PosterID == 0 || req.Quantity == 0 {
		return nil, false, fmt.Errorf("userId, posterId and quantity are required: %w", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, false, fmt.Errorf("quantity must be greater than 0: %w", ErrValidation)
	}

	line := models.Cartline{
		UserID:   req.UserID,
		PosterID: req.PosterID,
		Quantity: req.Quantity,
	}

	merged, err := s.Repo.AddOrMergeCartline(ctx, &line)
	if err != nil {
		return nil, false, err
	}
	return &line, merged, nil
}

func (s *CartService) UpdateCartline(ctx context.Context, id uint, req transport.UpdateCartlineRequest) (*models.Cartline, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0: %w", ErrValidation)
	}

	return s.Repo.UpdateCartlineQuantity(ctx, id, req.Quantity)
}

func (s *CartService) DeleteCartline(ctx context.Context, id uint) error {
	return s.Repo.DeleteCartline(ctx, id)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
