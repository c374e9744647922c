package service

import (
	"context"
	"fmt"
	"math"

	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/repo"
	"github.com/kasperbn/poster_shop/internal/transport"
)

type RatingService struct {
	Repo *repo.GormRepo
}

func (s *RatingService) GetRatings(ctx context.Context) ([]models.UserRating, error) {
	return s.Repo.GetRatings(ctx)
}

func (s *RatingService) GetRatingsByPoster(ctx context.Context, posterID uint) ([]models.UserRating, error) {
	return s.Repo.GetRatingsByPoster(ctx, posterID)
}

func (s *RatingService) GetRatingsByUser(ctx context.Context, userID uint) ([]models.UserRating, error) {
	return s.Repo.GetRatingsByUser(ctx, userID)
}

func (s *RatingService) GetRating(ctx context.Context, id uint) (*models.UserRating, error) {
	return s.Repo.GetRating(ctx, id)
}

// Rate upserts a rating with replace semantics: a second rating by the same
// user for the same poster overwrites the stars instead of adding a row.
func (s *RatingService) Rate(ctx context.Context, req transport.CreateRatingRequest) (*models.UserRating, bool, error) {
	if req.UserID == 0 || req.PosterID == 0 || req.NumStars == nil {
		return nil, false, fmt.Errorf("userId, posterId and numStars are required: %w", ErrValidation)
	}
	if *req.NumStars < 1 || *req.NumStars > 5 {
		return nil, false, fmt.Errorf("numStars must be between 1 and 5: %w", ErrValidation)
	}

	rating := models.UserRating{
		UserID:   req.UserID,
		PosterID: req.PosterID,
		NumStars: *req.NumStars,
	}

	replaced, err := s.Repo.SetRating(ctx, &rating)
	if err != nil {
		return nil, false, err
	}
	return &rating, replaced, nil
}

func (s *RatingService) DeleteRating(ctx context.Context, id uint) error {
	return s.Repo.DeleteRating(ctx, id)
}

// AverageRating computes the mean stars for a poster rounded to one decimal.
// A poster with no ratings yields 0/0 rather than a division by zero.
func (s *RatingService) AverageRating(ctx context.Context, posterID uint) (*transport.AverageRatingResponse, error) {
	ratings, err := s.Repo.GetRatingsByPoster(ctx, posterID)
	if err != nil {
		return nil, err
	}

	resp := transport.AverageRatingResponse{PosterID: posterID}
	if len(ratings) == 0 {
		return &resp, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r.NumStars
	}
	avg := float64(sum) / float64(len(ratings))

	resp.AverageRating = math.Round(avg*10) / 10
	resp.TotalRatings = len(ratings)
	return &resp, nil
}
