package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/events"
	"github.com/kasperbn/poster_shop/internal/logging"
	"github.com/kasperbn/poster_shop/internal/service"
	"github.com/kasperbn/poster_shop/internal/transport"
)

type RatingHTTP struct {
	Svc      *service.RatingService
	Producer *events.Producer
}

func (h *RatingHTTP) GetRatings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.list")

	ratings, err := h.Svc.GetRatings(ctx)
	if err != nil {
		l.Error("list_ratings_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get ratings")
	}

	return c.JSON(http.StatusOK, ratings)
}

func (h *RatingHTTP) GetRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.get")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	rating, err := h.Svc.GetRating(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_rating_failed", "status", 404, "reason", "rating not found")
			return echo.NewHTTPError(http.StatusNotFound, "rating not found")
		}
		l.Error("get_rating_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get rating")
	}

	return c.JSON(http.StatusOK, rating)
}

func (h *RatingHTTP) GetRatingsByPoster(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.by_poster")

	posterID, err := parseID(c, "posterId")
	if err != nil {
		return err
	}

	ratings, err := h.Svc.GetRatingsByPoster(ctx, posterID)
	if err != nil {
		l.Error("get_ratings_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get ratings")
	}

	return c.JSON(http.StatusOK, ratings)
}

func (h *RatingHTTP) GetRatingsByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.by_user")

	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	ratings, err := h.Svc.GetRatingsByUser(ctx, userID)
	if err != nil {
		l.Error("get_ratings_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get ratings")
	}

	return c.JSON(http.StatusOK, ratings)
}

func (h *RatingHTTP) GetAverageRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.average")

	posterID, err := parseID(c, "posterId")
	if err != nil {
		return err
	}

	avg, err := h.Svc.AverageRating(ctx, posterID)
	if err != nil {
		l.Error("average_rating_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not compute average rating")
	}

	return c.JSON(http.StatusOK, avg)
}

func (h *RatingHTTP) CreateRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.create")

	var req transport.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_rating_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rating, replaced, err := h.Svc.Rate(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_rating_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "numStars must be between 1 and 5")
		}
		l.Error("create_rating_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save rating")
	}

	publish(c, h.Producer, events.TopicRatingEvents, fmt.Sprint(rating.UserID), map[string]any{
		"type":     "poster_rated",
		"userID":   rating.UserID,
		"posterID": rating.PosterID,
		"numStars": rating.NumStars,
		"replaced": replaced,
	})

	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	l.Info("create_rating_success", "rating_id", rating.ID, "replaced", replaced)
	return c.JSON(status, rating)
}

func (h *RatingHTTP) DeleteRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ratings.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteRating(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_rating_failed", "status", 404, "reason", "rating not found")
			return echo.NewHTTPError(http.StatusNotFound, "rating not found")
		}
		l.Error("delete_rating_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete rating")
	}

	publish(c, h.Producer, events.TopicRatingEvents, fmt.Sprint(id), map[string]any{
		"type":     "rating_deleted",
		"ratingID": id,
	})

	l.Info("delete_rating_success", "rating_id", id)
	return c.NoContent(http.StatusNoContent)
}
