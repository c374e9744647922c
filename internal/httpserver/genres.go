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

type GenreHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *GenreHTTP) GetGenres(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres.list")

	genres, err := h.Svc.GetGenres(ctx)
	if err != nil {
		l.Error("list_genres_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get genres")
	}

	return c.JSON(http.StatusOK, genres)
}

func (h *GenreHTTP) GetGenre(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres.get")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	genre, err := h.Svc.GetGenre(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_genre_failed", "status", 404, "reason", "genre not found")
			return echo.NewHTTPError(http.StatusNotFound, "genre not found")
		}
		l.Error("get_genre_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get genre")
	}

	return c.JSON(http.StatusOK, genre)
}

func (h *GenreHTTP) GetGenreBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres.get_by_slug")

	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug is required")
	}

	genre, err := h.Svc.GetGenreBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_genre_failed", "status", 404, "reason", "genre not found", "slug", slug)
			return echo.NewHTTPError(http.StatusNotFound, "genre not found")
		}
		l.Error("get_genre_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get genre")
	}

	return c.JSON(http.StatusOK, genre)
}

func (h *GenreHTTP) CreateGenre(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres.create")

	var req transport.CreateGenreRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_genre_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	genre, err := h.Svc.CreateGenre(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_genre_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "title and slug are required")
		}
		l.Error("create_genre_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create genre")
	}

	publish(c, h.Producer, events.TopicPosterEvents, fmt.Sprint(genre.ID), map[string]any{
		"type":    "genre_created",
		"genreID": genre.ID,
		"title":   genre.Title,
	})

	l.Info("create_genre_success", "genre_id", genre.ID)
	return c.JSON(http.StatusCreated, genre)
}

func (h *GenreHTTP) PatchGenre(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchGenreRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_genre_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	genre, err := h.Svc.PatchGenre(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("patch_genre_failed", "status", 404, "reason", "genre not found")
			return echo.NewHTTPError(http.StatusNotFound, "genre not found")
		}
		l.Error("patch_genre_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update genre")
	}

	l.Info("patch_genre_success", "genre_id", id)
	return c.JSON(http.StatusOK, genre)
}

func (h *GenreHTTP) DeleteGenre(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteGenre(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_genre_failed", "status", 404, "reason", "genre not found")
			return echo.NewHTTPError(http.StatusNotFound, "genre not found")
		}
		l.Error("delete_genre_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete genre")
	}

	publish(c, h.Producer, events.TopicPosterEvents, fmt.Sprint(id), map[string]any{
		"type":    "genre_deleted",
		"genreID": id,
	})

	l.Info("delete_genre_success", "genre_id", id)
	return c.NoContent(http.StatusNoContent)
}
