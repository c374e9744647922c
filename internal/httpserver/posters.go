package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/events"
	"github.com/kasperbn/poster_shop/internal/logging"
	"github.com/kasperbn/poster_shop/internal/search"
	"github.com/kasperbn/poster_shop/internal/service"
	"github.com/kasperbn/poster_shop/internal/transport"
	"github.com/kasperbn/poster_shop/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	Indexer  *search.Indexer
}

func (h *CatalogHTTP) GetPosters(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetPosters(ctx, offset, limit)
	if err != nil {
		l.Error("list_posters_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get posters")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) GetPoster(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.get")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	poster, err := h.Svc.GetPoster(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_poster_failed", "status", 404, "reason", "poster not found")
			return echo.NewHTTPError(http.StatusNotFound, "poster not found")
		}
		l.Error("get_poster_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get poster")
	}

	return c.JSON(http.StatusOK, poster)
}

func (h *CatalogHTTP) GetPosterBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.get_by_slug")

	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug is required")
	}

	poster, err := h.Svc.GetPosterBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_poster_failed", "status", 404, "reason", "poster not found", "slug", slug)
			return echo.NewHTTPError(http.StatusNotFound, "poster not found")
		}
		l.Error("get_poster_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get poster")
	}

	return c.JSON(http.StatusOK, poster)
}

func (h *CatalogHTTP) SearchPosters(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	if !h.Indexer.Enabled() {
		return echo.NewHTTPError(http.StatusInternalServerError, "search is not configured")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, posters, err := search.Search(ctx, h.Indexer.ES, h.Indexer.Index, q, from, limit)
	if err != nil {
		l.Error("search_posters_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "posters": posters})
}

func (h *CatalogHTTP) CreatePoster(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.create")

	var req transport.CreatePosterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_poster_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	poster, err := h.Svc.CreatePoster(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_poster_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "all poster fields are required")
		}
		l.Error("create_poster_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create poster")
	}

	if err := h.Indexer.IndexPoster(ctx, poster); err != nil {
		l.Warn("poster_index_failed", "poster_id", poster.ID, "error", err)
	}

	publish(c, h.Producer, events.TopicPosterEvents, fmt.Sprint(poster.ID), map[string]any{
		"type":     "poster_created",
		"posterID": poster.ID,
		"name":     poster.Name,
	})

	l.Info("create_poster_success", "poster_id", poster.ID)
	return c.JSON(http.StatusCreated, poster)
}

func (h *CatalogHTTP) PatchPoster(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchPosterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_poster_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	poster, err := h.Svc.PatchPoster(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("patch_poster_failed", "status", 404, "reason", "poster not found")
			return echo.NewHTTPError(http.StatusNotFound, "poster not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("patch_poster_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("patch_poster_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update poster")
	}

	if err := h.Indexer.IndexPoster(ctx, poster); err != nil {
		l.Warn("poster_index_failed", "poster_id", poster.ID, "error", err)
	}

	publish(c, h.Producer, events.TopicPosterEvents, fmt.Sprint(poster.ID), map[string]any{
		"type":     "poster_updated",
		"posterID": poster.ID,
		"name":     poster.Name,
	})

	l.Info("patch_poster_success", "poster_id", id)
	return c.JSON(http.StatusOK, poster)
}

func (h *CatalogHTTP) DeletePoster(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posters.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeletePoster(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_poster_failed", "status", 404, "reason", "poster not found")
			return echo.NewHTTPError(http.StatusNotFound, "poster not found")
		}
		l.Error("delete_poster_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete poster")
	}

	if err := h.Indexer.RemovePoster(ctx, id); err != nil {
		l.Warn("poster_index_remove_failed", "poster_id", id, "error", err)
	}

	publish(c, h.Producer, events.TopicPosterEvents, fmt.Sprint(id), map[string]any{
		"type":     "poster_deleted",
		"posterID": id,
	})

	l.Info("delete_poster_success", "poster_id", id)
	return c.NoContent(http.StatusNoContent)
}
