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

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) GetCartlines(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.list")

	lines, err := h.Svc.GetCartlines(ctx)
	if err != nil {
		l.Error("list_cartlines_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get cartlines")
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) GetCartlinesByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.by_user")

	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	lines, err := h.Svc.GetCartlinesByUser(ctx, userID)
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get cart")
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) GetCartline(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.get")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	line, err := h.Svc.GetCartline(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_cartline_failed", "status", 404, "reason", "cartline not found")
			return echo.NewHTTPError(http.StatusNotFound, "cartline not found")
		}
		l.Error("get_cartline_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get cartline")
	}

	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) CreateCartline(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.create")

	var req transport.CreateCartlineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_cartline_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, merged, err := h.Svc.AddToCart(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_cartline_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "userId, posterId and quantity are required")
		}
		l.Error("create_cartline_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not add to cart")
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(line.UserID), map[string]any{
		"type":     "cartline_added",
		"userID":   line.UserID,
		"posterID": line.PosterID,
		"quantity": line.Quantity,
		"merged":   merged,
	})

	// merged lines come back 200, fresh inserts 201
	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	l.Info("create_cartline_success", "cartline_id", line.ID, "merged", merged)
	return c.JSON(status, line)
}

func (h *CartHTTP) UpdateCartline(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.update")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateCartlineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cartline_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, err := h.Svc.UpdateCartline(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_cartline_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_cartline_failed", "status", 404, "reason", "cartline not found")
			return echo.NewHTTPError(http.StatusNotFound, "cartline not found")
		}
		l.Error("update_cartline_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update cartline")
	}

	l.Info("update_cartline_success", "cartline_id", id)
	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) DeleteCartline(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCartline(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_cartline_failed", "status", 404, "reason", "cartline not found")
			return echo.NewHTTPError(http.StatusNotFound, "cartline not found")
		}
		l.Error("delete_cartline_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete cartline")
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(id), map[string]any{
		"type":       "cartline_deleted",
		"cartlineID": id,
	})

	l.Info("delete_cartline_success", "cartline_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cartlines.clear")

	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not clear cart")
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	l.Info("clear_cart_success", "user_id", userID)
	return c.NoContent(http.StatusNoContent)
}
