package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kasperbn/poster_shop/internal/events"
	"github.com/kasperbn/poster_shop/internal/logging"
)

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(v), nil
}

// publish sends a domain event best-effort: a broker failure is logged and
// never fails the request that triggered it.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx := c.Request().Context()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", topic, "error", err)
	}
}
