package server

import (
	"orderhub/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health *handler.HealthHandler
	Cart   *handler.CartHandler
	Order  *handler.OrderHandler
	Review *handler.ReviewHandler
}

// auth は AuthJWT + AccountGuard
func RegisterRoutes(e *echo.Echo, h Handlers, auth ...echo.MiddlewareFunc) {
	h.Health.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, auth...)
	h.Order.RegisterRoutes(e, auth...)
	h.Review.RegisterRoutes(e, auth...)
}
