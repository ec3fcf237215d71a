package server

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api")

	h.Orders.RegisterRoutes(api)
	h.Payments.RegisterRoutes(api)
	h.Webhooks.RegisterRoutes(api)
	h.Download.RegisterRoutes(api)
}
