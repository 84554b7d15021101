package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.Category.RegisterRoutes(e, cfg)
	h.Subcategory.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
}
