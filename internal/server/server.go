package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Start はルートを登録してechoを起動する
func Start(
	addr string,
	cfg config.Config,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	shippingH *handler.ShippingHandler,
	addressH *handler.AddressHandler,
	adminOrderH *handler.AdminOrderHandler,
) error {
	e := echo.New()
	e.HideBanner = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	shippingH.RegisterRoutes(e, cfg)
	addressH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)

	return e.Start(addr)
}
