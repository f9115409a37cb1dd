package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ShippingHandler struct {
	uc *usecase.ShippingUsecase
	m  *metrics.CheckoutMetrics
}

func NewShippingHandler(uc *usecase.ShippingUsecase, m *metrics.CheckoutMetrics) *ShippingHandler {
	return &ShippingHandler{uc: uc, m: m}
}

type ShippingCostRequest struct {
	AddressID int64 `json:"address_id"`
}

func (h *ShippingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/shipping")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/cost", h.cost)
}

func (h *ShippingHandler) cost(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ShippingCostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CalculateFee(c.Request().Context(), req.AddressID)
	if err != nil {
		return writeError(c, err)
	}

	h.m.ShippingQuotes.Inc()
	return c.JSON(http.StatusOK, out)
}
