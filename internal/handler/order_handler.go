package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
	m        *metrics.CheckoutMetrics
}

func NewOrderHandler(checkout *usecase.CheckoutUsecase, orders *usecase.OrderUsecase, m *metrics.CheckoutMetrics) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, m: m}
}

type CheckoutRequest struct {
	FulfillmentType    string `json:"fulfillment_type"`
	AddressID          int64  `json:"address_id"`
	TotalCheckoutPrice int64  `json:"total_checkout_price"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/checkout", h.checkoutHandler)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) checkoutHandler(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.checkout.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		FulfillmentType:    req.FulfillmentType,
		AddressID:          req.AddressID,
		TotalCheckoutPrice: req.TotalCheckoutPrice,
	})
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok && he.Status == http.StatusBadGateway && out.Order.ID > 0 {
			// 注文はcommit済みで決済準備だけ失敗したケース。
			// 注文本体を添えて返し、クライアントが決済を再試行できるようにする。
			h.m.OrdersPlaced.WithLabelValues(out.Order.FulfillmentType).Inc()
			return c.JSON(http.StatusBadGateway, map[string]interface{}{
				"error": he.Message,
				"order": out.Order,
			})
		}
		h.m.CheckoutFailures.WithLabelValues(strconv.Itoa(errStatus(err))).Inc()
		return writeError(c, err)
	}

	h.m.OrdersPlaced.WithLabelValues(out.Order.FulfillmentType).Inc()
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.orders.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orders.GetMyOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func errStatus(err error) int {
	if he, ok := usecase.AsHTTPError(err); ok {
		return he.Status
	}
	return http.StatusInternalServerError
}
