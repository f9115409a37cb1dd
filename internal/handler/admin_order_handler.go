package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page == 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit == 0 {
		limit = 20
	}

	out, err := h.uc.ListAll(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), adminID, id, usecase.UpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
