package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

func (h *AddressHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/addresses")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id/default", h.setDefault)
	g.DELETE("/:id", h.delete)
}

func (h *AddressHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AddressHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.AddressCreateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AddressHandler) setDefault(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.SetDefault(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
