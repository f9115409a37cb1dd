package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AuthJWTの後ろに置く。roleがADMIN以外は403。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxUserRoleKey).(string)
			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
