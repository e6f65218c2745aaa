package handlers

import (
	"bulletin-board/app/server/types"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

// erFields 用于校验失败：带字段级错误报告的 400 响应
func (a *App) erFields(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, &types.ErrorMessage{
		Message: http.StatusText(http.StatusBadRequest),
		Fields:  fields,
	})
}
