package handlers

import (
	"github.com/labstack/echo/v4"
	"strconv"
)

// parsePagination 映射前：第几页，每页限制多少个；映射后：页减一，限制不变
func (a *App) parsePagination(c echo.Context) (int, int) {
	var parsedPage, parsedLimit int

	if page, err := strconv.Atoi(c.QueryParam("page")); err != nil || page < 1 {
		parsedPage = 0
	} else {
		parsedPage = page - 1
	}

	if limit, err := strconv.Atoi(c.QueryParam("limit")); err != nil || limit <= 0 {
		parsedLimit = a.cfg.System.PageSize
	} else {
		parsedLimit = limit
	}

	return parsedPage, parsedLimit
}

func (a *App) calcMaxPage(count int64, limit int) int64 {
	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}
