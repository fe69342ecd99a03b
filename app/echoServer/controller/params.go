// Package controller holds request parsing shared by the resource controllers.
package controller

import (
	"strconv"

	"shareit/util/apperr"
	"shareit/util/page"

	"github.com/labstack/echo/v4"
)

// PathID parses the :id path parameter.
func PathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// Paging reads from and size query parameters, defaulting to the first page
// of page.DefaultSize. Range checks are left to page.New in the services.
func Paging(c echo.Context) (from, size int, err error) {
	from, size = page.DefaultFrom, page.DefaultSize
	if v := c.QueryParam("from"); v != "" {
		if from, err = strconv.Atoi(v); err != nil {
			return 0, 0, apperr.Validation("invalid from %q", v)
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return 0, 0, apperr.Validation("invalid size %q", v)
		}
	}
	return from, size, nil
}

// Bind decodes and validates the request body into dst.
func Bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
