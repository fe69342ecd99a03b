// Package actor carries the acting user id from the request header into the
// echo context.
package actor

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	Header = "X-Sharer-User-Id"
	ctxKey = "user_id"
)

var (
	ErrMissing = errors.New("missing " + Header + " header")
	ErrInvalid = errors.New("invalid " + Header + " header")
)

// Parse reads the acting user id from the request header.
func Parse(c echo.Context) (int64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(Header))
	if raw == "" {
		return 0, ErrMissing
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalid
	}
	return id, nil
}

func Set(c echo.Context, id int64) { c.Set(ctxKey, id) }

// UserID returns the id stored by the acting user middleware.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(ctxKey).(int64)
	return id
}
