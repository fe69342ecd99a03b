package echoServer

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

var statusByCode = map[apperr.ErrCode]int{
	apperr.ErrValidation:  http.StatusBadRequest,
	apperr.ErrState:       http.StatusBadRequest,
	apperr.ErrUnavailable: http.StatusBadRequest,
	apperr.ErrNotFound:    http.StatusNotFound,
	apperr.ErrConflict:    http.StatusConflict,
	apperr.ErrForbidden:   http.StatusForbidden,
}

// ErrorHandler writes every failure as {"error": msg}. Uncoded errors are
// logged and hidden behind a generic 500.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, "internal error"
		var he *echo.HTTPError
		switch {
		case apperr.Code(err) != "":
			status, msg = statusByCode[apperr.Code(err)], err.Error()
		case errors.As(err, &he):
			status = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			} else {
				msg = http.StatusText(he.Code)
			}
		default:
			log.Error("request failed",
				"err", err,
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"path", c.Path(),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"error": msg})
		}
		if err != nil {
			log.Error("write error response", "err", err)
		}
	}
}
