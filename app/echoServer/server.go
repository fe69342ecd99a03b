package echoServer

import (
	"log/slog"

	"shareit/app/echoServer/validation"

	"github.com/labstack/echo/v4"
)

// New builds the echo instance with codecs, middlewares and routes wired.
func New(log *slog.Logger, c C) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = Serializer{}
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(log)

	RegisterMiddlewares(e, log)
	Register(e, c)
	return e
}
