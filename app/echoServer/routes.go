package echoServer

import (
	"net/http"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.Get)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	// Acting user required
	items := e.Group("/items", ActingUser())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.ListMine)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.PATCH("/:id", c.Item.Update)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", ActingUser())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.ListMine)
	bookings.GET("/owner", c.Booking.ListOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.PATCH("/:id", c.Booking.UpdateStatus)

	requests := e.Group("/requests", ActingUser())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ListMine)
	requests.GET("/all", c.Request.ListOthers)
	requests.GET("/:id", c.Request.Get)
}
