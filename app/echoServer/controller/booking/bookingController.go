package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/app/echoServer/actor"
	"shareit/app/echoServer/controller"
	"shareit/model"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// Create a booking
// @Summary      Book someone else's available item
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int                  true  "Acting user"
// @Param        payload           body    model.BookingCreate  true  "Booking window and item"
// @Success      200  {object}  model.BookingFull
// @Failure      400  {object}  map[string]string "bad window or item unavailable"
// @Failure      403  {object}  map[string]string "own item"
// @Failure      404  {object}  map[string]string
// @Router       /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.BookingCreate
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	b, err := h.Svc.Create(c.Request().Context(), actor.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Approve or reject a booking
// @Summary      Owner decision on a WAITING booking
// @Tags         bookings
// @Produce      json
// @Param        X-Sharer-User-Id  header  int   true  "Acting user"
// @Param        id                path    int   true  "Booking id"
// @Param        approved          query   bool  true  "Approve when true"
// @Success      200  {object}  model.BookingFull
// @Failure      400  {object}  map[string]string "not WAITING"
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id} [patch]
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return apperr.Validation("invalid approved %q", c.QueryParam("approved"))
	}
	b, err := h.Svc.UpdateStatus(c.Request().Context(), actor.UserID(c), id, approved)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Get a booking
// @Summary      Booking visible to its booker or the item owner
// @Tags         bookings
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Acting user"
// @Param        id                path    int  true  "Booking id"
// @Success      200  {object}  model.BookingFull
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	b, err := h.Svc.Get(c.Request().Context(), actor.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// List own bookings
// @Summary      Bookings made by the acting user
// @Tags         bookings
// @Produce      json
// @Param        X-Sharer-User-Id  header  int     true   "Acting user"
// @Param        state             query   string  false  "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"  default(ALL)
// @Param        from              query   int     false  "Offset"  default(0)
// @Param        size              query   int     false  "Page size"  default(10)
// @Success      200  {array}  model.BookingFull
// @Failure      400  {object}  map[string]string "unknown state"
// @Router       /bookings [get]
func (h *Controller) ListMine(c echo.Context) error {
	from, size, err := controller.Paging(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.ListForBooker(c.Request().Context(), actor.UserID(c), c.QueryParam("state"), from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// List bookings on own items
// @Summary      Bookings of items owned by the acting user
// @Tags         bookings
// @Produce      json
// @Param        X-Sharer-User-Id  header  int     true   "Acting user"
// @Param        state             query   string  false  "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"  default(ALL)
// @Param        from              query   int     false  "Offset"  default(0)
// @Param        size              query   int     false  "Page size"  default(10)
// @Success      200  {array}  model.BookingFull
// @Failure      400  {object}  map[string]string "unknown state"
// @Router       /bookings/owner [get]
func (h *Controller) ListOwner(c echo.Context) error {
	from, size, err := controller.Paging(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.ListForOwner(c.Request().Context(), actor.UserID(c), c.QueryParam("state"), from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
