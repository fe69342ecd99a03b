package request

import (
	"log/slog"
	"net/http"

	"shareit/app/echoServer/actor"
	"shareit/app/echoServer/controller"
	"shareit/model"
	requestsvc "shareit/service/request"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

// Create an item request
// @Summary      Ask for an item nobody lists yet
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int                  true  "Acting user"
// @Param        payload           body    model.RequestCreate  true  "What is needed"
// @Success      200  {object}  model.ItemRequest
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string "a matching item is already listed"
// @Router       /requests [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.RequestCreate
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	rq, err := h.Svc.Create(c.Request().Context(), actor.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rq)
}

// List own requests
// @Summary      Requests of the acting user, newest first
// @Tags         requests
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Acting user"
// @Success      200  {array}  model.ItemRequest
// @Router       /requests [get]
func (h *Controller) ListMine(c echo.Context) error {
	out, err := h.Svc.ListMine(c.Request().Context(), actor.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// List other users' requests
// @Summary      Requests of everyone else, newest first
// @Tags         requests
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true   "Acting user"
// @Param        from              query   int  false  "Offset"  default(0)
// @Param        size              query   int  false  "Page size"  default(10)
// @Success      200  {array}  model.ItemRequest
// @Router       /requests/all [get]
func (h *Controller) ListOthers(c echo.Context) error {
	from, size, err := controller.Paging(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.ListOthers(c.Request().Context(), actor.UserID(c), from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get an item request
// @Summary      Request with the items listed in response
// @Tags         requests
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Acting user"
// @Param        id                path    int  true  "Request id"
// @Success      200  {object}  model.ItemRequest
// @Failure      404  {object}  map[string]string
// @Router       /requests/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	rq, err := h.Svc.Get(c.Request().Context(), actor.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rq)
}
