package item

import (
	"log/slog"
	"net/http"

	"shareit/app/echoServer/actor"
	"shareit/app/echoServer/controller"
	"shareit/model"
	itemsvc "shareit/service/item"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
	Log *slog.Logger
}

// Create an item
// @Summary      List an item for sharing
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int               true  "Acting user"
// @Param        payload           body    model.ItemCreate  true  "Item payload"
// @Success      200  {object}  model.Item
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string "owner or request not found"
// @Router       /items [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.ItemCreate
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	it, err := h.Svc.Create(c.Request().Context(), actor.UserID(c), req)
	if err != nil {
		return err
	}
	h.Log.Info("item created", "item_id", it.ID, "owner_id", it.OwnerID)
	return c.JSON(http.StatusOK, it)
}

// Update an item
// @Summary      Patch own item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int              true  "Acting user"
// @Param        id                path    int              true  "Item id"
// @Param        payload           body    model.ItemPatch  true  "Fields to change"
// @Success      200  {object}  model.Item
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [patch]
func (h *Controller) Update(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	var req model.ItemPatch
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	it, err := h.Svc.Update(c.Request().Context(), actor.UserID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

// Get an item
// @Summary      Item with comments; the owner also sees last and next bookings
// @Tags         items
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Acting user"
// @Param        id                path    int  true  "Item id"
// @Success      200  {object}  model.ItemDetail
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	d, err := h.Svc.Get(c.Request().Context(), actor.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// List own items
// @Summary      Items of the acting user
// @Tags         items
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true   "Acting user"
// @Param        from              query   int  false  "Offset"  default(0)
// @Param        size              query   int  false  "Page size"  default(10)
// @Success      200  {array}  model.ItemDetail
// @Router       /items [get]
func (h *Controller) ListMine(c echo.Context) error {
	from, size, err := controller.Paging(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.ListForOwner(c.Request().Context(), actor.UserID(c), from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Search items
// @Summary      Available items whose name or description contains text
// @Tags         items
// @Produce      json
// @Param        X-Sharer-User-Id  header  int     true   "Acting user"
// @Param        text              query   string  false  "Search text"
// @Param        from              query   int     false  "Offset"  default(0)
// @Param        size              query   int     false  "Page size"  default(10)
// @Success      200  {array}  model.Item
// @Router       /items/search [get]
func (h *Controller) Search(c echo.Context) error {
	from, size, err := controller.Paging(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Comment on an item
// @Summary      Comment on an item the acting user has finished renting
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int                  true  "Acting user"
// @Param        id                path    int                  true  "Item id"
// @Param        payload           body    model.CommentCreate  true  "Comment"
// @Success      200  {object}  model.Comment
// @Failure      400  {object}  map[string]string "no finished booking"
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/comment [post]
func (h *Controller) AddComment(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	var req model.CommentCreate
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	cm, err := h.Svc.AddComment(c.Request().Context(), actor.UserID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cm)
}
