package user

import (
	"log/slog"
	"net/http"

	"shareit/app/echoServer/controller"
	"shareit/model"
	usersvc "shareit/service/user"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// Create a user
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.UserCreate  true  "User payload"
// @Success      200  {object}  model.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string "email already registered"
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.UserCreate
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	u, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	h.Log.Info("user created", "user_id", u.ID)
	return c.JSON(http.StatusOK, u)
}

// Update a user
// @Summary      Patch user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path  int              true  "User id"
// @Param        payload  body  model.UserPatch  true  "Fields to change"
// @Success      200  {object}  model.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *Controller) Update(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	var req model.UserPatch
	if err := controller.Bind(c, &req); err != nil {
		return err
	}
	u, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Get a user
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  model.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// List users
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  model.User
// @Router       /users [get]
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Delete a user
// @Summary      Delete user
// @Tags         users
// @Param        id  path  int  true  "User id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	id, err := controller.PathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	h.Log.Info("user deleted", "user_id", id)
	return c.NoContent(http.StatusOK)
}
