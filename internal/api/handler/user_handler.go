package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// UserHandler serves public profiles and the operator heatmap.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Get returns the public profile of username.
//
// @Summary      Public user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  publicUserView
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/v1/users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicUserView(user, viewer.ID))
}

// List returns public profiles ordered by experience.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        expert  query     bool  false  "Filter by expert status"
// @Success      200     {array}   publicUserView
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	var filter ports.UserFilter
	if raw := c.QueryParam("expert"); raw != "" {
		expert, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewValidationError("expert", "must be true or false")
		}
		filter.Expert = &expert
	}

	users, err := h.users.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	out := make([]publicUserView, 0, len(users))
	for _, u := range users {
		out = append(out, toPublicUserView(u, viewer.ID))
	}
	return c.JSON(http.StatusOK, out)
}

// MissionHeatmap counts completed missions per required place.
//
// @Summary      Mission completion heatmap
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   heatmapCellView
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/heatmap/missions [get]
func (h *UserHandler) MissionHeatmap(c echo.Context) error {
	cells, err := h.users.MissionHeatmap(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHeatmapViews(cells))
}
