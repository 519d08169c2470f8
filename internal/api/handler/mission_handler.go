package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/core/ports"
)

// MissionHandler serves the mission catalog and activation routes.
type MissionHandler struct {
	missions ports.MissionService
}

func NewMissionHandler(missions ports.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

// List returns every mission.
//
// @Summary      List missions
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   missionView
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/missions [get]
func (h *MissionHandler) List(c echo.Context) error {
	missions, err := h.missions.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMissionViews(missions))
}

// Available returns the missions the caller has not activated yet.
//
// @Summary      Available missions
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   missionView
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/missions/available [get]
func (h *MissionHandler) Available(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	missions, err := h.missions.Available(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMissionViews(missions))
}

// Activate starts tracking a mission for the caller.
//
// @Summary      Activate a mission
// @Tags         missions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      activateMissionRequest  true  "Mission to activate"
// @Success      200   {object}  userView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/missions/activate [post]
func (h *MissionHandler) Activate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req activateMissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.missions.Activate(c.Request().Context(), user, req.MissionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(updated))
}

// Remove drops a mission from the caller's progress list.
//
// @Summary      Remove an active mission
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Param        missionId  path      string  true  "Mission id"
// @Success      200        {object}  userView
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/v1/missions/{missionId} [delete]
func (h *MissionHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	updated, err := h.missions.Remove(c.Request().Context(), user, c.Param("missionId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(updated))
}

// Create adds a mission to the catalog. Operator only.
//
// @Summary      Create a mission
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMissionRequest  true  "Mission definition"
// @Success      201   {object}  missionView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/missions [post]
func (h *MissionHandler) Create(c echo.Context) error {
	var req createMissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mission, err := h.missions.Create(c.Request().Context(), toCreateMissionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMissionView(mission))
}
