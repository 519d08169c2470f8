package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/core/ports"
)

// ProfileHandler serves the /me routes of an authenticated user.
type ProfileHandler struct {
	users  ports.UserService
	visits ports.VisitService
}

func NewProfileHandler(users ports.UserService, visits ports.VisitService) *ProfileHandler {
	return &ProfileHandler{users: users, visits: visits}
}

// Me returns the caller's full profile.
//
// @Summary      Current user profile
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userView
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// UpdatePreferences replaces the ranking preferences of the caller.
//
// @Summary      Update preferences
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      preferencesRequest  true  "alsoPaid and categories, both required"
// @Success      200   {object}  userView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/me/preferences [post]
func (h *ProfileHandler) UpdatePreferences(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req preferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.users.UpdatePreferences(c.Request().Context(), user, ports.PreferencesInput{
		AlsoPaid:   req.AlsoPaid,
		Categories: req.Categories,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserView(updated))
}

// Visit records the caller's presence at a place.
//
// @Summary      Visit a place
// @Description  Accepted when the caller is within 20 meters of the place. Rejections answer 400
// @Description  with one of InvalidPlaceReference, InvalidCoordinates, PlaceNotFound,
// @Description  PlaceMissingLocation or OutOfRange.
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        placeId  query     string        true  "Place id"
// @Param        body     body      visitRequest  true  "Caller coordinates"
// @Success      200      {object}  visitResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /api/v1/me/visit [post]
func (h *ProfileHandler) Visit(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	// An unreadable body leaves both coordinates empty; the validator then
	// reports it in its usual order, after the place reference.
	var req visitRequest
	if err := c.Bind(&req); err != nil {
		req = visitRequest{}
	}

	result, err := h.visits.Visit(c.Request().Context(), user, ports.VisitClaim{
		PlaceRef: c.QueryParams()["placeId"],
		Lat:      rawCoordinate(req.Lat),
		Lon:      rawCoordinate(req.Lon),
	})
	if err != nil {
		recordVisitFailure(err)
		return err
	}

	recordVisit(result)
	return c.JSON(http.StatusOK, visitResponse{
		Success:           true,
		PlaceID:           result.PlaceID,
		Discovered:        result.Discovered,
		ExpGained:         result.ExpGained,
		CompletedMissions: nonNil(result.CompletedMissions),
		Exp:               result.Exp,
		Expert:            result.Expert,
	})
}
