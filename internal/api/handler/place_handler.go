package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// PlaceHandler serves catalog reads and place submissions.
type PlaceHandler struct {
	places     ports.PlaceService
	moderation ports.ModerationService
}

func NewPlaceHandler(places ports.PlaceService, moderation ports.ModerationService) *PlaceHandler {
	return &PlaceHandler{places: places, moderation: moderation}
}

// Nearby lists undiscovered places matching the caller's preferences,
// nearest first when coordinates are given.
//
// @Summary      Nearby places
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        lat     query     number  false  "Caller latitude"
// @Param        lon     query     number  false  "Caller longitude"
// @Param        radius  query     number  false  "Search radius in km (default 5)"
// @Success      200     {array}   placeView
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/v1/places [get]
func (h *PlaceHandler) Nearby(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var q ports.NearbyQuery
	if q.Lat, err = optionalFloat(c, "lat"); err != nil {
		return err
	}
	if q.Lon, err = optionalFloat(c, "lon"); err != nil {
		return err
	}
	radius, err := optionalFloat(c, "radius")
	if err != nil {
		return err
	}
	if radius != nil {
		q.Radius = *radius
	}

	ranked, err := h.places.Nearby(c.Request().Context(), user, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRankedPlaceViews(ranked))
}

// Get returns a single place.
//
// @Summary      Get a place
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Place id"
// @Success      200  {object}  placeView
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/places/{id} [get]
func (h *PlaceHandler) Get(c echo.Context) error {
	place, err := h.places.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlaceView(place))
}

// SubmitNew stages a new place for moderation. Expert users only.
//
// @Summary      Propose a new place
// @Tags         places
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeRequest  true  "Place fields"
// @Success      201   {object}  placeRequestView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/places/request [post]
func (h *PlaceHandler) SubmitNew(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req placeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	in, err := toPlaceInput(req)
	if err != nil {
		return err
	}

	staged, err := h.moderation.SubmitNewPlace(c.Request().Context(), user, in)
	if err != nil {
		return err
	}
	recordSubmission(true)
	return c.JSON(http.StatusCreated, toPlaceRequestView(staged))
}

// SubmitEdit stages changes to an existing place. Expert users only.
//
// @Summary      Propose a place edit
// @Tags         places
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Place id"
// @Param        body  body      placeRequest  true  "Changed fields"
// @Success      201   {object}  placeRequestView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/places/{id} [put]
func (h *PlaceHandler) SubmitEdit(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req placeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	in, err := toPlaceInput(req)
	if err != nil {
		return err
	}

	staged, err := h.moderation.SubmitEdit(c.Request().Context(), user, c.Param("id"), in)
	if err != nil {
		return err
	}
	recordSubmission(false)
	return c.JSON(http.StatusCreated, toPlaceRequestView(staged))
}

// optionalFloat parses the query parameter name. Absent yields nil.
func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, domain.NewValidationError(name, "must be a number")
	}
	return &v, nil
}
