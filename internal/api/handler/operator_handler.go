package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// OperatorHandler serves the moderation queue.
type OperatorHandler struct {
	moderation ports.ModerationService
}

func NewOperatorHandler(moderation ports.ModerationService) *OperatorHandler {
	return &OperatorHandler{moderation: moderation}
}

// Me returns the authenticated operator.
//
// @Summary      Current operator
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  operatorView
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/operator/me [get]
func (h *OperatorHandler) Me(c echo.Context) error {
	op, err := currentOperator(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOperatorView(op))
}

// ListRequests returns place edit requests, newest first.
//
// @Summary      List place requests
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Param        placeId     query     string  false  "Target place id"
// @Param        status      query     string  false  "pending, approved or rejected"
// @Param        isNewPlace  query     bool    false  "Only new-place (true) or edit (false) requests"
// @Success      200         {array}   placeRequestView
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /api/v1/operator/place_requests [get]
func (h *OperatorHandler) ListRequests(c echo.Context) error {
	filter := ports.PlaceRequestFilter{PlaceID: c.QueryParam("placeId")}

	if raw := c.QueryParam("status"); raw != "" {
		status, err := domain.ParseRequestStatus(raw)
		if err != nil {
			return domain.NewValidationError("status", "must be pending, approved or rejected")
		}
		filter.Status = status
	}
	if raw := c.QueryParam("isNewPlace"); raw != "" {
		isNew, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewValidationError("isNewPlace", "must be true or false")
		}
		filter.IsNewPlace = &isNew
	}

	requests, err := h.moderation.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlaceRequestViews(requests))
}

// GetRequest returns a single place edit request.
//
// @Summary      Get a place request
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  placeRequestView
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/operator/place_requests/{id} [get]
func (h *OperatorHandler) GetRequest(c echo.Context) error {
	req, err := h.moderation.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlaceRequestView(req))
}

// DecideRequest approves or rejects a pending request.
//
// @Summary      Decide a place request
// @Description  Approval applies the changes and rewards the submitter (30 exp for a new place, 10 for an edit).
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Request id"
// @Param        body  body      decisionRequest  true  "Decision"
// @Success      200   {object}  decisionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/operator/place_requests/{id} [patch]
func (h *OperatorHandler) DecideRequest(c echo.Context) error {
	op, err := currentOperator(c)
	if err != nil {
		return err
	}

	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.moderation.Decide(c.Request().Context(), op, c.Param("id"), ports.DecisionInput{
		Status:  req.Status,
		Comment: req.OperatorComment,
	})
	if err != nil {
		return err
	}

	recordDecision(result)
	return c.JSON(http.StatusOK, toDecisionResponse(result))
}
