package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	PlaceID string `json:"placeId,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Typed errors carry their own payload.
	var rejected *domain.VisitRejectedError
	if errors.As(err, &rejected) {
		return http.StatusBadRequest, errorResponse{Error: string(rejected.Reason)}
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, errorResponse{Error: invalid.Error()}
	}
	var dup *domain.DuplicatePlaceError
	if errors.As(err, &dup) {
		return http.StatusConflict, errorResponse{Error: "place already exists", PlaceID: dup.PlaceID}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrInvalidRequestState),
		errors.Is(err, domain.ErrNoChanges),
		errors.Is(err, domain.ErrMissingPreferences),
		errors.Is(err, domain.ErrRequestAlreadyProcessed):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrPlaceNotFound),
		errors.Is(err, domain.ErrMissionNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOperatorNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrMissionNotActive):
		return http.StatusNotFound, errorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrMissionAlreadyActive),
		errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict, errorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "unauthenticated"}
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "principal not found"}

	case errors.Is(err, domain.ErrNotExpert):
		return http.StatusForbidden, errorResponse{Error: "expert status required"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
