package domain

import (
	"errors"
	"fmt"
)

// Validation errors (400).
var (
	ErrInvalidDecision     = errors.New("status must be approved or rejected")
	ErrInvalidRequestState = errors.New("invalid request status")
	ErrNoChanges           = errors.New("no changes proposed")
	ErrMissingPreferences  = errors.New("missing preferences")
)

// Not found errors (404).
var (
	ErrPlaceNotFound    = errors.New("place not found")
	ErrMissionNotFound  = errors.New("mission not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrOperatorNotFound = errors.New("operator not found")
	ErrRequestNotFound  = errors.New("place edit request not found")
	ErrMissionNotActive = errors.New("mission not active for user")
)

// Conflict errors (409).
var (
	ErrUserExists           = errors.New("user already exists")
	ErrMissionAlreadyActive = errors.New("mission already active")
	ErrConcurrentUpdate     = errors.New("concurrent update, retry")
)

// Auth errors (401) and forbidden (403).
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotExpert          = errors.New("user is not an expert")
)

// State errors (400): a place edit request is terminal once decided.
var ErrRequestAlreadyProcessed = errors.New("request already processed")

// VisitRejection is the machine-readable reason a visit claim was refused.
type VisitRejection string

const (
	RejectInvalidPlaceReference VisitRejection = "InvalidPlaceReference"
	RejectInvalidCoordinates    VisitRejection = "InvalidCoordinates"
	RejectPlaceNotFound         VisitRejection = "PlaceNotFound"
	RejectPlaceMissingLocation  VisitRejection = "PlaceMissingLocation"
	RejectOutOfRange            VisitRejection = "OutOfRange"
)

// VisitRejectedError is returned by visit validation. No state is mutated
// when it is returned.
type VisitRejectedError struct {
	Reason VisitRejection
}

func (e *VisitRejectedError) Error() string {
	return "visit rejected: " + string(e.Reason)
}

// RejectVisit builds a VisitRejectedError for reason.
func RejectVisit(reason VisitRejection) error {
	return &VisitRejectedError{Reason: reason}
}

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DuplicatePlaceError is returned when a submitted place name normalizes to
// the name of an existing place.
type DuplicatePlaceError struct {
	PlaceID string
}

func (e *DuplicatePlaceError) Error() string {
	return "place already exists: " + e.PlaceID
}
