package domain

import "time"

// RequestStatus is the moderation state of a PlaceEditRequest.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ParseRequestStatus validates a raw status value.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case RequestPending, RequestApproved, RequestRejected:
		return st, nil
	}
	return "", ErrInvalidRequestState
}

// PlaceEditRequest is a staged proposal to create or edit a place.
type PlaceEditRequest struct {
	ID              string
	UserID          string
	PlaceID         string // empty until approval when IsNewPlace
	ProposedChanges PlaceChanges
	IsNewPlace      bool
	Status          RequestStatus
	OperatorID      string
	OperatorComment string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPlaceRequest stages the creation of a new place.
func NewPlaceRequest(userID string, changes PlaceChanges, now time.Time) *PlaceEditRequest {
	return &PlaceEditRequest{
		UserID:          userID,
		ProposedChanges: changes,
		IsNewPlace:      true,
		Status:          RequestPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewEditRequest stages an edit of an existing place.
func NewEditRequest(userID, placeID string, changes PlaceChanges, now time.Time) *PlaceEditRequest {
	return &PlaceEditRequest{
		UserID:          userID,
		PlaceID:         placeID,
		ProposedChanges: changes,
		Status:          RequestPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Decide moves a pending request to approved or rejected. Decided requests
// are terminal.
func (r *PlaceEditRequest) Decide(status RequestStatus, operatorID, comment string, now time.Time) error {
	if r.Status != RequestPending {
		return ErrRequestAlreadyProcessed
	}
	if status != RequestApproved && status != RequestRejected {
		return ErrInvalidDecision
	}
	r.Status = status
	r.OperatorID = operatorID
	r.OperatorComment = comment
	r.UpdatedAt = now
	return nil
}

// Reward is the experience granted to the submitter on approval.
func (r *PlaceEditRequest) Reward() int {
	if r.IsNewPlace {
		return NewPlaceRewardMultiplier * ModerationRewardUnit
	}
	return ModerationRewardUnit
}
