package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
	"github.com/placequest/explorer-api/internal/pkg/validate"
)

// newPlaceFields holds the rules for a brand-new place: every mandatory
// field must be present.
type newPlaceFields struct {
	Name        *string  `json:"name" validate:"required,min=3,max=100"`
	Description *string  `json:"description" validate:"omitnil,min=10,max=500"`
	Categories  []string `json:"categories" validate:"required,min=1,dive,category"`
	Lat         *float64 `json:"lat" validate:"required,latitude"`
	Lon         *float64 `json:"lon" validate:"required,longitude"`
	Images      []string `json:"images" validate:"omitnil,max=10,dive,imagedata"`
	IsFree      *bool    `json:"isFree" validate:"required"`
}

// placeEditFields applies the same rules to the fields that are present.
type placeEditFields struct {
	Name        *string  `json:"name" validate:"omitnil,min=3,max=100"`
	Description *string  `json:"description" validate:"omitnil,min=10,max=500"`
	Categories  []string `json:"categories" validate:"omitnil,min=1,dive,category"`
	Lat         *float64 `json:"lat" validate:"omitnil,latitude"`
	Lon         *float64 `json:"lon" validate:"omitnil,longitude"`
	Images      []string `json:"images" validate:"omitnil,max=10,dive,imagedata"`
	IsFree      *bool    `json:"isFree"`
}

// ModerationService stages place submissions and applies operator decisions.
type ModerationService struct {
	requests ports.PlaceRequestRepository
	places   ports.PlaceRepository
	users    ports.UserRepository
	events   ports.ActivityPublisher
	log      zerolog.Logger
}

func NewModerationService(
	requests ports.PlaceRequestRepository,
	places ports.PlaceRepository,
	users ports.UserRepository,
	events ports.ActivityPublisher,
	log zerolog.Logger,
) *ModerationService {
	return &ModerationService{requests: requests, places: places, users: users, events: events, log: log}
}

// SubmitNewPlace stages the creation of a place. Only experts may submit.
func (s *ModerationService) SubmitNewPlace(ctx context.Context, user *domain.User, in ports.PlaceInput) (*domain.PlaceEditRequest, error) {
	if !user.IsExpert() {
		return nil, domain.ErrNotExpert
	}

	in = tidyPlaceInput(in)
	if err := validate.Struct(newPlaceFields(in)); err != nil {
		return nil, err
	}
	changes := placeChanges(in)

	if err := s.ensureUniqueName(ctx, *changes.Name, ""); err != nil {
		return nil, err
	}

	req := domain.NewPlaceRequest(user.ID, changes, time.Now().UTC())
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("submit place: %w", err)
	}

	s.log.Info().Str("request_id", req.ID).Str("user_id", user.ID).Msg("new place submitted")
	s.events.Publish(ctx, newActivity(domain.ActivityRequestSubmitted, user.ID, req.ID, 0, map[string]string{"is_new_place": "true"}))
	return req, nil
}

// SubmitEdit stages an edit of placeID carrying only the fields that differ
// from the current place.
func (s *ModerationService) SubmitEdit(ctx context.Context, user *domain.User, placeID string, in ports.PlaceInput) (*domain.PlaceEditRequest, error) {
	if !user.IsExpert() {
		return nil, domain.ErrNotExpert
	}

	in = tidyPlaceInput(in)
	if (in.Lat == nil) != (in.Lon == nil) {
		return nil, domain.NewValidationError("location", "lat and lon must be given together")
	}
	if err := validate.Struct(placeEditFields(in)); err != nil {
		return nil, err
	}

	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("submit edit: %w", err)
	}

	changes := placeChanges(in).Diff(place)
	if changes.IsEmpty() {
		return nil, domain.ErrNoChanges
	}
	if changes.Name != nil {
		if err := s.ensureUniqueName(ctx, *changes.Name, place.ID); err != nil {
			return nil, err
		}
	}

	req := domain.NewEditRequest(user.ID, place.ID, changes, time.Now().UTC())
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("submit edit: %w", err)
	}

	s.log.Info().Str("request_id", req.ID).Str("user_id", user.ID).Str("place_id", place.ID).Msg("place edit submitted")
	s.events.Publish(ctx, newActivity(domain.ActivityRequestSubmitted, user.ID, req.ID, 0, map[string]string{"is_new_place": "false", "place_id": place.ID}))
	return req, nil
}

// Decide approves or rejects a pending request. Approval materializes or
// merges the proposed place and rewards the submitter.
func (s *ModerationService) Decide(ctx context.Context, operator *domain.Operator, requestID string, in ports.DecisionInput) (*ports.DecisionResult, error) {
	status, err := domain.ParseRequestStatus(in.Status)
	if err != nil {
		return nil, domain.ErrInvalidDecision
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("decide request: %w", err)
	}

	now := time.Now().UTC()
	if err := req.Decide(status, operator.ID, strings.TrimSpace(in.Comment), now); err != nil {
		return nil, err
	}

	var target, original *domain.Place
	if status == domain.RequestApproved {
		if target, original, err = s.approvalTarget(ctx, req, now); err != nil {
			return nil, err
		}
	}

	// Claiming the request is the commit point: a concurrent decision loses
	// here before any place or user is touched.
	if err := s.requests.Decide(ctx, req); err != nil {
		return nil, fmt.Errorf("decide request: %w", err)
	}

	result := &ports.DecisionResult{Request: req}
	if status == domain.RequestApproved {
		awarded, err := s.approve(ctx, req, target, original)
		if err != nil {
			s.reopen(ctx, req)
			return nil, err
		}
		result.Place = target
		result.ExpAwarded = awarded
	}

	s.log.Info().
		Str("request_id", req.ID).
		Str("operator_id", operator.ID).
		Str("status", string(req.Status)).
		Bool("new_place", req.IsNewPlace).
		Int("exp_awarded", result.ExpAwarded).
		Msg("place request decided")
	s.events.Publish(ctx, newActivity(domain.ActivityRequestDecided, req.UserID, req.ID, result.ExpAwarded, map[string]string{
		"status":      string(req.Status),
		"operator_id": operator.ID,
	}))
	return result, nil
}

func (s *ModerationService) List(ctx context.Context, filter ports.PlaceRequestFilter) ([]*domain.PlaceEditRequest, error) {
	return s.requests.Find(ctx, filter)
}

func (s *ModerationService) Get(ctx context.Context, id string) (*domain.PlaceEditRequest, error) {
	return s.requests.FindByID(ctx, id)
}

// approvalTarget builds the place an approval will write, without storing it.
// For edits it also returns the place as currently stored.
func (s *ModerationService) approvalTarget(ctx context.Context, req *domain.PlaceEditRequest, now time.Time) (*domain.Place, *domain.Place, error) {
	if req.IsNewPlace {
		if req.ProposedChanges.Name == nil {
			return nil, nil, domain.NewValidationError("name", "is required")
		}
		if err := s.ensureUniqueName(ctx, *req.ProposedChanges.Name, ""); err != nil {
			return nil, nil, err
		}
		return domain.NewPlace(req.ProposedChanges, now), nil, nil
	}

	place, err := s.places.FindByID(ctx, req.PlaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("decide request: %w", err)
	}
	original := *place
	place.Apply(req.ProposedChanges, now)
	return place, &original, nil
}

// approve writes place and rewards the submitter. When a step fails the place
// write is undone, so the caller only has to release the claim.
func (s *ModerationService) approve(ctx context.Context, req *domain.PlaceEditRequest, place, original *domain.Place) (int, error) {
	if err := s.writePlace(ctx, req, place); err != nil {
		return 0, err
	}
	awarded, err := s.reward(ctx, req)
	if err != nil {
		s.revertPlace(ctx, req, place, original)
		return 0, err
	}
	return awarded, nil
}

func (s *ModerationService) writePlace(ctx context.Context, req *domain.PlaceEditRequest, place *domain.Place) error {
	if !req.IsNewPlace {
		if err := s.places.Save(ctx, place); err != nil {
			return fmt.Errorf("merge place: %w", err)
		}
		return nil
	}

	if err := s.places.Insert(ctx, place); err != nil {
		return fmt.Errorf("create place: %w", err)
	}
	if err := s.requests.LinkPlace(ctx, req.ID, place.ID); err != nil {
		s.revertPlace(ctx, req, place, nil)
		return fmt.Errorf("link place: %w", err)
	}
	req.PlaceID = place.ID
	return nil
}

// revertPlace removes a materialized place or restores the pre-merge version.
func (s *ModerationService) revertPlace(ctx context.Context, req *domain.PlaceEditRequest, place, original *domain.Place) {
	var err error
	if req.IsNewPlace {
		err = s.places.Delete(ctx, place.ID)
	} else {
		err = s.places.Save(ctx, original)
	}
	if err != nil {
		s.log.Error().Err(err).Str("request_id", req.ID).Str("place_id", place.ID).Msg("failed to revert place after aborted approval")
	}
}

// reopen puts a claimed request back to pending so the decision can be retried.
func (s *ModerationService) reopen(ctx context.Context, req *domain.PlaceEditRequest) {
	if err := s.requests.Reopen(ctx, req); err != nil {
		s.log.Error().Err(err).Str("request_id", req.ID).Msg("failed to reopen request after aborted approval")
		return
	}
	s.log.Warn().Str("request_id", req.ID).Msg("approval aborted, request reopened")
}

// reward credits the submitter. A submitter who no longer exists forfeits the
// reward; the decision itself stands.
func (s *ModerationService) reward(ctx context.Context, req *domain.PlaceEditRequest) (int, error) {
	submitter, err := s.users.FindByID(ctx, req.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Warn().Str("request_id", req.ID).Str("user_id", req.UserID).Msg("submitter gone, not rewarded")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reward submitter: %w", err)
	}

	amount := req.Reward()
	if _, err := mutateUser(ctx, s.users, submitter, func(u *domain.User) error {
		u.AddExperience(amount)
		return nil
	}); err != nil {
		return 0, fmt.Errorf("reward submitter: %w", err)
	}
	return amount, nil
}

// ensureUniqueName fails with *domain.DuplicatePlaceError when another place
// already uses the normalized form of name. selfID is the place being edited.
func (s *ModerationService) ensureUniqueName(ctx context.Context, name, selfID string) error {
	normalized := domain.NormalizePlaceName(name)
	if normalized == "" {
		return domain.NewValidationError("name", "must contain letters or digits")
	}

	existing, err := s.places.FindByNormalizedName(ctx, normalized)
	switch {
	case errors.Is(err, domain.ErrPlaceNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check place name: %w", err)
	case existing.ID == selfID:
		return nil
	}
	return &domain.DuplicatePlaceError{PlaceID: existing.ID}
}

// tidyPlaceInput trims the name and treats an empty description as absent.
func tidyPlaceInput(in ports.PlaceInput) ports.PlaceInput {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		in.Description = nil
	}
	return in
}

func placeChanges(in ports.PlaceInput) domain.PlaceChanges {
	c := domain.PlaceChanges{
		Name:        in.Name,
		Description: in.Description,
		Categories:  domain.CategoriesFromStrings(in.Categories),
		Images:      in.Images,
		IsFree:      in.IsFree,
	}
	if in.Lat != nil && in.Lon != nil {
		c.Location = &domain.Location{Lat: *in.Lat, Lon: *in.Lon}
	}
	return c
}
