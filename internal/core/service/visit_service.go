package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/geo"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// VisitService validates visit claims and applies them to the user aggregate.
type VisitService struct {
	users    ports.UserRepository
	places   ports.PlaceRepository
	missions ports.MissionRepository
	events   ports.ActivityPublisher
	log      zerolog.Logger
}

func NewVisitService(
	users ports.UserRepository,
	places ports.PlaceRepository,
	missions ports.MissionRepository,
	events ports.ActivityPublisher,
	log zerolog.Logger,
) *VisitService {
	return &VisitService{users: users, places: places, missions: missions, events: events, log: log}
}

// Visit validates claim and, when accepted, records the discovery, awards the
// discovery bonus for new places, advances in-flight missions and saves the
// user once. A rejected claim returns *domain.VisitRejectedError and leaves
// the user untouched.
func (s *VisitService) Visit(ctx context.Context, user *domain.User, claim ports.VisitClaim) (*ports.VisitResult, error) {
	place, err := s.validate(ctx, claim)
	if err != nil {
		return nil, err
	}

	var result ports.VisitResult
	saved, err := mutateUser(ctx, s.users, user, func(u *domain.User) error {
		result = ports.VisitResult{PlaceID: place.ID}
		before := u.Exp()

		// Order matters: the discovery flag decides the bonus, and the
		// reconciler reads the state left by both.
		if u.RecordVisit(place.ID, time.Now().UTC()) {
			result.Discovered = true
			u.AddExperience(domain.DiscoveryBonus)
		}

		missions, err := s.inFlightMissions(ctx, u)
		if err != nil {
			return err
		}
		result.CompletedMissions = u.ReconcileVisit(place, missions)
		result.ExpGained = u.Exp() - before
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("visit: %w", err)
	}
	result.Exp = saved.Exp()
	result.Expert = saved.IsExpert()

	s.log.Info().
		Str("user_id", saved.ID).
		Str("place_id", place.ID).
		Bool("discovered", result.Discovered).
		Int("exp_gained", result.ExpGained).
		Int("missions_completed", len(result.CompletedMissions)).
		Msg("visit recorded")

	s.emit(ctx, saved.ID, &result)
	return &result, nil
}

func (s *VisitService) validate(ctx context.Context, claim ports.VisitClaim) (*domain.Place, error) {
	var placeID string
	if len(claim.PlaceRef) > 0 {
		placeID = strings.TrimSpace(claim.PlaceRef[0])
	}
	if placeID == "" {
		return nil, domain.RejectVisit(domain.RejectInvalidPlaceReference)
	}

	lat, okLat := parseCoordinate(claim.Lat)
	lon, okLon := parseCoordinate(claim.Lon)
	if !okLat || !okLon {
		return nil, domain.RejectVisit(domain.RejectInvalidCoordinates)
	}

	place, err := s.places.FindByID(ctx, placeID)
	if errors.Is(err, domain.ErrPlaceNotFound) {
		return nil, domain.RejectVisit(domain.RejectPlaceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("visit: find place: %w", err)
	}
	if place.Location == nil {
		return nil, domain.RejectVisit(domain.RejectPlaceMissingLocation)
	}

	if !geo.WithinMeters(lat, lon, place.Location.Lat, place.Location.Lon, geo.VisitRadiusMeters) {
		return nil, domain.RejectVisit(domain.RejectOutOfRange)
	}
	return place, nil
}

// inFlightMissions batch-loads the missions of every incomplete progress.
func (s *VisitService) inFlightMissions(ctx context.Context, u *domain.User) (map[string]*domain.Mission, error) {
	ids := u.InFlightMissionIDs()
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.missions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load missions: %w", err)
	}
	byID := make(map[string]*domain.Mission, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	if len(byID) < len(ids) {
		s.log.Debug().Str("user_id", u.ID).Int("dangling", len(ids)-len(byID)).Msg("skipping missions that no longer exist")
	}
	return byID, nil
}

func (s *VisitService) emit(ctx context.Context, userID string, r *ports.VisitResult) {
	if r.Discovered {
		s.events.Publish(ctx, newActivity(domain.ActivityPlaceDiscovered, userID, r.PlaceID, domain.DiscoveryBonus, nil))
	}
	for _, id := range r.CompletedMissions {
		s.events.Publish(ctx, newActivity(domain.ActivityMissionCompleted, userID, id, 0, map[string]string{"place_id": r.PlaceID}))
	}
}

// parseCoordinate accepts any finite decimal number.
func parseCoordinate(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
