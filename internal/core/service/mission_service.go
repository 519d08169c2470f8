package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

type MissionService struct {
	missions ports.MissionRepository
	places   ports.PlaceRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewMissionService(
	missions ports.MissionRepository,
	places ports.PlaceRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *MissionService {
	return &MissionService{missions: missions, places: places, users: users, log: log}
}

func (s *MissionService) List(ctx context.Context) ([]*domain.Mission, error) {
	return s.missions.Find(ctx, ports.MissionFilter{})
}

// Available lists the missions user has not activated yet.
func (s *MissionService) Available(ctx context.Context, user *domain.User) ([]*domain.Mission, error) {
	return s.missions.Find(ctx, ports.MissionFilter{ExcludeIDs: user.ActiveMissionIDs()})
}

// Activate starts tracking missionID for user.
func (s *MissionService) Activate(ctx context.Context, user *domain.User, missionID string) (*domain.User, error) {
	if strings.TrimSpace(missionID) == "" {
		return nil, domain.NewValidationError("missionId", "is required")
	}
	if _, err := s.missions.FindByID(ctx, missionID); err != nil {
		return nil, fmt.Errorf("activate mission: %w", err)
	}

	saved, err := mutateUser(ctx, s.users, user, func(u *domain.User) error {
		return u.ActivateMission(missionID)
	})
	if err != nil {
		return nil, fmt.Errorf("activate mission: %w", err)
	}

	s.log.Info().Str("user_id", saved.ID).Str("mission_id", missionID).Msg("mission activated")
	return saved, nil
}

// Remove drops the progress of missionID, completed or not.
func (s *MissionService) Remove(ctx context.Context, user *domain.User, missionID string) (*domain.User, error) {
	saved, err := mutateUser(ctx, s.users, user, func(u *domain.User) error {
		return u.RemoveMission(missionID)
	})
	if err != nil {
		return nil, fmt.Errorf("remove mission: %w", err)
	}

	s.log.Info().Str("user_id", saved.ID).Str("mission_id", missionID).Msg("mission removed")
	return saved, nil
}

// Create validates and stores a new mission definition.
func (s *MissionService) Create(ctx context.Context, in ports.CreateMissionInput) (*domain.Mission, error) {
	m := &domain.Mission{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		MinLevel:       in.MinLevel,
		RewardExp:      in.RewardExp,
		Categories:     domain.CategoriesFromStrings(in.Categories),
		RequiredPlaces: dedupe(in.RequiredPlaces),
		RequiredCount:  in.RequiredCount,
	}
	if m.RequiredCount == 0 {
		m.RequiredCount = 1
	}
	if err := s.validateMission(ctx, m); err != nil {
		return nil, err
	}

	if err := s.missions.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("create mission: %w", err)
	}

	s.log.Info().Str("mission_id", m.ID).Bool("place_based", m.IsPlaceBased()).Msg("mission created")
	return m, nil
}

func (s *MissionService) validateMission(ctx context.Context, m *domain.Mission) error {
	switch {
	case m.Name == "":
		return domain.NewValidationError("name", "is required")
	case m.RewardExp <= 0:
		return domain.NewValidationError("rewardExp", "must be greater than 0")
	case m.RequiredCount < 0:
		return domain.NewValidationError("requiredCount", "must be greater than 0")
	case m.MinLevel < 0:
		return domain.NewValidationError("minLevel", "must not be negative")
	case len(m.Categories) == 0 && len(m.RequiredPlaces) == 0:
		return domain.NewValidationError("categories", "categories or requiredPlaces must be set")
	}
	for _, c := range m.Categories {
		if !c.IsValid() {
			return domain.NewValidationError("categories", fmt.Sprintf("unknown category %q", c))
		}
	}

	if !m.IsPlaceBased() {
		return nil
	}
	if m.RequiredCount > len(m.RequiredPlaces) {
		return domain.NewValidationError("requiredCount", "cannot exceed the number of required places")
	}
	found, err := s.places.FindByIDs(ctx, m.RequiredPlaces)
	if err != nil {
		return fmt.Errorf("create mission: %w", err)
	}
	known := make(map[string]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for _, id := range m.RequiredPlaces {
		if _, ok := known[id]; !ok {
			return domain.NewValidationError("requiredPlaces", fmt.Sprintf("place %s does not exist", id))
		}
	}
	return nil
}

// dedupe drops blank and repeated ids, keeping the first occurrence.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
