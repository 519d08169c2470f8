package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// UserService covers profile updates, public user reads and the mission
// heatmap.
type UserService struct {
	users   ports.UserRepository
	heatmap ports.HeatmapRepository
	cache   ports.HeatmapCache
	log     zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	heatmap ports.HeatmapRepository,
	cache ports.HeatmapCache,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, heatmap: heatmap, cache: cache, log: log}
}

// UpdatePreferences replaces the nearby-ranking preferences of user.
func (s *UserService) UpdatePreferences(ctx context.Context, user *domain.User, in ports.PreferencesInput) (*domain.User, error) {
	if in.AlsoPaid == nil || in.Categories == nil {
		return nil, domain.ErrMissingPreferences
	}
	for i, c := range in.Categories {
		if !domain.Category(c).IsValid() {
			return nil, domain.NewValidationError(fmt.Sprintf("categories[%d]", i), "must be a known category")
		}
	}
	categories := domain.CategoriesFromStrings(dedupe(in.Categories))

	prefs := domain.Preferences{AlsoPaid: *in.AlsoPaid, Categories: categories}
	saved, err := mutateUser(ctx, s.users, user, func(u *domain.User) error {
		u.Preferences = prefs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return saved, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.users.List(ctx, filter)
}

// MissionHeatmap returns the completed-mission count per required place,
// served from cache when fresh. Cache failures fall back to the store.
func (s *UserService) MissionHeatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	cells, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("heatmap cache read failed, computing")
	} else if hit {
		return cells, nil
	}

	cells, err = s.heatmap.MissionHeatmap(ctx)
	if err != nil {
		return nil, fmt.Errorf("mission heatmap: %w", err)
	}

	if err := s.cache.Set(ctx, cells); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache heatmap")
	}
	return cells, nil
}
