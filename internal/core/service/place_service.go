package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/geo"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// PlaceService serves catalog reads and the nearby ranking.
type PlaceService struct {
	places ports.PlaceRepository
}

func NewPlaceService(places ports.PlaceRepository) *PlaceService {
	return &PlaceService{places: places}
}

func (s *PlaceService) Get(ctx context.Context, id string) (*domain.Place, error) {
	return s.places.FindByID(ctx, id)
}

// Nearby lists the places user has not discovered yet, filtered by the user's
// preferences. With coordinates, places farther than the radius are dropped
// and the rest is sorted by distance.
func (s *PlaceService) Nearby(ctx context.Context, user *domain.User, q ports.NearbyQuery) ([]ports.RankedPlace, error) {
	if (q.Lat == nil) != (q.Lon == nil) {
		return nil, domain.NewValidationError("lat", "lat and lon must be given together")
	}
	if q.Radius < 0 {
		return nil, domain.NewValidationError("radius", "must not be negative")
	}

	filter := ports.PlaceFilter{
		ExcludeIDs: user.DiscoveredPlaceIDs(),
		Categories: user.Preferences.Categories,
		FreeOnly:   !user.Preferences.AlsoPaid,
	}
	places, err := s.places.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}

	if q.Lat == nil {
		out := make([]ports.RankedPlace, len(places))
		for i, p := range places {
			out[i] = ports.RankedPlace{Place: p}
		}
		return out, nil
	}

	radius := q.Radius
	if radius == 0 {
		radius = geo.DefaultNearbyRadiusKm
	}
	out := make([]ports.RankedPlace, 0, len(places))
	for _, p := range places {
		if p.Location == nil {
			continue
		}
		d := geo.DistanceKm(*q.Lat, *q.Lon, p.Location.Lat, p.Location.Lon)
		if d > radius {
			continue
		}
		out = append(out, ports.RankedPlace{Place: p, DistanceKm: &d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKm < *out[j].DistanceKm
	})
	return out, nil
}
