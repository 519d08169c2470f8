package ports

import (
	"context"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// UserFilter narrows user listings. A nil Expert means no filter.
type UserFilter struct {
	Expert *bool
}

// UserRepository persists the User aggregate.
type UserRepository interface {
	// Create inserts a new user. A taken username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// Save writes the whole aggregate when its Version still matches the
	// stored one and bumps Version. A stale Version yields
	// domain.ErrConcurrentUpdate.
	Save(ctx context.Context, user *domain.User) error
}

// PlaceFilter narrows catalog searches. Zero values disable each clause.
type PlaceFilter struct {
	ExcludeIDs []string
	Categories []domain.Category // any-of
	FreeOnly   bool
}

// PlaceRepository looks up and stores places. Unknown ids yield
// domain.ErrPlaceNotFound.
type PlaceRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Place, error)
	// FindByIDs skips ids that do not resolve.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Place, error)
	FindByNormalizedName(ctx context.Context, normalized string) (*domain.Place, error)
	Find(ctx context.Context, filter PlaceFilter) ([]*domain.Place, error)
	Insert(ctx context.Context, place *domain.Place) error
	Save(ctx context.Context, place *domain.Place) error
	Delete(ctx context.Context, id string) error
}

// MissionFilter narrows mission listings.
type MissionFilter struct {
	ExcludeIDs []string
}

// MissionRepository looks up and stores missions.
type MissionRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Mission, error)
	// FindByIDs batch-resolves ids. Dangling ids are silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Mission, error)
	Find(ctx context.Context, filter MissionFilter) ([]*domain.Mission, error)
	Insert(ctx context.Context, mission *domain.Mission) error
}

// PlaceRequestFilter narrows moderation queue listings.
type PlaceRequestFilter struct {
	PlaceID    string
	Status     domain.RequestStatus
	IsNewPlace *bool
}

// PlaceRequestRepository persists place edit requests.
type PlaceRequestRepository interface {
	Insert(ctx context.Context, req *domain.PlaceEditRequest) error
	FindByID(ctx context.Context, id string) (*domain.PlaceEditRequest, error)
	Find(ctx context.Context, filter PlaceRequestFilter) ([]*domain.PlaceEditRequest, error)
	// Decide stores the decision fields of req only while the stored request
	// is still pending. Otherwise it yields domain.ErrRequestAlreadyProcessed.
	Decide(ctx context.Context, req *domain.PlaceEditRequest) error
	// Reopen puts a request decided as in req back to pending. It yields
	// domain.ErrRequestAlreadyProcessed when the stored decision differs.
	Reopen(ctx context.Context, req *domain.PlaceEditRequest) error
	// LinkPlace records the place materialized from an approved new-place request.
	LinkPlace(ctx context.Context, requestID, placeID string) error
}

// OperatorRepository resolves operators.
type OperatorRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Operator, error)
	FindByEmail(ctx context.Context, email string) (*domain.Operator, error)
}

// HeatmapRepository aggregates mission completions per required place.
type HeatmapRepository interface {
	MissionHeatmap(ctx context.Context) ([]domain.HeatmapCell, error)
}

// HeatmapCache stores computed heatmaps. A miss returns (nil, false, nil).
type HeatmapCache interface {
	Get(ctx context.Context) ([]domain.HeatmapCell, bool, error)
	Set(ctx context.Context, cells []domain.HeatmapCell) error
}

// ActivityPublisher hands activity events to the outbound pipeline. It must
// not block the caller on broker I/O.
type ActivityPublisher interface {
	Publish(ctx context.Context, event domain.ActivityEvent)
}
