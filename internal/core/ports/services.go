package ports

import (
	"context"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Surname  string
}

// AuthService issues tokens and resolves authenticated principals.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	LoginOperator(ctx context.Context, email, password string) (string, error)
	// ResolveUser and ResolveOperator map a token subject to its aggregate.
	// A subject that no longer exists yields domain.ErrPrincipalNotFound.
	ResolveUser(ctx context.Context, id string) (*domain.User, error)
	ResolveOperator(ctx context.Context, id string) (*domain.Operator, error)
}

// VisitClaim is an unvalidated visit as received from the client. PlaceRef
// holds every value supplied for the place reference; Lat and Lon are the raw
// textual coordinates.
type VisitClaim struct {
	PlaceRef []string
	Lat      string
	Lon      string
}

// VisitResult summarises an accepted visit.
type VisitResult struct {
	PlaceID           string
	Discovered        bool
	ExpGained         int
	CompletedMissions []string
	Exp               int
	Expert            bool
}

// VisitService runs the visit transaction for an authenticated user.
type VisitService interface {
	Visit(ctx context.Context, user *domain.User, claim VisitClaim) (*VisitResult, error)
}

// PreferencesInput is a preferences update; both fields are required.
type PreferencesInput struct {
	AlsoPaid   *bool
	Categories []string
}

// UserService covers profile, public user and heatmap reads.
type UserService interface {
	UpdatePreferences(ctx context.Context, user *domain.User, in PreferencesInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	MissionHeatmap(ctx context.Context) ([]domain.HeatmapCell, error)
}

// CreateMissionInput carries a new mission definition.
type CreateMissionInput struct {
	Name           string
	Description    string
	MinLevel       int
	RewardExp      int
	Categories     []string
	RequiredPlaces []string
	RequiredCount  int // 0 means 1
}

// MissionService covers mission catalog and activation.
type MissionService interface {
	List(ctx context.Context) ([]*domain.Mission, error)
	Available(ctx context.Context, user *domain.User) ([]*domain.Mission, error)
	Activate(ctx context.Context, user *domain.User, missionID string) (*domain.User, error)
	Remove(ctx context.Context, user *domain.User, missionID string) (*domain.User, error)
	Create(ctx context.Context, in CreateMissionInput) (*domain.Mission, error)
}

// NearbyQuery carries the optional position of the caller. Radius is in
// kilometers; zero selects the default.
type NearbyQuery struct {
	Lat    *float64
	Lon    *float64
	Radius float64
}

// RankedPlace is a catalog entry with its distance from the caller in
// kilometers, when coordinates were supplied.
type RankedPlace struct {
	Place      *domain.Place
	DistanceKm *float64
}

// PlaceService covers catalog reads.
type PlaceService interface {
	Nearby(ctx context.Context, user *domain.User, q NearbyQuery) ([]RankedPlace, error)
	Get(ctx context.Context, id string) (*domain.Place, error)
}

// PlaceInput is a proposed set of place fields. Nil fields are absent.
type PlaceInput struct {
	Name        *string
	Description *string
	Categories  []string
	Lat         *float64
	Lon         *float64
	Images      []string
	IsFree      *bool
}

// DecisionInput is an operator verdict on a pending request.
type DecisionInput struct {
	Status  string
	Comment string
}

// DecisionResult reports the outcome of a decision.
type DecisionResult struct {
	Request    *domain.PlaceEditRequest
	Place      *domain.Place // nil when rejected
	ExpAwarded int
}

// ModerationService stages and decides place edit requests.
type ModerationService interface {
	SubmitNewPlace(ctx context.Context, user *domain.User, in PlaceInput) (*domain.PlaceEditRequest, error)
	SubmitEdit(ctx context.Context, user *domain.User, placeID string, in PlaceInput) (*domain.PlaceEditRequest, error)
	Decide(ctx context.Context, operator *domain.Operator, requestID string, in DecisionInput) (*DecisionResult, error)
	List(ctx context.Context, filter PlaceRequestFilter) ([]*domain.PlaceEditRequest, error)
	Get(ctx context.Context, id string) (*domain.PlaceEditRequest, error)
}
