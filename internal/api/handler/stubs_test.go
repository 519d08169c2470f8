package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/api/middleware"
	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn         func(ctx context.Context, username, password string) (string, error)
	loginOperatorFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) LoginOperator(ctx context.Context, email, password string) (string, error) {
	return s.loginOperatorFn(ctx, email, password)
}

func (s *stubAuthService) ResolveUser(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrPrincipalNotFound
}

func (s *stubAuthService) ResolveOperator(context.Context, string) (*domain.Operator, error) {
	return nil, domain.ErrPrincipalNotFound
}

type stubVisitService struct {
	visitFn func(ctx context.Context, user *domain.User, claim ports.VisitClaim) (*ports.VisitResult, error)
}

func (s *stubVisitService) Visit(ctx context.Context, user *domain.User, claim ports.VisitClaim) (*ports.VisitResult, error) {
	return s.visitFn(ctx, user, claim)
}

type stubUserService struct {
	updateFn  func(ctx context.Context, user *domain.User, in ports.PreferencesInput) (*domain.User, error)
	getFn     func(ctx context.Context, username string) (*domain.User, error)
	listFn    func(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error)
	heatmapFn func(ctx context.Context) ([]domain.HeatmapCell, error)
}

func (s *stubUserService) UpdatePreferences(ctx context.Context, user *domain.User, in ports.PreferencesInput) (*domain.User, error) {
	return s.updateFn(ctx, user, in)
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}

func (s *stubUserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.listFn(ctx, filter)
}

func (s *stubUserService) MissionHeatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	return s.heatmapFn(ctx)
}

type stubMissionService struct {
	listFn      func(ctx context.Context) ([]*domain.Mission, error)
	availableFn func(ctx context.Context, user *domain.User) ([]*domain.Mission, error)
	activateFn  func(ctx context.Context, user *domain.User, missionID string) (*domain.User, error)
	removeFn    func(ctx context.Context, user *domain.User, missionID string) (*domain.User, error)
	createFn    func(ctx context.Context, in ports.CreateMissionInput) (*domain.Mission, error)
}

func (s *stubMissionService) List(ctx context.Context) ([]*domain.Mission, error) {
	return s.listFn(ctx)
}

func (s *stubMissionService) Available(ctx context.Context, user *domain.User) ([]*domain.Mission, error) {
	return s.availableFn(ctx, user)
}

func (s *stubMissionService) Activate(ctx context.Context, user *domain.User, missionID string) (*domain.User, error) {
	return s.activateFn(ctx, user, missionID)
}

func (s *stubMissionService) Remove(ctx context.Context, user *domain.User, missionID string) (*domain.User, error) {
	return s.removeFn(ctx, user, missionID)
}

func (s *stubMissionService) Create(ctx context.Context, in ports.CreateMissionInput) (*domain.Mission, error) {
	return s.createFn(ctx, in)
}

type stubPlaceService struct {
	nearbyFn func(ctx context.Context, user *domain.User, q ports.NearbyQuery) ([]ports.RankedPlace, error)
	getFn    func(ctx context.Context, id string) (*domain.Place, error)
}

func (s *stubPlaceService) Nearby(ctx context.Context, user *domain.User, q ports.NearbyQuery) ([]ports.RankedPlace, error) {
	return s.nearbyFn(ctx, user, q)
}

func (s *stubPlaceService) Get(ctx context.Context, id string) (*domain.Place, error) {
	return s.getFn(ctx, id)
}

type stubModerationService struct {
	submitNewFn  func(ctx context.Context, user *domain.User, in ports.PlaceInput) (*domain.PlaceEditRequest, error)
	submitEditFn func(ctx context.Context, user *domain.User, placeID string, in ports.PlaceInput) (*domain.PlaceEditRequest, error)
	decideFn     func(ctx context.Context, op *domain.Operator, requestID string, in ports.DecisionInput) (*ports.DecisionResult, error)
	listFn       func(ctx context.Context, filter ports.PlaceRequestFilter) ([]*domain.PlaceEditRequest, error)
	getFn        func(ctx context.Context, id string) (*domain.PlaceEditRequest, error)
}

func (s *stubModerationService) SubmitNewPlace(ctx context.Context, user *domain.User, in ports.PlaceInput) (*domain.PlaceEditRequest, error) {
	return s.submitNewFn(ctx, user, in)
}

func (s *stubModerationService) SubmitEdit(ctx context.Context, user *domain.User, placeID string, in ports.PlaceInput) (*domain.PlaceEditRequest, error) {
	return s.submitEditFn(ctx, user, placeID, in)
}

func (s *stubModerationService) Decide(ctx context.Context, op *domain.Operator, requestID string, in ports.DecisionInput) (*ports.DecisionResult, error) {
	return s.decideFn(ctx, op, requestID, in)
}

func (s *stubModerationService) List(ctx context.Context, filter ports.PlaceRequestFilter) ([]*domain.PlaceEditRequest, error) {
	return s.listFn(ctx, filter)
}

func (s *stubModerationService) Get(ctx context.Context, id string) (*domain.PlaceEditRequest, error) {
	return s.getFn(ctx, id)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newContext builds an echo context for target with a JSON body. The
// shared validator is installed so handlers can call c.Validate.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, u *domain.User) echo.Context {
	c.Set(middleware.ContextUser, u)
	return c
}

func asOperator(c echo.Context, op *domain.Operator) echo.Context {
	c.Set(middleware.ContextOperator, op)
	return c
}

func testUser(exp int) *domain.User {
	u := &domain.User{ID: "u1", Username: "alice", Name: "Alice"}
	u.AddExperience(exp)
	return u
}
