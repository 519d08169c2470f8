package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	return u.Clone()
}

type stubUserRepo struct {
	byID  map[string]*domain.User
	saves int
	// interleave runs against the stored copy right before the next Save,
	// simulating a concurrent writer. It is cleared after use.
	interleave func(stored *domain.User)
	// alwaysConflict makes every Save lose the version race.
	alwaysConflict bool
	saveErr        error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = cloneUser(u)
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(u)
	if c.ID == "" {
		c.ID = "user-" + u.Username
	}
	r.byID[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if f.Expert != nil && u.IsExpert() != *f.Expert {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Save(_ context.Context, u *domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.byID[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if r.interleave != nil {
		fn := r.interleave
		r.interleave = nil
		fn(stored)
		stored.Version++
	}
	if r.alwaysConflict || stored.Version != u.Version {
		return domain.ErrConcurrentUpdate
	}
	u.Version++
	r.byID[u.ID] = cloneUser(u)
	r.saves++
	return nil
}

// ---------------------------------------------------------------------------
// Places
// ---------------------------------------------------------------------------

func clonePlace(p *domain.Place) *domain.Place {
	c := *p
	c.Categories = slices.Clone(p.Categories)
	c.Images = slices.Clone(p.Images)
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	return &c
}

type stubPlaceRepo struct {
	byID      map[string]*domain.Place
	order     []string
	inserts   int
	saves     int
	deletes   int
	insertErr error
	saveErr   error
}

func newStubPlaceRepo(places ...*domain.Place) *stubPlaceRepo {
	r := &stubPlaceRepo{byID: make(map[string]*domain.Place)}
	for _, p := range places {
		if p.NormalizedName == "" {
			p.NormalizedName = domain.NormalizePlaceName(p.Name)
		}
		r.byID[p.ID] = clonePlace(p)
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *stubPlaceRepo) FindByID(_ context.Context, id string) (*domain.Place, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPlaceNotFound
	}
	return clonePlace(p), nil
}

func (r *stubPlaceRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Place, error) {
	var out []*domain.Place
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, clonePlace(p))
		}
	}
	return out, nil
}

func (r *stubPlaceRepo) FindByNormalizedName(_ context.Context, normalized string) (*domain.Place, error) {
	for _, id := range r.order {
		if r.byID[id].NormalizedName == normalized {
			return clonePlace(r.byID[id]), nil
		}
	}
	return nil, domain.ErrPlaceNotFound
}

func (r *stubPlaceRepo) Find(_ context.Context, f ports.PlaceFilter) ([]*domain.Place, error) {
	var out []*domain.Place
	for _, id := range r.order {
		p := r.byID[id]
		if slices.Contains(f.ExcludeIDs, p.ID) {
			continue
		}
		if len(f.Categories) > 0 && !p.HasAnyCategory(f.Categories) {
			continue
		}
		if f.FreeOnly && !p.IsFree {
			continue
		}
		out = append(out, clonePlace(p))
	}
	return out, nil
}

func (r *stubPlaceRepo) Insert(_ context.Context, p *domain.Place) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserts++
	if p.ID == "" {
		p.ID = fmt.Sprintf("place-new-%d", r.inserts)
	}
	r.byID[p.ID] = clonePlace(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubPlaceRepo) Save(_ context.Context, p *domain.Place) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrPlaceNotFound
	}
	r.byID[p.ID] = clonePlace(p)
	r.saves++
	return nil
}

func (r *stubPlaceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPlaceNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(o string) bool { return o == id })
	r.deletes++
	return nil
}

// ---------------------------------------------------------------------------
// Missions
// ---------------------------------------------------------------------------

type stubMissionRepo struct {
	byID  map[string]*domain.Mission
	order []string
	// batches counts FindByIDs calls.
	batches int
	findErr error
}

func newStubMissionRepo(missions ...*domain.Mission) *stubMissionRepo {
	r := &stubMissionRepo{byID: make(map[string]*domain.Mission)}
	for _, m := range missions {
		r.byID[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r
}

func (r *stubMissionRepo) FindByID(_ context.Context, id string) (*domain.Mission, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMissionNotFound
	}
	c := *m
	return &c, nil
}

func (r *stubMissionRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Mission, error) {
	r.batches++
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Mission
	for _, id := range ids {
		if m, ok := r.byID[id]; ok {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubMissionRepo) Find(_ context.Context, f ports.MissionFilter) ([]*domain.Mission, error) {
	var out []*domain.Mission
	for _, id := range r.order {
		if slices.Contains(f.ExcludeIDs, id) {
			continue
		}
		c := *r.byID[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubMissionRepo) Insert(_ context.Context, m *domain.Mission) error {
	m.ID = fmt.Sprintf("mission-%d", len(r.order)+1)
	c := *m
	r.byID[m.ID] = &c
	r.order = append(r.order, m.ID)
	return nil
}

// ---------------------------------------------------------------------------
// Place edit requests
// ---------------------------------------------------------------------------

type stubRequestRepo struct {
	byID map[string]*domain.PlaceEditRequest
	// decideErr overrides the conditional claim, simulating a lost race.
	decideErr error
	linkErr   error
	reopens   int
}

func newStubRequestRepo(reqs ...*domain.PlaceEditRequest) *stubRequestRepo {
	r := &stubRequestRepo{byID: make(map[string]*domain.PlaceEditRequest)}
	for _, req := range reqs {
		c := *req
		r.byID[req.ID] = &c
	}
	return r
}

func (r *stubRequestRepo) Insert(_ context.Context, req *domain.PlaceEditRequest) error {
	req.ID = fmt.Sprintf("req-%d", len(r.byID)+1)
	c := *req
	r.byID[req.ID] = &c
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.PlaceEditRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	c := *req
	return &c, nil
}

func (r *stubRequestRepo) Find(_ context.Context, f ports.PlaceRequestFilter) ([]*domain.PlaceEditRequest, error) {
	var out []*domain.PlaceEditRequest
	for _, req := range r.byID {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.PlaceID != "" && req.PlaceID != f.PlaceID {
			continue
		}
		if f.IsNewPlace != nil && req.IsNewPlace != *f.IsNewPlace {
			continue
		}
		c := *req
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubRequestRepo) Decide(_ context.Context, req *domain.PlaceEditRequest) error {
	if r.decideErr != nil {
		return r.decideErr
	}
	stored, ok := r.byID[req.ID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if stored.Status != domain.RequestPending {
		return domain.ErrRequestAlreadyProcessed
	}
	stored.Status = req.Status
	stored.OperatorID = req.OperatorID
	stored.OperatorComment = req.OperatorComment
	stored.UpdatedAt = req.UpdatedAt
	return nil
}

func (r *stubRequestRepo) Reopen(_ context.Context, req *domain.PlaceEditRequest) error {
	stored, ok := r.byID[req.ID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if stored.Status != req.Status || stored.OperatorID != req.OperatorID {
		return domain.ErrRequestAlreadyProcessed
	}
	stored.Status = domain.RequestPending
	stored.OperatorID = ""
	stored.OperatorComment = ""
	if stored.IsNewPlace {
		stored.PlaceID = ""
	}
	r.reopens++
	return nil
}

func (r *stubRequestRepo) LinkPlace(_ context.Context, requestID, placeID string) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	stored, ok := r.byID[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	stored.PlaceID = placeID
	return nil
}

// ---------------------------------------------------------------------------
// Operators, heatmap, events
// ---------------------------------------------------------------------------

type stubOperatorRepo struct {
	ops map[string]*domain.Operator
}

func (r *stubOperatorRepo) FindByID(_ context.Context, id string) (*domain.Operator, error) {
	if op, ok := r.ops[id]; ok {
		c := *op
		return &c, nil
	}
	return nil, domain.ErrOperatorNotFound
}

func (r *stubOperatorRepo) FindByEmail(_ context.Context, email string) (*domain.Operator, error) {
	for _, op := range r.ops {
		if op.Email == email {
			c := *op
			return &c, nil
		}
	}
	return nil, domain.ErrOperatorNotFound
}

type stubHeatmapRepo struct {
	cells []domain.HeatmapCell
	err   error
	calls int
}

func (r *stubHeatmapRepo) MissionHeatmap(context.Context) ([]domain.HeatmapCell, error) {
	r.calls++
	return r.cells, r.err
}

type stubHeatmapCache struct {
	cells  []domain.HeatmapCell
	hit    bool
	getErr error
	sets   int
}

func (c *stubHeatmapCache) Get(context.Context) ([]domain.HeatmapCell, bool, error) {
	return c.cells, c.hit, c.getErr
}

func (c *stubHeatmapCache) Set(_ context.Context, cells []domain.HeatmapCell) error {
	c.cells = cells
	c.hit = true
	c.sets++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.ActivityType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// expertUser returns a user that already crossed the expert threshold.
func expertUser(id string) *domain.User {
	u := &domain.User{ID: id, Username: id}
	u.AddExperience(domain.ExpertThreshold)
	return u
}
