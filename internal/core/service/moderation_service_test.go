package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type moderationFixture struct {
	requests *stubRequestRepo
	places   *stubPlaceRepo
	users    *stubUserRepo
	events   *recordingPublisher
	svc      *ModerationService
}

func newModerationFixture(requests *stubRequestRepo, places *stubPlaceRepo, users *stubUserRepo) *moderationFixture {
	f := &moderationFixture{requests: requests, places: places, users: users, events: &recordingPublisher{}}
	f.svc = NewModerationService(requests, places, users, f.events, zerolog.Nop())
	return f
}

func str(s string) *string { return &s }
func boolean(b bool) *bool { return &b }

func validNewPlace(name string) ports.PlaceInput {
	return ports.PlaceInput{
		Name:        str(name),
		Description: str("Un posto tranquillo sul lago"),
		Categories:  []string{"lago", "per famiglie"},
		Lat:         float(45.6),
		Lon:         float(10.6),
		Images:      []string{"data:image/png;base64,iVBORw0KGgo="},
		IsFree:      boolean(true),
	}
}

var operator = &domain.Operator{ID: "op1", Email: "op@example.com", Role: domain.RoleOperator}

// ---------------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------------

func TestModerationService_SubmitNewPlace(t *testing.T) {
	f := newModerationFixture(newStubRequestRepo(), newStubPlaceRepo(), newStubUserRepo())

	req, err := f.svc.SubmitNewPlace(context.Background(), expertUser("u1"), validNewPlace("  Lago Blu "))
	if err != nil {
		t.Fatalf("SubmitNewPlace returned error: %v", err)
	}
	if !req.IsNewPlace || req.Status != domain.RequestPending || req.PlaceID != "" {
		t.Errorf("unexpected request: %+v", req)
	}
	if *req.ProposedChanges.Name != "Lago Blu" {
		t.Errorf("expected trimmed name, got %q", *req.ProposedChanges.Name)
	}
	if _, ok := f.requests.byID[req.ID]; !ok {
		t.Errorf("request not stored")
	}
	if got := f.events.types(); len(got) != 1 || got[0] != domain.ActivityRequestSubmitted {
		t.Errorf("expected submitted event, got %v", got)
	}
}

func TestModerationService_SubmitNewPlace_RequiresExpert(t *testing.T) {
	f := newModerationFixture(newStubRequestRepo(), newStubPlaceRepo(), newStubUserRepo())

	_, err := f.svc.SubmitNewPlace(context.Background(), &domain.User{ID: "novice"}, validNewPlace("Lago Blu"))
	if !errors.Is(err, domain.ErrNotExpert) {
		t.Fatalf("expected ErrNotExpert, got %v", err)
	}
}

func TestModerationService_SubmitNewPlace_DuplicateName(t *testing.T) {
	existing := &domain.Place{ID: "p-citta", Name: "Citta Fantastica", NormalizedName: "citta fantastica"}
	f := newModerationFixture(newStubRequestRepo(), newStubPlaceRepo(existing), newStubUserRepo())

	_, err := f.svc.SubmitNewPlace(context.Background(), expertUser("u1"), validNewPlace("Città Fantastica"))

	var dup *domain.DuplicatePlaceError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicatePlaceError, got %v", err)
	}
	if dup.PlaceID != "p-citta" {
		t.Errorf("expected colliding id p-citta, got %s", dup.PlaceID)
	}
	if len(f.requests.byID) != 0 {
		t.Errorf("no request must be created on conflict")
	}
}

func TestModerationService_SubmitNewPlace_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ports.PlaceInput)
	}{
		{"short name", func(in *ports.PlaceInput) { in.Name = str("ab") }},
		{"missing name", func(in *ports.PlaceInput) { in.Name = nil }},
		{"punctuation only name", func(in *ports.PlaceInput) { in.Name = str("!!!") }},
		{"no categories", func(in *ports.PlaceInput) { in.Categories = []string{} }},
		{"empty category", func(in *ports.PlaceInput) { in.Categories = []string{""} }},
		{"missing lat", func(in *ports.PlaceInput) { in.Lat = nil }},
		{"lat out of range", func(in *ports.PlaceInput) { in.Lat = float(123) }},
		{"missing isFree", func(in *ports.PlaceInput) { in.IsFree = nil }},
		{"short description", func(in *ports.PlaceInput) { in.Description = str("corta") }},
		{"bad image", func(in *ports.PlaceInput) { in.Images = []string{"http://example.com/a.png"} }},
		{"too many images", func(in *ports.PlaceInput) {
			in.Images = make([]string, 11)
			for i := range in.Images {
				in.Images[i] = "data:image/png;base64,AA=="
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newModerationFixture(newStubRequestRepo(), newStubPlaceRepo(), newStubUserRepo())
			in := validNewPlace("Lago Blu")
			tt.mutate(&in)

			_, err := f.svc.SubmitNewPlace(context.Background(), expertUser("u1"), in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(f.requests.byID) != 0 {
				t.Errorf("invalid submission must not be stored")
			}
		})
	}
}

func TestModerationService_SubmitEdit_KeepsOnlyChangedFields(t *testing.T) {
	place := &domain.Place{ID: "p1", Name: "Lago Blu", IsFree: true, Categories: []domain.Category{domain.CategoryLake}}
	f := newModerationFixture(newStubRequestRepo(), newStubPlaceRepo(place), newStubUserRepo())

	req, err := f.svc.SubmitEdit(context.Background(), expertUser("u1"), "p1", ports.PlaceInput{
		Name:   str("Lago Blu"),
		IsFree: boolean(false),
	})
	if err != nil {
		t.Fatalf("SubmitEdit returned error: %v", err)
	}
	if req.IsNewPlace || req.PlaceID != "p1" {
		t.Errorf("unexpected request: %+v", req)
	}
	if req.ProposedChanges.Name != nil {
		t.Errorf("unchanged name must be dropped")
	}
	if req.ProposedChanges.IsFree == nil || *req.ProposedChanges.IsFree {
		t.Errorf("expected isFree=false proposed")
	}
}

func TestModerationService_SubmitEdit_Errors(t *testing.T) {
	place := &domain.Place{ID: "p1", Name: "Lago Blu", IsFree: true}
	other := &domain.Place{ID: "p2", Name: "Monte Rosa"}
	f := newModerationFixture(newStubRequestRepo(), newStubPlaceRepo(place, other), newStubUserRepo())
	ctx := context.Background()

	if _, err := f.svc.SubmitEdit(ctx, expertUser("u1"), "ghost", ports.PlaceInput{IsFree: boolean(false)}); !errors.Is(err, domain.ErrPlaceNotFound) {
		t.Errorf("expected ErrPlaceNotFound, got %v", err)
	}
	if _, err := f.svc.SubmitEdit(ctx, expertUser("u1"), "p1", ports.PlaceInput{IsFree: boolean(true)}); !errors.Is(err, domain.ErrNoChanges) {
		t.Errorf("expected ErrNoChanges, got %v", err)
	}
	var dup *domain.DuplicatePlaceError
	if _, err := f.svc.SubmitEdit(ctx, expertUser("u1"), "p1", ports.PlaceInput{Name: str("monte  rosa")}); !errors.As(err, &dup) || dup.PlaceID != "p2" {
		t.Errorf("expected duplicate of p2, got %v", err)
	}
	var ve *domain.ValidationError
	if _, err := f.svc.SubmitEdit(ctx, expertUser("u1"), "p1", ports.PlaceInput{Lat: float(45)}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for lone lat, got %v", err)
	}
	if _, err := f.svc.SubmitEdit(ctx, &domain.User{ID: "novice"}, "p1", ports.PlaceInput{IsFree: boolean(false)}); !errors.Is(err, domain.ErrNotExpert) {
		t.Errorf("expected ErrNotExpert, got %v", err)
	}
	if len(f.requests.byID) != 0 {
		t.Errorf("no request must be stored, got %d", len(f.requests.byID))
	}
}

// ---------------------------------------------------------------------------
// Decisions
// ---------------------------------------------------------------------------

func pendingNewPlace(id, userID string) *domain.PlaceEditRequest {
	changes := domain.PlaceChanges{
		Name:       str("Borgo Antico"),
		Categories: []domain.Category{domain.CategoryVillage},
		Location:   &domain.Location{Lat: 44.5, Lon: 8.1},
		IsFree:     boolean(true),
	}
	req := domain.NewPlaceRequest(userID, changes, time.Now().UTC())
	req.ID = id
	return req
}

func pendingEdit(id, userID, placeID string) *domain.PlaceEditRequest {
	req := domain.NewEditRequest(userID, placeID, domain.PlaceChanges{IsFree: boolean(false)}, time.Now().UTC())
	req.ID = id
	return req
}

func TestModerationService_ApproveNewPlace(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingNewPlace("r1", "u1")),
		newStubPlaceRepo(),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)

	res, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved", Comment: "benvenuto"})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if res.Place == nil || res.Place.ID == "" || res.Place.NormalizedName != "borgo antico" {
		t.Fatalf("expected materialized place, got %+v", res.Place)
	}
	if res.ExpAwarded != 30 || f.users.byID["u1"].Exp() != 30 {
		t.Errorf("expected 30 exp, got awarded=%d stored=%d", res.ExpAwarded, f.users.byID["u1"].Exp())
	}

	stored := f.requests.byID["r1"]
	if stored.Status != domain.RequestApproved || stored.OperatorID != "op1" || stored.OperatorComment != "benvenuto" {
		t.Errorf("decision not recorded: %+v", stored)
	}
	if stored.PlaceID != res.Place.ID {
		t.Errorf("request not linked to new place: %q vs %q", stored.PlaceID, res.Place.ID)
	}
	if _, ok := f.places.byID[res.Place.ID]; !ok {
		t.Errorf("place not stored")
	}
}

func TestModerationService_ApproveEdit(t *testing.T) {
	place := &domain.Place{ID: "p1", Name: "Lago Blu", Description: "Acqua limpida e fresca", IsFree: true}
	f := newModerationFixture(
		newStubRequestRepo(pendingEdit("r1", "u1", "p1")),
		newStubPlaceRepo(place),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)

	res, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if res.ExpAwarded != 10 || f.users.byID["u1"].Exp() != 10 {
		t.Errorf("expected 10 exp, got %d", f.users.byID["u1"].Exp())
	}

	merged := f.places.byID["p1"]
	if merged.IsFree {
		t.Errorf("isFree not merged")
	}
	if merged.Name != "Lago Blu" || merged.Description != "Acqua limpida e fresca" {
		t.Errorf("absent fields must be kept: %+v", merged)
	}
}

func TestModerationService_Reject(t *testing.T) {
	place := &domain.Place{ID: "p1", Name: "Lago Blu", IsFree: true}
	f := newModerationFixture(
		newStubRequestRepo(pendingEdit("r1", "u1", "p1")),
		newStubPlaceRepo(place),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)

	res, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "rejected", Comment: "no"})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if res.Place != nil || res.ExpAwarded != 0 {
		t.Errorf("rejection must not touch place or exp: %+v", res)
	}
	if f.places.saves != 0 || f.users.saves != 0 {
		t.Errorf("rejection must not write place or user")
	}
	if f.requests.byID["r1"].Status != domain.RequestRejected {
		t.Errorf("status not stored")
	}
}

func TestModerationService_DecideAlreadyProcessed(t *testing.T) {
	req := pendingEdit("r1", "u1", "p1")
	req.Status = domain.RequestApproved
	place := &domain.Place{ID: "p1", Name: "Lago Blu", IsFree: true}
	f := newModerationFixture(
		newStubRequestRepo(req),
		newStubPlaceRepo(place),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)

	_, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "rejected"})
	if !errors.Is(err, domain.ErrRequestAlreadyProcessed) {
		t.Fatalf("expected ErrRequestAlreadyProcessed, got %v", err)
	}
	if !f.places.byID["p1"].IsFree || f.users.byID["u1"].Exp() != 0 {
		t.Errorf("state must be unchanged")
	}
}

func TestModerationService_DecideLostRace(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingNewPlace("r1", "u1")),
		newStubPlaceRepo(),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	f.requests.decideErr = domain.ErrRequestAlreadyProcessed

	_, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"})
	if !errors.Is(err, domain.ErrRequestAlreadyProcessed) {
		t.Fatalf("expected ErrRequestAlreadyProcessed, got %v", err)
	}
	if f.places.inserts != 0 || f.users.saves != 0 {
		t.Errorf("losing decision must not create places or award exp")
	}
}

func TestModerationService_DecideErrors(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingEdit("r1", "u1", "gone")),
		newStubPlaceRepo(),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	ctx := context.Background()

	if _, err := f.svc.Decide(ctx, operator, "r1", ports.DecisionInput{Status: "pending"}); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Errorf("expected ErrInvalidDecision, got %v", err)
	}
	if _, err := f.svc.Decide(ctx, operator, "r1", ports.DecisionInput{Status: "maybe"}); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Errorf("expected ErrInvalidDecision, got %v", err)
	}
	if _, err := f.svc.Decide(ctx, operator, "ghost", ports.DecisionInput{Status: "approved"}); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
	if _, err := f.svc.Decide(ctx, operator, "r1", ports.DecisionInput{Status: "approved"}); !errors.Is(err, domain.ErrPlaceNotFound) {
		t.Errorf("expected ErrPlaceNotFound, got %v", err)
	}
	if f.requests.byID["r1"].Status != domain.RequestPending {
		t.Errorf("request must stay pending when the target place is gone")
	}
}

// ---------------------------------------------------------------------------
// Aborted approvals
// ---------------------------------------------------------------------------

var errStoreDown = errors.New("store unavailable")

func TestModerationService_ApproveNewPlace_InsertFailsReopens(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingNewPlace("r1", "u1")),
		newStubPlaceRepo(),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	f.places.insertErr = errStoreDown
	ctx := context.Background()

	if _, err := f.svc.Decide(ctx, operator, "r1", ports.DecisionInput{Status: "approved"}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	stored := f.requests.byID["r1"]
	if stored.Status != domain.RequestPending || stored.OperatorID != "" || stored.PlaceID != "" {
		t.Fatalf("request must be back to pending: %+v", stored)
	}
	if len(f.places.byID) != 0 || f.users.byID["u1"].Exp() != 0 {
		t.Errorf("no place or exp expected after aborted approval")
	}

	f.places.insertErr = nil
	res, err := f.svc.Decide(ctx, operator, "r1", ports.DecisionInput{Status: "approved"})
	if err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if res.ExpAwarded != 30 || f.requests.byID["r1"].PlaceID != res.Place.ID {
		t.Errorf("retry did not complete the approval: %+v", res)
	}
}

func TestModerationService_ApproveNewPlace_LinkFailsRemovesPlace(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingNewPlace("r1", "u1")),
		newStubPlaceRepo(),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	f.requests.linkErr = errStoreDown

	if _, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if f.places.deletes != 1 || len(f.places.byID) != 0 {
		t.Errorf("inserted place must be removed, deletes=%d places=%d", f.places.deletes, len(f.places.byID))
	}
	if f.requests.byID["r1"].Status != domain.RequestPending {
		t.Errorf("request must be back to pending")
	}
}

func TestModerationService_ApproveEdit_SaveFailsReopens(t *testing.T) {
	place := &domain.Place{ID: "p1", Name: "Lago Blu", IsFree: true}
	f := newModerationFixture(
		newStubRequestRepo(pendingEdit("r1", "u1", "p1")),
		newStubPlaceRepo(place),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	f.places.saveErr = errStoreDown

	if _, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if f.requests.byID["r1"].Status != domain.RequestPending || f.requests.reopens != 1 {
		t.Errorf("request must be reopened: %+v", f.requests.byID["r1"])
	}
	if !f.places.byID["p1"].IsFree || f.users.byID["u1"].Exp() != 0 {
		t.Errorf("place and submitter must be unchanged")
	}
}

func TestModerationService_RewardFailureRevertsEdit(t *testing.T) {
	place := &domain.Place{ID: "p1", Name: "Lago Blu", IsFree: true}
	f := newModerationFixture(
		newStubRequestRepo(pendingEdit("r1", "u1", "p1")),
		newStubPlaceRepo(place),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	f.users.saveErr = errStoreDown

	if _, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if !f.places.byID["p1"].IsFree {
		t.Errorf("merged edit must be reverted")
	}
	if f.requests.byID["r1"].Status != domain.RequestPending {
		t.Errorf("request must be back to pending")
	}
	if len(f.events.types()) != 0 {
		t.Errorf("no event expected for an aborted approval")
	}
}

func TestModerationService_RewardFailureRemovesNewPlace(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingNewPlace("r1", "u1")),
		newStubPlaceRepo(),
		newStubUserRepo(&domain.User{ID: "u1"}),
	)
	f.users.alwaysConflict = true

	if _, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"}); !errors.Is(err, domain.ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
	if len(f.places.byID) != 0 {
		t.Errorf("new place must be removed")
	}
	stored := f.requests.byID["r1"]
	if stored.Status != domain.RequestPending || stored.PlaceID != "" {
		t.Errorf("request must be pending and unlinked: %+v", stored)
	}
}

func TestModerationService_ApproveWithoutSubmitter(t *testing.T) {
	f := newModerationFixture(
		newStubRequestRepo(pendingNewPlace("r1", "gone")),
		newStubPlaceRepo(),
		newStubUserRepo(),
	)

	res, err := f.svc.Decide(context.Background(), operator, "r1", ports.DecisionInput{Status: "approved"})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if res.ExpAwarded != 0 || res.Place == nil {
		t.Errorf("expected approval without reward, got %+v", res)
	}
	if f.requests.byID["r1"].Status != domain.RequestApproved {
		t.Errorf("decision must stand")
	}
}
