package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

func TestUserHandler_Get_PublicView(t *testing.T) {
	other := &domain.User{ID: "u2", Username: "bob", Email: "bob@example.com"}
	other.AddExperience(55)
	users := &stubUserService{
		getFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "bob" {
				t.Fatalf("unexpected username %q", username)
			}
			return other, nil
		},
	}
	handler := NewUserHandler(users)

	c, rec := newContext(http.MethodGet, "/api/v1/users/bob", "")
	c.SetParamNames("username")
	c.SetParamValues("bob")
	if err := handler.Get(asUser(c, testUser(0))); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["expert"] != true || resp["self"] != false || resp["exp"] != float64(55) {
		t.Fatalf("unexpected view %+v", resp)
	}
	if _, leaked := resp["email"]; leaked {
		t.Fatalf("email must not be public")
	}
}

func TestUserHandler_Get_Self(t *testing.T) {
	me := testUser(0)
	users := &stubUserService{
		getFn: func(ctx context.Context, username string) (*domain.User, error) { return me, nil },
	}
	handler := NewUserHandler(users)

	c, rec := newContext(http.MethodGet, "/api/v1/users/alice", "")
	if err := handler.Get(asUser(c, me)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp publicUserView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Self {
		t.Fatalf("expected self=true")
	}
}

func TestUserHandler_List_ExpertFilter(t *testing.T) {
	users := &stubUserService{
		listFn: func(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
			if filter.Expert == nil || !*filter.Expert {
				t.Fatalf("expected expert=true filter")
			}
			return []*domain.User{{ID: "u2", Username: "bob"}}, nil
		},
	}
	handler := NewUserHandler(users)

	c, rec := newContext(http.MethodGet, "/api/v1/users?expert=true", "")
	if err := handler.List(asUser(c, testUser(0))); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []publicUserView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].Username != "bob" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestUserHandler_List_BadExpertValue(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := newContext(http.MethodGet, "/api/v1/users?expert=maybe", "")
	var ve *domain.ValidationError
	if err := handler.List(asUser(c, testUser(0))); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserHandler_MissionHeatmap(t *testing.T) {
	users := &stubUserService{
		heatmapFn: func(ctx context.Context) ([]domain.HeatmapCell, error) {
			return []domain.HeatmapCell{{PlaceID: "p1", Name: "Lago Blu", CompletedMissions: 3}}, nil
		},
	}
	handler := NewUserHandler(users)

	c, rec := newContext(http.MethodGet, "/api/v1/heatmap/missions", "")
	if err := handler.MissionHeatmap(asOperator(c, moderator)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []heatmapCellView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].CompletedMissions != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}
