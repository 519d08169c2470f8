package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// --- Request → Service input ---

func toPlaceInput(req placeRequest) (ports.PlaceInput, error) {
	in := ports.PlaceInput{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		Images:      req.Images,
		IsFree:      req.IsFree,
	}
	if req.Location == nil {
		return in, nil
	}

	var err error
	if in.Lat, err = placeCoordinate("location.lat", req.Location.Lat); err != nil {
		return ports.PlaceInput{}, err
	}
	if in.Lon, err = placeCoordinate("location.lon", req.Location.Lon); err != nil {
		return ports.PlaceInput{}, err
	}
	return in, nil
}

// placeCoordinate parses an optional coordinate. Absent values yield nil.
func placeCoordinate(field string, v any) (*float64, error) {
	raw := strings.TrimSpace(rawCoordinate(v))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.NewValidationError(field, "must be a number")
	}
	return &f, nil
}

func toCreateMissionInput(req createMissionRequest) ports.CreateMissionInput {
	return ports.CreateMissionInput{
		Name:           req.Name,
		Description:    req.Description,
		MinLevel:       req.MinLevel,
		RewardExp:      req.RewardExp,
		Categories:     req.Categories,
		RequiredPlaces: req.RequiredPlaces,
		RequiredCount:  req.RequiredCount,
	}
}

// rawCoordinate renders a decoded JSON value back to text for the visit
// validator. Absent values become "".
func rawCoordinate(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		// Objects, arrays and booleans can never parse as a coordinate.
		return "invalid"
	}
}

// --- Domain → HTTP response ---

func toLocationView(l *domain.Location) *locationView {
	if l == nil {
		return nil
	}
	return &locationView{Lat: l.Lat, Lon: l.Lon}
}

func toUserView(u *domain.User) userView {
	v := userView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		Surname:      u.Surname,
		ProfileImage: u.ProfileImage,
		Exp:          u.Exp(),
		Expert:       u.IsExpert(),
		Preferences: preferencesView{
			AlsoPaid:   u.Preferences.AlsoPaid,
			Categories: nonNil(domain.CategoryStrings(u.Preferences.Categories)),
		},
		DiscoveredPlaces:   []discoveredPlaceView{},
		MissionsProgresses: []missionProgressView{},
		CreatedAt:          u.CreatedAt,
	}
	for _, d := range u.DiscoveredPlaces() {
		v.DiscoveredPlaces = append(v.DiscoveredPlaces, discoveredPlaceView{PlaceID: d.PlaceID, VisitedAt: d.VisitedAt})
	}
	for _, p := range u.MissionProgresses() {
		v.MissionsProgresses = append(v.MissionsProgresses, missionProgressView{
			MissionID:             p.MissionID,
			RequiredPlacesVisited: nonNil(p.RequiredPlacesVisited),
			Progress:              p.Progress,
			Completed:             p.Completed,
		})
	}
	return v
}

func toPublicUserView(u *domain.User, viewerID string) publicUserView {
	return publicUserView{
		Username:          u.Username,
		Name:              u.Name,
		Surname:           u.Surname,
		ProfileImage:      u.ProfileImage,
		Exp:               u.Exp(),
		Expert:            u.IsExpert(),
		DiscoveredCount:   len(u.DiscoveredPlaceIDs()),
		CompletedMissions: len(u.CompletedMissionIDs()),
		Self:              viewerID != "" && viewerID == u.ID,
	}
}

func toMissionView(m *domain.Mission) missionView {
	return missionView{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		MinLevel:       m.MinLevel,
		RewardExp:      m.RewardExp,
		Categories:     nonNil(domain.CategoryStrings(m.Categories)),
		RequiredPlaces: nonNil(m.RequiredPlaces),
		RequiredCount:  m.RequiredCount,
	}
}

func toMissionViews(ms []*domain.Mission) []missionView {
	out := make([]missionView, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMissionView(m))
	}
	return out
}

func toPlaceView(p *domain.Place) placeView {
	return placeView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Categories:  nonNil(domain.CategoryStrings(p.Categories)),
		Location:    toLocationView(p.Location),
		Images:      nonNil(p.Images),
		IsFree:      p.IsFree,
	}
}

func toRankedPlaceViews(ranked []ports.RankedPlace) []placeView {
	out := make([]placeView, 0, len(ranked))
	for _, r := range ranked {
		v := toPlaceView(r.Place)
		v.Distance = r.DistanceKm
		out = append(out, v)
	}
	return out
}

func toPlaceRequestView(r *domain.PlaceEditRequest) placeRequestView {
	c := r.ProposedChanges
	return placeRequestView{
		ID:      r.ID,
		UserID:  r.UserID,
		PlaceID: r.PlaceID,
		ProposedChanges: placeChangesView{
			Name:        c.Name,
			Description: c.Description,
			Categories:  domain.CategoryStrings(c.Categories),
			Location:    toLocationView(c.Location),
			Images:      c.Images,
			IsFree:      c.IsFree,
		},
		IsNewPlace:      r.IsNewPlace,
		Status:          string(r.Status),
		OperatorID:      r.OperatorID,
		OperatorComment: r.OperatorComment,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toPlaceRequestViews(rs []*domain.PlaceEditRequest) []placeRequestView {
	out := make([]placeRequestView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toPlaceRequestView(r))
	}
	return out
}

func toDecisionResponse(r *ports.DecisionResult) decisionResponse {
	resp := decisionResponse{
		Request:    toPlaceRequestView(r.Request),
		ExpAwarded: r.ExpAwarded,
	}
	if r.Place != nil {
		pv := toPlaceView(r.Place)
		resp.Place = &pv
	}
	return resp
}

func toOperatorView(op *domain.Operator) operatorView {
	return operatorView{ID: op.ID, Email: op.Email, Role: op.Role, Name: op.Name, Surname: op.Surname}
}

func toHeatmapViews(cells []domain.HeatmapCell) []heatmapCellView {
	out := make([]heatmapCellView, 0, len(cells))
	for _, c := range cells {
		out = append(out, heatmapCellView{
			PlaceID:           c.PlaceID,
			Name:              c.Name,
			Location:          toLocationView(c.Location),
			CompletedMissions: c.CompletedMissions,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
