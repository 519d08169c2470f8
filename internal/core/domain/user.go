package domain

import (
	"slices"
	"time"
)

// Preferences drive the nearby-places ranker.
type Preferences struct {
	AlsoPaid   bool
	Categories []Category
}

// DiscoveredPlace records the first visit of a user to a place.
type DiscoveredPlace struct {
	PlaceID   string
	VisitedAt time.Time
}

// User is the aggregate root for a player. Experience, expert status,
// discovered places and mission progress are derived state and can only be
// changed through the methods below.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	ProfileImage string
	Preferences  Preferences
	// Version is the optimistic concurrency token checked on save.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	exp        int
	expert     bool
	discovered keyedList[DiscoveredPlace]
	progresses keyedList[*MissionProgress]
}

// UserState is the persisted form of a user's derived state.
type UserState struct {
	Exp               int
	Expert            bool
	DiscoveredPlaces  []DiscoveredPlace
	MissionProgresses []MissionProgress
}

// RestoreState hydrates derived state loaded from storage. Duplicate entries
// collapse onto the first occurrence.
func (u *User) RestoreState(s UserState) {
	u.exp = s.Exp
	u.expert = s.Expert
	u.discovered = keyedList[DiscoveredPlace]{}
	for _, d := range s.DiscoveredPlaces {
		u.discovered.add(d.PlaceID, d)
	}
	u.progresses = keyedList[*MissionProgress]{}
	for _, p := range s.MissionProgresses {
		mp := p.clone()
		u.progresses.add(p.MissionID, &mp)
	}
}

// State returns a snapshot of the derived state for persistence.
func (u *User) State() UserState {
	return UserState{
		Exp:               u.exp,
		Expert:            u.expert,
		DiscoveredPlaces:  u.DiscoveredPlaces(),
		MissionProgresses: u.MissionProgresses(),
	}
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	c.Preferences.Categories = slices.Clone(u.Preferences.Categories)
	c.RestoreState(u.State())
	return &c
}

func (u *User) Exp() int       { return u.exp }
func (u *User) IsExpert() bool { return u.expert }

// HasDiscovered reports whether the user already visited placeID.
func (u *User) HasDiscovered(placeID string) bool {
	_, ok := u.discovered.get(placeID)
	return ok
}

// DiscoveredPlaces returns the visits in discovery order.
func (u *User) DiscoveredPlaces() []DiscoveredPlace {
	out := make([]DiscoveredPlace, 0, u.discovered.size())
	u.discovered.each(func(_ string, d DiscoveredPlace) {
		out = append(out, d)
	})
	return out
}

// DiscoveredPlaceIDs returns the ids of the discovered places.
func (u *User) DiscoveredPlaceIDs() []string {
	return append([]string(nil), u.discovered.order...)
}

// RecordVisit adds placeID to the discovered places. It reports false and
// changes nothing when the place was already known.
func (u *User) RecordVisit(placeID string, at time.Time) bool {
	return u.discovered.add(placeID, DiscoveredPlace{PlaceID: placeID, VisitedAt: at})
}

// MissionProgresses returns copies of the progress records in activation order.
func (u *User) MissionProgresses() []MissionProgress {
	out := make([]MissionProgress, 0, u.progresses.size())
	u.progresses.each(func(_ string, p *MissionProgress) {
		out = append(out, p.clone())
	})
	return out
}

// MissionProgress returns a copy of the progress for missionID.
func (u *User) MissionProgress(missionID string) (MissionProgress, bool) {
	p, ok := u.progresses.get(missionID)
	if !ok {
		return MissionProgress{}, false
	}
	return p.clone(), true
}

// ActiveMissionIDs returns the ids of every activated mission.
func (u *User) ActiveMissionIDs() []string {
	return append([]string(nil), u.progresses.order...)
}

// InFlightMissionIDs returns the ids of activated, not yet completed missions.
func (u *User) InFlightMissionIDs() []string {
	var ids []string
	u.progresses.each(func(id string, p *MissionProgress) {
		if !p.Completed {
			ids = append(ids, id)
		}
	})
	return ids
}

// CompletedMissionIDs returns the ids of completed missions.
func (u *User) CompletedMissionIDs() []string {
	var ids []string
	u.progresses.each(func(id string, p *MissionProgress) {
		if p.Completed {
			ids = append(ids, id)
		}
	})
	return ids
}

// ActivateMission starts tracking progress for missionID.
func (u *User) ActivateMission(missionID string) error {
	if !u.progresses.add(missionID, &MissionProgress{MissionID: missionID}) {
		return ErrMissionAlreadyActive
	}
	return nil
}

// RemoveMission drops the progress for missionID.
func (u *User) RemoveMission(missionID string) error {
	if !u.progresses.remove(missionID) {
		return ErrMissionNotActive
	}
	return nil
}

// ReconcileVisit applies a visit to place to every in-flight mission found in
// missions. Progress records whose mission is missing are skipped. Rewards of
// completed missions go through the experience ledger. The ids of the
// missions completed by this visit are returned.
func (u *User) ReconcileVisit(place *Place, missions map[string]*Mission) []string {
	var completed []string
	u.progresses.each(func(id string, p *MissionProgress) {
		if p.Completed {
			return
		}
		m, ok := missions[id]
		if !ok || m == nil {
			return
		}
		if p.advance(m, place) {
			completed = append(completed, id)
			u.AddExperience(m.RewardExp)
		}
	})
	return completed
}
