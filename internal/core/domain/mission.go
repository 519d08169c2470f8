package domain

// Mission is a goal completed by visiting either a fixed set of places or
// enough places of the qualifying categories.
type Mission struct {
	ID             string
	Name           string
	Description    string
	MinLevel       int
	RewardExp      int
	Categories     []Category
	RequiredPlaces []string
	RequiredCount  int
}

// IsPlaceBased reports whether the mission is driven by its required places.
// Place-based rules take precedence: categories are then ignored.
func (m *Mission) IsPlaceBased() bool {
	return len(m.RequiredPlaces) > 0
}

// Counts reports whether a visit to place contributes to the mission.
func (m *Mission) Counts(place *Place) bool {
	switch {
	case m.IsPlaceBased():
		for _, id := range m.RequiredPlaces {
			if id == place.ID {
				return true
			}
		}
		return false
	case len(m.Categories) > 0:
		return place.HasAnyCategory(m.Categories)
	default:
		return false
	}
}

// MissionProgress is a user's tracking record for one activated mission.
// It is frozen once Completed is set.
type MissionProgress struct {
	MissionID             string
	RequiredPlacesVisited []string
	Progress              int
	Completed             bool
}

// HasCounted reports whether placeID already contributed to this progress.
func (p *MissionProgress) HasCounted(placeID string) bool {
	for _, id := range p.RequiredPlacesVisited {
		if id == placeID {
			return true
		}
	}
	return false
}

// advance records a visit to place against mission m and reports whether
// this visit completed the mission.
func (p *MissionProgress) advance(m *Mission, place *Place) bool {
	if p.Completed || p.HasCounted(place.ID) || !m.Counts(place) {
		return false
	}
	p.RequiredPlacesVisited = append(p.RequiredPlacesVisited, place.ID)
	p.Progress = len(p.RequiredPlacesVisited)
	if p.Progress >= m.RequiredCount {
		p.Completed = true
		return true
	}
	return false
}

func (p *MissionProgress) clone() MissionProgress {
	out := *p
	out.RequiredPlacesVisited = append([]string(nil), p.RequiredPlacesVisited...)
	return out
}
