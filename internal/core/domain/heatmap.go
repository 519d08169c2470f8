package domain

// HeatmapCell counts completed missions that required a given place.
type HeatmapCell struct {
	PlaceID           string    `json:"placeId"`
	Name              string    `json:"name"`
	Location          *Location `json:"location,omitempty"`
	CompletedMissions int       `json:"completedMissions"`
}
