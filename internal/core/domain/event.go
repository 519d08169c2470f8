package domain

import "time"

// ActivityType names an activity event emitted after a successful write.
type ActivityType string

const (
	ActivityPlaceDiscovered  ActivityType = "place.discovered"
	ActivityMissionCompleted ActivityType = "mission.completed"
	ActivityRequestSubmitted ActivityType = "place_request.submitted"
	ActivityRequestDecided   ActivityType = "place_request.decided"
)

// ActivityEvent is published for downstream consumers (analytics, audit).
type ActivityEvent struct {
	ID         string            `json:"id"`
	Type       ActivityType      `json:"type"`
	UserID     string            `json:"userId"`
	SubjectID  string            `json:"subjectId"`
	Exp        int               `json:"exp,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}
