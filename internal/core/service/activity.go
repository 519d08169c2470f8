package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/placequest/explorer-api/internal/core/domain"
)

func newActivity(kind domain.ActivityType, userID, subjectID string, exp int, attrs map[string]string) domain.ActivityEvent {
	return domain.ActivityEvent{
		ID:         uuid.NewString(),
		Type:       kind,
		UserID:     userID,
		SubjectID:  subjectID,
		Exp:        exp,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
}
