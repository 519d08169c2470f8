package messaging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// LogSink writes activity events to the application log. It stands in for
// the broker when no AMQP URL is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Send(_ context.Context, event domain.ActivityEvent) error {
	ev := s.log.Info().
		Str("activity_id", event.ID).
		Str("type", string(event.Type)).
		Str("user_id", event.UserID).
		Str("subject_id", event.SubjectID).
		Int("exp", event.Exp).
		Time("occurred_at", event.OccurredAt)
	if len(event.Attributes) > 0 {
		ev = ev.Interface("attributes", event.Attributes)
	}
	ev.Msg("activity")
	return nil
}
