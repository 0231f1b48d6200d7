package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// LogNotifier writes notifications to the log. It is used when no broker
// is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, note ports.Notification) error {
	n.log.Info().
		Str("type", note.Type).
		Str("recipient", note.Recipient).
		Str("reference_id", note.ReferenceID).
		Str("company", note.CompanyName).
		Msg("notification")
	return nil
}

func (n *LogNotifier) Close() error { return nil }
