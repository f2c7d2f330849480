package bank

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRecorder records bank events to a zerolog logger.
type LogRecorder struct {
	logger zerolog.Logger
}

// NewLogRecorder returns a recorder writing to l.
func NewLogRecorder(l zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: l}
}

// RecordEvent logs event. The request scoped logger carried by ctx is preferred so that
// the entry keeps the request id.
func (r *LogRecorder) RecordEvent(ctx context.Context, event string) {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &r.logger
	}

	l.Info().Str("component", "bank").Msg(event)
}
