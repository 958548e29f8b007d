package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRecorder writes entries to the structured log: rejections at warn,
// everything else at info.
type LogRecorder struct {
	logger *zerolog.Logger
}

func NewLogRecorder(logger *zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(_ context.Context, entry Entry) {
	level := zerolog.InfoLevel
	if !entry.Passed {
		level = zerolog.WarnLevel
	}
	if entry.Error != "" {
		level = zerolog.ErrorLevel
	}

	event := r.logger.WithLevel(level).
		Str("req_id", entry.RequestID).
		Str("tag", entry.Tag.String()).
		Bool("passed", entry.Passed).
		Str("original_sql", entry.OriginalSQL)

	if entry.Passed {
		event = event.Str("sanitized_sql", entry.SanitizedSQL).
			Int("rows", entry.Rows).
			Dur("elapsed", entry.Elapsed)
	} else {
		event = event.Str("reason", entry.Reason)
	}
	if entry.Keyword != "" {
		event = event.Str("keyword", entry.Keyword)
	}
	if entry.Error != "" {
		event = event.Str("error", entry.Error)
	}

	event.Msg("sql audit")
}
