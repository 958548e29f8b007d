package audit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// StreamRecorder appends entries to a Redis stream, trimmed approximately to
// maxLen entries.
type StreamRecorder struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zerolog.Logger
}

func NewStreamRecorder(client *redis.Client, stream string, maxLen int64, logger *zerolog.Logger) *StreamRecorder {
	return &StreamRecorder{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: logger,
	}
}

func (r *StreamRecorder) Record(ctx context.Context, entry Entry) {
	err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: streamValues(entry),
	}).Err()
	if err != nil {
		r.logger.Warn().Err(err).Str("stream", r.stream).Str("req_id", entry.RequestID).Msg("failed to publish audit entry")
	}
}

func streamValues(entry Entry) map[string]any {
	return map[string]any{
		"req_id":        entry.RequestID,
		"question":      entry.Question,
		"original_sql":  entry.OriginalSQL,
		"sanitized_sql": entry.SanitizedSQL,
		"tag":           entry.Tag.String(),
		"keyword":       entry.Keyword,
		"passed":        strconv.FormatBool(entry.Passed),
		"reason":        entry.Reason,
		"rows":          strconv.Itoa(entry.Rows),
		"elapsed_ms":    strconv.FormatInt(entry.Elapsed.Milliseconds(), 10),
		"error":         entry.Error,
		"created_at":    entry.CreatedAt.Format(time.RFC3339Nano),
	}
}
