package audit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

// entryFromStream is the inverse of streamValues.
func entryFromStream(values map[string]any) (Entry, error) {
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}

	tag := sqlgate.Tag(str("tag"))
	if tag == "" {
		return Entry{}, fmt.Errorf("audit entry has no tag")
	}

	passed, err := strconv.ParseBool(str("passed"))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid passed field: %w", err)
	}

	rows, _ := strconv.Atoi(str("rows"))
	elapsedMs, _ := strconv.ParseInt(str("elapsed_ms"), 10, 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, str("created_at"))

	return Entry{
		RequestID:    str("req_id"),
		Question:     str("question"),
		OriginalSQL:  str("original_sql"),
		SanitizedSQL: str("sanitized_sql"),
		Tag:          tag,
		Keyword:      str("keyword"),
		Passed:       passed,
		Reason:       str("reason"),
		Rows:         rows,
		Elapsed:      time.Duration(elapsedMs) * time.Millisecond,
		Error:        str("error"),
		CreatedAt:    createdAt,
	}, nil
}
