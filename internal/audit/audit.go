package audit

import (
	"context"
	"time"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

// Entry is one audited pass through the gate. OriginalSQL is what the model
// produced; SanitizedSQL is what was (or would have been) executed and is
// empty for rejections.
type Entry struct {
	RequestID    string        `json:"req_id"`
	Question     string        `json:"question,omitempty"`
	OriginalSQL  string        `json:"original_sql"`
	SanitizedSQL string        `json:"sanitized_sql,omitempty"`
	Tag          sqlgate.Tag   `json:"tag"`
	Keyword      string        `json:"keyword,omitempty"`
	Passed       bool          `json:"passed"`
	Reason       string        `json:"reason,omitempty"`
	Rows         int           `json:"rows"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Error        string        `json:"error,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewEntry fills the verdict fields of an Entry.
func NewEntry(requestID, question, originalSQL string, verdict sqlgate.Verdict) Entry {
	entry := Entry{
		RequestID:   requestID,
		Question:    question,
		OriginalSQL: originalSQL,
		Tag:         verdict.Tag,
		Keyword:     verdict.Keyword,
		Passed:      verdict.Passed,
		CreatedAt:   time.Now().UTC(),
	}
	if verdict.Passed {
		entry.SanitizedSQL = verdict.SQL
	} else {
		entry.Reason = verdict.SQL
	}
	return entry
}

// Recorder persists audit entries. Implementations must not fail the
// request: errors are logged and swallowed.
//
//go:generate mockgen -source=audit.go -destination=mocks/recorder_mock.go -package=mocks
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// MultiRecorder fans an entry out to every recorder in order.
type MultiRecorder []Recorder

func (m MultiRecorder) Record(ctx context.Context, entry Entry) {
	for _, r := range m {
		r.Record(ctx, entry)
	}
}
