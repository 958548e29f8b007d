package audit

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

// Summary is a point-in-time view of Stats.
type Summary struct {
	Total         int                 `json:"total"`
	Passed        int                 `json:"passed"`
	Rejected      int                 `json:"rejected"`
	Failed        int                 `json:"failed"`
	RejectionRate float64             `json:"rejection_rate"`
	ByTag         map[sqlgate.Tag]int `json:"by_tag"`
	ByKeyword     map[string]int      `json:"by_keyword"`
}

// Stats aggregates audit entries. It is safe for concurrent use and also
// satisfies Recorder.
type Stats struct {
	mu        sync.Mutex
	total     int
	passed    int
	failed    int
	byTag     map[sqlgate.Tag]int
	byKeyword map[string]int
}

func NewStats() *Stats {
	return &Stats{
		byTag:     make(map[sqlgate.Tag]int),
		byKeyword: make(map[string]int),
	}
}

func (s *Stats) Add(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	if entry.Tag != "" {
		s.byTag[entry.Tag]++
	}
	if entry.Keyword != "" {
		s.byKeyword[entry.Keyword]++
	}
	if entry.Passed {
		s.passed++
	}
	if entry.Error != "" {
		s.failed++
	}
}

func (s *Stats) Record(_ context.Context, entry Entry) {
	s.Add(entry)
}

func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		Total:     s.total,
		Passed:    s.passed,
		Failed:    s.failed,
		ByTag:     make(map[sqlgate.Tag]int, len(s.byTag)),
		ByKeyword: make(map[string]int, len(s.byKeyword)),
	}
	for tag, n := range s.byTag {
		summary.ByTag[tag] = n
		if tag.IsRejection() {
			summary.Rejected += n
		}
	}
	for kw, n := range s.byKeyword {
		summary.ByKeyword[kw] = n
	}
	if gated := summary.Passed + summary.Rejected; gated > 0 {
		summary.RejectionRate = float64(summary.Rejected) / float64(gated)
	}

	return summary
}
