package audit

import (
	"sync"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

func TestStats_Summary(t *testing.T) {
	stats := NewStats()

	inputs := []string{
		"SELECT name FROM vgs_view",
		"SELECT * FROM games",
		"SELECT 1; DROP TABLE vgs_view",
		"SELECT 1; DELETE FROM vgs_view",
	}
	for _, sql := range inputs {
		stats.Add(NewEntry("r", "", sql, sqlgate.Validate(sql)))
	}
	stats.Add(Entry{RequestID: "r", Error: "sql generation failed"})

	got := stats.Summary()

	if got.Total != 5 || got.Passed != 1 || got.Rejected != 3 || got.Failed != 1 {
		t.Errorf("unexpected counts %+v", got)
	}
	if got.RejectionRate != 0.75 {
		t.Errorf("rejection rate: %v, want 0.75", got.RejectionRate)
	}
	if got.ByTag[sqlgate.TagRejectKeyword] != 2 || got.ByKeyword["DROP"] != 1 || got.ByKeyword["DELETE"] != 1 {
		t.Errorf("unexpected breakdown %+v", got)
	}
}

func TestStats_ConcurrentAdd(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.Add(Entry{Tag: sqlgate.TagPass, Passed: true})
		}()
	}
	wg.Wait()

	if got := stats.Summary(); got.Total != 50 || got.Passed != 50 || got.RejectionRate != 0 {
		t.Errorf("unexpected summary %+v", got)
	}
}

func TestEntryFromStream(t *testing.T) {
	original := NewEntry("abcd1234", "top games", "SELECT 1; TRUNCATE vgs_view", sqlgate.Validate("SELECT 1; TRUNCATE vgs_view"))
	original.Elapsed = 1500 * time.Millisecond
	original.CreatedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	decoded, err := entryFromStream(streamValues(original))
	if err != nil {
		t.Fatalf("entryFromStream: %v", err)
	}
	if decoded != original {
		t.Errorf("decoded %+v, want %+v", decoded, original)
	}

	if _, err := entryFromStream(map[string]any{"passed": "true"}); err == nil {
		t.Error("expected error for entry without tag")
	}
	if _, err := entryFromStream(map[string]any{"tag": "pass", "passed": "maybe"}); err == nil {
		t.Error("expected error for invalid passed field")
	}
}
