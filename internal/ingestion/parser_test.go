package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
)

const sampleCSV = `Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales
1,Wii Sports,Wii,2006,Sports,Nintendo,41.49,29.02,3.77,8.46,82.74
180,Madden NFL 2004,PS2,N/A,Sports,Electronic Arts,4.26,0.26,0.01,0.71,5.23
16601,"Spirits & Spells",GBA,2003.0,Platform,Wanadoo,0.01,0,0,0,
`

func TestParser_ParseCSV(t *testing.T) {
	games, err := NewParser().ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("got %d games, want 3", len(games))
	}

	first := games[0]
	if *first.Rank != 1 || *first.Name != "Wii Sports" || *first.Year != 2006 || *first.GlobalSales != 82.74 {
		t.Errorf("first row: %+v", first)
	}

	if games[1].Year != nil {
		t.Errorf("N/A year: %v, want nil", *games[1].Year)
	}

	last := games[2]
	if last.Year == nil || *last.Year != 2003 {
		t.Errorf("float year not parsed: %v", last.Year)
	}
	if last.GlobalSales != nil {
		t.Errorf("empty global sales: %v, want nil", *last.GlobalSales)
	}
	if *last.Name != "Spirits & Spells" {
		t.Errorf("quoted name: %q", *last.Name)
	}
}

func TestParser_ParseCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing column", "Rank,Name\n1,x\n", ErrMissingColumn},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseCSV(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestToNum(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"N/A", nil},
		{"n/a", nil},
		{"abc", nil},
		{"NaN", nil},
	}
	for _, tt := range tests {
		if got := toNum(tt.in, true); got != tt.want {
			t.Errorf("toNum(%q) = %v, want nil", tt.in, *got)
		}
	}
	if got := toNum("1.5", false); got != nil {
		t.Errorf("missing cell should be nil")
	}
}

type fakeStore struct {
	relation string
	games    []database.Game
	initOnly bool
}

func (f *fakeStore) ReplaceGames(_ context.Context, relation string, games []database.Game) (int64, error) {
	f.relation = relation
	f.games = games
	return int64(len(games)), nil
}

func (f *fakeStore) InitSchema(_ context.Context, relation string) error {
	f.relation = relation
	f.initOnly = true
	return nil
}

func TestPipeline_Ingest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vgsales.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{}
	n, err := NewPipeline(NewParser(), store, "vgs_view").Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if n != 3 || len(store.games) != 3 || store.relation != "vgs_view" {
		t.Errorf("n=%d store=%+v", n, store)
	}
}

func TestPipeline_IngestRejectsNonCSV(t *testing.T) {
	_, err := NewPipeline(NewParser(), &fakeStore{}, "vgs_view").Ingest(context.Background(), "data.txt")
	if err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("err = %v", err)
	}
}

func TestPipeline_InitSchema(t *testing.T) {
	store := &fakeStore{}
	if err := NewPipeline(NewParser(), store, "vgs_view").InitSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !store.initOnly {
		t.Error("InitSchema not forwarded")
	}
}
