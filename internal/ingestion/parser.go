package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
)

var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{
	"Rank", "Name", "Platform", "Year", "Genre", "Publisher",
	"NA_Sales", "EU_Sales", "JP_Sales", "Other_Sales", "Global_Sales",
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) ParseFile(path string) ([]database.Game, error) {
	path = strings.TrimSpace(path)

	ext := filepath.Ext(path)
	if ext != ".csv" {
		return nil, fmt.Errorf("unsupported file type %s (expected .csv)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	return p.ParseCSV(f)
}

// ParseCSV reads vgsales rows by header name. Numeric cells that are empty,
// N/A or unparseable become NULL.
func (p *Parser) ParseCSV(r io.Reader) ([]database.Game, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var games []database.Game
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		cell := func(col string) (string, bool) {
			i := index[col]
			if i >= len(record) {
				return "", false
			}
			return record[i], true
		}

		games = append(games, database.Game{
			Rank:        toInt(cell("Rank")),
			Name:        toText(cell("Name")),
			Platform:    toText(cell("Platform")),
			Year:        toInt(cell("Year")),
			Genre:       toText(cell("Genre")),
			Publisher:   toText(cell("Publisher")),
			NASales:     toNum(cell("NA_Sales")),
			EUSales:     toNum(cell("EU_Sales")),
			JPSales:     toNum(cell("JP_Sales")),
			OtherSales:  toNum(cell("Other_Sales")),
			GlobalSales: toNum(cell("Global_Sales")),
		})
	}

	return games, nil
}

func toText(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

func toNum(s string, ok bool) *float64 {
	s = strings.TrimSpace(s)
	if !ok || s == "" || strings.EqualFold(s, "N/A") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toInt accepts "2006" and "2006.0".
func toInt(s string, ok bool) *int {
	f := toNum(s, ok)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
