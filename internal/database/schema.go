package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const gamesDDL = `
DROP TABLE IF EXISTS games CASCADE;
CREATE TABLE games (
    rank INTEGER,
    name TEXT,
    platform TEXT,
    year INTEGER,
    genre TEXT,
    publisher TEXT,
    na_sales NUMERIC,
    eu_sales NUMERIC,
    jp_sales NUMERIC,
    other_sales NUMERIC,
    global_sales NUMERIC
);`

var gameColumns = []string{
	"rank", "name", "platform", "year", "genre", "publisher",
	"na_sales", "eu_sales", "jp_sales", "other_sales", "global_sales",
}

func viewDDL(relation string) string {
	ident := pgx.Identifier{relation}.Sanitize()
	return fmt.Sprintf(`
DROP VIEW IF EXISTS %[1]s;
CREATE VIEW %[1]s AS
SELECT rank, name, platform, year, genre, publisher,
       na_sales, eu_sales, jp_sales, other_sales, global_sales
FROM games
WHERE global_sales IS NOT NULL;`, ident)
}

// InitSchema recreates an empty games table and the view over it.
func (db *DB) InitSchema(ctx context.Context, relation string) error {
	_, err := db.ReplaceGames(ctx, relation, nil)
	return err
}

// ReplaceGames swaps the games table contents for games in one transaction:
// drop and recreate the table, COPY the rows, recreate the view.
func (db *DB) ReplaceGames(ctx context.Context, relation string, games []Game) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, gamesDDL); err != nil {
		return 0, fmt.Errorf("failed to create games table: %w", err)
	}

	var copied int64
	if len(games) > 0 {
		copied, err = tx.CopyFrom(ctx, pgx.Identifier{"games"}, gameColumns, pgx.CopyFromRows(gameRows(games)))
		if err != nil {
			return 0, fmt.Errorf("failed to copy games: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, viewDDL(relation)); err != nil {
		return 0, fmt.Errorf("failed to create view %s: %w", relation, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return copied, nil
}

func gameRows(games []Game) [][]any {
	rows := make([][]any, 0, len(games))
	for _, g := range games {
		rows = append(rows, []any{
			g.Rank, g.Name, g.Platform, g.Year, g.Genre, g.Publisher,
			g.NASales, g.EUSales, g.JPSales, g.OtherSales, g.GlobalSales,
		})
	}
	return rows
}
