package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrStatementTimeout  = errors.New("statement timeout exceeded")
	ErrReadOnlyViolation = errors.New("statement attempted to write in a read-only transaction")
)

// SQLSTATE codes raised by the guards Run sets up.
const (
	codeQueryCanceled          = "57014"
	codeReadOnlySQLTransaction = "25006"
)

// Run executes a statement that has already passed the SQL gate. It runs in
// a read-only transaction with a local statement timeout, so a statement the
// gate let through still cannot write.
func (db *DB) Run(ctx context.Context, sql string) (*QueryResult, error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if db.statementTimeout > 0 {
		timeout := fmt.Sprintf("SET LOCAL statement_timeout = %d", db.statementTimeout/time.Millisecond)
		if _, err := tx.Exec(ctx, timeout); err != nil {
			return nil, fmt.Errorf("failed to set statement timeout: %w", err)
		}
	}

	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", classifyError(err))
	}
	defer rows.Close()

	result := &QueryResult{Rows: [][]any{}}
	for _, field := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, field.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", classifyError(err))
	}

	return result, nil
}

// TopSellers returns the n best selling games from the view.
func (db *DB) TopSellers(ctx context.Context, relation string, n int) ([]TopSeller, error) {
	query := fmt.Sprintf(`
	SELECT name, global_sales
	FROM %s
	ORDER BY global_sales DESC
	LIMIT $1`, pgx.Identifier{relation}.Sanitize())

	rows, err := db.Pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("Unable to query the database: %w", err)
	}
	defer rows.Close()

	var sellers []TopSeller
	for rows.Next() {
		var (
			name  *string
			sales *float64
		)
		if err := rows.Scan(&name, &sales); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		seller := TopSeller{GlobalSales: sales}
		if name != nil {
			seller.Name = *name
		}
		sellers = append(sellers, seller)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sellers, nil
}

// normalizeValue converts driver types that do not encode well as JSON.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case pgtype.Numeric:
		f, err := value.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case []byte:
		return string(value)
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	default:
		return v
	}
}

// classifyError tags server errors produced by the read-only and timeout
// guards so callers can match them with errors.Is.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeQueryCanceled:
		return fmt.Errorf("%w: %w", ErrStatementTimeout, err)
	case codeReadOnlySQLTransaction:
		return fmt.Errorf("%w: %w", ErrReadOnlyViolation, err)
	default:
		return err
	}
}
