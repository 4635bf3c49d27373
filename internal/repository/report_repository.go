package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// reportStore implements ReportStore on top of a pgx pool. Table and column
// names always come from the in-process report dispatch table, never from
// input, so statements are assembled with plain string building plus
// numbered placeholders for the values.
type reportStore struct {
	pool *pgxpool.Pool
}

// NewReportStore wires a ReportStore backed by pgxpool.
func NewReportStore(pool *pgxpool.Pool) ReportStore {
	return &reportStore{pool: pool}
}

func (r *reportStore) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if r.pool == nil {
		return fmt.Errorf("report store not initialized")
	}
	if len(rows) == 0 {
		return nil
	}

	sql, args := buildInsert(table, columns, rows, nil)
	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (r *reportStore) BulkUpsert(ctx context.Context, table string, columns []string, conflictColumns []string, rows [][]any) error {
	if r.pool == nil {
		return fmt.Errorf("report store not initialized")
	}
	if len(rows) == 0 {
		return nil
	}

	sql, args := buildInsert(table, columns, rows, conflictColumns)
	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", table, err)
	}
	return nil
}

func (r *reportStore) DeleteWhereEquals(ctx context.Context, table string, column string, value any) error {
	if r.pool == nil {
		return fmt.Errorf("report store not initialized")
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, column)
	if _, err := r.pool.Exec(ctx, sql, value); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func (r *reportStore) CountRows(ctx context.Context, table string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("report store not initialized")
	}

	var count int64
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := r.pool.QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// buildInsert assembles a multi-row INSERT, optionally with an ON CONFLICT
// DO UPDATE clause overwriting every non-key column from EXCLUDED.
func buildInsert(table string, columns []string, rows [][]any, conflictColumns []string) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(rows)*len(columns))

	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")

	placeholder := 1
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", placeholder)
			placeholder++
			args = append(args, row[j])
		}
		b.WriteString(")")
	}

	if len(conflictColumns) > 0 {
		conflictSet := make(map[string]bool, len(conflictColumns))
		for _, col := range conflictColumns {
			conflictSet[col] = true
		}

		b.WriteString(" ON CONFLICT (")
		b.WriteString(strings.Join(conflictColumns, ", "))
		b.WriteString(") DO UPDATE SET ")

		first := true
		for _, col := range columns {
			if conflictSet[col] {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(col)
			b.WriteString(" = EXCLUDED.")
			b.WriteString(col)
		}
	}

	return b.String(), args
}
