package repository

import (
	"context"

	"github.com/midwestpm/reportingest/internal/domain"
)

// ReportStore is the keyed record store the ingestion controller writes to.
// The four operation shapes below are the only queries the core issues.
type ReportStore interface {
	// BulkInsert writes one batch of rows; the batch succeeds or fails as
	// a whole.
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error
	// BulkUpsert writes one batch using conflictColumns as the conflict
	// target; matching rows are overwritten, not duplicated.
	BulkUpsert(ctx context.Context, table string, columns []string, conflictColumns []string, rows [][]any) error
	// DeleteWhereEquals removes all rows where column equals value, used to
	// clear a snapshot before re-inserting it.
	DeleteWhereEquals(ctx context.Context, table string, column string, value any) error
	// CountRows returns the table's total row count, for post-ingest
	// verification.
	CountRows(ctx context.Context, table string) (int64, error)
}

// IngestionLogRepository records batch-level ingestion failures.
type IngestionLogRepository interface {
	Record(ctx context.Context, entry domain.IngestionLogEntry) error
	List(ctx context.Context, kind domain.ReportKind, fileName string, limit int, offset int) ([]domain.IngestionLogEntry, error)
}
