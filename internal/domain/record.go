package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportKind identifies which report layout a file contains. The kind is
// sniffed from the file name and selects the column mapping, row
// classification parameters, and persistence policy.
type ReportKind string

const (
	ReportRentRoll           ReportKind = "rent_roll"
	ReportLeasing            ReportKind = "leasing"
	ReportTenantEvents       ReportKind = "tenant_events"
	ReportShowings           ReportKind = "showings"
	ReportRentalApplications ReportKind = "rental_applications"
)

// Record is one normalized report row ready for persistence. Implementations
// keep Columns and Values aligned; nil pointer values persist as SQL NULL.
type Record interface {
	// Table returns the destination table name.
	Table() string
	// Columns returns the ordered column list for inserts.
	Columns() []string
	// Values returns the row values aligned with Columns.
	Values() []any
	// ConflictColumns returns the natural-key columns used as the upsert
	// conflict target. Empty for replace-by-snapshot variants.
	ConflictColumns() []string
}

// BatchError captures one failed write batch.
type BatchError struct {
	Batch   int    `json:"batch"`
	Records int    `json:"records"`
	Message string `json:"message"`
}

// IngestionResult aggregates the outcome of persisting one file's records.
// A batch either fully succeeds or is counted as fully failed; failures do
// not halt subsequent batches.
type IngestionResult struct {
	Kind         ReportKind   `json:"kind"`
	Table        string       `json:"table"`
	SnapshotDate string       `json:"snapshotDate"`
	Attempted    int          `json:"attempted"`
	Succeeded    int          `json:"succeeded"`
	Failed       int          `json:"failed"`
	Errors       []BatchError `json:"errors,omitempty"`
	// StoredTotal is an informational post-ingest row count of the
	// destination table, when verification is enabled.
	StoredTotal *int64 `json:"storedTotal,omitempty"`
}

// IngestionLogEntry records a batch-level ingestion failure for auditing.
type IngestionLogEntry struct {
	ID           uuid.UUID
	ReportKind   ReportKind
	FileName     string
	BatchIndex   *int
	ErrorMessage string
	CreatedAt    time.Time
}
