package ingestion

import (
	"context"
	"log"
	"time"

	"github.com/midwestpm/reportingest/internal/domain"
	"github.com/midwestpm/reportingest/internal/repository"
)

// DefaultBatchPause is the pause between batch submissions, keeping the
// store's request rate limits happy. Part of the design contract, not an
// optimization knob.
const DefaultBatchPause = 250 * time.Millisecond

// Controller persists an extracted record sequence durably and idempotently,
// in fixed-size sequential batches, and reports a summary. A failed batch is
// recorded and skipped; it never halts the remaining batches.
type Controller struct {
	store  repository.ReportStore
	logs   repository.IngestionLogRepository
	pause  time.Duration
	verify bool
	sleep  func(time.Duration)
}

// NewController wires a controller. logs may be nil to disable failure
// auditing; verify enables the informational post-ingest row count.
func NewController(store repository.ReportStore, logs repository.IngestionLogRepository, pause time.Duration, verify bool) *Controller {
	if pause < 0 {
		pause = DefaultBatchPause
	}
	return &Controller{
		store:  store,
		logs:   logs,
		pause:  pause,
		verify: verify,
		sleep:  time.Sleep,
	}
}

// Ingest writes all records (one variant, one snapshot date) under the
// spec's persistence policy. Replace-by-snapshot clears the snapshot's prior
// rows first, then inserts; upsert-by-natural-key overwrites on the conflict
// target. Batches are submitted strictly sequentially.
func (c *Controller) Ingest(ctx context.Context, spec ReportSpec, records []domain.Record, snapshotDate, fileName string) domain.IngestionResult {
	result := domain.IngestionResult{
		Kind:         spec.Kind,
		SnapshotDate: snapshotDate,
		Attempted:    len(records),
	}
	if len(records) == 0 {
		return result
	}

	table := records[0].Table()
	columns := records[0].Columns()
	conflict := records[0].ConflictColumns()
	result.Table = table

	if !spec.Upsert {
		// Clearing and re-inserting is not atomic; a crash in between
		// leaves the snapshot empty but a re-upload reproduces the same
		// end state.
		if err := c.store.DeleteWhereEquals(ctx, table, "snapshot_date", snapshotDate); err != nil {
			log.Printf("[INGEST] %s: failed to clear snapshot %s: %v", table, snapshotDate, err)
			result.Errors = append(result.Errors, domain.BatchError{Message: err.Error()})
			c.audit(ctx, spec, fileName, nil, err)
		}
	}

	batchSize := spec.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	batch := 0
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch++

		if batch > 1 && c.pause > 0 {
			c.sleep(c.pause)
		}

		rows := make([][]any, 0, end-start)
		for _, rec := range records[start:end] {
			rows = append(rows, rec.Values())
		}

		var err error
		if spec.Upsert {
			err = c.store.BulkUpsert(ctx, table, columns, conflict, rows)
		} else {
			err = c.store.BulkInsert(ctx, table, columns, rows)
		}
		if err != nil {
			log.Printf("[INGEST] %s: batch %d failed: %v", table, batch, err)
			result.Failed += len(rows)
			result.Errors = append(result.Errors, domain.BatchError{
				Batch:   batch,
				Records: len(rows),
				Message: err.Error(),
			})
			failedBatch := batch
			c.audit(ctx, spec, fileName, &failedBatch, err)
			continue
		}
		result.Succeeded += len(rows)
	}

	if c.verify {
		if total, err := c.store.CountRows(ctx, table); err == nil {
			result.StoredTotal = &total
		} else {
			log.Printf("[INGEST] %s: count verification failed: %v", table, err)
		}
	}

	return result
}

func (c *Controller) audit(ctx context.Context, spec ReportSpec, fileName string, batch *int, err error) {
	if c.logs == nil || err == nil {
		return
	}
	entry := domain.IngestionLogEntry{
		ReportKind:   spec.Kind,
		FileName:     fileName,
		BatchIndex:   batch,
		ErrorMessage: err.Error(),
	}
	if logErr := c.logs.Record(ctx, entry); logErr != nil {
		log.Printf("[INGEST] failed to record ingestion log: %v", logErr)
	}
}
