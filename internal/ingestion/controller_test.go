package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/midwestpm/reportingest/internal/domain"
)

type storedRow struct {
	columns []string
	values  []any
}

// stubStore is an in-memory ReportStore with per-call failure injection.
type stubStore struct {
	rows      map[string][]storedRow
	failCalls map[int]bool
	writes    int
	deleteErr error
	countErr  error
}

func newStubStore() *stubStore {
	return &stubStore{
		rows:      make(map[string][]storedRow),
		failCalls: make(map[int]bool),
	}
}

func (s *stubStore) write(table string, columns []string, rows [][]any) error {
	s.writes++
	if s.failCalls[s.writes] {
		return errors.New("write refused")
	}
	for _, vals := range rows {
		s.rows[table] = append(s.rows[table], storedRow{columns: columns, values: vals})
	}
	return nil
}

func (s *stubStore) BulkInsert(_ context.Context, table string, columns []string, rows [][]any) error {
	return s.write(table, columns, rows)
}

func (s *stubStore) BulkUpsert(_ context.Context, table string, columns []string, _ []string, rows [][]any) error {
	return s.write(table, columns, rows)
}

func (s *stubStore) DeleteWhereEquals(_ context.Context, table string, column string, value any) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	var kept []storedRow
	for _, row := range s.rows[table] {
		match := false
		for i, col := range row.columns {
			if col == column && row.values[i] == value {
				match = true
				break
			}
		}
		if !match {
			kept = append(kept, row)
		}
	}
	s.rows[table] = kept
	return nil
}

func (s *stubStore) CountRows(_ context.Context, table string) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.rows[table])), nil
}

type stubLogs struct {
	entries []domain.IngestionLogEntry
}

func (s *stubLogs) Record(_ context.Context, entry domain.IngestionLogEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubLogs) List(_ context.Context, _ domain.ReportKind, _ string, _ int, _ int) ([]domain.IngestionLogEntry, error) {
	return s.entries, nil
}

func rentRollRecords(n int, snapshot string) []domain.Record {
	records := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, &domain.RentRollRecord{
			SnapshotDate: snapshot,
			Property:     "Oak Park",
			Unit:         fmt.Sprintf("%d", 100+i),
			Status:       "Occupied",
		})
	}
	return records
}

func TestIngestReplaceIsIdempotent(t *testing.T) {
	store := newStubStore()
	ctrl := NewController(store, nil, 0, false)
	spec := rentRollSpec(t)
	records := rentRollRecords(5, "2026-02-09")

	for i := 0; i < 2; i++ {
		result := ctrl.Ingest(context.Background(), spec, records, "2026-02-09", "rent_roll.xlsx")
		if result.Succeeded != 5 || result.Failed != 0 {
			t.Fatalf("run %d: succeeded %d, failed %d", i+1, result.Succeeded, result.Failed)
		}
	}

	if got := len(store.rows["rent_roll_snapshots"]); got != 5 {
		t.Fatalf("re-upload should leave the snapshot unchanged, got %d rows", got)
	}
}

func TestIngestReplaceKeepsOtherSnapshots(t *testing.T) {
	store := newStubStore()
	ctrl := NewController(store, nil, 0, false)
	spec := rentRollSpec(t)

	ctrl.Ingest(context.Background(), spec, rentRollRecords(3, "2026-02-08"), "2026-02-08", "a.xlsx")
	ctrl.Ingest(context.Background(), spec, rentRollRecords(5, "2026-02-09"), "2026-02-09", "b.xlsx")

	if got := len(store.rows["rent_roll_snapshots"]); got != 8 {
		t.Fatalf("expected both snapshots retained, got %d rows", got)
	}
}

func TestIngestBatchFailureContainment(t *testing.T) {
	store := newStubStore()
	store.failCalls[2] = true
	logs := &stubLogs{}
	ctrl := NewController(store, logs, 0, false)

	spec := rentRollSpec(t)
	spec.BatchSize = 20
	records := rentRollRecords(100, "2026-02-09")

	result := ctrl.Ingest(context.Background(), spec, records, "2026-02-09", "rent_roll.xlsx")

	if result.Attempted != 100 || result.Succeeded != 80 || result.Failed != 20 {
		t.Fatalf("attempted/succeeded/failed = %d/%d/%d", result.Attempted, result.Succeeded, result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one batch error, got %d", len(result.Errors))
	}
	if be := result.Errors[0]; be.Batch != 2 || be.Records != 20 {
		t.Fatalf("batch error = %+v", be)
	}
	if got := len(store.rows["rent_roll_snapshots"]); got != 80 {
		t.Fatalf("store should hold the surviving batches, got %d rows", got)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(logs.entries))
	}
	if entry := logs.entries[0]; entry.BatchIndex == nil || *entry.BatchIndex != 2 {
		t.Fatalf("audit entry batch index = %v", entry.BatchIndex)
	}
}

func TestIngestAuditEntriesKeepBatchIndexes(t *testing.T) {
	store := newStubStore()
	store.failCalls[2] = true
	store.failCalls[4] = true
	logs := &stubLogs{}
	ctrl := NewController(store, logs, 0, false)

	spec := rentRollSpec(t)
	spec.BatchSize = 20
	ctrl.Ingest(context.Background(), spec, rentRollRecords(100, "2026-02-09"), "2026-02-09", "rent_roll.xlsx")

	if len(logs.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs.entries))
	}
	// Each entry must keep the batch number it was recorded with, not track
	// the loop counter.
	for i, want := range []int{2, 4} {
		entry := logs.entries[i]
		if entry.BatchIndex == nil || *entry.BatchIndex != want {
			t.Fatalf("entry %d batch index = %v, want %d", i, entry.BatchIndex, want)
		}
	}
}

func TestIngestDeleteFailureStillInserts(t *testing.T) {
	store := newStubStore()
	store.deleteErr = errors.New("delete refused")
	logs := &stubLogs{}
	ctrl := NewController(store, logs, 0, false)

	result := ctrl.Ingest(context.Background(), rentRollSpec(t), rentRollRecords(3, "2026-02-09"), "2026-02-09", "rent_roll.xlsx")

	if result.Succeeded != 3 {
		t.Fatalf("inserts should proceed past a failed clear, succeeded = %d", result.Succeeded)
	}
	if len(result.Errors) != 1 || result.Errors[0].Batch != 0 {
		t.Fatalf("clear failure should be recorded without a batch index, errors = %+v", result.Errors)
	}
	if len(logs.entries) != 1 || logs.entries[0].BatchIndex != nil {
		t.Fatalf("audit entry = %+v", logs.entries)
	}
}

func TestIngestPausesBetweenBatches(t *testing.T) {
	store := newStubStore()
	ctrl := NewController(store, nil, DefaultBatchPause, false)

	var pauses []time.Duration
	ctrl.sleep = func(d time.Duration) { pauses = append(pauses, d) }

	spec := rentRollSpec(t)
	spec.BatchSize = 2
	ctrl.Ingest(context.Background(), spec, rentRollRecords(5, "2026-02-09"), "2026-02-09", "rent_roll.xlsx")

	// 3 batches, pauses between them only.
	if len(pauses) != 2 {
		t.Fatalf("expected 2 pauses, got %d", len(pauses))
	}
	for _, d := range pauses {
		if d != DefaultBatchPause {
			t.Fatalf("pause = %v", d)
		}
	}
}

func TestIngestEmptyRecordSetIsNoOp(t *testing.T) {
	store := newStubStore()
	ctrl := NewController(store, nil, 0, false)

	result := ctrl.Ingest(context.Background(), rentRollSpec(t), nil, "2026-02-09", "rent_roll.xlsx")

	if result.Attempted != 0 || result.Succeeded != 0 || result.Failed != 0 {
		t.Fatalf("empty ingest should be a no-op, result = %+v", result)
	}
	if store.writes != 0 {
		t.Fatalf("store should not be touched, saw %d writes", store.writes)
	}
}

func TestIngestVerifyReportsStoredTotal(t *testing.T) {
	store := newStubStore()
	ctrl := NewController(store, nil, 0, true)

	result := ctrl.Ingest(context.Background(), rentRollSpec(t), rentRollRecords(4, "2026-02-09"), "2026-02-09", "rent_roll.xlsx")

	if result.StoredTotal == nil || *result.StoredTotal != 4 {
		t.Fatalf("stored total = %v", result.StoredTotal)
	}
}

func TestIngestUpsertUsesConflictTarget(t *testing.T) {
	store := newStubStore()
	ctrl := NewController(store, nil, 0, false)

	spec, ok := SpecForKind(domain.ReportShowings)
	if !ok {
		t.Fatalf("showings spec missing")
	}

	records := []domain.Record{
		&domain.ShowingRecord{
			SnapshotDate:  "2026-02-09",
			GuestCardName: "Jane Renter",
			Property:      "Oak Park",
			ShowingTime:   "2026-02-10T15:00:00",
		},
	}

	result := ctrl.Ingest(context.Background(), spec, records, "2026-02-09", "showings.csv")
	if result.Succeeded != 1 {
		t.Fatalf("succeeded = %d", result.Succeeded)
	}
	if got := len(store.rows["showings"]); got != 1 {
		t.Fatalf("expected 1 row, got %d", got)
	}
}
