package ingestion

import (
	"testing"
	"time"
)

func TestResolveSnapshotDateFromAsOfMarker(t *testing.T) {
	grid := RawGrid{
		{"Rent Roll Report"},
		{"As of: 2/9/2026"},
		{"Unit", "Bed/Bath"},
	}

	got := ResolveSnapshotDate(grid, "rent_roll-20250101.xlsx", time.Now())
	if got != "2026-02-09" {
		t.Fatalf("expected As of marker to win, got %q", got)
	}
}

func TestResolveSnapshotDateFromFileName(t *testing.T) {
	got := ResolveSnapshotDate(RawGrid{{"Unit"}}, "tenant_tickler-20260209.csv", time.Now())
	if got != "2026-02-09" {
		t.Fatalf("expected filename date, got %q", got)
	}
}

func TestResolveSnapshotDateFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	got := ResolveSnapshotDate(RawGrid{{"Unit"}}, "showings.csv", now)
	if got != "2026-03-01" {
		t.Fatalf("expected processing date fallback, got %q", got)
	}
}

func TestResolveSnapshotDateScanDepthBounded(t *testing.T) {
	grid := make(RawGrid, 0, 12)
	for i := 0; i < 11; i++ {
		grid = append(grid, []string{""})
	}
	// Marker beyond the scan window is ignored.
	grid = append(grid, []string{"As of: 2/9/2026"})

	got := ResolveSnapshotDate(grid, "rent_roll-20260101.xlsx", time.Now())
	if got != "2026-01-01" {
		t.Fatalf("expected filename date, got %q", got)
	}
}
