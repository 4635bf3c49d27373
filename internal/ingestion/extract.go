package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/midwestpm/reportingest/internal/domain"
)

// stateZipRe recognizes the "…, ST 12345" tail of a property address, the
// shape section header rows take when the export omits the "->" marker.
var stateZipRe = regexp.MustCompile(`\b[A-Z]{2}\s+\d{5}\b`)

const sectionMarker = "->"

// RowContext carries the per-file state a row mapper needs.
type RowContext struct {
	Section      string
	SnapshotDate string
	FileName     string
}

// RowMapper materializes one classified data row into a typed record. It
// returns false when the row's required identifying fields are empty, in
// which case the row is dropped rather than stored partially.
type RowMapper func(ctx RowContext, row []string) (domain.Record, bool)

// rowClass is the outcome of classifying one grid row.
type rowClass int

const (
	rowBlank rowClass = iota
	rowSection
	rowTotals
	rowData
)

// parseContext is the cross-row state threaded through one extraction pass.
// It is owned by a single call to Extract and never shared.
type parseContext struct {
	section   string
	headerRow int
}

// classifyRow decides what one row is, in priority order: blank, section
// header, totals, data. Section detection runs before the data check on
// every row, so a row that could be read both ways is always treated as a
// section header to protect the section context. For section rows the
// cleaned label is returned.
func classifyRow(spec ReportSpec, row []string) (rowClass, string) {
	if rowEmpty(row) {
		return rowBlank, ""
	}

	first := cellAt(row, 0)

	if label, ok := sectionLabel(spec, first, row); ok {
		return rowSection, label
	}

	// Totals rows only exist in the sectioned grid layouts; flat exports can
	// legitimately start a cell with "Total".
	if spec.Sectioned && (strings.Contains(first, "Units") || strings.HasPrefix(first, "Total")) {
		return rowTotals, ""
	}

	return rowData, ""
}

func sectionLabel(spec ReportSpec, first string, row []string) (string, bool) {
	if first == "" {
		return "", false
	}

	if strings.HasPrefix(first, sectionMarker) {
		stripped := strings.TrimSpace(strings.TrimPrefix(first, sectionMarker))
		return LeadingLabel(stripped), true
	}

	if !spec.Sectioned {
		return "", false
	}

	if strings.Contains(first, " - ") && stateZipRe.MatchString(first) {
		return LeadingLabel(first), true
	}

	// A lone first cell on an otherwise empty row is a property header in
	// the grid layouts, since their data rows always carry more columns.
	if rowEmpty(row[1:]) {
		return LeadingLabel(first), true
	}

	return "", false
}

// findHeader scans for the header row of the report type. It returns -1 when
// no header is present, which callers treat as an empty/unparseable report.
func findHeader(spec ReportSpec, grid RawGrid) int {
	limit := len(grid)
	if spec.HeaderScanRows > 0 && spec.HeaderScanRows < limit {
		limit = spec.HeaderScanRows
	}
	for i := 0; i < limit; i++ {
		if strings.EqualFold(cellAt(grid[i], 0), spec.HeaderMarker) {
			return i
		}
	}
	if spec.PreambleRows > 0 && spec.PreambleRows < len(grid) {
		// Older exports have no header label; data starts after a fixed
		// preamble instead.
		return spec.PreambleRows - 1
	}
	return -1
}

// Extract converts a decoded grid into the ordered record sequence for one
// report. It is a single left-to-right pass with no backtracking; a
// malformed row is skipped or yields nil fields, never an error. Zero
// records means the report was empty or unrecognizable.
func Extract(spec ReportSpec, grid RawGrid, snapshotDate, fileName string) []domain.Record {
	ctx := parseContext{headerRow: findHeader(spec, grid)}
	if ctx.headerRow < 0 {
		return nil
	}

	var records []domain.Record
	seen := make(map[string]bool)

	for i := ctx.headerRow + 1; i < len(grid); i++ {
		row := grid[i]

		class, label := classifyRow(spec, row)
		switch class {
		case rowBlank, rowTotals:
			continue
		case rowSection:
			ctx.section = label
			continue
		}

		if spec.Sectioned && ctx.section == "" {
			continue
		}

		rec, ok := spec.MapRow(RowContext{
			Section:      ctx.section,
			SnapshotDate: snapshotDate,
			FileName:     fileName,
		}, row)
		if !ok {
			continue
		}

		if spec.Dedupe {
			key := naturalKey(rec)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		records = append(records, rec)
	}

	return records
}

// naturalKey flattens a record's conflict-target values into a string for
// in-file deduplication.
func naturalKey(rec domain.Record) string {
	cols := rec.Columns()
	vals := rec.Values()
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		index[col] = i
	}

	var b strings.Builder
	for _, col := range rec.ConflictColumns() {
		if i, ok := index[col]; ok {
			fmt.Fprintf(&b, "%v|", vals[i])
		}
	}
	return b.String()
}
