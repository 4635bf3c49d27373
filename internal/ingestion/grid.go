package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when an uploaded file is not CSV or XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// RawGrid is the decoded 2-D cell grid of one report, immutable once
// produced. XLSX cells are read raw so date serials arrive as numeric
// strings; CSV lines are split with the quote-toggle tokenizer.
type RawGrid [][]string

// DecodeGrid turns raw file bytes into a RawGrid based on the file
// extension.
func DecodeGrid(fileName string, payload []byte) (RawGrid, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv", ".txt":
		return GridFromCSV(payload), nil
	case ".xlsx":
		return GridFromXLSX(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// GridFromCSV splits delimited text into tokenized rows. Decoding never
// fails; malformed quoting degrades at the tokenizer level.
func GridFromCSV(payload []byte) RawGrid {
	payload = bytes.TrimPrefix(payload, byteOrderMark)

	lines := strings.Split(strings.ReplaceAll(string(payload), "\r\n", "\n"), "\n")
	grid := make(RawGrid, 0, len(lines))
	for _, line := range lines {
		grid = append(grid, SplitLine(line, ','))
	}
	return grid
}

// GridFromXLSX reads the first sheet of a workbook into a grid of raw cell
// values.
func GridFromXLSX(payload []byte) (RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return RawGrid(rows), nil
}

// cellAt returns the trimmed cell at index i, tolerating short rows.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowEmpty reports whether every cell of the row is blank.
func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
