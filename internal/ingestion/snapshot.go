package ingestion

import (
	"regexp"
	"time"
)

var (
	asOfRe         = regexp.MustCompile(`(?i)As of:\s*(\d{1,2})/(\d{1,2})/(\d{4})`)
	fileNameDateRe = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// asOfScanRows is how deep into the grid the "As of:" marker is looked for.
const asOfScanRows = 10

// ResolveSnapshotDate determines the single effective date for a whole
// report. Strategies in order, first match wins: an embedded "As of:
// MM/DD/YYYY" marker in the top rows, a YYYYMMDD digit run in the file name,
// then the current processing date.
func ResolveSnapshotDate(grid RawGrid, fileName string, now time.Time) string {
	for i := 0; i < len(grid) && i < asOfScanRows; i++ {
		for _, cell := range grid[i] {
			if m := asOfRe.FindStringSubmatch(cell); m != nil {
				return isoDate(m[3], m[1], m[2])
			}
		}
	}

	if m := fileNameDateRe.FindStringSubmatch(fileName); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}

	return now.Format("2006-01-02")
}
