package ingestion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field normalizers. Every report type funnels cell values through these so
// there is exactly one parsing policy per value class. All of them are total:
// unparseable input degrades to nil (or a passthrough for sheet dates), never
// an error.

const (
	// Days between the Unix epoch and the spreadsheet day-zero.
	sheetEpochOffset = 25569
	secondsPerDay    = 86400
)

var (
	dateSlashRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dateTimeRe     = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4}) at (\d{1,2}):(\d{2}) (AM|PM)`)
	embeddedDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	controlCharsRe = regexp.MustCompile(`[\x00-\x1f\x7f]`)

	// Layouts tried for text cells that are not MM/DD/YYYY.
	textDateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006/01/02",
	}
)

// DateSlash converts "MM/DD/YYYY" to "YYYY-MM-DD". Nil for anything else.
func DateSlash(s string) *string {
	m := dateSlashRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	iso := isoDate(m[3], m[1], m[2])
	return &iso
}

func isoDate(year, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

// DateTimeSlash converts "MM/DD/YYYY at H:MM AM|PM" to a local ISO datetime
// "YYYY-MM-DDTHH:MM:00" (12 AM becomes hour 0, 12 PM stays 12). A plain
// "MM/DD/YYYY" falls back to the date-only form. Nil otherwise.
func DateTimeSlash(s string) *string {
	s = strings.TrimSpace(s)
	if m := dateTimeRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[4])
		if m[6] == "PM" && hour != 12 {
			hour += 12
		}
		if m[6] == "AM" && hour == 12 {
			hour = 0
		}
		iso := fmt.Sprintf("%sT%02d:%s:00", isoDate(m[3], m[1], m[2]), hour, m[5])
		return &iso
	}
	return EmbeddedDate(s)
}

// EmbeddedDate extracts the first MM/DD/YYYY occurrence anywhere in the cell
// as "YYYY-MM-DD", discarding any time-of-day suffix. Nil when no date is
// present.
func EmbeddedDate(s string) *string {
	if m := embeddedDateRe.FindStringSubmatch(s); m != nil {
		iso := isoDate(m[3], m[1], m[2])
		return &iso
	}
	return nil
}

// SheetDate converts a cell that may hold a spreadsheet date serial to an ISO
// date "YYYY-MM-DD". Text cells are tried as MM/DD/YYYY and then the common
// textual layouts; text that still does not parse is passed through unchanged
// as a last resort, which callers must treat separately from absent. Empty
// input yields nil.
func SheetDate(s string) *string {
	return sheetDate(s, "2006-01-02")
}

// SheetDateTime is SheetDate with a full UTC ISO datetime output, for columns
// where the serial carries a time-of-day fraction.
func SheetDateTime(s string) *string {
	return sheetDate(s, "2006-01-02T15:04:05Z")
}

func sheetDate(s string, layout string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t := time.Unix(int64((serial-sheetEpochOffset)*secondsPerDay), 0).UTC()
		iso := t.Format(layout)
		return &iso
	}

	if iso := DateSlash(s); iso != nil {
		return iso
	}
	for _, l := range textDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			iso := t.UTC().Format(layout)
			return &iso
		}
	}

	// Unparsed passthrough, distinct from nil.
	return &s
}

// Number strips thousands separators, currency and percent symbols, and quote
// characters, then parses a float. Nil on empty or unparseable input.
func Number(s string) *float64 {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Integer is Number with an integer result.
func Integer(s string) *int64 {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	for _, ch := range []string{",", "$", "%", `"`} {
		s = strings.ReplaceAll(s, ch, "")
	}
	return strings.TrimSpace(s)
}

// LeadingLabel returns the substring before the first " - " separator,
// trimmed. Report section headers read like "Oak Park - 100 Oak St, MO
// 65201"; the label is the part worth keeping. Without a separator the
// trimmed original is returned.
func LeadingLabel(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, " - "); idx > 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

// StripLabelPrefix removes a case-insensitive leading label such as
// "Phone:" or "Mobile:" together with any following whitespace.
func StripLabelPrefix(s string, labels ...string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, label := range labels {
		if strings.HasPrefix(lower, strings.ToLower(label)) {
			return strings.TrimSpace(trimmed[len(label):])
		}
	}
	return trimmed
}

// CleanString trims the cell and drops control characters that leak in from
// spreadsheet exports. Nil when nothing printable remains.
func CleanString(s string) *string {
	cleaned := strings.TrimSpace(controlCharsRe.ReplaceAllString(s, ""))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
