package ingestion

import "testing"

func strOf(t *testing.T, got *string) string {
	t.Helper()
	if got == nil {
		t.Fatalf("got nil, want value")
	}
	return *got
}

func TestDateSlash(t *testing.T) {
	if got := strOf(t, DateSlash("10/01/2001")); got != "2001-10-01" {
		t.Fatalf("DateSlash = %q", got)
	}
	if got := strOf(t, DateSlash("1/8/2026")); got != "2026-01-08" {
		t.Fatalf("DateSlash single digits = %q", got)
	}
	if DateSlash("not a date") != nil {
		t.Fatalf("expected nil for garbage")
	}
	if DateSlash("") != nil {
		t.Fatalf("expected nil for empty")
	}
}

func TestDateTimeSlash(t *testing.T) {
	if got := strOf(t, DateTimeSlash("01/08/2026 at 09:09 PM")); got != "2026-01-08T21:09:00" {
		t.Fatalf("PM conversion = %q", got)
	}
	if got := strOf(t, DateTimeSlash("02/06/2026 at 12:15 AM")); got != "2026-02-06T00:15:00" {
		t.Fatalf("12 AM should be hour 00, got %q", got)
	}
	if got := strOf(t, DateTimeSlash("02/06/2026 at 12:15 PM")); got != "2026-02-06T12:15:00" {
		t.Fatalf("12 PM should stay 12, got %q", got)
	}
	// Plain date falls back to the date-only form.
	if got := strOf(t, DateTimeSlash("11/09/2025")); got != "2025-11-09" {
		t.Fatalf("plain date fallback = %q", got)
	}
	if DateTimeSlash("soon") != nil {
		t.Fatalf("expected nil for garbage")
	}
}

func TestEmbeddedDate(t *testing.T) {
	if got := strOf(t, EmbeddedDate("02/09/2026 at 11:30 AM")); got != "2026-02-09" {
		t.Fatalf("time suffix should be discarded, got %q", got)
	}
	if got := strOf(t, EmbeddedDate("02/09/2026")); got != "2026-02-09" {
		t.Fatalf("plain date = %q", got)
	}
	if EmbeddedDate("no date here") != nil {
		t.Fatalf("expected nil without a date")
	}
}

func TestSheetDate(t *testing.T) {
	// Serial 45658 is 2025-01-01 (days since the 1899 day-zero).
	if got := strOf(t, SheetDate("45658")); got != "2025-01-01" {
		t.Fatalf("serial conversion = %q", got)
	}
	if got := strOf(t, SheetDate("02/09/2026")); got != "2026-02-09" {
		t.Fatalf("slash date = %q", got)
	}
	if got := strOf(t, SheetDate("2026-02-09")); got != "2026-02-09" {
		t.Fatalf("iso passthrough = %q", got)
	}
	// Unparseable text passes through unchanged, distinct from absent.
	if got := strOf(t, SheetDate("TBD")); got != "TBD" {
		t.Fatalf("passthrough = %q", got)
	}
	if SheetDate("") != nil {
		t.Fatalf("expected nil for empty")
	}
}

func TestSheetDateTime(t *testing.T) {
	// 45658.5 is noon UTC on 2025-01-01.
	if got := strOf(t, SheetDateTime("45658.5")); got != "2025-01-01T12:00:00Z" {
		t.Fatalf("serial datetime = %q", got)
	}
}

func TestNumber(t *testing.T) {
	if got := Number("$1,234.50"); got == nil || *got != 1234.50 {
		t.Fatalf("Number($1,234.50) = %v", got)
	}
	if got := Number(`"750"`); got == nil || *got != 750 {
		t.Fatalf("quoted number = %v", got)
	}
	if got := Number("12%"); got == nil || *got != 12 {
		t.Fatalf("percent = %v", got)
	}
	if Number("") != nil {
		t.Fatalf("expected nil for empty")
	}
	if Number("n/a") != nil {
		t.Fatalf("expected nil for text")
	}
}

func TestInteger(t *testing.T) {
	if got := Integer("12,000"); got == nil || *got != 12000 {
		t.Fatalf("Integer(12,000) = %v", got)
	}
	if Integer("750.5") != nil {
		t.Fatalf("expected nil for fractional input")
	}
	if Integer("") != nil {
		t.Fatalf("expected nil for empty")
	}
}

func TestLeadingLabel(t *testing.T) {
	got := LeadingLabel("1511 Sylvan Lane - 1511 Sylvan Lane Columbia, MO 65202")
	if got != "1511 Sylvan Lane" {
		t.Fatalf("LeadingLabel = %q", got)
	}
	if got := LeadingLabel("  Oak Park  "); got != "Oak Park" {
		t.Fatalf("no separator should trim only, got %q", got)
	}
}

func TestStripLabelPrefix(t *testing.T) {
	if got := StripLabelPrefix("Phone: 555-0100", "Phone:", "Mobile:"); got != "555-0100" {
		t.Fatalf("StripLabelPrefix = %q", got)
	}
	if got := StripLabelPrefix("mobile: 555-0100", "Phone:", "Mobile:"); got != "555-0100" {
		t.Fatalf("case-insensitive strip = %q", got)
	}
	if got := StripLabelPrefix("555-0100", "Phone:"); got != "555-0100" {
		t.Fatalf("no prefix should pass through, got %q", got)
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString(" hello\x00world "); got == nil || *got != "helloworld" {
		t.Fatalf("CleanString = %v", got)
	}
	if CleanString("  \x01 ") != nil {
		t.Fatalf("expected nil when nothing printable remains")
	}
}
