package ingestion

import (
	"strings"

	"github.com/midwestpm/reportingest/internal/domain"
)

// ReportSpec is the dispatch entry for one report type: how its rows are
// classified and mapped, and how the resulting records are persisted.
type ReportSpec struct {
	Kind domain.ReportKind
	// Sectioned marks grid layouts where data rows inherit a property from
	// the preceding section header row.
	Sectioned bool
	// HeaderMarker is the literal first cell of the header row.
	HeaderMarker string
	// HeaderScanRows bounds the header scan; 0 scans the whole grid.
	HeaderScanRows int
	// PreambleRows is the fixed row count to skip when no header marker is
	// found (older leasing exports); 0 disables the fallback.
	PreambleRows int
	// Upsert selects upsert-by-natural-key persistence; otherwise the
	// snapshot is replaced wholesale.
	Upsert bool
	// Dedupe drops in-file repeats of the natural key, first one wins.
	Dedupe    bool
	BatchSize int
	MapRow    RowMapper
}

var reportSpecs = []ReportSpec{
	{
		Kind:         domain.ReportRentRoll,
		Sectioned:    true,
		HeaderMarker: "Unit",
		BatchSize:    50,
		MapRow:       mapRentRoll,
	},
	{
		Kind:           domain.ReportLeasing,
		Sectioned:      true,
		HeaderMarker:   "Name",
		HeaderScanRows: 15,
		PreambleRows:   12,
		Upsert:         true,
		Dedupe:         true,
		BatchSize:      50,
		MapRow:         mapLeasing,
	},
	{
		Kind:         domain.ReportTenantEvents,
		HeaderMarker: "Date",
		BatchSize:    50,
		MapRow:       mapTenantEvent,
	},
	{
		Kind:         domain.ReportShowings,
		HeaderMarker: "Guest Card Name",
		Upsert:       true,
		BatchSize:    50,
		MapRow:       mapShowing,
	},
	{
		Kind:         domain.ReportRentalApplications,
		HeaderMarker: "Applicant(s)",
		Upsert:       true,
		BatchSize:    20,
		MapRow:       mapRentalApplication,
	},
}

// fileNameTokens maps file-name substrings to report kinds, checked in
// order. Report emails attach files like rent_roll-20260209.xlsx or
// tenant_tickler-20260209.csv.
var fileNameTokens = []struct {
	token string
	kind  domain.ReportKind
}{
	{"tickler", domain.ReportTenantEvents},
	{"tenant_event", domain.ReportTenantEvents},
	{"showing", domain.ReportShowings},
	{"rental_application", domain.ReportRentalApplications},
	{"guest_card", domain.ReportLeasing},
	{"leasing", domain.ReportLeasing},
	{"rent_roll", domain.ReportRentRoll},
	{"property", domain.ReportRentRoll},
}

// SpecForKind returns the dispatch entry for a report kind.
func SpecForKind(kind domain.ReportKind) (ReportSpec, bool) {
	for _, spec := range reportSpecs {
		if spec.Kind == kind {
			return spec, true
		}
	}
	return ReportSpec{}, false
}

// SniffReportKind determines the report kind from the file name.
func SniffReportKind(fileName string) (domain.ReportKind, bool) {
	lower := strings.ToLower(fileName)
	for _, entry := range fileNameTokens {
		if strings.Contains(lower, entry.token) {
			return entry.kind, true
		}
	}
	return "", false
}

func mapRentRoll(ctx RowContext, row []string) (domain.Record, bool) {
	unit := cellAt(row, 0)
	status := cellAt(row, 2)
	if unit == "" || status == "" {
		return nil, false
	}

	return &domain.RentRollRecord{
		SnapshotDate:         ctx.SnapshotDate,
		Property:             ctx.Section,
		Unit:                 unit,
		BedBath:              CleanString(cellAt(row, 1)),
		Status:               status,
		Sqft:                 Integer(cellAt(row, 3)),
		TotalRent:            Number(cellAt(row, 4)),
		PastDue:              Number(cellAt(row, 5)),
		OtherCharges:         Number(cellAt(row, 6)),
		UtilityReimbursement: Number(cellAt(row, 7)),
		TenantRentalIncome:   Number(cellAt(row, 8)),
		ChaIncome:            Number(cellAt(row, 9)),
		IhaIncome:            Number(cellAt(row, 10)),
		KckhaIncome:          Number(cellAt(row, 11)),
		HakcIncome:           Number(cellAt(row, 12)),
		HudIncome:            Number(cellAt(row, 13)),
		PetRent:              Number(cellAt(row, 14)),
		StorageFee:           Number(cellAt(row, 15)),
		ParkingFee:           Number(cellAt(row, 16)),
		InsuranceServices:    Number(cellAt(row, 17)),
		LeaseFrom:            SheetDate(cellAt(row, 18)),
		LeaseTo:              SheetDate(cellAt(row, 19)),
	}, true
}

func mapLeasing(ctx RowContext, row []string) (domain.Record, bool) {
	name := cellAt(row, 0)
	received := SheetDateTime(cellAt(row, 3))
	if name == "" || received == nil {
		return nil, false
	}

	return &domain.LeasingRecord{
		SnapshotDate:        ctx.SnapshotDate,
		Property:            ctx.Section,
		Name:                name,
		Email:               CleanString(cellAt(row, 1)),
		Phone:               CleanString(cellAt(row, 2)),
		InquiryReceived:     *received,
		FirstContact:        SheetDate(cellAt(row, 4)),
		LastActivityDate:    SheetDate(cellAt(row, 5)),
		LastActivityType:    CleanString(cellAt(row, 6)),
		Status:              CleanString(cellAt(row, 7)),
		MoveInPreference:    CleanString(cellAt(row, 8)),
		MaxRent:             CleanString(cellAt(row, 9)),
		BedBathPreference:   CleanString(cellAt(row, 10)),
		PetPreference:       CleanString(cellAt(row, 11)),
		MonthlyIncome:       CleanString(cellAt(row, 12)),
		CreditScore:         CleanString(cellAt(row, 13)),
		LeadType:            CleanString(cellAt(row, 14)),
		Source:              CleanString(cellAt(row, 15)),
		Unit:                CleanString(cellAt(row, 16)),
		TouchPoints:         Integer(cellAt(row, 17)),
		FollowUps:           Integer(cellAt(row, 18)),
		SourceFile:          ctx.FileName,
		InquiryID:           CleanString(cellAt(row, 19)),
		GuestCardID:         CleanString(cellAt(row, 21)),
		RentalApplicationID: CleanString(cellAt(row, 22)),
	}, true
}

func mapTenantEvent(ctx RowContext, row []string) (domain.Record, bool) {
	eventDate := DateSlash(cellAt(row, 0))
	property := LeadingLabel(cellAt(row, 2))
	if eventDate == nil || property == "" {
		return nil, false
	}

	var phone *string
	if raw := cellAt(row, 6); raw != "" {
		phone = CleanString(StripLabelPrefix(raw, "Phone:", "Mobile:"))
	}

	return &domain.TenantEventRecord{
		SnapshotDate: ctx.SnapshotDate,
		EventDate:    *eventDate,
		EventType:    CleanString(cellAt(row, 1)),
		Property:     property,
		Unit:         CleanString(cellAt(row, 3)),
		Tags:         CleanString(cellAt(row, 4)),
		TenantName:   CleanString(cellAt(row, 5)),
		TenantPhone:  phone,
		TenantEmail:  CleanString(cellAt(row, 7)),
		Rent:         Number(cellAt(row, 8)),
		LeaseFrom:    DateSlash(cellAt(row, 9)),
		LeaseTo:      DateSlash(cellAt(row, 10)),
		Deposit:      Number(cellAt(row, 11)),
	}, true
}

func mapShowing(ctx RowContext, row []string) (domain.Record, bool) {
	name := cellAt(row, 0)
	property := LeadingLabel(cellAt(row, 3))
	showingTime := DateTimeSlash(cellAt(row, 5))
	if name == "" || property == "" || showingTime == nil {
		return nil, false
	}

	return &domain.ShowingRecord{
		SnapshotDate:              ctx.SnapshotDate,
		GuestCardName:             name,
		Email:                     CleanString(cellAt(row, 1)),
		Phone:                     CleanString(cellAt(row, 2)),
		Property:                  property,
		ShowingUnit:               CleanString(cellAt(row, 4)),
		ShowingTime:               *showingTime,
		ConfirmationTime:          DateTimeSlash(cellAt(row, 6)),
		AssignedUser:              CleanString(cellAt(row, 7)),
		Description:               CleanString(cellAt(row, 8)),
		Status:                    CleanString(cellAt(row, 9)),
		Type:                      CleanString(cellAt(row, 10)),
		LastActivityDate:          EmbeddedDate(cellAt(row, 11)),
		LastActivityType:          CleanString(cellAt(row, 12)),
		GuestCardID:               CleanString(cellAt(row, 13)),
		GuestCardUUID:             CleanString(cellAt(row, 14)),
		InquiryID:                 CleanString(cellAt(row, 15)),
		ShowingID:                 CleanString(cellAt(row, 16)),
		UnitTypeID:                CleanString(cellAt(row, 17)),
		CreatedByID:               CleanString(cellAt(row, 18)),
		AssignedUserID:            CleanString(cellAt(row, 19)),
		LeadType:                  CleanString(cellAt(row, 20)),
		Source:                    CleanString(cellAt(row, 21)),
		RentalApplicationID:       CleanString(cellAt(row, 22)),
		RentalApplicationGroupID:  CleanString(cellAt(row, 23)),
		RentalApplicationReceived: DateTimeSlash(cellAt(row, 24)),
		RentalApplicationStatus:   CleanString(cellAt(row, 25)),
	}, true
}

func mapRentalApplication(ctx RowContext, row []string) (domain.Record, bool) {
	applicants := cellAt(row, 0)
	received := DateTimeSlash(cellAt(row, 1))
	if applicants == "" || received == nil {
		return nil, false
	}

	return &domain.RentalApplicationRecord{
		SnapshotDate:        ctx.SnapshotDate,
		Applicants:          applicants,
		Received:            *received,
		DesiredMoveIn:       DateTimeSlash(cellAt(row, 2)),
		LeadSource:          CleanString(cellAt(row, 3)),
		Status:              CleanString(cellAt(row, 4)),
		Screening:           CleanString(cellAt(row, 5)),
		ApprovedAt:          DateTimeSlash(cellAt(row, 6)),
		DeniedAt:            DateTimeSlash(cellAt(row, 7)),
		RentalApplicationID: CleanString(cellAt(row, 8)),
		MoveInDate:          DateTimeSlash(cellAt(row, 9)),
		LeaseStartDate:      DateTimeSlash(cellAt(row, 10)),
		LeaseEndDate:        DateTimeSlash(cellAt(row, 11)),
		InquiryID:           CleanString(cellAt(row, 12)),
		ApplicationStatus:   CleanString(cellAt(row, 13)),
		TenantID:            CleanString(cellAt(row, 14)),
	}, true
}
