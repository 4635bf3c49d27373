package domain

// LeasingRecord is one guest card row from a leasing funnel report. The
// natural key (property, name, inquiry_received) deduplicates guest cards
// that reappear across overlapping exports.
type LeasingRecord struct {
	SnapshotDate        string
	Property            string
	Name                string
	Email               *string
	Phone               *string
	InquiryReceived     string
	FirstContact        *string
	LastActivityDate    *string
	LastActivityType    *string
	Status              *string
	MoveInPreference    *string
	MaxRent             *string
	BedBathPreference   *string
	PetPreference       *string
	MonthlyIncome       *string
	CreditScore         *string
	LeadType            *string
	Source              *string
	Unit                *string
	TouchPoints         *int64
	FollowUps           *int64
	SourceFile          string
	InquiryID           *string
	GuestCardID         *string
	RentalApplicationID *string
}

func (r *LeasingRecord) Table() string { return "leasing_reports" }

func (r *LeasingRecord) ConflictColumns() []string {
	return []string{"property", "name", "inquiry_received"}
}

func (r *LeasingRecord) Columns() []string {
	return []string{
		"snapshot_date", "property", "name", "email", "phone",
		"inquiry_received", "first_contact", "last_activity_date",
		"last_activity_type", "status", "move_in_preference", "max_rent",
		"bed_bath_preference", "pet_preference", "monthly_income",
		"credit_score", "lead_type", "source", "unit", "touch_points",
		"follow_ups", "source_file", "inquiry_id", "guest_card_id",
		"rental_application_id",
	}
}

func (r *LeasingRecord) Values() []any {
	return []any{
		r.SnapshotDate, r.Property, r.Name, r.Email, r.Phone,
		r.InquiryReceived, r.FirstContact, r.LastActivityDate,
		r.LastActivityType, r.Status, r.MoveInPreference, r.MaxRent,
		r.BedBathPreference, r.PetPreference, r.MonthlyIncome,
		r.CreditScore, r.LeadType, r.Source, r.Unit, r.TouchPoints,
		r.FollowUps, r.SourceFile, r.InquiryID, r.GuestCardID,
		r.RentalApplicationID,
	}
}
