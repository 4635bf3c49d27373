package domain

// RentalApplicationRecord is one application row from a rental applications
// export, keyed by applicant names plus the received timestamp.
type RentalApplicationRecord struct {
	SnapshotDate        string
	Applicants          string
	Received            string
	DesiredMoveIn       *string
	LeadSource          *string
	Status              *string
	Screening           *string
	ApprovedAt          *string
	DeniedAt            *string
	RentalApplicationID *string
	MoveInDate          *string
	LeaseStartDate      *string
	LeaseEndDate        *string
	InquiryID           *string
	ApplicationStatus   *string
	TenantID            *string
}

func (r *RentalApplicationRecord) Table() string { return "rental_applications" }

func (r *RentalApplicationRecord) ConflictColumns() []string {
	return []string{"applicants", "received"}
}

func (r *RentalApplicationRecord) Columns() []string {
	return []string{
		"snapshot_date", "applicants", "received", "desired_move_in",
		"lead_source", "status", "screening", "approved_at", "denied_at",
		"rental_application_id", "move_in_date", "lease_start_date",
		"lease_end_date", "inquiry_id", "application_status", "tenant_id",
	}
}

func (r *RentalApplicationRecord) Values() []any {
	return []any{
		r.SnapshotDate, r.Applicants, r.Received, r.DesiredMoveIn,
		r.LeadSource, r.Status, r.Screening, r.ApprovedAt, r.DeniedAt,
		r.RentalApplicationID, r.MoveInDate, r.LeaseStartDate,
		r.LeaseEndDate, r.InquiryID, r.ApplicationStatus, r.TenantID,
	}
}
