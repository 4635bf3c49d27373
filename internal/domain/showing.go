package domain

// ShowingRecord is one scheduled showing from a showings export. Showings for
// the same guest card recur across exports, so they upsert on
// (guest_card_name, property, showing_time).
type ShowingRecord struct {
	SnapshotDate              string
	GuestCardName             string
	Email                     *string
	Phone                     *string
	Property                  string
	ShowingUnit               *string
	ShowingTime               string
	ConfirmationTime          *string
	AssignedUser              *string
	Description               *string
	Status                    *string
	Type                      *string
	LastActivityDate          *string
	LastActivityType          *string
	GuestCardID               *string
	GuestCardUUID             *string
	InquiryID                 *string
	ShowingID                 *string
	UnitTypeID                *string
	CreatedByID               *string
	AssignedUserID            *string
	LeadType                  *string
	Source                    *string
	RentalApplicationID       *string
	RentalApplicationGroupID  *string
	RentalApplicationReceived *string
	RentalApplicationStatus   *string
}

func (r *ShowingRecord) Table() string { return "showings" }

func (r *ShowingRecord) ConflictColumns() []string {
	return []string{"guest_card_name", "property", "showing_time"}
}

func (r *ShowingRecord) Columns() []string {
	return []string{
		"snapshot_date", "guest_card_name", "email", "phone", "property",
		"showing_unit", "showing_time", "confirmation_time", "assigned_user",
		"description", "status", "type", "last_activity_date",
		"last_activity_type", "guest_card_id", "guest_card_uuid",
		"inquiry_id", "showing_id", "unit_type_id", "created_by_id",
		"assigned_user_id", "lead_type", "source", "rental_application_id",
		"rental_application_group_id", "rental_application_received",
		"rental_application_status",
	}
}

func (r *ShowingRecord) Values() []any {
	return []any{
		r.SnapshotDate, r.GuestCardName, r.Email, r.Phone, r.Property,
		r.ShowingUnit, r.ShowingTime, r.ConfirmationTime, r.AssignedUser,
		r.Description, r.Status, r.Type, r.LastActivityDate,
		r.LastActivityType, r.GuestCardID, r.GuestCardUUID,
		r.InquiryID, r.ShowingID, r.UnitTypeID, r.CreatedByID,
		r.AssignedUserID, r.LeadType, r.Source, r.RentalApplicationID,
		r.RentalApplicationGroupID, r.RentalApplicationReceived,
		r.RentalApplicationStatus,
	}
}
