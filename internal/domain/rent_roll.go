package domain

// RentRollRecord is one unit row from a rent roll snapshot workbook. Property
// comes from the surrounding section header; the remaining money columns are
// nullable because vacant units leave most of them blank.
type RentRollRecord struct {
	SnapshotDate         string
	Property             string
	Unit                 string
	BedBath              *string
	Status               string
	Sqft                 *int64
	TotalRent            *float64
	PastDue              *float64
	OtherCharges         *float64
	UtilityReimbursement *float64
	TenantRentalIncome   *float64
	ChaIncome            *float64
	IhaIncome            *float64
	KckhaIncome          *float64
	HakcIncome           *float64
	HudIncome            *float64
	PetRent              *float64
	StorageFee           *float64
	ParkingFee           *float64
	InsuranceServices    *float64
	LeaseFrom            *string
	LeaseTo              *string
}

func (r *RentRollRecord) Table() string { return "rent_roll_snapshots" }

// ConflictColumns is empty: rent roll snapshots are replaced wholesale per
// snapshot date rather than upserted.
func (r *RentRollRecord) ConflictColumns() []string { return nil }

func (r *RentRollRecord) Columns() []string {
	return []string{
		"snapshot_date", "property", "unit", "bed_bath", "status", "sqft",
		"total_rent", "past_due", "other_charges", "utility_reimbursement",
		"tenant_rental_income", "cha_income", "iha_income", "kckha_income",
		"hakc_income", "hud_income", "pet_rent", "storage_fee", "parking_fee",
		"insurance_services", "lease_from", "lease_to",
	}
}

func (r *RentRollRecord) Values() []any {
	return []any{
		r.SnapshotDate, r.Property, r.Unit, r.BedBath, r.Status, r.Sqft,
		r.TotalRent, r.PastDue, r.OtherCharges, r.UtilityReimbursement,
		r.TenantRentalIncome, r.ChaIncome, r.IhaIncome, r.KckhaIncome,
		r.HakcIncome, r.HudIncome, r.PetRent, r.StorageFee, r.ParkingFee,
		r.InsuranceServices, r.LeaseFrom, r.LeaseTo,
	}
}
