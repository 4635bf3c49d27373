package domain

// TenantEventRecord is one row from a tenant tickler export: a dated lease
// event (move in, move out, renewal, notice). Event type and unit are
// nullable because some tickler rows apply to a whole property.
type TenantEventRecord struct {
	SnapshotDate string
	EventDate    string
	EventType    *string
	Property     string
	Unit         *string
	Tags         *string
	TenantName   *string
	TenantPhone  *string
	TenantEmail  *string
	Rent         *float64
	LeaseFrom    *string
	LeaseTo      *string
	Deposit      *float64
}

func (r *TenantEventRecord) Table() string { return "tenant_events" }

func (r *TenantEventRecord) ConflictColumns() []string { return nil }

func (r *TenantEventRecord) Columns() []string {
	return []string{
		"snapshot_date", "event_date", "event_type", "property", "unit",
		"tags", "tenant_name", "tenant_phone", "tenant_email", "rent",
		"lease_from", "lease_to", "deposit",
	}
}

func (r *TenantEventRecord) Values() []any {
	return []any{
		r.SnapshotDate, r.EventDate, r.EventType, r.Property, r.Unit,
		r.Tags, r.TenantName, r.TenantPhone, r.TenantEmail, r.Rent,
		r.LeaseFrom, r.LeaseTo, r.Deposit,
	}
}
