package models

// All returns every persisted model for schema migration.
func All() []any {
	return []any{
		&User{},
		&Session{},
		&Customer{},
		&Vehicle{},
		&Part{},
		&ServiceItem{},
		&Sale{},
		&SaleLine{},
		&DayEndReport{},
		&Expense{},
		&Supplier{},
		&GRN{},
		&GRNLine{},
		&SupplierPayment{},
		&JournalEntry{},
		&Setting{},
	}
}
