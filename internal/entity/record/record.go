package record

import (
	"fmt"
	"time"
)

// Type tells whether a record adds to or subtracts from the balance.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// ParseType validates a raw record type value.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("unknown record type %q", s)
}

// FinancialRecord is one income or expense entry. Records have no durable
// id; a record is addressed by its position in the owning user's sequence.
type FinancialRecord struct {
	Description string
	Amount      float64
	Category    string
	Type        Type
	Date        time.Time
}

// New builds a record dated today.
func New(description string, amount float64, category string, t Type) FinancialRecord {
	return FinancialRecord{
		Description: description,
		Amount:      amount,
		Category:    category,
		Type:        t,
		Date:        Today(),
	}
}

// Today is the current calendar day as midnight UTC. Every stored date uses
// this normalized form so that dates compare equal regardless of whether
// the record was just created or reloaded from its yyyy-mm-dd persisted form.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Patch carries the optional fields of an update. A nil field means
// "leave unchanged".
type Patch struct {
	Description *string
	Amount      *float64
	Category    *string
	Type        *Type
}

// Apply overwrites the record's fields with the patch's non-nil ones.
func (p Patch) Apply(rec *FinancialRecord) {
	if p.Description != nil {
		rec.Description = *p.Description
	}
	if p.Amount != nil {
		rec.Amount = *p.Amount
	}
	if p.Category != nil {
		rec.Category = *p.Category
	}
	if p.Type != nil {
		rec.Type = *p.Type
	}
}
