// Package reports derives aggregate views from a user's record sequence.
// All operations are pure reads over the storage snapshot.
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

const (
	PeriodMonthly = "monthly"
	PeriodWeekly  = "weekly"
)

// Weekly buckets follow ISO-8601: weeks start on Monday.
var isoWeek = &now.Config{WeekStartDay: time.Monday}

type recordStorage interface {
	GetRecords(ctx context.Context, username string) ([]record.FinancialRecord, error)
}

type Generator struct {
	storage recordStorage
}

func NewGenerator(storage recordStorage) *Generator {
	return &Generator{storage: storage}
}

// Totals sums the amounts of income and expense records.
func (g *Generator) Totals(ctx context.Context, username string) (income, expense float64, err error) {
	recs, err := g.storage.GetRecords(ctx, username)
	if err != nil {
		return 0, 0, errors.Wrap(err, "totals")
	}
	for _, r := range recs {
		switch r.Type {
		case record.Income:
			income += r.Amount
		case record.Expense:
			expense += r.Amount
		}
	}
	return income, expense, nil
}

// Savings is total income minus total expense.
func (g *Generator) Savings(ctx context.Context, username string) (float64, error) {
	income, expense, err := g.Totals(ctx, username)
	if err != nil {
		return 0, errors.Wrap(err, "savings")
	}
	return income - expense, nil
}

// PeriodRow is one line of a period report: all records sharing a calendar
// bucket, a type and a category, with their amounts summed.
type PeriodRow struct {
	Bucket   time.Time
	Type     record.Type
	Category string
	Amount   float64
}

// PeriodReport groups the user's records by (period bucket, type, category).
// period must be monthly or weekly.
func (g *Generator) PeriodReport(ctx context.Context, username, period string) ([]PeriodRow, error) {
	if period != PeriodMonthly && period != PeriodWeekly {
		return nil, customerr.ErrInvalidPeriod
	}

	recs, err := g.storage.GetRecords(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "period report")
	}

	type key struct {
		bucket   time.Time
		t        record.Type
		category string
	}
	m := make(map[key]float64)
	for _, r := range recs {
		m[key{bucket(period, r.Date), r.Type, r.Category}] += r.Amount
	}

	rows := make([]PeriodRow, 0, len(m))
	for k, amount := range m {
		rows = append(rows, PeriodRow{
			Bucket:   k.bucket,
			Type:     k.t,
			Category: k.category,
			Amount:   amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Bucket.Equal(rows[j].Bucket) {
			return rows[i].Bucket.Before(rows[j].Bucket)
		}
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}

func bucket(period string, t time.Time) time.Time {
	if period == PeriodWeekly {
		return isoWeek.With(t).BeginningOfWeek()
	}
	return now.With(t).BeginningOfMonth()
}

// CategoryRow is one line of the spending distribution.
type CategoryRow struct {
	Category string
	Amount   float64
}

// SpendingDistribution sums expense records per category, largest first.
// The result is empty when the user has no expenses.
func (g *Generator) SpendingDistribution(ctx context.Context, username string) ([]CategoryRow, error) {
	recs, err := g.storage.GetRecords(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "spending distribution")
	}

	m := make(map[string]float64)
	for _, r := range recs {
		if r.Type == record.Expense {
			m[r.Category] += r.Amount
		}
	}

	rows := make([]CategoryRow, 0, len(m))
	for category, amount := range m {
		rows = append(rows, CategoryRow{Category: category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}
