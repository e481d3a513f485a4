package reports

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

type stubStorage struct {
	recs map[string][]record.FinancialRecord
	err  error
}

func (s stubStorage) GetRecords(_ context.Context, username string) ([]record.FinancialRecord, error) {
	return s.recs[username], s.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Test_OnTotals_ShouldSumIncomeAndExpenseSeparately(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{recs: map[string][]record.FinancialRecord{
		"alice": {
			{Amount: 100, Type: record.Income, Category: "work", Date: date(2024, 5, 1)},
			{Amount: 30, Type: record.Expense, Category: "food", Date: date(2024, 5, 2)},
		},
	}})

	income, expense, err := g.Totals(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, income)
	assert.Equal(t, 30.0, expense)

	savings, err := g.Savings(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, 70.0, savings)
}

func Test_OnTotalsWithoutRecords_ShouldReturnZeroes(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{})

	income, expense, err := g.Totals(ctx, "alice")
	assert.NoError(t, err)
	assert.Zero(t, income)
	assert.Zero(t, expense)
}

func Test_OnTotalsStorageError_ShouldPropagate(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{err: errors.New("boom")})

	_, _, err := g.Totals(ctx, "alice")
	assert.Error(t, err)
}

func Test_OnSpendingDistribution_ShouldGroupExpensesByCategory(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{recs: map[string][]record.FinancialRecord{
		"alice": {
			{Amount: 20, Type: record.Expense, Category: "food", Date: date(2024, 5, 1)},
			{Amount: 10, Type: record.Expense, Category: "food", Date: date(2024, 5, 2)},
			{Amount: 50, Type: record.Expense, Category: "rent", Date: date(2024, 5, 3)},
			{Amount: 1000, Type: record.Income, Category: "work", Date: date(2024, 5, 4)},
		},
	}})

	rows, err := g.SpendingDistribution(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []CategoryRow{
		{Category: "rent", Amount: 50},
		{Category: "food", Amount: 30},
	}, rows)
}

func Test_OnSpendingDistributionWithoutExpenses_ShouldBeEmpty(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{recs: map[string][]record.FinancialRecord{
		"alice": {
			{Amount: 1000, Type: record.Income, Category: "work", Date: date(2024, 5, 4)},
		},
	}})

	rows, err := g.SpendingDistribution(ctx, "alice")
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func Test_OnMonthlyReport_ShouldMergeSameMonthTypeAndCategoryOnly(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{recs: map[string][]record.FinancialRecord{
		"alice": {
			{Amount: 20, Type: record.Expense, Category: "food", Date: date(2024, 5, 1)},
			{Amount: 10, Type: record.Expense, Category: "food", Date: date(2024, 5, 28)},
			{Amount: 5, Type: record.Expense, Category: "food", Date: date(2024, 6, 1)},
			{Amount: 100, Type: record.Income, Category: "food", Date: date(2024, 5, 10)},
		},
	}})

	rows, err := g.PeriodReport(ctx, "alice", PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, []PeriodRow{
		{Bucket: date(2024, 5, 1), Type: record.Expense, Category: "food", Amount: 30},
		{Bucket: date(2024, 5, 1), Type: record.Income, Category: "food", Amount: 100},
		{Bucket: date(2024, 6, 1), Type: record.Expense, Category: "food", Amount: 5},
	}, rows)
}

// A record created in this session and one reloaded from its yyyy-mm-dd
// persisted form carry the same calendar date and must land in one bucket.
func Test_OnPeriodReport_ShouldMergeFreshAndReloadedRecords(t *testing.T) {
	ctx := context.Background()

	fresh := record.New("lunch", 20, "food", record.Expense)
	reloadedDate, err := time.Parse("2006-01-02", fresh.Date.Format("2006-01-02"))
	require.NoError(t, err)
	reloaded := record.FinancialRecord{
		Description: "dinner",
		Amount:      10,
		Category:    "food",
		Type:        record.Expense,
		Date:        reloadedDate,
	}

	g := NewGenerator(stubStorage{recs: map[string][]record.FinancialRecord{
		"alice": {fresh, reloaded},
	}})

	for _, period := range []string{PeriodMonthly, PeriodWeekly} {
		rows, err := g.PeriodReport(ctx, "alice", period)
		require.NoError(t, err)
		require.Len(t, rows, 1, period)
		assert.Equal(t, 30.0, rows[0].Amount, period)
	}
}

// Weeks start on Monday: Sunday 2024-05-05 belongs to the week of Monday
// 2024-04-29, while Monday 2024-05-06 opens a new bucket.
func Test_OnWeeklyReport_ShouldUseMondayBasedWeeks(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{recs: map[string][]record.FinancialRecord{
		"alice": {
			{Amount: 20, Type: record.Expense, Category: "food", Date: date(2024, 5, 5)},
			{Amount: 10, Type: record.Expense, Category: "food", Date: date(2024, 5, 6)},
		},
	}})

	rows, err := g.PeriodReport(ctx, "alice", PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, []PeriodRow{
		{Bucket: date(2024, 4, 29), Type: record.Expense, Category: "food", Amount: 20},
		{Bucket: date(2024, 5, 6), Type: record.Expense, Category: "food", Amount: 10},
	}, rows)
}

func Test_OnUnknownPeriod_ShouldFail(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{})

	_, err := g.PeriodReport(ctx, "alice", "yearly")
	assert.ErrorIs(t, err, customerr.ErrInvalidPeriod)
}

func Test_OnPeriodReportWithoutRecords_ShouldBeEmpty(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(stubStorage{})

	rows, err := g.PeriodReport(ctx, "alice", PeriodMonthly)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
