package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_OnParseType_ShouldAcceptIncomeAndExpenseOnly(t *testing.T) {
	parsed, err := ParseType("income")
	assert.NoError(t, err)
	assert.Equal(t, Income, parsed)

	parsed, err = ParseType("expense")
	assert.NoError(t, err)
	assert.Equal(t, Expense, parsed)

	_, err = ParseType("transfer")
	assert.Error(t, err)

	_, err = ParseType("Income")
	assert.Error(t, err)
}

func Test_OnNew_ShouldDateRecordAtUTCMidnight(t *testing.T) {
	rec := New("lunch", 12, "food", Expense)

	assert.Equal(t, time.UTC, rec.Date.Location())
	assert.Equal(t, 0, rec.Date.Hour())
	assert.Equal(t, 0, rec.Date.Minute())
	assert.Equal(t, 0, rec.Date.Second())

	parsed, err := time.Parse("2006-01-02", rec.Date.Format("2006-01-02"))
	assert.NoError(t, err)
	assert.Equal(t, rec.Date, parsed)
}

func Test_OnApplyPatch_ShouldOverwriteOnlyGivenFields(t *testing.T) {
	rec := FinancialRecord{
		Description: "groceries",
		Amount:      30,
		Category:    "food",
		Type:        Expense,
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	amount := 42.5
	Patch{Amount: &amount}.Apply(&rec)

	assert.Equal(t, 42.5, rec.Amount)
	assert.Equal(t, "groceries", rec.Description)
	assert.Equal(t, "food", rec.Category)
	assert.Equal(t, Expense, rec.Type)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rec.Date)
}

func Test_OnApplyPatch_ShouldOverwriteAllGivenFields(t *testing.T) {
	rec := New("groceries", 30, "food", Expense)

	desc, category, rt := "salary", "work", Income
	amount := 1000.0
	Patch{
		Description: &desc,
		Amount:      &amount,
		Category:    &category,
		Type:        &rt,
	}.Apply(&rec)

	assert.Equal(t, "salary", rec.Description)
	assert.Equal(t, 1000.0, rec.Amount)
	assert.Equal(t, "work", rec.Category)
	assert.Equal(t, Income, rec.Type)
}
