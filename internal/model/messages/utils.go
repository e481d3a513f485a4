package messages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/model/reports"
)

const (
	commandParts = 2
	dateLayout   = "2006-01-02"
	monthLayout  = "2006-01"
)

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts {
		return split[0], split[1]
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

// splitArgs splits a semicolon-separated argument list, trimming each part.
// Semicolons let descriptions and categories contain spaces.
func splitArgs(arg string) []string {
	parts := strings.Split(arg, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parsePatch parses "field=value" pairs separated by semicolons. A non-empty
// message means the input was rejected.
func parsePatch(arg string) (record.Patch, string) {
	var patch record.Patch
	for _, pair := range splitArgs(arg) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return record.Patch{}, incorrectUsageMessage
		}
		key, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		switch key {
		case "description":
			patch.Description = &value
		case "category":
			patch.Category = &value
		case "amount":
			amount, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return record.Patch{}, incorrectAmountMessage
			}
			patch.Amount = &amount
		case "type":
			t, err := record.ParseType(value)
			if err != nil {
				return record.Patch{}, incorrectTypeMessage
			}
			patch.Type = &t
		default:
			return record.Patch{}, incorrectUsageMessage
		}
	}
	return patch, ""
}

func formatRecords(recs []record.FinancialRecord) string {
	res := make([]string, 0, len(recs)+1)
	res = append(res, "Here are your financial records:")
	for i, r := range recs {
		res = append(res, fmt.Sprintf("%d. %s | Amount: %.2f | Category: %s | Type: %s | Date: %s",
			i, r.Description, r.Amount, r.Category, r.Type, r.Date.Format(dateLayout)))
	}
	return strings.Join(res, "\n")
}

func formatBucket(period string, bucket time.Time) string {
	if period == reports.PeriodWeekly {
		return "week of " + bucket.Format(dateLayout)
	}
	return bucket.Format(monthLayout)
}

func formatPeriodReport(period string, rows []reports.PeriodRow) string {
	res := make([]string, 0, len(rows))
	for _, row := range rows {
		res = append(res, fmt.Sprintf("%s | %s | %s: %.2f",
			formatBucket(period, row.Bucket), row.Type, row.Category, row.Amount))
	}
	return strings.Join(res, "\n")
}

func formatTotals(income, expense float64) string {
	return fmt.Sprintf("Total Income: %.2f\nTotal Expenses: %.2f", income, expense)
}

func formatSavings(savings float64) string {
	return fmt.Sprintf("Total Savings: %.2f", savings)
}

func formatDistribution(rows []reports.CategoryRow) string {
	res := make([]string, 0, len(rows)+1)
	res = append(res, "Spending distribution by category:")
	for _, row := range rows {
		res = append(res, fmt.Sprintf("%s: %.2f", row.Category, row.Amount))
	}
	return strings.Join(res, "\n")
}
