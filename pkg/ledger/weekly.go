package ledger

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/shopspring/decimal"
)

// dateLayouts are the ledger date formats understood by WeeklySpending.
var dateLayouts = []string{
	constants.DateLayout,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseLedgerDate parses a ledger date in any of the supported layouts.
// Slash dates are read day first.
func ParseLedgerDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return datetime.Midnight(t), true
		}
	}
	return time.Time{}, false
}

// Total returns the summed amount of the transactions.
func Total(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// WeeklySpending averages spending over the weeks the transactions span.
// Spans of a week or less return the plain total. Any unparseable date makes
// the span unknown and yields zero.
func WeeklySpending(transactions []Transaction) float64 {
	if len(transactions) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(transactions))
	for _, t := range transactions {
		d, ok := ParseLedgerDate(t.Date)
		if !ok {
			return 0
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := int(math.Abs(float64(datetime.DaysBetween(dates[0], dates[len(dates)-1]))))
	if days < 1 {
		days = 1
	}
	weeks := float64(days) / constants.DaysPerWeek

	total, _ := Total(transactions).Float64()
	if weeks > 1 {
		return total / weeks
	}
	return total
}

// MonthlyToWeekly converts a monthly spending figure to an average week.
func MonthlyToWeekly(monthly float64) float64 {
	if monthly <= 0 {
		return 0
	}
	return monthly / constants.WeeksPerMonth
}
