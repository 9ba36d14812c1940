// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/savings"
)

// FindEntry finds the plan entry for a YYYY-MM-DD date.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(plan []savings.Entry, date string) *savings.Entry {
	for i := range plan {
		if datetime.Format(plan[i].Date) == date {
			return &plan[i]
		}
	}
	return nil
}

// CheckPlan reports every way plan fails to be a valid schedule for target:
// wrong day numbering, non-consecutive dates, decreasing amounts, a running
// total that drifts from the daily amounts, or a final total other than
// target. tolerance bounds the drift of the running total.
func CheckPlan(t testing.TB, plan []savings.Entry, target, tolerance float64) {
	t.Helper()

	if len(plan) == 0 {
		t.Fatal("plan is empty")
	}

	sum := 0.0
	for i, e := range plan {
		if e.Day != i+1 {
			t.Errorf("entry %d has day %d", i, e.Day)
		}
		if i > 0 {
			if datetime.DaysBetween(plan[i-1].Date, e.Date) != 1 {
				t.Errorf("day %d is not the day after day %d", e.Day, plan[i-1].Day)
			}
			if e.DailyAmount < plan[i-1].DailyAmount {
				t.Errorf("day %d amount %v is below the previous day's %v", e.Day, e.DailyAmount, plan[i-1].DailyAmount)
			}
		}
		sum += e.DailyAmount
		if i < len(plan)-1 && math.Abs(sum-e.CumulativeAmount) > tolerance {
			t.Errorf("day %d cumulative %v drifts from running sum %v", e.Day, e.CumulativeAmount, sum)
		}
	}

	if last := plan[len(plan)-1].CumulativeAmount; last != target {
		t.Errorf("final cumulative amount = %v, expected exactly %v", last, target)
	}
	if math.Abs(sum-target) > tolerance {
		t.Errorf("daily amounts sum to %v, expected %v", sum, target)
	}
}
