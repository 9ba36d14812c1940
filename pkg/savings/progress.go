package savings

import (
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/mathutil"
)

// TodayEntry returns the entry due after completed days have been saved.
// The boolean is false once the plan is finished.
func TodayEntry(plan []Entry, completed int) (Entry, bool) {
	if completed < 0 || completed >= len(plan) {
		return Entry{}, false
	}
	return plan[completed], true
}

// SavedAmount returns the cumulative amount banked after completed days.
func SavedAmount(plan []Entry, completed int) float64 {
	if completed <= 0 || len(plan) == 0 {
		return 0
	}
	if completed > len(plan) {
		completed = len(plan)
	}
	return plan[completed-1].CumulativeAmount
}

// DaysRemaining returns how many scheduled days are still to be saved.
func DaysRemaining(plan []Entry, completed int) int {
	if completed < 0 {
		completed = 0
	}
	remaining := len(plan) - completed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress returns the saved share of targetAmount as a percentage.
func Progress(plan []Entry, completed int, targetAmount float64) float64 {
	return mathutil.CalculatePercentage(SavedAmount(plan, completed), targetAmount)
}

// CurrentWeek returns the 1-based plan week the next saving day falls in.
func CurrentWeek(completed int) int {
	if completed < 0 {
		completed = 0
	}
	return completed/constants.DaysPerWeek + 1
}

// TotalWeeks returns the number of plan weeks, counting a partial final week.
func TotalWeeks(plan []Entry) int {
	return (len(plan) + constants.DaysPerWeek - 1) / constants.DaysPerWeek
}
