// Package savings builds daily savings schedules for a goal.
//
// A plan saves a little on the first day and a constant amount more on every
// following day, so that the running total reaches the target on the deadline.
// Plans are pure values: the same target, deadline and anchor date always give
// the same sequence, and nothing is cached or persisted here.
package savings

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/mathutil"
)

var (
	// ErrInvalidGoal indicates a target amount that is not a positive, finite number.
	ErrInvalidGoal = errors.New("savings: target amount must be positive")
	// ErrInvalidDeadline indicates a deadline earlier than the anchor date.
	ErrInvalidDeadline = errors.New("savings: deadline is before the anchor date")
	// ErrDegenerateSchedule indicates the progression could not be represented.
	ErrDegenerateSchedule = errors.New("savings: degenerate schedule")
)

// Entry holds the amounts scheduled for one day of a plan.
type Entry struct {
	Day              int       `json:"day"`
	Date             time.Time `json:"date"`
	DailyAmount      float64   `json:"dailyAmount"`
	CumulativeAmount float64   `json:"cumulativeAmount"`
}

// Progression describes the arithmetic progression behind a plan: the first
// day's amount and the increment added on each following day.
type Progression struct {
	Days      int
	Start     float64
	Increment float64
}

// ValidateGoal checks the generator's preconditions without building a plan.
func ValidateGoal(targetAmount float64, deadline, anchor time.Time) error {
	if !mathutil.IsFinite(targetAmount) || targetAmount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidGoal, targetAmount)
	}
	if datetime.Midnight(deadline).Before(datetime.Midnight(anchor)) {
		return fmt.Errorf("%w: %s < %s", ErrInvalidDeadline,
			datetime.Format(deadline), datetime.Format(anchor))
	}
	return nil
}

// PlanLength returns the inclusive number of saving days from anchor to
// deadline, never less than one.
func PlanLength(deadline, anchor time.Time) int {
	n := datetime.DaysBetween(anchor, deadline) + 1
	if n < 1 {
		return 1
	}
	return n
}

// Solve computes the progression for saving targetAmount over n days.
//
// The first day saves half of the flat average, floored at
// constants.MinimumDailyAmount. The increment is the closed-form solution of
// S = n/2 * (2a + (n-1)d) for d. When the floor pushes the first day above the
// flat average the increment would be negative; the plan then saves the flat
// average every day instead.
func Solve(targetAmount float64, n int) (Progression, error) {
	if !mathutil.IsFinite(targetAmount) || targetAmount <= 0 {
		return Progression{}, fmt.Errorf("%w: got %v", ErrInvalidGoal, targetAmount)
	}
	if n < 1 {
		return Progression{}, fmt.Errorf("%w: %d days", ErrDegenerateSchedule, n)
	}
	if n == 1 {
		return Progression{Days: 1, Start: targetAmount}, nil
	}

	days := float64(n)
	average := targetAmount / days
	start := mathutil.Max(constants.MinimumDailyAmount, average*constants.StartingFraction)
	increment := (2*targetAmount/days - 2*start) / (days - 1)

	if increment < 0 {
		start, increment = average, 0
	}
	if !mathutil.IsFinite(start) || !mathutil.IsFinite(increment) {
		return Progression{}, fmt.Errorf("%w: start %v, increment %v", ErrDegenerateSchedule, start, increment)
	}

	return Progression{Days: n, Start: start, Increment: increment}, nil
}

// Generate builds the plan for saving targetAmount between anchor and
// deadline, both inclusive. The last entry's cumulative amount is exactly
// targetAmount.
func Generate(targetAmount float64, deadline, anchor time.Time) ([]Entry, error) {
	if err := ValidateGoal(targetAmount, deadline, anchor); err != nil {
		return nil, err
	}

	progression, err := Solve(targetAmount, PlanLength(deadline, anchor))
	if err != nil {
		return nil, err
	}

	return progression.Entries(targetAmount, anchor), nil
}

// Entries expands the progression into dated entries starting on anchor.
func (p Progression) Entries(targetAmount float64, anchor time.Time) []Entry {
	plan := make([]Entry, p.Days)
	first := datetime.Midnight(anchor)

	cumulative := 0.0
	for i := range plan {
		daily := p.Start + float64(i)*p.Increment
		cumulative += daily
		plan[i] = Entry{
			Day:              i + 1,
			Date:             first.AddDate(0, 0, i),
			DailyAmount:      daily,
			CumulativeAmount: cumulative,
		}
	}

	// Repeated float addition drifts; the final total is the goal itself.
	if len(plan) > 0 {
		plan[len(plan)-1].CumulativeAmount = targetAmount
	}

	return plan
}
