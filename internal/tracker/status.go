package tracker

import (
	"github.com/iwvelando/savings-orbit/pkg/mathutil"
	"github.com/iwvelando/savings-orbit/pkg/savings"
)

// Status is the progress view derived from a State.
type Status struct {
	CurrentDate    string          `json:"currentDate"`
	Plan           []savings.Entry `json:"plan"`
	Today          *savings.Entry  `json:"today,omitempty"`
	SavedAmount    float64         `json:"savedAmount"`
	TargetAmount   float64         `json:"targetAmount"`
	Progress       float64         `json:"progress"`
	DaysLeft       int             `json:"daysLeft"`
	CurrentWeek    int             `json:"currentWeek"`
	TotalWeeks     int             `json:"totalWeeks"`
	SavedToday     bool            `json:"savedToday"`
	Complete       bool            `json:"complete"`
	Banned         bool            `json:"banned"`
	Penalized      bool            `json:"penalized"`
	MissedDays     []string        `json:"missedDays,omitempty"`
	WeeklySpending float64         `json:"weeklySpending"`
}

// Compute derives the status of s.
func Compute(s State) (Status, error) {
	plan, err := s.Goal.Plan()
	if err != nil {
		return Status{}, err
	}

	status := Status{
		CurrentDate:    s.CurrentDate,
		Plan:           plan,
		SavedAmount:    savings.SavedAmount(plan, s.CompletedDays),
		TargetAmount:   s.Goal.TargetAmount,
		Progress:       mathutil.Round(savings.Progress(plan, s.CompletedDays, s.Goal.TargetAmount)),
		DaysLeft:       savings.DaysRemaining(plan, s.CompletedDays),
		CurrentWeek:    savings.CurrentWeek(s.CompletedDays),
		TotalWeeks:     savings.TotalWeeks(plan),
		SavedToday:     s.SavedToday(),
		Banned:         s.Banned(),
		Penalized:      s.Penalized,
		MissedDays:     s.MissedDays,
		WeeklySpending: s.Goal.WeeklySpending(),
	}
	if entry, ok := savings.TodayEntry(plan, s.CompletedDays); ok {
		status.Today = &entry
	} else {
		status.Complete = true
	}

	return status, nil
}
