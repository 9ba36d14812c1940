// Package goal defines the savings goal a user commits to and the financial
// details supplied alongside it.
package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/ledger"
	"github.com/iwvelando/savings-orbit/pkg/savings"
)

// AccuracyLevel is how much financial detail the user supplied.
type AccuracyLevel string

const (
	AccuracyBasic        AccuracyLevel = "basic"
	AccuracyIntermediate AccuracyLevel = "intermediate"
	AccuracyAdvanced     AccuracyLevel = "advanced"
)

// ParseAccuracyLevel maps a config value onto an AccuracyLevel. Empty means basic.
func ParseAccuracyLevel(s string) (AccuracyLevel, error) {
	switch AccuracyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "", AccuracyBasic:
		return AccuracyBasic, nil
	case AccuracyIntermediate:
		return AccuracyIntermediate, nil
	case AccuracyAdvanced:
		return AccuracyAdvanced, nil
	}
	return "", fmt.Errorf("invalid accuracy level %q: expected basic, intermediate or advanced", s)
}

// RecurringExpense is a named regular outgoing.
type RecurringExpense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Financials holds whatever the user shared about their money. Which fields
// matter depends on the goal's AccuracyLevel.
type Financials struct {
	MonthlyIncome     float64              `json:"monthlyIncome,omitempty"`
	MonthlySpending   float64              `json:"monthlySpending,omitempty"`
	WeeklyGroceries   float64              `json:"weeklyGroceries,omitempty"`
	RecurringExpenses []RecurringExpense   `json:"recurringExpenses,omitempty"`
	Transactions      []ledger.Transaction `json:"transactions,omitempty"`
}

// Goal is a savings commitment. It is not modified after creation.
type Goal struct {
	ID            uuid.UUID     `json:"id"`
	TargetAmount  float64       `json:"targetAmount"`
	Deadline      string        `json:"deadline"`
	StartDate     string        `json:"startDate"`
	AccuracyLevel AccuracyLevel `json:"accuracyLevel"`
	Financials    Financials    `json:"financials"`
}

// New validates the target and deadline against the start date and returns a
// goal with a fresh ID.
func New(targetAmount float64, deadline, startDate time.Time, level AccuracyLevel, financials Financials) (Goal, error) {
	if err := savings.ValidateGoal(targetAmount, deadline, startDate); err != nil {
		return Goal{}, err
	}
	if level == "" {
		level = AccuracyBasic
	}

	return Goal{
		ID:            uuid.New(),
		TargetAmount:  targetAmount,
		Deadline:      datetime.Format(deadline),
		StartDate:     datetime.Format(startDate),
		AccuracyLevel: level,
		Financials:    financials,
	}, nil
}

// DeadlineDate parses the stored deadline.
func (g Goal) DeadlineDate() (time.Time, error) {
	d, err := datetime.ParseDate(g.Deadline)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing goal deadline %q: %w", g.Deadline, err)
	}
	return d, nil
}

// StartDateTime parses the stored start date.
func (g Goal) StartDateTime() (time.Time, error) {
	d, err := datetime.ParseDate(g.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing goal start date %q: %w", g.StartDate, err)
	}
	return d, nil
}

// Plan generates the goal's schedule anchored on its start date, so that the
// entry for a given number of completed days never moves.
func (g Goal) Plan() ([]savings.Entry, error) {
	start, err := g.StartDateTime()
	if err != nil {
		return nil, err
	}
	return g.PlanFrom(start)
}

// PlanFrom generates the goal's schedule anchored on the given date.
func (g Goal) PlanFrom(anchor time.Time) ([]savings.Entry, error) {
	deadline, err := g.DeadlineDate()
	if err != nil {
		return nil, err
	}
	return savings.Generate(g.TargetAmount, deadline, anchor)
}

// WeeklySpending estimates current weekly spending from the supplied
// financials: imported transactions for advanced goals, monthly spending
// otherwise.
func (g Goal) WeeklySpending() float64 {
	if g.AccuracyLevel == AccuracyAdvanced {
		return ledger.WeeklySpending(g.Financials.Transactions)
	}
	return ledger.MonthlyToWeekly(g.Financials.MonthlySpending)
}
