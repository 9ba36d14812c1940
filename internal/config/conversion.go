package config

import (
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/internal/recommend"
	"github.com/iwvelando/savings-orbit/internal/store"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/ledger"
)

// BuildGoal converts the goal section into a validated goal.Goal. An unset
// start date means today. For advanced goals the transactions file is parsed.
func (c *Configuration) BuildGoal(today time.Time) (goal.Goal, error) {
	level, err := goal.ParseAccuracyLevel(c.Goal.AccuracyLevel)
	if err != nil {
		return goal.Goal{}, err
	}

	start := datetime.Midnight(today)
	if c.Goal.StartDate != "" {
		start, err = datetime.ParseDate(c.Goal.StartDate)
		if err != nil {
			return goal.Goal{}, fmt.Errorf("parsing goal start date: %w", err)
		}
	}

	deadline, err := datetime.ParseDate(c.Goal.Deadline)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("parsing goal deadline: %w", err)
	}

	financials := goal.Financials{
		MonthlyIncome:   c.Goal.MonthlyIncome,
		MonthlySpending: c.Goal.MonthlySpending,
		WeeklyGroceries: c.Goal.WeeklyGroceries,
	}
	for _, e := range c.Goal.RecurringExpenses {
		financials.RecurringExpenses = append(financials.RecurringExpenses, goal.RecurringExpense{Name: e.Name, Amount: e.Amount})
	}

	if level == goal.AccuracyAdvanced && c.Goal.TransactionsFile != "" {
		transactions, err := ReadTransactions(c.Goal.TransactionsFile)
		if err != nil {
			return goal.Goal{}, err
		}
		financials.Transactions = transactions
	}

	return goal.New(c.Goal.TargetAmount, deadline, start, level, financials)
}

// ReadTransactions parses a CSV ledger export from disk.
func ReadTransactions(path string) ([]ledger.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transactions file: %w", err)
	}
	defer func() { _ = f.Close() }()

	transactions, err := ledger.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing transactions file %s: %w", path, err)
	}
	return transactions, nil
}

// StoreOptions converts the storage section for store.Open.
func (c *Configuration) StoreOptions() store.Options {
	return store.Options{
		Driver: c.Storage.Driver,
		Path:   c.Storage.Path,
		URL:    c.Storage.URL,
	}
}

// RecommendOptions converts the recommendations section for recommend.New.
func (c *Configuration) RecommendOptions() recommend.Options {
	return recommend.Options{
		Provider: c.Recommendations.Provider,
		APIKey:   c.Recommendations.APIKey,
		Model:    c.Recommendations.Model,
		BaseURL:  c.Recommendations.BaseURL,
	}
}
