package recommend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/pkg/ledger"
	"github.com/shopspring/decimal"
)

func baseGoal(level goal.AccuracyLevel) goal.Goal {
	return goal.Goal{
		TargetAmount:  1500,
		StartDate:     "2025-01-01",
		Deadline:      "2025-06-30",
		AccuracyLevel: level,
		Financials: goal.Financials{
			MonthlyIncome:   2500,
			MonthlySpending: 1800,
			WeeklyGroceries: 75,
			RecurringExpenses: []goal.RecurringExpense{
				{Name: "Gym", Amount: 30},
				{Name: "Streaming", Amount: 10.99},
			},
		},
	}
}

func TestBuildPromptByLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    goal.AccuracyLevel
		contains []string
		excludes []string
	}{
		{
			name:     "Basic",
			level:    goal.AccuracyBasic,
			contains: []string{"monthly income of £2,500.00", "spends about £1,800.00 per month", "providing more details"},
			excludes: []string{"Gym", "spending history"},
		},
		{
			name:     "Intermediate",
			level:    goal.AccuracyIntermediate,
			contains: []string{"weekly grocery spending £75.00", "Gym (£30.00), Streaming (£10.99)", "MUST NOT recommend cancelling"},
			excludes: []string{"spending history"},
		},
		{
			name:     "Advanced",
			level:    goal.AccuracyAdvanced,
			contains: []string{"Analyze the user's recent spending history", "Auto-categorize"},
			excludes: []string{"monthly income"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(Request{Goal: baseGoal(tt.level), CurrentWeek: 2})

			common := []string{
				"save £1,500.00 by 30/06/2025",
				"week 2 of their savings plan",
				"exactly 3 new, actionable savings recommendations",
			}
			for _, want := range append(common, tt.contains...) {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt missing %q:\n%s", want, prompt)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(prompt, unwanted) {
					t.Errorf("prompt should not contain %q", unwanted)
				}
			}
		})
	}
}

func TestBuildPromptCompleted(t *testing.T) {
	req := Request{Goal: baseGoal(goal.AccuracyBasic), CurrentWeek: 3}
	if strings.Contains(BuildPrompt(req), "Do not suggest these again") {
		t.Error("prompt mentions completed tasks when there are none")
	}

	req.Completed = []string{"Pack lunch", "Walk to work"}
	want := `completed the following tasks: "Pack lunch", "Walk to work". Do not suggest these again.`
	if prompt := BuildPrompt(req); !strings.Contains(prompt, want) {
		t.Errorf("prompt missing completed tasks:\n%s", prompt)
	}
}

func TestBuildPromptLimitsTransactions(t *testing.T) {
	g := baseGoal(goal.AccuracyAdvanced)
	for i := 0; i < 60; i++ {
		g.Financials.Transactions = append(g.Financials.Transactions, ledger.Transaction{
			Date:        "2025-01-01",
			Description: fmt.Sprintf("Shop %02d", i),
			Amount:      decimal.NewFromFloat(4.5),
		})
	}

	prompt := BuildPrompt(Request{Goal: g})
	if !strings.Contains(prompt, "Shop 49: £4.50") {
		t.Error("expected the 50th transaction in the prompt")
	}
	if strings.Contains(prompt, "Shop 50") {
		t.Error("expected transactions beyond the 50th to be left out")
	}
	if !strings.Contains(prompt, "week 1 of") {
		t.Error("expected week to default to 1")
	}
}

func TestBuildPromptUsesCurrencySymbol(t *testing.T) {
	prompt := BuildPrompt(Request{Goal: baseGoal(goal.AccuracyIntermediate), Symbol: "$"})

	for _, want := range []string{"save $1,500.00 by 30/06/2025", "monthly income $2,500.00", "Gym ($30.00)"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "£") {
		t.Errorf("prompt still uses the default symbol:\n%s", prompt)
	}
}
