package recommend

import (
	"fmt"
	"strings"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/format"
)

const displayDateLayout = "02/01/2006"

const instruction = "Your task is to provide exactly 3 new, actionable savings recommendations. " +
	"These recommendations should be slightly more challenging or build upon previous successes, " +
	"helping the user find further small cuts to meet their increasing daily savings targets."

// BuildPrompt renders the request as model instructions. The amount of
// financial context included depends on the goal's accuracy level.
func BuildPrompt(req Request) string {
	g := req.Goal
	f := g.Financials

	symbol := req.Symbol
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	money := func(amount float64) string {
		return format.CurrencyWithSymbol(symbol, amount)
	}

	deadline := g.Deadline
	if d, err := g.DeadlineDate(); err == nil {
		deadline = d.Format(displayDateLayout)
	}
	goalLine := fmt.Sprintf("The user's goal is to save %s by %s. "+
		"The response must be encouraging, actionable, and tailored to the level of detail provided.",
		money(g.TargetAmount), deadline)

	week := req.CurrentWeek
	if week < 1 {
		week = 1
	}
	progressLine := fmt.Sprintf("The user is now on week %d of their savings plan. "+
		"Their required daily savings amount is gradually increasing.", week)

	completedLine := ""
	if len(req.Completed) > 0 {
		completedLine = fmt.Sprintf("In previous weeks, they have successfully completed the following tasks: \"%s\". "+
			"Do not suggest these again.", strings.Join(req.Completed, `", "`))
	}

	var b strings.Builder
	switch g.AccuracyLevel {
	case goal.AccuracyAdvanced:
		transactions := f.Transactions
		if len(transactions) > constants.MaxPromptTransactions {
			transactions = transactions[:constants.MaxPromptTransactions]
		}
		summary := make([]string, 0, len(transactions))
		for _, t := range transactions {
			amount, _ := t.Amount.Float64()
			summary = append(summary, fmt.Sprintf("%s: %s", t.Description, money(amount)))
		}
		fmt.Fprintf(&b, "Analyze the user's recent spending history: %s.\n", strings.Join(summary, "; "))
		writeContext(&b, progressLine, completedLine)
		b.WriteString("Your analysis should:\n")
		b.WriteString("1. Identify spending trends and patterns (e.g., high spending on weekends, frequent small purchases at specific stores, patterns in dining out).\n")
		b.WriteString("2. Auto-categorize their main spending areas (e.g., Groceries, Dining Out, Transport, Subscriptions).\n")
		b.WriteString("3. Based on the trends, identify the top 2-3 areas with the most potential for savings.\n")
		b.WriteString("4. Provide specific, actionable weekly reduction targets for these categories as part of your 3 recommendations.\n")
		b.WriteString("5. DO NOT suggest cancelling subscriptions, but you may comment if they form a large portion of spending.\n")
		b.WriteString("6. Finally, provide an overall total weekly spending reduction target as a single number.\n")

	case goal.AccuracyIntermediate:
		expenses := make([]string, 0, len(f.RecurringExpenses))
		for _, e := range f.RecurringExpenses {
			expenses = append(expenses, fmt.Sprintf("%s (%s)", e.Name, money(e.Amount)))
		}
		fmt.Fprintf(&b, "A user provides their financials: monthly income %s, monthly spending %s, "+
			"weekly grocery spending %s, and recurring expenses: %s.\n",
			money(f.MonthlyIncome), money(f.MonthlySpending),
			money(f.WeeklyGroceries), strings.Join(expenses, ", "))
		writeContext(&b, progressLine, completedLine)
		b.WriteString("Your task is to provide actionable savings advice with these rules:\n")
		b.WriteString("1. Focus on weekly savings targets for negotiable categories like groceries.\n")
		b.WriteString("2. You MUST NOT recommend cancelling any subscriptions.\n")
		b.WriteString("3. However, if the list of recurring expenses is large (e.g., >10 items) or their total cost is a high percentage of monthly spending, you may make an observation about it without suggesting cancellation.\n")
		b.WriteString("4. Provide a total weekly spending reduction target as a single number.\n")

	default:
		fmt.Fprintf(&b, "A user has a monthly income of %s and spends about %s per month.\n",
			money(f.MonthlyIncome), money(f.MonthlySpending))
		writeContext(&b, progressLine, completedLine)
		b.WriteString("Your task is to:\n")
		b.WriteString("1. Provide some general savings advice in the intro. Start by explaining that providing more details (like grocery spending or transaction history) would allow for a more personalized savings plan.\n")
		b.WriteString("2. Suggest a single, achievable weekly spending reduction target as a number.\n")
	}
	b.WriteString(goalLine)

	return b.String()
}

func writeContext(b *strings.Builder, progress, completed string) {
	b.WriteString(progress)
	b.WriteByte('\n')
	if completed != "" {
		b.WriteString(completed)
		b.WriteByte('\n')
	}
	b.WriteString(instruction)
	b.WriteByte('\n')
}
