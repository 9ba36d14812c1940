// Package output provides utilities for formatting and displaying savings plans.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/savings-orbit/internal/recommend"
	"github.com/iwvelando/savings-orbit/internal/tracker"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/format"
	"github.com/iwvelando/savings-orbit/pkg/mathutil"
	"github.com/iwvelando/savings-orbit/pkg/savings"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Plan writes plan to w in the given output format.
func Plan(w io.Writer, outputFormat, symbol string, plan []savings.Entry) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, plan)
	case constants.OutputFormatJSON:
		return JSONFormat(w, plan)
	default:
		PrettyFormat(w, symbol, plan)
		return nil
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, symbol string, plan []savings.Entry) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "Day  | Date       | Save today  | Saved so far\n")
	fmt.Fprintf(w, "___  | __________ | ___________ | ____________\n")
	for _, e := range plan {
		_, _ = p.Fprintf(w, "%-4d | %s | %s%.2f | %s%.2f\n",
			e.Day, datetime.Format(e.Date), symbol, e.DailyAmount, symbol, e.CumulativeAmount)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, plan []savings.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "date", "daily amount", "cumulative amount"}); err != nil {
		return err
	}
	for _, e := range plan {
		record := []string{
			strconv.Itoa(e.Day),
			datetime.Format(e.Date),
			strconv.FormatFloat(e.DailyAmount, 'f', 2, 64),
			strconv.FormatFloat(e.CumulativeAmount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs v as indented JSON.
func JSONFormat(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Status writes a tracker status in the given output format. CSV output
// lists the plan with a marker for the days already saved.
func Status(w io.Writer, outputFormat, symbol string, status tracker.Status) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return JSONFormat(w, status)
	case constants.OutputFormatCSV:
		return CsvFormat(w, status.Plan)
	}

	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(w, "Date: %s (week %d of %d)\n", status.CurrentDate, status.CurrentWeek, status.TotalWeeks)
	_, _ = p.Fprintf(w, "Saved: %s of %s (%.1f%%)\n",
		format.CurrencyWithSymbol(symbol, status.SavedAmount), format.CurrencyWithSymbol(symbol, status.TargetAmount), status.Progress)
	_, _ = p.Fprintf(w, "Days left: %d\n", status.DaysLeft)

	switch {
	case status.Banned:
		fmt.Fprintf(w, "Banned: %d days missed in a row. Unban to continue.\n", constants.BanThreshold)
	case status.Complete:
		fmt.Fprintf(w, "Goal complete!\n")
	case status.SavedToday:
		_, _ = p.Fprintf(w, "Today (day %d): saved. Move on to the next day when ready.\n", status.Today.Day)
	default:
		_, _ = p.Fprintf(w, "Today (day %d): save %s\n", status.Today.Day, format.CurrencyWithSymbol(symbol, status.Today.DailyAmount))
	}
	if status.Penalized {
		fmt.Fprintf(w, "Penalty: unbanned after missing too many days\n")
	}
	if len(status.MissedDays) > 0 {
		fmt.Fprintf(w, "Missed days: %s\n", strings.Join(status.MissedDays, ", "))
	}
	if !mathutil.IsZero(status.WeeklySpending) {
		fmt.Fprintf(w, "Current weekly spending: %s\n", format.CurrencyWithSymbol(symbol, status.WeeklySpending))
	}
	return nil
}

// Recommendations writes a week's advice in the given output format.
func Recommendations(w io.Writer, outputFormat, symbol string, result recommend.Result, weeklySpending float64) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	case constants.OutputFormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"area", "advice"})
		for _, item := range result.Items {
			_ = cw.Write([]string{item.Area, item.Advice})
		}
		cw.Flush()
		return cw.Error()
	}

	fmt.Fprintf(w, "%s\n", result.Intro)
	for i, item := range result.Items {
		fmt.Fprintf(w, "%d. %s: %s\n", i+1, item.Area, item.Advice)
	}
	if target, ok := recommend.NewWeeklySpendTarget(weeklySpending, result); ok {
		fmt.Fprintf(w, "New weekly spending target: %s (down from %s)\n",
			format.CurrencyWithSymbol(symbol, target), format.CurrencyWithSymbol(symbol, weeklySpending))
	}
	return nil
}
