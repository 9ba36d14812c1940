package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/savings"
)

// ValidateGoalDates checks that the goal's dates parse and are in order.
func ValidateGoalDates(startDate, deadline string) []string {
	var warnings []string

	_, startErr := datetime.ParseDate(startDate)
	if startDate != "" && startErr != nil {
		warnings = append(warnings, fmt.Sprintf("Goal start date %q is not a YYYY-MM-DD date", startDate))
	}
	_, endErr := datetime.ParseDate(deadline)
	if endErr != nil {
		warnings = append(warnings, fmt.Sprintf("Goal deadline %q is not a YYYY-MM-DD date", deadline))
	}

	if startDate != "" && startErr == nil && endErr == nil {
		if before, _ := datetime.DateBeforeDate(deadline, startDate); before {
			warnings = append(warnings, fmt.Sprintf("Goal deadline %s is before the start date %s", deadline, startDate))
		}
	}
	return warnings
}

// ValidateDailyFloor warns when the target is too small for the plan length
// to grow day by day. Such plans save the same amount every day.
func ValidateDailyFloor(targetAmount float64, days int) string {
	if days < 2 || targetAmount <= 0 {
		return ""
	}
	if targetAmount/float64(days) < constants.MinimumDailyAmount {
		return fmt.Sprintf("Goal of %.2f over %d days is below the %.2f daily minimum; the plan will save a flat amount each day",
			targetAmount, days, constants.MinimumDailyAmount)
	}
	return ""
}

// GoalConfig is the goal section as seen by the validator.
type GoalConfig struct {
	TargetAmount     float64
	StartDate        string
	Deadline         string
	AccuracyLevel    string
	TransactionsFile string
	MonthlySpending  float64
	WeeklyGroceries  float64
}

// StorageConfig is the storage section as seen by the validator.
type StorageConfig struct {
	Driver string
	URL    string
}

// RecommendationsConfig is the recommendations section as seen by the validator.
type RecommendationsConfig struct {
	Provider string
	APIKey   string
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Goal            GoalConfig
	Storage         StorageConfig
	Recommendations RecommendationsConfig
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	// An unset goal is fine; the goal command or API can supply one later.
	if cv.Goal.TargetAmount != 0 || cv.Goal.Deadline != "" {
		if cv.Goal.TargetAmount <= 0 {
			warnings = append(warnings, fmt.Sprintf("Goal target amount %.2f must be positive", cv.Goal.TargetAmount))
		}
		warnings = append(warnings, ValidateGoalDates(cv.Goal.StartDate, cv.Goal.Deadline)...)

		if start, err := datetime.ParseDate(cv.Goal.StartDate); err == nil {
			if end, err := datetime.ParseDate(cv.Goal.Deadline); err == nil {
				if w := ValidateDailyFloor(cv.Goal.TargetAmount, savings.PlanLength(end, start)); w != "" {
					warnings = append(warnings, w)
				}
			}
		}
	}

	switch strings.ToLower(cv.Goal.AccuracyLevel) {
	case "", "basic":
		if cv.Goal.MonthlySpending == 0 && cv.Goal.TargetAmount > 0 {
			warnings = append(warnings, "Goal monthly spending is not set; weekly spending estimates will be zero")
		}
	case "intermediate":
		if cv.Goal.WeeklyGroceries == 0 {
			warnings = append(warnings, "Intermediate accuracy works best with weekly grocery spending set")
		}
	case "advanced":
		if cv.Goal.TransactionsFile == "" {
			warnings = append(warnings, "Advanced accuracy needs a transactions file; import one with the import command")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown accuracy level %q; expected basic, intermediate or advanced", cv.Goal.AccuracyLevel))
	}

	if err := ValidateStorageDriver(cv.Storage.Driver); err != nil {
		warnings = append(warnings, fmt.Sprintf("Storage: %v", err))
	}
	if (cv.Storage.Driver == constants.StorageDriverRedis || cv.Storage.Driver == constants.StorageDriverPostgres) && cv.Storage.URL == "" {
		warnings = append(warnings, fmt.Sprintf("Storage driver %s requires a url", cv.Storage.Driver))
	}

	if cv.Recommendations.Provider != "static" && cv.Recommendations.APIKey == "" {
		warnings = append(warnings, fmt.Sprintf("No recommendations API key set (env %s); general tips will be shown", constants.DefaultAPIKeyEnv))
	}

	return warnings
}
