// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SAVINGS_ORBIT_STORAGE_DRIVER.
const EnvPrefix = "SAVINGS_ORBIT"

// Configuration holds all configuration for savings-orbit.
type Configuration struct {
	Goal            GoalConfig            `yaml:"goal,omitempty"`
	Storage         StorageConfig         `yaml:"storage,omitempty"`
	Recommendations RecommendationsConfig `yaml:"recommendations,omitempty"`
	Logging         LoggingConfig         `yaml:"logging,omitempty"`
	Output          OutputConfig          `yaml:"output,omitempty"`
	Currency        CurrencyConfig        `yaml:"currency,omitempty"`
}

// GoalConfig describes a goal to create from the config file.
type GoalConfig struct {
	TargetAmount      float64            `yaml:"targetAmount,omitempty"`
	StartDate         string             `yaml:"startDate,omitempty"` // defaults to today
	Deadline          string             `yaml:"deadline,omitempty"`
	AccuracyLevel     string             `yaml:"accuracyLevel,omitempty"` // basic, intermediate, advanced
	MonthlyIncome     float64            `yaml:"monthlyIncome,omitempty"`
	MonthlySpending   float64            `yaml:"monthlySpending,omitempty"`
	WeeklyGroceries   float64            `yaml:"weeklyGroceries,omitempty"`
	RecurringExpenses []RecurringExpense `yaml:"recurringExpenses,omitempty"`
	TransactionsFile  string             `yaml:"transactionsFile,omitempty"`
}

// RecurringExpense is a named regular outgoing.
type RecurringExpense struct {
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
}

// StorageConfig selects where tracker state lives.
type StorageConfig struct {
	Driver string `yaml:"driver,omitempty"` // file, sqlite, redis, postgres, memory
	Path   string `yaml:"path,omitempty"`
	URL    string `yaml:"url,omitempty"`
	Key    string `yaml:"key,omitempty"`
}

// RecommendationsConfig configures the advice provider.
type RecommendationsConfig struct {
	Provider  string `yaml:"provider,omitempty"` // gemini, static
	Model     string `yaml:"model,omitempty"`
	BaseURL   string `yaml:"baseURL,omitempty"`
	APIKey    string `yaml:"apiKey,omitempty"`
	APIKeyEnv string `yaml:"apiKeyEnv,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// CurrencyConfig holds display options for amounts.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol,omitempty"`
}

// setDefaults registers every scalar key so AutomaticEnv can override it;
// viper only consults the environment for keys it already knows.
func setDefaults(v *viper.Viper) {
	v.SetDefault("goal.targetAmount", 0)
	v.SetDefault("goal.startDate", "")
	v.SetDefault("goal.deadline", "")
	v.SetDefault("goal.accuracyLevel", "basic")
	v.SetDefault("goal.monthlyIncome", 0)
	v.SetDefault("goal.monthlySpending", 0)
	v.SetDefault("goal.weeklyGroceries", 0)
	v.SetDefault("goal.transactionsFile", "")
	v.SetDefault("storage.driver", constants.StorageDriverFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.url", "")
	v.SetDefault("storage.key", constants.DefaultStateKey)
	v.SetDefault("recommendations.provider", "gemini")
	v.SetDefault("recommendations.model", constants.DefaultRecommendationModel)
	v.SetDefault("recommendations.baseURL", constants.DefaultRecommendationBaseURL)
	v.SetDefault("recommendations.apiKey", "")
	v.SetDefault("recommendations.apiKeyEnv", constants.DefaultAPIKeyEnv)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("currency.symbol", constants.DefaultCurrencySymbol)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads defaults and environment
// overrides only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.Recommendations.APIKey == "" && configuration.Recommendations.APIKeyEnv != "" {
		configuration.Recommendations.APIKey = os.Getenv(configuration.Recommendations.APIKeyEnv)
	}

	return &configuration, nil
}

// HasGoal reports whether the config file describes a goal.
func (c *Configuration) HasGoal() bool {
	return c.Goal.TargetAmount != 0 || c.Goal.Deadline != ""
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		Goal: validation.GoalConfig{
			TargetAmount:     c.Goal.TargetAmount,
			StartDate:        c.Goal.StartDate,
			Deadline:         c.Goal.Deadline,
			AccuracyLevel:    c.Goal.AccuracyLevel,
			TransactionsFile: c.Goal.TransactionsFile,
			MonthlySpending:  c.Goal.MonthlySpending,
			WeeklyGroceries:  c.Goal.WeeklyGroceries,
		},
		Storage: validation.StorageConfig{
			Driver: c.Storage.Driver,
			URL:    c.Storage.URL,
		},
		Recommendations: validation.RecommendationsConfig{
			Provider: c.Recommendations.Provider,
			APIKey:   c.Recommendations.APIKey,
		},
	}
	return validator.ValidateAll()
}
