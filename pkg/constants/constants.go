// Package constants provides shared constants for the savings-orbit application.
package constants

// DateLayout is the ISO calendar date format used in config files, persisted
// state and output.
const DateLayout = "2006-01-02"

// Plan generation constants
const (
	// MinimumDailyAmount is the smallest first-day amount a plan may start with
	// (one penny-equivalent).
	MinimumDailyAmount = 0.01

	// StartingFraction is the share of the flat daily average used as the
	// first-day amount.
	StartingFraction = 0.5

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Calendar constants
const (
	// SecondsPerDay is the length of a UTC calendar day.
	SecondsPerDay = 24 * 60 * 60

	// DaysPerWeek is the number of days in a plan week.
	DaysPerWeek = 7

	// WeeksPerMonth is the average number of weeks in a month.
	WeeksPerMonth = 365.25 / 12 / 7
)

// Tracker constants
const (
	// BanThreshold is the number of consecutive missed days that locks the tracker.
	BanThreshold = 3

	// DefaultStateKey is the storage key holding the tracker state.
	DefaultStateKey = "appState"
)

// Recommendation constants
const (
	// RecommendationCount is the number of recommendations expected per week.
	RecommendationCount = 3

	// MaxPromptTransactions caps how many imported transactions are summarized
	// in a recommendation prompt.
	MaxPromptTransactions = 50

	// DefaultRecommendationModel is the default text-generation model.
	DefaultRecommendationModel = "gemini-2.5-flash"

	// DefaultRecommendationBaseURL is the default text-generation API root.
	DefaultRecommendationBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultAPIKeyEnv is the environment variable holding the API key.
	DefaultAPIKeyEnv = "API_KEY"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultCurrencySymbol is prefixed to formatted amounts.
	DefaultCurrencySymbol = "£"
)

// Storage defaults
const (
	// StorageDriverFile keeps state as JSON files in a directory.
	StorageDriverFile = "file"

	// StorageDriverSQLite keeps state in a SQLite database.
	StorageDriverSQLite = "sqlite"

	// StorageDriverRedis keeps state in Redis.
	StorageDriverRedis = "redis"

	// StorageDriverPostgres keeps state in PostgreSQL.
	StorageDriverPostgres = "postgres"

	// StorageDriverMemory keeps state in process memory.
	StorageDriverMemory = "memory"

	// DefaultStorageDir is the directory used by the file driver.
	DefaultStorageDir = ".savings-orbit"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for ledgers (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
