// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/savings-orbit/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateStorageDriver checks if the storage driver is one of the supported drivers.
func ValidateStorageDriver(driver string) error {
	switch driver {
	case constants.StorageDriverFile, constants.StorageDriverSQLite, constants.StorageDriverRedis,
		constants.StorageDriverPostgres, constants.StorageDriverMemory:
		return nil
	}
	return fmt.Errorf("unsupported storage driver %q", driver)
}
