package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{"Valid pretty format", "pretty", false},
		{"Valid csv format", "csv", false},
		{"Valid json format", "json", false},
		{"Empty format", "", true},
		{"Case sensitive - uppercase", "PRETTY", true},
		{"Leading/trailing spaces", " pretty ", true},
		{"XML format not supported", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("Expected error for format %q but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error for format %q but got: %v", tt.format, err)
			}
		})
	}
}

func TestValidateStorageDriver(t *testing.T) {
	for _, driver := range []string{"file", "sqlite", "redis", "postgres", "memory"} {
		if err := ValidateStorageDriver(driver); err != nil {
			t.Errorf("ValidateStorageDriver(%q) unexpected error: %v", driver, err)
		}
	}
	for _, driver := range []string{"", "mysql", "SQLite"} {
		if err := ValidateStorageDriver(driver); err == nil {
			t.Errorf("ValidateStorageDriver(%q) expected error", driver)
		}
	}
}
