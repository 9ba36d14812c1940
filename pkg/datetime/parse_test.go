package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		dateStr  string
		expected string
	}{
		{"Valid date", "2025-01-15", "2025-01-15"},
		{"Leap day", "2028-02-29", "2028-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(DateLayout, tt.dateStr)
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"Same day", "2025-03-10", "2025-03-10", 0},
		{"Next day", "2025-03-10", "2025-03-11", 1},
		{"Nine days", "2025-03-10", "2025-03-19", 9},
		{"Across month end", "2025-01-30", "2025-02-02", 3},
		{"Across leap day", "2028-02-28", "2028-03-01", 2},
		{"Across year end", "2025-12-31", "2026-01-01", 1},
		{"End before start", "2025-03-10", "2025-03-08", -2},
		{"Several centuries", "2025-01-01", "2400-01-01", 136965},
		{"Several centuries back", "2025-01-01", "1700-03-01", -118645},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MustParseTime(DateLayout, tt.start)
			end := MustParseTime(DateLayout, tt.end)
			if got := DaysBetween(start, end); got != tt.expected {
				t.Errorf("DaysBetween(%s, %s) = %d, expected %d", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	start := time.Date(2025, 6, 1, 23, 59, 0, 0, zone)
	end := time.Date(2025, 6, 3, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(start, end); got != 2 {
		t.Errorf("DaysBetween() = %d, expected 2", got)
	}
}

func TestMidnight(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	in := time.Date(2025, 7, 4, 21, 30, 15, 99, zone)
	got := Midnight(in)

	want := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, expected %v", got, want)
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		days     int
		expected string
		wantErr  bool
	}{
		{"Forward one day", "2025-01-31", 1, "2025-02-01", false},
		{"Backward one day", "2025-03-01", -1, "2025-02-28", false},
		{"Forward a week", "2025-12-28", 7, "2026-01-04", false},
		{"Invalid date", "2025-13-01", 1, "2025-13-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, tt.days)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("OffsetDate() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestDateBeforeDate(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected bool
		wantErr  bool
	}{
		{"Before", "2025-01-01", "2025-01-02", true, false},
		{"Equal", "2025-01-01", "2025-01-01", false, false},
		{"After", "2025-01-02", "2025-01-01", false, false},
		{"Invalid first", "bad", "2025-01-01", false, true},
		{"Invalid second", "2025-01-01", "bad", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DateBeforeDate(tt.first, tt.second)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DateBeforeDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("DateBeforeDate(%s, %s) = %v, expected %v", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}
