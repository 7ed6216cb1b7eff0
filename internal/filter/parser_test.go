package filter

import (
	"strings"
	"testing"
	"time"
)

func TestParseDateRangeSameMonth(t *testing.T) {
	from, to, err := ParseDateRange("Mar 1-15")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if from.Month() != time.March || from.Day() != 1 {
		t.Errorf("from = %v", from)
	}
	if to.Month() != time.March || to.Day() != 15 {
		t.Errorf("to = %v", to)
	}
	if from.Hour() != 0 || to.Hour() != 23 {
		t.Errorf("window bounds = %v .. %v", from, to)
	}
	if from.Year() != to.Year() {
		t.Errorf("same-month range crossed years: %v .. %v", from, to)
	}
}

func TestParseDateRangeCrossMonth(t *testing.T) {
	from, to, err := ParseDateRange("March 1 - April 15")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if from.Month() != time.March || to.Month() != time.April {
		t.Errorf("months = %v .. %v", from.Month(), to.Month())
	}
}

func TestParseDateRangeWrappedEndMonth(t *testing.T) {
	from, to, err := ParseDateRange("Dec 20 - Jan 5")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if to.Year() != from.Year()+1 {
		t.Errorf("wrapped end month should land in the next year: %v .. %v", from, to)
	}
}

func TestParseDateRangeWholeMonth(t *testing.T) {
	from, to, err := ParseDateRange("March")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if from.Day() != 1 {
		t.Errorf("from = %v", from)
	}
	if to.Day() != 31 {
		t.Errorf("March should end on the 31st, got %v", to)
	}
}

func TestParseDateRangeErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"", "cannot be empty"},
		{"Mar 15-1", "start date must be before end date"},
		{"Mar 0-15", "invalid day"},
		{"Mar 1-40", "invalid day"},
		{"next tuesday", "invalid date range format"},
	}

	for _, tt := range tests {
		_, _, err := ParseDateRange(tt.input)
		if err == nil {
			t.Errorf("ParseDateRange(%q) expected error", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("ParseDateRange(%q) error = %q, want substring %q", tt.input, err, tt.wantErr)
		}
	}
}
