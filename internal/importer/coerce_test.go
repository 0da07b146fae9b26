package importer

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in       string
		expected float64
	}{
		{"12000", 12000},
		{"12,000", 12000},
		{"12٬500", 12500},
		{"1750٫5", 1750.5},
		{"3000 ر.س", 3000},
		{"3000 ريال", 3000},
		{"SAR 4,250", 4250},
		{"  ", 0},
		{"", 0},
	}
	for _, tc := range cases {
		v, err := parseNumber(tc.in)
		if err != nil {
			t.Fatalf("parseNumber(%q) error: %v", tc.in, err)
		}
		if v != tc.expected {
			t.Fatalf("parseNumber(%q) expected %v, got %v", tc.in, tc.expected, v)
		}
	}
}

func TestParseNumberRejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "12o00", "غير معروف"} {
		if _, err := parseNumber(in); err == nil {
			t.Fatalf("parseNumber(%q) expected an error", in)
		}
	}
}

func TestNumericValueNeverFails(t *testing.T) {
	if v := NumericValue("not a number"); v != 0 {
		t.Fatalf("NumericValue on garbage expected 0, got %v", v)
	}
	if v := NumericValue("1,200 ريال"); v != 1200 {
		t.Fatalf("NumericValue expected 1200, got %v", v)
	}
}

func TestStringValue(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"105.0", "105"},
		{"105", "105"},
		{"105.5", "105.5"},
		{"  شقة 3  ", "شقة 3"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StringValue(tc.in); got != tc.expected {
			t.Fatalf("StringValue(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestDateValue(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024/3/15", "2024-03-15"},
		{"15/3/2024", "2024-03-15"},
		{"15-3-2024", "2024-03-15"},
		{"15.3.2024", "2024-03-15"},
		// Two-digit years come last in the pattern list so four-digit
		// years are never misread as day-month-YY.
		{"15/3/24", "2024-03-15"},
		// Excel date serial for 2023-03-15.
		{"45000", "2023-03-15"},
		{"", ""},
		{"ليس تاريخا", ""},
	}
	for _, tc := range cases {
		if got := DateValue(tc.in); got != tc.expected {
			t.Fatalf("DateValue(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestDateFromText(t *testing.T) {
	if got := DateFromText("يستحق في 2024/06/01 حسب العقد"); got != "2024-06-01" {
		t.Fatalf("DateFromText expected 2024-06-01, got %q", got)
	}
	if got := DateFromText("بدون تاريخ"); got != "" {
		t.Fatalf("DateFromText on plain text expected empty, got %q", got)
	}
}

func TestCellOutOfRange(t *testing.T) {
	row := []string{"a", "b"}
	if got := cell(row, 5); got != "" {
		t.Fatalf("cell beyond row length expected empty, got %q", got)
	}
	if got := cell(row, 1); got != "b" {
		t.Fatalf("cell(1) expected b, got %q", got)
	}
}
