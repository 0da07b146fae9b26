package importer

import (
	"testing"
	"time"

	"rental-backend/internal/models"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name     string
		rows     [][]string
		expected Format
	}{
		{
			name:     "revenue keyword in title",
			rows:     [][]string{{"إيرادات حي الروضة 2024"}},
			expected: Format2,
		},
		{
			name: "ordinal column plus statement header",
			rows: [][]string{
				{"عمارة حي النسيم"},
				{"م", "كشف حساب الشقق", "من", "إلى"},
			},
			expected: Format2,
		},
		{
			name: "numeric ordinal plus statement header",
			rows: [][]string{
				{""},
				{"1", "بيان الوحدات"},
			},
			expected: Format2,
		},
		{
			name: "ordinal column without statement keyword",
			rows: [][]string{
				{"عمارة حي النسيم"},
				{"م", "الشقة", "المستأجر"},
			},
			expected: Format1,
		},
		{
			name: "plain unit listing",
			rows: [][]string{
				{"عمارة حي النسيم"},
				{"الشقة", "المستأجر", "الإيجار السنوي"},
			},
			expected: Format1,
		},
		{
			name:     "empty sheet",
			rows:     nil,
			expected: Format1,
		},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.rows); got != tc.expected {
			t.Fatalf("%s: expected format %d, got %d", tc.name, tc.expected, got)
		}
	}
}

func TestBuildingName(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	if got := BuildingName("النرجس", nil, now); got != "حي النرجس" {
		t.Fatalf("meaningful tab: expected حي النرجس, got %q", got)
	}

	rows := [][]string{{"كشف حساب حي الروضة"}}
	if got := BuildingName("Sheet1", rows, now); got != "حي الروضة" {
		t.Fatalf("title scan: expected حي الروضة, got %q", got)
	}

	rows = [][]string{{"عمارة حي السلام"}}
	if got := BuildingName("ورقة1", rows, now); got != "حي السلام" {
		t.Fatalf("title scan: expected حي السلام, got %q", got)
	}

	got := BuildingName("Sheet2", nil, now)
	if got != "عمارة مستوردة "+now.Format("2006-01-02 15:04") {
		t.Fatalf("placeholder: got %q", got)
	}
}

func TestInferStatus(t *testing.T) {
	cases := []struct {
		notes    string
		expected models.PaymentStatus
	}{
		{"", models.PaymentPending},
		{"مدفوع", models.PaymentPaid},
		{"تم التحويل", models.PaymentPaid},
		{"تم السداد", models.PaymentPaid},
		// Negations contain the positive keywords as substrings and must
		// win over them.
		{"غير مدفوع", models.PaymentPending},
		{"لم يتم الدفع", models.PaymentPending},
		{"متبقي 2000", models.PaymentPending},
		{"paid", models.PaymentPaid},
		{"not paid", models.PaymentPending},
		{"ملاحظة عامة", models.PaymentPending},
	}
	for _, tc := range cases {
		if got := inferStatus(tc.notes); got != tc.expected {
			t.Fatalf("inferStatus(%q) expected %s, got %s", tc.notes, tc.expected, got)
		}
	}
}

func TestInferStatusFromRow(t *testing.T) {
	cases := []struct {
		method, due, payDate string
		expected             models.PaymentStatus
	}{
		{"تحويل بنكي", "", "2024-01-10", models.PaymentPaid},
		{"", "", "2024-01-10", models.PaymentPaid},
		{"", "مستحق في 2024/06/01", "", models.PaymentPending},
		{"غير مدفوع", "", "2024-01-10", models.PaymentPending},
		{"تم التحويل", "", "", models.PaymentPaid},
		{"", "", "", models.PaymentPending},
	}
	for _, tc := range cases {
		got := inferStatusFromRow(tc.method, tc.due, tc.payDate)
		if got != tc.expected {
			t.Fatalf("inferStatusFromRow(%q, %q, %q) expected %s, got %s",
				tc.method, tc.due, tc.payDate, tc.expected, got)
		}
	}
}
