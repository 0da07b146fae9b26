package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"rental-backend/internal/models"
)

// Format identifies which of the two spreadsheet row layouts a sheet uses.
type Format int

const (
	// Format1 is the multi-row-per-unit layout: a unit row followed by
	// continuation rows carrying additional installments.
	Format1 Format = iota + 1
	// Format2 is the one-row-per-unit statement layout ("كشف"), where the
	// same unit may still appear on several rows that must be reconciled.
	Format2
)

const (
	// unitKeyword marks a cell as a unit label ("شقة 3", "الشقة الأولى").
	unitKeyword = "شقة"
	// regionWord prefixes building names derived from sheet tab names.
	regionWord = "حي"
)

var (
	statementKeywords = []string{"كشف", "بيان"}
	revenueKeywords   = []string{"إيراد", "ايراد", "إيجار", "ايجار"}

	// Auto-generated tab names carry no building information.
	defaultSheetRe = regexp.MustCompile(`^(?i:sheet\d*)$|^ورقة\d*$`)

	// Ordinal header cells that mark the leading row-number column of the
	// statement layout.
	ordinalHeaders = []string{"م", "رقم", "#"}

	// Building name extraction from the title row, tried in order.
	buildingNameRes = []*regexp.Regexp{
		regexp.MustCompile(`كشف\s+(?:حساب\s+)?حي\s+(.+)`),
		regexp.MustCompile(`عمارة\s+حي\s+(.+)`),
		regexp.MustCompile(`حي\s+(.+)`),
	}
)

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// DetectFormat inspects one sheet and picks the row layout. Detection is
// per-sheet: a single upload may mix layouts across tabs.
//
// Format 2 is recognized when the title row mentions revenue, or when the
// second row starts with a numeric/ordinal column and some header cell
// carries a statement keyword. Everything else is Format 1.
func DetectFormat(rows [][]string) Format {
	title := ""
	if len(rows) > 0 {
		title = strings.Join(rows[0], " ")
	}
	if containsAny(title, revenueKeywords) {
		return Format2
	}

	if len(rows) > 1 {
		header := rows[1]
		if len(header) > 0 && isOrdinalHeader(header[0]) {
			for _, h := range header {
				if containsAny(h, statementKeywords) {
					return Format2
				}
			}
		}
	}

	return Format1
}

func isOrdinalHeader(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, o := range ordinalHeaders {
		if s == o {
			return true
		}
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// BuildingName derives a human-readable building name for one sheet.
// Resolution order: a meaningful tab name, then a region-keyword scan of
// the title row, then a timestamp-qualified placeholder.
func BuildingName(sheetName string, rows [][]string, now time.Time) string {
	tab := strings.TrimSpace(sheetName)
	if tab != "" && !defaultSheetRe.MatchString(tab) {
		return regionWord + " " + tab
	}

	if len(rows) > 0 {
		title := strings.TrimSpace(strings.Join(rows[0], " "))
		for _, re := range buildingNameRes {
			if m := re.FindStringSubmatch(title); m != nil {
				name := strings.TrimSpace(m[1])
				if name != "" {
					return regionWord + " " + name
				}
			}
		}
	}

	return "عمارة مستوردة " + now.Format("2006-01-02 15:04")
}

// Status keyword classes. Negation phrases ("غير مدفوع", "لم يتم") contain
// the positive keywords as substrings, so the not-paid class is always
// checked first.
var (
	notPaidKeywords = []string{"غير مدفوع", "لم يتم", "متبقي", "مستحق", "منتهي", "unpaid", "not paid"}
	paidKeywords    = []string{"مدفوع", "تم الدفع", "تم التحويل", "تم السداد", "سداد", "تم", "paid"}
)

// inferStatus maps a free-text notes cell to a payment status. Used by the
// multi-row layout, where a single notes column says whether the
// installment was settled. Default is PENDING.
func inferStatus(notes string) models.PaymentStatus {
	n := strings.ToLower(strings.TrimSpace(notes))
	if n == "" {
		return models.PaymentPending
	}
	if containsAny(n, notPaidKeywords) {
		return models.PaymentPending
	}
	if containsAny(n, paidKeywords) {
		return models.PaymentPaid
	}
	return models.PaymentPending
}

// inferStatusFromRow combines the statement layout's two notes columns and
// the transfer-date cell: any not-yet/due/expired wording wins as PENDING,
// a done-class keyword or a recorded payment date means PAID, otherwise the
// presence of a payment date decides.
func inferStatusFromRow(methodNotes, dueNotes, paymentDate string) models.PaymentStatus {
	combined := strings.ToLower(strings.TrimSpace(methodNotes + " " + dueNotes))
	if containsAny(combined, notPaidKeywords) {
		return models.PaymentPending
	}
	if containsAny(combined, paidKeywords) {
		return models.PaymentPaid
	}
	if paymentDate != "" {
		return models.PaymentPaid
	}
	return models.PaymentPending
}
