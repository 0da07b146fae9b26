package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rental-backend/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

// Cell coercion over raw spreadsheet values. The sheets are human-authored
// exports: amounts carry currency tokens and Arabic thousands separators,
// dates show up in half a dozen shapes, and date cells sometimes arrive as
// Excel serial numbers. Coercion never fails; it returns a safe default
// (0, "", or empty date) and lets the caller decide whether the row is
// skippable.

// currencyTokens are stripped before numeric parsing, longest first so
// substrings do not leave residue.
var currencyTokens = []string{"ر.س", "ريال", "SAR", "sar", "Sar"}

// datePatterns is ordered: 4-digit-year shapes first, 2-digit-year shapes
// last. Trying 2-digit-year patterns first would misparse 4-digit years.
var datePatterns = []string{
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
}

// StringValue returns the cell text verbatim, except that numeric text with
// no fractional part is normalized to its integer form ("105.0" -> "105").
func StringValue(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return s
	}
	return s
}

// NumericValue parses the cell as a number, tolerating thousands separators
// (`,` and Arabic `٬`), the Arabic decimal separator `٫`, and currency
// tokens. Unparseable cells coerce to 0.
func NumericValue(raw string) float64 {
	v, err := parseNumber(raw)
	if err != nil {
		return 0
	}
	return v
}

// parseNumber is the strict variant used for amount columns, where a
// non-blank garbage cell must surface as a row error instead of silently
// becoming 0.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.ReplaceAll(s, "٬", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "٫", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

// DateValue coerces the cell to an ISO yyyy-MM-dd string. String cells are
// tried against the ordered pattern list; purely numeric cells are treated
// as Excel date serials. Returns "" when nothing matches.
func DateValue(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range datePatterns {
		if t, err := timeutil.ParseInAST(layout, s); err == nil {
			return timeutil.FormatISODate(t)
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(timeutil.DateLayout)
		}
	}
	return ""
}

// slashDateRe matches a yyyy/M/d shape inside free text, used to pull due
// dates out of notes columns.
var slashDateRe = regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`)

// DateFromText scans free text for a yyyy/M/d-shaped date and returns it in
// ISO form, or "" when none is found.
func DateFromText(text string) string {
	m := slashDateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return DateValue(m[1] + "/" + m[2] + "/" + m[3])
}

// cell returns row[idx] or "" when the row is too short; excelize trims
// trailing empty cells from GetRows output.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
