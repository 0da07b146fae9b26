package timeutil

import (
	"time"
)

// AST is the Arabia Standard Time location (UTC+3), the timezone the
// source spreadsheets and the back office operate in.
var AST *time.Location

func init() {
	var err error
	AST, err = time.LoadLocation("Asia/Riyadh")
	if err != nil {
		// Fallback: create fixed zone if Asia/Riyadh not available
		AST = time.FixedZone("AST", 3*60*60) // UTC+3
	}
}

// Now returns the current time in AST.
func Now() time.Time {
	return time.Now().In(AST)
}

// Today returns the current date in AST truncated to midnight.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay returns the start of day (00:00:00) in AST for the given time.
func StartOfDay(t time.Time) time.Time {
	a := t.In(AST)
	return time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, AST)
}

// ParseInAST parses a time string in the given layout, in AST.
func ParseInAST(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, AST)
}

// ParseISODate parses a persisted yyyy-MM-dd string into a midnight AST time.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, AST)
}

// FormatISODate formats a time as the persisted yyyy-MM-dd form.
func FormatISODate(t time.Time) string {
	return t.In(AST).Format(DateLayout)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
