package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// dottedDateLayout is the de-facto date format of the source spreadsheets.
const dottedDateLayout = "02.01.2006"

var looseDateRe = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})$`)

// CleanField normalizes a free-form field for storage. Spreadsheet imports
// routinely deliver "null"/"undefined" literals and padded whitespace; absent
// values become "" so the store never holds NULL for these columns.
func CleanField(value string) string {
	trimmed := strings.TrimSpace(value)
	switch trimmed {
	case "null", "undefined", "NULL":
		return ""
	}
	return trimmed
}

// CleanDate normalizes a date-ish field to DD.MM.YYYY when it looks like a
// day/month/year triple with any of the common separators. Anything else is
// kept verbatim after CleanField; the parser side decides what is usable.
func CleanDate(value string) string {
	trimmed := CleanField(value)
	m := looseDateRe.FindStringSubmatch(trimmed)
	if m == nil {
		return trimmed
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	return fmt.Sprintf("%02d.%02d.%04d", day, month, year)
}

// parseDottedDate parses a DD.MM.YYYY value. The bool result is false for
// empty or malformed input.
func parseDottedDate(value string) (time.Time, bool) {
	cleaned := CleanDate(value)
	if cleaned == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dottedDateLayout, cleaned)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// countDueWithin counts the dates falling inside [today, today+windowDays],
// inclusive on both ends. Unparseable entries are skipped.
func countDueWithin(dates []string, now time.Time, windowDays int) int64 {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := today.AddDate(0, 0, windowDays)

	var due int64
	for _, raw := range dates {
		d, ok := parseDottedDate(raw)
		if !ok {
			continue
		}
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
		if !d.Before(today) && !d.After(horizon) {
			due++
		}
	}
	return due
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
