package store

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Category allotment dates originate from spreadsheet cells holding anywhere
// from zero to half a dozen dates with inconsistent delimiters. They are
// persisted as a JSON array of strings; these two functions are the codec
// between that column and the typed [][string] view the rest of the code and
// the UI work with.

var (
	dateTokenRe = regexp.MustCompile(`\d{1,2}[./-]\d{1,2}[./-]\d{2,4}`)
	delimiterRe = regexp.MustCompile(`[\s,;|&]+`)
)

// ParseCategoryAllotmentDates extracts the list of date strings from a stored
// or raw category-allotment value. It never fails: each step of the fallback
// chain degrades to a cruder extraction, and hopeless input yields an empty
// list.
//
// The chain: empty sentinels, JSON array, JSON scalar, date-token regex,
// delimiter split keeping digit-bearing tokens, whole-string fallback.
func ParseCategoryAllotmentDates(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "", "null", "undefined", "[]":
		return []string{}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		switch v := decoded.(type) {
		case []interface{}:
			dates := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					if s = strings.TrimSpace(s); s != "" {
						dates = append(dates, s)
					}
				}
			}
			return dedupe(dates)
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return []string{s}
			}
			return []string{}
		}
		// Decoded to a number, bool or null: treat like unparseable JSON.
	}

	if matches := dateTokenRe.FindAllString(trimmed, -1); len(matches) > 0 {
		return dedupe(matches)
	}

	var tokens []string
	for _, tok := range delimiterRe.Split(trimmed, -1) {
		if len(tok) > 5 && containsDigit(tok) {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) > 0 {
		return dedupe(tokens)
	}

	if len(trimmed) > 5 && containsDigit(trimmed) {
		return []string{trimmed}
	}

	return []string{}
}

// FormatCategoryAllotmentDates serializes a date list for storage. The result
// is always a JSON array of strings, de-duplicated and order-preserving;
// empty input serializes to "[]".
func FormatCategoryAllotmentDates(dates []string) string {
	cleaned := make([]string, 0, len(dates))
	for _, d := range dates {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	encoded, err := json.Marshal(dedupe(cleaned))
	if err != nil {
		// A []string cannot fail to marshal; keep the column well-formed anyway.
		return "[]"
	}
	return string(encoded)
}

// FormatRawCategoryAllotmentDates serializes an already-delimited raw value
// (spreadsheet cell text, or a previously stored JSON array) for storage,
// applying the same tokenization fallback as the parser.
func FormatRawCategoryAllotmentDates(raw string) string {
	return FormatCategoryAllotmentDates(ParseCategoryAllotmentDates(raw))
}

// dedupe removes duplicates, keeping first occurrences in order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
