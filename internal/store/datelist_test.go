package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategoryAllotmentDates_EmptySentinels(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "undefined", "[]", "\t\n"} {
		assert.Empty(t, ParseCategoryAllotmentDates(raw), "input %q", raw)
	}
}

func TestParseCategoryAllotmentDates_JSONArray(t *testing.T) {
	dates := ParseCategoryAllotmentDates(`["12.05.2021"," 01.06.2021 ","","12.05.2021"]`)
	assert.Equal(t, []string{"12.05.2021", "01.06.2021"}, dates)
}

func TestParseCategoryAllotmentDates_JSONScalar(t *testing.T) {
	assert.Equal(t, []string{"12.05.2021"}, ParseCategoryAllotmentDates(`"12.05.2021"`))
	assert.Empty(t, ParseCategoryAllotmentDates(`"   "`))
}

func TestParseCategoryAllotmentDates_RegexExtraction(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"12.05.2021, 01.06.2021", []string{"12.05.2021", "01.06.2021"}},
		{"cat allotted on 3/6/21 and again 04-07-2022", []string{"3/6/21", "04-07-2022"}},
		{"12.05.2021 12.05.2021", []string{"12.05.2021"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategoryAllotmentDates(tt.raw), "input %q", tt.raw)
	}
}

func TestParseCategoryAllotmentDates_DelimiterSplit(t *testing.T) {
	// No date-shaped token, so the delimiter split keeps long digit-bearing
	// chunks.
	dates := ParseCategoryAllotmentDates("May2021; June2022 | n/a")
	assert.Equal(t, []string{"May2021", "June2022"}, dates)
}

func TestParseCategoryAllotmentDates_WholeStringFallback(t *testing.T) {
	assert.Equal(t, []string{"cat-e-2021"}, ParseCategoryAllotmentDates("cat-e-2021"))
}

func TestParseCategoryAllotmentDates_Hopeless(t *testing.T) {
	for _, raw := range []string{"n/a", "none", "123", "true"} {
		assert.Empty(t, ParseCategoryAllotmentDates(raw), "input %q", raw)
	}
}

func TestFormatCategoryAllotmentDates(t *testing.T) {
	assert.Equal(t, "[]", FormatCategoryAllotmentDates(nil))
	assert.Equal(t, "[]", FormatCategoryAllotmentDates([]string{"", "  "}))
	assert.Equal(t,
		`["12.05.2021","01.06.2021"]`,
		FormatCategoryAllotmentDates([]string{"12.05.2021", " 01.06.2021 ", "12.05.2021"}))
}

func TestFormatRawCategoryAllotmentDates(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12.05.2021, 01.06.2021", `["12.05.2021","01.06.2021"]`},
		{`["12.05.2021"]`, `["12.05.2021"]`},
		{"", "[]"},
		{"n/a", "[]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRawCategoryAllotmentDates(tt.raw), "input %q", tt.raw)
	}
}

func TestCategoryAllotmentDates_RoundTrip(t *testing.T) {
	lists := [][]string{
		{"01.01.2020"},
		{"12.05.2021", "01.06.2021", "30.11.2023"},
		{"12.05.2021", "12.05.2021", "01.06.2021"},
	}
	for _, l := range lists {
		got := ParseCategoryAllotmentDates(FormatCategoryAllotmentDates(l))
		assert.Equal(t, dedupe(l), got, "list %v", l)
	}
}
