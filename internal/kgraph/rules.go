package kgraph

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RuleSetVersion identifies the relation-equivalence rule set in use.
// Bump when synonym groups change so contradiction output stays
// reproducible across releases.
const RuleSetVersion = "v1"

// relationSynonyms groups differently-worded relations that express the
// same attribute. Matching is on folded relation text.
var relationSynonyms = [][]string{
	{"형량", "선고", "선고형량", "sentence", "sentencing"},
	{"날짜", "일자", "date", "published", "발표일"},
	{"금액", "액수", "amount", "price", "가격"},
	{"직책", "직위", "position", "title", "role"},
	{"장소", "위치", "location", "place"},
	{"나이", "연령", "age"},
}

var synonymGroup = buildSynonymIndex()

func buildSynonymIndex() map[string]int {
	idx := make(map[string]int)
	for group, words := range relationSynonyms {
		for _, w := range words {
			idx[Fold(w)] = group
		}
	}
	return idx
}

// Fold normalizes an entity or relation for comparison: lowercased with
// all whitespace collapsed out.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// RelationsEquivalent reports whether two relation labels name the same
// attribute: exact folded match first, then the versioned synonym groups.
func RelationsEquivalent(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == fb {
		return true
	}
	ga, okA := synonymGroup[fa]
	gb, okB := synonymGroup[fb]
	return okA && okB && ga == gb
}

var numberPattern = regexp.MustCompile(`-?\d+(?:,\d{3})*(?:\.\d+)?`)

// extractNumbers pulls every numeric value out of a string, in order.
func extractNumbers(s string) []float64 {
	matches := numberPattern.FindAllString(s, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		m = strings.ReplaceAll(m, ",", "")
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

var koreanDatePattern = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)

var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// parseDate attempts to read a calendar date from free text.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if m := koreanDatePattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ObjectsConflict compares two object values after normalization: numeric
// values numerically, dates as calendar dates, everything else
// case/whitespace-folded. It returns a conflict explanation when the
// values disagree.
func ObjectsConflict(a, b string) (bool, string) {
	if da, okA := parseDate(a); okA {
		if db, okB := parseDate(b); okB {
			if !da.Equal(db) {
				return true, fmt.Sprintf("dates differ: %s vs %s",
					da.Format("2006-01-02"), db.Format("2006-01-02"))
			}
			return false, ""
		}
	}

	na, nb := extractNumbers(a), extractNumbers(b)
	if len(na) > 0 && len(nb) > 0 {
		if !numbersEqual(na, nb) {
			return true, fmt.Sprintf("numeric values differ: %q vs %q", a, b)
		}
		return false, ""
	}

	if Fold(a) != Fold(b) {
		return true, fmt.Sprintf("values differ: %q vs %q", a, b)
	}
	return false, ""
}

func numbersEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
