package advisor

import (
	"strconv"
	"strings"
)

// NormalizeText trims, lowercases and collapses whitespace runs.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseMoney keeps only the digits of s ("₹60,000" -> 60000). It reports
// false when s has no digits or the value overflows.
func ParseMoney(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseRank parses the leading integer of s and reports whether it is a
// positive rank. Trailing text is ignored ("1234 (approx)" -> 1234).
func ParseRank(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// RankBand is a coarse rank range offered when the exact rank is unknown.
type RankBand struct {
	Label string
	// Estimate is the conservative (upper bound) rank used for matching.
	Estimate int
}

// RankBands lists the accepted band labels from best to worst.
var RankBands = []RankBand{
	{"under-1000", 1000},
	{"1000-5000", 5000},
	{"5000-10000", 10000},
	{"10000-25000", 25000},
	{"25000-50000", 50000},
	{"50000-100000", 100000},
	{"100000-plus", 200000},
}

// RankFromBand resolves a band label to its conservative rank estimate.
func RankFromBand(band string) (int, bool) {
	for _, b := range RankBands {
		if b.Label == band {
			return b.Estimate, true
		}
	}
	return 0, false
}

var gradeScores = map[string]int{
	"A++": 5,
	"A+":  4,
	"A":   3,
	"B++": 2,
	"B+":  1,
	"B":   0,
}

// GradeScore maps a NAAC grade to its ordinal, higher is better.
func GradeScore(grade string) (int, bool) {
	g, ok := gradeScores[strings.ToUpper(NormalizeText(grade))]
	return g, ok
}

// MinRequiredGradeScore resolves a requested minimum grade. An empty request
// means no minimum.
func MinRequiredGradeScore(grade string) (int, bool) {
	g := strings.ToUpper(strings.Join(strings.Fields(grade), ""))
	if g == "" {
		return 0, false
	}
	if g == "B++" {
		return 2, true
	}
	return GradeScore(g)
}
