package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "computer science", NormalizeText("  Computer \t  SCIENCE\n"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"₹60,000", 60000, true},
		{"?60,000", 60000, true},
		{"60000", 60000, true},
		{"Rs. 1,20,000 /yr", 120000, true},
		{"0", 0, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMoney(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"15000", 15000, true},
		{"  742 ", 742, true},
		{"1234 (approx)", 1234, true},
		{"+12", 12, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"NA", 0, false},
		{"", 0, false},
		{"12.5", 12, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRank(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankFromBand(t *testing.T) {
	r, ok := RankFromBand("100000-plus")
	assert.True(t, ok)
	assert.Equal(t, 200000, r)

	r, ok = RankFromBand("under-1000")
	assert.True(t, ok)
	assert.Equal(t, 1000, r)

	_, ok = RankFromBand("somewhere")
	assert.False(t, ok)
}

func TestGradeScore(t *testing.T) {
	g, ok := GradeScore(" a++ ")
	assert.True(t, ok)
	assert.Equal(t, 5, g)

	g, ok = GradeScore("B")
	assert.True(t, ok)
	assert.Equal(t, 0, g)

	_, ok = GradeScore("C")
	assert.False(t, ok)
	_, ok = GradeScore("")
	assert.False(t, ok)
}

func TestMinRequiredGradeScore(t *testing.T) {
	_, ok := MinRequiredGradeScore("  ")
	assert.False(t, ok)

	g, ok := MinRequiredGradeScore("b + +")
	assert.True(t, ok)
	assert.Equal(t, 2, g)

	g, ok = MinRequiredGradeScore("A+")
	assert.True(t, ok)
	assert.Equal(t, 4, g)
}
