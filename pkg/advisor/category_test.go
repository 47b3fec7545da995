package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]Category{
		"obc":      CategoryBCB,
		" General": CategoryOC,
		"oc":       CategoryOC,
		"ews":      CategoryEWS,
		"bc-d":     CategoryBCD,
		"":         "",
		"martian":  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCategory(in), "input %q", in)
	}
}

func TestClosingRankFor(t *testing.T) {
	row := dataset.ClosingRankRow{Cutoffs: map[string]string{
		"OC Boys":    "9000",
		"OC Girls":   "11000",
		"BC-B Boys":  "NA",
		"BC-B Girls": "20500",
		"EWS GEN OU": "14000",
		"EWS GIRLS":  "",
		"SC Boys":    "0",
	}}

	n, ok := ClosingRankFor(row, CategoryOC)
	assert.True(t, ok)
	assert.Equal(t, 11000, n, "more permissive cutoff wins")

	n, ok = ClosingRankFor(row, CategoryBCB)
	assert.True(t, ok)
	assert.Equal(t, 20500, n)

	n, ok = ClosingRankFor(row, CategoryEWS)
	assert.True(t, ok)
	assert.Equal(t, 14000, n)

	_, ok = ClosingRankFor(row, CategorySC)
	assert.False(t, ok)

	_, ok = ClosingRankFor(row, CategoryST)
	assert.False(t, ok)

	_, ok = ClosingRankFor(row, "")
	assert.False(t, ok)
}
