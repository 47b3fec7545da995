package advisor

import (
	"strings"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

// Category is a reservation category code.
type Category string

const (
	CategoryOC  Category = "OC"
	CategorySC  Category = "SC"
	CategoryST  Category = "ST"
	CategoryEWS Category = "EWS"
	CategoryBCA Category = "BC-A"
	CategoryBCB Category = "BC-B"
	CategoryBCC Category = "BC-C"
	CategoryBCD Category = "BC-D"
	CategoryBCE Category = "BC-E"
)

// cutoffKeys are the two gender-specific closing-rank fields of a category.
type cutoffKeys [2]string

var cutoffFields = map[Category]cutoffKeys{
	CategoryOC:  {"OC Boys", "OC Girls"},
	CategorySC:  {"SC Boys", "SC Girls"},
	CategoryST:  {"ST Boys", "ST Girls"},
	CategoryEWS: {"EWS GEN OU", "EWS GIRLS"},
	CategoryBCA: {"BC-A Boys", "BC-A Girls"},
	CategoryBCB: {"BC-B Boys", "BC-B Girls"},
	CategoryBCC: {"BC-C Boys", "BC-C Girls"},
	CategoryBCD: {"BC-D Boys", "BC-D Girls"},
	CategoryBCE: {"BC-E Boys", "BC-E Girls"},
}

var categoryAliases = map[string]Category{
	"OBC":     CategoryBCB,
	"GENERAL": CategoryOC,
}

// NormalizeCategory canonicalizes a category. Unknown or empty input yields
// "", which means no category constraint.
func NormalizeCategory(s string) Category {
	c := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := categoryAliases[c]; ok {
		return alias
	}
	if _, ok := cutoffFields[Category(c)]; ok {
		return Category(c)
	}
	return ""
}

// ClosingRankFor returns the more permissive of the two gender cutoffs of c
// in row, or false when neither field holds a positive rank.
func ClosingRankFor(row dataset.ClosingRankRow, c Category) (int, bool) {
	keys, ok := cutoffFields[c]
	if !ok {
		return 0, false
	}
	best := 0
	for _, k := range keys {
		if n, ok := ParseRank(row.Field(k)); ok && n > best {
			best = n
		}
	}
	return best, best > 0
}
