package advisor

import (
	"math"
	"strings"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

// College type labels accepted in Preferences.CollegeTypes.
const (
	TypeAny                  = "any"
	TypeGovernment           = "government"
	TypePrivateAutonomous    = "private-autonomous"
	TypePrivateNonAutonomous = "private-non-autonomous"
	// TypePrivateAffiliated is the wizard's name for private colleges
	// affiliated to JNTUH/OU, i.e. not autonomous.
	TypePrivateAffiliated = "private-jntuh-ou"
)

// Stage names the filter that excluded a college.
type Stage string

const (
	StageType   Stage = "type"
	StageBudget Stage = "budget"
	StageNAAC   Stage = "naac"
	StageBranch Stage = "branch"
	StageRank   Stage = "rank"
	StageRow    Stage = "row"
)

// budgetTolerancePct is how far above budgetMax a fee may go, in percent.
const budgetTolerancePct = 5

// criteria are the resolved, comparable forms of Preferences.
type criteria struct {
	rank       int // 0 when unknown
	rankSource string
	category   Category
	branch     string
	types      []string

	budgetMin, budgetMax       int
	hasBudgetMin, hasBudgetMax bool

	minGrade    int
	hasMinGrade bool

	home   string
	dreams []string
}

// Rank sources reported in Meta.
const (
	RankSourceExact = "exact"
	RankSourceBand  = "band"
)

func resolve(p Preferences) criteria {
	c := criteria{
		category: NormalizeCategory(p.Category),
		branch:   strings.TrimSpace(p.RequiredBranch),
		home:     NormalizeText(p.HomeLocation),
	}

	if r, ok := ParseRank(p.ExamRank); ok {
		c.rank, c.rankSource = r, RankSourceExact
	} else if r, ok := RankFromBand(p.ExamRankBand); ok {
		c.rank, c.rankSource = r, RankSourceBand
	}

	for _, t := range p.CollegeTypes {
		if t = NormalizeText(t); t != "" {
			c.types = append(c.types, t)
		}
	}

	c.budgetMin, c.hasBudgetMin = ParseMoney(p.BudgetMin)
	c.budgetMax, c.hasBudgetMax = ParseMoney(p.BudgetMax)
	c.minGrade, c.hasMinGrade = MinRequiredGradeScore(p.NAACGrade)

	for _, d := range strings.FieldsFunc(p.DreamColleges, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	}) {
		if d = NormalizeText(d); d != "" {
			c.dreams = append(c.dreams, d)
		}
	}
	return c
}

// rankGated reports whether rank eligibility is a hard filter for this run.
func (c criteria) rankGated() bool {
	return c.rank > 0 && c.category != ""
}

// collegeClass is the type classification of a college profile.
type collegeClass struct {
	government bool
	private    bool
	autonomous bool
}

func classify(p dataset.CollegeProfile) collegeClass {
	typ := NormalizeText(string(p.Type))
	return collegeClass{
		government: strings.Contains(typ, "government"),
		private:    strings.Contains(typ, "private"),
		autonomous: strings.Contains(NormalizeText(string(p.AutonomousStatus)), "autonomous") ||
			strings.Contains(NormalizeText(string(p.Name)), "autonomous"),
	}
}

func matchesCollegeType(cls collegeClass, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == TypeAny {
			return true
		}
	}
	for _, t := range types {
		switch t {
		case TypeGovernment:
			if cls.government {
				return true
			}
		case TypePrivateAutonomous:
			if cls.private && cls.autonomous {
				return true
			}
		case TypePrivateNonAutonomous, TypePrivateAffiliated:
			if cls.private && !cls.autonomous {
				return true
			}
		default:
			// Unknown labels do not constrain.
			return true
		}
	}
	return false
}

// budgetCeiling is budgetMax plus the tolerance band, rounded half up.
func budgetCeiling(budgetMax int) int {
	if budgetMax > (math.MaxInt-50)/(100+budgetTolerancePct) {
		return math.MaxInt
	}
	return (budgetMax*(100+budgetTolerancePct) + 50) / 100
}

// filterCollege applies the hard filters in order and picks the branch row
// that represents the college. It returns the stage that excluded the
// college when ok is false.
func filterCollege(c criteria, p dataset.CollegeProfile, rows []dataset.ClosingRankRow) (dataset.ClosingRankRow, Stage, bool) {
	var none dataset.ClosingRankRow

	if !matchesCollegeType(classify(p), c.types) {
		return none, StageType, false
	}

	if fee, ok := ParseMoney(string(p.Fees)); ok && c.hasBudgetMax && fee > budgetCeiling(c.budgetMax) {
		return none, StageBudget, false
	}

	if c.hasMinGrade {
		g, ok := GradeScore(string(p.NAACGrade))
		if !ok || g < c.minGrade {
			return none, StageNAAC, false
		}
	}

	var matching []dataset.ClosingRankRow
	for _, r := range rows {
		if BranchMatches(r.BranchName, c.branch) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return none, StageBranch, false
	}

	if c.rankGated() {
		var eligible []dataset.ClosingRankRow
		for _, r := range matching {
			if cutoff, ok := ClosingRankFor(r, c.category); ok && c.rank <= cutoff {
				eligible = append(eligible, r)
			}
		}
		if len(eligible) == 0 {
			return none, StageRank, false
		}
		matching = eligible
	}

	row, ok := chooseRow(c, matching)
	if !ok {
		return none, StageRow, false
	}
	return row, "", true
}

// chooseRow picks the closest eligible cutoff when rank and category are
// known, otherwise the most competitive branch by OC cutoff. Ties keep the
// first row.
func chooseRow(c criteria, rows []dataset.ClosingRankRow) (dataset.ClosingRankRow, bool) {
	if len(rows) == 0 {
		return dataset.ClosingRankRow{}, false
	}

	best, bestKey := -1, math.MaxInt
	for i, r := range rows {
		var key int
		if c.rankGated() {
			cutoff, ok := ClosingRankFor(r, c.category)
			if !ok {
				continue
			}
			key = cutoff - c.rank
		} else {
			oc, ok := ClosingRankFor(r, CategoryOC)
			if !ok {
				continue
			}
			key = oc
		}
		if key < bestKey {
			best, bestKey = i, key
		}
	}

	if best < 0 {
		if c.rankGated() {
			return dataset.ClosingRankRow{}, false
		}
		// No OC cutoff on any row: nothing to rank branches by.
		return rows[0], true
	}
	return rows[best], true
}
