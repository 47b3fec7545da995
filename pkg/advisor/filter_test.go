package advisor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

func TestResolve(t *testing.T) {
	c := resolve(Preferences{
		ExamRank:      "5000",
		ExamRankBand:  "100000-plus",
		Category:      "obc",
		BudgetMax:     "₹80,000",
		NAACGrade:     "A",
		HomeLocation:  "  Hyderabad ",
		DreamColleges: "Alpha Institute, beta college;\nGamma",
		CollegeTypes:  []string{" Government ", ""},
	})

	assert.Equal(t, 5000, c.rank)
	assert.Equal(t, RankSourceExact, c.rankSource)
	assert.Equal(t, CategoryBCB, c.category)
	assert.True(t, c.hasBudgetMax)
	assert.Equal(t, 80000, c.budgetMax)
	assert.False(t, c.hasBudgetMin)
	assert.True(t, c.hasMinGrade)
	assert.Equal(t, 3, c.minGrade)
	assert.Equal(t, "hyderabad", c.home)
	assert.Equal(t, []string{"alpha institute", "beta college", "gamma"}, c.dreams)
	assert.Equal(t, []string{"government"}, c.types)
	assert.True(t, c.rankGated())
}

func TestResolveBandOnlyWithoutExactRank(t *testing.T) {
	c := resolve(Preferences{ExamRank: "not sure", ExamRankBand: "100000-plus"})
	assert.Equal(t, 200000, c.rank)
	assert.Equal(t, RankSourceBand, c.rankSource)
	assert.False(t, c.rankGated(), "no category means no rank gate")

	c = resolve(Preferences{})
	assert.Zero(t, c.rank)
	assert.Empty(t, c.rankSource)
}

func TestMatchesCollegeType(t *testing.T) {
	gov := collegeClass{government: true}
	privAuto := collegeClass{private: true, autonomous: true}
	privAffiliated := collegeClass{private: true}

	assert.True(t, matchesCollegeType(privAffiliated, nil))
	assert.True(t, matchesCollegeType(privAffiliated, []string{TypeGovernment, TypeAny}))

	assert.True(t, matchesCollegeType(gov, []string{TypeGovernment}))
	assert.False(t, matchesCollegeType(privAuto, []string{TypeGovernment}))

	assert.True(t, matchesCollegeType(privAuto, []string{TypePrivateAutonomous}))
	assert.False(t, matchesCollegeType(privAffiliated, []string{TypePrivateAutonomous}))

	assert.True(t, matchesCollegeType(privAffiliated, []string{TypePrivateNonAutonomous}))
	assert.True(t, matchesCollegeType(privAffiliated, []string{TypePrivateAffiliated}))
	assert.False(t, matchesCollegeType(privAuto, []string{TypePrivateAffiliated}))

	assert.True(t, matchesCollegeType(gov, []string{"deemed"}), "unknown labels do not constrain")
}

func TestClassify(t *testing.T) {
	cls := classify(profile("X", "Some College (Autonomous)", withType("PRIVATE")))
	assert.True(t, cls.private)
	assert.True(t, cls.autonomous)
	assert.False(t, cls.government)

	cls = classify(profile("Y", "State College", withType("Government"), withAutonomy("Autonomous")))
	assert.True(t, cls.government)
	assert.True(t, cls.autonomous)

	cls = classify(profile("Z", "Affiliated College"))
	assert.False(t, cls.autonomous)
}

func TestBudgetCeiling(t *testing.T) {
	assert.Equal(t, 84000, budgetCeiling(80000))
	assert.Equal(t, 105, budgetCeiling(100))
	assert.Equal(t, 0, budgetCeiling(0))
	assert.Equal(t, math.MaxInt, budgetCeiling(math.MaxInt))
}

func TestFilterCollegeBudgetBoundary(t *testing.T) {
	c := resolve(Preferences{BudgetMax: "80000"})
	rows := []dataset.ClosingRankRow{row("A", cse, "OC Boys", "1000")}

	_, _, ok := filterCollege(c, profile("A", "At the limit", withFees("84000")), rows)
	assert.True(t, ok, "fee at exactly 105% of budget is kept")

	_, stage, ok := filterCollege(c, profile("A", "Just over", withFees("84008")), rows)
	assert.False(t, ok, "fee at 105.01% of budget is excluded")
	assert.Equal(t, StageBudget, stage)

	_, _, ok = filterCollege(c, profile("A", "Unknown fee"), rows)
	assert.True(t, ok, "unknown fees never exclude")
}

func TestFilterCollegeStages(t *testing.T) {
	rows := []dataset.ClosingRankRow{
		row("A", cse, "OC Boys", "9000", "SC Boys", "40000"),
		row("A", "Civil Engineering", "OC Boys", "30000"),
	}

	tests := []struct {
		name  string
		prefs Preferences
		p     dataset.CollegeProfile
		stage Stage
	}{
		{"type", Preferences{CollegeTypes: []string{TypeGovernment}}, profile("A", "A"), StageType},
		{"naac below minimum", Preferences{NAACGrade: "A"}, profile("A", "A", withNAAC("B+")), StageNAAC},
		{"naac unknown", Preferences{NAACGrade: "A"}, profile("A", "A"), StageNAAC},
		{"branch", Preferences{RequiredBranch: "ece"}, profile("A", "A"), StageBranch},
		{"rank", Preferences{ExamRank: "45000", Category: "SC"}, profile("A", "A"), StageRank},
		{"rank without category cutoff", Preferences{ExamRank: "100", Category: "ST"}, profile("A", "A"), StageRank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stage, ok := filterCollege(resolve(tt.prefs), tt.p, rows)
			assert.False(t, ok)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestChooseRowClosestEligibleCutoff(t *testing.T) {
	c := resolve(Preferences{ExamRank: "15000", Category: "OC"})
	rows := []dataset.ClosingRankRow{
		row("A", "Civil Engineering", "OC Boys", "40000"),
		row("A", cse, "OC Boys", "16000"),
		row("A", "Mechanical Engineering", "OC Girls", "16000"),
	}

	got, _, ok := filterCollege(c, profile("A", "A"), rows)
	require.True(t, ok)
	assert.Equal(t, cse, got.BranchName, "smallest gap wins, ties keep the first row")
}

func TestChooseRowLowestOCWithoutRank(t *testing.T) {
	c := resolve(Preferences{})
	rows := []dataset.ClosingRankRow{
		row("A", "Civil Engineering", "OC Boys", "40000"),
		row("A", "Mechanical Engineering", "SC Boys", "500"),
		row("A", cse, "OC Boys", "3000"),
	}

	got, ok := chooseRow(c, rows)
	require.True(t, ok)
	assert.Equal(t, cse, got.BranchName)
}

func TestChooseRowWithoutOCCutoffFallsBackToFirstRow(t *testing.T) {
	c := resolve(Preferences{Category: "SC"})
	rows := []dataset.ClosingRankRow{
		row("A", "Civil Engineering", "SC Boys", "40000"),
		row("A", cse, "SC Boys", "3000"),
	}

	got, ok := chooseRow(c, rows)
	require.True(t, ok)
	assert.Equal(t, "Civil Engineering", got.BranchName)

	_, ok = chooseRow(c, nil)
	assert.False(t, ok)
}
