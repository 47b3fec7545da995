package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹75,000", FormatRupees(75000))
	assert.Equal(t, "₹999", FormatRupees(999))
}

func TestScoreEligible(t *testing.T) {
	c := resolve(Preferences{ExamRank: "15000", Category: "BC-B", BudgetMax: "80000"})
	p := profile("A", "Alpha", withFees("75000"), withNAAC("A"))

	score, reasons := scoreCollege(c, p, 20000, true)
	assert.InDelta(t, 91.75, score, 1e-9)
	assert.Equal(t, []string{
		"Eligible: your rank 15000 ≤ cutoff 20000 (BC-B)",
		"Fees fit: ~₹75,000/yr",
		"NAAC: A",
	}, reasons)
}

func TestScoreWithoutCategory(t *testing.T) {
	c := resolve(Preferences{ExamRank: "15000"})
	score, reasons := scoreCollege(c, profile("A", "Alpha"), 0, false)
	assert.Equal(t, 20.0, score)
	assert.Equal(t, []string{"Category not provided: eligibility depends on category cutoffs"}, reasons)
}

func TestScoreBonuses(t *testing.T) {
	c := resolve(Preferences{
		BudgetMin:     "60000",
		HomeLocation:  "hyderabad",
		DreamColleges: "alpha institute",
	})
	p := profile("A", "Alpha Institute of Technology",
		withType("Government"),
		withAutonomy("Autonomous"),
		withFees("50,000"),
		withNAAC("Not accredited"),
		withNIRF("700"),
		withLocation("Gandipet", "Hyderabad"),
	)

	score, reasons := scoreCollege(c, p, 0, false)

	// 25 base, 6 known fee, -2 below min, 0 NIRF beyond 600, 10 home, 18 dream, 4 gov, 3 autonomous
	assert.Equal(t, 64.0, score)
	assert.Equal(t, []string{
		"Rank not provided: showing likely options (eligibility not guaranteed)",
		"Fees: ~₹50,000/yr",
		"NAAC: Not accredited",
		"NIRF: 700",
		"Near your location: Gandipet, Hyderabad",
		"Matches your dream college list",
		"Government college",
		"Autonomous institution",
	}, reasons)
}

func TestScoreFeeOverBudgetEarnsNothing(t *testing.T) {
	c := resolve(Preferences{BudgetMax: "80000"})
	score, reasons := scoreCollege(c, profile("A", "Alpha", withFees("84000")), 0, false)
	assert.Equal(t, 25.0, score)
	assert.Len(t, reasons, 1)
}

func TestNIRFBonus(t *testing.T) {
	c := resolve(Preferences{})
	for rank, want := range map[string]float64{"1": 12, "49": 12, "60": 11, "599": 1, "600": 0} {
		score, _ := scoreCollege(c, profile("A", "Alpha", withNIRF(rank)), 0, false)
		assert.Equal(t, 25+want, score, "NIRF %s", rank)
	}
}

func TestNearHomeIgnoresMissingPlaces(t *testing.T) {
	assert.False(t, nearHome("hyderabad", profile("A", "Alpha")))
	assert.True(t, nearHome("hyderabad", profile("A", "Alpha", withLocation("", "Hyderabad"))))
	assert.True(t, nearHome("gandipet hyderabad", profile("A", "Alpha", withLocation("Gandipet", ""))))
	assert.False(t, nearHome("warangal", profile("A", "Alpha", withLocation("Gandipet", "Hyderabad"))))
}
