package advisor

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

// Score terms. The eligibility term dominates; the rest are bonuses.
const (
	eligibleBase      = 55.0
	eligibleCloseness = 25.0
	noRankScore       = 25.0
	noCategoryScore   = 20.0
	budgetFitBonus    = 12.0
	feeKnownBonus     = 6.0
	belowMinPenalty   = 2.0
	gradeWeight       = 2.0
	nirfMaxBonus      = 12
	nirfStep          = 50
	locationBonus     = 10.0
	dreamBonus        = 18.0
	governmentBonus   = 4.0
	autonomousBonus   = 3.0
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees formats an amount with Indian digit grouping ("₹1,50,000").
func FormatRupees(n int) string {
	return inr.Sprintf("₹%d", n)
}

// scoreCollege computes the relevance score of a college and the reasons
// behind it, in a fixed order.
func scoreCollege(c criteria, p dataset.CollegeProfile, cutoff int, hasCutoff bool) (float64, []string) {
	var (
		score   float64
		reasons []string
	)

	switch {
	case c.rankGated() && hasCutoff:
		gap := float64(cutoff - c.rank)
		closeness := math.Max(0, 1-gap/math.Max(float64(cutoff), 1))
		score += eligibleBase + eligibleCloseness*closeness
		reasons = append(reasons, fmt.Sprintf("Eligible: your rank %d ≤ cutoff %d (%s)", c.rank, cutoff, c.category))
	case c.rank == 0:
		score += noRankScore
		reasons = append(reasons, "Rank not provided: showing likely options (eligibility not guaranteed)")
	case c.category == "":
		score += noCategoryScore
		reasons = append(reasons, "Category not provided: eligibility depends on category cutoffs")
	}

	if fee, ok := ParseMoney(string(p.Fees)); ok {
		switch {
		case c.hasBudgetMax && fee <= c.budgetMax:
			score += budgetFitBonus
			reasons = append(reasons, fmt.Sprintf("Fees fit: ~%s/yr", FormatRupees(fee)))
		case !c.hasBudgetMax:
			score += feeKnownBonus
			reasons = append(reasons, fmt.Sprintf("Fees: ~%s/yr", FormatRupees(fee)))
		}
		if c.hasBudgetMin && fee < c.budgetMin {
			score -= belowMinPenalty
		}
	}

	naac := strings.TrimSpace(string(p.NAACGrade))
	if g, ok := GradeScore(naac); ok {
		score += float64(g) * gradeWeight
	}
	if naac != "" {
		reasons = append(reasons, "NAAC: "+naac)
	}

	if nirf, ok := ParseRank(string(p.NIRFRank)); ok {
		score += float64(max(0, nirfMaxBonus-min(nirfMaxBonus, nirf/nirfStep)))
		reasons = append(reasons, fmt.Sprintf("NIRF: %d", nirf))
	}

	if c.home != "" && nearHome(c.home, p) {
		score += locationBonus
		reasons = append(reasons, fmt.Sprintf("Near your location: %s, %s", p.Location, p.District))
	}

	if len(c.dreams) > 0 && isDreamCollege(c.dreams, NormalizeText(string(p.Name))) {
		score += dreamBonus
		reasons = append(reasons, "Matches your dream college list")
	}

	cls := classify(p)
	if cls.government {
		score += governmentBonus
		reasons = append(reasons, "Government college")
	}
	if cls.autonomous {
		score += autonomousBonus
		reasons = append(reasons, "Autonomous institution")
	}

	return score, reasons
}

func nearHome(home string, p dataset.CollegeProfile) bool {
	for _, place := range []string{NormalizeText(string(p.Location)), NormalizeText(string(p.District))} {
		if place == "" {
			continue
		}
		if strings.Contains(place, home) || strings.Contains(home, place) {
			return true
		}
	}
	return false
}

func isDreamCollege(dreams []string, name string) bool {
	if name == "" {
		return false
	}
	for _, d := range dreams {
		if strings.Contains(name, d) || strings.Contains(d, name) {
			return true
		}
	}
	return false
}
