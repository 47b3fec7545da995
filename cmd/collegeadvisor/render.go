package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/elonfeng/collegeadvisor/pkg/advisor"
)

// maxReasons is how many reasons are printed under each suggestion.
const maxReasons = 4

func renderResult(out io.Writer, r advisor.Result) error {
	fmt.Fprintln(out, summaryLine(r.Meta))
	fmt.Fprintln(out)

	if len(r.Top) == 0 {
		renderEmpty(out, r.Meta)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSCORE\tCODE\tCOLLEGE\tBRANCH\tFEES\tCUTOFF\tLOCATION")
	for i, s := range r.Top {
		fmt.Fprintf(w, "%d\t%.1f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, s.Score, s.CollegeCode, s.CollegeName, s.BranchName,
			rupeesOrDash(s.Fees), intOrDash(s.Cutoff), place(s.Location, s.District))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for i, s := range r.Top {
		fmt.Fprintf(out, "%d. %s\n", i+1, s.CollegeName)
		reasons := s.Reasons
		if len(reasons) > maxReasons {
			reasons = reasons[:maxReasons]
		}
		for _, reason := range reasons {
			fmt.Fprintf(out, "   - %s\n", reason)
		}
		if s.Website != "" {
			fmt.Fprintf(out, "   %s\n", s.Website)
		}
	}
	return nil
}

// summaryLine echoes what the run was based on.
func summaryLine(m advisor.Meta) string {
	pills := []string{fmt.Sprintf("%d colleges considered", m.ConsideredColleges)}
	if m.StudentRank != nil {
		rank := fmt.Sprintf("rank %d", *m.StudentRank)
		if m.RankSource == advisor.RankSourceBand {
			rank += " (band estimate)"
		}
		pills = append(pills, rank)
	} else {
		pills = append(pills, "rank not provided")
	}
	if m.Category != "" {
		pills = append(pills, "category "+string(m.Category))
	} else {
		pills = append(pills, "category not provided")
	}
	if m.RequiredBranch != "" {
		pills = append(pills, "branch "+m.RequiredBranch)
	}
	switch {
	case m.BudgetMin != nil && m.BudgetMax != nil:
		pills = append(pills, fmt.Sprintf("budget %s to %s", advisor.FormatRupees(*m.BudgetMin), advisor.FormatRupees(*m.BudgetMax)))
	case m.BudgetMax != nil:
		pills = append(pills, "budget up to "+advisor.FormatRupees(*m.BudgetMax))
	case m.BudgetMin != nil:
		pills = append(pills, "budget from "+advisor.FormatRupees(*m.BudgetMin))
	}
	return strings.Join(pills, " | ")
}

func renderEmpty(out io.Writer, m advisor.Meta) {
	fmt.Fprintln(out, "No colleges matched your preferences.")
	fmt.Fprintln(out, "Try:")
	for _, tip := range emptyTips(m) {
		fmt.Fprintf(out, "  - %s\n", tip)
	}
}

// emptyTips suggests which constraints to relax, most restrictive first.
func emptyTips(m advisor.Meta) []string {
	var tips []string
	if m.RequiredBranch != "" || m.Excluded[advisor.StageBranch] > 0 {
		tips = append(tips, "Remove branch filter")
	}
	if m.BudgetMax != nil || m.Excluded[advisor.StageBudget] > 0 {
		tips = append(tips, "Increase budget max")
	}
	if m.Excluded[advisor.StageNAAC] > 0 {
		tips = append(tips, "Remove NAAC minimum")
	}
	if m.Excluded[advisor.StageType] > 0 {
		tips = append(tips, "Allow more college types")
	}
	tips = append(tips, "Check your rank/category inputs")
	return tips
}

func rupeesOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return advisor.FormatRupees(*n)
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func place(location, district string) string {
	location, district = strings.TrimSpace(location), strings.TrimSpace(district)
	switch {
	case location == "":
		return district
	case district == "" || strings.EqualFold(location, district):
		return location
	}
	return location + ", " + district
}
