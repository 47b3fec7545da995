package advisor

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

// DefaultTopN is used when the caller asks for a non-positive N.
const DefaultTopN = 10

// Suggestion is one college in the shortlist, ready to render.
type Suggestion struct {
	CollegeCode string   `json:"college_code"`
	CollegeName string   `json:"college_name"`
	BranchName  string   `json:"branch_name"`
	District    string   `json:"district"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Fees        *int     `json:"fees"`
	NAACGrade   string   `json:"naac_grade"`
	NIRFRank    *int     `json:"nirf_rank"`
	Website     string   `json:"website"`
	Category    Category `json:"category"`
	Cutoff      *int     `json:"cutoff"`
	Score       float64  `json:"score"`
	Reasons     []string `json:"reasons"`
}

// Meta echoes what a run was based on, for display.
type Meta struct {
	ConsideredColleges int           `json:"considered_colleges"`
	StudentRank        *int          `json:"student_rank"`
	RankSource         string        `json:"rank_source,omitempty"`
	Category           Category      `json:"category"`
	RequiredBranch     string        `json:"required_branch"`
	BudgetMin          *int          `json:"budget_min"`
	BudgetMax          *int          `json:"budget_max"`
	Excluded           map[Stage]int `json:"excluded,omitempty"`
}

// Result is the outcome of one matching run. An empty Top is a valid result.
type Result struct {
	Top  []Suggestion `json:"top"`
	Meta Meta         `json:"meta"`
}

// Engine matches student preferences against a joined dataset.
type Engine struct {
	log  *zap.Logger
	topN int
}

// NewEngine creates a new matching engine. topN <= 0 means DefaultTopN.
func NewEngine(log *zap.Logger, topN int) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Engine{log: log, topN: topN}
}

// Suggest runs the engine with the engine's default N.
func (e *Engine) Suggest(prefs Preferences, ds *dataset.Dataset) Result {
	return e.SuggestN(prefs, ds, e.topN)
}

// SuggestN filters, scores and ranks every joined college and returns the
// best n, one entry per college.
func (e *Engine) SuggestN(prefs Preferences, ds *dataset.Dataset, n int) Result {
	if n <= 0 {
		n = e.topN
	}
	c := resolve(prefs)

	meta := Meta{
		Category:       c.category,
		RequiredBranch: c.branch,
		RankSource:     c.rankSource,
		Excluded:       make(map[Stage]int),
	}
	if c.rank > 0 {
		meta.StudentRank = intPtr(c.rank)
	}
	if c.hasBudgetMin {
		meta.BudgetMin = intPtr(c.budgetMin)
	}
	if c.hasBudgetMax {
		meta.BudgetMax = intPtr(c.budgetMax)
	}

	var results []Suggestion
	if ds != nil {
		codes := ds.CollegeCodes()
		meta.ConsideredColleges = len(codes)

		for _, code := range codes {
			profile, ok := ds.Profile(code)
			rows := ds.Rows(code)
			if !ok || len(rows) == 0 {
				continue
			}

			row, stage, ok := filterCollege(c, profile, rows)
			if !ok {
				meta.Excluded[stage]++
				e.log.Debug("college excluded", zap.String("college", code), zap.String("stage", string(stage)))
				continue
			}

			results = append(results, buildSuggestion(c, code, profile, row))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	top := dedupe(results, n)

	e.log.Info("matching run complete",
		zap.Int("considered", meta.ConsideredColleges),
		zap.Int("candidates", len(results)),
		zap.Int("returned", len(top)),
		zap.String("category", string(c.category)),
		zap.Int("rank", c.rank),
	)

	if len(meta.Excluded) == 0 {
		meta.Excluded = nil
	}
	return Result{Top: top, Meta: meta}
}

func buildSuggestion(c criteria, code string, p dataset.CollegeProfile, row dataset.ClosingRankRow) Suggestion {
	var (
		cutoff    int
		hasCutoff bool
	)
	if c.category != "" {
		cutoff, hasCutoff = ClosingRankFor(row, c.category)
	}
	score, reasons := scoreCollege(c, p, cutoff, hasCutoff)

	s := Suggestion{
		CollegeCode: code,
		CollegeName: firstNonEmpty(string(p.Name), row.CollegeName, code),
		BranchName:  row.BranchName,
		District:    string(p.District),
		Location:    string(p.Location),
		Type:        string(p.Type),
		NAACGrade:   string(p.NAACGrade),
		Website:     SafeWebsite(string(p.Website)),
		Category:    c.category,
		Score:       score,
		Reasons:     reasons,
	}
	if fee, ok := ParseMoney(string(p.Fees)); ok {
		s.Fees = intPtr(fee)
	}
	if nirf, ok := ParseRank(string(p.NIRFRank)); ok {
		s.NIRFRank = intPtr(nirf)
	}
	if hasCutoff {
		s.Cutoff = intPtr(cutoff)
	}
	return s
}

// dedupe keeps the first (best scoring) suggestion per college, up to n.
func dedupe(sorted []Suggestion, n int) []Suggestion {
	seen := make(map[string]bool)
	top := make([]Suggestion, 0, min(n, len(sorted)))
	for _, s := range sorted {
		if seen[s.CollegeCode] {
			continue
		}
		seen[s.CollegeCode] = true
		top = append(top, s)
		if len(top) >= n {
			break
		}
	}
	return top
}

// SafeWebsite makes a website link absolute.
func SafeWebsite(url string) string {
	raw := strings.TrimSpace(url)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func intPtr(n int) *int { return &n }
