package advisor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Form field names of the preference wizard.
const (
	FieldExamName       = "examName"
	FieldExamRank       = "examRank"
	FieldExamRankBand   = "examRankBand"
	FieldRequiredBranch = "requiredBranch"
	FieldCategory       = "category"
	FieldCollegeType    = "collegeType"
	FieldBudgetMin      = "budgetMin"
	FieldBudgetMax      = "budgetMax"
	FieldNAACGrade      = "naacGrade"
	FieldHomeLocation   = "homeLocation"
	FieldDreamColleges  = "dreamColleges"
)

// Preferences is what a student asked for. Every field is optional; blank
// fields leave the corresponding filter or score term unconstrained.
type Preferences struct {
	ExamName       string   `json:"examName,omitempty"`
	ExamRank       string   `json:"examRank,omitempty"`
	ExamRankBand   string   `json:"examRankBand,omitempty"`
	RequiredBranch string   `json:"requiredBranch,omitempty"`
	Category       string   `json:"category,omitempty"`
	CollegeTypes   []string `json:"collegeType,omitempty"`
	BudgetMin      string   `json:"budgetMin,omitempty"`
	BudgetMax      string   `json:"budgetMax,omitempty"`
	NAACGrade      string   `json:"naacGrade,omitempty"`
	HomeLocation   string   `json:"homeLocation,omitempty"`
	DreamColleges  string   `json:"dreamColleges,omitempty"`

	// Signals holds the remaining soft-importance answers (hostel,
	// facilities, placement importance, ...). They are carried along for
	// display and are not scored.
	Signals map[string][]string `json:"signals,omitempty"`
}

// PreferencesFromFields builds Preferences from a flat field map as produced
// by a form: values are strings, numbers or arrays of those.
func PreferencesFromFields(fields map[string]any) Preferences {
	var p Preferences

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		values := fieldValues(fields[k])
		first := ""
		if len(values) > 0 {
			first = values[0]
		}
		switch k {
		case FieldExamName:
			p.ExamName = first
		case FieldExamRank:
			p.ExamRank = first
		case FieldExamRankBand:
			p.ExamRankBand = first
		case FieldRequiredBranch:
			p.RequiredBranch = first
		case FieldCategory:
			p.Category = first
		case FieldCollegeType:
			p.CollegeTypes = values
		case FieldBudgetMin:
			p.BudgetMin = first
		case FieldBudgetMax:
			p.BudgetMax = first
		case FieldNAACGrade:
			p.NAACGrade = first
		case FieldHomeLocation:
			p.HomeLocation = first
		case FieldDreamColleges:
			p.DreamColleges = first
		default:
			if len(values) == 0 {
				continue
			}
			if p.Signals == nil {
				p.Signals = make(map[string][]string)
			}
			p.Signals[k] = values
		}
	}
	return p
}

// fieldValues flattens a form value into non-blank strings.
func fieldValues(v any) []string {
	var out []string
	add := func(s string) {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	switch t := v.(type) {
	case nil:
	case string:
		add(t)
	case []string:
		for _, s := range t {
			add(s)
		}
	case []any:
		for _, e := range t {
			out = append(out, fieldValues(e)...)
		}
	case float64:
		add(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		add(strconv.Itoa(t))
	default:
		add(fmt.Sprint(t))
	}
	return out
}
