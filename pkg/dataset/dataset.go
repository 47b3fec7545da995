package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a JSON scalar decoded as text. The source documents mix strings,
// numbers and nulls for the same field ("60000", 60000, null). Objects and
// arrays decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")), !isScalar(b):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// CollegeProfile is one entry of the college profile document.
type CollegeProfile struct {
	CollegeCode      Text `json:"collegeCode" db:"code"`
	Name             Text `json:"name" db:"name"`
	Type             Text `json:"type" db:"type"`
	AutonomousStatus Text `json:"autonomousStatus" db:"autonomous_status"`
	Fees             Text `json:"fees" db:"fees"`
	NAACGrade        Text `json:"naacGrade" db:"naac_grade"`
	NIRFRank         Text `json:"nirfRank" db:"nirf_rank"`
	Location         Text `json:"location" db:"location"`
	District         Text `json:"district" db:"district"`
	Website          Text `json:"website" db:"website"`
}

// Code returns the trimmed college code.
func (p CollegeProfile) Code() string {
	return strings.TrimSpace(string(p.CollegeCode))
}

// Well-known keys of a closing-rank row. Every other key is a cutoff field.
const (
	KeyCollegeCode = "College Code"
	KeyCollegeName = "College Name"
	KeyBranchCode  = "Branch Code"
	KeyBranchName  = "Branch Name"
)

// ClosingRankRow is the closing-rank record of one branch of one college.
type ClosingRankRow struct {
	CollegeCode string
	CollegeName string
	BranchCode  string
	BranchName  string
	// Cutoffs maps a category/gender field such as "OC Boys" to its raw text.
	Cutoffs map[string]string
}

func (r *ClosingRankRow) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = ClosingRankRow{Cutoffs: make(map[string]string, len(raw))}
	for k, rv := range raw {
		if !isScalar(rv) {
			continue
		}
		var v Text
		if err := v.UnmarshalJSON(rv); err != nil {
			return err
		}
		switch k {
		case KeyCollegeCode:
			r.CollegeCode = strings.TrimSpace(string(v))
		case KeyCollegeName:
			r.CollegeName = string(v)
		case KeyBranchCode:
			r.BranchCode = string(v)
		case KeyBranchName:
			r.BranchName = string(v)
		default:
			r.Cutoffs[k] = string(v)
		}
	}
	return nil
}

func (r ClosingRankRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Cutoffs)+4)
	for k, v := range r.Cutoffs {
		out[k] = v
	}
	out[KeyCollegeCode] = r.CollegeCode
	out[KeyCollegeName] = r.CollegeName
	out[KeyBranchCode] = r.BranchCode
	out[KeyBranchName] = r.BranchName
	return json.Marshal(out)
}

// Field returns the raw value of a cutoff field, or "" when absent.
func (r ClosingRankRow) Field(key string) string {
	return r.Cutoffs[key]
}

// Documents are the two decoded source documents, before the join.
type Documents struct {
	Profiles     []CollegeProfile
	ClosingRanks []ClosingRankRow
	// Skipped counts array items dropped while decoding because they were
	// not objects.
	Skipped int
}

// Stats summarizes a joined dataset.
type Stats struct {
	ProfileColleges     int `json:"profile_colleges"`
	ClosingRankColleges int `json:"closing_rank_colleges"`
	JoinedColleges      int `json:"joined_colleges"`
	ClosingRows         int `json:"closing_rows"`
}

// Dataset is the read-only join of profiles and closing ranks. It is safe to
// share between matching runs.
type Dataset struct {
	codes    []string
	profiles map[string]CollegeProfile
	rows     map[string][]ClosingRankRow
	stats    Stats
}

// CollegeCodes returns the joined codes in profile order.
func (d *Dataset) CollegeCodes() []string {
	out := make([]string, len(d.codes))
	copy(out, d.codes)
	return out
}

// Profile returns the profile of a joined college.
func (d *Dataset) Profile(code string) (CollegeProfile, bool) {
	p, ok := d.profiles[code]
	return p, ok
}

// Rows returns the closing-rank rows of a college in insertion order.
func (d *Dataset) Rows(code string) []ClosingRankRow {
	return d.rows[code]
}

// Len returns the number of joined colleges.
func (d *Dataset) Len() int { return len(d.codes) }

func (d *Dataset) Stats() Stats { return d.stats }
