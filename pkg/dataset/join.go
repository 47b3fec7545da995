package dataset

import "strings"

// Join merges profiles and closing-rank rows on the college code. Only
// colleges present in both documents are kept. Records without a code are
// dropped. For duplicate profile codes the last record wins but the code
// keeps its first position.
func Join(docs *Documents) *Dataset {
	d := &Dataset{
		profiles: make(map[string]CollegeProfile),
		rows:     make(map[string][]ClosingRankRow),
	}
	if docs == nil {
		return d
	}

	var profileOrder []string
	for _, p := range docs.Profiles {
		code := p.Code()
		if code == "" {
			continue
		}
		if _, seen := d.profiles[code]; !seen {
			profileOrder = append(profileOrder, code)
		}
		p.CollegeCode = Text(code)
		d.profiles[code] = p
	}

	for _, r := range docs.ClosingRanks {
		code := strings.TrimSpace(r.CollegeCode)
		if code == "" {
			continue
		}
		r.CollegeCode = code
		d.rows[code] = append(d.rows[code], r)
	}

	for _, code := range profileOrder {
		if len(d.rows[code]) > 0 {
			d.codes = append(d.codes, code)
		}
	}

	d.stats = Stats{
		ProfileColleges:     len(d.profiles),
		ClosingRankColleges: len(d.rows),
		JoinedColleges:      len(d.codes),
		ClosingRows:         len(docs.ClosingRanks),
	}

	// Only joined colleges are visible through the Dataset.
	for code := range d.rows {
		if _, ok := d.profiles[code]; !ok {
			delete(d.rows, code)
		}
	}
	for code := range d.profiles {
		if len(d.rows[code]) == 0 {
			delete(d.profiles, code)
		}
	}
	return d
}
