package advisor

import "github.com/elonfeng/collegeadvisor/pkg/dataset"

type profileOpt func(*dataset.CollegeProfile)

func withFees(f string) profileOpt { return func(p *dataset.CollegeProfile) { p.Fees = dataset.Text(f) } }
func withNAAC(g string) profileOpt { return func(p *dataset.CollegeProfile) { p.NAACGrade = dataset.Text(g) } }
func withNIRF(r string) profileOpt { return func(p *dataset.CollegeProfile) { p.NIRFRank = dataset.Text(r) } }
func withType(typ string) profileOpt { return func(p *dataset.CollegeProfile) { p.Type = dataset.Text(typ) } }
func withAutonomy(s string) profileOpt { return func(p *dataset.CollegeProfile) { p.AutonomousStatus = dataset.Text(s) } }
func withWebsite(w string) profileOpt { return func(p *dataset.CollegeProfile) { p.Website = dataset.Text(w) } }
func withLocation(l, d string) profileOpt {
	return func(p *dataset.CollegeProfile) {
		p.Location = dataset.Text(l)
		p.District = dataset.Text(d)
	}
}

func profile(code, name string, opts ...profileOpt) dataset.CollegeProfile {
	p := dataset.CollegeProfile{
		CollegeCode: dataset.Text(code),
		Name:        dataset.Text(name),
		Type:        "Private",
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// row builds a closing-rank row; cutoffs alternate field, value.
func row(code, branch string, cutoffs ...string) dataset.ClosingRankRow {
	r := dataset.ClosingRankRow{
		CollegeCode: code,
		BranchName:  branch,
		Cutoffs:     make(map[string]string),
	}
	for i := 0; i+1 < len(cutoffs); i += 2 {
		r.Cutoffs[cutoffs[i]] = cutoffs[i+1]
	}
	return r
}

func joined(profiles []dataset.CollegeProfile, rows ...dataset.ClosingRankRow) *dataset.Dataset {
	return dataset.Join(&dataset.Documents{Profiles: profiles, ClosingRanks: rows})
}

const cse = "Computer Science and Engineering"

// scenarioA has four CSE colleges with known BC-B cutoffs and fees.
func scenarioA() *dataset.Dataset {
	return joined(
		[]dataset.CollegeProfile{
			profile("ALPH", "Alpha Institute of Technology", withFees("₹75,000"), withNAAC("A")),
			profile("BETA", "Beta College of Engineering", withFees("84000"), withNAAC("B++")),
			profile("GAMA", "Gamma Engineering College", withFees("60,000"), withNAAC("A++")),
			profile("DELT", "Delta Institute", withFees("90000"), withNAAC("A")),
		},
		row("ALPH", cse, "BC-B Boys", "20000", "BC-B Girls", "18000", "OC Boys", "9000"),
		row("ALPH", "Civil Engineering", "BC-B Boys", "60000"),
		row("BETA", cse, "BC-B Boys", "30000"),
		row("GAMA", cse, "BC-B Boys", "12000", "BC-B Girls", "14999"),
		row("DELT", cse, "BC-B Boys", "50000"),
	)
}
