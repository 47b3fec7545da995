package advisor

import "strings"

// branchRule matches a branch name when every term of at least one group
// is contained in it. compact terms are checked against the name reduced to
// letters and digits ("CSE (AI&ML)" -> "cseaiml").
type branchRule struct {
	groups  [][]string
	compact []string
}

func (r branchRule) matches(name, compactName string) bool {
	for _, group := range r.groups {
		hit := true
		for _, term := range group {
			if !strings.Contains(name, term) {
				hit = false
				break
			}
		}
		if hit {
			return true
		}
	}
	for _, term := range r.compact {
		if strings.Contains(compactName, term) {
			return true
		}
	}
	return false
}

// branchAliases expands the short codes students type for common branches.
var branchAliases = map[string]branchRule{
	"cse":        {groups: [][]string{{"computer", "science"}}},
	"cs":         {groups: [][]string{{"computer", "science"}, {"computer", "engineering"}}},
	"it":         {groups: [][]string{{"information", "technology"}}},
	"ece":        {groups: [][]string{{"electronics", "communication"}}},
	"eee":        {groups: [][]string{{"electrical", "electronics"}}},
	"mech":       {groups: [][]string{{"mechanical"}}},
	"mechanical": {groups: [][]string{{"mechanical"}}},
	"civil":      {groups: [][]string{{"civil"}}},
	"aiml": {
		groups:  [][]string{{"artificial", "intelligence"}, {"machine learning"}},
		compact: []string{"aiml"},
	},
	"ds": {groups: [][]string{{"data", "science"}}},
}

// BranchMatches reports whether branchName satisfies the requested branch.
// An empty request matches every branch.
func BranchMatches(branchName, requested string) bool {
	req := NormalizeText(requested)
	if req == "" {
		return true
	}
	name := NormalizeText(branchName)
	if name == "" {
		return false
	}

	req = strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == ' ':
			return r
		}
		return ' '
	}, req))

	if strings.Contains(name, req) {
		return true
	}

	rule, ok := branchAliases[strings.ReplaceAll(req, " ", "")]
	if !ok {
		return false
	}
	return rule.matches(name, compact(name))
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
