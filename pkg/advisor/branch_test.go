package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBranchMatches(t *testing.T) {
	tests := []struct {
		name      string
		branch    string
		requested string
		want      bool
	}{
		{"empty request", "Civil Engineering", "", true},
		{"substring", "Civil Engineering", "civil engineering", true},
		{"cse alias", "Computer Science and Engineering", "CSE", true},
		{"cs alias", "Computer Engineering", "cs", true},
		{"it alias", "Information Technology", "IT", true},
		{"ece alias", "Electronics and Communication Engineering", "ece", true},
		{"eee alias", "Electrical and Electronics Engineering", "EEE", true},
		{"mech alias", "Mechanical Engineering", "mech", true},
		{"aiml words", "Artificial Intelligence and Machine Learning", "aiml", true},
		{"aiml compact", "CSE (AI&ML)", "AI&ML", true},
		{"ds alias", "Computer Science and Engineering (Data Science)", "ds", true},
		{"punctuation in request", "Computer Science and Engineering", "computer-science", true},
		{"no match", "Civil Engineering", "cse", false},
		{"empty name", "", "cse", false},
		{"unknown short code", "Mining Engineering", "xyz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BranchMatches(tt.branch, tt.requested))
		})
	}
}
