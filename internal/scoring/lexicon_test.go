package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanIndicators(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "finds nothing in clean text",
			text:     "we are seeking a senior backend engineer",
			expected: nil,
		},
		{
			name:     "finds single indicator",
			text:     "this is a work from home position",
			expected: []string{"work from home"},
		},
		{
			name: "reports matches in lexicon declaration order",
			text: "registration fee required for this work from home urgent hiring",
			expected: []string{
				"urgent hiring", "work from home", "registration fee",
			},
		},
		{
			name:     "counts repeated phrase once",
			text:     "easy money easy money easy money",
			expected: []string{"easy money"},
		},
		{
			name:     "matches as substring",
			text:     "freelancers wanted",
			expected: []string{"freelance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := ScanIndicators(strings.ToLower(tt.text))
			assert.Equal(t, tt.expected, found)
		})
	}
}

func TestCountPresent(t *testing.T) {
	lowered := "urgent urgent asap hiring now"

	// Presence counts each list entry at most once.
	assert.Equal(t, 2, countPresent(lowered, urgentWords))
	assert.Equal(t, 0, countPresent(lowered, guaranteeWords))
}

func TestLexiconIsLowerCase(t *testing.T) {
	// The scanner receives lower-cased text, so upper case in the lexicon
	// would make an entry unreachable.
	for _, indicator := range scamIndicators {
		assert.Equal(t, strings.ToLower(indicator), indicator)
	}
}
