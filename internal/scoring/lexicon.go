package scoring

import "strings"

// scamIndicators is the fixed lexicon of phrases strongly associated with
// fraudulent job postings. Scan results are reported in declaration order,
// so appending new phrases is safe but reordering changes output.
var scamIndicators = []string{
	"urgent hiring", "work from home", "no experience needed", "high salary",
	"quick money", "easy money", "get rich quick", "investment opportunity",
	"cryptocurrency", "bitcoin", "pay upfront", "registration fee",
	"processing fee", "guaranteed income", "unlimited earning potential",
	"multi-level marketing", "pyramid scheme", "commission only",
	"no interview required", "immediate start", "flexible hours",
	"part-time", "full-time", "remote work", "online job", "data entry",
	"virtual assistant", "customer service", "sales representative",
	"marketing", "social media", "content creation", "writing", "editing",
	"transcription", "translation", "tutoring", "teaching", "coaching",
	"consulting", "freelance", "contract work", "temporary", "seasonal",
}

// Secondary signal word lists, separate from the main lexicon. Each feeds
// one additive confidence boost in the heuristic scorer.
var (
	urgentWords    = []string{"urgent", "immediate", "asap", "quick", "fast", "hurry"}
	guaranteeWords = []string{"guaranteed", "promise", "sure", "certain", "definite"}
	paymentWords   = []string{"pay", "fee", "cost", "charge", "payment", "money"}
)

// ScanIndicators returns the lexicon entries contained in lowered as
// substrings, in lexicon declaration order. Each entry counts once no
// matter how often it occurs. lowered must already be lower-cased.
func ScanIndicators(lowered string) []string {
	var found []string
	for _, indicator := range scamIndicators {
		if strings.Contains(lowered, indicator) {
			found = append(found, indicator)
		}
	}
	return found
}

// countPresent counts how many entries of words occur in lowered as
// substrings. Presence, not frequency: "urgent urgent" contributes 1.
func countPresent(lowered string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lowered, w) {
			n++
		}
	}
	return n
}
