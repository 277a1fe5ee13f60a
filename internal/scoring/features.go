package scoring

import (
	"regexp"
	"strings"
	"unicode"
)

// FeatureCount is the length of the fixed feature layout consumed by models.
const FeatureCount = 12

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+?1[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	websitePattern  = regexp.MustCompile(`https?://`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
)

// FeatureVector is the ordered 12-feature numeric representation of a
// posting. Field order is a contract: any model trained against this
// layout depends on the exact positional semantics of Slice.
type FeatureVector struct {
	WordCount        float64
	CharCount        float64
	SentenceCount    float64
	UrgentWordCount  float64
	MoneyWordCount   float64
	GuaranteeCount   float64
	WorkFromHomeHits float64
	HasEmail         float64
	HasPhone         float64
	HasWebsite       float64
	ExclamationCount float64
	UppercaseRatio   float64
}

// Slice returns the features in their fixed positional order.
func (f FeatureVector) Slice() []float64 {
	return []float64{
		f.WordCount,
		f.CharCount,
		f.SentenceCount,
		f.UrgentWordCount,
		f.MoneyWordCount,
		f.GuaranteeCount,
		f.WorkFromHomeHits,
		f.HasEmail,
		f.HasPhone,
		f.HasWebsite,
		f.ExclamationCount,
		f.UppercaseRatio,
	}
}

// ExtractFeatures derives the fixed-length feature vector from raw text.
// Pure function of its input; empty text yields an all-zero vector.
func ExtractFeatures(text string) FeatureVector {
	lowered := strings.ToLower(text)

	fv := FeatureVector{
		WordCount:        float64(len(strings.Fields(text))),
		CharCount:        float64(len([]rune(text))),
		SentenceCount:    float64(countSentences(text)),
		UrgentWordCount:  float64(countOccurrences(lowered, urgentWords)),
		MoneyWordCount:   float64(countOccurrences(lowered, paymentWords)),
		GuaranteeCount:   float64(countOccurrences(lowered, guaranteeWords)),
		WorkFromHomeHits: float64(strings.Count(lowered, "work from home")),
		ExclamationCount: float64(strings.Count(text, "!")),
		UppercaseRatio:   uppercaseRatio(text),
	}

	if emailPattern.MatchString(text) {
		fv.HasEmail = 1
	}
	if phonePattern.MatchString(text) {
		fv.HasPhone = 1
	}
	if websitePattern.MatchString(lowered) {
		fv.HasWebsite = 1
	}

	return fv
}

// countSentences counts non-empty segments delimited by runs of .!? marks.
func countSentences(text string) int {
	n := 0
	for _, seg := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

// countOccurrences sums total substring occurrences of every word in the
// list. Unlike countPresent this counts frequency, which is what a model
// wants from a count feature.
func countOccurrences(lowered string, words []string) int {
	n := 0
	for _, w := range words {
		n += strings.Count(lowered, w)
	}
	return n
}

// uppercaseRatio divides uppercase letters by total characters. Empty
// text is ratio 0, never a division by zero.
func uppercaseRatio(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(runes))
}
