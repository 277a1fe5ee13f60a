package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// minDescriptionLength is the trimmed length below which scoring
	// short-circuits into the terminal "too short" classification.
	minDescriptionLength = 10

	// Blend weights when a model contribution is available.
	modelWeight = 0.6
	ruleWeight  = 0.4

	// At most this many matched indicator phrases appear in reasons.
	maxReasonIndicators = 3

	shortInputConfidence = 0.9
	shortInputReason     = "Job description is too short or empty"
)

// ErrEmptyInput rejects text that is missing or whitespace-only. This is
// the only condition Score surfaces as an error.
var ErrEmptyInput = errors.New("job description is empty")

// Engine scores postings. It owns no mutable state: the optional adapter
// is injected once at construction and read-only thereafter, so a single
// Engine is safe for concurrent Score calls.
type Engine struct {
	adapter *Adapter
}

// NewEngine builds an engine. adapter may be nil, in which case every
// result is rule-only.
func NewEngine(adapter *Adapter) *Engine {
	return &Engine{adapter: adapter}
}

// HasModel reports whether a model contribution is possible.
func (e *Engine) HasModel() bool { return e.adapter != nil }

// TooShort reports whether text falls under the short-input threshold,
// where scoring short-circuits and the model never runs.
func TooShort(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < minDescriptionLength
}

// Score classifies one posting. Deterministic for a fixed text and
// adapter; model failures degrade to a rule-only result rather than
// erroring.
func (e *Engine) Score(text string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, ErrEmptyInput
	}

	if utf8.RuneCountInString(trimmed) < minDescriptionLength {
		return Result{
			IsScam:              true,
			Confidence:          shortInputConfidence,
			RiskLevel:           RiskHigh,
			Reasons:             []string{shortInputReason},
			TotalWords:          len(strings.Fields(text)),
			RuleBasedConfidence: shortInputConfidence,
			ConfidenceSource:    SourceRuleOnly,
		}, nil
	}

	lowered := strings.ToLower(text)
	indicators := ScanIndicators(lowered)
	rule := scoreHeuristics(text, lowered, indicators)

	var (
		mlConfidence float64
		modelRan     bool
	)
	if e.adapter != nil {
		features := ExtractFeatures(text)
		pred, err := e.adapter.Predict(features.Slice())
		// Inference failures are local: degrade to rule-only. A model
		// that ran and answered 0 is a different state from a model
		// that failed, and only the former leaves a trace in reasons.
		if err == nil {
			mlConfidence = pred.Confidence
			modelRan = true
		}
	}

	return e.combine(rule, mlConfidence, modelRan), nil
}

// combine blends the rule confidence with the model confidence and
// recomputes the risk tier from the blended value.
func (e *Engine) combine(rule ruleScore, mlConfidence float64, modelRan bool) Result {
	res := Result{
		ScamIndicatorsFound: rule.matchCount,
		TotalWords:          rule.wordCount,
		RuleBasedConfidence: round3(rule.confidence),
		Reasons:             rule.reasons,
	}

	if modelRan && mlConfidence > 0 {
		combined := modelWeight*mlConfidence + ruleWeight*rule.confidence
		res.Confidence = round3(clamp01(combined))
		res.IsScam = combined > 0.5
		res.MLConfidence = round3(mlConfidence)
		res.ConfidenceSource = SourceCombined
	} else {
		res.Confidence = round3(rule.confidence)
		res.IsScam = rule.isScam
		res.ConfidenceSource = SourceRuleOnly
	}

	res.RiskLevel = riskLevelFor(res.Confidence)

	if modelRan {
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("ML model confidence: %.2f", mlConfidence))
	}
	if res.Reasons == nil {
		res.Reasons = []string{}
	}

	return res
}

// riskLevelFor maps a combined confidence onto the fixed tier ladder.
func riskLevelFor(confidence float64) RiskLevel {
	switch {
	case confidence > 0.8:
		return RiskVeryHigh
	case confidence > 0.6:
		return RiskHigh
	case confidence > 0.4:
		return RiskMedium
	case confidence > 0.2:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
