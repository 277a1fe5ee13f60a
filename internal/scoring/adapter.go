package scoring

import (
	"errors"
	"fmt"
	"math"
)

// The scam class label a ProbabilityEstimator may use to tag its output.
const scamClassLabel = "scam"

// Discrete classifier confidence mapping when the prediction is a bare label.
const (
	positiveLabelConfidence = 0.8
	negativeLabelConfidence = 0.2
)

// ErrNoCapability is returned by NewAdapter when the supplied model
// exposes none of the three prediction capabilities.
var ErrNoCapability = errors.New("model exposes no supported prediction capability")

// FeatureValidationError reports malformed feature input rejected before
// the model is ever invoked.
type FeatureValidationError struct {
	Reason string
}

func (e *FeatureValidationError) Error() string {
	return "invalid feature vector: " + e.Reason
}

// InferenceError wraps a failure raised by the underlying model. It is
// recovered locally by the engine and never surfaced to callers of Score.
type InferenceError struct {
	Cause error
}

func (e *InferenceError) Error() string {
	return "model inference failed: " + e.Cause.Error()
}

func (e *InferenceError) Unwrap() error { return e.Cause }

// ProbabilityEstimator is the preferred model capability: a per-class
// probability distribution over the fixed feature layout.
type ProbabilityEstimator interface {
	PredictProba(features []float64) (map[string]float64, error)
}

// MarginScorer exposes a raw decision-function margin. Positive margins
// lean scam; the adapter squashes through a logistic to reach [0,1].
type MarginScorer interface {
	DecisionFunction(features []float64) (float64, error)
}

// Classifier is the lowest-priority capability: a single discrete or
// numeric prediction with no calibrated probability attached.
type Classifier interface {
	Predict(features []float64) (float64, error)
}

type capability int

const (
	capProbability capability = iota
	capMargin
	capClassify
)

// Prediction is one model verdict. Absence of a prediction is expressed
// by an error from Adapter.Predict, never by a zero-valued Prediction,
// so downstream code can tell "model said 0" from "model failed".
type Prediction struct {
	Confidence float64
	IsScam     bool
}

// Adapter wraps an externally supplied classifier behind a single
// Predict call. The capability is resolved exactly once at construction
// in fixed priority order (probability, margin, discrete); the wrapped
// model is treated as immutable shared state and is never written to.
type Adapter struct {
	cap        capability
	proba      ProbabilityEstimator
	margin     MarginScorer
	classifier Classifier
}

// NewAdapter probes model for a supported capability. The probe happens
// here, not per call.
func NewAdapter(model any) (*Adapter, error) {
	if model == nil {
		return nil, ErrNoCapability
	}
	if p, ok := model.(ProbabilityEstimator); ok {
		return &Adapter{cap: capProbability, proba: p}, nil
	}
	if m, ok := model.(MarginScorer); ok {
		return &Adapter{cap: capMargin, margin: m}, nil
	}
	if c, ok := model.(Classifier); ok {
		return &Adapter{cap: capClassify, classifier: c}, nil
	}
	return nil, ErrNoCapability
}

// Predict runs the resolved capability over features. Malformed features
// are rejected with a FeatureValidationError before the model runs; any
// model error or panic comes back as an InferenceError.
func (a *Adapter) Predict(features []float64) (pred Prediction, err error) {
	if err := validateFeatures(features); err != nil {
		return Prediction{}, err
	}

	// Third-party model code is not trusted to stay on the rails for
	// unusual inputs.
	defer func() {
		if r := recover(); r != nil {
			pred = Prediction{}
			err = &InferenceError{Cause: fmt.Errorf("model panicked: %v", r)}
		}
	}()

	var confidence float64

	switch a.cap {
	case capProbability:
		probs, perr := a.proba.PredictProba(features)
		if perr != nil {
			return Prediction{}, &InferenceError{Cause: perr}
		}
		confidence = scamProbability(probs)
	case capMargin:
		margin, merr := a.margin.DecisionFunction(features)
		if merr != nil {
			return Prediction{}, &InferenceError{Cause: merr}
		}
		confidence = logistic(margin)
	case capClassify:
		label, cerr := a.classifier.Predict(features)
		if cerr != nil {
			return Prediction{}, &InferenceError{Cause: cerr}
		}
		confidence = labelConfidence(label)
	}

	confidence = clamp01(confidence)
	return Prediction{Confidence: confidence, IsScam: confidence > 0.5}, nil
}

// validateFeatures rejects vectors of the wrong length or with
// non-finite entries.
func validateFeatures(features []float64) error {
	if len(features) != FeatureCount {
		return &FeatureValidationError{
			Reason: fmt.Sprintf("expected %d features, got %d", FeatureCount, len(features)),
		}
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &FeatureValidationError{
				Reason: fmt.Sprintf("feature %d is not a finite number", i),
			}
		}
	}
	return nil
}

// scamProbability picks the probability mass assigned to the scam class,
// falling back to the maximum class probability when the model does not
// use that labeling convention.
func scamProbability(probs map[string]float64) float64 {
	if p, ok := probs[scamClassLabel]; ok {
		return p
	}
	maxP := 0.0
	for _, p := range probs {
		if p > maxP {
			maxP = p
		}
	}
	return maxP
}

// labelConfidence maps a discrete prediction to a confidence. Bare 0/1
// labels get the fixed negative/positive confidences; anything else is
// already numeric and is used directly.
func labelConfidence(label float64) float64 {
	switch label {
	case 0:
		return negativeLabelConfidence
	case 1:
		return positiveLabelConfidence
	default:
		return label
	}
}

func logistic(s float64) float64 { return 1 / (1 + math.Exp(-s)) }

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
