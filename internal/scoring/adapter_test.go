package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake models covering each capability.

type fakeProbaModel struct {
	probs map[string]float64
	err   error
}

func (m *fakeProbaModel) PredictProba(features []float64) (map[string]float64, error) {
	return m.probs, m.err
}

type fakeMarginModel struct {
	margin float64
	err    error
}

func (m *fakeMarginModel) DecisionFunction(features []float64) (float64, error) {
	return m.margin, m.err
}

type fakeClassifierModel struct {
	label float64
	err   error
}

func (m *fakeClassifierModel) Predict(features []float64) (float64, error) {
	return m.label, m.err
}

// fakeFullModel exposes every capability; probability must win.
type fakeFullModel struct {
	fakeProbaModel
	fakeMarginModel
	fakeClassifierModel
}

type panickyModel struct{}

func (m *panickyModel) Predict(features []float64) (float64, error) {
	panic("model blew up")
}

func validFeatures() []float64 {
	return make([]float64, FeatureCount)
}

func TestNewAdapterCapabilityResolution(t *testing.T) {
	tests := []struct {
		name     string
		model    any
		expected capability
	}{
		{"probability capability", &fakeProbaModel{}, capProbability},
		{"margin capability", &fakeMarginModel{}, capMargin},
		{"discrete capability", &fakeClassifierModel{}, capClassify},
		{"probability wins over the rest", &fakeFullModel{}, capProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewAdapter(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, adapter.cap)
		})
	}
}

func TestNewAdapterRejectsIncapableModels(t *testing.T) {
	_, err := NewAdapter(nil)
	assert.ErrorIs(t, err, ErrNoCapability)

	_, err = NewAdapter(struct{}{})
	assert.ErrorIs(t, err, ErrNoCapability)
}

func TestPredictProbabilityCapability(t *testing.T) {
	tests := []struct {
		name     string
		probs    map[string]float64
		expected float64
		isScam   bool
	}{
		{
			name:     "uses scam class probability when labeled",
			probs:    map[string]float64{"legit": 0.25, "scam": 0.75},
			expected: 0.75,
			isScam:   true,
		},
		{
			name:     "falls back to max class probability",
			probs:    map[string]float64{"class_0": 0.9, "class_1": 0.1},
			expected: 0.9,
			isScam:   true,
		},
		{
			name:     "low scam probability is not a scam",
			probs:    map[string]float64{"legit": 0.8, "scam": 0.2},
			expected: 0.2,
			isScam:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewAdapter(&fakeProbaModel{probs: tt.probs})
			require.NoError(t, err)

			pred, err := adapter.Predict(validFeatures())
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, pred.Confidence, 1e-12)
			assert.Equal(t, tt.isScam, pred.IsScam)
		})
	}
}

func TestPredictMarginGoesThroughLogistic(t *testing.T) {
	adapter, err := NewAdapter(&fakeMarginModel{margin: 2.0})
	require.NoError(t, err)

	pred, err := adapter.Predict(validFeatures())
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2.0)), pred.Confidence, 1e-12)
	assert.True(t, pred.IsScam)

	adapter, err = NewAdapter(&fakeMarginModel{margin: -3.0})
	require.NoError(t, err)

	pred, err = adapter.Predict(validFeatures())
	require.NoError(t, err)
	assert.False(t, pred.IsScam)
}

func TestPredictDiscreteLabelMapping(t *testing.T) {
	tests := []struct {
		name     string
		label    float64
		expected float64
	}{
		{"positive label maps to fixed confidence", 1, 0.8},
		{"negative label maps to fixed confidence", 0, 0.2},
		{"numeric prediction used directly", 0.63, 0.63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewAdapter(&fakeClassifierModel{label: tt.label})
			require.NoError(t, err)

			pred, err := adapter.Predict(validFeatures())
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, pred.Confidence, 1e-12)
		})
	}
}

func TestPredictValidatesFeaturesBeforeModel(t *testing.T) {
	adapter, err := NewAdapter(&panickyModel{})
	require.NoError(t, err)

	var verr *FeatureValidationError

	_, err = adapter.Predict([]float64{1, 2, 3})
	assert.ErrorAs(t, err, &verr)

	bad := validFeatures()
	bad[4] = math.NaN()
	_, err = adapter.Predict(bad)
	assert.ErrorAs(t, err, &verr)

	bad = validFeatures()
	bad[0] = math.Inf(1)
	_, err = adapter.Predict(bad)
	assert.ErrorAs(t, err, &verr)
}

func TestPredictWrapsModelErrors(t *testing.T) {
	cause := errors.New("bad weights")
	adapter, err := NewAdapter(&fakeMarginModel{err: cause})
	require.NoError(t, err)

	_, err = adapter.Predict(validFeatures())
	var ierr *InferenceError
	assert.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, cause)
}

func TestPredictRecoversModelPanic(t *testing.T) {
	adapter, err := NewAdapter(&panickyModel{})
	require.NoError(t, err)

	pred, err := adapter.Predict(validFeatures())
	var ierr *InferenceError
	assert.ErrorAs(t, err, &ierr)
	assert.Zero(t, pred)
}

func TestPredictClampsConfidence(t *testing.T) {
	adapter, err := NewAdapter(&fakeProbaModel{probs: map[string]float64{"scam": 1.7}})
	require.NoError(t, err)

	pred, err := adapter.Predict(validFeatures())
	require.NoError(t, err)
	assert.Equal(t, 1.0, pred.Confidence)
}
