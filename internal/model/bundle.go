// Package model loads pre-trained classifier bundles and exposes them
// through the scoring package's capability interfaces. A bundle is a
// directory holding a manifest plus model-kind-specific artifacts; it is
// loaded exactly once at startup and treated as read-only afterwards.
package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scamradar/scamradar/internal/scoring"
)

const manifestFileName = "manifest.yaml"

// Supported bundle kinds.
const (
	KindLinear = "linear"
	KindONNX   = "onnx"
)

// ErrNoBundle is returned when the bundle directory or its manifest does
// not exist. Callers treat it as "run rule-only", not as a failure.
var ErrNoBundle = errors.New("model bundle not found")

// Manifest describes a model bundle directory.
type Manifest struct {
	Kind    string   `yaml:"kind"`
	Version string   `yaml:"version"`
	Labels  []string `yaml:"labels"`
}

// Bundle is a loaded model plus its provenance.
type Bundle struct {
	Manifest Manifest
	Adapter  *scoring.Adapter

	closer func() error
}

// Close releases model resources (the ONNX session); safe for bundles
// without any.
func (b *Bundle) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}

// Load reads the bundle at dir and wraps its model in a scoring adapter.
// A missing directory or manifest yields ErrNoBundle; anything else in
// the bundle being malformed is a real error, though callers degrade to
// rule-only scoring either way.
func Load(dir string) (*Bundle, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, ErrNoBundle
	}

	manifest, err := loadManifest(filepath.Join(dir, manifestFileName))
	if err != nil {
		return nil, err
	}

	var (
		handle any
		closer func() error
	)

	switch manifest.Kind {
	case KindLinear:
		handle, err = LoadLinear(dir, manifest.Labels)
	case KindONNX:
		var m *ONNXModel
		m, err = LoadONNX(dir)
		if m != nil {
			closer = m.Close
		}
		handle = m
	default:
		return nil, fmt.Errorf("unsupported model kind %q", manifest.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s model: %w", manifest.Kind, err)
	}

	adapter, err := scoring.NewAdapter(handle)
	if err != nil {
		return nil, err
	}

	return &Bundle{Manifest: *manifest, Adapter: adapter, closer: closer}, nil
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBundle
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Kind == "" {
		return nil, errors.New("manifest is missing kind")
	}
	return &m, nil
}
