package config

import (
	"fmt"
	"math"
)

// Default weight values. DefaultSimilarity is a default, not a constant of the
// algorithm: earlier deployments ran with 0.30 and callers may override it.
const (
	DefaultExactNameWeight = 1.0
	DefaultFuzzyNameWeight = 0.8
	DefaultTypeWeight      = 0.4
	DefaultSimilarity      = 1.0
	DefaultAcceptThreshold = 0.70
	DefaultReviewThreshold = 0.50
)

// Weights holds the scoring knobs of a resolution run.
//
// AcceptThreshold >= ReviewThreshold is a precondition the caller must honour;
// it is not enforced.
type Weights struct {
	// Signal weights of the heuristic suggestion source.
	ExactName float64 `yaml:"exact_name"`
	FuzzyName float64 `yaml:"fuzzy_name"`
	Type      float64 `yaml:"type"`

	// Similarity scales every raw suggestion confidence.
	Similarity float64 `yaml:"similarity"`

	AcceptThreshold float64 `yaml:"accept_threshold"`
	ReviewThreshold float64 `yaml:"review_threshold"`
}

// DefaultWeights returns the default weight configuration.
func DefaultWeights() Weights {
	return Weights{
		ExactName:       DefaultExactNameWeight,
		FuzzyName:       DefaultFuzzyNameWeight,
		Type:            DefaultTypeWeight,
		Similarity:      DefaultSimilarity,
		AcceptThreshold: DefaultAcceptThreshold,
		ReviewThreshold: DefaultReviewThreshold,
	}
}

// Validate rejects negative and non-finite values.
func (w Weights) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"exact_name", w.ExactName},
		{"fuzzy_name", w.FuzzyName},
		{"type", w.Type},
		{"similarity", w.Similarity},
		{"accept_threshold", w.AcceptThreshold},
		{"review_threshold", w.ReviewThreshold},
	}

	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("weights.%s: invalid value %v", f.name, f.v)
		}
	}

	return nil
}
