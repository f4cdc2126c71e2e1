package render

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"field-mapper/internal/config"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/match"
	"field-mapper/internal/plan"
)

// Document is the exported form of a plan.Result.
type Document struct {
	RunID       string                  `yaml:"run_id"`
	GeneratedAt string                  `yaml:"generated_at"`
	Source      string                  `yaml:"source"`
	Target      string                  `yaml:"target"`
	Weights     config.Weights          `yaml:"weights"`
	Summary     plan.Summary            `yaml:"summary"`
	Accepted    []match.ScoredMapping   `yaml:"accepted"`
	Review      []match.ScoredMapping   `yaml:"needs_review"`
	Unresolved  []string                `yaml:"unresolved"`
	Unused      []string                `yaml:"unused"`
	Diagnostics *diagnostic.Diagnostics `yaml:"diagnostics,omitempty"`
}

// NewDocument builds the exported form of res.
func NewDocument(res *plan.Result) Document {
	doc := Document{
		RunID:       res.RunID.String(),
		GeneratedAt: res.GeneratedAt.UTC().Format(time.RFC3339),
		Source:      res.Source.Name(),
		Target:      res.Target.Name(),
		Weights:     res.Weights,
		Summary:     res.Summary(),
		Accepted:    nonNil(res.Accepted),
		Review:      nonNil(res.Review),
		Unresolved:  nonNilStrings(res.Unresolved),
		Unused:      nonNilStrings(res.Unused),
	}

	if res.Diagnostics.Len() > 0 {
		d := res.Diagnostics
		doc.Diagnostics = &d
	}

	return doc
}

// YAML writes res as a YAML document.
func YAML(w io.Writer, res *plan.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(NewDocument(res)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush result: %w", err)
	}

	return nil
}

func nonNil(ms []match.ScoredMapping) []match.ScoredMapping {
	if ms == nil {
		return []match.ScoredMapping{}
	}

	return ms
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
