package match

import (
	"math"
	"sort"
	"strings"
)

// Candidate is a proposed pairing of a source column with a target column.
// Candidates are ephemeral: produced per run and never persisted.
type Candidate struct {
	Source         string  `json:"source" yaml:"source"`
	Target         string  `json:"target" yaml:"target"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
	Transformation string  `json:"transformation,omitempty" yaml:"transformation,omitempty"`
	Rationale      string  `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// NewCandidate builds a Candidate with trimmed names and a clamped confidence.
func NewCandidate(source, target string, confidence float64) Candidate {
	return Candidate{
		Source:     strings.TrimSpace(source),
		Target:     strings.TrimSpace(target),
		Confidence: ClampConfidence(confidence),
	}
}

// Valid reports whether both column names are present.
func (c Candidate) Valid() bool {
	return strings.TrimSpace(c.Source) != "" && strings.TrimSpace(c.Target) != ""
}

// ClampConfidence forces v into [0, 1]. NaN becomes 0.
func ClampConfidence(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Ranked is a Candidate annotated with the priority of its target column.
type Ranked struct {
	Candidate
	Priority int
}

// RankedList orders candidates for greedy conflict resolution.
type RankedList []Ranked

// Len implements sort.Interface.
func (r RankedList) Len() int { return len(r) }

// Swap implements sort.Interface.
func (r RankedList) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

// Less implements sort.Interface.
// Sorts by target priority ascending, then by raw confidence descending.
func (r RankedList) Less(i, j int) bool {
	if r[i].Priority != r[j].Priority {
		return r[i].Priority < r[j].Priority
	}

	return r[i].Confidence > r[j].Confidence
}

// Sort orders the list in place. Ties keep their input order.
func (r RankedList) Sort() {
	sort.Stable(r)
}
