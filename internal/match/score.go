package match

import (
	"fmt"

	"field-mapper/internal/schema"
)

// Classification multipliers applied after similarity scaling. Custom fields
// are nudged up and system fields down so that close calls favour business
// columns.
const (
	CustomFieldBias = 1.05
	SystemFieldBias = 0.95
)

// Match-type labels.
const (
	MatchTypeCustom       = "custom-field"
	MatchTypeSystemPrefix = "system-field:"
)

// Tier is the disposition of a scored candidate.
type Tier int

const (
	TierDiscarded Tier = iota
	TierReview
	TierAccepted
)

// String returns the tier label.
func (t Tier) String() string {
	switch t {
	case TierAccepted:
		return "accepted"
	case TierReview:
		return "needs-review"
	case TierDiscarded:
		return "discarded"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ScoredMapping is a Candidate after scoring and tiering.
type ScoredMapping struct {
	Candidate `yaml:",inline"`

	TargetPriority     int     `json:"target_priority" yaml:"target_priority"`
	AdjustedConfidence float64 `json:"adjusted_confidence" yaml:"adjusted_confidence"`
	MatchType          string  `json:"match_type" yaml:"match_type"`
	Tier               Tier    `json:"tier" yaml:"tier"`
}

// AdjustedConfidence scales a raw confidence by the similarity factor and the
// custom/system bias.
func AdjustedConfidence(raw, similarity float64, systemField bool) float64 {
	bias := CustomFieldBias
	if systemField {
		bias = SystemFieldBias
	}

	return raw * similarity * bias
}

// TierFor places an adjusted confidence relative to the two thresholds.
// accept >= review is assumed, not checked.
func TierFor(adjusted, accept, review float64) Tier {
	switch {
	case adjusted >= accept:
		return TierAccepted
	case adjusted >= review:
		return TierReview
	default:
		return TierDiscarded
	}
}

// MatchType labels a mapping by the classification of its target column.
func MatchType(target schema.Column) string {
	if !target.IsSystemField() {
		return MatchTypeCustom
	}

	return MatchTypeSystemPrefix + target.SystemCategory().String()
}

// Score turns a ranked candidate into a ScoredMapping against its resolved
// target column.
func Score(r Ranked, target schema.Column, similarity, accept, review float64) ScoredMapping {
	adjusted := AdjustedConfidence(r.Confidence, similarity, target.IsSystemField())

	return ScoredMapping{
		Candidate:          r.Candidate,
		TargetPriority:     r.Priority,
		AdjustedConfidence: adjusted,
		MatchType:          MatchType(target),
		Tier:               TierFor(adjusted, accept, review),
	}
}
