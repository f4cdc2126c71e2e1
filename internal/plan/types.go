package plan

import (
	"time"

	"github.com/google/uuid"

	"field-mapper/internal/config"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/match"
	"field-mapper/internal/schema"
)

// Result is the immutable outcome of one resolution run.
//
// Every source column appears in exactly one of Accepted, Review or
// Unresolved. Every target column appears at most once across Accepted and
// Review, and otherwise in Unused.
type Result struct {
	// RunID identifies the run in logs and exported documents.
	RunID uuid.UUID
	// Source is the source schema as given.
	Source *schema.Schema
	// Target is the target schema with every column classified.
	Target *schema.Schema
	// Accepted mappings, in walk order.
	Accepted []match.ScoredMapping
	// Review holds mappings that need a human decision, in walk order.
	Review []match.ScoredMapping
	// Unresolved source column names, in source schema order.
	Unresolved []string
	// Unused target column names, in target schema order.
	Unused []string
	// GeneratedAt is when the run finished.
	GeneratedAt time.Time
	// Weights is the configuration the run used.
	Weights config.Weights
	// Diagnostics explains every candidate that did not make it.
	Diagnostics diagnostic.Diagnostics
}

// Summary holds the headline counts of a Result.
type Summary struct {
	SourceColumns int `yaml:"source_columns"`
	TargetColumns int `yaml:"target_columns"`
	Accepted      int `yaml:"accepted"`
	Review        int `yaml:"needs_review"`
	Unresolved    int `yaml:"unresolved"`
	Unused        int `yaml:"unused"`
}

// Summary returns the headline counts.
func (r *Result) Summary() Summary {
	return Summary{
		SourceColumns: r.Source.Len(),
		TargetColumns: r.Target.Len(),
		Accepted:      len(r.Accepted),
		Review:        len(r.Review),
		Unresolved:    len(r.Unresolved),
		Unused:        len(r.Unused),
	}
}

// MappingFor returns the accepted or needs-review mapping of a source column.
func (r *Result) MappingFor(source string) (match.ScoredMapping, bool) {
	key := schema.FoldName(source)

	for _, group := range [][]match.ScoredMapping{r.Accepted, r.Review} {
		for _, m := range group {
			if schema.FoldName(m.Source) == key {
				return m, true
			}
		}
	}

	return match.ScoredMapping{}, false
}

// Mappings returns accepted followed by needs-review mappings.
func (r *Result) Mappings() []match.ScoredMapping {
	out := make([]match.ScoredMapping, 0, len(r.Accepted)+len(r.Review))
	out = append(out, r.Accepted...)

	return append(out, r.Review...)
}
