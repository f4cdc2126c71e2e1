package suggest

import (
	"context"
	"fmt"
	"sort"

	"field-mapper/internal/config"
	"field-mapper/internal/match"
	"field-mapper/internal/schema"
)

// Heuristic suggests pairings from local name and declared-type similarity.
// It needs no network access and is only used when explicitly configured.
type Heuristic struct {
	weights      config.Weights
	minScore     float64
	maxPerSource int
}

// NewHeuristic builds a Heuristic source. Candidates scoring below minScore are
// dropped and at most maxPerSource are kept per source column (0 means 1).
func NewHeuristic(weights config.Weights, minScore float64, maxPerSource int) *Heuristic {
	if maxPerSource <= 0 {
		maxPerSource = 1
	}

	return &Heuristic{
		weights:      weights,
		minScore:     minScore,
		maxPerSource: maxPerSource,
	}
}

// Suggest implements Source.
func (h *Heuristic) Suggest(ctx context.Context, source, target *schema.Schema, filter Filter) ([]match.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets := target.Columns()

	var out []match.Candidate

	for _, src := range filter.Columns(source) {
		var ranked []match.Candidate

		for _, tgt := range targets {
			c := h.score(src, tgt)
			if c.Confidence < h.minScore || c.Confidence == 0 {
				continue
			}

			ranked = append(ranked, c)
		}

		// Ties keep target schema order.
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Confidence > ranked[j].Confidence
		})

		out = append(out, ranked[:min(len(ranked), h.maxPerSource)]...)
	}

	return out, nil
}

// score combines the name and type signals:
//
//	(nameWeight*nameScore + typeWeight*typeScore) / (nameWeight + typeWeight)
//
// where nameWeight is the exact-name weight for names equal after
// normalization and the fuzzy-name weight otherwise.
func (h *Heuristic) score(src, tgt schema.Column) match.Candidate {
	nameScore := match.NameScore(src.Name, tgt.Name)
	nameWeight := h.weights.FuzzyName

	exact := match.SameName(src.Name, tgt.Name)
	if exact {
		nameScore = 1.0
		nameWeight = h.weights.ExactName
	}

	compat := match.ScoreTypeCompatibility(src.Type, tgt.Type)
	typeWeight := h.weights.Type

	var combined float64
	if total := nameWeight + typeWeight; total > 0 {
		combined = (nameWeight*nameScore + typeWeight*compat.Compatibility.Score()) / total
	} else {
		combined = nameScore
	}

	if compat.Compatibility == match.TypeIncompatible {
		combined /= 2
	}

	c := match.NewCandidate(src.Name, tgt.Name, combined)
	c.Rationale = fmt.Sprintf("name similarity %.2f, types %s (%s)", nameScore, compat.Compatibility, compat.Reason)

	if compat.Compatibility == match.TypeConvertible || compat.Compatibility == match.TypeNeedsTransform {
		c.Transformation = fmt.Sprintf("convert %s to %s", orUnknown(src.Type), orUnknown(tgt.Type))
	}

	return c
}

func orUnknown(t string) string {
	if t == "" {
		return "unknown type"
	}

	return t
}
