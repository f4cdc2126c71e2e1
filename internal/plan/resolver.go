package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"field-mapper/internal/classify"
	"field-mapper/internal/config"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/logging"
	"field-mapper/internal/match"
	"field-mapper/internal/schema"
	"field-mapper/internal/suggest"
)

// Resolver performs the resolution pipeline. It holds no per-run state and
// may serve concurrent runs.
type Resolver struct {
	source     suggest.Source
	classifier classify.Classifier
	filter     suggest.Filter
	logger     *zap.Logger
	now        func() time.Time
	newID      func() uuid.UUID
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithClassifier replaces the default classification policy.
func WithClassifier(c classify.Classifier) Option {
	return func(r *Resolver) { r.classifier = c }
}

// WithFilter restricts the source columns sent to the suggestion source.
// Filtered-out columns still take part in the result, as unresolved.
func WithFilter(f suggest.Filter) Option {
	return func(r *Resolver) { r.filter = f }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithClock sets the time source used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithIDGenerator sets the generator of run identifiers.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(r *Resolver) { r.newID = gen }
}

// NewResolver creates a Resolver. A nil source behaves like suggest.Noop.
func NewResolver(source suggest.Source, opts ...Option) *Resolver {
	r := &Resolver{
		source:     source,
		classifier: classify.DefaultPolicy{},
		now:        time.Now,
		newID:      uuid.New,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.source == nil {
		r.source = suggest.Noop{}
	}

	if r.classifier == nil {
		r.classifier = classify.DefaultPolicy{}
	}

	r.logger = logging.OrNop(r.logger).Named("resolver")

	return r
}

// Resolve runs the pipeline for one source/target pair.
//
// It fails only for nil schemas or when ctx is cancelled while suggestions
// are fetched. Every suggestion failure degrades to zero candidates.
func (r *Resolver) Resolve(ctx context.Context, source, target *schema.Schema, weights config.Weights) (*Result, error) {
	if source == nil || target == nil {
		return nil, errors.New("resolve: source and target schemas are required")
	}

	classified, err := classify.Schema(r.classifier, target)
	if err != nil {
		return nil, fmt.Errorf("resolve: classify target: %w", err)
	}

	res := &Result{
		RunID:      r.newID(),
		Source:     source,
		Target:     classified,
		Accepted:   []match.ScoredMapping{},
		Review:     []match.ScoredMapping{},
		Unresolved: []string{},
		Unused:     []string{},
		Weights:    weights,
	}

	log := r.logger.With(
		zap.String("run_id", res.RunID.String()),
		zap.String("source", source.Name()),
		zap.String("target", target.Name()),
	)

	if classified.Len() == 0 {
		res.Diagnostics.AddInfo(diagnostic.CodeEmptyTarget, "target schema has no columns", "", "")
		res.Unresolved = append(res.Unresolved, source.Names()...)
		res.GeneratedAt = r.now()

		log.Info("target schema is empty, every source column is unresolved",
			zap.Int("unresolved", len(res.Unresolved)))

		return res, nil
	}

	candidates, err := r.suggest(ctx, source, classified)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("resolve: %w", ctxErr)
		}

		log.Warn("suggestion source failed, continuing without candidates", zap.Error(err))
		res.Diagnostics.AddError(diagnostic.CodeSuggestFailed, err.Error(), "", "")
		candidates = nil
	}

	ranked := r.rank(candidates, source, classified, &res.Diagnostics)
	ranked.Sort()
	r.walk(ranked, classified, weights, res)

	used := make(map[string]bool, 2*(len(res.Accepted)+len(res.Review)))
	usedTargets := make(map[string]bool, len(res.Accepted)+len(res.Review))

	for _, m := range res.Mappings() {
		used[schema.FoldName(m.Source)] = true
		usedTargets[schema.FoldName(m.Target)] = true
	}

	for _, name := range source.Names() {
		if !used[schema.FoldName(name)] {
			res.Unresolved = append(res.Unresolved, name)
		}
	}

	for _, name := range classified.Names() {
		if !usedTargets[schema.FoldName(name)] {
			res.Unused = append(res.Unused, name)
		}
	}

	res.GeneratedAt = r.now()

	log.Info("resolution complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(res.Accepted)),
		zap.Int("needs_review", len(res.Review)),
		zap.Int("unresolved", len(res.Unresolved)),
		zap.Int("unused", len(res.Unused)))

	return res, nil
}

// suggest calls the source and turns a panic into an error.
func (r *Resolver) suggest(ctx context.Context, source, target *schema.Schema) (candidates []match.Candidate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			candidates = nil
			err = fmt.Errorf("suggestion source panicked: %v", rec)
		}
	}()

	return r.source.Suggest(ctx, source, target, r.filter)
}

// rank keeps candidates whose columns exist and whose source passes the
// filter, rewrites their names to the schema spelling and attaches the
// target priority.
func (r *Resolver) rank(
	candidates []match.Candidate,
	source, target *schema.Schema,
	diags *diagnostic.Diagnostics,
) match.RankedList {
	ranked := make(match.RankedList, 0, len(candidates))

	for _, c := range candidates {
		if !c.Valid() {
			diags.AddWarning(diagnostic.CodeInvalidCandidate, "candidate is missing a column name", c.Source, c.Target)
			continue
		}

		srcCol, ok := source.Lookup(c.Source)
		if !ok {
			diags.AddWarning(diagnostic.CodeUnknownSource, "source column does not exist", c.Source, c.Target)
			continue
		}

		if !r.filter.Allows(srcCol.Name) {
			diags.AddWarning(diagnostic.CodeFilteredSource, "source column is excluded by the filter", srcCol.Name, c.Target)
			continue
		}

		tgtCol, ok := target.Lookup(c.Target)
		if !ok {
			diags.AddWarning(diagnostic.CodeUnknownTarget, "target column does not exist", c.Source, c.Target)
			continue
		}

		tgtCol = classify.Column(r.classifier, tgtCol)

		c.Source = srcCol.Name
		c.Target = tgtCol.Name
		c.Confidence = match.ClampConfidence(c.Confidence)

		ranked = append(ranked, match.Ranked{Candidate: c, Priority: classify.Priority(tgtCol)})
	}

	return ranked
}

// walk performs the greedy one-pass assignment over a sorted list. Discarded
// candidates do not take their columns.
func (r *Resolver) walk(ranked match.RankedList, target *schema.Schema, w config.Weights, res *Result) {
	usedSources := make(map[string]string)
	usedTargets := make(map[string]string)

	for _, cand := range ranked {
		srcKey := schema.FoldName(cand.Source)
		tgtKey := schema.FoldName(cand.Target)

		if winner, taken := usedSources[srcKey]; taken {
			res.Diagnostics.AddInfo(diagnostic.CodeSourceTaken,
				fmt.Sprintf("source already mapped to %q", winner), cand.Source, cand.Target)

			continue
		}

		if winner, taken := usedTargets[tgtKey]; taken {
			res.Diagnostics.AddInfo(diagnostic.CodeTargetTaken,
				fmt.Sprintf("target already mapped from %q", winner), cand.Source, cand.Target)

			continue
		}

		tgtCol, _ := target.Lookup(cand.Target)
		scored := match.Score(cand, tgtCol, w.Similarity, w.AcceptThreshold, w.ReviewThreshold)

		switch scored.Tier {
		case match.TierAccepted:
			res.Accepted = append(res.Accepted, scored)
		case match.TierReview:
			res.Review = append(res.Review, scored)
		default:
			res.Diagnostics.AddInfo(diagnostic.CodeBelowReview,
				fmt.Sprintf("adjusted confidence %.4f below review threshold %.4f",
					scored.AdjustedConfidence, w.ReviewThreshold),
				cand.Source, cand.Target)

			continue
		}

		usedSources[srcKey] = cand.Target
		usedTargets[tgtKey] = cand.Source
	}
}
