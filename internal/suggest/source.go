package suggest

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"field-mapper/internal/config"
	"field-mapper/internal/match"
	"field-mapper/internal/schema"
)

// Source produces candidate pairings. Implementations must honour ctx and
// must be safe to call from concurrent runs.
type Source interface {
	Suggest(ctx context.Context, source, target *schema.Schema, filter Filter) ([]match.Candidate, error)
}

// Filter restricts which source columns are of interest. An empty Filter
// allows every column.
type Filter []string

// Allows reports whether the named source column passes the filter.
func (f Filter) Allows(name string) bool {
	if len(f) == 0 {
		return true
	}

	key := schema.FoldName(name)
	for _, n := range f {
		if schema.FoldName(n) == key {
			return true
		}
	}

	return false
}

// Columns returns the columns of s that pass the filter, in schema order.
func (f Filter) Columns(s *schema.Schema) []schema.Column {
	cols := s.Columns()
	if len(f) == 0 {
		return cols
	}

	out := cols[:0]
	for _, col := range cols {
		if f.Allows(col.Name) {
			out = append(out, col)
		}
	}

	return out
}

// Noop is the Source used when no similarity service is configured.
type Noop struct{}

// Suggest implements Source and always returns no candidates.
func (Noop) Suggest(context.Context, *schema.Schema, *schema.Schema, Filter) ([]match.Candidate, error) {
	return nil, nil
}

// New builds the Source selected by cfg.
func New(cfg config.Suggester, weights config.Weights, logger *zap.Logger) (Source, error) {
	switch kind := cfg.ResolvedKind(); kind {
	case config.KindNone:
		return Noop{}, nil
	case config.KindHeuristic:
		return NewHeuristic(weights, cfg.MinScore, cfg.MaxPerSource), nil
	case config.KindRemote:
		return NewRemote(Options{
			Endpoint:         cfg.Endpoint,
			Model:            cfg.Model,
			APIKey:           cfg.ResolveAPIKey(os.Getenv),
			MaxRetries:       cfg.MaxRetries,
			BaseDelay:        cfg.BaseDelay,
			Timeout:          cfg.Timeout,
			ResponseTextPath: cfg.ResponseTextPath,
			Headers:          cfg.Headers,
			ExtraBody:        cfg.ExtraBody,
			Logger:           logger,
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownKind, kind)
	}
}
