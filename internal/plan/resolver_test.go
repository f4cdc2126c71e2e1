package plan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"field-mapper/internal/config"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/match"
	"field-mapper/internal/schema"
	"field-mapper/internal/suggest"
)

// staticSource returns fixed candidates or a fixed error.
type staticSource struct {
	candidates []match.Candidate
	err        error
	calls      int
	filter     suggest.Filter
}

func (s *staticSource) Suggest(_ context.Context, _, _ *schema.Schema, filter suggest.Filter) ([]match.Candidate, error) {
	s.calls++
	s.filter = filter

	return s.candidates, s.err
}

type panicSource struct{}

func (panicSource) Suggest(context.Context, *schema.Schema, *schema.Schema, suggest.Filter) ([]match.Candidate, error) {
	panic("boom")
}

// blockingSource waits for ctx like a slow network call.
type blockingSource struct{}

func (blockingSource) Suggest(ctx context.Context, _, _ *schema.Schema, _ suggest.Filter) ([]match.Candidate, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func sourceTable() *schema.Schema {
	return schema.MustNew("dbo.Customer", schema.OriginParsedScript, []schema.Column{
		{Name: "CustomerID", Type: "int"},
		{Name: "FullName", Type: "nvarchar"},
		{Name: "Email", Type: "nvarchar"},
		{Name: "CreatedDate", Type: "datetime"},
		{Name: "Status", Type: "int"},
	})
}

func targetEntity() *schema.Schema {
	return schema.MustNew("account", schema.OriginPlatformExport, []schema.Column{
		{Name: "accountid", Type: "uniqueidentifier"},
		{Name: "name", Type: "nvarchar"},
		{Name: "emailaddress1", Type: "nvarchar"},
		{Name: "createdon", Type: "datetime"},
		{Name: "statecode", Type: "state"},
		{Name: "description", Type: "nvarchar"},
	})
}

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedID() uuid.UUID {
	return uuid.MustParse("8f14e45f-ceea-467f-a8a5-6c1f5d2e0b11")
}

func newTestResolver(src suggest.Source, opts ...Option) *Resolver {
	base := []Option{
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(fixedID),
	}

	return NewResolver(src, append(base, opts...)...)
}

func cand(source, target string, confidence float64) match.Candidate {
	return match.NewCandidate(source, target, confidence)
}

func resolve(t *testing.T, src suggest.Source, source, target *schema.Schema, w config.Weights) *Result {
	t.Helper()

	res, err := newTestResolver(src).Resolve(context.Background(), source, target, w)
	require.NoError(t, err)
	require.NotNil(t, res)

	return res
}

func sources(ms []match.ScoredMapping) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Source)
	}

	return out
}

// assertPartition checks the structural guarantees every Result must satisfy.
func assertPartition(t *testing.T, res *Result) {
	t.Helper()

	seen := map[string]int{}
	for _, m := range res.Mappings() {
		seen[schema.FoldName(m.Source)]++
	}
	for _, name := range res.Unresolved {
		seen[schema.FoldName(name)]++
	}

	for _, name := range res.Source.Names() {
		assert.Equal(t, 1, seen[schema.FoldName(name)],
			"source %q must appear exactly once\n%s", name, spew.Sdump(res))
	}
	assert.Len(t, seen, res.Source.Len(), "no names outside the source schema\n%s", spew.Sdump(res))

	targets := map[string]int{}
	for _, m := range res.Mappings() {
		targets[schema.FoldName(m.Target)]++
		assert.True(t, res.Target.Has(m.Target), "target %q must exist", m.Target)
	}
	for _, name := range res.Unused {
		targets[schema.FoldName(name)]++
	}

	for _, name := range res.Target.Names() {
		assert.Equal(t, 1, targets[schema.FoldName(name)],
			"target %q must appear exactly once\n%s", name, spew.Sdump(res))
	}

	for _, m := range res.Accepted {
		assert.Equal(t, match.TierAccepted, m.Tier)
		assert.GreaterOrEqual(t, m.AdjustedConfidence, res.Weights.AcceptThreshold)
	}
	for _, m := range res.Review {
		assert.Equal(t, match.TierReview, m.Tier)
		assert.GreaterOrEqual(t, m.AdjustedConfidence, res.Weights.ReviewThreshold)
		assert.Less(t, m.AdjustedConfidence, res.Weights.AcceptThreshold)
	}
}

func TestResolve_EmptyTarget(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{cand("FullName", "name", 0.9)}}
	empty := schema.MustNew("empty", schema.OriginPlatformQuery, nil)

	res := resolve(t, src, sourceTable(), empty, config.DefaultWeights())

	assert.Empty(t, res.Accepted)
	assert.Empty(t, res.Review)
	assert.Equal(t, sourceTable().Names(), res.Unresolved)
	assert.Empty(t, res.Unused)
	assert.Zero(t, src.calls, "source is not consulted for an empty target")
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeEmptyTarget), 1)
	assertPartition(t, res)
}

func TestResolve_SameTargetHigherConfidenceWins(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{
		cand("Email", "name", 0.80),
		cand("FullName", "name", 0.95),
	}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	require.Len(t, res.Accepted, 1, spew.Sdump(res))
	assert.Equal(t, "FullName", res.Accepted[0].Source)
	assert.Equal(t, "name", res.Accepted[0].Target)
	assert.Contains(t, res.Unresolved, "Email")
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeTargetTaken), 1)
	assertPartition(t, res)
}

func TestResolve_CustomTargetScoring(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{cand("FullName", "name", 0.95)}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	require.Len(t, res.Accepted, 1)
	m := res.Accepted[0]
	assert.InDelta(t, 0.9975, m.AdjustedConfidence, 1e-9)
	assert.Equal(t, match.MatchTypeCustom, m.MatchType)
	assert.Equal(t, 0, m.TargetPriority)
	assertPartition(t, res)
}

func TestResolve_SystemTargetScoring(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{cand("CreatedDate", "createdon", 0.75)}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	require.Len(t, res.Accepted, 1)
	m := res.Accepted[0]
	assert.InDelta(t, 0.7125, m.AdjustedConfidence, 1e-9)
	assert.Equal(t, "system-field:created-on", m.MatchType)
	assert.Equal(t, 10, m.TargetPriority)
	assertPartition(t, res)
}

func TestResolve_LowerPriorityNumberWins(t *testing.T) {
	// Status would prefer statecode on confidence alone, but the custom
	// target sorts first.
	src := &staticSource{candidates: []match.Candidate{
		cand("Status", "statecode", 0.99),
		cand("Status", "description", 0.60),
	}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	m, ok := res.MappingFor("Status")
	require.True(t, ok, spew.Sdump(res))
	assert.Equal(t, "description", m.Target)
	assert.Equal(t, match.TierReview, m.Tier)
	assert.Contains(t, res.Unused, "statecode")
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeSourceTaken), 1)
	assertPartition(t, res)
}

func TestResolve_DiscardedCandidateDoesNotConsumeNames(t *testing.T) {
	// The custom candidate sorts first but falls below review; the system
	// candidate for the same source must still be considered.
	src := &staticSource{candidates: []match.Candidate{
		cand("CreatedDate", "description", 0.20),
		cand("CreatedDate", "createdon", 0.90),
	}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	m, ok := res.MappingFor("CreatedDate")
	require.True(t, ok, spew.Sdump(res))
	assert.Equal(t, "createdon", m.Target)
	assert.Contains(t, res.Unused, "description")
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeBelowReview), 1)
	assertPartition(t, res)
}

func TestResolve_Tiers(t *testing.T) {
	w := config.DefaultWeights()

	tests := []struct {
		name       string
		confidence float64
		target     string
		tier       match.Tier
	}{
		{"accepted custom", 0.70, "name", match.TierAccepted},
		{"review custom", 0.60, "name", match.TierReview},
		{"discarded custom", 0.40, "name", match.TierDiscarded},
		{"system pushed below accept", 0.72, "createdon", match.TierReview},
		{"system at review floor", 0.53, "createdon", match.TierReview},
		{"system discarded", 0.52, "createdon", match.TierDiscarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &staticSource{candidates: []match.Candidate{cand("FullName", tt.target, tt.confidence)}}
			res := resolve(t, src, sourceTable(), targetEntity(), w)

			m, ok := res.MappingFor("FullName")
			if tt.tier == match.TierDiscarded {
				assert.False(t, ok, spew.Sdump(res))
				assert.Contains(t, res.Unresolved, "FullName")
				assert.Contains(t, res.Unused, tt.target)
			} else {
				require.True(t, ok, spew.Sdump(res))
				assert.Equal(t, tt.tier, m.Tier)
			}
			assertPartition(t, res)
		})
	}
}

func TestResolve_SimilarityScaling(t *testing.T) {
	w := config.DefaultWeights()
	w.Similarity = 0.5

	src := &staticSource{candidates: []match.Candidate{cand("FullName", "name", 1.0)}}
	res := resolve(t, src, sourceTable(), targetEntity(), w)

	m, ok := res.MappingFor("FullName")
	require.True(t, ok)
	assert.InDelta(t, 0.525, m.AdjustedConfidence, 1e-9)
	assert.Equal(t, match.TierReview, m.Tier)
	assert.Equal(t, w, res.Weights)
}

func TestResolve_UnknownNamesDropped(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{
		cand("Phone", "telephone1", 0.9),
		cand("FullName", "fullname", 0.9),
		cand("", "name", 0.9),
		cand("Email", "emailaddress1", 0.9),
	}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	assert.Equal(t, []string{"Email"}, sources(res.Accepted))
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeUnknownSource), 1)
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeUnknownTarget), 1)
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeInvalidCandidate), 1)
	assertPartition(t, res)
}

func TestResolve_CanonicalisesNames(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{
		cand("fullname", "NAME", 0.9),
		cand("FULLNAME", "description", 0.95),
	}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	require.Len(t, res.Accepted, 1, spew.Sdump(res))
	assert.Equal(t, "FullName", res.Accepted[0].Source)
	assert.Equal(t, "description", res.Accepted[0].Target)
	assert.NotContains(t, res.Unresolved, "FullName")
	assertPartition(t, res)
}

func TestResolve_ConfidenceClamped(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{
		{Source: "FullName", Target: "name", Confidence: 7},
	}}

	res := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	require.Len(t, res.Accepted, 1)
	assert.InDelta(t, 1.0, res.Accepted[0].Confidence, 1e-9)
	assert.InDelta(t, 1.05, res.Accepted[0].AdjustedConfidence, 1e-9)
}

func TestResolve_NoopSource(t *testing.T) {
	res := resolve(t, nil, sourceTable(), targetEntity(), config.DefaultWeights())

	assert.Empty(t, res.Accepted)
	assert.Empty(t, res.Review)
	assert.Equal(t, sourceTable().Names(), res.Unresolved)
	assert.Equal(t, targetEntity().Names(), res.Unused)
	assert.Zero(t, res.Diagnostics.Len())
	assertPartition(t, res)
}

func TestResolve_SuggestErrorDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := &staticSource{err: errors.New("upstream unavailable")}

	r := newTestResolver(src, WithLogger(zap.New(core)))
	res, err := r.Resolve(context.Background(), sourceTable(), targetEntity(), config.DefaultWeights())
	require.NoError(t, err)

	assert.Empty(t, res.Mappings())
	assert.Equal(t, sourceTable().Names(), res.Unresolved)
	assert.True(t, res.Diagnostics.HasErrors())
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeSuggestFailed), 1)
	assert.Equal(t, 1, logs.FilterMessageSnippet("suggestion source failed").Len())
	assertPartition(t, res)
}

func TestResolve_PanicRecovered(t *testing.T) {
	res := resolve(t, panicSource{}, sourceTable(), targetEntity(), config.DefaultWeights())

	assert.Empty(t, res.Mappings())
	require.Len(t, res.Diagnostics.ByCode(diagnostic.CodeSuggestFailed), 1)
	assert.Contains(t, res.Diagnostics.Errors[0].Message, "boom")
	assertPartition(t, res)
}

func TestResolve_CancellationSurfaces(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := newTestResolver(blockingSource{}).Resolve(ctx, sourceTable(), targetEntity(), config.DefaultWeights())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, res)
}

func TestResolve_NilSchemas(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Resolve(context.Background(), nil, targetEntity(), config.DefaultWeights())
	require.Error(t, err)

	_, err = r.Resolve(context.Background(), sourceTable(), nil, config.DefaultWeights())
	require.Error(t, err)
}

func TestResolve_FilterPassedToSource(t *testing.T) {
	src := &staticSource{}
	r := newTestResolver(src, WithFilter(suggest.Filter{"FullName"}))

	res, err := r.Resolve(context.Background(), sourceTable(), targetEntity(), config.DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, suggest.Filter{"FullName"}, src.filter)
	assert.Equal(t, sourceTable().Names(), res.Unresolved)
}

func TestResolve_FilterExcludesUnrequestedSources(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{
		cand("Email", "emailaddress1", 0.95),
		cand("fullname", "name", 0.90),
	}}
	r := newTestResolver(src, WithFilter(suggest.Filter{"FullName"}))

	res, err := r.Resolve(context.Background(), sourceTable(), targetEntity(), config.DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, []string{"FullName"}, sources(res.Accepted), spew.Sdump(res))
	assert.Contains(t, res.Unresolved, "Email")
	assert.Contains(t, res.Unused, "emailaddress1")

	dropped := res.Diagnostics.ByCode(diagnostic.CodeFilteredSource)
	require.Len(t, dropped, 1)
	assert.Equal(t, "Email", dropped[0].Source)
	assertPartition(t, res)
}

func TestResolve_Idempotent(t *testing.T) {
	src := &staticSource{candidates: []match.Candidate{
		cand("FullName", "name", 0.93),
		cand("Email", "emailaddress1", 0.88),
		cand("CreatedDate", "createdon", 0.64),
		cand("Status", "statecode", 0.70),
		cand("CustomerID", "accountid", 0.40),
	}}

	first := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())
	second := resolve(t, src, sourceTable(), targetEntity(), config.DefaultWeights())

	assert.Equal(t, first.Accepted, second.Accepted)
	assert.Equal(t, first.Review, second.Review)
	assert.Equal(t, first.Unresolved, second.Unresolved)
	assert.Equal(t, first.Unused, second.Unused)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, fixedTime, first.GeneratedAt)

	assert.Equal(t, []string{"FullName", "Email"}, sources(first.Accepted))
	assert.Equal(t, []string{"CreatedDate", "Status"}, sources(first.Review))
	assert.Equal(t, []string{"CustomerID"}, first.Unresolved)
	assert.Equal(t, []string{"accountid", "description"}, first.Unused)
	assert.Equal(t, Summary{
		SourceColumns: 5, TargetColumns: 6,
		Accepted: 2, Review: 2, Unresolved: 1, Unused: 2,
	}, first.Summary())
	assertPartition(t, first)
}

func TestResolve_ClassifiesTarget(t *testing.T) {
	res := resolve(t, nil, sourceTable(), targetEntity(), config.DefaultWeights())

	col, ok := res.Target.Lookup("statecode")
	require.True(t, ok)
	assert.True(t, col.IsSystemField())
	assert.Equal(t, schema.CategoryState, col.SystemCategory())

	col, ok = res.Target.Lookup("description")
	require.True(t, ok)
	assert.True(t, col.Classified())
	assert.False(t, col.IsSystemField())
}

func TestResolve_RemoteWithoutArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"I could not find any mappings."}}]}`))
	}))
	t.Cleanup(srv.Close)

	remote, err := suggest.NewRemote(suggest.Options{
		Endpoint:         srv.URL,
		ResponseTextPath: "choices.0.message.content",
	})
	require.NoError(t, err)

	res := resolve(t, remote, sourceTable(), targetEntity(), config.DefaultWeights())

	assert.Empty(t, res.Mappings())
	assert.Equal(t, sourceTable().Names(), res.Unresolved)
	assertPartition(t, res)
}

func TestResolve_HeuristicSource(t *testing.T) {
	w := config.DefaultWeights()
	src := suggest.NewHeuristic(w, 0.45, 3)

	res := resolve(t, src, sourceTable(), targetEntity(), w)

	m, ok := res.MappingFor("Email")
	require.True(t, ok, spew.Sdump(res))
	assert.Equal(t, "emailaddress1", m.Target)
	assertPartition(t, res)
}
