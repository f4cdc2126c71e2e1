package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"field-mapper/internal/match"
	"field-mapper/internal/plan"
)

type palette struct {
	accepted, review, missing, heading func(a ...any) string
}

func newPalette(colored bool) palette {
	paint := func(attr color.Attribute) func(a ...any) string {
		c := color.New(attr)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c.SprintFunc()
	}

	return palette{
		accepted: paint(color.FgHiGreen),
		review:   paint(color.FgHiYellow),
		missing:  paint(color.FgHiRed),
		heading:  paint(color.Bold),
	}
}

// Table writes a summary of res: one row per mapping followed by the
// unresolved and unused column lists. ANSI colours are written only when
// colored is set.
func Table(w io.Writer, res *plan.Result, colored bool) error {
	s := res.Summary()
	p := newPalette(colored)

	fmt.Fprintf(w, "%s %s -> %s (run %s)\n",
		p.heading("Mapping"), res.Source.Name(), res.Target.Name(), res.RunID)

	table := tablewriter.NewWriter(w)
	table.Header("Source", "Target", "Confidence", "Adjusted", "Match type", "Tier")

	for _, m := range res.Mappings() {
		if err := table.Append(p.mappingRow(m)); err != nil {
			return fmt.Errorf("failed to add row for %s: %w", m.Source, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render mappings: %w", err)
	}

	fmt.Fprintf(w, "accepted %d, needs review %d, unresolved %d of %d source columns; %d of %d target columns unused\n",
		s.Accepted, s.Review, s.Unresolved, s.SourceColumns, s.Unused, s.TargetColumns)

	if len(res.Unresolved) > 0 {
		fmt.Fprintf(w, "%s %s\n", p.missing("unresolved:"), strings.Join(res.Unresolved, ", "))
	}

	if len(res.Unused) > 0 {
		fmt.Fprintf(w, "unused: %s\n", strings.Join(res.Unused, ", "))
	}

	for _, d := range res.Diagnostics.Errors {
		fmt.Fprintf(w, "%s %s\n", p.missing("error:"), d)
	}

	return nil
}

func (p palette) mappingRow(m match.ScoredMapping) []string {
	tier := m.Tier.String()

	switch m.Tier {
	case match.TierAccepted:
		tier = p.accepted(tier)
	case match.TierReview:
		tier = p.review(tier)
	}

	return []string{
		m.Source,
		m.Target,
		fmt.Sprintf("%.2f", m.Confidence),
		fmt.Sprintf("%.4f", m.AdjustedConfidence),
		m.MatchType,
		tier,
	}
}
