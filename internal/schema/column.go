package schema

import "slices"

// Classification is the system-field verdict attached to a target-side column.
type Classification struct {
	SystemField bool     `yaml:"system_field"`
	Category    Category `yaml:"category"`
}

// Custom is the classification of a business (non-system) column.
var Custom = Classification{SystemField: false, Category: CategoryNone}

// Consistent reports whether the system flag agrees with the category:
// system fields carry a category, custom columns carry CategoryNone.
func (c Classification) Consistent() bool {
	return c.Category.Valid() && c.SystemField == (c.Category != CategoryNone)
}

// Column describes one attribute of a schema.
type Column struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`

	// Optional size facets of the declared type.
	Length    *int `yaml:"length,omitempty"`
	Precision *int `yaml:"precision,omitempty"`
	Scale     *int `yaml:"scale,omitempty"`

	// Role flags.
	PrimaryIdentifier  bool `yaml:"primary_identifier,omitempty"`
	PrimaryDisplayName bool `yaml:"primary_display_name,omitempty"`
	Required           bool `yaml:"required,omitempty"`

	// Options is the enumerated value set, if the column has one.
	Options []string `yaml:"options,omitempty"`

	// Classification is nil until the column has been classified.
	Classification *Classification `yaml:"classification,omitempty"`
}

// Classified reports whether a classification is attached.
func (c Column) Classified() bool {
	return c.Classification != nil
}

// IsSystemField reports whether the column is a classified system field.
func (c Column) IsSystemField() bool {
	return c.Classification != nil && c.Classification.SystemField
}

// SystemCategory returns the attached category, or CategoryNone when unclassified.
func (c Column) SystemCategory() Category {
	if c.Classification == nil {
		return CategoryNone
	}

	return c.Classification.Category
}

// WithClassification returns a copy of c carrying cl.
func (c Column) WithClassification(cl Classification) Column {
	out := c.clone()
	out.Classification = &cl

	return out
}

// clone deep-copies the pointer and slice members so that no two Columns share
// backing storage.
func (c Column) clone() Column {
	out := c
	out.Length = cloneInt(c.Length)
	out.Precision = cloneInt(c.Precision)
	out.Scale = cloneInt(c.Scale)
	out.Options = slices.Clone(c.Options)

	if c.Classification != nil {
		cl := *c.Classification
		out.Classification = &cl
	}

	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
