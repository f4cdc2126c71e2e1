package schema

import (
	"fmt"
	"strings"
)

// Category is the closed taxonomy of platform system fields.
// CategoryNone marks a custom (business) column.
type Category int

const (
	CategoryNone Category = iota

	// Audit timestamps and authorship.
	CategoryCreatedOn
	CategoryCreatedBy
	CategoryModifiedOn
	CategoryModifiedBy
	CategoryOverriddenCreatedOn
	CategoryCreatedOnBehalfBy
	CategoryModifiedOnBehalfBy

	// Record state.
	CategoryState
	CategoryStatus

	// Ownership.
	CategoryOwner
	CategoryOwningUser
	CategoryOwningTeam
	CategoryOwningBusinessUnit

	// Version and sequence counters.
	CategoryVersionNumber
	CategoryImportSequenceNumber
	CategoryTimeZoneRuleVersion
	CategoryUTCConversionTimeZoneCode

	// CategoryOther covers vendor-namespaced and otherwise unranked system fields.
	CategoryOther

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryNone:                      "none",
	CategoryCreatedOn:                 "created-on",
	CategoryCreatedBy:                 "created-by",
	CategoryModifiedOn:                "modified-on",
	CategoryModifiedBy:                "modified-by",
	CategoryOverriddenCreatedOn:       "overridden-created-on",
	CategoryCreatedOnBehalfBy:         "created-on-behalf-by",
	CategoryModifiedOnBehalfBy:        "modified-on-behalf-by",
	CategoryState:                     "state",
	CategoryStatus:                    "status",
	CategoryOwner:                     "owner",
	CategoryOwningUser:                "owning-user",
	CategoryOwningTeam:                "owning-team",
	CategoryOwningBusinessUnit:        "owning-business-unit",
	CategoryVersionNumber:             "version-number",
	CategoryImportSequenceNumber:      "import-sequence-number",
	CategoryTimeZoneRuleVersion:       "time-zone-rule-version",
	CategoryUTCConversionTimeZoneCode: "utc-conversion-time-zone-code",
	CategoryOther:                     "other",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := CategoryNone; c < categoryCount; c++ {
		out = append(out, c)
	}

	return out
}

// String returns the kebab-case label of the category.
func (c Category) String() string {
	if c.Valid() {
		return categoryNames[c]
	}

	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is a member of the taxonomy.
func (c Category) Valid() bool {
	return c >= CategoryNone && c < categoryCount
}

// ParseCategory resolves a label produced by String. Matching ignores case
// and accepts underscores in place of dashes.
func ParseCategory(s string) (Category, error) {
	label := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if label == "" {
		return CategoryNone, nil
	}

	for i, name := range categoryNames {
		if name == label {
			return Category(i), nil
		}
	}

	return CategoryNone, fmt.Errorf("unknown system field category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid system field category %d", int(c))
	}

	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
