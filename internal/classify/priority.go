package classify

import "field-mapper/internal/schema"

// PriorityCustom is the rank of every custom field.
const PriorityCustom = 0

// categoryPriority ranks system fields: audit timestamps and authorship, then
// state/status, then ownership, then version/sequence counters, then the rest.
var categoryPriority = map[schema.Category]int{
	schema.CategoryCreatedOn:           10,
	schema.CategoryModifiedOn:          11,
	schema.CategoryOverriddenCreatedOn: 12,
	schema.CategoryCreatedBy:           13,
	schema.CategoryModifiedBy:          14,
	schema.CategoryCreatedOnBehalfBy:   15,
	schema.CategoryModifiedOnBehalfBy:  16,

	schema.CategoryState:  20,
	schema.CategoryStatus: 21,

	schema.CategoryOwner:              30,
	schema.CategoryOwningUser:         31,
	schema.CategoryOwningTeam:         32,
	schema.CategoryOwningBusinessUnit: 33,

	schema.CategoryVersionNumber:             40,
	schema.CategoryImportSequenceNumber:      41,
	schema.CategoryTimeZoneRuleVersion:       42,
	schema.CategoryUTCConversionTimeZoneCode: 43,

	schema.CategoryOther: PriorityOther,
}

// PriorityOther is the lowest rank, shared by vendor-prefixed fields.
const PriorityOther = 50

// Priority returns the resolution rank of a classified column.
// Unclassified columns are treated as custom.
func Priority(col schema.Column) int {
	if !col.IsSystemField() {
		return PriorityCustom
	}

	return CategoryPriority(col.SystemCategory())
}

// CategoryPriority returns the rank of a system-field category.
func CategoryPriority(cat schema.Category) int {
	if p, ok := categoryPriority[cat]; ok {
		return p
	}

	// A system field tagged "none" is still housekeeping.
	return PriorityOther
}
