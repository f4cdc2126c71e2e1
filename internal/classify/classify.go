package classify

import (
	"strings"

	"field-mapper/internal/schema"
)

// Classifier decides whether a column is a platform system field.
// declaredType is advisory; the default policy ignores it.
type Classifier interface {
	Classify(name, declaredType string) schema.Classification
}

// knownFields maps folded platform field names to their category.
var knownFields = map[string]schema.Category{
	"createdon":                 schema.CategoryCreatedOn,
	"createdby":                 schema.CategoryCreatedBy,
	"modifiedon":                schema.CategoryModifiedOn,
	"modifiedby":                schema.CategoryModifiedBy,
	"overriddencreatedon":       schema.CategoryOverriddenCreatedOn,
	"createdonbehalfby":         schema.CategoryCreatedOnBehalfBy,
	"modifiedonbehalfby":        schema.CategoryModifiedOnBehalfBy,
	"statecode":                 schema.CategoryState,
	"statuscode":                schema.CategoryStatus,
	"ownerid":                   schema.CategoryOwner,
	"owneridtype":               schema.CategoryOwner,
	"owninguser":                schema.CategoryOwningUser,
	"owningteam":                schema.CategoryOwningTeam,
	"owningbusinessunit":        schema.CategoryOwningBusinessUnit,
	"versionnumber":             schema.CategoryVersionNumber,
	"importsequencenumber":      schema.CategoryImportSequenceNumber,
	"timezoneruleversionnumber": schema.CategoryTimeZoneRuleVersion,
	"utcconversiontimezonecode": schema.CategoryUTCConversionTimeZoneCode,
}

// vendorPrefixes are publisher namespaces reserved by the platform vendor.
// Longer prefixes are listed before the shorter ones they extend.
var vendorPrefixes = []string{
	"msdynmkt_",
	"msdynce_",
	"msdyn_",
	"msevtmgt_",
	"msfp_",
	"mspp_",
	"adx_",
}

// DefaultPolicy is the dictionary-then-prefix classifier.
type DefaultPolicy struct{}

// Classify implements Classifier.
func (DefaultPolicy) Classify(name, _ string) schema.Classification {
	key := schema.FoldName(name)

	if cat, ok := knownFields[key]; ok {
		return schema.Classification{SystemField: true, Category: cat}
	}

	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(key, prefix) {
			return schema.Classification{SystemField: true, Category: schema.CategoryOther}
		}
	}

	return schema.Custom
}

// Classify runs the default policy on a column name.
func Classify(name, declaredType string) (bool, schema.Category) {
	cl := DefaultPolicy{}.Classify(name, declaredType)
	return cl.SystemField, cl.Category
}

// Column returns col with a classification attached, keeping any classification
// ingestion already supplied.
func Column(c Classifier, col schema.Column) schema.Column {
	if col.Classified() {
		return col
	}

	if c == nil {
		c = DefaultPolicy{}
	}

	return col.WithClassification(c.Classify(col.Name, col.Type))
}

// Schema returns a copy of s with every column classified.
func Schema(c Classifier, s *schema.Schema) (*schema.Schema, error) {
	return s.Map(func(col schema.Column) schema.Column {
		return Column(c, col)
	})
}
