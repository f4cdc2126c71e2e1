package match

import (
	"fmt"
	"strings"
)

// TypeFamily groups declared column types from both sides of a mapping.
type TypeFamily int

const (
	FamilyUnknown TypeFamily = iota
	FamilyText
	FamilyInteger
	FamilyDecimal
	FamilyBoolean
	FamilyDateTime
	FamilyIdentifier
	FamilyChoice
	FamilyLookup
	FamilyBinary
)

// String returns a human-readable family name.
func (f TypeFamily) String() string {
	switch f {
	case FamilyText:
		return "text"
	case FamilyInteger:
		return "integer"
	case FamilyDecimal:
		return "decimal"
	case FamilyBoolean:
		return "boolean"
	case FamilyDateTime:
		return "datetime"
	case FamilyIdentifier:
		return "identifier"
	case FamilyChoice:
		return "choice"
	case FamilyLookup:
		return "lookup"
	case FamilyBinary:
		return "binary"
	default:
		return "unknown"
	}
}

var typeFamilies = map[string]TypeFamily{
	"char": FamilyText, "nchar": FamilyText, "varchar": FamilyText, "nvarchar": FamilyText,
	"text": FamilyText, "ntext": FamilyText, "string": FamilyText, "memo": FamilyText,
	"clob": FamilyText, "varchar2": FamilyText, "nvarchar2": FamilyText,
	"email": FamilyText, "phone": FamilyText, "url": FamilyText,

	"int": FamilyInteger, "integer": FamilyInteger, "smallint": FamilyInteger,
	"tinyint": FamilyInteger, "bigint": FamilyInteger, "wholenumber": FamilyInteger,

	"decimal": FamilyDecimal, "numeric": FamilyDecimal, "number": FamilyDecimal,
	"money": FamilyDecimal, "smallmoney": FamilyDecimal, "float": FamilyDecimal,
	"real": FamilyDecimal, "double": FamilyDecimal,

	"bit": FamilyBoolean, "bool": FamilyBoolean, "boolean": FamilyBoolean, "twooptions": FamilyBoolean,

	"date": FamilyDateTime, "datetime": FamilyDateTime, "datetime2": FamilyDateTime,
	"smalldatetime": FamilyDateTime, "datetimeoffset": FamilyDateTime, "timestamp": FamilyDateTime,
	"dateonly": FamilyDateTime, "dateandtime": FamilyDateTime,

	"uniqueidentifier": FamilyIdentifier, "uuid": FamilyIdentifier, "guid": FamilyIdentifier,

	"picklist": FamilyChoice, "optionset": FamilyChoice, "choice": FamilyChoice,
	"state": FamilyChoice, "status": FamilyChoice, "multiselectpicklist": FamilyChoice,

	"lookup": FamilyLookup, "owner": FamilyLookup, "customer": FamilyLookup,

	"binary": FamilyBinary, "varbinary": FamilyBinary, "image": FamilyBinary,
	"blob": FamilyBinary, "file": FamilyBinary,
}

// baseType strips size facets and case: "NVARCHAR(50)" -> "nvarchar".
func baseType(declared string) string {
	t := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexAny(t, "( "); i >= 0 {
		t = t[:i]
	}

	return t
}

// FamilyOf classifies a declared type.
func FamilyOf(declared string) TypeFamily {
	return typeFamilies[baseType(declared)]
}

// TypeCompatibility represents how directly a source value fits a target column.
type TypeCompatibility int

const (
	// TypeIncompatible means no sensible conversion exists.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means a custom transformation is required.
	TypeNeedsTransform
	// TypeConvertible means a standard conversion exists (e.g. int -> decimal).
	TypeConvertible
	// TypeAssignable means both types are in the same family.
	TypeAssignable
	// TypeIdentical means the declared base types are equal.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Score maps the compatibility level into [0, 1].
func (c TypeCompatibility) Score() float64 {
	switch c {
	case TypeIdentical:
		return 1.0
	case TypeAssignable:
		return 0.9
	case TypeConvertible:
		return 0.7
	case TypeNeedsTransform:
		return 0.4
	default:
		return 0.0
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
	SourceType    string
	TargetType    string
}

// convertible lists family pairs with a standard, lossless-enough conversion.
var convertible = map[[2]TypeFamily]bool{
	{FamilyInteger, FamilyDecimal}:    true,
	{FamilyDecimal, FamilyInteger}:    true,
	{FamilyInteger, FamilyChoice}:     true,
	{FamilyBoolean, FamilyChoice}:     true,
	{FamilyIdentifier, FamilyLookup}:  true,
	{FamilyLookup, FamilyIdentifier}:  true,
	{FamilyInteger, FamilyBoolean}:    true,
	{FamilyIdentifier, FamilyText}:    true,
	{FamilyDateTime, FamilyText}:      true,
	{FamilyInteger, FamilyText}:       true,
	{FamilyDecimal, FamilyText}:       true,
	{FamilyChoice, FamilyText}:        true,
	{FamilyText, FamilyChoice}:        true,
	{FamilyBoolean, FamilyText}:       true,
	{FamilyChoice, FamilyInteger}:     true,
}

// ScoreTypeCompatibility determines how a source declared type fits a target
// declared type.
func ScoreTypeCompatibility(source, target string) TypeCompatibilityResult {
	res := TypeCompatibilityResult{SourceType: source, TargetType: target}

	sb, tb := baseType(source), baseType(target)
	sf, tf := FamilyOf(source), FamilyOf(target)

	switch {
	case sb == "" || tb == "":
		res.Compatibility = TypeNeedsTransform
		res.Reason = "type information unavailable"
	case sb == tb:
		res.Compatibility = TypeIdentical
		res.Reason = "types are identical"
	case sf == FamilyUnknown || tf == FamilyUnknown:
		res.Compatibility = TypeNeedsTransform
		res.Reason = fmt.Sprintf("unrecognized type %q or %q", source, target)
	case sf == tf:
		res.Compatibility = TypeAssignable
		res.Reason = "same type family: " + sf.String()
	case convertible[[2]TypeFamily{sf, tf}]:
		res.Compatibility = TypeConvertible
		res.Reason = fmt.Sprintf("%s converts to %s", sf, tf)
	case tf == FamilyText || sf == FamilyText:
		res.Compatibility = TypeNeedsTransform
		res.Reason = fmt.Sprintf("%s to %s requires parsing or formatting", sf, tf)
	default:
		res.Compatibility = TypeIncompatible
		res.Reason = fmt.Sprintf("%s is not compatible with %s", sf, tf)
	}

	return res
}
