package match

import (
	"strings"
	"unicode"
)

// noisePrefixes are leading name tokens that carry no meaning for matching:
// table-script conventions and the platform's default publisher prefix.
var noisePrefixes = map[string]bool{
	"new": true,
	"tbl": true,
	"col": true,
	"fld": true,
}

// noiseSuffixes are stripped from normalized names, longest first.
var noiseSuffixes = []string{"timestamp", "code", "ids", "utc", "id", "on", "at", "dt"}

// NormalizeName normalizes a column name for fuzzy matching:
//  1. split on separators and CamelCase boundaries
//  2. drop a leading publisher or table-script prefix token
//  3. lowercase and join
func NormalizeName(s string) string {
	tokens := TokenizeName(s)
	if len(tokens) > 1 && isNoisePrefix(tokens[0]) {
		tokens = tokens[1:]
	}

	return strings.Join(tokens, "")
}

// NormalizeNameWithSuffixStrip normalizes and strips one common suffix such as
// "id" or "on". Short names are left alone.
func NormalizeNameWithSuffixStrip(s string) string {
	normalized := NormalizeName(s)

	for _, suffix := range noiseSuffixes {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix)+2 {
			return strings.TrimSuffix(normalized, suffix)
		}
	}

	return normalized
}

// TokenizeName splits a name into lowercase tokens.
// Examples:
//   - "CustomerID" -> ["customer", "id"]
//   - "first_name" -> ["first", "name"]
//   - "XMLPayload" -> ["xml", "payload"]
func TokenizeName(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a CamelCase boundary before position i.
func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if isSeparator(prev) {
		return false
	}

	// "orderID" splits before 'I'.
	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser" splits before 'P'.
	return unicode.IsUpper(r) && unicode.IsUpper(prev) &&
		i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// isNoisePrefix matches the listed prefixes and generated publisher prefixes
// of the form "cr" followed by an alphanumeric run containing a digit.
func isNoisePrefix(token string) bool {
	if noisePrefixes[token] {
		return true
	}

	if !strings.HasPrefix(token, "cr") || len(token) < 5 || len(token) > 8 {
		return false
	}

	return strings.ContainsAny(token[2:], "0123456789")
}
