package suggest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"field-mapper/internal/match"
)

// ExtractArray returns the text between the first '[' and the last ']'
// inclusive. Models often wrap the array in prose or code fences.
func ExtractArray(text string) (string, error) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')

	if start < 0 || end < start {
		return "", ErrNoArray
	}

	return text[start : end+1], nil
}

// ParseCandidates extracts and decodes the candidate array from free text.
// Elements without both column names or without a numeric confidence are
// dropped; confidences are clamped into [0, 1].
func ParseCandidates(text string) ([]match.Candidate, error) {
	raw, err := ExtractArray(text)
	if err != nil {
		return nil, err
	}

	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: extracted array is not valid JSON", ErrResponseInvalid)
	}

	arr := gjson.Parse(raw)
	if !arr.IsArray() {
		return nil, fmt.Errorf("%w: extracted text is not an array", ErrResponseInvalid)
	}

	out := []match.Candidate{}

	arr.ForEach(func(_, item gjson.Result) bool {
		if c, ok := candidateFrom(item); ok {
			out = append(out, c)
		}

		return true
	})

	return out, nil
}

func candidateFrom(item gjson.Result) (match.Candidate, bool) {
	if !item.IsObject() {
		return match.Candidate{}, false
	}

	conf, ok := confidenceOf(item.Get("confidence"))
	if !ok {
		return match.Candidate{}, false
	}

	c := match.NewCandidate(
		firstString(item, "source", "source_column", "sourceColumn"),
		firstString(item, "target", "target_column", "targetColumn"),
		conf,
	)
	if !c.Valid() {
		return match.Candidate{}, false
	}

	c.Transformation = strings.TrimSpace(firstString(item, "transformation", "transform"))
	c.Rationale = strings.TrimSpace(firstString(item, "rationale", "reason"))

	return c, true
}

func confidenceOf(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, false
		}

		return v, true
	default:
		return 0, false
	}
}

// firstString returns the first key present with a string value.
func firstString(item gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := item.Get(k); v.Type == gjson.String {
			return v.Str
		}
	}

	return ""
}
