package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes attached to resolution diagnostics.
const (
	CodeEmptyTarget      = "empty_target"
	CodeSuggestFailed    = "suggest_failed"
	CodeInvalidCandidate = "invalid_candidate"
	CodeUnknownSource    = "unknown_source"
	CodeFilteredSource   = "filtered_source"
	CodeUnknownTarget    = "unknown_target"
	CodeSourceTaken      = "source_taken"
	CodeTargetTaken      = "target_taken"
	CodeBelowReview      = "below_review"
)

// Diagnostics holds all diagnostic information from resolution.
type Diagnostics struct {
	Errors   []Diagnostic `yaml:"errors,omitempty"`
	Warnings []Diagnostic `yaml:"warnings,omitempty"`
	Infos    []Diagnostic `yaml:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `yaml:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `yaml:"code"`
	// Message is the human-readable description.
	Message string `yaml:"message"`
	// Source is the source column involved, if any.
	Source string `yaml:"source,omitempty"`
	// Target is the target column involved, if any.
	Target string `yaml:"target,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, source, target string) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, source, target))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, source, target string) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, source, target))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, source, target string) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, source, target))
}

func newDiagnostic(sev Severity, code, message, source, target string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Source:   source,
		Target:   target,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// ByCode returns every diagnostic with the given code, errors first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var subject string

	switch {
	case d.Source != "" && d.Target != "":
		subject = d.Source + " -> " + d.Target
	case d.Source != "":
		subject = d.Source
	case d.Target != "":
		subject = "-> " + d.Target
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if subject != "" {
		return subject + ": " + msg
	}

	return msg
}
