package schema

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrEmptyName is returned when a column has a blank name.
	ErrEmptyName = errors.New("column name is empty")
	// ErrDuplicateColumn is returned when two column names fold to the same key.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrInconsistentClassification is returned when a column's system flag
	// disagrees with its category.
	ErrInconsistentClassification = errors.New("inconsistent column classification")
)

// Origin tags where a schema came from and which side of the mapping it sits on.
type Origin string

const (
	OriginParsedScript   Origin = "parsed-script"
	OriginSpreadsheet    Origin = "spreadsheet"
	OriginPlatformExport Origin = "platform-export"
	OriginPlatformQuery  Origin = "platform-query"
)

// IsTarget reports whether the origin describes a business-platform entity.
func (o Origin) IsTarget() bool {
	return o == OriginPlatformExport || o == OriginPlatformQuery
}

// FoldName returns the case-insensitive lookup key for a column name.
func FoldName(name string) string {
	// A Caser carries state, so one is built per call.
	return cases.Fold().String(strings.TrimSpace(name))
}

// Schema is a named, ordered collection of uniquely named columns.
// The zero value is an empty schema.
type Schema struct {
	name    string
	origin  Origin
	columns []Column
	index   map[string]int
}

// New builds a Schema, copying columns. Names must be non-empty and unique
// under FoldName, and any attached classification must be consistent.
func New(name string, origin Origin, columns []Column) (*Schema, error) {
	s := &Schema{
		name:    name,
		origin:  origin,
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		key := FoldName(col.Name)
		if key == "" {
			return nil, fmt.Errorf("schema %q column %d: %w", name, i, ErrEmptyName)
		}

		if prev, ok := s.index[key]; ok {
			return nil, fmt.Errorf("schema %q: %w: %q and %q",
				name, ErrDuplicateColumn, s.columns[prev].Name, col.Name)
		}

		if cl := col.Classification; cl != nil && !cl.Consistent() {
			return nil, fmt.Errorf("schema %q column %q: %w: system_field=%t category=%s",
				name, col.Name, ErrInconsistentClassification, cl.SystemField, cl.Category)
		}

		s.index[key] = len(s.columns)
		s.columns = append(s.columns, col.clone())
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(name string, origin Origin, columns []Column) *Schema {
	s, err := New(name, origin, columns)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}

	return s.name
}

// Origin returns the provenance tag.
func (s *Schema) Origin() Origin {
	if s == nil {
		return ""
	}

	return s.origin
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}

	return len(s.columns)
}

// Columns returns a copy of the columns in declaration order.
func (s *Schema) Columns() []Column {
	if s == nil {
		return nil
	}

	out := make([]Column, len(s.columns))
	for i, col := range s.columns {
		out[i] = col.clone()
	}

	return out
}

// Names returns the column names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}

	out := make([]string, len(s.columns))
	for i, col := range s.columns {
		out[i] = col.Name
	}

	return out
}

// Lookup finds a column by name, ignoring case.
func (s *Schema) Lookup(name string) (Column, bool) {
	if s == nil {
		return Column{}, false
	}

	i, ok := s.index[FoldName(name)]
	if !ok {
		return Column{}, false
	}

	return s.columns[i].clone(), true
}

// Has reports whether a column with the given name exists, ignoring case.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}

	_, ok := s.index[FoldName(name)]

	return ok
}

// Map returns a new Schema whose columns are fn applied to each column of s.
// fn must not rename columns.
func (s *Schema) Map(fn func(Column) Column) (*Schema, error) {
	cols := s.Columns()
	for i := range cols {
		cols[i] = fn(cols[i])
	}

	return New(s.Name(), s.Origin(), cols)
}
