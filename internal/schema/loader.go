package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk YAML form of a Schema.
//
//	name: account
//	origin: platform-export
//	columns:
//	  - name: accountid
//	    type: uniqueidentifier
//	    primary_identifier: true
//	  - name: createdon
//	    type: datetime
//	    classification:
//	      system_field: true
//	      category: created-on
type Document struct {
	Name    string   `yaml:"name"`
	Origin  Origin   `yaml:"origin"`
	Columns []Column `yaml:"columns"`
}

// LoadFile loads and parses a YAML schema document from the given path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse parses YAML data into a Schema.
func Parse(data []byte) (*Schema, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	return doc.Schema()
}

// Schema validates the document and builds the immutable Schema.
func (d Document) Schema() (*Schema, error) {
	return New(d.Name, d.Origin, d.Columns)
}

// Marshal serializes a Schema to YAML.
func Marshal(s *Schema) ([]byte, error) {
	return yaml.Marshal(Document{
		Name:    s.Name(),
		Origin:  s.Origin(),
		Columns: s.Columns(),
	})
}
