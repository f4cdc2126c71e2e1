package suggest

import (
	"field-mapper/internal/classify"
	"field-mapper/internal/schema"
)

// ColumnPayload is the wire form of one column in a similarity request.
type ColumnPayload struct {
	Name               string   `json:"name"`
	Type               string   `json:"type,omitempty"`
	Length             *int     `json:"length,omitempty"`
	Precision          *int     `json:"precision,omitempty"`
	Scale              *int     `json:"scale,omitempty"`
	Nullable           bool     `json:"nullable"`
	PrimaryIdentifier  bool     `json:"primary_identifier,omitempty"`
	PrimaryDisplayName bool     `json:"primary_display_name,omitempty"`
	Required           bool     `json:"required,omitempty"`
	Options            []string `json:"options,omitempty"`
	SystemField        bool     `json:"system_field,omitempty"`
	Category           string   `json:"category,omitempty"`
	Priority           *int     `json:"priority,omitempty"`
}

// Payload is the structured body of a similarity request.
type Payload struct {
	SourceTable         string          `json:"source_table"`
	TargetEntity        string          `json:"target_entity"`
	SourceColumns       []ColumnPayload `json:"source_columns"`
	TargetCustomColumns []ColumnPayload `json:"target_custom_columns"`
	TargetSystemColumns []ColumnPayload `json:"target_system_columns"`
	Guidance            []string        `json:"system_field_guidance"`
}

// systemFieldGuidance describes how source tables usually name the columns
// that feed each system-field category.
var systemFieldGuidance = []string{
	"created-on: CreatedDate, created_at, DateCreated, InsertDate, CreateTime",
	"modified-on: ModifiedDate, updated_at, LastModified, LastUpdate, ChangeDate",
	"created-by / modified-by: CreatedBy, InsertUser, UpdatedBy, LastModifiedUser; values are user references",
	"overridden-created-on: the original creation date of a migrated record, e.g. LegacyCreatedDate",
	"state / status: IsActive, Active, Status, StatusCode, RecordStatus, Deleted flags",
	"owner / owning-user / owning-team: OwnerID, AssignedTo, SalesRep, AccountManager",
	"owning-business-unit: BusinessUnit, Division, Branch, Region",
	"version-number / import-sequence-number: RowVersion, Version, ImportBatch, BatchNumber",
	"other: vendor-prefixed platform fields are rarely mapped; suggest them only on a strong match",
}

// BuildPayload assembles the request for the filtered source columns and all
// target columns, split into custom and system groups.
func BuildPayload(source, target *schema.Schema, filter Filter, c classify.Classifier) Payload {
	p := Payload{
		SourceTable:         source.Name(),
		TargetEntity:        target.Name(),
		SourceColumns:       []ColumnPayload{},
		TargetCustomColumns: []ColumnPayload{},
		TargetSystemColumns: []ColumnPayload{},
		Guidance:            systemFieldGuidance,
	}

	for _, col := range filter.Columns(source) {
		p.SourceColumns = append(p.SourceColumns, columnPayload(col))
	}

	for _, col := range target.Columns() {
		col = classify.Column(c, col)

		cp := columnPayload(col)
		cp.SystemField = col.IsSystemField()

		if !cp.SystemField {
			p.TargetCustomColumns = append(p.TargetCustomColumns, cp)
			continue
		}

		prio := classify.Priority(col)
		cp.Category = col.SystemCategory().String()
		cp.Priority = &prio
		p.TargetSystemColumns = append(p.TargetSystemColumns, cp)
	}

	return p
}

func columnPayload(col schema.Column) ColumnPayload {
	return ColumnPayload{
		Name:               col.Name,
		Type:               col.Type,
		Length:             col.Length,
		Precision:          col.Precision,
		Scale:              col.Scale,
		Nullable:           col.Nullable,
		PrimaryIdentifier:  col.PrimaryIdentifier,
		PrimaryDisplayName: col.PrimaryDisplayName,
		Required:           col.Required,
		Options:            col.Options,
	}
}
