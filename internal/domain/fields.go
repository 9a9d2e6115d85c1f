// Package domain defines the persistence models for users, spaces, notes,
// and comments. This file contains the dynamic-schema building blocks: the
// closed set of field types a space schema may use, per-type options, and
// the value container stored on notes.
package domain

// FieldType enumerates the data types a space field may declare. The set is
// closed: code that branches on a FieldType should switch exhaustively over
// these constants so that adding a type is a compile-visible change.
type FieldType string

const (
	// FieldTypeString is free-form text.
	FieldTypeString FieldType = "string"
	// FieldTypeSelect is a single choice from the "values" option.
	FieldTypeSelect FieldType = "select"
	// FieldTypeTags is a comma-separated list of free-form tags.
	FieldTypeTags FieldType = "tags"
	// FieldTypeUser references a space member by username.
	FieldTypeUser FieldType = "user"
	// FieldTypeInt is a whole number.
	FieldTypeInt FieldType = "int"
	// FieldTypeFloat is a decimal number.
	FieldTypeFloat FieldType = "float"
	// FieldTypeImage references an image attachment with a preview.
	FieldTypeImage FieldType = "image"
)

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeSelect, FieldTypeTags, FieldTypeUser,
		FieldTypeInt, FieldTypeFloat, FieldTypeImage:
		return true
	}
	return false
}

// FieldOption names a per-type configuration key in SpaceField.Options.
type FieldOption string

const (
	// OptionValues lists the allowed choices for select fields.
	OptionValues FieldOption = "values"
	// OptionMin is the lower bound for numeric fields.
	OptionMin FieldOption = "min"
	// OptionMax is the upper bound for numeric fields.
	OptionMax FieldOption = "max"
	// OptionMaxWidth caps the preview width for image fields.
	OptionMaxWidth FieldOption = "max_width"
)

// FieldOptions holds type-specific configuration for a field definition.
// Keys depend on the field type (e.g. OptionValues for select, OptionMin and
// OptionMax for int/float, OptionMaxWidth for image).
type FieldOptions map[FieldOption]any

// SpaceField is a single field definition in a space schema.
//
// ID must be unique within the owning space. Default is used when an
// optional field is omitted from input; it must be consistent with Type.
type SpaceField struct {
	ID       string       `json:"id"`
	Type     FieldType    `json:"type"`
	Required bool         `json:"required"`
	Options  FieldOptions `json:"options,omitempty"`
	Default  any          `json:"default,omitempty"`
}

// SpaceFields is the ordered field schema of a space. Order is display order
// and drives deterministic validation error reporting.
type SpaceFields []SpaceField

// Find returns the field definition with the given id, if present.
func (fs SpaceFields) Find(id string) (SpaceField, bool) {
	for _, f := range fs {
		if f.ID == id {
			return f, true
		}
	}
	return SpaceField{}, false
}

// FieldValues maps field ids to validated, coerced values as stored on a
// note. It is a snapshot shaped by the space schema at creation time, not a
// live reference: later schema edits do not rewrite stored values.
type FieldValues map[string]any
