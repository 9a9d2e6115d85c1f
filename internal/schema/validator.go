// Package schema validates and coerces free-form note input against a
// space's field schema. Validation is CPU-only and depends solely on the
// schema value passed in, never on storage.
//
// The validator is deliberately permissive about option sets: select values
// are not checked against the configured choices and user references are not
// checked against space membership. Only presence and type coercion are
// enforced.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacenote/spacenote/internal/domain"
)

// FieldError reports a validation failure for a single field. It always
// identifies the offending field id so callers can surface actionable
// messages.
type FieldError struct {
	FieldID string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.FieldID, e.Message)
}

// Validate checks raw input against the ordered field schema and returns the
// coerced values to store on a note.
//
// Per field definition, in schema order:
//   - required and absent: fail with a *FieldError naming the field.
//   - absent and optional: the field's configured default is used.
//   - present: the raw string is coerced per the field type.
//
// Raw keys with no matching field definition are dropped; the schema is
// authoritative for which fields a note may carry.
func Validate(fields domain.SpaceFields, raw map[string]string) (domain.FieldValues, error) {
	out := make(domain.FieldValues, len(fields))

	for _, f := range fields {
		rawValue, present := raw[f.ID]

		if !present {
			if f.Required {
				return nil, &FieldError{FieldID: f.ID, Message: "required field is missing"}
			}
			out[f.ID] = f.Default
			continue
		}

		v, err := coerce(f, rawValue)
		if err != nil {
			return nil, err
		}
		out[f.ID] = v
	}

	return out, nil
}

// coerce converts a raw string to the typed value for a single field.
// The switch is exhaustive over domain.FieldType.
func coerce(f domain.SpaceField, raw string) (any, error) {
	switch f.Type {
	case domain.FieldTypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &FieldError{
				FieldID: f.ID,
				Message: fmt.Sprintf("must be an integer, got %q", raw),
			}
		}
		return n, nil

	case domain.FieldTypeFloat:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &FieldError{
				FieldID: f.ID,
				Message: fmt.Sprintf("must be a float, got %q", raw),
			}
		}
		return x, nil

	case domain.FieldTypeTags:
		return splitTags(raw), nil

	case domain.FieldTypeString, domain.FieldTypeSelect, domain.FieldTypeUser, domain.FieldTypeImage:
		return raw, nil

	default:
		return nil, &FieldError{
			FieldID: f.ID,
			Message: fmt.Sprintf("unknown field type %q", f.Type),
		}
	}
}

// splitTags parses a comma-separated tag list: segments are trimmed, empty
// segments are dropped, order is preserved, and duplicates are kept.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
