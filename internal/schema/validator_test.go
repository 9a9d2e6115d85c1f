package schema

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spacenote/spacenote/internal/domain"
)

func TestValidate_RequiredMissing_NamesField(t *testing.T) {
	fields := domain.SpaceFields{
		{ID: "title", Type: domain.FieldTypeString, Required: true},
	}

	_, err := Validate(fields, map[string]string{})
	if err == nil {
		t.Fatalf("expected error for missing required field")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FieldError", err)
	}
	if fe.FieldID != "title" {
		t.Fatalf("FieldID = %q, want %q", fe.FieldID, "title")
	}
}

func TestValidate_OptionalMissing_UsesDefault(t *testing.T) {
	fields := domain.SpaceFields{
		{ID: "status", Type: domain.FieldTypeSelect, Default: "open"},
		{ID: "note", Type: domain.FieldTypeString}, // nil default
	}

	got, err := Validate(fields, map[string]string{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got["status"] != "open" {
		t.Fatalf("status = %v, want default %q", got["status"], "open")
	}
	if v, present := got["note"]; !present || v != nil {
		t.Fatalf("note = (%v, %v), want explicit nil entry", v, present)
	}
}

func TestValidate_IntCoercion(t *testing.T) {
	fields := domain.SpaceFields{{ID: "priority", Type: domain.FieldTypeInt}}

	got, err := Validate(fields, map[string]string{"priority": "42"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v, ok := got["priority"].(int64); !ok || v != 42 {
		t.Fatalf("priority = %v (%T), want int64 42", got["priority"], got["priority"])
	}

	_, err = Validate(fields, map[string]string{"priority": "high"})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.FieldID != "priority" {
		t.Fatalf("bad int: err = %v, want *FieldError naming priority", err)
	}
}

func TestValidate_FloatCoercion(t *testing.T) {
	fields := domain.SpaceFields{{ID: "score", Type: domain.FieldTypeFloat}}

	got, err := Validate(fields, map[string]string{"score": "3.25"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v, ok := got["score"].(float64); !ok || v != 3.25 {
		t.Fatalf("score = %v (%T), want float64 3.25", got["score"], got["score"])
	}

	if _, err := Validate(fields, map[string]string{"score": "x"}); err == nil {
		t.Fatalf("expected error for bad float")
	}
}

func TestValidate_Tags(t *testing.T) {
	fields := domain.SpaceFields{{ID: "tags", Type: domain.FieldTypeTags}}

	cases := []struct {
		raw  string
		want []string
	}{
		{"a, b,  b", []string{"a", "b", "b"}}, // duplicates kept, order preserved
		{" , ,", []string{}},                  // only empties
		{"solo", []string{"solo"}},
		{"x,,y", []string{"x", "y"}},
	}
	for _, tc := range cases {
		got, err := Validate(fields, map[string]string{"tags": tc.raw})
		if err != nil {
			t.Fatalf("Validate(%q): %v", tc.raw, err)
		}
		if !reflect.DeepEqual(got["tags"], tc.want) {
			t.Fatalf("tags(%q) = %#v, want %#v", tc.raw, got["tags"], tc.want)
		}
	}
}

func TestValidate_PassThroughTypes(t *testing.T) {
	fields := domain.SpaceFields{
		{ID: "title", Type: domain.FieldTypeString},
		{ID: "status", Type: domain.FieldTypeSelect},
		{ID: "assignee", Type: domain.FieldTypeUser},
		{ID: "cover", Type: domain.FieldTypeImage},
	}
	raw := map[string]string{
		"title":    "hello",
		"status":   "anything-goes", // select choices are not enforced here
		"assignee": "nobody",        // membership is not enforced here
		"cover":    "img-123",
	}

	got, err := Validate(fields, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for k, v := range raw {
		if got[k] != v {
			t.Fatalf("%s = %v, want pass-through %q", k, got[k], v)
		}
	}
}

func TestValidate_UnknownRawKeysDropped(t *testing.T) {
	fields := domain.SpaceFields{{ID: "title", Type: domain.FieldTypeString}}

	got, err := Validate(fields, map[string]string{"title": "t", "rogue": "x"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, ok := got["rogue"]; ok {
		t.Fatalf("unknown key survived validation: %#v", got)
	}
	if len(got) != 1 {
		t.Fatalf("got %d values, want 1", len(got))
	}
}

func TestValidate_UnknownFieldType(t *testing.T) {
	fields := domain.SpaceFields{{ID: "weird", Type: domain.FieldType("blob")}}

	_, err := Validate(fields, map[string]string{"weird": "x"})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.FieldID != "weird" {
		t.Fatalf("unknown type: err = %v, want *FieldError naming weird", err)
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	got, err := Validate(nil, map[string]string{"anything": "x"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty schema must yield empty values, got %#v", got)
	}
}

func TestFieldError_Message(t *testing.T) {
	e := &FieldError{FieldID: "priority", Message: "must be an integer"}
	want := `field "priority": must be an integer`
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}
