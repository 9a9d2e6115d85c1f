package utils

import (
	"encoding/json"
	"testing"
)

func TestClampLimit(t *testing.T) {
	cases := []struct {
		limit, def, max, want int
	}{
		{0, 50, 500, 50},      // zero -> default
		{-3, 50, 500, 50},     // negative -> default
		{10, 50, 500, 10},     // in range -> unchanged
		{500, 50, 500, 500},   // at max
		{9999, 50, 500, 500},  // above max -> capped
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.limit, tc.def, tc.max); got != tc.want {
			t.Fatalf("ClampLimit(%d, %d, %d) = %d, want %d", tc.limit, tc.def, tc.max, got, tc.want)
		}
	}
}

func TestAtoiDefault(t *testing.T) {
	if got := AtoiDefault("42", 0); got != 42 {
		t.Fatalf("AtoiDefault(42) = %d", got)
	}
	if got := AtoiDefault("", 10); got != 10 {
		t.Fatalf("AtoiDefault(empty) = %d", got)
	}
	if got := AtoiDefault("x", 5); got != 5 {
		t.Fatalf("AtoiDefault(x) = %d", got)
	}
	if got := AtoiDefault("-7", 0); got != -7 {
		t.Fatalf("AtoiDefault(-7) = %d", got)
	}
}

func TestPage_JSONShape(t *testing.T) {
	p := Page[string]{Items: []string{"a"}, Total: 3, Limit: 1, Offset: 0}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"items":["a"],"total":3,"limit":1,"offset":0}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
}
