package textutil

import (
	"reflect"
	"testing"
)

func TestNormalizeStringMap(t *testing.T) {
	input := map[string]string{
		" insideDhaka ": " 6000 ",
		"outsideDhaka":  "12000",
		"empty":         " ",
		" ":             "ignored",
		"":              "ignored",
	}
	expected := map[string]string{
		"insideDhaka":  "6000",
		"outsideDhaka": "12000",
		"empty":        "",
	}

	if actual := NormalizeStringMap(input); !reflect.DeepEqual(actual, expected) {
		t.Fatalf("expected %#v got %#v", expected, actual)
	}

	if NormalizeStringMap(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
	if NormalizeStringMap(map[string]string{" ": "x"}) != nil {
		t.Fatalf("expected nil when all keys trim away")
	}
}

func TestParseKeyValueList(t *testing.T) {
	got, err := ParseKeyValueList(" insideDhaka=6000, outsideDhaka = 12000 ,, ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := map[string]string{
		"insideDhaka":  "6000",
		"outsideDhaka": "12000",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %#v got %#v", expected, got)
	}

	if _, err := ParseKeyValueList("noSeparator"); err == nil {
		t.Fatalf("expected error for a pair without =")
	}

	got, err = ParseKeyValueList(" , , ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil map for blank input, got %#v", got)
	}
}
