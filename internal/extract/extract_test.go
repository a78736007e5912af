package extract

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExtractPlainJSONMatchesDirectParse(t *testing.T) {
	cases := []struct {
		name string
		text string
		mode Mode
	}{
		{"object", `{"state":"Goa","city":"Panaji","days":3,"budget":10000,"style":"balanced"}`, ObjectMode},
		{"array", `[{"name":"Baga Beach"},{"name":"Fort Aguada"}]`, ArrayMode},
		{"nested", `{"daywise":[{"day":1,"activities":["a","b"]}]}`, ObjectMode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(tc.text, tc.mode)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			var want any
			if err := json.Unmarshal([]byte(tc.text), &want); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %#v, want %#v", got, want)
			}
		})
	}
}

func TestExtractToleratesTrailingCommas(t *testing.T) {
	obj, err := Object(`{"a":1,}`)
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	if !reflect.DeepEqual(obj, map[string]any{"a": 1.0}) {
		t.Fatalf("object = %#v", obj)
	}

	arr, err := Array("[1, 2, 3 ,\n]")
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	if !reflect.DeepEqual(arr, []any{1.0, 2.0, 3.0}) {
		t.Fatalf("array = %#v", arr)
	}

	nested, err := Object(`{"a":[{"b":2,},],}`)
	if err != nil {
		t.Fatalf("nested: %v", err)
	}
	want := map[string]any{"a": []any{map[string]any{"b": 2.0}}}
	if !reflect.DeepEqual(nested, want) {
		t.Fatalf("nested = %#v", nested)
	}
}

func TestExtractKeepsCommasInsideStrings(t *testing.T) {
	obj, err := Object(`{"note":"beach,}"}`)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if obj["note"] != "beach,}" {
		t.Fatalf("note = %q", obj["note"])
	}
}

func TestExtractStripsFences(t *testing.T) {
	plain := `{"city":"Goa","days":3}`
	for _, wrapped := range []string{
		"```json\n" + plain + "\n```",
		"```\n" + plain + "\n```",
		"Here you go:\n```JSON\n" + plain + "\n```\nEnjoy!",
	} {
		got, err := Object(wrapped)
		if err != nil {
			t.Fatalf("Object(%q): %v", wrapped, err)
		}
		want, _ := Object(plain)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %#v, want %#v", got, want)
		}
	}
}

func TestExtractStripsThinkBlocks(t *testing.T) {
	text := "<think>Maybe {\"name\": 1} or [x]?</think>\n[{\"name\":\"Calangute\"}]"
	arr, err := Array(text)
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if len(arr) != 1 || arr[0].(map[string]any)["name"] != "Calangute" {
		t.Fatalf("arr = %#v", arr)
	}
}

func TestExtractNoBracketsIsNotFound(t *testing.T) {
	_, err := Extract("Sorry, I cannot help with that.", ObjectMode)
	if !errors.Is(err, ErrNoStructuredData) {
		t.Fatalf("expected ErrNoStructuredData, got %v", err)
	}
	var xerr *Error
	if !errors.As(err, &xerr) || !strings.Contains(xerr.Fragment, "Sorry") {
		t.Fatalf("expected fragment with input text, got %v", err)
	}

	// An object in array mode is still "no array".
	_, err = Extract(`{"a":1}`, ArrayMode)
	if !errors.Is(err, ErrNoStructuredData) {
		t.Fatalf("array mode: expected ErrNoStructuredData, got %v", err)
	}
}

func TestExtractFragmentIsBounded(t *testing.T) {
	_, err := Extract(strings.Repeat("x", 1000), ObjectMode)
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(xerr.Fragment) != excerptLen {
		t.Fatalf("fragment length = %d, want %d", len(xerr.Fragment), excerptLen)
	}
}

func TestExtractMalformed(t *testing.T) {
	cases := map[string]string{
		"bad token":    `{"a": nope}`,
		"unterminated": `{"a": 1, "b": [1, 2`,
		"single quote": `{'a': 1}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(text, ObjectMode)
			if !errors.Is(err, ErrMalformedStructuredData) {
				t.Fatalf("expected ErrMalformedStructuredData, got %v", err)
			}
		})
	}
}

func TestExtractPicksFirstBalancedValue(t *testing.T) {
	// A greedy first-to-last span would merge both objects and fail.
	text := `Plan A: {"name":"Relaxed"} and plan B: {"name":"Packed"}`
	obj, err := Object(text)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if obj["name"] != "Relaxed" {
		t.Fatalf("name = %v", obj["name"])
	}

	// Trailing garbage brackets are not swallowed.
	obj, err = Object(`{"days":3}} }`)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if obj["days"] != 3.0 {
		t.Fatalf("days = %v", obj["days"])
	}
}

func TestExtractSkipsUnparsableCandidates(t *testing.T) {
	text := `Use the {city} placeholder. Result: {"city":"Goa"}`
	obj, err := Object(text)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if obj["city"] != "Goa" {
		t.Fatalf("city = %v", obj["city"])
	}
}

func TestExtractBracketsInsideStrings(t *testing.T) {
	obj, err := Object(`{"activities":["Visit {old} fort ]"],"x":"\"}"}`)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if obj["x"] != `"}` {
		t.Fatalf("x = %q", obj["x"])
	}
}

func TestExtractCollapsesNewlinesInStrings(t *testing.T) {
	obj, err := Object("{\"summary\":\"line one\nline two\"}")
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if obj["summary"] != "line one line two" {
		t.Fatalf("summary = %q", obj["summary"])
	}
}
