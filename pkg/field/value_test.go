package field

import "testing"

func TestResolveShapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		kind ValueKind
		text string
	}{
		{"nil", nil, KindEmpty, ""},
		{"string", "hello", KindScalar, "hello"},
		{"bool", true, KindScalar, "true"},
		{"int", 7, KindScalar, "7"},
		{"float", 2.5, KindScalar, "2.5"},
		{"slice", []any{"a", "b"}, KindCollection, ""},
		{"coded map", map[string]any{"text": "Yes", "code": "LA33-6"}, KindCoded, "Yes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.in)
			if got.Kind() != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, got.Kind())
			}
			if got.Text() != tc.text {
				t.Fatalf("expected text %q, got %q", tc.text, got.Text())
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		empty bool
	}{
		{"absent", Empty(), true},
		{"empty string", String(""), true},
		{"zero string", String("0"), false},
		{"false bool", Bool(false), false},
		{"coded without text", Coded(""), true},
		{"coded with text", Coded("Yes"), false},
		{"empty collection", Collection(0), true},
		{"filled collection", Collection(3), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.IsEmpty(); got != tc.empty {
				t.Fatalf("IsEmpty = %v, expected %v", got, tc.empty)
			}
		})
	}
}

func TestValueLen(t *testing.T) {
	if got := String("héllo").Len(); got != 5 {
		t.Fatalf("expected rune length 5, got %d", got)
	}
	if got := Collection(4).Len(); got != 4 {
		t.Fatalf("expected collection length 4, got %d", got)
	}
}

func TestParseBool(t *testing.T) {
	for _, text := range []string{"true", "Yes", "y", "1"} {
		got, err := ParseBool(text)
		if err != nil || !got {
			t.Fatalf("ParseBool(%q) = %v, %v", text, got, err)
		}
	}
	for _, text := range []string{"false", "No", "n", "0"} {
		got, err := ParseBool(text)
		if err != nil || got {
			t.Fatalf("ParseBool(%q) = %v, %v", text, got, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatal("expected error for non-boolean text")
	}
}
