package formdef_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/formdef"
)

func TestLoad_Vitals(t *testing.T) {
	form, err := formdef.Load("testdata/vitals.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if form.ID != "vitals" {
		t.Fatalf("expected form id vitals, got %q", form.ID)
	}
	if len(form.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(form.Fields))
	}

	weight, ok := form.Field("3141-9")
	if !ok {
		t.Fatal("missing weight field")
	}
	if weight.DataType != field.DataTypeReal || !weight.Required {
		t.Fatalf("unexpected weight definition: %+v", weight)
	}
	wantRestrictions := field.RestrictionSet{
		{Name: field.RestrictionMinExclusive, Value: "0"},
		{Name: field.RestrictionMaxExclusive, Value: "500"},
	}
	if diff := cmp.Diff(wantRestrictions, weight.Restrictions); diff != "" {
		t.Fatalf("restriction order not preserved (-want +got):\n%s", diff)
	}

	record, _ := form.Field("record-id")
	if pattern, ok := record.Restrictions.Get(field.RestrictionPattern); !ok || pattern.Value != `/^[A-Z]{2}-\d{4}$/i` {
		t.Fatalf("unexpected pattern restriction: %+v", record.Restrictions)
	}
}

func TestParse_JSONDocument(t *testing.T) {
	raw := []byte(`{
  "id": "intake",
  "items": [
    {"question": "age", "dataType": "INT", "restrictions": {"minInclusive": "0", "maxExclusive": "150"}}
  ]
}`)
	form, err := formdef.Parse(raw, "intake.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := field.RestrictionSet{
		{Name: field.RestrictionMinInclusive, Value: "0"},
		{Name: field.RestrictionMaxExclusive, Value: "150"},
	}
	if diff := cmp.Diff(want, form.Fields[0].Restrictions); diff != "" {
		t.Fatalf("restrictions mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"missing id", "items:\n  - question: a\n    dataType: ST\n", "missing a form id"},
		{"no items", "id: empty\n", "defines no items"},
		{"duplicate question", "id: dup\nitems:\n  - question: a\n    dataType: ST\n  - question: a\n    dataType: ST\n", `declares question "a" twice`},
		{"unknown data type", "id: bad\nitems:\n  - question: a\n    dataType: NOPE\n", "unknown data type"},
		{"missing question", "id: bad\nitems:\n  - dataType: ST\n", "missing a question code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formdef.Parse([]byte(tc.raw), tc.name)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
