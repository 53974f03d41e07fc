package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/validation"
)

func TestCheckRequired(t *testing.T) {
	cases := []struct {
		name     string
		required bool
		value    field.Value
		ok       bool
		errs     []string
	}{
		{name: "not required empty", required: false, value: field.Empty(), ok: true},
		{name: "required missing", required: true, value: field.Empty(), ok: false, errs: []string{"requires a value"}},
		{name: "required empty string", required: true, value: field.String(""), ok: false, errs: []string{"requires a value"}},
		{name: "required zero", required: true, value: field.String("0"), ok: true},
		{name: "required false bool", required: true, value: field.Bool(false), ok: true},
		{name: "required empty coded text", required: true, value: field.Coded(""), ok: false, errs: []string{"requires a value"}},
		{name: "required empty collection", required: true, value: field.Collection(0), ok: false, errs: []string{"requires a value"}},
		{name: "required filled collection", required: true, value: field.Collection(2), ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errs []string
			ok := validation.CheckRequired(tc.required, tc.value, &errs)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if diff := cmp.Diff(tc.errs, errs); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckDataType(t *testing.T) {
	cases := []struct {
		name  string
		dt    field.DataType
		value field.Value
		ok    bool
	}{
		{"int valid", field.DataTypeInteger, field.String("42"), true},
		{"int surrounding whitespace", field.DataTypeInteger, field.String("  7  "), true},
		{"int rejects decimal", field.DataTypeInteger, field.String("4.2"), false},
		{"int rejects sign", field.DataTypeInteger, field.String("-3"), false},
		{"real valid negative", field.DataTypeReal, field.String("-3.14"), true},
		{"real trailing dot", field.DataTypeReal, field.String("5."), true},
		{"real rejects words", field.DataTypeReal, field.String("abc"), false},
		{"real rejects bare dot fraction", field.DataTypeReal, field.String(".5"), false},
		{"bool strict true", field.DataTypeBoolean, field.Bool(true), true},
		{"bool strict false", field.DataTypeBoolean, field.Bool(false), true},
		{"bool rejects string form", field.DataTypeBoolean, field.String("true"), false},
		{"phone us", field.DataTypePhone, field.String("(301) 496-4000"), true},
		{"phone international", field.DataTypePhone, field.String("+1 301-496-4000"), true},
		{"phone extension", field.DataTypePhone, field.String("301-496-4000 x123"), true},
		{"phone rejects words", field.DataTypePhone, field.String("call me"), false},
		{"email valid", field.DataTypeEmail, field.String("jane.doe@example.org"), true},
		{"email missing tld", field.DataTypeEmail, field.String("jane@example"), false},
		{"url with scheme", field.DataTypeURL, field.String("https://example.org/forms"), true},
		{"url bare host", field.DataTypeURL, field.String("example.org"), true},
		{"url rejects spaces", field.DataTypeURL, field.String("not a url"), false},
		{"time 24h", field.DataTypeTime, field.String("23:15"), true},
		{"time 12h", field.DataTypeTime, field.String("9:05 pm"), true},
		{"time out of range", field.DataTypeTime, field.String("25:00"), false},
		{"year", field.DataTypeYear, field.String("1998"), true},
		{"year too long", field.DataTypeYear, field.String("19988"), false},
		{"month padded", field.DataTypeMonth, field.String("09"), true},
		{"month thirteen", field.DataTypeMonth, field.String("13"), false},
		{"day thirty one", field.DataTypeDay, field.String("31"), true},
		{"day thirty two", field.DataTypeDay, field.String("32"), false},
		{"date passes through", field.DataTypeDate, field.String("anything"), true},
		{"short text passes through", field.DataTypeShortText, field.String("anything"), true},
		{"coded passes through", field.DataTypeCodedNoExc, field.Coded("anything"), true},
		{"section passes through", field.DataTypeSection, field.String("anything"), true},
		{"unrecognized tag passes", field.DataType("WHAT"), field.String("anything"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errs []string
			ok := validation.CheckDataType(tc.dt, tc.value, &errs)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v (errs %v)", tc.ok, ok, errs)
			}
			if tc.ok && len(errs) != 0 {
				t.Fatalf("valid value appended errors: %v", errs)
			}
			if !tc.ok && len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
		})
	}
}

func TestCheckDataType_EmptyValuesExempt(t *testing.T) {
	for _, value := range []field.Value{field.Empty(), field.String(""), field.Coded("")} {
		var errs []string
		if !validation.CheckDataType(field.DataTypeInteger, value, &errs) {
			t.Fatalf("empty value should be exempt, got errors %v", errs)
		}
		if len(errs) != 0 {
			t.Fatalf("empty value appended errors: %v", errs)
		}
	}
}

func TestCheckRestrictions_RangeMessages(t *testing.T) {
	restrictions := field.RestrictionSet{
		{Name: field.RestrictionMinInclusive, Value: "5"},
		{Name: field.RestrictionMaxInclusive, Value: "10"},
	}
	var errs []string
	ok := validation.CheckRestrictions(restrictions, field.String("3"), &errs)
	if ok {
		t.Fatal("expected 3 to fail minInclusive 5")
	}
	want := []string{"must be a value greater than or equal to 5."}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("only the failing restriction should report (-want +got):\n%s", diff)
	}
}

func TestCheckRestrictions_NoShortCircuit(t *testing.T) {
	restrictions := field.RestrictionSet{
		{Name: field.RestrictionMinInclusive, Value: "5"},
		{Name: field.RestrictionMinLength, Value: "3"},
	}
	var errs []string
	ok := validation.CheckRestrictions(restrictions, field.String("3"), &errs)
	if ok {
		t.Fatal("expected both restrictions to fail")
	}
	want := []string{
		"must be a value greater than or equal to 5.",
		"must have a total length greater than or equal to 3.",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("both failures should report in declaration order (-want +got):\n%s", diff)
	}
}

func TestCheckRestrictions_Pattern(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		value   string
		ok      bool
	}{
		{"case insensitive flag", "/^[A-Z]+$/i", "abc", true},
		{"case sensitive miss", "/^[A-Z]+$/", "abc", false},
		{"bare pattern no delimiters", "^[a-z]+$", "abc", true},
		{"missing trailing delimiter means no flags", "/^[A-Z]+$", "abc", false},
		{"malformed expression fails value", "/([a-z]/", "abc", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			restrictions := field.RestrictionSet{{Name: field.RestrictionPattern, Value: tc.pattern}}
			var errs []string
			ok := validation.CheckRestrictions(restrictions, field.String(tc.value), &errs)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v (errs %v)", tc.ok, ok, errs)
			}
			if !tc.ok {
				want := "must match a RegExp pattern of " + tc.pattern + "."
				if len(errs) != 1 || errs[0] != want {
					t.Fatalf("expected %q, got %v", want, errs)
				}
			}
		})
	}
}

func TestCheckRestrictions_MalformedNumbers(t *testing.T) {
	restrictions := field.RestrictionSet{{Name: field.RestrictionMinInclusive, Value: "5"}}
	var errs []string
	if ok := validation.CheckRestrictions(restrictions, field.String("abc"), &errs); ok {
		t.Fatal("non-numeric value must fail a numeric comparison")
	}
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
}

func TestCheckRestrictions_ReservedAndUnknownKeysPass(t *testing.T) {
	restrictions := field.RestrictionSet{
		{Name: field.RestrictionTotalDigits, Value: "3"},
		{Name: field.RestrictionFractionDigits, Value: "1"},
		{Name: field.RestrictionEnumeration, Value: "a,b"},
		{Name: field.RestrictionWhiteSpace, Value: "collapse"},
		{Name: "somethingElse", Value: "nope"},
	}
	var errs []string
	if ok := validation.CheckRestrictions(restrictions, field.String("999999"), &errs); !ok {
		t.Fatalf("reserved keys must pass, got errors %v", errs)
	}
	if len(errs) != 0 {
		t.Fatalf("reserved keys appended errors: %v", errs)
	}
}

func TestCheckRestrictions_EmptyValuesExempt(t *testing.T) {
	restrictions := field.RestrictionSet{{Name: field.RestrictionMinLength, Value: "5"}}
	var errs []string
	if ok := validation.CheckRestrictions(restrictions, field.String(""), &errs); !ok {
		t.Fatalf("empty value should be exempt, got errors %v", errs)
	}
}

func TestValidate_MessageOrder(t *testing.T) {
	result := validation.Validate(validation.Input{
		Required: true,
		DataType: field.DataTypeInteger,
		Restrictions: field.RestrictionSet{
			{Name: field.RestrictionMinInclusive, Value: "10"},
			{Name: field.RestrictionMaxLength, Value: "2"},
		},
		Value: field.String("4.25"),
	})
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	want := []string{
		"must be an integer number.",
		"must be a value greater than or equal to 10.",
		"must have a total length less than or equal to 2.",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("message order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	in := validation.Input{
		Required:     true,
		DataType:     field.DataTypeInteger,
		Restrictions: field.RestrictionSet{{Name: field.RestrictionMaxInclusive, Value: "10"}},
		Value:        field.String("42"),
	}
	first := validation.Validate(in)
	second := validation.Validate(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeat validation differed (-first +second):\n%s", diff)
	}
}

func TestValidateForm(t *testing.T) {
	form := field.Form{
		ID: "vitals",
		Fields: []field.Field{
			{Question: "weight", DataType: field.DataTypeReal, Required: true, Restrictions: field.RestrictionSet{
				{Name: field.RestrictionMinExclusive, Value: "0"},
			}},
			{Question: "email", DataType: field.DataTypeEmail},
			{Question: "notes", DataType: field.DataTypeLongText},
		},
	}
	answers := map[string]field.Value{
		"weight": field.String("72.5"),
		"email":  field.String("not-an-email"),
	}

	result := validation.New().ValidateForm(form, answers)
	if result.Valid {
		t.Fatal("expected form to be invalid")
	}
	if !result.Fields["weight"].Valid {
		t.Fatalf("weight should be valid: %v", result.Fields["weight"].Errors)
	}
	if result.Fields["email"].Valid {
		t.Fatal("email should be invalid")
	}
	if !result.Fields["notes"].Valid {
		t.Fatal("missing optional answer should be valid")
	}
}
