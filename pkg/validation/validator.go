package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formval/pkg/field"
)

// Input collects everything the validator needs to judge one answer.
type Input struct {
	Required     bool
	DataType     field.DataType
	Restrictions field.RestrictionSet
	Value        field.Value
}

// Result is the outcome of validating a single answer. Errors preserves check
// order: required first, then data type, then one entry per failing
// restriction in declaration order.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// FormResult aggregates per-field outcomes for a whole form.
type FormResult struct {
	Valid  bool              `json:"valid"`
	Fields map[string]Result `json:"fields"`
}

// Option configures a Validator during construction.
type Option func(*Validator)

// WithCatalog swaps the rule catalog, letting callers localize messages.
func WithCatalog(catalog *Catalog) Option {
	return func(v *Validator) {
		if catalog != nil {
			v.catalog = catalog
		}
	}
}

// Validator evaluates answers against the catalog's rule tables. It carries
// no per-call state and is safe for concurrent use.
type Validator struct {
	catalog *Catalog
}

// New constructs a Validator with the default catalog.
func New(options ...Option) *Validator {
	v := &Validator{catalog: NewCatalog()}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

var defaultValidator = New()

// Default returns the shared validator backed by the default catalog.
func Default() *Validator {
	return defaultValidator
}

// CheckRequired verifies the required constraint. It appends to errs and
// returns false only when required is set and the value is empty; zero and
// false count as real answers.
func (v *Validator) CheckRequired(required bool, value field.Value, errs *[]string) bool {
	if !required {
		return true
	}
	if value.IsEmpty() {
		appendError(errs, requiredMessage)
		return false
	}
	return true
}

// CheckDataType verifies the value against its declared data type. Empty
// values are exempt; data types without a rule (dates, coded answers, free
// text, sections, and anything unrecognized) are always valid here.
func (v *Validator) CheckDataType(dataType field.DataType, value field.Value, errs *[]string) bool {
	if value.IsEmpty() {
		return true
	}
	rule, ok := v.catalog.typeRuleFor(dataType)
	if !ok {
		return true
	}

	if dataType == field.DataTypeBoolean {
		if _, isBool := value.BoolValue(); isBool {
			return true
		}
		appendError(errs, rule.message)
		return false
	}

	if rule.pattern == nil || rule.pattern.MatchString(value.Text()) {
		return true
	}
	appendError(errs, rule.message)
	return false
}

// CheckRestrictions verifies every declared restriction independently and
// returns the conjunction. A failing restriction appends its message but does
// not stop later restrictions from running. Empty values are exempt.
func (v *Validator) CheckRestrictions(restrictions field.RestrictionSet, value field.Value, errs *[]string) bool {
	if value.IsEmpty() {
		return true
	}

	ok := true
	for _, r := range restrictions {
		if v.checkRestriction(r, value) {
			continue
		}
		ok = false
		if tmpl, found := v.catalog.restrictionMessage(r.Name); found {
			appendError(errs, fmt.Sprintf(tmpl, r.Value))
		}
	}
	return ok
}

func (v *Validator) checkRestriction(r field.Restriction, value field.Value) bool {
	switch r.Name {
	case field.RestrictionMinExclusive:
		return parseNumber(value.Text()) > parseNumber(r.Value)
	case field.RestrictionMinInclusive:
		return parseNumber(value.Text()) >= parseNumber(r.Value)
	case field.RestrictionMaxExclusive:
		return parseNumber(value.Text()) < parseNumber(r.Value)
	case field.RestrictionMaxInclusive:
		return parseNumber(value.Text()) <= parseNumber(r.Value)
	case field.RestrictionLength:
		return float64(value.Len()) == parseNumber(r.Value)
	case field.RestrictionMinLength:
		return float64(value.Len()) >= parseNumber(r.Value)
	case field.RestrictionMaxLength:
		return float64(value.Len()) <= parseNumber(r.Value)
	case field.RestrictionPattern:
		re, err := v.catalog.compilePattern(r.Value)
		if err != nil {
			return false
		}
		return re.MatchString(value.Text())
	case field.RestrictionTotalDigits, field.RestrictionFractionDigits,
		field.RestrictionEnumeration, field.RestrictionWhiteSpace:
		// Recognized but reserved; always pass.
		return true
	default:
		return true
	}
}

// Validate runs all three checks in order and collects their messages.
func (v *Validator) Validate(in Input) Result {
	var errs []string
	ok := v.CheckRequired(in.Required, in.Value, &errs)
	ok = v.CheckDataType(in.DataType, in.Value, &errs) && ok
	ok = v.CheckRestrictions(in.Restrictions, in.Value, &errs) && ok
	return Result{Valid: ok, Errors: errs}
}

// ValidateForm validates every field of a form against the supplied answers.
// Missing answers validate as empty values, so only required fields flag them.
func (v *Validator) ValidateForm(form field.Form, answers map[string]field.Value) FormResult {
	out := FormResult{Valid: true, Fields: make(map[string]Result, len(form.Fields))}
	for _, fld := range form.Fields {
		result := v.Validate(Input{
			Required:     fld.Required,
			DataType:     fld.DataType,
			Restrictions: fld.Restrictions,
			Value:        answers[fld.Question],
		})
		if !result.Valid {
			out.Valid = false
		}
		out.Fields[fld.Question] = result
	}
	return out
}

// CheckRequired runs the required check on the shared default validator.
func CheckRequired(required bool, value field.Value, errs *[]string) bool {
	return defaultValidator.CheckRequired(required, value, errs)
}

// CheckDataType runs the data-type check on the shared default validator.
func CheckDataType(dataType field.DataType, value field.Value, errs *[]string) bool {
	return defaultValidator.CheckDataType(dataType, value, errs)
}

// CheckRestrictions runs the restriction checks on the shared default validator.
func CheckRestrictions(restrictions field.RestrictionSet, value field.Value, errs *[]string) bool {
	return defaultValidator.CheckRestrictions(restrictions, value, errs)
}

// Validate runs the combined check on the shared default validator.
func Validate(in Input) Result {
	return defaultValidator.Validate(in)
}

func appendError(errs *[]string, msg string) {
	if errs == nil {
		return
	}
	*errs = append(*errs, msg)
}

// numberPrefix matches the longest leading numeric run, mirroring permissive
// float parsing: trailing garbage is ignored, a non-numeric prefix means NaN.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseNumber converts text to a float, yielding NaN for anything that does
// not start with a number. NaN fails every comparison, so malformed values
// fail range checks instead of panicking.
func parseNumber(text string) float64 {
	match := numberPrefix.FindString(strings.TrimSpace(text))
	if match == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
