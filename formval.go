// Package formval validates form-field answers against declarative
// definitions. The root package offers convenience entry points over the
// building blocks in pkg/: field models, the validator, definition loaders,
// the OpenAPI adapter, and feedback rendering.
package formval

import (
	"context"

	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/formdef"
	"github.com/goliatone/go-formval/pkg/openapi"
	"github.com/goliatone/go-formval/pkg/validation"
)

// ValidateValue runs the required, data-type, and restriction checks on a
// single answer using the default catalog.
func ValidateValue(dataType field.DataType, restrictions field.RestrictionSet, required bool, value field.Value) validation.Result {
	return validation.Validate(validation.Input{
		Required:     required,
		DataType:     dataType,
		Restrictions: restrictions,
		Value:        value,
	})
}

// ValidateForm resolves raw answer values (for example decoded JSON) and
// validates them against the form definition.
func ValidateForm(form field.Form, answers map[string]any) validation.FormResult {
	resolved := make(map[string]field.Value, len(answers))
	for question, value := range answers {
		resolved[question] = field.Resolve(value)
	}
	return validation.Default().ValidateForm(form, resolved)
}

// LoadForm reads a YAML or JSON form definition from a file path.
func LoadForm(path string) (field.Form, error) {
	return formdef.Load(path)
}

// FormFromOpenAPI derives a form definition from an OpenAPI operation's
// request schema.
func FormFromOpenAPI(ctx context.Context, src openapi.Source, operationID string) (field.Form, error) {
	return openapi.New().Form(ctx, src, operationID)
}
