// Package openapi derives form definitions from OpenAPI 3 documents. An
// operation's request schema becomes a field.Form: property types and formats
// map onto data type tags, and schema constraints (minimum/maximum bounds,
// length limits, patterns) become the equivalent restriction declarations.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formval/pkg/field"
)

// Options configures document handling before conversion.
type Options struct {
	// ResolveReferences validates the document and resolves $ref targets,
	// allowing external references.
	ResolveReferences bool
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithResolvedReferences enables reference resolution and validation.
func WithResolvedReferences() Option {
	return func(opts *Options) {
		opts.ResolveReferences = true
	}
}

// Adapter converts OpenAPI operations into form definitions.
type Adapter struct {
	options Options
}

// New constructs an Adapter.
func New(options ...Option) *Adapter {
	var opts Options
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return &Adapter{options: opts}
}

// Form loads the document behind src and converts the request schema of the
// operation identified by operationID into a form definition.
func (a *Adapter) Form(ctx context.Context, src Source, operationID string) (field.Form, error) {
	if src == nil {
		return field.Form{}, errors.New("openapi adapter: source is required")
	}
	if strings.TrimSpace(operationID) == "" {
		return field.Form{}, errors.New("openapi adapter: operation id is required")
	}

	raw, err := src.Read(ctx)
	if err != nil {
		return field.Form{}, err
	}
	if len(raw) == 0 {
		return field.Form{}, fmt.Errorf("openapi adapter: %s is empty", src.Location())
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return field.Form{}, fmt.Errorf("openapi adapter: load %s: %w", src.Location(), err)
	}
	if a.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return field.Form{}, fmt.Errorf("openapi adapter: validate %s: %w", src.Location(), err)
		}
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return field.Form{}, fmt.Errorf("openapi adapter: operation %q not found in %s", operationID, src.Location())
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return field.Form{}, fmt.Errorf("openapi adapter: operation %q has no request schema", operationID)
	}

	form := field.Form{
		ID:     operationID,
		Title:  operation.Summary,
		Fields: fieldsFromSchema(schema),
	}
	return form, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// fieldsFromSchema flattens the object schema's properties into field
// definitions, sorted by property name for deterministic output.
func fieldsFromSchema(schema *openapi3.Schema) []field.Field {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		_, isRequired := required[name]
		fields = append(fields, field.Field{
			Question:     name,
			Label:        prop.Title,
			DataType:     dataTypeFor(prop),
			Required:     isRequired,
			Restrictions: restrictionsFor(prop),
		})
	}
	return fields
}

func dataTypeFor(schema *openapi3.Schema) field.DataType {
	switch firstType(schema.Type) {
	case "integer":
		return field.DataTypeInteger
	case "number":
		return field.DataTypeReal
	case "boolean":
		return field.DataTypeBoolean
	case "array":
		return field.DataTypeCodedExc
	case "string":
		switch schema.Format {
		case "email":
			return field.DataTypeEmail
		case "uri", "url":
			return field.DataTypeURL
		case "date":
			return field.DataTypeDate
		case "date-time":
			return field.DataTypeDateTime
		case "time":
			return field.DataTypeTime
		case "phone":
			return field.DataTypePhone
		case "binary", "byte":
			return field.DataTypeBinary
		}
		if len(schema.Enum) > 0 {
			return field.DataTypeCodedNoExc
		}
		return field.DataTypeShortText
	default:
		return field.DataTypeShortText
	}
}

func restrictionsFor(schema *openapi3.Schema) field.RestrictionSet {
	var set field.RestrictionSet

	if schema.Min != nil {
		name := field.RestrictionMinInclusive
		if schema.ExclusiveMin {
			name = field.RestrictionMinExclusive
		}
		set = append(set, field.Restriction{Name: name, Value: formatFloat(*schema.Min)})
	}
	if schema.Max != nil {
		name := field.RestrictionMaxInclusive
		if schema.ExclusiveMax {
			name = field.RestrictionMaxExclusive
		}
		set = append(set, field.Restriction{Name: name, Value: formatFloat(*schema.Max)})
	}
	if schema.MinLength != 0 {
		set = append(set, field.Restriction{
			Name:  field.RestrictionMinLength,
			Value: strconv.FormatUint(schema.MinLength, 10),
		})
	}
	if schema.MaxLength != nil {
		set = append(set, field.Restriction{
			Name:  field.RestrictionMaxLength,
			Value: strconv.FormatUint(*schema.MaxLength, 10),
		})
	}
	if schema.Pattern != "" {
		set = append(set, field.Restriction{
			Name:  field.RestrictionPattern,
			Value: schema.Pattern,
		})
	}
	return set
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
