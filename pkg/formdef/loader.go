// Package formdef loads declarative form definitions from YAML or JSON
// documents into the field model consumed by the validator. Restriction
// declarations keep their document order so validation messages report in the
// order the author wrote the constraints.
package formdef

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formval/pkg/field"
)

type document struct {
	ID    string    `yaml:"id"`
	Title string    `yaml:"title"`
	Items []itemDoc `yaml:"items"`
}

type itemDoc struct {
	Question     string          `yaml:"question"`
	Label        string          `yaml:"label"`
	DataType     string          `yaml:"dataType"`
	Required     bool            `yaml:"required"`
	Restrictions restrictionsDoc `yaml:"restrictions"`
}

// restrictionsDoc decodes a restriction mapping while preserving the order of
// its keys. A plain map would lose declaration order.
type restrictionsDoc struct {
	set field.RestrictionSet
}

func (r *restrictionsDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("formdef: restrictions must be a mapping (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("formdef: restriction %q must be a scalar (line %d)", key.Value, value.Line)
		}
		r.set = append(r.set, field.Restriction{
			Name:  strings.TrimSpace(key.Value),
			Value: value.Value,
		})
	}
	return nil
}

// Load reads a form definition from a file path.
func Load(path string) (field.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return field.Form{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a form definition from an abstract filesystem.
func LoadFS(fsys fs.FS, path string) (field.Form, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return field.Form{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML or JSON form definition. JSON is handled by the same
// decoder since YAML is a superset; origin names the source in errors.
func Parse(data []byte, origin string) (field.Form, error) {
	if origin == "" {
		origin = "form definition"
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return field.Form{}, fmt.Errorf("formdef: parse %s: %w", origin, err)
	}
	if strings.TrimSpace(doc.ID) == "" {
		return field.Form{}, fmt.Errorf("formdef: %s is missing a form id", origin)
	}
	if len(doc.Items) == 0 {
		return field.Form{}, fmt.Errorf("formdef: %s defines no items", origin)
	}

	form := field.Form{
		ID:     strings.TrimSpace(doc.ID),
		Title:  strings.TrimSpace(doc.Title),
		Fields: make([]field.Field, 0, len(doc.Items)),
	}
	seen := make(map[string]struct{}, len(doc.Items))
	for idx, item := range doc.Items {
		question := strings.TrimSpace(item.Question)
		if question == "" {
			return field.Form{}, fmt.Errorf("formdef: %s item %d is missing a question code", origin, idx)
		}
		if _, dup := seen[question]; dup {
			return field.Form{}, fmt.Errorf("formdef: %s declares question %q twice", origin, question)
		}
		seen[question] = struct{}{}

		dataType := field.DataType(strings.TrimSpace(item.DataType))
		if !dataType.Known() {
			return field.Form{}, fmt.Errorf("formdef: %s question %q uses unknown data type %q", origin, question, item.DataType)
		}

		form.Fields = append(form.Fields, field.Field{
			Question:     question,
			Label:        strings.TrimSpace(item.Label),
			DataType:     dataType,
			Required:     item.Required,
			Restrictions: item.Restrictions.set,
		})
	}
	return form, nil
}
