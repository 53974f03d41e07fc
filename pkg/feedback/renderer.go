// Package feedback turns validation outcomes into user-facing output: an
// HTML snippet suitable for inline display next to form fields, or a plain
// text report for terminal use.
package feedback

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/validation"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// FieldFeedback is one field's outcome prepared for rendering.
type FieldFeedback struct {
	Question string   `json:"question"`
	Label    string   `json:"label"`
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages,omitempty"`
}

// Report aggregates a form's outcomes in definition order.
type Report struct {
	FormID string          `json:"formId"`
	Title  string          `json:"title,omitempty"`
	Valid  bool            `json:"valid"`
	Fields []FieldFeedback `json:"fields"`
}

// BuildReport pairs a form definition with its validation result. Field order
// follows the definition; labels are sanitized to plain text.
func BuildReport(form field.Form, result validation.FormResult) Report {
	report := Report{FormID: form.ID, Title: form.Title, Valid: result.Valid}
	for _, fld := range form.Fields {
		fieldResult := result.Fields[fld.Question]
		report.Fields = append(report.Fields, FieldFeedback{
			Question: fld.Question,
			Label:    sanitizeLabel(fld.DisplayLabel()),
			Valid:    fieldResult.Valid,
			Messages: fieldResult.Errors,
		})
	}
	return report
}

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithTheme attaches a resolved go-theme configuration; its theme and variant
// names become CSS class suffixes and its CSS variables an inline style block.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// Renderer produces HTML feedback snippets from reports.
type Renderer struct {
	tpl   *pongo2.Template
	theme *theme.RendererConfig
}

// NewRenderer constructs a Renderer backed by the embedded template set.
func NewRenderer(options ...Option) (*Renderer, error) {
	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("feedback: open templates: %w", err)
	}
	set := pongo2.NewSet("formval", pongo2.NewFSLoader(templates))
	tpl, err := set.FromFile("feedback.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("feedback: load template: %w", err)
	}

	r := &Renderer{tpl: tpl}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// RenderHTML renders the report as an inline feedback snippet. Only invalid
// fields appear; a fully valid report renders an empty container.
func (r *Renderer) RenderHTML(report Report) (string, error) {
	ctx := pongo2.Context{
		"form_id": report.FormID,
		"title":   report.Title,
		"valid":   report.Valid,
		"fields":  report.Fields,
	}
	if r.theme != nil {
		ctx["theme"] = r.theme.Theme
		ctx["variant"] = r.theme.Variant
		ctx["css_vars_style"] = cssVarsStyle(r.theme.CSSVars)
	}
	out, err := r.tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("feedback: render: %w", err)
	}
	return out, nil
}

// RenderText writes a terminal-friendly report, one line per message.
func RenderText(report Report) string {
	var b strings.Builder
	for _, fld := range report.Fields {
		if fld.Valid {
			continue
		}
		for _, msg := range fld.Messages {
			fmt.Fprintf(&b, "%s: %s\n", fld.Label, msg)
		}
	}
	if b.Len() == 0 {
		return "all answers are valid\n"
	}
	return b.String()
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s:%s;", key, vars[key])
	}
	return b.String()
}
