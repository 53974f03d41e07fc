package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-formval/pkg/feedback"
	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/formdef"
	"github.com/goliatone/go-formval/pkg/openapi"
	"github.com/goliatone/go-formval/pkg/tui"
	"github.com/goliatone/go-formval/pkg/validation"
)

func main() {
	formPath := flag.String("form", "", "form definition path (YAML or JSON)")
	source := flag.String("source", "", "OpenAPI document path (alternative to -form)")
	operation := flag.String("operation", "", "operation ID when using -source")
	answersPath := flag.String("answers", "", "JSON answers file")
	interactive := flag.Bool("interactive", false, "prompt for answers in the terminal")
	format := flag.String("format", "text", "output format: text, json, or html")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	form, err := loadForm(ctx, *formPath, *source, *operation)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	answers, err := loadAnswers(ctx, form, *answersPath, *interactive)
	if err != nil {
		log.Fatalf("Failed to collect answers: %v", err)
	}

	result := validation.Default().ValidateForm(form, answers)
	report := feedback.BuildReport(form, result)

	rendered, err := render(report, *format)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	} else {
		fmt.Print(rendered)
	}

	if !result.Valid {
		os.Exit(1)
	}
}

func loadForm(ctx context.Context, formPath, source, operation string) (field.Form, error) {
	switch {
	case formPath != "":
		return formdef.Load(formPath)
	case source != "":
		if strings.TrimSpace(operation) == "" {
			return field.Form{}, fmt.Errorf("-operation is required with -source")
		}
		return openapi.New().Form(ctx, openapi.SourceFromFile(source), operation)
	default:
		return field.Form{}, fmt.Errorf("one of -form or -source is required")
	}
}

func loadAnswers(ctx context.Context, form field.Form, answersPath string, interactive bool) (map[string]field.Value, error) {
	if interactive {
		return tui.NewSession().Run(ctx, form)
	}
	if answersPath == "" {
		return nil, fmt.Errorf("-answers is required unless -interactive is set")
	}

	data, err := os.ReadFile(answersPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", answersPath, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", answersPath, err)
	}
	answers := make(map[string]field.Value, len(raw))
	for question, value := range raw {
		answers[question] = field.Resolve(value)
	}
	return answers, nil
}

func render(report feedback.Report, format string) (string, error) {
	switch format {
	case "text":
		return feedback.RenderText(report), nil
	case "json":
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	case "html":
		renderer, err := feedback.NewRenderer()
		if err != nil {
			return "", err
		}
		return renderer.RenderHTML(report)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
