// Package tui walks a form definition interactively, prompting for each
// field and validating answers as they are entered. Invalid input re-prompts
// with the validator's messages, so a completed session always yields a
// fully valid answer set.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/validation"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDriver swaps the prompt driver; the default talks to the terminal.
func WithDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithValidator swaps the validator used while prompting.
func WithValidator(v *validation.Validator) SessionOption {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// Session drives an interactive fill-and-validate pass over a form.
type Session struct {
	driver    PromptDriver
	validator *validation.Validator
}

// NewSession constructs a Session with the survey driver and default
// validator.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		driver:    NewSurveyDriver(),
		validator: validation.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run prompts for every field in definition order and returns the collected
// answers. Section fields print their label and hold no value. Boolean fields
// use a confirm prompt; everything else is free text validated on entry.
func (s *Session) Run(ctx context.Context, form field.Form) (map[string]field.Value, error) {
	answers := make(map[string]field.Value, len(form.Fields))
	if title := strings.TrimSpace(form.Title); title != "" {
		if err := s.driver.Info(ctx, title); err != nil {
			return nil, err
		}
	}

	for _, fld := range form.Fields {
		value, err := s.promptField(ctx, fld)
		if err != nil {
			return nil, err
		}
		if fld.DataType == field.DataTypeSection {
			continue
		}
		answers[fld.Question] = value
	}
	return answers, nil
}

func (s *Session) promptField(ctx context.Context, fld field.Field) (field.Value, error) {
	label := fld.DisplayLabel()

	switch fld.DataType {
	case field.DataTypeSection:
		return field.Empty(), s.driver.Info(ctx, "-- "+label)
	case field.DataTypeBoolean:
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{Message: label})
		if err != nil {
			return field.Empty(), err
		}
		return field.Bool(answer), nil
	default:
		text, err := s.driver.Input(ctx, InputConfig{
			Message:   label,
			Help:      helpFor(fld),
			Validator: s.validatorFor(fld),
		})
		if err != nil {
			return field.Empty(), err
		}
		return field.String(text), nil
	}
}

// validatorFor bridges the field's checks into a prompt validator so the
// driver re-prompts until the answer passes.
func (s *Session) validatorFor(fld field.Field) func(string) error {
	return func(text string) error {
		result := s.validator.Validate(validation.Input{
			Required:     fld.Required,
			DataType:     fld.DataType,
			Restrictions: fld.Restrictions,
			Value:        field.String(text),
		})
		if result.Valid {
			return nil
		}
		return errors.New(strings.Join(result.Errors, "; "))
	}
}

func helpFor(fld field.Field) string {
	var hints []string
	if fld.Required {
		hints = append(hints, "required")
	}
	if fld.DataType != field.DataTypeShortText && fld.DataType != field.DataTypeLongText && fld.DataType != "" {
		hints = append(hints, fmt.Sprintf("type %s", fld.DataType))
	}
	return strings.Join(hints, ", ")
}
