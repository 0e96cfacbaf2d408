package ui

import (
	"github.com/charmbracelet/huh"
)

// ConfirmOption configures a Confirm prompt.
type ConfirmOption func(*confirmConfig)

type confirmConfig struct {
	affirmative string
	negative    string
	description string
}

// WithLabels sets custom affirmative/negative button labels for Confirm.
func WithLabels(affirmative, negative string) ConfirmOption {
	return func(c *confirmConfig) {
		c.affirmative = affirmative
		c.negative = negative
	}
}

func WithDescription(desc string) ConfirmOption {
	return func(c *confirmConfig) {
		c.description = desc
	}
}

// Confirm displays a yes/no prompt and returns the user's choice.
func Confirm(title string, opts ...ConfirmOption) (bool, error) {
	cfg := confirmConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	var result bool
	confirm := huh.NewConfirm().
		Title(title).
		Value(&result)

	if cfg.affirmative != "" {
		confirm = confirm.Affirmative(cfg.affirmative)
	}
	if cfg.negative != "" {
		confirm = confirm.Negative(cfg.negative)
	}
	if cfg.description != "" {
		confirm = confirm.Description(cfg.description)
	}

	if err := runForm(confirm); err != nil {
		return false, err
	}
	return result, nil
}

// InputOption configures an Input prompt.
type InputOption func(*inputConfig)

type inputConfig struct {
	description string
	placeholder string
	password    bool
	value       string
}

func WithInputDescription(desc string) InputOption {
	return func(c *inputConfig) {
		c.description = desc
	}
}

func WithPlaceholder(placeholder string) InputOption {
	return func(c *inputConfig) {
		c.placeholder = placeholder
	}
}

// WithInitialValue prefills the input, used when editing an existing row.
func WithInitialValue(value string) InputOption {
	return func(c *inputConfig) {
		c.value = value
	}
}

// Input displays a single text input prompt and returns the entered value.
func Input(title string, opts ...InputOption) (string, error) {
	cfg := inputConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	result := cfg.value
	input := huh.NewInput().
		Title(title).
		Value(&result)

	if cfg.description != "" {
		input = input.Description(cfg.description)
	}
	if cfg.placeholder != "" {
		input = input.Placeholder(cfg.placeholder)
	}
	if cfg.password {
		input = input.EchoMode(huh.EchoModePassword)
	}

	if err := runForm(input); err != nil {
		return "", err
	}
	return result, nil
}

// Password is an Input whose characters are masked.
func Password(title string, opts ...InputOption) (string, error) {
	opts = append(opts, func(c *inputConfig) { c.password = true })
	return Input(title, opts...)
}

// Text displays a multi-line text area.
func Text(title string, opts ...InputOption) (string, error) {
	cfg := inputConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	result := cfg.value
	text := huh.NewText().
		Title(title).
		Value(&result)
	if cfg.description != "" {
		text = text.Description(cfg.description)
	}
	if cfg.placeholder != "" {
		text = text.Placeholder(cfg.placeholder)
	}

	if err := runForm(text); err != nil {
		return "", err
	}
	return result, nil
}

// SelectOption represents a single option in a Select prompt.
type SelectOption[T comparable] struct {
	Label string
	Value T
}

// Select displays a selection prompt and returns the chosen value.
func Select[T comparable](title string, options []SelectOption[T]) (T, error) {
	var result T

	huhOpts := make([]huh.Option[T], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}

	err := runForm(
		huh.NewSelect[T]().
			Title(title).
			Options(huhOpts...).
			Value(&result),
	)
	return result, err
}

// StringOptions turns plain strings into options labeled by themselves.
func StringOptions(values []string) []SelectOption[string] {
	out := make([]SelectOption[string], len(values))
	for i, v := range values {
		out[i] = SelectOption[string]{Label: v, Value: v}
	}
	return out
}

// InputField represents a single field in a multi-field InputForm.
type InputField struct {
	Title       string
	Description string
	Placeholder string
	Value       *string
	Validate    func(string) error
	Suggestions []string
}

// InputForm displays a multi-field input form. Each field writes to its Value pointer.
func InputForm(fields []InputField) error {
	huhFields := make([]huh.Field, len(fields))
	for i, f := range fields {
		input := huh.NewInput().
			Title(f.Title).
			Value(f.Value)

		if f.Description != "" {
			input = input.Description(f.Description)
		}
		if f.Placeholder != "" {
			input = input.Placeholder(f.Placeholder)
		}
		if f.Validate != nil {
			input = input.Validate(f.Validate)
		}
		if len(f.Suggestions) > 0 {
			input = input.Suggestions(f.Suggestions)
		}
		huhFields[i] = input
	}

	return runForm(huhFields...)
}

func runForm(fields ...huh.Field) error {
	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithTheme(Theme()).WithKeyMap(KeyMap()).Run()
}
