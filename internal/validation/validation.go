package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/threef-labs/threef-cli/internal/validation/files"
)

var customValidators = map[string]validator.Func{
	"amount":          isAmount,
	"answers_file":    files.IsValidAnswersFile,
	"category":        isCategory,
	"image_file":      files.IsValidImageFile,
	"notblank":        isNotBlank,
	"path_read":       files.HasReadAccessToPath,
	"social_platform": isSocialPlatform,
}

var customTranslations = map[string]string{
	"amount":          "{0} must be empty or a non-negative number: {1}",
	"answers_file":    "{0} must be a valid YAML or TOML answers file: {1}",
	"category":        "{0} must be one of the known categories: {1}",
	"http_url":        "{0} must be a valid HTTP URL: {1}",
	"image_file":      "{0} must be a .jpg, .jpeg or .png file no larger than 5MB: {1}",
	"notblank":        "{0} is required",
	"path_read":       "{0} must have read access to path: {1}",
	"social_platform": "{0} must be a supported social platform: {1}",
}

type ValidationError struct {
	Field  string
	Detail string
}

type ValidationErrors []ValidationError

func (e *ValidationError) Error() string {
	return e.Detail
}

func (ve ValidationErrors) Error() string {
	msg := "validation error\n"
	for _, err := range ve {
		msg += err.Detail + "\n"
	}
	return msg
}

// Validator wraps a validator instance and a translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a new Validator with English translations registered.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	// field names in messages come from the cli tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		cliTag := fld.Tag.Get("cli")
		if cliTag != "" {
			return cliTag
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}

	if err := registerDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	for validatorName, validatorFunc := range customValidators {
		if err := validate.RegisterValidation(validatorName, validatorFunc); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates a struct and returns translated errors if any.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var msg string
		for _, e := range verrs {
			msg += e.Translate(v.trans) + "\n"
		}
		return fmt.Errorf("validation error:\n%s: %w", msg, verrs)
	}
	return err
}

// Var validates a single value against a tag list such as "required,http_url".
func (v *Validator) Var(value any, tag string) error {
	return v.validate.Var(value, tag)
}

// ParseValidationErrors parses a raw validation error and returns a slice of ValidationErrors.
func (v *Validator) ParseValidationErrors(err error) ValidationErrors {
	ves := ValidationErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			ves = append(ves, ValidationError{
				Field:  verr.StructNamespace(),
				Detail: verr.Translate(v.trans),
			})
		}
	}

	return ves
}

func registerDefaultTranslations(v *validator.Validate, trans ut.Translator) error {
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return fmt.Errorf("failed to register default translations: %w", err)
	}

	for tag, message := range customTranslations {
		if err := v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field(), fmt.Sprintf("%v", fe.Value()))
				return t
			},
		); err != nil {
			return fmt.Errorf("failed to register custom translation for %s: %w", tag, err)
		}
	}

	return nil
}
