package validation

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/threef-labs/threef-cli/internal/catalog"
)

func isNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !field.IsNil()
	default:
		return !field.IsZero()
	}
}

// isAmount accepts an empty string (no amount) or a non-negative decimal.
func isAmount(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return IsAmount(field.String())
	case reflect.Float32, reflect.Float64:
		return field.Float() >= 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() >= 0
	case reflect.Ptr:
		if field.IsNil() {
			return true
		}
		elem := field.Elem()
		return (elem.Kind() == reflect.Float64 || elem.Kind() == reflect.Float32) && elem.Float() >= 0
	default:
		return false
	}
}

var errAmountSeparator = errors.New("amount must not contain digit separators")

// IsAmount reports whether s is empty or parses as a non-negative number.
func IsAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if strings.Contains(s, "_") {
		return false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) {
		return false
	}
	return n >= 0
}

// ParseAmount returns nil for an empty amount.
func ParseAmount(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// ParseFloat accepts Go literal underscores such as "1_000".
	if strings.Contains(s, "_") {
		return nil, errAmountSeparator
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func isSocialPlatform(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && catalog.IsSocialPlatform(fl.Field().String())
}

func isCategory(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && catalog.IsCategory(fl.Field().String())
}
