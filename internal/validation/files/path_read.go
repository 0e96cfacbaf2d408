package files

import (
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// HasReadAccessToPath accepts a path that exists and can be opened.
func HasReadAccessToPath(fl validator.FieldLevel) bool {
	path, ok := stringField(fl)
	if !ok || path == "" {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	return true
}

func stringField(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}
