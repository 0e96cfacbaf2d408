package rowstore

import (
	"fmt"
	"reflect"
	"strings"
)

// columnsOf lists the json tag names of the struct that out points to,
// directly or as a slice element. Fields tagged "-" or without a tag are
// skipped.
func columnsOf(out any) ([]string, error) {
	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("rowstore: out must be a pointer, got %T", out)
	}
	t = t.Elem()
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("rowstore: out must point to a struct or a slice of structs, got %T", out)
	}

	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("rowstore: %s has no json tagged fields", t)
	}
	return cols, nil
}
