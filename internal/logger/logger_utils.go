package logger

import (
	"sort"

	"github.com/rs/zerolog"
)

// redactedFields never reach the log output.
var redactedFields = map[string]struct{}{
	"password":      {},
	"access_token":  {},
	"refresh_token": {},
	"id_token":      {},
}

// FieldsWrapper logs an arbitrary field map in a stable key order with
// secrets masked.
type FieldsWrapper struct {
	Fields map[string]any
}

func (w FieldsWrapper) MarshalZerologObject(e *zerolog.Event) {
	keys := make([]string, 0, len(w.Fields))
	for k := range w.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, secret := redactedFields[key]; secret {
			e.Str(key, "[REDACTED]")
			continue
		}
		switch v := w.Fields[key].(type) {
		case string:
			e.Str(key, v)
		case []string:
			e.Strs(key, v)
		case bool:
			e.Bool(key, v)
		default:
			e.Interface(key, v)
		}
	}
}
