package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	TableOutputFormat = "table"
	JsonOutputFormat  = "json"
	YamlOutputFormat  = "yaml"

	OutputFlagName = "output"
)

// AddOutputFlag registers --output on cmd.
func AddOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(OutputFlagName, "o", TableOutputFormat, "Output format: table, json or yaml")
}

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	switch format {
	case TableOutputFormat, JsonOutputFormat, YamlOutputFormat:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, use one of table, json, yaml", format)
	}
}

// Write prints v in format. table renders the human readable view and is
// only called for the table format.
func Write(w io.Writer, format string, v any, table func() string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case JsonOutputFormat:
		out, err = json.MarshalIndent(v, "", "  ")
	case YamlOutputFormat:
		out, err = yaml.Marshal(v)
	case TableOutputFormat, "":
		_, err = fmt.Fprintln(w, table())
		return err
	default:
		return ValidateFormat(format)
	}
	if err != nil {
		return fmt.Errorf("could not serialize output as %s: %w", strings.ToUpper(format), err)
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(string(out), "\n"))
	return err
}

// ShortID shortens a row id for table output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ResolveID expands an id prefix, as shown by ShortID, to the one id in
// ids it matches.
func ResolveID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("an id is required")
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no entry with id %s", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %s is ambiguous, %d entries match", prefix, len(matches))
	}
}

// FormatAmount renders an optional amount.
func FormatAmount(amount *float64) string {
	if amount == nil {
		return "-"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *amount), "0"), ".")
}
