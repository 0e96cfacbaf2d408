package files

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// IsValidAnswersFile accepts a readable YAML (.yaml, .yml) or TOML (.toml)
// document. Files without a known extension are parsed as YAML.
func IsValidAnswersFile(fl validator.FieldLevel) bool {
	path, ok := stringField(fl)
	if !ok {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var content map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.Decode(string(data), &content)
	default:
		err = yaml.Unmarshal(data, &content)
	}
	return err == nil
}
