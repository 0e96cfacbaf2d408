package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/internal/settings"
)

const testSettingsContent = `
explore:
  sort: newest
  limit: 20
onboard:
  country: Nigeria
`

// NewTestSettings loads settings from a temporary threef.yaml with fixed
// values and no storage credentials.
func NewTestSettings(v *viper.Viper, logger *zerolog.Logger) (*settings.Settings, error) {
	tmpDir, err := os.MkdirTemp("", "test-settings")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}

	settingsFile := filepath.Join(tmpDir, "threef.yaml")
	if err := os.WriteFile(settingsFile, []byte(testSettingsContent), 0600); err != nil {
		return nil, fmt.Errorf("failed to write settings file: %w", err)
	}

	v.Set(settings.Flags.CliSettingsFile.Name, settingsFile)
	v.Set(settings.Flags.CliEnvFile.Name, filepath.Join(tmpDir, ".env"))

	testSettings, err := settings.New(logger, v)
	if err != nil {
		return nil, fmt.Errorf("failed to create new test settings: %w", err)
	}

	return testSettings, nil
}
