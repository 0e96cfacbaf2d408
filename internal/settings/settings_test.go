package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(settings.StorageAccessKeyEnvVar, "")
	t.Setenv(settings.StorageSecretKeyEnvVar, "")

	s, err := settings.New(testutil.NewTestLogger(), viper.New())
	require.NoError(t, err)

	assert.Equal(t, constants.SortNewest, s.Explore.Sort)
	assert.Equal(t, constants.DefaultExploreLimit, s.Explore.Limit)
	assert.Empty(t, s.Onboard.Country)
	assert.False(t, s.Storage.Configured())
}

func TestNew_LoadsEnvFileFromFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	envFile := filepath.Join(dir, "custom.env")
	require.NoError(t, godotenv.Write(map[string]string{
		settings.StorageAccessKeyEnvVar: "access",
		settings.StorageSecretKeyEnvVar: " secret ",
	}, envFile))
	t.Cleanup(func() {
		os.Unsetenv(settings.StorageAccessKeyEnvVar)
		os.Unsetenv(settings.StorageSecretKeyEnvVar)
	})

	v := viper.New()
	v.Set(settings.Flags.CliEnvFile.Name, envFile)

	s, err := settings.New(testutil.NewTestLogger(), v)
	require.NoError(t, err)
	assert.Equal(t, "access", s.Storage.AccessKey)
	assert.Equal(t, "secret", s.Storage.SecretKey)
	assert.True(t, s.Storage.Configured())
}

func TestNew_FindsSettingsFileInParent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, constants.DefaultSettingsFileName), "explore:\n  sort: brand\n  limit: 5\nonboard:\n  country: Ghana\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	s, err := settings.New(testutil.NewTestLogger(), viper.New())
	require.NoError(t, err)
	assert.Equal(t, constants.SortBrand, s.Explore.Sort)
	assert.Equal(t, 5, s.Explore.Limit)
	assert.Equal(t, "Ghana", s.Onboard.Country)
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown sort", "explore:\n  sort: popular\n", "explore.sort"},
		{"zero limit", "explore:\n  limit: 0\n", "explore.limit"},
		{"malformed yaml", "explore: [\n", "error loading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "custom.yaml")
			writeFile(t, path, tt.content)

			v := viper.New()
			v.Set(settings.Flags.CliSettingsFile.Name, path)

			_, err := settings.New(testutil.NewTestLogger(), v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	err := settings.LoadEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), constants.DefaultEnvFileName)
}

func TestNewTestSettings(t *testing.T) {
	s, err := testutil.NewTestSettings(viper.New(), testutil.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 20, s.Explore.Limit)
	assert.Equal(t, "Nigeria", s.Onboard.Country)
}
