package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/internal/constants"
)

// sensitive information (not in configuration file)
const (
	StorageAccessKeyEnvVar = "THREEF_STORAGE_ACCESS_KEY"
	StorageSecretKeyEnvVar = "THREEF_STORAGE_SECRET_KEY"
)

const loadEnvErrorMessage = "Not able to load configuration from .env file, skipping this optional step.\n" +
	"The CLI reads individual environment variables instead (they MUST be exported).\n" +
	"If .env location is not provided via the --env flag, the CLI looks for a .env file in the current directory and its parents."

const bindEnvErrorMessage = "Not able to bind environment variables that represent sensitive data.\n" +
	"Image uploads need storage credentials, export them manually or set them in a .env file."

// Settings holds user and command configuration.
type Settings struct {
	Storage StorageSettings
	Explore ExploreSettings
	Onboard OnboardSettings
}

// StorageSettings are the object storage credentials.
type StorageSettings struct {
	AccessKey string
	SecretKey string
}

func (s StorageSettings) Configured() bool {
	return s.AccessKey != "" && s.SecretKey != ""
}

type ExploreSettings struct {
	Sort  string
	Limit int
}

// OnboardSettings prefill answers of the onboarding wizard.
type OnboardSettings struct {
	Country string
}

// New initializes and loads settings from the `.env` file, the optional
// threef.yaml settings file and the system environment.
func New(logger *zerolog.Logger, v *viper.Viper) (*Settings, error) {
	envPath := v.GetString(Flags.CliEnvFile.Name)

	if err := LoadEnv(envPath); err != nil {
		// .env file is optional
		logger.Debug().Err(err).Msg(loadEnvErrorMessage)
	}

	if err := BindEnv(v); err != nil {
		logger.Debug().Err(err).Msg(bindEnvErrorMessage)
	}

	path, err := LoadSettingsIntoViper(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if path != "" {
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	}

	sort := strings.ToLower(strings.TrimSpace(v.GetString(ExploreSortSettingName)))
	if sort != constants.SortNewest && sort != constants.SortBrand {
		return nil, fmt.Errorf("invalid %s %q: must be %s or %s", ExploreSortSettingName, sort, constants.SortNewest, constants.SortBrand)
	}
	limit := v.GetInt(ExploreLimitSettingName)
	if limit <= 0 {
		return nil, fmt.Errorf("invalid %s %d: must be positive", ExploreLimitSettingName, limit)
	}

	return &Settings{
		Storage: StorageSettings{
			AccessKey: strings.TrimSpace(v.GetString(StorageAccessKeyEnvVar)),
			SecretKey: strings.TrimSpace(v.GetString(StorageSecretKeyEnvVar)),
		},
		Explore: ExploreSettings{
			Sort:  sort,
			Limit: limit,
		},
		Onboard: OnboardSettings{
			Country: strings.TrimSpace(v.GetString(OnboardCountrySettingName)),
		},
	}, nil
}

func BindEnv(v *viper.Viper) error {
	envVars := []string{
		StorageAccessKeyEnvVar,
		StorageSecretKeyEnvVar,
	}

	for _, variable := range envVars {
		if err := v.BindEnv(variable); err != nil {
			return fmt.Errorf("failed to bind environment variable: %s", variable)
		}
	}

	v.AutomaticEnv()
	return nil
}

func LoadEnv(envPath string) error {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading file from %s: %w", envPath, err)
			}
			return nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}

	foundEnvPath, err := findFileUpwards(cwd, constants.DefaultEnvFileName)
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := godotenv.Load(foundEnvPath); err != nil {
		return fmt.Errorf("error loading file from %s: %w", foundEnvPath, err)
	}
	return nil
}

// findFileUpwards looks for fileName in startDir and each of its parents.
func findFileUpwards(startDir, fileName string) (string, error) {
	dir := startDir

	for {
		filePath := filepath.Join(dir, fileName)

		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return filePath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}
	return "", fmt.Errorf("file %s not found in any parent directory starting from %s", fileName, startDir)
}
