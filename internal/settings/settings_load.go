package settings

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/internal/constants"
)

// Config names (YAML field paths)
const (
	ExploreSortSettingName    = "explore.sort"
	ExploreLimitSettingName   = "explore.limit"
	OnboardCountrySettingName = "onboard.country"
)

type Flag struct {
	Name  string
	Short string
}

type flagNames struct {
	CliEnvFile       Flag
	CliSettingsFile  Flag
	Verbose          Flag
	NonInteractive   Flag
	SkipConfirmation Flag
}

var Flags = flagNames{
	CliEnvFile:       Flag{"env", "e"},
	CliSettingsFile:  Flag{"settings", "S"},
	Verbose:          Flag{"verbose", "v"},
	NonInteractive:   Flag{"non-interactive", ""},
	SkipConfirmation: Flag{"yes", "y"},
}

func AddSkipConfirmation(cmd *cobra.Command) {
	cmd.Flags().BoolP(Flags.SkipConfirmation.Name, Flags.SkipConfirmation.Short, false, "If set, the command will skip the confirmation prompt and proceed with the operation even if it is destructive")
}

func AddNonInteractive(cmd *cobra.Command) {
	cmd.Flags().Bool(Flags.NonInteractive.Name, false, "Fail instead of prompting for missing input")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ExploreSortSettingName, constants.SortNewest)
	v.SetDefault(ExploreLimitSettingName, constants.DefaultExploreLimit)
}

// LoadSettingsIntoViper merges the settings file into v, if one is found,
// and returns its path. The --settings flag wins over a threef.yaml found
// in the current directory or its parents.
func LoadSettingsIntoViper(v *viper.Viper) (string, error) {
	setDefaults(v)

	path := v.GetString(Flags.CliSettingsFile.Name)
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
		found, err := findFileUpwards(cwd, constants.DefaultSettingsFileName)
		if err != nil {
			return "", nil
		}
		path = found
	}

	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return "", fmt.Errorf("error loading config file %s: %w", path, err)
	}
	return path, nil
}
