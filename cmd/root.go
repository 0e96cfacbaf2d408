package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/cmd/about"
	"github.com/threef-labs/threef-cli/cmd/explore"
	"github.com/threef-labs/threef-cli/cmd/faq"
	"github.com/threef-labs/threef-cli/cmd/image"
	"github.com/threef-labs/threef-cli/cmd/login"
	"github.com/threef-labs/threef-cli/cmd/logout"
	"github.com/threef-labs/threef-cli/cmd/onboard"
	"github.com/threef-labs/threef-cli/cmd/show"
	"github.com/threef-labs/threef-cli/cmd/signup"
	"github.com/threef-labs/threef-cli/cmd/team"
	"github.com/threef-labs/threef-cli/cmd/tier"
	"github.com/threef-labs/threef-cli/cmd/version"
	"github.com/threef-labs/threef-cli/cmd/whoami"
	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/logger"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/update"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCommand()

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootLogger := createLogger()
	rootViper := createViper()
	runtimeContext := runtime.NewContext(rootLogger, rootViper)

	// By defining a Run func, we force PersistentPreRunE to execute
	// even when 'threef', 'tier', etc is called with no subcommand
	// this enables to check for update and display if needed
	helpRunE := func(cmd *cobra.Command, args []string) error {
		err := cmd.Help()
		if err != nil {
			return fmt.Errorf("fail to show help: %w", err)
		}
		return nil
	}

	rootCmd := &cobra.Command{
		Use:               "threef",
		Short:             "3F CLI tool",
		Long:              `A command line tool for creators on 3F: sign up, set up your organization profile and manage the tiers, questions and team backers see.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE:              helpRunE,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := runtimeContext.Logger
			v := runtimeContext.Viper

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if verbose := v.GetBool(settings.Flags.Verbose.Name); verbose {
				newLogger := log.Level(zerolog.DebugLevel)
				runtimeContext.SetLogger(&newLogger)
			}

			if !isLoadEnvironment(cmd) {
				return nil
			}

			if err := runtimeContext.AttachEnvironmentSet(); err != nil {
				return err
			}
			if err := update.CheckMinimumVersion(version.Version, runtimeContext.EnvironmentSet.MinClientVersion); err != nil {
				return err
			}

			if err := runtimeContext.AttachSettings(); err != nil {
				return err
			}

			if err := runtimeContext.AttachCredentials(cmd.Context(), !requiresSession(cmd)); err != nil {
				return fmt.Errorf("failed to attach credentials: %w", err)
			}

			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if isLoadEnvironment(cmd) || cmd.Name() == "version" {
				update.CheckForUpdates(version.Version, runtimeContext.Logger)
			}
		},
	}

	cobra.AddTemplateFunc("wrappedFlagUsages", func(fs *pflag.FlagSet) string {
		// 100 = wrap width
		return strings.TrimRight(fs.FlagUsagesWrapped(100), "\n")
	})

	cobra.AddTemplateFunc("hasUngrouped", func(c *cobra.Command) bool {
		for _, cmd := range c.Commands() {
			if cmd.IsAvailableCommand() && !cmd.Hidden && cmd.GroupID == "" {
				return true
			}
		}
		return false
	})

	rootCmd.SetHelpTemplate(`
{{- with (or .Long .Short)}}{{.}}{{end}}

Usage:
{{- if .Runnable}}
  {{.UseLine}}
{{- else if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]
{{- end}}

{{- /* ============================================ */}}
{{- /* Available Commands Section                 */}}
{{- /* ============================================ */}}
{{- if .HasAvailableSubCommands}}

Available Commands:
  {{- $groupsUsed := false -}}
  {{- $firstGroup := true -}}

  {{- range $grp := .Groups}}
    {{- $has := false -}}
    {{- range $.Commands}}
      {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID $grp.ID))}}
        {{- $has = true}}
      {{- end}}
    {{- end}}
    
    {{- if $has}}
      {{- $groupsUsed = true -}}
      {{- if $firstGroup}}{{- $firstGroup = false -}}{{else}}

{{- end}}

  {{printf "%s:" $grp.Title}}
      {{- range $.Commands}}
        {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID $grp.ID))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
        {{- end}}
      {{- end}}
    {{- end}}
  {{- end}}

  {{- if $groupsUsed }}
    {{- /* Groups are in use; show ungrouped as "Other" if any */}}
    {{- if hasUngrouped .}}

  Other:
      {{- range .Commands}}
        {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID ""))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
        {{- end}}
      {{- end}}
    {{- end}}
  {{- else }}
    {{- /* No groups at this level; show a flat list with no "Other" header */}}
    {{- range .Commands}}
      {{- if (and (not .Hidden) (.IsAvailableCommand))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
      {{- end}}
    {{- end}}
  {{- end }}
{{- end }}

{{- if .HasExample}}

Examples:
{{.Example}}
{{- end }}

{{- $local := (.LocalFlags.FlagUsagesWrapped 100 | trimTrailingWhitespaces) -}}
{{- if $local }}

Flags:
{{$local}}
{{- end }}

{{- $inherited := (.InheritedFlags.FlagUsagesWrapped 100 | trimTrailingWhitespaces) -}}
{{- if $inherited }}

Global Flags:
{{$inherited}}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{.CommandPath}} [command] --help" for more information about a command.
{{- end }}

Tip: New here? Run:
  $ threef signup
    to create your 3F account, or threef login if you have one, then:
  $ threef onboard
    to set up your organization profile.

Need more help?
  Visit https://3f.example.com/help
`)

	// Definition of global flags:
	// env file flag is present for every subcommand
	rootCmd.PersistentFlags().StringP(
		settings.Flags.CliEnvFile.Name,
		settings.Flags.CliEnvFile.Short,
		constants.DefaultEnvFileName,
		fmt.Sprintf("Path to %s file which contains sensitive info", constants.DefaultEnvFileName),
	)

	rootCmd.PersistentFlags().StringP(
		settings.Flags.CliSettingsFile.Name,
		settings.Flags.CliSettingsFile.Short,
		"",
		fmt.Sprintf("Path to the settings file (default: %s in the current directory or above)", constants.DefaultSettingsFileName),
	)

	// verbose flag is present in every subcommand
	rootCmd.PersistentFlags().BoolP(
		settings.Flags.Verbose.Name,
		settings.Flags.Verbose.Short,
		false,
		"Run command in VERBOSE mode",
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	signupCmd := signup.New(runtimeContext)
	onboardCmd := onboard.New(runtimeContext)
	loginCmd := login.New(runtimeContext)
	logoutCmd := logout.New(runtimeContext)
	whoamiCmd := whoami.New(runtimeContext)
	tierCmd := tier.New(runtimeContext)
	faqCmd := faq.New(runtimeContext)
	teamCmd := team.New(runtimeContext)
	aboutCmd := about.New(runtimeContext)
	imageCmd := image.New(runtimeContext)
	exploreCmd := explore.New(runtimeContext)
	showCmd := show.New(runtimeContext)
	versionCmd := version.New(runtimeContext)

	for _, c := range []*cobra.Command{tierCmd, faqCmd, teamCmd, aboutCmd, imageCmd} {
		c.RunE = helpRunE
	}

	// Define groups (order controls display order)
	rootCmd.AddGroup(&cobra.Group{ID: "getting-started", Title: "Getting Started"})
	rootCmd.AddGroup(&cobra.Group{ID: "account", Title: "Account"})
	rootCmd.AddGroup(&cobra.Group{ID: "profile", Title: "Profile"})
	rootCmd.AddGroup(&cobra.Group{ID: "discover", Title: "Discover"})

	signupCmd.GroupID = "getting-started"
	onboardCmd.GroupID = "getting-started"

	loginCmd.GroupID = "account"
	logoutCmd.GroupID = "account"
	whoamiCmd.GroupID = "account"

	tierCmd.GroupID = "profile"
	faqCmd.GroupID = "profile"
	teamCmd.GroupID = "profile"
	aboutCmd.GroupID = "profile"
	imageCmd.GroupID = "profile"

	exploreCmd.GroupID = "discover"
	showCmd.GroupID = "discover"

	rootCmd.AddCommand(
		signupCmd,
		onboardCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
		tierCmd,
		faqCmd,
		teamCmd,
		aboutCmd,
		imageCmd,
		exploreCmd,
		showCmd,
		versionCmd,
	)

	return rootCmd
}

func isLoadEnvironment(cmd *cobra.Command) bool {
	// Nothing needs the environment, settings or the session for these commands
	var excludedCommands = map[string]struct{}{
		"version":    {},
		"bash":       {},
		"fish":       {},
		"powershell": {},
		"zsh":        {},
		"help":       {},
		"completion": {},
		"threef":     {},
		"tier":       {},
		"faq":        {},
		"team":       {},
		"about":      {},
		"image":      {},
	}

	_, exists := excludedCommands[cmd.Name()]
	return !exists
}

func requiresSession(cmd *cobra.Command) bool {
	// These commands load the session, if any, without checking it with the identity provider
	var excludedCommands = map[string]struct{}{
		"login":   {},
		"signup":  {},
		"logout":  {},
		"explore": {},
		"show":    {},
	}

	_, exists := excludedCommands[cmd.Name()]
	return !exists
}

func createLogger() *zerolog.Logger {
	return logger.NewConsoleLogger()
}

func createViper() *viper.Viper {
	return viper.New() //nolint:forbidigo
}
