package cmd

import (
	"github.com/spf13/cobra"

	"github.com/structml/tabrec/internal/config"
	"github.com/structml/tabrec/internal/output"
)

var (
	// Global flags
	settingsFlag     string
	outputFormatFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Loaded settings (populated during PersistentPreRunE)
	settings *config.Settings
)

// NewRootCmd creates the root command for the tabrec CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tabrec",
		Short:         "Table recognition pipeline configuration tool",
		Long:          `tabrec validates, inspects, and diffs table recognition pipeline documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "Path to settings file (env: TABREC_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "", "Output format: yaml, json, table")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(NewVetCmd())
	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewRegistryCmd())
	rootCmd.AddCommand(NewDatasetCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads the CLI settings.
func initializeGlobals(cmd *cobra.Command) error {
	loaded, err := config.NewLoader().LoadWithDefaults(settingsFlag)
	if err != nil {
		output.Debug("settings load error", "error", err)
		// Commands that do not need settings still work.
		loaded = config.DefaultSettings()
	}
	settings = loaded

	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}

	// Timestamps: flag (if explicitly set) > settings > default (off)
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if settings.Log.Timestamps != nil {
		logCfg.Timestamps = settings.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	if verboseFlag {
		output.Debug("initializing CLI",
			"settings", settingsFlag,
			"output", resolvedOutputFormat(),
			"dataRoot", settings.DataRoot,
		)
	}

	return nil
}

// GetSettings returns the loaded CLI settings.
func GetSettings() *config.Settings {
	if settings != nil {
		return settings
	}
	return config.DefaultSettings()
}

// resolvedOutputFormat applies precedence: flag > settings > yaml.
func resolvedOutputFormat() output.Format {
	if outputFormatFlag != "" {
		return output.ParseFormat(outputFormatFlag)
	}
	return output.ParseFormat(GetSettings().Output)
}
