package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taaha3244/quicktools/internal/config"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	envFile   string
)

func Execute(version, commit, date string) error {
	return newRootCmd(version, commit, date).Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          config.AppName,
		Short:        "Catalog-driven utility tools",
		Long:         `QuickTools runs small PDF, image, AI writing and student calculation tools from one catalog, over HTTP, from the command line or in a terminal browser.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/quicktools/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format override (console, json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newProvidersCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
