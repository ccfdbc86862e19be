// Package cmd implements the link-checker command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	infraconfig "github.com/jonesrussell/north-cloud/link-checker/infrastructure/config"
)

const defaultConfigPath = "config.yml"

// Version is overridden at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug forces debug logging and gin debug mode.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "link-checker",
		Short: "Find broken links in published content",
		Long: `link-checker discovers links in the content corpus, probes them over HTTP,
and tracks long-running scans that can be stopped and resumed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_PATH or ./config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	// Flag errors only happen for unknown flag names.
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindEnv("debug", "APP_DEBUG")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "link-checker version %s\n", Version)
		},
	})

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(checkCommand())
	rootCmd.AddCommand(scanCommand())
	rootCmd.AddCommand(linksCommand())
}

// configPath resolves --config, then CONFIG_PATH, then ./config.yml.
func configPath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}
	return infraconfig.GetConfigPath(defaultConfigPath)
}
