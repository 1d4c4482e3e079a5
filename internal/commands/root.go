// Package commands wires up the vaultscan CLI surface.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/daimoniac/vaultscan/internal/observability"
	"github.com/daimoniac/vaultscan/internal/version"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "vaultscan",
	Short: "Find and manage leaked secrets in your repositories",
	Long: `vaultscan scans source code for leaked secrets, insecure IaC
configurations and vulnerable dependencies.

Scan behavior is controlled by layered .vaultscan.yaml files: a global
one in your home directory and a local one in the repository. The local
file appends to the global file's ignore lists and overrides its scalar
options.`,
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if debug {
			level = "debug"
		}
		slog.SetDefault(observability.NewLogger(level))
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "load this config file instead of the global/local pair")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(configCmd)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
}
