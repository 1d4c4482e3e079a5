package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/daimoniac/vaultscan/internal/config"
	"github.com/daimoniac/vaultscan/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective non-default configuration",
	RunE:  runShowConfig,
}

var migrateConfigCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite the configuration file in the latest format",
	RunE:  runMigrateConfig,
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(migrateConfigCmd)
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.ToConfigDict())
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	for _, message := range cfg.DeprecationMessages {
		ui.Warningf("%s", message)
	}
	return nil
}

func runMigrateConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Migrating is the fix for the deprecation notices, so do not echo
	// them here
	cfg.DeprecationMessages = nil

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Migrated %s to the latest configuration format.\n", path)
	return nil
}
