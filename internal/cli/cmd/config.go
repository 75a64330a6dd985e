package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/stagedock/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect stagedock configuration",
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// config show
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(app.Config)
	},
}

// config path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := config.GetConfigFile()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// config schema
var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	Long: `Print the JSON schema describing the configuration file format.

Point your editor's JSON language server at the schema for completion
and validation while editing config.json.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
}
