package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// SchemaJSON returns the JSON schema for the configuration as pretty JSON.
func SchemaJSON() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/stagedock/config.schema.json"
	schema.Title = "Stagedock Configuration"
	schema.Description = "Configuration schema for stagedock, a panel docking layout engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile generates a JSON schema file for the configuration.
// This is called automatically when a default config is created.
func GenerateSchemaFile() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	data, err := SchemaJSON()
	if err != nil {
		return err
	}

	schemaFile := filepath.Join(configDir, "config.schema.json")
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
