package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/bnema/stagedock/internal/config"
	"github.com/bnema/stagedock/internal/domain/entity"
)

var schemaSnapshot bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print a JSON schema",
	Long: `Print the JSON schema for the configuration file, or for the
layout snapshot format with --snapshot.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaSnapshot, "snapshot", false, "print the layout snapshot schema instead")
}

func runSchema(_ *cobra.Command, _ []string) error {
	var data []byte
	var err error
	if schemaSnapshot {
		data, err = snapshotSchemaJSON()
	} else {
		data, err = config.SchemaJSON()
	}
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// snapshotSchemaJSON reflects the persisted snapshot envelope. The node
// union is described loosely; exact variant fields are enforced by the
// codec, not the schema.
func snapshotSchemaJSON() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&entity.LayoutSnapshot{})

	schema.ID = "https://github.com/bnema/stagedock/snapshot.schema.json"
	schema.Title = "Stagedock Layout Snapshot"
	schema.Description = "Persisted layout snapshot format"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
