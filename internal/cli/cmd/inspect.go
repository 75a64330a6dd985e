package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/stagedock/internal/cli/model"
	"github.com/bnema/stagedock/internal/domain/entity"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a snapshot file as a tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		snap, err := readSnapshotFile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(model.RenderSnapshotTree(snap))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a snapshot file",
	Long: `Decode a layout snapshot file and rebuild it through the domain
model, reporting anything the codec had to repair (clamped indices,
normalized proportions).`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		snap, err := readSnapshotFile(args[0])
		if err != nil {
			return err
		}

		layout := snap.ToLayout()
		rebuilt := entity.SnapshotFromLayout(layout)

		tabs := len(layout.AllTabs())

		if snapshotsStructurallyEqual(snap, rebuilt) {
			fmt.Printf("%s: valid (%d windows, %d tabs)\n", args[0], len(snap.Windows), tabs)
			return nil
		}

		fmt.Printf("%s: valid after repair (%d windows, %d tabs)\n", args[0], len(rebuilt.Windows), tabs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
}

func readSnapshotFile(path string) (*entity.LayoutSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap entity.LayoutSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// snapshotsStructurallyEqual compares two snapshots through the layouts
// they rehydrate to, ignoring serialization details like field order.
func snapshotsStructurallyEqual(a, b *entity.LayoutSnapshot) bool {
	return entity.LayoutsEqual(a.ToLayout(), b.ToLayout())
}
