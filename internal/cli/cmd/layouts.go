package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/stagedock/internal/cli/model"
	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/domain/repository"
)

var layoutsJSON bool

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage saved layouts",
	Long: `View, inspect, and manage saved layout snapshots.

Layouts are saved by the host application while it runs. Run without
arguments to open the interactive layout browser.`,
	RunE: runLayouts,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

func runLayouts(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	m := model.NewLayoutsModel(app.Ctx(), app.Theme, app.Layouts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// layouts list
var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved layouts",
	RunE:  runLayoutsList,
}

func init() {
	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsListCmd.Flags().BoolVar(&layoutsJSON, "json", false, "output as JSON")
}

func runLayoutsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	infos, err := app.Layouts.ListSnapshots(app.Ctx())
	if err != nil {
		return fmt.Errorf("list layouts: %w", err)
	}

	if layoutsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	return outputLayoutsTable(infos)
}

func outputLayoutsTable(infos []repository.LayoutInfo) error {
	if len(infos) == 0 {
		fmt.Println("No saved layouts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tWINDOWS\tTABS\tSIZE\tSAVED AT")

	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%dB\t%s\n",
			info.Name,
			info.WindowCount,
			info.TabCount,
			info.SizeBytes,
			info.SavedAt,
		)
	}

	return w.Flush()
}

// layouts show <name>
var layoutsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved layout as a tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsShow,
}

func init() {
	layoutsCmd.AddCommand(layoutsShowCmd)
}

func runLayoutsShow(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	snap, err := app.Layouts.GetSnapshot(app.Ctx(), args[0])
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	fmt.Print(model.RenderSnapshotTree(snap))
	return nil
}

// layouts delete <name>
var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsDelete,
}

func init() {
	layoutsCmd.AddCommand(layoutsDeleteCmd)
}

func runLayoutsDelete(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if err := app.Layouts.DeleteSnapshot(app.Ctx(), args[0]); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}

	fmt.Printf("Layout %q deleted.\n", args[0])
	return nil
}

// layouts export <name>
var layoutsExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print a saved layout as JSON",
	Long: `Print the snapshot of a saved layout as JSON on stdout.

The output round-trips through 'stagedock layouts import'.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutsExport,
}

func init() {
	layoutsCmd.AddCommand(layoutsExportCmd)
}

func runLayoutsExport(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	snap, err := app.Layouts.GetSnapshot(app.Ctx(), args[0])
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// layouts import <name> <file>
var layoutsImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Import a layout snapshot from a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE:  runLayoutsImport,
}

func init() {
	layoutsCmd.AddCommand(layoutsImportCmd)
}

func runLayoutsImport(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read snapshot file: %w", err)
	}

	var snap entity.LayoutSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	// Round-trip through the domain model so a malformed file fails
	// here instead of at restore time.
	snap = *entity.SnapshotFromLayout(snap.ToLayout())

	if err := app.Layouts.SaveSnapshot(app.Ctx(), args[0], &snap); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}

	fmt.Printf("Layout %q imported.\n", args[0])
	return nil
}
