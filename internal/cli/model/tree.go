package model

import (
	"fmt"
	"strings"

	"github.com/bnema/stagedock/internal/domain/entity"
)

// RenderSnapshotTree renders a saved layout as an indented tree, one line
// per node, suitable for terminal output.
func RenderSnapshotTree(snap *entity.LayoutSnapshot) string {
	if snap == nil || len(snap.Windows) == 0 {
		return "(empty layout)\n"
	}

	var b strings.Builder
	for _, win := range snap.Windows {
		fmt.Fprintf(&b, "window %s (%gx%g)\n", win.ID, win.Frame.W, win.Frame.H)
		renderNode(&b, win.RootNode, "  ")
	}
	return b.String()
}

func renderNode(b *strings.Builder, node *entity.NodeSnapshot, indent string) {
	if node == nil {
		b.WriteString(indent + "(empty)\n")
		return
	}

	switch node.Type {
	case "split":
		fmt.Fprintf(b, "%ssplit %s [%s]", indent, node.ID, node.Axis)
		if len(node.Proportions) > 0 {
			parts := make([]string, len(node.Proportions))
			for i, p := range node.Proportions {
				parts[i] = fmt.Sprintf("%.0f%%", p*100)
			}
			fmt.Fprintf(b, " %s", strings.Join(parts, "/"))
		}
		b.WriteString("\n")
		for _, child := range node.Children {
			renderNode(b, child, indent+"  ")
		}

	case "tabGroup":
		fmt.Fprintf(b, "%sgroup %s (%d tabs)\n", indent, node.ID, len(node.Tabs))
		for i, tab := range node.Tabs {
			marker := " "
			if i == node.ActiveTabIndex {
				marker = "*"
			}
			title := tab.Title
			if title == "" {
				title = string(tab.ID)
			}
			fmt.Fprintf(b, "%s  %s %s\n", indent, marker, title)
		}

	case "stageHost":
		fmt.Fprintf(b, "%sstages %s (%d stages)\n", indent, node.ID, len(node.Stages))
		for i, stage := range node.Stages {
			marker := " "
			if i == node.ActiveStageIndex {
				marker = "*"
			}
			title := stage.Title
			if title == "" {
				title = string(stage.ID)
			}
			fmt.Fprintf(b, "%s  %s %s\n", indent, marker, title)
			renderNode(b, stage.Layout, indent+"    ")
		}

	default:
		fmt.Fprintf(b, "%s%s %s\n", indent, node.Type, node.ID)
	}
}
