// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/stagedock/internal/cli/styles"
	"github.com/bnema/stagedock/internal/domain/repository"
	"github.com/bnema/stagedock/internal/logging"
)

// LayoutsModel is the Bubble Tea model for the interactive layout browser.
type LayoutsModel struct {
	// UI components
	help    help.Model
	keys    layoutsKeyMap
	confirm *styles.ConfirmModel

	// State
	layouts       []repository.LayoutInfo
	trees         map[string]string // rendered trees, keyed by layout name
	selectedIdx   int
	expandedIdx   int // -1 means none expanded
	width         int
	height        int
	err           error
	statusMessage string

	// Dependencies
	ctx   context.Context
	repo  repository.LayoutRepository
	theme *styles.Theme
}

// layoutsKeyMap defines keybindings for the layout browser.
type layoutsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Expand  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k layoutsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Delete, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k layoutsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.Delete, k.Refresh},
		{k.Help, k.Quit},
	}
}

func defaultLayoutsKeyMap() layoutsKeyMap {
	return layoutsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "expand/collapse"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewLayoutsModel creates a new layout browser model.
func NewLayoutsModel(ctx context.Context, theme *styles.Theme, repo repository.LayoutRepository) LayoutsModel {
	return LayoutsModel{
		help:        help.New(),
		keys:        defaultLayoutsKeyMap(),
		trees:       make(map[string]string),
		expandedIdx: -1,
		width:       80,
		height:      24,
		ctx:         ctx,
		repo:        repo,
		theme:       theme,
	}
}

// Init implements tea.Model.
func (m LayoutsModel) Init() tea.Cmd {
	return m.loadLayouts
}

// layoutsLoadedMsg is sent when the layout list is loaded.
type layoutsLoadedMsg struct {
	layouts []repository.LayoutInfo
	err     error
}

// layoutDeletedMsg is sent when a layout is deleted.
type layoutDeletedMsg struct {
	name string
	err  error
}

// layoutTreeMsg is sent when an expanded layout's tree is rendered.
type layoutTreeMsg struct {
	name string
	tree string
	err  error
}

func (m LayoutsModel) loadLayouts() tea.Msg {
	log := logging.FromContext(m.ctx)

	layouts, err := m.repo.ListSnapshots(m.ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list layouts")
		return layoutsLoadedMsg{err: err}
	}

	log.Debug().Int("count", len(layouts)).Msg("loaded layouts")
	return layoutsLoadedMsg{layouts: layouts}
}

func (m LayoutsModel) loadTree(name string) tea.Cmd {
	return func() tea.Msg {
		snap, err := m.repo.GetSnapshot(m.ctx, name)
		if err != nil {
			return layoutTreeMsg{name: name, err: err}
		}
		return layoutTreeMsg{name: name, tree: RenderSnapshotTree(snap)}
	}
}

func (m LayoutsModel) deleteLayout(name string) tea.Cmd {
	return func() tea.Msg {
		log := logging.FromContext(m.ctx)
		log.Info().Str("name", name).Msg("deleting layout")

		err := m.repo.DeleteSnapshot(m.ctx, name)
		return layoutDeletedMsg{name: name, err: err}
	}
}

// Update implements tea.Model.
func (m LayoutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case layoutsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.layouts = msg.layouts
			m.err = nil
			if m.selectedIdx >= len(m.layouts) {
				m.selectedIdx = max(0, len(m.layouts)-1)
			}
		}
		return m, nil

	case layoutDeletedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMessage = fmt.Sprintf("Layout %q deleted", msg.name)
			delete(m.trees, msg.name)
			m.expandedIdx = -1
		}
		return m, m.loadLayouts

	case layoutTreeMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.trees[msg.name] = msg.tree
		}
		return m, nil
	}

	return m, nil
}

func (m LayoutsModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if m.confirm.Done() {
		if m.confirm.Result() && m.selectedIdx < len(m.layouts) {
			cmd = m.deleteLayout(m.layouts[m.selectedIdx].Name)
		}
		m.confirm = nil
		return m, cmd
	}
	return m, cmd
}

func (m LayoutsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.layouts)-1 {
			m.selectedIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		if m.expandedIdx == m.selectedIdx {
			m.expandedIdx = -1 // collapse
			return m, nil
		}
		if m.selectedIdx < len(m.layouts) {
			m.expandedIdx = m.selectedIdx
			name := m.layouts[m.selectedIdx].Name
			if _, ok := m.trees[name]; !ok {
				return m, m.loadTree(name)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.selectedIdx < len(m.layouts) {
			name := m.layouts[m.selectedIdx].Name
			confirm := styles.NewConfirm(m.theme, fmt.Sprintf("Delete layout %q?", name))
			m.confirm = &confirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.trees = make(map[string]string)
		return m, m.loadLayouts

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m LayoutsModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Error: %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	}

	if m.statusMessage != "" {
		b.WriteString(t.Subtle.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	if len(m.layouts) == 0 {
		b.WriteString(t.Subtle.Render("  No saved layouts found."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderLayoutsList())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m LayoutsModel) renderHeader() string {
	t := m.theme

	icon := lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconLayout)
	title := t.Title.MarginLeft(1).Render("Layouts")

	var tabTotal int
	for _, info := range m.layouts {
		tabTotal += info.TabCount
	}
	stats := t.Subtle.Render(fmt.Sprintf("  %d saved  %s %d tabs",
		len(m.layouts), styles.IconTab, tabTotal))

	return icon + title + stats
}

func (m LayoutsModel) renderLayoutsList() string {
	var b strings.Builder

	for i, info := range m.layouts {
		b.WriteString(m.renderLayoutRow(info, i == m.selectedIdx))
		b.WriteString("\n")

		if i == m.expandedIdx {
			b.WriteString(m.renderLayoutTree(info.Name))
		}
	}

	return b.String()
}

func (m LayoutsModel) renderLayoutRow(info repository.LayoutInfo, isSelected bool) string {
	t := m.theme

	cursor := "  "
	if isSelected {
		cursor = t.Highlight.Render(styles.IconCursor + " ")
	}

	nameStyle := t.Normal
	if isSelected {
		nameStyle = t.Highlight
	}

	counts := t.Subtle.Render(fmt.Sprintf("  %d windows, %d tabs", info.WindowCount, info.TabCount))
	saved := t.Subtle.Render(fmt.Sprintf("  %s %s", styles.IconClock, info.SavedAt))

	return cursor + nameStyle.Render(info.Name) + counts + saved
}

func (m LayoutsModel) renderLayoutTree(name string) string {
	t := m.theme

	tree, ok := m.trees[name]
	if !ok {
		return t.Subtle.Render("    loading...") + "\n"
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(tree, "\n"), "\n") {
		b.WriteString(t.Subtle.Render("    " + line))
		b.WriteString("\n")
	}
	return b.String()
}
