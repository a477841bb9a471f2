package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rapbook/internal/adapters/tui/styles"
	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	NewRap    key.Binding
	NewFolder key.Binding
	Edit      key.Binding
	Rename    key.Binding
	Move      key.Binding
	Delete    key.Binding
	Yank      key.Binding
	Search    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/edit"),
	),
	NewRap: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new rap"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new folder"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy lyrics"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// previewLines is how much of a rap the preview pane shows
const previewLines = 8

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	client    *application.Client
	spinner   spinner.Model
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	cursor    int
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(client *application.Client) *BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &BrowserModel{
		client:  client,
		spinner: s,
	}
}

// Init loads the library unless it is already in memory
func (m *BrowserModel) Init() tea.Cmd {
	if m.client.IsLoaded() {
		return m.Reload("")
	}
	return tea.Batch(m.spinner.Tick, m.loadLibrary)
}

func (m *BrowserModel) loadLibrary() tea.Msg {
	if err := m.client.LoadInitialData(context.Background()); err != nil {
		return loadFailedMsg{err}
	}
	return treeLoadedMsg{root: m.client.Tree("")}
}

type treeLoadedMsg struct {
	root     *domain.TreeNode
	revealID string
}

type loadFailedMsg struct {
	err error
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.root != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case treeLoadedMsg:
		m.applyTree(msg.root, msg.revealID)
		return m, nil

	case loadFailedMsg:
		// fall back to the in-memory state, empty on first load
		m.SetMessage("Couldn't load library: "+ErrorText(msg.err), true)
		m.applyTree(m.client.Tree(""), "")
		return m, nil

	case ActionErrMsg:
		m.SetMessage(ErrorText(msg.Err), true)
		return m, nil

	case tea.KeyMsg:
		if m.root == nil {
			if key.Matches(msg, BrowserKeys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		m.ClearMessage()
		m.client.ClearError()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.selectedNode()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, BrowserKeys.Down):
		if m.cursor < len(m.flatNodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, BrowserKeys.Left):
		if node == nil {
			return nil
		}
		if node.Type == domain.NodeFolder && node.IsExpanded {
			node.Collapse()
			m.refreshFlatNodes()
		} else if node.Parent != nil {
			m.selectNode(node.Parent)
		}

	case key.Matches(msg, BrowserKeys.Right):
		if node != nil && node.Type == domain.NodeFolder && !node.IsExpanded {
			node.Expand()
			m.refreshFlatNodes()
		}

	case key.Matches(msg, BrowserKeys.Enter):
		if node == nil {
			return nil
		}
		switch node.Type {
		case domain.NodeFolder:
			node.Toggle()
			m.refreshFlatNodes()
		case domain.NodeRap:
			return send(EditRapMsg{RapID: node.ID})
		}

	case key.Matches(msg, BrowserKeys.Edit):
		if node != nil && node.Type == domain.NodeRap {
			return send(EditRapMsg{RapID: node.ID})
		}

	case key.Matches(msg, BrowserKeys.NewRap):
		return send(SwitchToCreateMsg{Kind: domain.IDKindRap, ParentID: contextFolder(node)})

	case key.Matches(msg, BrowserKeys.NewFolder):
		return send(SwitchToCreateMsg{Kind: domain.IDKindFolder, ParentID: contextFolder(node)})

	case key.Matches(msg, BrowserKeys.Rename):
		if node != nil && node.Type != domain.NodeRoot {
			return send(SwitchToRenameMsg{Node: node})
		}

	case key.Matches(msg, BrowserKeys.Move):
		if node != nil && node.Type != domain.NodeRoot {
			return send(SwitchToMoveMsg{Node: node})
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if node != nil && node.Type != domain.NodeRoot {
			return send(SwitchToDeleteMsg{Node: node})
		}

	case key.Matches(msg, BrowserKeys.Yank):
		if node != nil && node.Type == domain.NodeRap {
			m.yank(node.ID)
		}

	case key.Matches(msg, BrowserKeys.Search):
		return send(SwitchToSearchMsg{})

	case key.Matches(msg, BrowserKeys.Help):
		return send(SwitchToHelpMsg{})
	}

	return nil
}

func (m *BrowserModel) yank(rapID string) {
	rap, err := m.client.GetRap(rapID)
	if err != nil {
		m.SetMessage(ErrorText(err), true)
		return
	}
	if err := clipboard.WriteAll(rap.Content); err != nil {
		m.SetMessage("Clipboard unavailable: "+err.Error(), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %q to clipboard", rap.Title), false)
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Reload rebuilds the tree from the library, keeping expanded folders open.
// revealID, when set, is selected after the reload.
func (m *BrowserModel) Reload(revealID string) tea.Cmd {
	return func() tea.Msg {
		return treeLoadedMsg{root: m.client.Tree(""), revealID: revealID}
	}
}

func (m *BrowserModel) applyTree(root *domain.TreeNode, revealID string) {
	var selected *domain.TreeNode
	if m.root != nil {
		root.ExpandFolders(m.root.ExpandedFolders())
		selected = m.selectedNode()
	}
	m.root = root
	m.refreshFlatNodes()

	switch {
	case revealID != "":
		m.Reveal(revealID)
	case selected != nil:
		if n := m.root.Find(selected.Type, selected.ID); n != nil {
			m.selectNode(n)
		}
	}
}

// Reveal expands the ancestors of a rap or folder and moves the cursor to it
func (m *BrowserModel) Reveal(id string) bool {
	if m.root == nil {
		return false
	}

	t := domain.NodeRap
	if domain.ParseIDKind(id) == domain.IDKindFolder {
		t = domain.NodeFolder
	}
	node := m.root.Find(t, id)
	if node == nil {
		return false
	}

	for p := node.Parent; p != nil; p = p.Parent {
		p.Expand()
	}
	m.refreshFlatNodes()
	m.selectNode(node)
	return true
}

func (m *BrowserModel) selectNode(node *domain.TreeNode) {
	for i, n := range m.flatNodes {
		if n == node {
			m.cursor = i
			return
		}
	}
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

// Selected returns the node under the cursor
func (m *BrowserModel) Selected() *domain.TreeNode {
	return m.selectedNode()
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.root.IsExpanded = true
	m.flatNodes = m.root.Flatten()

	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return styles.App.Render(m.spinner.View() + " Loading raps...")
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Rapbook"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d raps in %d folders", len(m.client.Raps()), len(m.client.Folders()))))
	b.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderNode(m.flatNodes[i], i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.root.Children) == 0 {
		b.WriteString(styles.MutedText.Render("  Nothing here yet. Press n to write your first rap."))
		b.WriteString("\n")
	}

	if node := m.selectedNode(); node != nil && node.Type == domain.NodeRap {
		b.WriteString("\n")
		b.WriteString(m.renderPreview(node.ID))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BrowserKeys.NewRap, BrowserKeys.NewFolder, BrowserKeys.Edit, BrowserKeys.Move,
		BrowserKeys.Delete, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit,
	))

	return styles.App.Render(b.String())
}

// visibleRange keeps the cursor on screen when the tree is taller than the window
func (m *BrowserModel) visibleRange() (int, int) {
	rows := m.Height - previewLines - 10
	if m.Height == 0 || rows >= len(m.flatNodes) {
		return 0, len(m.flatNodes)
	}
	rows = max(rows, 5)

	start := max(m.cursor-rows/2, 0)
	end := min(start+rows, len(m.flatNodes))
	start = max(end-rows, 0)
	return start, end
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", max(node.Depth()-1, 0))

	var prefix string
	var style lipgloss.Style
	text := node.Name

	switch node.Type {
	case domain.NodeRoot:
		prefix = ""
		indent = ""
		style = styles.NodeRoot
	case domain.NodeFolder:
		if node.IsExpanded {
			prefix = styles.TreeExpanded
		} else {
			prefix = styles.TreeCollapsed
		}
		style = styles.NodeFolder
	default:
		prefix = styles.TreeLeaf
		style = styles.NodeRap
	}

	styled := style.Render(text)
	if selected {
		styled = styles.NodeSelected.Render(text)
	}

	line := indent + styles.TreeBranch.Render(prefix) + styled
	if node.Type == domain.NodeFolder {
		folders, raps := m.client.ChildCounts(node.ID)
		line += styles.NodeCount.Render(fmt.Sprintf("  %d/%d", folders, raps))
	}
	return line
}

func (m *BrowserModel) renderPreview(rapID string) string {
	rap, err := m.client.GetRap(rapID)
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.PreviewTitle.Render(rap.Title))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(rap.UpdatedAt.Local().Format("Jan 2 2006 15:04")))
	b.WriteString("\n")

	lines := strings.Split(strings.TrimRight(rap.Content, "\n"), "\n")
	if rap.Content == "" {
		lines = []string{styles.MutedText.Render("(empty)")}
	}
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], styles.MutedText.Render("…"))
	}
	b.WriteString(strings.Join(lines, "\n"))

	width := m.Width - 8
	if width < 20 {
		return styles.Preview.Render(b.String())
	}
	return styles.Preview.Width(width).Render(b.String())
}
