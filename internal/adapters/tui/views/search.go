package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rapbook/internal/adapters/tui/styles"
	"rapbook/internal/application"
	"rapbook/internal/application/commands"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "show in tree"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy lyrics"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const searchPageSize = 10

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	client    *application.Client
	input     textinput.Model
	results   []commands.SearchResult
	paginator *Paginator
}

// NewSearchModel creates a new search view model
func NewSearchModel(client *application.Client) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search titles and lyrics..."
	input.Focus()

	return &SearchModel{
		client:    client,
		input:     input,
		paginator: NewPaginator(searchPageSize),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.paginator.Reset()
	m.ClearMessage()
	m.input.Focus()
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// drop results for a query the user has already typed past
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.results = msg.results
		m.paginator.Reset()
		m.paginator.SetTotal(len(m.results))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, send(SwitchToBrowserMsg{})

		case key.Matches(msg, SearchKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if r, ok := m.selected(); ok {
				return m, send(ActionDoneMsg{RevealID: r.Rap.ID})
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Copy):
			if r, ok := m.selected(); ok {
				if err := clipboard.WriteAll(r.Rap.Content); err != nil {
					m.SetMessage("Clipboard unavailable: "+err.Error(), true)
				} else {
					m.SetMessage(fmt.Sprintf("Copied %q to clipboard", r.Rap.Title), false)
				}
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if query == before {
		return m, cmd
	}
	if len(strings.TrimSpace(query)) == 0 {
		m.results = nil
		m.paginator.Reset()
		return m, cmd
	}
	return m, tea.Batch(cmd, m.search(query))
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewSearchCommand(m.client, query)
		cmd.Fuzzy = true
		results, _ := cmd.Execute(context.Background())
		return searchResultsMsg{query: query, results: results}
	}
}

func (m *SearchModel) selected() (commands.SearchResult, bool) {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.results) {
		return commands.SearchResult{}, false
	}
	return m.results[i], true
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().
		Title("Search").
		Line(styles.InputFocused.Render(m.input.View())).
		BlankLine()

	switch {
	case len(m.results) > 0:
		v.Subtitle(fmt.Sprintf("%d results", len(m.results)))
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderResult(m.results[i], i == m.paginator.Cursor()))
		}
		if m.paginator.TotalPages() > 1 {
			v.Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
		}
	case len([]rune(strings.TrimSpace(m.input.Value()))) >= 2:
		v.Muted("No results found")
	default:
		v.Muted("Type at least 2 characters to search")
	}

	return v.
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Copy, SearchKeys.Cancel).
		String()
}

func (m *SearchModel) renderResult(r commands.SearchResult, selected bool) string {
	title := r.Rap.Title
	if selected {
		title = styles.NodeSelected.Render(title)
	} else if r.TitleMatch {
		title = styles.NodeFolder.UnsetBold().Render(title)
	}

	line := title
	if r.Path != "" {
		line += styles.MutedText.Render("  " + r.Path)
	}
	if r.Snippet != "" {
		line += "\n    " + highlight(r.Snippet, strings.TrimSpace(m.input.Value()))
	}
	return line
}

// highlight marks the first case-insensitive occurrence of query in s
func highlight(s, query string) string {
	if query == "" {
		return styles.MutedText.Render(s)
	}
	lower, lowerQuery := strings.ToLower(s), strings.ToLower(query)
	// byte offsets only line up when lowercasing keeps the length
	if len(lower) != len(s) || len(lowerQuery) != len(query) {
		return styles.MutedText.Render(s)
	}
	i := strings.Index(lower, lowerQuery)
	if i < 0 {
		return styles.MutedText.Render(s)
	}
	end := i + len(query)
	return styles.MutedText.Render(s[:i]) + styles.SearchMatch.Render(s[i:end]) + styles.MutedText.Render(s[end:])
}
