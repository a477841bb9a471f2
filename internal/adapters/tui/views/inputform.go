package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rapbook/internal/adapters/tui/styles"
)

// FormKeyMap holds the keys shared by the one-line prompts
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var DefaultFormKeys = FormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// InputField is a labelled line of text
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates an empty field. charLimit <= 0 leaves the input unbounded.
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// NewPrefilledField creates a field holding value with the cursor after it
func NewPrefilledField(label, value string, charLimit int) InputField {
	field := NewInputField(label, "", charLimit)
	field.Input.SetValue(value)
	field.Input.CursorEnd()
	return field
}

// InputForm is the focused prompt behind the create and rename views.
// Submit and cancel are matched by the owning view; everything else
// goes to the text input.
type InputForm struct {
	InputField
	Keys FormKeyMap
}

func NewInputForm(field InputField) *InputForm {
	field.Input.Focus()
	return &InputForm{InputField: field, Keys: DefaultFormKeys}
}

func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *InputForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return cmd
}

// Value is the trimmed text
func (f *InputForm) Value() string {
	return strings.TrimSpace(f.Input.Value())
}

func (f *InputForm) View() string {
	return styles.InputLabel.Render(f.Label) + "\n" + styles.InputFocused.Render(f.Input.View())
}
