package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"rapbook/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	// editor overrides $EDITOR/$VISUAL lookup when set
	editor string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// NewOpenerWith creates an opener that always runs the given editor command
func NewOpenerWith(editor string) *Opener {
	return &Opener{editor: editor}
}

// Command returns an exec.Cmd for opening a file in the editor.
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	return o.command(context.Background(), path)
}

// EditText writes initial to a scratch file, opens it in the editor and
// returns what was saved. name only seeds the scratch file name.
func (o *Opener) EditText(ctx context.Context, name, initial string) (string, error) {
	path, cleanup, err := WriteScratch(name, initial)
	if err != nil {
		return "", err
	}
	defer cleanup()

	cmd, err := o.command(ctx, path)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	return ReadScratch(path)
}

// WriteScratch creates a temp file holding content and returns its path plus
// a function removing it
func WriteScratch(name, content string) (string, func(), error) {
	f, err := os.CreateTemp("", "rapbook-"+scratchName(name)+"-*.md")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	return path, cleanup, nil
}

// ReadScratch reads back an edited scratch file
func ReadScratch(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return string(data), nil
}

func (o *Opener) command(ctx context.Context, path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(editor)
	args := append(fields[1:], path)

	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}

	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// scratchName keeps only file-name-safe characters of name
func scratchName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, name)
	if len(name) > 32 {
		name = name[:32]
	}
	if name == "" {
		return "rap"
	}
	return filepath.Base(name)
}
