package ports

import (
	"context"
	"os/exec"
)

// EditorOpener defines the interface for editing rap content in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd for opening a file in the editor.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// EditText writes initial to a scratch file named after name, runs the
	// editor on it and returns the saved text
	EditText(ctx context.Context, name, initial string) (string, error)
}
