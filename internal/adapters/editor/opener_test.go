package editor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestEditText_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as editor")
	}

	// A fake editor that appends a line to the file it is given
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'second line' >> \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := NewOpenerWith(script).EditText(context.Background(), "Intro Verse", "first line\n")
	if err != nil {
		t.Fatalf("EditText failed: %v", err)
	}

	if got != "first line\nsecond line\n" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestEditText_EditorFails(t *testing.T) {
	_, err := NewOpenerWith("false").EditText(context.Background(), "x", "")
	if err == nil {
		t.Error("expected error when editor exits non-zero")
	}
}

func TestCommand_SplitsArguments(t *testing.T) {
	cmd, err := NewOpenerWith("code --wait").Command("/tmp/file.md")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	if got := strings.Join(cmd.Args, " "); got != "code --wait /tmp/file.md" {
		t.Errorf("unexpected args %q", got)
	}
}

func TestCommand_NoEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("PATH", t.TempDir())

	if _, err := NewOpener().Command("/tmp/file.md"); err == nil {
		t.Error("expected error when no editor is available")
	}
}

func TestScratchName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Intro Verse", "Intro-Verse"},
		{"../../etc", "etc"},
		{"", "rap"},
		{"!!!", "rap"},
	}

	for _, tt := range tests {
		if got := scratchName(tt.in); got != tt.want {
			t.Errorf("scratchName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
