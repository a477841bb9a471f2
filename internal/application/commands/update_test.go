package commands

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"rapbook/internal/application"
)

// fakeEditor returns a canned result instead of launching a process
type fakeEditor struct {
	result string
	err    error
	got    string
}

func (f *fakeEditor) Command(path string) (*exec.Cmd, error) {
	return exec.Command("true", path), nil
}

func (f *fakeEditor) EditText(ctx context.Context, name, initial string) (string, error) {
	f.got = initial
	return f.result, f.err
}

func TestUpdateRapCommand_Validate(t *testing.T) {
	title := "New"

	tests := []struct {
		name    string
		cmd     *UpdateRapCommand
		wantErr bool
		errMsg  string
	}{
		{
			name: "title change",
			cmd:  &UpdateRapCommand{ID: "rap_1", Title: &title},
		},
		{
			name:    "nothing to update",
			cmd:     &UpdateRapCommand{ID: "rap_1"},
			wantErr: true,
			errMsg:  "nothing to update",
		},
		{
			name:    "folder ID",
			cmd:     &UpdateRapCommand{ID: "folder_1", Title: &title},
			wantErr: true,
			errMsg:  "expected rap ID",
		},
		{
			name:    "missing ID",
			cmd:     &UpdateRapCommand{Title: &title},
			wantErr: true,
			errMsg:  "rap ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()

			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateRapCommand_Execute(t *testing.T) {
	client := newTestClient(t)
	rap := mustRap(t, client, "Draft", "old bars", "")

	content := "new bars"
	tags := []string{"boom-bap"}
	cmd := NewUpdateRapCommand(client, rap.ID)
	cmd.Content = &content
	cmd.Tags = &tags

	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rap.Content != "new bars" || res.Rap.Title != "Draft" {
		t.Errorf("unexpected rap after update: %+v", res.Rap)
	}
	if len(res.Rap.Tags) != 1 || res.Rap.Tags[0] != "boom-bap" {
		t.Errorf("expected tags to be set, got %v", res.Rap.Tags)
	}
}

func TestEditRapCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("saves edited content", func(t *testing.T) {
		client := newTestClient(t)
		rap := mustRap(t, client, "Draft", "old bars", "")
		editor := &fakeEditor{result: "new bars"}

		res, err := NewEditRapCommand(client, editor, rap.ID).Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if editor.got != "old bars" {
			t.Errorf("expected editor to receive current content, got %q", editor.got)
		}
		if !res.Changed {
			t.Error("expected Changed")
		}
		if got, _ := client.GetRap(rap.ID); got.Content != "new bars" {
			t.Errorf("expected saved content, got %q", got.Content)
		}
	})

	t.Run("unchanged content is not written", func(t *testing.T) {
		client := newTestClient(t)
		rap := mustRap(t, client, "Draft", "same", "")

		res, err := NewEditRapCommand(client, &fakeEditor{result: "same"}, rap.ID).Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Changed {
			t.Error("expected no change")
		}
		if got, _ := client.GetRap(rap.ID); !got.UpdatedAt.Equal(rap.UpdatedAt) {
			t.Error("expected UpdatedAt to be untouched")
		}
	})

	t.Run("editor failure", func(t *testing.T) {
		client := newTestClient(t)
		rap := mustRap(t, client, "Draft", "old", "")
		boom := errors.New("editor crashed")

		_, err := NewEditRapCommand(client, &fakeEditor{err: boom}, rap.ID).Execute(ctx)
		if !errors.Is(err, boom) {
			t.Fatalf("expected editor error, got %v", err)
		}
		if got, _ := client.GetRap(rap.ID); got.Content != "old" {
			t.Error("expected content to be kept")
		}
	})

	t.Run("missing rap", func(t *testing.T) {
		client := newTestClient(t)

		_, err := NewEditRapCommand(client, &fakeEditor{}, "rap_missing").Execute(ctx)
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
