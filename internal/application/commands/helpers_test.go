package commands

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"rapbook/internal/adapters/memory"
	"rapbook/internal/adapters/storage"
	"rapbook/internal/application"
	"rapbook/internal/domain"
)

func newTestClient(t *testing.T) *application.Client {
	t.Helper()

	adapter := storage.NewAdapter(memory.NewStore(), zerolog.Nop())
	lib := application.NewLibrary(storage.NewRapRepository(adapter), storage.NewFolderRepository(adapter), zerolog.Nop())
	client := application.NewClient(lib)
	if err := client.LoadInitialData(context.Background()); err != nil {
		t.Fatalf("LoadInitialData failed: %v", err)
	}
	return client
}

func mustFolder(t *testing.T, client *application.Client, name, parentID string) *domain.Folder {
	t.Helper()
	res, err := NewCreateFolderCommand(client, name, parentID).Execute(context.Background())
	if err != nil {
		t.Fatalf("create folder %q: %v", name, err)
	}
	return res.Folder
}

func mustRap(t *testing.T, client *application.Client, title, content, folderID string) *domain.Rap {
	t.Helper()
	res, err := NewCreateRapCommand(client, title, content, folderID).Execute(context.Background())
	if err != nil {
		t.Fatalf("create rap %q: %v", title, err)
	}
	return res.Rap
}

// contains checks if substr is in s
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
