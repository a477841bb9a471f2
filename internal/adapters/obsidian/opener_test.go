package obsidian

import (
	"testing"
)

func TestNewOpener_DerivesVaultName(t *testing.T) {
	tests := []struct {
		name          string
		vaultPath     string
		wantVaultName string
	}{
		{
			name:          "simple export path",
			vaultPath:     "/home/test/raps",
			wantVaultName: "raps",
		},
		{
			name:          "vault with spaces",
			vaultPath:     "/home/test/Rap Book",
			wantVaultName: "Rap Book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			if opener.vaultName != tt.wantVaultName {
				t.Errorf("vaultName = %q, want %q", opener.vaultName, tt.wantVaultName)
			}
		})
	}
}

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name      string
		vaultPath string
		filePath  string
		wantURI   string
		wantErr   bool
	}{
		{
			name:      "rap at the top level",
			vaultPath: "/home/test/raps",
			filePath:  "/home/test/raps/late-night.md",
			wantURI:   "obsidian://open?vault=raps&file=late-night.md",
		},
		{
			name:      "rap in nested folders",
			vaultPath: "/home/test/raps",
			filePath:  "/home/test/raps/Verses/Old Drafts/intro.md",
			wantURI:   "obsidian://open?vault=raps&file=Verses%2FOld%20Drafts%2Fintro.md",
		},
		{
			name:      "vault name with spaces",
			vaultPath: "/home/test/Rap Book",
			filePath:  "/home/test/Rap Book/hook.md",
			wantURI:   "obsidian://open?vault=Rap%20Book&file=hook.md",
		},
		{
			name:      "file outside vault",
			vaultPath: "/home/test/raps",
			filePath:  "/home/test/other/file.md",
			wantErr:   true,
		},
		{
			name:      "name starting with dots stays inside",
			vaultPath: "/home/test/raps",
			filePath:  "/home/test/raps/..intro.md",
			wantURI:   "obsidian://open?vault=raps&file=..intro.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			gotURI, err := opener.BuildURI(tt.filePath)

			if (err != nil) != tt.wantErr {
				t.Errorf("BuildURI() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if gotURI != tt.wantURI {
				t.Errorf("BuildURI() = %q, want %q", gotURI, tt.wantURI)
			}
		})
	}
}

func TestLaunchCommand(t *testing.T) {
	cmd, err := launchCommand("linux", "obsidian://open")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Args[0] != "xdg-open" || cmd.Args[1] != "obsidian://open" {
		t.Errorf("unexpected command %v", cmd.Args)
	}

	if _, err := launchCommand("plan9", "obsidian://open"); err == nil {
		t.Error("expected unsupported OS error")
	}
}
