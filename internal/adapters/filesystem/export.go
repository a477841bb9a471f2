package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rapbook/internal/domain"
)

// Exporter writes raps as markdown files, mirroring the folder tree as directories
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing below dir
func NewExporter(dir string) *Exporter {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &Exporter{dir: dir}
}

// Export writes every rap to <dir>/<folder path>/<title>.md.
// Raps whose folder no longer exists land at the top level.
func (e *Exporter) Export(folders []domain.Folder, raps []domain.Rap) (*domain.ExportStats, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	stats := &domain.ExportStats{ByRap: make(map[string]string, len(raps))}
	createdDirs := make(map[string]bool)
	used := make(map[string]bool)

	for _, r := range raps {
		var path []domain.Folder
		if r.FolderID != nil {
			path, _ = domain.FolderPath(folders, *r.FolderID)
		}

		parts := []string{e.dir}
		for _, f := range path {
			parts = append(parts, dirName(f))
		}
		dir := filepath.Join(parts...)

		if !createdDirs[dir] {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return stats, fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			createdDirs[dir] = true
			if dir != e.dir {
				stats.Folders++
			}
		}

		doc, err := domain.RenderMarkdown(r, domain.FormatPath(path))
		if err != nil {
			return stats, err
		}

		file := uniqueName(used, filepath.Join(dir, domain.MarkdownFileName(r)))
		if err := os.WriteFile(file, doc, 0644); err != nil {
			return stats, fmt.Errorf("failed to write %s: %w", file, err)
		}

		stats.Raps++
		stats.Files = append(stats.Files, file)
		stats.ByRap[r.ID] = file
	}

	return stats, nil
}

// dirName returns a directory name for a folder that is safe on common filesystems
func dirName(f domain.Folder) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(f.Name))

	name = strings.Trim(name, ". ")
	if name == "" {
		return f.ID
	}
	return name
}

// uniqueName appends -2, -3, ... until path hasn't been used in this run
func uniqueName(used map[string]bool, path string) string {
	candidate := path
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	used[candidate] = true
	return candidate
}
