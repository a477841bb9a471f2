package domain

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML header written at the top of an exported rap
type frontMatter struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Folder    string    `yaml:"folder,omitempty"`
	Created   string    `yaml:"created"`
	Updated   string    `yaml:"updated"`
	Tags      []string  `yaml:"tags,omitempty"`
	AudioURL  string    `yaml:"audio_url,omitempty"`
	AudioFile string    `yaml:"audio_file,omitempty"`
	Metadata  *Metadata `yaml:"metadata,omitempty"`
}

// RenderMarkdown renders a rap as a markdown document with YAML front matter.
// folderPath is the human-readable location (e.g. "Verses / Drafts"), empty for root.
func RenderMarkdown(r Rap, folderPath string) ([]byte, error) {
	fm := frontMatter{
		ID:        r.ID,
		Title:     r.Title,
		Folder:    folderPath,
		Created:   r.CreatedAt.UTC().Format(time.RFC3339),
		Updated:   r.UpdatedAt.UTC().Format(time.RFC3339),
		Tags:      r.Tags,
		AudioURL:  r.AudioURL,
		AudioFile: r.AudioFile,
		Metadata:  r.Metadata,
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	b.WriteString(r.Content)
	if r.Content != "" && !strings.HasSuffix(r.Content, "\n") {
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

// MarkdownFileName returns a filesystem-safe file name for an exported rap
// e.g., "Late Night Verse #2" -> "late-night-verse-2.md"
func MarkdownFileName(r Rap) string {
	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(r.Title) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = r.ID
	}
	return name + ".md"
}

// ExportStats summarizes an export run
type ExportStats struct {
	Raps    int
	Folders int // directories created below the export root
	Files   []string
	ByRap   map[string]string // rap ID to exported file
}
