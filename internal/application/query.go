package application

import (
	"slices"
	"strings"
	"unicode/utf8"

	"rapbook/internal/domain"
)

// SearchResult is a rap matching a search query
type SearchResult struct {
	Rap        domain.Rap
	Path       string // folder path, empty at root
	TitleMatch bool
	Snippet    string // content around the first match, empty for title-only matches
}

const snippetRadius = 30

// Raps returns a copy of every rap in collection order
func (l *Library) Raps() []domain.Rap {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Rap, len(l.rapList))
	for i, r := range l.rapList {
		out[i] = r.Clone()
	}
	return out
}

// Folders returns a copy of every folder in collection order
func (l *Library) Folders() []domain.Folder {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Folder, len(l.folderList))
	for i, f := range l.folderList {
		out[i] = f.Clone()
	}
	return out
}

// GetRap returns the rap with the given ID
func (l *Library) GetRap(id string) (*domain.Rap, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.rapList {
		if r.ID == id {
			out := r.Clone()
			return &out, nil
		}
	}
	return nil, &NotFoundError{Kind: "rap", ID: id}
}

// GetFolder returns the folder with the given ID
func (l *Library) GetFolder(id string) (*domain.Folder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, f := range l.folderList {
		if f.ID == id {
			out := f.Clone()
			return &out, nil
		}
	}
	return nil, &NotFoundError{Kind: "folder", ID: id}
}

// ListChildren returns the folders and raps directly under folderID
// (nil = root) in collection order
func (l *Library) ListChildren(folderID *string) domain.Children {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.ListChildren(l.folderList, l.rapList, folderID)
}

// FolderContents is ListChildren ordered for display: folders by name,
// raps most recently updated first
func (l *Library) FolderContents(folderID *string) domain.Children {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.SortedChildren(l.folderList, l.rapList, folderID)
}

// ChildCounts returns the number of direct child folders and raps of a folder
func (l *Library) ChildCounts(folderID string) (folders, raps int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.CountChildren(l.folderList, l.rapList, folderID)
}

// FolderOptions lists valid destinations for a folder picker. excludeID
// (usually the folder being moved) is left out together with its subtree.
// An empty rootLabel uses domain.DefaultRootLabel.
func (l *Library) FolderOptions(excludeID *string, rootLabel string) []domain.FolderOption {
	if rootLabel == "" {
		rootLabel = domain.DefaultRootLabel
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.BuildFolderOptions(l.folderList, excludeID, rootLabel)
}

// FolderPath returns the folders from the top level down to id
func (l *Library) FolderPath(id string) ([]domain.Folder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	path, ok := domain.FolderPath(l.folderList, id)
	if !ok {
		return nil, &NotFoundError{Kind: "folder", ID: id}
	}
	return path, nil
}

// Tree builds the navigation tree of the whole library
func (l *Library) Tree(rootLabel string) *domain.TreeNode {
	if rootLabel == "" {
		rootLabel = domain.DefaultRootLabel
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.BuildTree(l.folderList, l.rapList, rootLabel)
}

// RecentRaps returns up to limit raps, most recently updated first.
// limit <= 0 returns all of them.
func (l *Library) RecentRaps(limit int) []domain.Rap {
	raps := l.Raps()
	domain.SortRapsByRecent(raps)
	if limit > 0 && len(raps) > limit {
		raps = raps[:limit]
	}
	return raps
}

// Search finds raps whose title or content contains query under Unicode
// case folding. Title matches come first, then by recency.
func (l *Library) Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var titled, rest []SearchResult
	for _, r := range l.rapList {
		start, _ := indexFold(r.Title, query)
		titleMatch := start >= 0
		snippet, contentMatch := snippetAround(r.Content, query)
		if !titleMatch && !contentMatch {
			continue
		}

		result := SearchResult{Rap: r.Clone(), TitleMatch: titleMatch, Snippet: snippet}
		if r.FolderID != nil {
			if path, ok := domain.FolderPath(l.folderList, *r.FolderID); ok {
				result.Path = domain.FormatPath(path)
			}
		}

		if titleMatch {
			titled = append(titled, result)
		} else {
			rest = append(rest, result)
		}
	}

	sortResults(titled)
	sortResults(rest)
	return append(titled, rest...)
}

func sortResults(results []SearchResult) {
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		if n := b.Rap.UpdatedAt.Compare(a.Rap.UpdatedAt); n != 0 {
			return n
		}
		return strings.Compare(a.Rap.ID, b.Rap.ID)
	})
}

// snippetAround returns the text surrounding the first case-insensitive
// occurrence of needle in content, collapsed onto a single line
func snippetAround(content, needle string) (string, bool) {
	start, end := indexFold(content, needle)
	if start < 0 {
		return "", false
	}

	for n := 0; start > 0 && n < snippetRadius; n++ {
		_, size := utf8.DecodeLastRuneInString(content[:start])
		start -= size
	}
	for n := 0; end < len(content) && n < snippetRadius; n++ {
		_, size := utf8.DecodeRuneInString(content[end:])
		end += size
	}

	snippet := strings.Join(strings.Fields(content[start:end]), " ")
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(content) {
		snippet += "…"
	}
	return snippet, true
}

// indexFold returns the byte span in s of the first case-insensitive match
// of needle, or -1, -1
func indexFold(s, needle string) (int, int) {
	n := utf8.RuneCountInString(needle)
	for i := range s {
		j, count := i, 0
		for count < n && j < len(s) {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
			count++
		}
		if count < n {
			break
		}
		if strings.EqualFold(s[i:j], needle) {
			return i, j
		}
	}
	return -1, -1
}
