package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Children holds the direct contents of one folder (or of the root)
type Children struct {
	Folders []Folder
	Raps    []Rap
}

// Len returns the number of direct children
func (c Children) Len() int {
	return len(c.Folders) + len(c.Raps)
}

// FolderOption is one entry of a flattened folder picker
type FolderOption struct {
	ID     *string // nil = root
	Name   string
	Depth  int
	IsRoot bool
}

// ListChildren returns the folders and raps sitting directly under parentID
// (nil = root), in collection order.
func ListChildren(folders []Folder, raps []Rap, parentID *string) Children {
	var out Children
	for _, f := range folders {
		if f.IsChildOf(parentID) {
			out.Folders = append(out.Folders, f.Clone())
		}
	}
	for _, r := range raps {
		if r.InFolder(parentID) {
			out.Raps = append(out.Raps, r.Clone())
		}
	}
	return out
}

// SortedChildren is ListChildren ordered for display: folders by name,
// raps most recently updated first.
func SortedChildren(folders []Folder, raps []Rap, parentID *string) Children {
	out := ListChildren(folders, raps, parentID)
	SortFoldersByName(out.Folders)
	SortRapsByRecent(out.Raps)
	return out
}

// CountChildren returns the number of direct child folders and raps of folderID
func CountChildren(folders []Folder, raps []Rap, folderID string) (int, int) {
	var nFolders, nRaps int
	for _, f := range folders {
		if f.ParentID != nil && *f.ParentID == folderID {
			nFolders++
		}
	}
	for _, r := range raps {
		if r.FolderID != nil && *r.FolderID == folderID {
			nRaps++
		}
	}
	return nFolders, nRaps
}

// BuildFolderOptions flattens the folder hierarchy for a picker. The first
// entry is the synthetic root; folders follow depth-first with siblings in
// locale-aware name order. The excluded folder is left out together with its
// whole subtree, since none of those are valid targets for moving it.
// Each folder is visited at most once, so a cyclic collection terminates.
func BuildFolderOptions(folders []Folder, excludeID *string, rootLabel string) []FolderOption {
	options := []FolderOption{{Name: rootLabel, IsRoot: true}}

	children := indexChildren(folders)
	visited := make(map[string]bool, len(folders))

	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, f := range children[parentID] {
			if visited[f.ID] {
				continue
			}
			visited[f.ID] = true

			if excludeID != nil && f.ID == *excludeID {
				continue
			}

			id := f.ID
			options = append(options, FolderOption{ID: &id, Name: f.Name, Depth: depth})
			walk(f.ID, depth+1)
		}
	}
	walk("", 1)

	return options
}

// IsDescendant reports whether folder id sits somewhere below ancestorID
func IsDescendant(folders []Folder, ancestorID, id string) bool {
	byID := indexByID(folders)
	seen := make(map[string]bool)

	current, ok := byID[id]
	for ok && current.ParentID != nil && !seen[current.ID] {
		seen[current.ID] = true
		if *current.ParentID == ancestorID {
			return true
		}
		current, ok = byID[*current.ParentID]
	}
	return false
}

// FolderPath returns the chain of folders from the top-most ancestor down to id.
// Returns false if id doesn't exist.
func FolderPath(folders []Folder, id string) ([]Folder, bool) {
	byID := indexByID(folders)
	current, ok := byID[id]
	if !ok {
		return nil, false
	}

	var path []Folder
	seen := make(map[string]bool)
	for ok && !seen[current.ID] {
		seen[current.ID] = true
		path = append(path, current.Clone())
		if current.ParentID == nil {
			break
		}
		current, ok = byID[*current.ParentID]
	}

	slices.Reverse(path)
	return path, true
}

// FormatPath joins folder names with " / "
func FormatPath(path []Folder) string {
	names := make([]string, len(path))
	for i, f := range path {
		names[i] = f.Name
	}
	return strings.Join(names, " / ")
}

// SortFoldersByName orders folders by locale-aware name, then ID
func SortFoldersByName(folders []Folder) {
	c := collate.New(language.Und)
	slices.SortStableFunc(folders, func(a, b Folder) int {
		if n := c.CompareString(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// SortRapsByRecent orders raps by UpdatedAt, newest first
func SortRapsByRecent(raps []Rap) {
	slices.SortStableFunc(raps, func(a, b Rap) int {
		if n := b.UpdatedAt.Compare(a.UpdatedAt); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// indexChildren groups folders by parent ID ("" = root), each group sorted by name
func indexChildren(folders []Folder) map[string][]Folder {
	children := make(map[string][]Folder)
	for _, f := range folders {
		key := IDOrEmpty(f.ParentID)
		children[key] = append(children[key], f)
	}
	for key := range children {
		SortFoldersByName(children[key])
	}
	return children
}

func indexByID(folders []Folder) map[string]Folder {
	byID := make(map[string]Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}
	return byID
}
