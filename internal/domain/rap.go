package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultRapTitle is used when a rap is saved with a blank title
	DefaultRapTitle = "Untitled Rap"
	// DefaultRootLabel is the label of the synthetic root entry in folder pickers
	DefaultRootLabel = "Root (No Folder)"

	MaxTitleLength      = 100
	MaxContentLength    = 50000
	MaxFolderNameLength = 50
)

// Metadata holds optional audio settings attached to a rap.
// The core never interprets it.
type Metadata struct {
	BPM            *float64 `json:"bpm,omitempty" yaml:"bpm,omitempty"`
	AudioStartTime *float64 `json:"audioStartTime,omitempty" yaml:"audio_start_time,omitempty"`
	AudioEndTime   *float64 `json:"audioEndTime,omitempty" yaml:"audio_end_time,omitempty"`

	// Extra holds stored keys this package doesn't know about, written back as-is
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Rap is a short text document (lyrics, verses, notes)
type Rap struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  *string   `json:"folderId,omitempty"` // nil = root level
	AudioURL  string    `json:"audioUrl,omitempty"`
	AudioFile string    `json:"audioFile,omitempty"` // local file path
	Tags      []string  `json:"tags,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Folder is a named container for raps and other folders
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId,omitempty"` // nil = root level
	CreatedAt time.Time `json:"createdAt"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Validate checks the rap's field limits
func (r Rap) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Content, validation.RuneLength(0, MaxContentLength)),
	)
}

// Validate checks the folder's field limits
func (f Folder) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.Name, validation.Required, validation.RuneLength(1, MaxFolderNameLength)),
	)
}

// InFolder reports whether the rap sits directly in folderID (nil = root)
func (r Rap) InFolder(folderID *string) bool {
	return SameID(r.FolderID, folderID)
}

// IsChildOf reports whether the folder sits directly under parentID (nil = root)
func (f Folder) IsChildOf(parentID *string) bool {
	return SameID(f.ParentID, parentID)
}

// Clone returns a deep copy so callers can't alias in-memory state
func (r Rap) Clone() Rap {
	out := r
	out.FolderID = CloneID(r.FolderID)
	out.Tags = slices.Clone(r.Tags)
	out.Extra = maps.Clone(r.Extra)
	if r.Metadata != nil {
		md := *r.Metadata
		md.Extra = maps.Clone(r.Metadata.Extra)
		out.Metadata = &md
	}
	return out
}

// Clone returns a deep copy of the folder
func (f Folder) Clone() Folder {
	out := f
	out.ParentID = CloneID(f.ParentID)
	out.Extra = maps.Clone(f.Extra)
	return out
}

// NormalizeTitle trims a title and substitutes DefaultRapTitle when blank
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultRapTitle
	}
	return title
}

// NormalizeName trims a folder name
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// SameID compares two optional references by value
func SameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CloneID copies an optional reference
func CloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// IDOrEmpty dereferences an optional reference, returning "" for root
func IDOrEmpty(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// OptionalID turns "" into nil (root) and anything else into a reference
func OptionalID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}
