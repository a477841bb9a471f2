package storage

import (
	"encoding/json"
	"maps"
	"reflect"
	"strconv"
	"strings"
	"time"

	"rapbook/internal/domain"
)

// timestamp is how times are persisted: RFC 3339 strings in UTC.
// Older collections may hold epoch milliseconds, as a string or a number.
// Values that can't be parsed decode to the zero time instead of failing
// the whole collection.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*t = timestamp(parseTime(v))
	case float64:
		*t = timestamp(time.UnixMilli(int64(v)).UTC())
	default:
		*t = timestamp{}
	}
	return nil
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC()
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// rapRecord is the persisted shape of a rap. Keys it doesn't declare are
// kept in Extra and merged back on write.
type rapRecord struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	FolderID  *string         `json:"folderId,omitempty"`
	AudioURL  string          `json:"audioUrl,omitempty"`
	AudioFile string          `json:"audioFile,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Metadata  *metadataRecord `json:"metadata,omitempty"`
	CreatedAt timestamp       `json:"createdAt"`
	UpdatedAt timestamp       `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

type plainRap rapRecord

func (rec rapRecord) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(plainRap(rec), rec.Extra)
}

func (rec *rapRecord) UnmarshalJSON(data []byte) error {
	var plain plainRap
	extra, err := unmarshalWithExtra(data, &plain)
	if err != nil {
		return err
	}
	*rec = rapRecord(plain)
	rec.Extra = extra
	return nil
}

// metadataRecord is the persisted shape of domain.Metadata
type metadataRecord struct {
	BPM            *float64 `json:"bpm,omitempty"`
	AudioStartTime *float64 `json:"audioStartTime,omitempty"`
	AudioEndTime   *float64 `json:"audioEndTime,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type plainMetadata metadataRecord

func (rec metadataRecord) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(plainMetadata(rec), rec.Extra)
}

func (rec *metadataRecord) UnmarshalJSON(data []byte) error {
	var plain plainMetadata
	extra, err := unmarshalWithExtra(data, &plain)
	if err != nil {
		return err
	}
	*rec = metadataRecord(plain)
	rec.Extra = extra
	return nil
}

func toMetadataRecord(md *domain.Metadata) *metadataRecord {
	if md == nil {
		return nil
	}
	return &metadataRecord{
		BPM:            md.BPM,
		AudioStartTime: md.AudioStartTime,
		AudioEndTime:   md.AudioEndTime,
		Extra:          md.Extra,
	}
}

func (rec *metadataRecord) toDomain() *domain.Metadata {
	if rec == nil {
		return nil
	}
	return &domain.Metadata{
		BPM:            rec.BPM,
		AudioStartTime: rec.AudioStartTime,
		AudioEndTime:   rec.AudioEndTime,
		Extra:          rec.Extra,
	}
}

func toRapRecord(r domain.Rap) rapRecord {
	r = r.Clone()
	return rapRecord{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		FolderID:  r.FolderID,
		AudioURL:  r.AudioURL,
		AudioFile: r.AudioFile,
		Tags:      r.Tags,
		Metadata:  toMetadataRecord(r.Metadata),
		CreatedAt: timestamp(r.CreatedAt),
		UpdatedAt: timestamp(r.UpdatedAt),
		Extra:     r.Extra,
	}
}

func (rec rapRecord) toDomain() domain.Rap {
	return domain.Rap{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		FolderID:  emptyAsRoot(rec.FolderID),
		AudioURL:  rec.AudioURL,
		AudioFile: rec.AudioFile,
		Tags:      rec.Tags,
		Metadata:  rec.Metadata.toDomain(),
		CreatedAt: time.Time(rec.CreatedAt),
		UpdatedAt: time.Time(rec.UpdatedAt),
		Extra:     rec.Extra,
	}
}

// folderRecord is the persisted shape of a folder
type folderRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt timestamp `json:"createdAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

type plainFolder folderRecord

func (rec folderRecord) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(plainFolder(rec), rec.Extra)
}

func (rec *folderRecord) UnmarshalJSON(data []byte) error {
	var plain plainFolder
	extra, err := unmarshalWithExtra(data, &plain)
	if err != nil {
		return err
	}
	*rec = folderRecord(plain)
	rec.Extra = extra
	return nil
}

func toFolderRecord(f domain.Folder) folderRecord {
	return folderRecord{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  domain.CloneID(f.ParentID),
		CreatedAt: timestamp(f.CreatedAt),
		Extra:     maps.Clone(f.Extra),
	}
}

func (rec folderRecord) toDomain() domain.Folder {
	return domain.Folder{
		ID:        rec.ID,
		Name:      rec.Name,
		ParentID:  emptyAsRoot(rec.ParentID),
		CreatedAt: time.Time(rec.CreatedAt),
		Extra:     rec.Extra,
	}
}

// marshalWithExtra encodes known and adds the extra keys it doesn't set itself
func marshalWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	fields := make(map[string]json.RawMessage, len(extra))
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}

// unmarshalWithExtra decodes data into known and returns the object keys
// known has no json tag for, or nil when there are none
func unmarshalWithExtra(data []byte, known any) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, name := range jsonNames(known) {
		delete(fields, name)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

// jsonNames lists the json keys declared on the struct v points to
func jsonNames(v any) []string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

// emptyAsRoot treats a stored "" reference the same as a missing one
func emptyAsRoot(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
