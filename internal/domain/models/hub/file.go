package hub

import "strings"

// DateLayout is the calendar-date format of FileItem.Modified
const DateLayout = "2006-01-02"

// ImagePayloadPrefix marks content stored as a data-URI image
const ImagePayloadPrefix = "data:image/"

// Kind distinguishes files from folders
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// FileItem is a file or folder owned by exactly one backend.
type FileItem struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"` // Not unique
	Kind      Kind    `json:"type" yaml:"type"`
	Size      string  `json:"size" yaml:"size"`         // Display string, e.g. "1.2 MB"
	Modified  string  `json:"modified" yaml:"modified"` // YYYY-MM-DD
	BackendID string  `json:"backend_id" yaml:"backend"`
	ProjectID *string `json:"project_id,omitempty" yaml:"project,omitempty"` // nil = unassigned
	ParentID  *string `json:"parent_id,omitempty" yaml:"parent,omitempty"`   // nil = top level in its backend
	Content   *string `json:"content,omitempty" yaml:"content,omitempty"`    // Folders never carry content
}

// IsFolder reports whether the item is a folder
func (f *FileItem) IsFolder() bool {
	return f.Kind == KindFolder
}

// IsTopLevel reports whether the item has no parent folder
func (f *FileItem) IsTopLevel() bool {
	return f.ParentID == nil
}

// InFolder reports whether the item's parent is folderID
func (f *FileItem) InFolder(folderID string) bool {
	return f.ParentID != nil && *f.ParentID == folderID
}

// InProject reports whether the item is assigned to projectID
func (f *FileItem) InProject(projectID string) bool {
	return f.ProjectID != nil && *f.ProjectID == projectID
}

// HasImageContent reports whether the content is a data-URI image
func (f *FileItem) HasImageContent() bool {
	return f.Content != nil && strings.HasPrefix(*f.Content, ImagePayloadPrefix)
}

// ContentOrEmpty returns the content, or "" when absent
func (f *FileItem) ContentOrEmpty() string {
	if f.Content == nil {
		return ""
	}
	return *f.Content
}

// Summary returns the metadata sent to the project analyzer
func (f *FileItem) Summary() FileSummary {
	return FileSummary{Name: f.Name, Kind: f.Kind, Size: f.Size}
}

// FileSummary is the name/kind/size triple used for project analysis
type FileSummary struct {
	Name string `json:"name"`
	Kind Kind   `json:"type"`
	Size string `json:"size"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
