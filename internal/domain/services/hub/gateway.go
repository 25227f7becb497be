package hub

import (
	"context"

	"devcloud/internal/domain/models/hub"
)

// MutationGateway is the only writer to the entity store. Every successful
// operation records exactly one notification.
type MutationGateway interface {
	// Upload prepends a new file with a fresh id
	Upload(ctx context.Context, req *UploadRequest) (*hub.FileItem, error)

	// SaveContent replaces content, size and modified of one file.
	// An unknown id is a silent no-op: (nil, nil).
	SaveContent(ctx context.Context, fileID, content string) (*hub.FileItem, error)

	// SaveReadme upserts the README.md of a project
	SaveReadme(ctx context.Context, projectID, content string) (*hub.FileItem, error)

	// AddLocalDrive registers a new local drive and seeds its starter files
	AddLocalDrive(ctx context.Context, req *AddDriveRequest) (*DriveResult, error)

	// CloneRepository registers a new local drive holding a synthesized checkout
	CloneRepository(ctx context.Context, req *CloneRequest) (*DriveResult, error)

	// Sync copies the source backend's top-level items into the destination
	Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error)

	// PushRepository simulates pushing a local drive; no store change
	PushRepository(ctx context.Context, req *PushRequest) error
}

// UploadRequest describes a file to upload (no id: the gateway assigns it)
type UploadRequest struct {
	Name      string `json:"name"`
	BackendID string `json:"backend_id"`
	ProjectID string `json:"project_id,omitempty"` // Empty or "none" = unassigned
	Content   string `json:"content,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"` // Original byte size, when known
}

// AddDriveRequest creates an empty local drive with starter files
type AddDriveRequest struct {
	Name string `json:"name"`
}

// CloneRequest clones a repository into a new local drive
type CloneRequest struct {
	RepoURL   string `json:"repo_url"`
	LocalName string `json:"local_name"`
}

// SyncRequest copies top-level items between two backends
type SyncRequest struct {
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
}

// PushRequest pushes a local drive with a commit message
type PushRequest struct {
	DriveID       string `json:"drive_id"`
	CommitMessage string `json:"commit_message"`
}

// DriveResult is the outcome of creating a local drive
type DriveResult struct {
	Drive hub.Backend    `json:"drive"`
	Files []hub.FileItem `json:"files"`
}

// SyncResult lists the copies created in the destination
type SyncResult struct {
	Source      hub.Backend    `json:"source"`
	Destination hub.Backend    `json:"destination"`
	Copied      []hub.FileItem `json:"copied"`
}
