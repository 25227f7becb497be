package hub

import (
	"devcloud/internal/domain/models/hub"
)

// EntityStore holds the authoritative FileItem collection and the backend
// and project registries. Services and projects are fixed at construction;
// files and local drives live in a snapshot that is only ever replaced whole.
type EntityStore interface {
	// Snapshot returns the current snapshot. Callers must not modify it.
	Snapshot() *hub.Snapshot

	// AllFiles returns a copy of the files, most recent first
	AllFiles() []hub.FileItem

	// GetFile returns a copy of the file with id, or false
	GetFile(id string) (hub.FileItem, bool)

	// Services returns the fixed cloud services
	Services() []hub.Backend

	// Projects returns the fixed projects
	Projects() []hub.Project

	// LocalDrives returns the runtime-created drives in creation order
	LocalDrives() []hub.Backend

	// AllBackends returns services first, then local drives in creation order
	AllBackends() []hub.Backend

	// FindBackend looks up a service or local drive by id
	FindBackend(id string) (hub.Backend, bool)

	// FindProject looks up a project by id
	FindProject(id string) (hub.Project, bool)

	// ReplaceAll installs next as the current snapshot
	ReplaceAll(next *hub.Snapshot)

	// Update derives a new snapshot from the current one and installs it.
	// Updates are serialized. If fn returns an error (or a nil snapshot)
	// the current snapshot is kept.
	Update(fn func(current *hub.Snapshot) (*hub.Snapshot, error)) error
}
