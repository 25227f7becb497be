package memory

import (
	"log/slog"
	"slices"
	"sync"

	"devcloud/internal/domain/models/hub"
	hubRepo "devcloud/internal/domain/repositories/hub"
)

// Store is an in-memory EntityStore. Readers see an immutable snapshot;
// writers build a new snapshot and swap it in under the write lock.
type Store struct {
	services []hub.Backend
	projects []hub.Project

	mu       sync.RWMutex
	current  *hub.Snapshot
	updateMu sync.Mutex // Serializes Update so read-modify-write is atomic

	logger *slog.Logger
}

var _ hubRepo.EntityStore = (*Store)(nil)

// NewStore creates a store with fixed registries and an initial snapshot
func NewStore(services []hub.Backend, projects []hub.Project, initial *hub.Snapshot, logger *slog.Logger) *Store {
	svcs := make([]hub.Backend, len(services))
	for i, s := range services {
		s.Kind = hub.BackendService
		svcs[i] = s
	}

	return &Store{
		services: svcs,
		projects: slices.Clone(projects),
		current:  initial.Clone(),
		logger:   logger,
	}
}

func (s *Store) Snapshot() *hub.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) AllFiles() []hub.FileItem {
	return slices.Clone(s.Snapshot().Files)
}

func (s *Store) GetFile(id string) (hub.FileItem, bool) {
	snap := s.Snapshot()
	if i := snap.FindFile(id); i >= 0 {
		return snap.Files[i], true
	}
	return hub.FileItem{}, false
}

func (s *Store) Services() []hub.Backend {
	return slices.Clone(s.services)
}

func (s *Store) Projects() []hub.Project {
	return slices.Clone(s.projects)
}

func (s *Store) LocalDrives() []hub.Backend {
	return slices.Clone(s.Snapshot().LocalDrives)
}

func (s *Store) AllBackends() []hub.Backend {
	drives := s.Snapshot().LocalDrives
	all := make([]hub.Backend, 0, len(s.services)+len(drives))
	all = append(all, s.services...)
	return append(all, drives...)
}

func (s *Store) FindBackend(id string) (hub.Backend, bool) {
	for _, b := range s.AllBackends() {
		if b.ID == id {
			return b, true
		}
	}
	return hub.Backend{}, false
}

func (s *Store) FindProject(id string) (hub.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return hub.Project{}, false
}

func (s *Store) ReplaceAll(next *hub.Snapshot) {
	if next == nil {
		next = &hub.Snapshot{}
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.logger.Debug("snapshot replaced",
		"file_count", len(next.Files),
		"local_drive_count", len(next.LocalDrives),
	)
}

func (s *Store) Update(fn func(current *hub.Snapshot) (*hub.Snapshot, error)) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	next, err := fn(s.Snapshot())
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	s.ReplaceAll(next)
	return nil
}
