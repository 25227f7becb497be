package hub

// Snapshot is one consistent state of the mutable part of the entity store.
// Snapshots are replaced wholesale, never patched in place.
type Snapshot struct {
	Files       []FileItem // Most recent first
	LocalDrives []Backend  // Creation order
}

// Clone returns a deep-enough copy: slices are copied so the result can be
// modified without touching the receiver. FileItem pointer fields are
// treated as immutable values and shared.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	files := make([]FileItem, len(s.Files))
	copy(files, s.Files)
	drives := make([]Backend, len(s.LocalDrives))
	copy(drives, s.LocalDrives)
	return &Snapshot{Files: files, LocalDrives: drives}
}

// FindFile returns the index of the file with id, or -1
func (s *Snapshot) FindFile(id string) int {
	for i := range s.Files {
		if s.Files[i].ID == id {
			return i
		}
	}
	return -1
}

// PrependFiles places items ahead of the existing files, keeping their order
func (s *Snapshot) PrependFiles(items ...FileItem) {
	files := make([]FileItem, 0, len(items)+len(s.Files))
	files = append(files, items...)
	files = append(files, s.Files...)
	s.Files = files
}
