package hub

import (
	"fmt"

	models "devcloud/internal/domain/models/hub"
)

// Severity grades a snapshot issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning" // Tolerated at resolution time
)

// Issue is one invariant violation found in a snapshot
type Issue struct {
	Severity Severity `json:"severity"`
	FileID   string   `json:"file_id,omitempty"`
	Message  string   `json:"message"`
}

// Report collects the issues of one snapshot check
type Report struct {
	Issues []Issue `json:"issues"`
}

// Errors counts the error-level issues
func (r *Report) Errors() int { return r.count(SeverityError) }

// Warnings counts the warning-level issues
func (r *Report) Warnings() int { return r.count(SeverityWarning) }

// OK reports whether the snapshot has no error-level issues
func (r *Report) OK() bool { return r.Errors() == 0 }

func (r *Report) count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

func (r *Report) add(s Severity, fileID, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: s, FileID: fileID, Message: fmt.Sprintf(format, args...)})
}

// ValidateSnapshot checks file records against the registries.
//
// Errors: duplicate file or backend ids, unknown backend or project,
// folders carrying content.
// Warnings: parents that are missing, not folders, in another backend,
// or part of a cycle. Such items are shown as top-level.
func ValidateSnapshot(services []models.Backend, projects []models.Project, snap *models.Snapshot) *Report {
	report := &Report{}

	backends := make(map[string]bool)
	for _, b := range append(append([]models.Backend(nil), services...), snap.LocalDrives...) {
		if backends[b.ID] {
			report.add(SeverityError, "", "duplicate backend id %q", b.ID)
		}
		backends[b.ID] = true
	}
	projectIDs := make(map[string]bool, len(projects))
	for _, p := range projects {
		projectIDs[p.ID] = true
	}

	byID := make(map[string]*models.FileItem, len(snap.Files))
	for i := range snap.Files {
		f := &snap.Files[i]
		if _, dup := byID[f.ID]; dup {
			report.add(SeverityError, f.ID, "duplicate file id %q", f.ID)
			continue
		}
		byID[f.ID] = f
	}

	for i := range snap.Files {
		f := &snap.Files[i]
		if !backends[f.BackendID] {
			report.add(SeverityError, f.ID, "%q references unknown backend %q", f.Name, f.BackendID)
		}
		if f.ProjectID != nil && !projectIDs[*f.ProjectID] {
			report.add(SeverityError, f.ID, "%q references unknown project %q", f.Name, *f.ProjectID)
		}
		if f.IsFolder() && f.Content != nil {
			report.add(SeverityError, f.ID, "folder %q carries content", f.Name)
		}
		if f.ParentID == nil {
			continue
		}

		parent, ok := byID[*f.ParentID]
		switch {
		case !ok:
			report.add(SeverityWarning, f.ID, "%q has dangling parent %q", f.Name, *f.ParentID)
		case !parent.IsFolder():
			report.add(SeverityWarning, f.ID, "%q has non-folder parent %q", f.Name, parent.ID)
		case parent.BackendID != f.BackendID:
			report.add(SeverityWarning, f.ID, "%q has parent %q in backend %q", f.Name, parent.ID, parent.BackendID)
		case inCycle(f, byID):
			report.add(SeverityWarning, f.ID, "%q reaches a parent cycle", f.Name)
		}
	}
	return report
}

// inCycle follows parent links from f and reports whether they loop back
func inCycle(f *models.FileItem, byID map[string]*models.FileItem) bool {
	seen := map[string]bool{f.ID: true}
	for cur := f; cur.ParentID != nil; {
		next, ok := byID[*cur.ParentID]
		if !ok {
			return false
		}
		if seen[next.ID] {
			return true
		}
		seen[next.ID] = true
		cur = next
	}
	return false
}
