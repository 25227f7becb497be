package hub

import (
	"fmt"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
)

// RootCrumbLabel is the label of the breadcrumb that returns to the top level
const RootCrumbLabel = "Files"

// Breadcrumb is one index-addressable entry of the folder trail.
// Index 0 is the root; index i+1 is the i-th folder of the stack.
type Breadcrumb struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// Navigator tracks the stack of folders descended into within the current
// selector. An empty stack is the root. Not safe for concurrent use.
type Navigator struct {
	stack []models.FileItem
}

// Descend pushes a folder onto the stack
func (n *Navigator) Descend(folder models.FileItem) error {
	if !folder.IsFolder() {
		return &domain.ValidationError{Message: fmt.Sprintf("%q is not a folder", folder.Name)}
	}
	n.stack = append(n.stack, folder)
	return nil
}

// AscendOne pops the innermost folder. No-op at the root.
func (n *Navigator) AscendOne() {
	if len(n.stack) > 0 {
		n.stack = n.stack[:len(n.stack)-1]
	}
}

// AscendTo truncates the stack to length depth.
//   - depth <= 0 → root
//   - depth >= current depth → unchanged
func (n *Navigator) AscendTo(depth int) {
	switch {
	case depth <= 0:
		n.stack = nil
	case depth < len(n.stack):
		n.stack = n.stack[:depth]
	}
}

// Reset returns to the root
func (n *Navigator) Reset() {
	n.stack = nil
}

// AtRoot reports whether no folder is open
func (n *Navigator) AtRoot() bool {
	return len(n.stack) == 0
}

// Depth is the number of open folders
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Current returns the innermost open folder
func (n *Navigator) Current() (models.FileItem, bool) {
	if len(n.stack) == 0 {
		return models.FileItem{}, false
	}
	return n.stack[len(n.stack)-1], true
}

// Stack returns a copy of the open folders, outermost first
func (n *Navigator) Stack() []models.FileItem {
	return append([]models.FileItem(nil), n.stack...)
}

// Breadcrumbs derives the trail: the root label followed by each folder name
func (n *Navigator) Breadcrumbs() []Breadcrumb {
	crumbs := make([]Breadcrumb, 0, len(n.stack)+1)
	crumbs = append(crumbs, Breadcrumb{Name: RootCrumbLabel, Index: 0})
	for i, f := range n.stack {
		crumbs = append(crumbs, Breadcrumb{Name: f.Name, Index: i + 1})
	}
	return crumbs
}

// Visible narrows scope to the direct children of the current folder, or
// to top-level items at the root. all is the full file set, used to decide
// whether a parent reference resolves: a parent that is missing, is not a
// folder, or lives in another backend is treated as absent.
func (n *Navigator) Visible(scope, all []models.FileItem) []models.FileItem {
	folders := make(map[string]string) // folder id → backend id
	for i := range all {
		if all[i].IsFolder() {
			folders[all[i].ID] = all[i].BackendID
		}
	}

	// A parent that does not resolve to a folder in the same backend
	// leaves the item at the root
	orphan := func(f *models.FileItem) bool {
		backend, ok := folders[*f.ParentID]
		return !ok || backend != f.BackendID
	}

	cur, inFolder := n.Current()
	return filterFiles(scope, func(f *models.FileItem) bool {
		if !inFolder {
			return f.IsTopLevel() || orphan(f)
		}
		return f.InFolder(cur.ID) && !orphan(f)
	})
}
