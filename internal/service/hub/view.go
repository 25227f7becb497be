package hub

import (
	"strings"

	models "devcloud/internal/domain/models/hub"

	"golang.org/x/text/cases"
)

// ResolveScope returns the files in scope for a selector and search query,
// before hierarchy filtering. A non-empty query overrides the selector and
// yields a flat match set. Unknown selector kinds resolve to an empty scope.
//
// Examples:
//   - ({service, "all"}, "", files) → every file
//   - ({project, "webapp"}, "", files) → files assigned to webapp
//   - (any, "logo", files) → every file whose name or text content contains "logo"
func ResolveScope(sel models.Selector, query string, files []models.FileItem) []models.FileItem {
	if query != "" {
		return searchFiles(query, files)
	}

	switch sel.Kind {
	case models.SelectService, models.SelectLocal:
		if sel.IsAll() {
			return append([]models.FileItem(nil), files...)
		}
		return filterFiles(files, func(f *models.FileItem) bool { return f.BackendID == sel.ID })
	case models.SelectProject:
		return filterFiles(files, func(f *models.FileItem) bool { return f.InProject(sel.ID) })
	default:
		return []models.FileItem{}
	}
}

// searchFiles matches names, and text content of files, case-insensitively.
// Image payloads are never scanned.
func searchFiles(query string, files []models.FileItem) []models.FileItem {
	// A Caser keeps state and is not safe for concurrent use
	fold := cases.Fold()
	needle := fold.String(query)

	return filterFiles(files, func(f *models.FileItem) bool {
		if strings.Contains(fold.String(f.Name), needle) {
			return true
		}
		if f.IsFolder() || f.Content == nil || f.HasImageContent() {
			return false
		}
		return strings.Contains(fold.String(*f.Content), needle)
	})
}

func filterFiles(files []models.FileItem, keep func(*models.FileItem) bool) []models.FileItem {
	out := make([]models.FileItem, 0)
	for i := range files {
		if keep(&files[i]) {
			out = append(out, files[i])
		}
	}
	return out
}
