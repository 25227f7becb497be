package hub

import (
	"testing"

	models "devcloud/internal/domain/models/hub"
)

func TestResolveScope_Selectors(t *testing.T) {
	files := []models.FileItem{
		inProject(file("1", "a.txt", "gdrive"), "webapp"),
		file("2", "b.txt", "dropbox"),
		inProject(file("3", "c.txt", "local-1"), "mobile"),
	}

	tests := []struct {
		name string
		sel  models.Selector
		want []string
	}{
		{"all services", models.Selector{Kind: models.SelectService, ID: models.AllID}, []string{"a.txt", "b.txt", "c.txt"}},
		{"all local", models.Selector{Kind: models.SelectLocal, ID: models.AllID}, []string{"a.txt", "b.txt", "c.txt"}},
		{"one service", models.Selector{Kind: models.SelectService, ID: "dropbox"}, []string{"b.txt"}},
		{"one local drive", models.Selector{Kind: models.SelectLocal, ID: "local-1"}, []string{"c.txt"}},
		{"project", models.Selector{Kind: models.SelectProject, ID: "webapp"}, []string{"a.txt"}},
		{"project all is not a wildcard", models.Selector{Kind: models.SelectProject, ID: models.AllID}, []string{}},
		{"unknown backend", models.Selector{Kind: models.SelectService, ID: "nope"}, []string{}},
		{"unknown kind", models.Selector{Kind: "tag", ID: "x"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveScope(tt.sel, "", files)
			if got == nil {
				t.Fatal("scope must never be nil")
			}
			assertNames(t, got, tt.want...)
		})
	}
}

func TestResolveScope_Search(t *testing.T) {
	files := []models.FileItem{
		file("1", "Report.PDF", "gdrive"),
		withText(file("2", "notes.md", "dropbox"), "Remember the quarterly REPORT"),
		withText(file("3", "logo.png", "gdrive"), "data:image/png;base64,cmVwb3J0"),
		folder("4", "Reports", "onedrive"),
		withText(file("5", "todo.txt", "gdrive"), "nothing here"),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name case-insensitive", "report.pdf", []string{"Report.PDF"}},
		{"name or text content", "report", []string{"Report.PDF", "notes.md", "Reports"}},
		{"image payload is not scanned", "base64", []string{}},
		{"image name still matches", "LOGO", []string{"logo.png"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The selector is ignored while searching
			sel := models.Selector{Kind: models.SelectService, ID: "telegram"}
			assertNames(t, ResolveScope(sel, tt.query, files), tt.want...)
		})
	}
}

func TestResolveScope_SearchIgnoresHierarchy(t *testing.T) {
	files := []models.FileItem{
		folder("10", "outer", "gdrive"),
		inFolder(folder("11", "inner", "gdrive"), "10"),
		inFolder(file("12", "deep-target.txt", "gdrive"), "11"),
	}

	got := ResolveScope(models.DefaultSelector(), "target", files)
	assertNames(t, got, "deep-target.txt")
}
