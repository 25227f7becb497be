package hub

import (
	"errors"
	"testing"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
)

func TestNavigator_Transitions(t *testing.T) {
	a, b, c := folder("a", "A", "gdrive"), folder("b", "B", "gdrive"), folder("c", "C", "gdrive")

	var nav Navigator
	if !nav.AtRoot() {
		t.Fatal("new navigator should be at root")
	}

	for _, f := range []models.FileItem{a, b, c} {
		if err := nav.Descend(f); err != nil {
			t.Fatalf("Descend(%s) error = %v", f.Name, err)
		}
	}
	if nav.Depth() != 3 {
		t.Fatalf("Depth() = %d, want 3", nav.Depth())
	}

	nav.AscendOne()
	if cur, _ := nav.Current(); cur.ID != "b" {
		t.Errorf("after AscendOne current = %q, want b", cur.ID)
	}

	nav.AscendTo(5) // Deeper than the stack: unchanged
	if nav.Depth() != 2 {
		t.Errorf("AscendTo beyond depth changed the stack: depth %d", nav.Depth())
	}

	nav.AscendTo(1)
	if cur, _ := nav.Current(); nav.Depth() != 1 || cur.ID != "a" {
		t.Errorf("AscendTo(1) left depth %d at %q", nav.Depth(), cur.ID)
	}

	nav.AscendTo(-1)
	if !nav.AtRoot() {
		t.Error("AscendTo(-1) should return to root")
	}

	nav.AscendOne() // No-op at root
	if !nav.AtRoot() {
		t.Error("AscendOne at root should stay at root")
	}
}

func TestNavigator_DescendRejectsFiles(t *testing.T) {
	var nav Navigator
	err := nav.Descend(file("1", "a.txt", "gdrive"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !nav.AtRoot() {
		t.Error("a rejected descend must not change state")
	}
}

func TestNavigator_Breadcrumbs(t *testing.T) {
	var nav Navigator
	_ = nav.Descend(folder("a", "src", "gdrive"))
	_ = nav.Descend(folder("b", "lib", "gdrive"))

	crumbs := nav.Breadcrumbs()
	want := []Breadcrumb{{RootCrumbLabel, 0}, {"src", 1}, {"lib", 2}}
	if len(crumbs) != len(want) {
		t.Fatalf("Breadcrumbs() = %v, want %v", crumbs, want)
	}
	for i := range want {
		if crumbs[i] != want[i] {
			t.Errorf("crumb %d = %v, want %v", i, crumbs[i], want[i])
		}
	}

	// Clicking a crumb keeps that crumb's folder open
	nav.AscendTo(crumbs[1].Index)
	if cur, _ := nav.Current(); cur.Name != "src" {
		t.Errorf("after crumb click current = %q, want src", cur.Name)
	}
	nav.AscendTo(crumbs[0].Index)
	if !nav.AtRoot() {
		t.Error("root crumb should return to root")
	}
}

func TestNavigator_Visible_DropboxAssets(t *testing.T) {
	files := scenarioFiles()
	scope := ResolveScope(models.Selector{Kind: models.SelectService, ID: "dropbox"}, "", files)

	var nav Navigator
	assertNames(t, nav.Visible(scope, files), "Assets")

	if err := nav.Descend(files[1]); err != nil {
		t.Fatalf("Descend() error = %v", err)
	}
	assertNames(t, nav.Visible(scope, files), "b.pdf")
}

func TestNavigator_Visible_BrokenParents(t *testing.T) {
	files := []models.FileItem{
		folder("f", "Docs", "gdrive"),
		inFolder(file("1", "dangling.txt", "gdrive"), "missing"),
		inFolder(file("2", "under-file.txt", "gdrive"), "3"),
		file("3", "plain.txt", "gdrive"),
		folder("x", "Elsewhere", "dropbox"),
		inFolder(file("4", "cross-backend.txt", "gdrive"), "x"),
		inFolder(file("5", "child.txt", "gdrive"), "f"),
	}
	scope := ResolveScope(models.Selector{Kind: models.SelectService, ID: "gdrive"}, "", files)

	var nav Navigator
	assertNames(t, nav.Visible(scope, files), "Docs", "dangling.txt", "under-file.txt", "plain.txt", "cross-backend.txt")

	_ = nav.Descend(files[0])
	assertNames(t, nav.Visible(scope, files), "child.txt")
}

func TestNavigator_Visible_EmptyFolder(t *testing.T) {
	files := []models.FileItem{folder("f", "Empty", "gdrive")}
	var nav Navigator
	_ = nav.Descend(files[0])

	got := nav.Visible(files, files)
	if got == nil || len(got) != 0 {
		t.Errorf("Visible() = %v, want empty non-nil slice", got)
	}
}
