package hub

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
)

func newTestWorkspace(assistant *fakeAssistant, files ...models.FileItem) (*Workspace, *testEnv) {
	env := newTestEnv(files...)
	if assistant == nil {
		assistant = &fakeAssistant{text: "ok"}
	}
	return NewWorkspace(env.store, env.gateway, env.recorder, assistant, testLogger()), env
}

func TestWorkspace_DropboxAssetsScenario(t *testing.T) {
	ws, _ := newTestWorkspace(nil, scenarioFiles()...)

	view := ws.SelectView(models.Selector{Kind: models.SelectService, ID: "dropbox"})
	assertNames(t, view.Items, "Assets")
	if view.Title != "Dropbox" {
		t.Errorf("Title = %q, want Dropbox", view.Title)
	}

	view, err := ws.OpenItem("3")
	if err != nil {
		t.Fatalf("OpenItem(Assets) error = %v", err)
	}
	assertNames(t, view.Items, "b.pdf")
	if len(view.Breadcrumbs) != 2 || view.Breadcrumbs[1].Name != "Assets" {
		t.Errorf("Breadcrumbs = %v", view.Breadcrumbs)
	}
}

func TestWorkspace_SelectorSwitchResetsHierarchy(t *testing.T) {
	files := append(scenarioFiles(), folder("9", "Assets", "gdrive"))
	ws, _ := newTestWorkspace(nil, files...)

	ws.SelectView(models.Selector{Kind: models.SelectService, ID: "dropbox"})
	if _, err := ws.OpenItem("3"); err != nil {
		t.Fatalf("OpenItem() error = %v", err)
	}

	view := ws.SelectView(models.Selector{Kind: models.SelectService, ID: "gdrive"})
	if len(view.Breadcrumbs) != 1 || view.Breadcrumbs[0].Index != 0 {
		t.Errorf("expected root breadcrumbs only, got %v", view.Breadcrumbs)
	}
	assertNames(t, view.Items, "a.txt", "Assets")
}

func TestWorkspace_SearchBypassesHierarchy(t *testing.T) {
	files := []models.FileItem{
		folder("10", "level1", "gdrive"),
		inFolder(folder("11", "level2", "gdrive"), "10"),
		inFolder(file("12", "needle.txt", "gdrive"), "11"),
	}
	ws, _ := newTestWorkspace(nil, files...)

	view := ws.SetSearchQuery("NEEDLE")
	if !view.Searching || view.Breadcrumbs != nil {
		t.Errorf("search should suspend breadcrumbs, got %+v", view)
	}
	assertNames(t, view.Items, "needle.txt")
	if view.Title != `Searching for "NEEDLE"` {
		t.Errorf("Title = %q", view.Title)
	}

	if _, err := ws.OpenItem("10"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("folder descent while searching: expected validation error, got %v", err)
	}
	if _, err := ws.GoBack(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("back while searching: expected validation error, got %v", err)
	}

	view = ws.SetSearchQuery("")
	assertNames(t, view.Items, "level1")
}

func TestWorkspace_SearchResetsNavigator(t *testing.T) {
	files := []models.FileItem{folder("10", "docs", "gdrive"), inFolder(file("11", "x.txt", "gdrive"), "10")}
	ws, _ := newTestWorkspace(nil, files...)

	if _, err := ws.OpenItem("10"); err != nil {
		t.Fatalf("OpenItem() error = %v", err)
	}
	ws.SetSearchQuery("x")
	view := ws.SetSearchQuery("")
	if len(view.Breadcrumbs) != 1 {
		t.Errorf("non-empty search should reset the folder stack, got %v", view.Breadcrumbs)
	}
}

func TestWorkspace_SelectViewClearsSearch(t *testing.T) {
	ws, _ := newTestWorkspace(nil, scenarioFiles()...)
	ws.SetSearchQuery("a")

	view := ws.SelectView(models.Selector{Kind: models.SelectService, ID: "gdrive"})
	if view.Searching || view.SearchQuery != "" {
		t.Errorf("selecting a view should clear the search, got %+v", view)
	}
}

func TestWorkspace_UploadWithoutProjectNeverInProjectView(t *testing.T) {
	ws, _ := newTestWorkspace(nil, inProject(file("p1", "plan.md", "gdrive"), "webapp"))
	ctx := context.Background()

	if _, err := ws.Upload(ctx, &hubSvc.UploadRequest{Name: "loose.txt", BackendID: "gdrive"}); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	for _, p := range testProjects() {
		view := ws.SelectView(models.Selector{Kind: models.SelectProject, ID: p.ID})
		for _, f := range view.Items {
			if f.Name == "loose.txt" {
				t.Errorf("unassigned upload visible in project %s", p.ID)
			}
		}
	}
	view := ws.SelectView(models.Selector{Kind: models.SelectProject, ID: "webapp"})
	assertNames(t, view.Items, "plan.md")
}

func TestWorkspace_Titles(t *testing.T) {
	ws, _ := newTestWorkspace(nil)
	ctx := context.Background()
	drive, err := ws.AddLocalDrive(ctx, &hubSvc.AddDriveRequest{Name: "Scratch"})
	if err != nil {
		t.Fatalf("AddLocalDrive() error = %v", err)
	}

	tests := []struct {
		sel  models.Selector
		want string
	}{
		{models.DefaultSelector(), "All Files"},
		{models.Selector{Kind: models.SelectService, ID: "telegram"}, "Telegram"},
		{models.Selector{Kind: models.SelectService, ID: "nope"}, "Files"},
		{models.Selector{Kind: models.SelectProject, ID: "mobile"}, "Mobile App Launch"},
		{models.Selector{Kind: models.SelectProject, ID: "nope"}, "Project Files"},
		{models.Selector{Kind: models.SelectLocal, ID: drive.Drive.ID}, "Scratch"},
		{models.Selector{Kind: models.SelectLocal, ID: "nope"}, "Local Files"},
		{models.Selector{Kind: "other", ID: "x"}, "DevCloud Hub"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ws.SelectView(tt.sel).Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorkspace_OpenItem(t *testing.T) {
	ws, _ := newTestWorkspace(nil, scenarioFiles()...)

	if _, err := ws.OpenItem("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id: expected not found, got %v", err)
	}

	view, err := ws.OpenItem("1")
	if err != nil {
		t.Fatalf("OpenItem(file) error = %v", err)
	}
	if view.Overlay.Kind != models.OverlayPreview || view.Overlay.TargetID != "1" {
		t.Errorf("opening a file should preview it, got %+v", view.Overlay)
	}
	if len(view.Breadcrumbs) != 1 {
		t.Error("opening a file is not a navigation transition")
	}

	ws.SelectView(models.Selector{Kind: models.SelectService, ID: "gdrive"})
	if _, err := ws.OpenItem("3"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("folder outside the view: expected validation error, got %v", err)
	}
}

func TestWorkspace_Breadcrumbs(t *testing.T) {
	files := []models.FileItem{
		folder("a", "a", "gdrive"),
		inFolder(folder("b", "b", "gdrive"), "a"),
		inFolder(file("c", "c.txt", "gdrive"), "b"),
	}
	ws, _ := newTestWorkspace(nil, files...)
	ws.OpenItem("a")
	ws.OpenItem("b")

	view, err := ws.GoToBreadcrumb(1)
	if err != nil {
		t.Fatalf("GoToBreadcrumb() error = %v", err)
	}
	assertNames(t, view.Items, "b")

	view, _ = ws.GoBack()
	assertNames(t, view.Items, "a")
}

func TestWorkspace_AddLocalDriveSwitchesView(t *testing.T) {
	ws, _ := newTestWorkspace(nil, scenarioFiles()...)
	ws.SelectView(models.Selector{Kind: models.SelectService, ID: "dropbox"})
	ws.OpenItem("3")

	result, err := ws.AddLocalDrive(context.Background(), &hubSvc.AddDriveRequest{Name: "D"})
	if err != nil {
		t.Fatalf("AddLocalDrive() error = %v", err)
	}

	view := ws.View()
	if view.Selector.Kind != models.SelectLocal || view.Selector.ID != result.Drive.ID {
		t.Errorf("selector = %+v, want the new drive", view.Selector)
	}
	if len(view.Breadcrumbs) != 1 {
		t.Error("switching to the new drive should reset the navigator")
	}
	if len(view.Items) != len(result.Files) {
		t.Errorf("view shows %d items, want the %d starter files", len(view.Items), len(result.Files))
	}
	if view.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", view.UnreadCount)
	}
}

func TestWorkspace_CloneRepositorySwitchesView(t *testing.T) {
	ws, _ := newTestWorkspace(nil)

	result, err := ws.CloneRepository(context.Background(), &hubSvc.CloneRequest{
		RepoURL: "git@github.com:acme/tool.git", LocalName: "tool",
	})
	if err != nil {
		t.Fatalf("CloneRepository() error = %v", err)
	}
	view := ws.View()
	if view.Selector.ID != result.Drive.ID {
		t.Errorf("selector = %+v", view.Selector)
	}
	// The nested file stays inside src
	for _, f := range view.Items {
		if f.ParentID != nil {
			t.Errorf("nested item %s visible at root", f.Name)
		}
	}
}

func TestWorkspace_Overlay(t *testing.T) {
	ws, _ := newTestWorkspace(nil, scenarioFiles()...)

	tests := []struct {
		name    string
		kind    models.OverlayKind
		target  string
		wantErr error
	}{
		{"upload", models.OverlayUpload, "", nil},
		{"upload ignores target", models.OverlayUpload, "x", nil},
		{"readme", models.OverlayReadme, "webapp", nil},
		{"readme unknown project", models.OverlayReadme, "ghost", domain.ErrNotFound},
		{"readme missing target", models.OverlayReadme, "", domain.ErrValidation},
		{"editor", models.OverlayEditor, "1", nil},
		{"editor on folder", models.OverlayEditor, "3", domain.ErrValidation},
		{"analyzer", models.OverlayAnalyzer, "dropbox", nil},
		{"unknown kind", models.OverlayKind("modal"), "", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ws.Overlay()
			got, err := ws.OpenOverlay(tt.kind, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if ws.Overlay() != before {
					t.Error("rejected overlay must not change state")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenOverlay() error = %v", err)
			}
			if got.Kind != tt.kind || (tt.kind.NeedsTarget() && got.TargetID != tt.target) {
				t.Errorf("overlay = %+v", got)
			}
			if !tt.kind.NeedsTarget() && got.TargetID != "" {
				t.Errorf("overlay %s should carry no target", tt.kind)
			}
		})
	}

	if got := ws.CloseOverlay(); got.Kind != models.OverlayNone {
		t.Errorf("CloseOverlay() = %+v", got)
	}
}

func TestWorkspace_GenerateReadme_Busy(t *testing.T) {
	assistant := &fakeAssistant{text: "# Draft"}
	ws, _ := newTestWorkspace(assistant)

	if _, err := ws.OpenOverlay(models.OverlayReadme, "webapp"); err != nil {
		t.Fatalf("OpenOverlay() error = %v", err)
	}
	var busyDuringCall bool
	assistant.onCall = func() { busyDuringCall = ws.Overlay().Busy }

	draft, err := ws.GenerateReadme(context.Background(), "webapp", "A redesign")
	if err != nil {
		t.Fatalf("GenerateReadme() error = %v", err)
	}
	if draft != "# Draft" {
		t.Errorf("draft = %q", draft)
	}
	if !busyDuringCall {
		t.Error("overlay should be busy while the collaborator call is outstanding")
	}
	if ws.Overlay().Busy {
		t.Error("busy flag should clear after the call")
	}
}

func TestWorkspace_GenerateReadme_Errors(t *testing.T) {
	assistant := &fakeAssistant{err: &domain.CollaboratorError{Operation: "generate_readme", Err: errors.New("boom")}}
	ws, env := newTestWorkspace(assistant)
	ctx := context.Background()

	if _, err := ws.GenerateReadme(ctx, "webapp", "   "); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank description: expected validation error, got %v", err)
	}
	if _, err := ws.GenerateReadme(ctx, "ghost", "desc"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown project: expected not found, got %v", err)
	}
	if _, err := ws.GenerateReadme(ctx, "webapp", "desc"); !errors.Is(err, domain.ErrAssistanceUnavailable) {
		t.Errorf("collaborator failure: expected ErrAssistanceUnavailable, got %v", err)
	}
	if assistant.calls != 1 {
		t.Errorf("collaborator called %d times, want 1", assistant.calls)
	}
	if len(env.store.AllFiles()) != 0 {
		t.Error("generation alone must not store a README")
	}
}

func TestWorkspace_AnalyzeBackend(t *testing.T) {
	assistant := &fakeAssistant{text: "Looks like a design archive."}
	ws, env := newTestWorkspace(assistant, scenarioFiles()...)
	ctx := context.Background()

	got, err := ws.AnalyzeBackend(ctx, "dropbox")
	if err != nil {
		t.Fatalf("AnalyzeBackend() error = %v", err)
	}
	if got != assistant.text {
		t.Errorf("analysis = %q", got)
	}
	if msg := env.recorder.List()[0].Message; msg != "Analysis complete for Dropbox." {
		t.Errorf("notification = %q", msg)
	}

	_, err = ws.AnalyzeBackend(ctx, "telegram")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Message != msgNoFilesToAnalyze {
		t.Errorf("empty backend: expected %q, got %v", msgNoFilesToAnalyze, err)
	}
	if _, err := ws.AnalyzeBackend(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown backend: expected not found, got %v", err)
	}

	assistant.err = errors.New("offline")
	before := len(env.recorder.List())
	if _, err := ws.AnalyzeBackend(ctx, "gdrive"); err == nil {
		t.Error("expected collaborator failure")
	}
	if len(env.recorder.List()) != before {
		t.Error("failed analysis must not record a notification")
	}
}

func TestWorkspace_AnalyzeEcosystem(t *testing.T) {
	ws, _ := newTestWorkspace(&fakeAssistant{text: "report"})

	if _, err := ws.AnalyzeEcosystem(context.Background(), " \n ", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank listing: expected validation error, got %v", err)
	}
	got, err := ws.AnalyzeEcosystem(context.Background(), "A:/\n  projects/", "")
	if err != nil || got != "report" {
		t.Errorf("AnalyzeEcosystem() = (%q, %v)", got, err)
	}
}

func TestWorkspace_Chat(t *testing.T) {
	ws, _ := newTestWorkspace(&fakeAssistant{text: "It prints hello."}, withText(file("1", "main.go", "gdrive"), "package main"), folder("2", "src", "gdrive"))
	ctx := context.Background()

	chat, err := ws.ChatHistory("1")
	if err != nil {
		t.Fatalf("ChatHistory() error = %v", err)
	}
	history := chat.Messages
	if len(history) != 1 || !strings.Contains(history[0].Content, "Helper") || !strings.Contains(history[0].Content, "main.go") {
		t.Errorf("greeting = %+v", history)
	}

	chat, err = ws.Chat(ctx, "1", models.ModeExplain, "")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if len(chat.Messages) != 3 || chat.Messages[2].Content != "It prints hello." || chat.Busy {
		t.Errorf("chat = %+v", chat)
	}

	again, _ := ws.ChatHistory("1")
	if len(again.Messages) != 3 {
		t.Error("session should persist per file")
	}

	if _, err := ws.Chat(ctx, "2", models.ModeExplain, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("folder chat: expected validation error, got %v", err)
	}
	if _, err := ws.Chat(ctx, "404", models.ModeExplain, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown file: expected not found, got %v", err)
	}
}

func TestWorkspace_ChatBusyWhileOutstanding(t *testing.T) {
	assistant := &fakeAssistant{text: "done"}
	ws, _ := newTestWorkspace(assistant, withText(file("1", "main.go", "gdrive"), "package main"))

	var busy bool
	assistant.onCall = func() {
		chat, _ := ws.ChatHistory("1")
		busy = chat.Busy
	}
	if _, err := ws.Chat(context.Background(), "1", models.ModeDebug, ""); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !busy {
		t.Error("history should report busy while the assistant is answering")
	}
}

func TestWorkspace_ApplyChatCode(t *testing.T) {
	assistant := &fakeAssistant{text: "Refactored:\n```go\npackage main\n\nfunc main() {}\n```"}
	ws, env := newTestWorkspace(assistant, withText(file("1", "main.go", "gdrive"), "package main"))
	ctx := context.Background()

	if _, err := ws.ApplyChatCode(ctx, "1", -1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("nothing to apply: expected validation error, got %v", err)
	}

	if _, err := ws.Chat(ctx, "1", models.ModeRefactor, ""); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	updated, err := ws.ApplyChatCode(ctx, "1", -1)
	if err != nil {
		t.Fatalf("ApplyChatCode() error = %v", err)
	}
	want := "package main\n\nfunc main() {}"
	if updated == nil || updated.ContentOrEmpty() != want {
		t.Fatalf("updated = %+v", updated)
	}
	if stored, _ := env.store.GetFile("1"); stored.ContentOrEmpty() != want {
		t.Errorf("stored content = %q", stored.ContentOrEmpty())
	}

	if _, err := ws.ApplyChatCode(ctx, "404", -1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown file: expected not found, got %v", err)
	}
}

func TestWorkspace_Notifications(t *testing.T) {
	ws, _ := newTestWorkspace(nil, scenarioFiles()...)
	ctx := context.Background()

	ws.Upload(ctx, &hubSvc.UploadRequest{Name: "one", BackendID: "gdrive"})
	ws.Upload(ctx, &hubSvc.UploadRequest{Name: "two", BackendID: "gdrive"})

	if ws.View().UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2", ws.View().UnreadCount)
	}
	list := ws.Notifications()
	if !strings.Contains(list[0].Message, `"two"`) {
		t.Errorf("newest notification should come first, got %q", list[0].Message)
	}

	ws.MarkAllRead()
	if ws.View().UnreadCount != 0 {
		t.Error("MarkAllRead should clear the unread count")
	}
	if len(ws.Notifications()) != 2 {
		t.Error("MarkAllRead must not delete notifications")
	}
}
