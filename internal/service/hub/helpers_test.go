package hub

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/repository/memory"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

const testDate = "2026-03-14"

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func testServices() []models.Backend {
	return []models.Backend{
		{ID: "gdrive", Name: "Google Drive", Icon: models.IconGoogleDrive},
		{ID: "dropbox", Name: "Dropbox", Icon: models.IconDropbox},
		{ID: "onedrive", Name: "One Drive", Icon: models.IconOneDrive},
		{ID: "telegram", Name: "Telegram", Icon: models.IconTelegram},
	}
}

func testProjects() []models.Project {
	return []models.Project{
		{ID: "webapp", Name: "WebApp Redesign", Icon: models.IconProject},
		{ID: "mobile", Name: "Mobile App Launch", Icon: models.IconProject},
	}
}

func file(id, name, backend string) models.FileItem {
	return models.FileItem{
		ID: id, Name: name, Kind: models.KindFile, Size: "1 KB",
		Modified: "2024-01-01", BackendID: backend,
	}
}

func folder(id, name, backend string) models.FileItem {
	return models.FileItem{
		ID: id, Name: name, Kind: models.KindFolder, Size: "0 KB",
		Modified: "2024-01-01", BackendID: backend,
	}
}

func inFolder(f models.FileItem, parentID string) models.FileItem {
	f.ParentID = strPtr(parentID)
	return f
}

func inProject(f models.FileItem, projectID string) models.FileItem {
	f.ProjectID = strPtr(projectID)
	return f
}

func withText(f models.FileItem, content string) models.FileItem {
	f.Content = strPtr(content)
	return f
}

// scenarioFiles is a.txt in gdrive plus dropbox/Assets/b.pdf
func scenarioFiles() []models.FileItem {
	return []models.FileItem{
		file("1", "a.txt", "gdrive"),
		folder("3", "Assets", "dropbox"),
		inFolder(file("4", "b.pdf", "dropbox"), "3"),
	}
}

func newTestStore(files ...models.FileItem) *memory.Store {
	return memory.NewStore(testServices(), testProjects(), &models.Snapshot{Files: files}, testLogger())
}

type testEnv struct {
	store    *memory.Store
	recorder *Recorder
	gateway  hubSvc.MutationGateway
}

func newTestEnv(files ...models.FileItem) *testEnv {
	store := newTestStore(files...)
	clock := fixedClock{t: testNow}
	recorder := NewRecorder(clock, testLogger())
	gateway := NewMutationGateway(store, recorder, clock, FixedLatency(0), "gdrive", testLogger())
	return &testEnv{store: store, recorder: recorder, gateway: gateway}
}

func (e *testEnv) fileIDs() []string {
	files := e.store.AllFiles()
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	return ids
}

func itemNames(items []models.FileItem) []string {
	names := make([]string, len(items))
	for i, f := range items {
		names[i] = f.Name
	}
	return names
}

func assertNames(t *testing.T, items []models.FileItem, want ...string) {
	t.Helper()
	got := itemNames(items)
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items = %v, want %v", got, want)
		}
	}
}

// fakeAssistant returns canned text, or err, and runs onCall during each call
type fakeAssistant struct {
	mu     sync.Mutex
	text   string
	err    error
	onCall func()
	calls  int
}

func (a *fakeAssistant) call() (string, error) {
	a.mu.Lock()
	a.calls++
	onCall := a.onCall
	a.mu.Unlock()
	if onCall != nil {
		onCall()
	}
	if a.err != nil {
		return "", a.err
	}
	return a.text, nil
}

func (a *fakeAssistant) GenerateReadme(ctx context.Context, projectName, description string) (string, error) {
	return a.call()
}

func (a *fakeAssistant) GetAssistance(ctx context.Context, code, userPrompt string, mode models.AssistanceMode) (string, error) {
	return a.call()
}

func (a *fakeAssistant) AnalyzeProjectFiles(ctx context.Context, files []models.FileSummary) (string, error) {
	return a.call()
}

func (a *fakeAssistant) AnalyzeEcosystem(ctx context.Context, listing, notes string) (string, error) {
	return a.call()
}

func (a *fakeAssistant) Name() string { return "Helper" }
