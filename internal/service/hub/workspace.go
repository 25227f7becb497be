package hub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
	hubRepo "devcloud/internal/domain/repositories/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/service/assist"
)

// Messages shown inline by the analyzer overlays
const (
	msgNoFilesToAnalyze = "This drive has no files to analyze."
	msgListingRequired  = "Please paste your directory listing into the text area."
	msgSearchSuspended  = "folder navigation is suspended while searching"
)

// View is everything the presentation layer renders for the current state
type View struct {
	Title       string            `json:"title"`
	Selector    models.Selector   `json:"selector"`
	SearchQuery string            `json:"search_query"`
	Searching   bool              `json:"searching"`
	Breadcrumbs []Breadcrumb      `json:"breadcrumbs"` // nil while searching
	Items       []models.FileItem `json:"items"`
	UnreadCount int               `json:"unread_count"`
	Overlay     models.Overlay    `json:"overlay"`
}

// ChatState is a file's editor chat. Busy is set while a request is
// outstanding.
type ChatState struct {
	Messages []models.ChatMessage `json:"messages"`
	Busy     bool                 `json:"busy"`
}

// Workspace holds the dashboard's navigation state (selector, search query,
// folder stack, active overlay, editor chats) and routes user actions to
// the mutation gateway and the AI collaborator. The lock is never held
// across gateway or collaborator calls.
type Workspace struct {
	store     hubRepo.EntityStore
	gateway   hubSvc.MutationGateway
	recorder  hubSvc.NotificationRecorder
	assistant hubSvc.Assistant
	logger    *slog.Logger

	mu       sync.Mutex
	selector models.Selector
	query    string
	nav      Navigator
	overlay  models.Overlay
	chats    map[string]*assist.ChatSession // By file id
}

// NewWorkspace creates a workspace showing "All Files" at the root
func NewWorkspace(
	store hubRepo.EntityStore,
	gateway hubSvc.MutationGateway,
	recorder hubSvc.NotificationRecorder,
	assistant hubSvc.Assistant,
	logger *slog.Logger,
) *Workspace {
	return &Workspace{
		store:     store,
		gateway:   gateway,
		recorder:  recorder,
		assistant: assistant,
		logger:    logger,
		selector:  models.DefaultSelector(),
		overlay:   models.Overlay{Kind: models.OverlayNone},
		chats:     make(map[string]*assist.ChatSession),
	}
}

// View derives the current view from one store snapshot
func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Workspace) viewLocked() View {
	files := w.store.Snapshot().Files
	scope := ResolveScope(w.selector, w.query, files)

	v := View{
		Title:       w.titleLocked(),
		Selector:    w.selector,
		SearchQuery: w.query,
		Searching:   w.query != "",
		UnreadCount: w.recorder.UnreadCount(),
		Overlay:     w.overlay,
	}
	if v.Searching {
		v.Items = scope
	} else {
		v.Items = w.nav.Visible(scope, files)
		v.Breadcrumbs = w.nav.Breadcrumbs()
	}
	return v
}

func (w *Workspace) titleLocked() string {
	if w.query != "" {
		return `Searching for "` + w.query + `"`
	}

	switch w.selector.Kind {
	case models.SelectService:
		if w.selector.IsAll() {
			return "All Files"
		}
		for _, s := range w.store.Services() {
			if s.ID == w.selector.ID {
				return s.Name
			}
		}
		return "Files"
	case models.SelectProject:
		if p, ok := w.store.FindProject(w.selector.ID); ok {
			return p.Name
		}
		return "Project Files"
	case models.SelectLocal:
		for _, d := range w.store.LocalDrives() {
			if d.ID == w.selector.ID {
				return d.Name
			}
		}
		return "Local Files"
	default:
		return "DevCloud Hub"
	}
}

// SelectView switches the top-level scope. The folder stack is reset and
// the search query cleared.
func (w *Workspace) SelectView(sel models.Selector) View {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selector = sel
	w.query = ""
	w.nav.Reset()
	w.logger.Debug("view selected", "kind", sel.Kind, "id", sel.ID)
	return w.viewLocked()
}

// SetSearchQuery sets the query verbatim. A non-empty query resets the
// folder stack.
func (w *Workspace) SetSearchQuery(query string) View {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.query = query
	if query != "" {
		w.nav.Reset()
	}
	return w.viewLocked()
}

// OpenItem descends into a visible folder, or opens a file for preview
func (w *Workspace) OpenItem(id string) (View, error) {
	item, ok := w.store.GetFile(id)
	if !ok {
		return View{}, &domain.NotFoundError{Message: fmt.Sprintf("file %q not found", id)}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !item.IsFolder() {
		w.overlay = models.Overlay{Kind: models.OverlayPreview, TargetID: item.ID}
		return w.viewLocked(), nil
	}

	if w.query != "" {
		return View{}, &domain.ValidationError{Message: msgSearchSuspended}
	}
	visible := false
	for _, f := range w.viewLocked().Items {
		if f.ID == item.ID {
			visible = true
			break
		}
	}
	if !visible {
		return View{}, &domain.ValidationError{Message: fmt.Sprintf("folder %q is not in the current view", item.Name)}
	}
	if err := w.nav.Descend(item); err != nil {
		return View{}, err
	}
	return w.viewLocked(), nil
}

// GoBack leaves the innermost folder
func (w *Workspace) GoBack() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.query != "" {
		return View{}, &domain.ValidationError{Message: msgSearchSuspended}
	}
	w.nav.AscendOne()
	return w.viewLocked(), nil
}

// GoToBreadcrumb truncates the folder stack to the crumb at index.
// Index 0 (or below) is the root.
func (w *Workspace) GoToBreadcrumb(index int) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.query != "" {
		return View{}, &domain.ValidationError{Message: msgSearchSuspended}
	}
	w.nav.AscendTo(index)
	return w.viewLocked(), nil
}

// OpenOverlay makes kind the single active overlay. Overlays that carry a
// target require it to resolve.
func (w *Workspace) OpenOverlay(kind models.OverlayKind, targetID string) (models.Overlay, error) {
	if !kind.Valid() {
		return models.Overlay{}, &domain.ValidationError{Message: fmt.Sprintf("unknown overlay %q", kind)}
	}
	if !kind.NeedsTarget() {
		targetID = ""
	} else if err := w.checkOverlayTarget(kind, targetID); err != nil {
		return models.Overlay{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.overlay = models.Overlay{Kind: kind, TargetID: targetID}
	return w.overlay, nil
}

// CloseOverlay returns to no overlay
func (w *Workspace) CloseOverlay() models.Overlay {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.overlay = models.Overlay{Kind: models.OverlayNone}
	return w.overlay
}

// Overlay returns the active overlay
func (w *Workspace) Overlay() models.Overlay {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.overlay
}

func (w *Workspace) checkOverlayTarget(kind models.OverlayKind, targetID string) error {
	if targetID == "" {
		return &domain.ValidationError{Message: fmt.Sprintf("overlay %q requires a target", kind)}
	}

	var found bool
	switch kind {
	case models.OverlayReadme:
		_, found = w.store.FindProject(targetID)
	case models.OverlayEditor:
		f, ok := w.store.GetFile(targetID)
		if ok && f.IsFolder() {
			return &domain.ValidationError{Message: fmt.Sprintf("folder %q cannot be edited", f.Name)}
		}
		found = ok
	case models.OverlayPreview:
		_, found = w.store.GetFile(targetID)
	case models.OverlayAnalyzer:
		_, found = w.store.FindBackend(targetID)
	}
	if !found {
		return &domain.NotFoundError{Message: fmt.Sprintf("%s target %q not found", kind, targetID)}
	}
	return nil
}

// setBusy raises or clears the busy flag when kind/target is the active overlay
func (w *Workspace) setBusy(kind models.OverlayKind, targetID string, busy bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.overlay.Kind == kind && w.overlay.TargetID == targetID {
		w.overlay.Busy = busy
	}
}

// Backends returns services then local drives
func (w *Workspace) Backends() []models.Backend {
	return w.store.AllBackends()
}

// Projects returns the fixed projects
func (w *Workspace) Projects() []models.Project {
	return w.store.Projects()
}

// GetFile returns one file by id
func (w *Workspace) GetFile(id string) (*models.FileItem, error) {
	f, ok := w.store.GetFile(id)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("file %q not found", id)}
	}
	return &f, nil
}

// Upload adds a new file
func (w *Workspace) Upload(ctx context.Context, req *hubSvc.UploadRequest) (*models.FileItem, error) {
	return w.gateway.Upload(ctx, req)
}

// SaveFileContent stores edited content. A file that no longer exists is
// a silent no-op: (nil, nil).
func (w *Workspace) SaveFileContent(ctx context.Context, fileID, content string) (*models.FileItem, error) {
	return w.gateway.SaveContent(ctx, fileID, content)
}

// GenerateReadme asks the collaborator for a README draft. Nothing is
// saved until SaveReadme.
func (w *Workspace) GenerateReadme(ctx context.Context, projectID, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", &domain.ValidationError{Message: "Please provide a project description."}
	}
	project, ok := w.store.FindProject(projectID)
	if !ok {
		return "", &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", projectID)}
	}

	w.setBusy(models.OverlayReadme, projectID, true)
	defer w.setBusy(models.OverlayReadme, projectID, false)

	return w.assistant.GenerateReadme(ctx, project.Name, description)
}

// SaveReadme upserts a project's README.md
func (w *Workspace) SaveReadme(ctx context.Context, projectID, content string) (*models.FileItem, error) {
	return w.gateway.SaveReadme(ctx, projectID, content)
}

// AddLocalDrive creates a drive and switches the view to it
func (w *Workspace) AddLocalDrive(ctx context.Context, req *hubSvc.AddDriveRequest) (*hubSvc.DriveResult, error) {
	result, err := w.gateway.AddLocalDrive(ctx, req)
	if err != nil {
		return nil, err
	}
	w.SelectView(models.Selector{Kind: models.SelectLocal, ID: result.Drive.ID})
	return result, nil
}

// CloneRepository clones into a new drive and switches the view to it
func (w *Workspace) CloneRepository(ctx context.Context, req *hubSvc.CloneRequest) (*hubSvc.DriveResult, error) {
	result, err := w.gateway.CloneRepository(ctx, req)
	if err != nil {
		return nil, err
	}
	w.SelectView(models.Selector{Kind: models.SelectLocal, ID: result.Drive.ID})
	return result, nil
}

// Sync copies top-level items between backends
func (w *Workspace) Sync(ctx context.Context, req *hubSvc.SyncRequest) (*hubSvc.SyncResult, error) {
	return w.gateway.Sync(ctx, req)
}

// PushRepository pushes a local drive
func (w *Workspace) PushRepository(ctx context.Context, req *hubSvc.PushRequest) error {
	return w.gateway.PushRepository(ctx, req)
}

// AnalyzeBackend asks the collaborator to summarise a backend's files and
// records a notification on success.
func (w *Workspace) AnalyzeBackend(ctx context.Context, backendID string) (string, error) {
	backend, ok := w.store.FindBackend(backendID)
	if !ok {
		return "", &domain.NotFoundError{Message: fmt.Sprintf("backend %q not found", backendID)}
	}

	var summaries []models.FileSummary
	for _, f := range w.store.Snapshot().Files {
		if f.BackendID == backendID {
			summaries = append(summaries, f.Summary())
		}
	}
	if len(summaries) == 0 {
		return "", &domain.ValidationError{Message: msgNoFilesToAnalyze}
	}

	w.setBusy(models.OverlayAnalyzer, backendID, true)
	defer w.setBusy(models.OverlayAnalyzer, backendID, false)

	analysis, err := w.assistant.AnalyzeProjectFiles(ctx, summaries)
	if err != nil {
		return "", err
	}
	w.recorder.Record(fmt.Sprintf("Analysis complete for %s.", backend.Name), models.NotifySuccess)
	return analysis, nil
}

// AnalyzeEcosystem analyses a pasted directory listing
func (w *Workspace) AnalyzeEcosystem(ctx context.Context, listing, notes string) (string, error) {
	if strings.TrimSpace(listing) == "" {
		return "", &domain.ValidationError{Message: msgListingRequired}
	}

	w.setBusy(models.OverlayEcosystem, "", true)
	defer w.setBusy(models.OverlayEcosystem, "", false)

	return w.assistant.AnalyzeEcosystem(ctx, listing, notes)
}

// Chat asks about a file in its editor chat session, creating the session
// on first use. The file's current content is sent as the code.
func (w *Workspace) Chat(ctx context.Context, fileID string, mode models.AssistanceMode, prompt string) (ChatState, error) {
	file, session, err := w.chatSession(fileID)
	if err != nil {
		return ChatState{}, err
	}
	history, err := session.Ask(ctx, file.ContentOrEmpty(), mode, prompt)
	if err != nil {
		return ChatState{}, err
	}
	return ChatState{Messages: history, Busy: session.Busy()}, nil
}

// ChatHistory returns a file's chat, starting a session if needed
func (w *Workspace) ChatHistory(fileID string) (ChatState, error) {
	_, session, err := w.chatSession(fileID)
	if err != nil {
		return ChatState{}, err
	}
	return ChatState{Messages: session.History(), Busy: session.Busy()}, nil
}

// ApplyChatCode saves the code block of chat message index (negative for
// the latest one) as the file's content
func (w *Workspace) ApplyChatCode(ctx context.Context, fileID string, index int) (*models.FileItem, error) {
	_, session, err := w.chatSession(fileID)
	if err != nil {
		return nil, err
	}
	code, err := session.CodeAt(index)
	if err != nil {
		return nil, err
	}
	w.logger.Info("applying chat code", "file_id", fileID, "message", index)
	return w.gateway.SaveContent(ctx, fileID, code)
}

func (w *Workspace) chatSession(fileID string) (models.FileItem, *assist.ChatSession, error) {
	file, ok := w.store.GetFile(fileID)
	if !ok {
		return models.FileItem{}, nil, &domain.NotFoundError{Message: fmt.Sprintf("file %q not found", fileID)}
	}
	if file.IsFolder() {
		return models.FileItem{}, nil, &domain.ValidationError{Message: fmt.Sprintf("folder %q has no code to discuss", file.Name)}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	session, ok := w.chats[fileID]
	if !ok {
		session = assist.NewChatSession(w.assistant, file.Name)
		w.chats[fileID] = session
	}
	return file, session, nil
}

// Notifications returns the activity log, newest first
func (w *Workspace) Notifications() []models.Notification {
	return w.recorder.List()
}

// MarkAllRead flips every notification to read
func (w *Workspace) MarkAllRead() {
	w.recorder.MarkAllRead()
}
