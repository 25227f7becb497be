package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"devcloud/internal/config"
	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
	hubRepo "devcloud/internal/domain/repositories/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/metrics"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// noProject is the upload form's "no project" choice
const noProject = "none"

// Mutation outcomes reported to metrics
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeNoop     = "noop"
)

// errLookupMiss aborts a store update whose target no longer exists
var errLookupMiss = errors.New("lookup miss")

type mutationGateway struct {
	store           hubRepo.EntityStore
	recorder        hubSvc.NotificationRecorder
	clock           Clock
	latency         Latency
	readmeBackendID string
	newID           func() string
	logger          *slog.Logger
}

// NewMutationGateway creates the single writer to the entity store.
// readmeBackendID owns newly generated READMEs; when it does not resolve
// the first service is used.
func NewMutationGateway(
	store hubRepo.EntityStore,
	recorder hubSvc.NotificationRecorder,
	clock Clock,
	latency Latency,
	readmeBackendID string,
	logger *slog.Logger,
) hubSvc.MutationGateway {
	return &mutationGateway{
		store:           store,
		recorder:        recorder,
		clock:           clock,
		latency:         latency,
		readmeBackendID: readmeBackendID,
		newID:           uuid.NewString,
		logger:          logger,
	}
}

// Upload prepends a new file with a fresh id
func (g *mutationGateway) Upload(ctx context.Context, req *hubSvc.UploadRequest) (*models.FileItem, error) {
	const op = "upload"
	req.Name = strings.TrimSpace(req.Name)

	if err := g.validateUpload(req); err != nil {
		return nil, g.reject(op, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if _, ok := g.store.FindBackend(req.BackendID); !ok {
		return nil, g.reject(op, &domain.ValidationError{Message: fmt.Sprintf("unknown backend %q", req.BackendID)})
	}

	var projectID *string
	if req.ProjectID != "" && req.ProjectID != noProject {
		if _, ok := g.store.FindProject(req.ProjectID); !ok {
			return nil, g.reject(op, &domain.ValidationError{Message: fmt.Sprintf("unknown project %q", req.ProjectID)})
		}
		projectID = &req.ProjectID
	}

	if err := g.settle(ctx); err != nil {
		return nil, g.reject(op, err)
	}

	size := FormatContentSize(req.Content)
	if req.SizeBytes > 0 {
		size = FormatByteSize(req.SizeBytes)
	}
	item := models.FileItem{
		ID:        g.newID(),
		Name:      req.Name,
		Kind:      models.KindFile,
		Size:      size,
		Modified:  today(g.clock),
		BackendID: req.BackendID,
		ProjectID: projectID,
		Content:   models.StringPtr(req.Content),
	}

	err := g.store.Update(func(cur *models.Snapshot) (*models.Snapshot, error) {
		next := cur.Clone()
		next.PrependFiles(item)
		return next, nil
	})
	if err != nil {
		return nil, g.reject(op, err)
	}

	g.logger.Info("file uploaded", "id", item.ID, "name", item.Name, "backend_id", item.BackendID)
	g.succeed(op, fmt.Sprintf("File %q uploaded successfully.", item.Name), models.NotifySuccess)
	return &item, nil
}

// SaveContent replaces content, size and modified of one file. A missing
// file is a silent no-op.
func (g *mutationGateway) SaveContent(ctx context.Context, fileID, content string) (*models.FileItem, error) {
	const op = "save_content"

	if err := validation.Validate(content, validation.Length(0, config.MaxContentLength)); err != nil {
		return nil, g.reject(op, fmt.Errorf("%w: content: %v", domain.ErrValidation, err))
	}
	if err := g.settle(ctx); err != nil {
		return nil, g.reject(op, err)
	}

	var saved models.FileItem
	err := g.store.Update(func(cur *models.Snapshot) (*models.Snapshot, error) {
		i := cur.FindFile(fileID)
		if i < 0 {
			return nil, errLookupMiss
		}
		if cur.Files[i].IsFolder() {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("%q is a folder and has no content", cur.Files[i].Name)}
		}
		next := cur.Clone()
		saved = withContent(next.Files[i], content, today(g.clock))
		next.Files[i] = saved
		return next, nil
	})
	if errors.Is(err, errLookupMiss) {
		g.logger.Debug("save skipped, file not found", "id", fileID)
		metrics.RecordMutation(op, outcomeNoop)
		return nil, nil
	}
	if err != nil {
		return nil, g.reject(op, err)
	}

	g.logger.Info("file saved", "id", saved.ID, "size", saved.Size)
	g.succeed(op, fmt.Sprintf("File %q saved.", saved.Name), models.NotifySuccess)
	return &saved, nil
}

// SaveReadme upserts the README.md of a project. An existing README keeps
// its id; otherwise a new one is prepended.
func (g *mutationGateway) SaveReadme(ctx context.Context, projectID, content string) (*models.FileItem, error) {
	const op = "save_readme"

	project, ok := g.store.FindProject(projectID)
	if !ok {
		return nil, g.reject(op, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", projectID)})
	}
	if err := validation.Validate(strings.TrimSpace(content),
		validation.Required,
		validation.Length(1, config.MaxContentLength),
	); err != nil {
		return nil, g.reject(op, fmt.Errorf("%w: content: %v", domain.ErrValidation, err))
	}
	backendID, err := g.readmeBackend()
	if err != nil {
		return nil, g.reject(op, err)
	}

	date := today(g.clock)
	var saved models.FileItem
	replaced := false
	err = g.store.Update(func(cur *models.Snapshot) (*models.Snapshot, error) {
		next := cur.Clone()
		for i := range next.Files {
			f := &next.Files[i]
			if f.InProject(projectID) && isReadme(f.Name) && !f.IsFolder() {
				saved = withContent(*f, content, date)
				next.Files[i] = saved
				replaced = true
				return next, nil
			}
		}

		replaced = false
		saved = models.FileItem{
			ID:        g.newID(),
			Name:      readmeName,
			Kind:      models.KindFile,
			Size:      FormatContentSize(content),
			Modified:  date,
			BackendID: backendID,
			ProjectID: &projectID,
			Content:   &content,
		}
		next.PrependFiles(saved)
		return next, nil
	})
	if err != nil {
		return nil, g.reject(op, err)
	}

	msg := fmt.Sprintf("README.md generated for project %q.", project.Name)
	if replaced {
		msg = fmt.Sprintf("README.md for project %q updated.", project.Name)
	}
	g.logger.Info("readme saved", "id", saved.ID, "project_id", projectID, "replaced", replaced)
	g.succeed(op, msg, models.NotifySuccess)
	return &saved, nil
}

// AddLocalDrive registers a new local drive seeded with the starter files
func (g *mutationGateway) AddLocalDrive(ctx context.Context, req *hubSvc.AddDriveRequest) (*hubSvc.DriveResult, error) {
	const op = "add_local_drive"
	req.Name = strings.TrimSpace(req.Name)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxDriveNameLength)),
	); err != nil {
		return nil, g.reject(op, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	result, err := g.createDrive(req.Name, models.IconDisk, func(backendID, date string) []models.FileItem {
		return StarterFiles(backendID, date)
	})
	if err != nil {
		return nil, g.reject(op, err)
	}

	g.logger.Info("local drive added", "id", result.Drive.ID, "name", result.Drive.Name)
	g.succeed(op, fmt.Sprintf("Local drive %q added.", result.Drive.Name), models.NotifyInfo)
	return result, nil
}

// CloneRepository registers a new local drive holding a synthesized checkout
func (g *mutationGateway) CloneRepository(ctx context.Context, req *hubSvc.CloneRequest) (*hubSvc.DriveResult, error) {
	const op = "clone_repository"
	req.RepoURL = strings.TrimSpace(req.RepoURL)
	req.LocalName = strings.TrimSpace(req.LocalName)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.RepoURL,
			validation.Required,
			validation.Length(1, config.MaxRepoURLLength),
			validation.By(validateRepoURL),
		),
		validation.Field(&req.LocalName, validation.Required, validation.Length(1, config.MaxDriveNameLength)),
	); err != nil {
		return nil, g.reject(op, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if err := g.checkDriveName(req.LocalName); err != nil {
		return nil, g.reject(op, err)
	}

	if err := g.settle(ctx); err != nil {
		return nil, g.reject(op, err)
	}

	repoName := RepoNameFromURL(req.RepoURL)
	result, err := g.createDrive(req.LocalName, models.IconGitHub, func(backendID, date string) []models.FileItem {
		return ClonedRepoFiles(backendID, repoName, req.RepoURL, date)
	})
	if err != nil {
		return nil, g.reject(op, err)
	}

	g.logger.Info("repository cloned", "id", result.Drive.ID, "repo", repoName, "url", req.RepoURL)
	g.succeed(op, fmt.Sprintf("Cloned %q to %q.", req.RepoURL, result.Drive.Name), models.NotifySuccess)
	return result, nil
}

// Sync copies the source's top-level items into the destination with fresh
// ids. Source items are left untouched.
func (g *mutationGateway) Sync(ctx context.Context, req *hubSvc.SyncRequest) (*hubSvc.SyncResult, error) {
	const op = "sync"

	if err := validation.ValidateStruct(req,
		validation.Field(&req.SourceID, validation.Required),
		validation.Field(&req.DestinationID, validation.Required),
	); err != nil {
		return nil, g.reject(op, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if req.SourceID == req.DestinationID {
		return nil, g.reject(op, &domain.ValidationError{Message: "source and destination cannot be the same"})
	}
	source, ok := g.store.FindBackend(req.SourceID)
	if !ok {
		return nil, g.reject(op, &domain.ValidationError{Message: fmt.Sprintf("unknown source backend %q", req.SourceID)})
	}
	dest, ok := g.store.FindBackend(req.DestinationID)
	if !ok {
		return nil, g.reject(op, &domain.ValidationError{Message: fmt.Sprintf("unknown destination backend %q", req.DestinationID)})
	}

	if err := g.settle(ctx); err != nil {
		return nil, g.reject(op, err)
	}

	var copied []models.FileItem
	err := g.store.Update(func(cur *models.Snapshot) (*models.Snapshot, error) {
		copied = copied[:0]
		for _, f := range cur.Files {
			if f.BackendID != source.ID || !f.IsTopLevel() {
				continue
			}
			f.ID = g.newID()
			f.BackendID = dest.ID
			f.ParentID = nil
			copied = append(copied, f)
		}
		next := cur.Clone()
		next.PrependFiles(copied...)
		return next, nil
	})
	if err != nil {
		return nil, g.reject(op, err)
	}

	g.logger.Info("backends synced", "source", source.ID, "destination", dest.ID, "copied", len(copied))
	g.succeed(op, fmt.Sprintf("Synced %d item(s) from %s to %s.", len(copied), source.Name, dest.Name), models.NotifyInfo)
	return &hubSvc.SyncResult{Source: source, Destination: dest, Copied: copied}, nil
}

// PushRepository simulates pushing a local drive. The store is unchanged.
func (g *mutationGateway) PushRepository(ctx context.Context, req *hubSvc.PushRequest) error {
	const op = "push_repository"
	req.CommitMessage = strings.TrimSpace(req.CommitMessage)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.DriveID, validation.Required),
		validation.Field(&req.CommitMessage, validation.Required, validation.Length(1, config.MaxCommitMessageLength)),
	); err != nil {
		return g.reject(op, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	drive, ok := g.store.FindBackend(req.DriveID)
	if !ok || drive.Kind != models.BackendLocal {
		return g.reject(op, &domain.ValidationError{Message: fmt.Sprintf("%q is not a local drive", req.DriveID)})
	}

	if err := g.settle(ctx); err != nil {
		return g.reject(op, err)
	}

	g.logger.Info("repository pushed", "drive_id", drive.ID)
	g.succeed(op, fmt.Sprintf("Pushed changes from %q with commit message: %q.", drive.Name, req.CommitMessage), models.NotifyInfo)
	return nil
}

// createDrive appends a local drive and prepends its template files in one
// store update. The id is derived from the name and the creation time.
func (g *mutationGateway) createDrive(name string, icon models.Icon, files func(backendID, date string) []models.FileItem) (*hubSvc.DriveResult, error) {
	var result hubSvc.DriveResult
	err := g.store.Update(func(cur *models.Snapshot) (*models.Snapshot, error) {
		if err := g.checkDriveName(name); err != nil {
			return nil, err
		}

		drive := models.Backend{
			ID:   g.uniqueBackendID(name),
			Name: name,
			Icon: icon,
			Kind: models.BackendLocal,
		}
		items := assignIDs(files(drive.ID, today(g.clock)), g.newID)

		next := cur.Clone()
		next.LocalDrives = append(next.LocalDrives, drive)
		next.PrependFiles(items...)

		result = hubSvc.DriveResult{Drive: drive, Files: items}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// checkDriveName rejects a name already used by any backend (case-insensitive)
func (g *mutationGateway) checkDriveName(name string) error {
	for _, b := range g.store.AllBackends() {
		if strings.EqualFold(b.Name, name) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a drive named %q already exists", b.Name),
				ResourceType: "drive",
				ResourceID:   b.ID,
			}
		}
	}
	return nil
}

func (g *mutationGateway) uniqueBackendID(name string) string {
	base := backendIDFor(name, g.clock.Now())
	id := base
	for n := 2; ; n++ {
		if _, taken := g.store.FindBackend(id); !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

func (g *mutationGateway) readmeBackend() (string, error) {
	if _, ok := g.store.FindBackend(g.readmeBackendID); ok {
		return g.readmeBackendID, nil
	}
	services := g.store.Services()
	if len(services) == 0 {
		return "", &domain.ValidationError{Message: "no backend available for README"}
	}
	return services[0].ID, nil
}

func (g *mutationGateway) validateUpload(req *hubSvc.UploadRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxFileNameLength)),
		validation.Field(&req.BackendID, validation.Required),
		validation.Field(&req.Content, validation.Length(0, config.MaxContentLength)),
		validation.Field(&req.SizeBytes, validation.Min(int64(0))),
	)
}

func (g *mutationGateway) succeed(op, message string, kind models.NotificationType) {
	metrics.RecordMutation(op, outcomeOK)
	snap := g.store.Snapshot()
	metrics.SetStoreSize(len(snap.Files), len(snap.LocalDrives))
	g.recorder.Record(message, kind)
}

// settle waits out the simulated latency. Once validated, an operation
// completes even if the caller goes away.
func (g *mutationGateway) settle(ctx context.Context) error {
	return g.latency.Wait(context.WithoutCancel(ctx))
}

func (g *mutationGateway) reject(op string, err error) error {
	metrics.RecordMutation(op, outcomeRejected)
	g.logger.Warn("mutation rejected", "operation", op, "error", err)
	return err
}

func validateRepoURL(value interface{}) error {
	s, _ := value.(string)
	if !IsRepoURL(s) {
		return errors.New("must be a repository URL")
	}
	return nil
}

// withContent returns f with new content, recomputed size and date
func withContent(f models.FileItem, content, date string) models.FileItem {
	f.Content = &content
	f.Size = FormatContentSize(content)
	f.Modified = date
	return f
}
