package assist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/metrics"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultAssistantName is the name used in chat greetings
const DefaultAssistantName = "DevCloud Assistant"

type service struct {
	generator hubSvc.TextGenerator
	name      string
	logger    *slog.Logger
}

// NewService creates the AI collaborator over a text generator
func NewService(generator hubSvc.TextGenerator, name string, logger *slog.Logger) hubSvc.Assistant {
	if name == "" {
		name = DefaultAssistantName
	}
	return &service{
		generator: generator,
		name:      name,
		logger:    logger,
	}
}

func (s *service) Name() string {
	return s.name
}

func (s *service) GenerateReadme(ctx context.Context, projectName, description string) (string, error) {
	if err := validation.Validate(description, validation.Required); err != nil {
		return "", fmt.Errorf("%w: description: %v", domain.ErrValidation, err)
	}
	return s.generate(ctx, readmePrompt(projectName, description))
}

func (s *service) GetAssistance(ctx context.Context, code, userPrompt string, mode models.AssistanceMode) (string, error) {
	if !mode.Valid() {
		return "", &domain.ValidationError{Message: fmt.Sprintf("unknown assistance mode %q", mode)}
	}
	return s.generate(ctx, assistancePrompt(code, userPrompt, mode))
}

func (s *service) AnalyzeProjectFiles(ctx context.Context, files []models.FileSummary) (string, error) {
	if len(files) == 0 {
		return "", &domain.ValidationError{Message: "no files to analyze"}
	}
	return s.generate(ctx, projectAnalysisPrompt(files))
}

func (s *service) AnalyzeEcosystem(ctx context.Context, listing, notes string) (string, error) {
	if err := validation.Validate(listing, validation.Required); err != nil {
		return "", fmt.Errorf("%w: listing: %v", domain.ErrValidation, err)
	}
	return s.generate(ctx, ecosystemPrompt(listing, notes))
}

// generate calls the generator once. Failures are wrapped as
// CollaboratorError and never retried.
func (s *service) generate(ctx context.Context, pc hubSvc.PromptContext) (string, error) {
	start := time.Now()
	text, err := s.generator.GenerateText(ctx, pc)
	metrics.RecordAssist(pc.Operation, err, time.Since(start))

	if err != nil {
		s.logger.Error("assistance failed", "operation", pc.Operation, "error", err)
		return "", &domain.CollaboratorError{Operation: pc.Operation, Err: err}
	}

	s.logger.Debug("assistance completed",
		"operation", pc.Operation,
		"duration_ms", time.Since(start).Milliseconds(),
		"length", len(text),
	)
	return text, nil
}
