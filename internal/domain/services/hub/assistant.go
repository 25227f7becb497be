package hub

import (
	"context"

	"devcloud/internal/domain/models/hub"
)

// PromptContext is the input of a single text-generation call
type PromptContext struct {
	Operation         string // Used for logging and metrics
	SystemInstruction string // Optional
	Prompt            string
}

// TextGenerator is the external text-generation capability.
// Implementations return an error on transport or auth failure.
type TextGenerator interface {
	GenerateText(ctx context.Context, pc PromptContext) (string, error)
}

// Assistant is the AI collaborator used by the dashboard. All methods fail
// with a *domain.CollaboratorError when the generator fails.
type Assistant interface {
	// GenerateReadme drafts a README.md for a project
	GenerateReadme(ctx context.Context, projectName, description string) (string, error)

	// GetAssistance answers a code question in the given mode
	GetAssistance(ctx context.Context, code, userPrompt string, mode hub.AssistanceMode) (string, error)

	// AnalyzeProjectFiles summarises a backend from its file list
	AnalyzeProjectFiles(ctx context.Context, files []hub.FileSummary) (string, error)

	// AnalyzeEcosystem analyses a free-form directory listing
	AnalyzeEcosystem(ctx context.Context, listing, notes string) (string, error)

	// Name is the assistant's display name used in chat greetings
	Name() string
}
