package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	"devcloud/internal/config"
	hubSvc "devcloud/internal/domain/services/hub"
)

const (
	roleUser      = "user"
	blockTypeText = "text"
)

var errEmptyResponse = errors.New("provider returned no text")

// providerGenerator adapts an llm provider to TextGenerator. Each call is a
// single user message; the system instruction is placed ahead of the prompt.
type providerGenerator struct {
	provider llmprovider.Provider
	model    string
	logger   *slog.Logger
}

// NewTextGenerator creates the configured provider and wraps it as a TextGenerator
func NewTextGenerator(cfg *config.Config, logger *slog.Logger) (hubSvc.TextGenerator, error) {
	provider, err := NewProviderFactory(cfg).GetProvider(cfg.AIProvider)
	if err != nil {
		return nil, err
	}
	if !provider.SupportsModel(cfg.AIModel) {
		logger.Warn("model not advertised by provider", "provider", provider.Name().String(), "model", cfg.AIModel)
	}

	logger.Info("text generator ready", "provider", provider.Name().String(), "model", cfg.AIModel)
	return &providerGenerator{provider: provider, model: cfg.AIModel, logger: logger}, nil
}

func (g *providerGenerator) GenerateText(ctx context.Context, pc hubSvc.PromptContext) (string, error) {
	text := pc.Prompt
	if pc.SystemInstruction != "" {
		text = pc.SystemInstruction + "\n\n" + pc.Prompt
	}

	req := &llmprovider.GenerateRequest{
		Model: g.model,
		Messages: []llmprovider.Message{{
			Role: roleUser,
			Blocks: []*llmprovider.Block{{
				BlockType:   blockTypeText,
				Sequence:    0,
				TextContent: &text,
			}},
		}},
	}

	resp, err := g.provider.GenerateResponse(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", g.provider.Name().String(), err)
	}

	var out strings.Builder
	for _, block := range resp.Blocks {
		if block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		out.WriteString(*block.TextContent)
	}
	if out.Len() == 0 {
		return "", errEmptyResponse
	}
	return out.String(), nil
}
