package assist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
)

// ChatErrorPrefix starts the AI-authored message shown when assistance fails
const ChatErrorPrefix = "Sorry, I encountered an error: "

// modeLabels are the prompts sent by the editor's quick-action buttons
var modeLabels = map[models.AssistanceMode]string{
	models.ModeExplain:  "Explain this code",
	models.ModeRefactor: "Refactor this code",
	models.ModeTest:     "Generate tests for this code",
	models.ModeDebug:    "Find bugs in this code",
}

// ChatSession is the editor chat attached to one file. One request may be
// outstanding at a time.
type ChatSession struct {
	assistant hubSvc.Assistant

	mu      sync.Mutex
	history []models.ChatMessage
	busy    bool
}

// NewChatSession starts a session with the assistant's greeting
func NewChatSession(assistant hubSvc.Assistant, fileName string) *ChatSession {
	greeting := fmt.Sprintf("Hello! I'm %s, your AI assistant. How can I help you with %s?", assistant.Name(), fileName)
	return &ChatSession{
		assistant: assistant,
		history:   []models.ChatMessage{{Author: models.AuthorAI, Content: greeting}},
	}
}

// History returns a copy of the conversation
func (c *ChatSession) History() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.history...)
}

// Busy reports whether a request is outstanding
func (c *ChatSession) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Ask appends the user's message and the assistant's reply about code.
// A collaborator failure becomes an AI-authored error message, not an error.
// An empty prompt defaults to the mode's quick-action label; chat mode
// requires a prompt.
func (c *ChatSession) Ask(ctx context.Context, code string, mode models.AssistanceMode, prompt string) ([]models.ChatMessage, error) {
	if !mode.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown assistance mode %q", mode)}
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		if mode == models.ModeChat {
			return nil, &domain.ValidationError{Message: "prompt is required in chat mode"}
		}
		prompt = modeLabels[mode]
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, &domain.ValidationError{Message: "a request is already in progress"}
	}
	c.busy = true
	c.history = append(c.history, models.ChatMessage{Author: models.AuthorUser, Content: prompt})
	c.mu.Unlock()

	answer := models.ChatMessage{Author: models.AuthorAI}
	reply, err := c.assistant.GetAssistance(ctx, code, prompt, mode)
	if err != nil {
		answer.Content = ChatErrorPrefix + err.Error()
	} else {
		answer.Content = reply
		answer.Code, _ = ExtractCode(reply)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.history = append(c.history, answer)
	return append([]models.ChatMessage(nil), c.history...), nil
}

// CodeAt returns the code block carried by message index. A negative index
// picks the most recent message that has one.
func (c *ChatSession) CodeAt(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 {
		for i := len(c.history) - 1; i >= 0; i-- {
			if c.history[i].Code != "" {
				return c.history[i].Code, nil
			}
		}
		return "", &domain.ValidationError{Message: "no reply contains a code block"}
	}
	if index >= len(c.history) {
		return "", &domain.ValidationError{Message: fmt.Sprintf("message %d does not exist", index)}
	}
	if c.history[index].Code == "" {
		return "", &domain.ValidationError{Message: fmt.Sprintf("message %d contains no code block", index)}
	}
	return c.history[index].Code, nil
}
