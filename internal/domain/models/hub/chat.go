package hub

// AssistanceMode selects the code-assistance prompt
type AssistanceMode string

const (
	ModeExplain  AssistanceMode = "explain"
	ModeRefactor AssistanceMode = "refactor"
	ModeTest     AssistanceMode = "test"
	ModeDebug    AssistanceMode = "debug"
	ModeChat     AssistanceMode = "chat"
)

// Valid reports whether m is a known mode
func (m AssistanceMode) Valid() bool {
	switch m {
	case ModeExplain, ModeRefactor, ModeTest, ModeDebug, ModeChat:
		return true
	}
	return false
}

// ChatAuthor is "user" or "ai"
type ChatAuthor string

const (
	AuthorUser ChatAuthor = "user"
	AuthorAI   ChatAuthor = "ai"
)

// ChatMessage is one entry of an editor chat session. Code holds the first
// fenced block of an AI reply, ready to be applied to the file.
type ChatMessage struct {
	Author  ChatAuthor `json:"author"`
	Content string     `json:"content"`
	Code    string     `json:"code,omitempty"`
}
