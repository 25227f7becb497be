package hub

// AgentStatus is whether an agent profile is deployed
type AgentStatus string

const (
	AgentIdle   AgentStatus = "idle"
	AgentActive AgentStatus = "active"
)

// Valid reports whether s is a known agent status
func (s AgentStatus) Valid() bool {
	return s == AgentIdle || s == AgentActive
}

// Agent is an entry in the agent hub. Profiles are fixed at startup; only
// the status changes.
type Agent struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Status      AgentStatus `json:"status" yaml:"status"`
}
