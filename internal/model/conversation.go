package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one role-tagged message in a conversation transcript.
// Append order is meaningful: it is the history replayed to the LLM.
type Turn struct {
	Role    string
	Content string
}
