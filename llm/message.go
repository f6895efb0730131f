package llm

const (
	// RoleSystem represents a system message
	RoleSystem = "system"
	// RoleUser represents a user message
	RoleUser = "user"
	// RoleAssistant represents an assistant message
	RoleAssistant = "assistant"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
