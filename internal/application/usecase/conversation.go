package usecase

import (
	"fmt"

	"pdf-agent/internal/domain/entity"
)

// SystemPromptFunc builds the per-turn system instruction from the
// documents visible at turn start.
type SystemPromptFunc func(docs []entity.Document) (string, error)

// Conversation owns the ordered message list for one agent turn: replayed
// history, the new user message, and everything the loop appends. It
// enforces the call/result pairing invariant the provider adapters
// depend on.
type Conversation struct {
	system    string
	messages  []entity.Message
	turnStart int
}

func NewConversation(systemText string, history []entity.Message, userText string) *Conversation {
	messages := make([]entity.Message, 0, len(history)+1)
	// System text is rebuilt every turn from the live catalogue, so stale
	// system messages from replayed history are dropped.
	for _, m := range history {
		if m.Role == entity.RoleSystem {
			continue
		}
		messages = append(messages, m)
	}

	turnStart := len(messages)
	messages = append(messages, entity.Message{Role: entity.RoleUser, Content: userText})

	return &Conversation{
		system:    systemText,
		messages:  messages,
		turnStart: turnStart,
	}
}

func (c *Conversation) System() string {
	return c.system
}

func (c *Conversation) Messages() []entity.Message {
	return c.messages
}

// RecordAssistant appends the assistant reply verbatim; tool-call
// identifiers are never rewritten.
func (c *Conversation) RecordAssistant(msg entity.Message) {
	msg.Role = entity.RoleAssistant
	c.messages = append(c.messages, msg)
}

// RecordToolResult appends a tool-role message answering the given call.
// The call must come from the most recent assistant message, otherwise the
// transcript would violate the provider pairing invariant.
func (c *Conversation) RecordToolResult(call entity.ToolCall, observation string) error {
	if !c.lastAssistantIssued(call.ID) {
		return fmt.Errorf("tool result %q does not answer the last assistant turn", call.ID)
	}
	c.messages = append(c.messages, entity.Message{
		Role:       entity.RoleTool,
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    observation,
	})
	return nil
}

func (c *Conversation) lastAssistantIssued(callID string) bool {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role != entity.RoleAssistant {
			continue
		}
		for _, tc := range c.messages[i].ToolCalls {
			if tc.ID == callID {
				return true
			}
		}
		return false
	}
	return false
}

// TurnMessages returns only the messages appended during this turn, for
// history persistence by the session owner.
func (c *Conversation) TurnMessages() []entity.Message {
	result := make([]entity.Message, len(c.messages)-c.turnStart)
	copy(result, c.messages[c.turnStart:])
	return result
}
