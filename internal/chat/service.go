package chat

import (
	"context"
	"strings"
	"time"

	"careerpilot-backend/internal/llm"
)

// Message is one prior conversation turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Service relays a conversation to the completion model. History is
// client-held; the server keeps no conversation state.
type Service struct {
	Completer   llm.Completer
	CallTimeout time.Duration
}

func NewService(completer llm.Completer, callTimeout time.Duration) *Service {
	return &Service{
		Completer:   llm.WithRetry(completer),
		CallTimeout: callTimeout,
	}
}

// Reply sends the conversation and returns the assistant's answer. An empty
// model reply degrades to a fixed placeholder rather than an error.
func (s *Service) Reply(ctx context.Context, message string, history []Message) (string, error) {
	if s.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CallTimeout)
		defer cancel()
	}

	reply, err := s.Completer.Complete(ctx, buildConversation(message, history))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "No response generated.", nil
	}
	return reply, nil
}

// buildConversation renders the history as alternating User/Assistant lines
// ending with an open Assistant turn for the model to complete. Any role
// other than "user" is rendered as Assistant.
func buildConversation(message string, history []Message) string {
	var b strings.Builder
	for _, msg := range history {
		role := "Assistant"
		if msg.Role == "user" {
			role = "User"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	b.WriteString("\nAssistant:")
	return b.String()
}
