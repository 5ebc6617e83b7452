package api

import (
	"context"
	"net/http"
)

// HistoryMessage is one prior turn sent as conversation context.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InteractRequest is the body of an agent exchange.
type InteractRequest struct {
	AgentType           string           `json:"agent_type"`
	Message             string           `json:"message"`
	ConversationHistory []HistoryMessage `json:"conversation_history"`
	Context             map[string]any   `json:"context,omitempty"`
}

// InteractResponse is the agent's reply.
type InteractResponse struct {
	AgentType string `json:"agent_type"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// Interact sends one message to an agent persona.
func (c *Client) Interact(ctx context.Context, req InteractRequest) (InteractResponse, error) {
	if req.ConversationHistory == nil {
		req.ConversationHistory = []HistoryMessage{}
	}
	var resp InteractResponse
	err := c.doJSON(ctx, call{
		op:     "agent_interact",
		method: http.MethodPost,
		route:  "/api/agents/interact",
		body:   req,
	}, &resp)
	return resp, err
}
