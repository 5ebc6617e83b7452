package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Priority is the user-chosen urgency of a workflow.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priorities in form order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrDefault returns p, or medium when p is empty or unknown.
func (p Priority) OrDefault() Priority {
	if p.Valid() {
		return p
	}
	return PriorityMedium
}

// Label returns the badge text, e.g. "HIGH".
func (p Priority) Label() string {
	return strings.ToUpper(string(p.OrDefault()))
}

// Status is the lifecycle state of a workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

// Normalize maps any value the server sends onto the known statuses.
func (s Status) Normalize() Status {
	switch Status(strings.ToLower(string(s))) {
	case StatusPending:
		return StatusPending
	case StatusRunning:
		return StatusRunning
	case StatusCompleted:
		return StatusCompleted
	case StatusFailed:
		return StatusFailed
	}
	return StatusUnknown
}

// Label returns the badge text, e.g. "COMPLETED".
func (s Status) Label() string {
	return strings.ToUpper(string(s.Normalize()))
}

// Workflow is a user-created task record tracked by the server.
type Workflow struct {
	ID                  string    `json:"workflow_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	OriginalDescription string    `json:"original_description,omitempty"`
	Priority            Priority  `json:"priority"`
	Status              Status    `json:"status"`
	CreatedAt           Timestamp `json:"created_at"`
	Deadline            string    `json:"deadline,omitempty"`
	Stakeholders        []string  `json:"stakeholders,omitempty"`
	CareerEnhanced      bool      `json:"career_enhanced,omitempty"`
	AIAgentsIntegrated  bool      `json:"ai_agents_integrated,omitempty"`
	Result              *Result   `json:"result,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. Each field is decoded on its
// own: a field of the wrong type falls back to its zero value instead of
// failing the record. Only a non-object fails.
func (w *Workflow) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("workflow record is null")
	}

	*w = Workflow{
		ID:                  scalarText(fields["workflow_id"]),
		Name:                scalarText(fields["name"]),
		Description:         scalarText(fields["description"]),
		OriginalDescription: scalarText(fields["original_description"]),
		Priority:            Priority(scalarText(fields["priority"])),
		Status:              Status(scalarText(fields["status"])),
		Deadline:            scalarText(fields["deadline"]),
		Stakeholders:        stringList(fields["stakeholders"]),
		CareerEnhanced:      flag(fields["career_enhanced"]),
		AIAgentsIntegrated:  flag(fields["ai_agents_integrated"]),
	}
	if raw, ok := fields["created_at"]; ok {
		_ = w.CreatedAt.UnmarshalJSON(raw)
	}
	if raw, ok := fields["result"]; ok && !isNull(raw) {
		var r Result
		_ = r.UnmarshalJSON(raw)
		w.Result = &r
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// scalarText returns a string's value or a number's text. Anything else is "".
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// stringList accepts a list (keeping its scalar items) or a single string.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := strings.TrimSpace(scalarText(raw)); s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range items {
		if s := scalarText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// flag accepts JSON booleans and the strings "true"/"false".
func flag(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	v, err := strconv.ParseBool(scalarText(raw))
	return err == nil && v
}

// DisplayName returns the name or a placeholder for unnamed records.
func (w Workflow) DisplayName() string {
	if strings.TrimSpace(w.Name) == "" {
		return "Untitled Workflow"
	}
	return w.Name
}

// DisplayDescription prefers the user's original description over the
// server-enhanced one.
func (w Workflow) DisplayDescription() string {
	if w.OriginalDescription != "" {
		return w.OriginalDescription
	}
	if strings.TrimSpace(w.Description) == "" {
		return "No description available"
	}
	return w.Description
}

// Integrations lists the enhancement flags set on the record, or "Basic Workflow".
func (w Workflow) Integrations() []string {
	var out []string
	if w.CareerEnhanced {
		out = append(out, "Career Intelligence")
	}
	if w.AIAgentsIntegrated {
		out = append(out, "AI Agents")
	}
	if len(out) == 0 {
		out = append(out, "Basic Workflow")
	}
	return out
}

// Output returns the AI output text or a placeholder.
func (w Workflow) Output() string {
	if w.Result == nil || strings.TrimSpace(w.Result.Output) == "" {
		return "No detailed output available"
	}
	return w.Result.Output
}

// TokensUsed returns the total token count as text, or "N/A".
func (w Workflow) TokensUsed() string {
	return w.Result.TokensUsed()
}

// TokenUsage is the token accounting of an AI run.
type TokenUsage struct {
	TotalTokens *int64 `json:"total_tokens,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Result is the optional AI output attached to a workflow.
//
// The server's result payload is loosely shaped, so decoding never fails:
// a non-string output is kept as its raw JSON text and an unreadable
// token_usage is dropped.
type Result struct {
	Output     string      `json:"output"`
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
}

// TokensUsed returns the total token count as text, or "N/A".
func (r *Result) TokensUsed() string {
	if r == nil || r.TokenUsage == nil || r.TokenUsage.TotalTokens == nil {
		return "N/A"
	}
	return strconv.FormatInt(*r.TokenUsage.TotalTokens, 10)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	*r = Result{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object: keep whatever text we got as the output.
		r.Output = rawText(data)
		return nil
	}

	if raw, ok := fields["output"]; ok {
		r.Output = rawText(raw)
	}
	if raw, ok := fields["token_usage"]; ok {
		var usage TokenUsage
		if err := json.Unmarshal(raw, &usage); err == nil && (usage.TotalTokens != nil || usage.Model != "") {
			r.TokenUsage = &usage
		}
	}
	return nil
}

// rawText returns a JSON string's value, or the raw JSON text for anything else.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return string(raw)
}

// CreateRequest is the body sent to create a workflow.
type CreateRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Priority     Priority `json:"priority"`
	Requirements []string `json:"requirements"`
}

// CreateResult is the server's answer to a create request.
type CreateResult struct {
	WorkflowID string    `json:"workflow_id"`
	Status     Status    `json:"status"`
	Message    string    `json:"message"`
	Result     *Result   `json:"result,omitempty"`
	CreatedAt  Timestamp `json:"created_at"`
}

// Validate checks the fields a create request must carry and fills in the
// default priority.
func (r *CreateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Description == "" {
		return ErrDescriptionRequired
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !r.Priority.Valid() {
		return &InvalidPriorityError{Value: string(r.Priority)}
	}
	if r.Requirements == nil {
		r.Requirements = []string{}
	}
	return nil
}
