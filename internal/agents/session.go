// Package agents runs conversations with the server's agent personas.
//
// A Session keeps the transcript of one conversation and allows a single
// outstanding exchange at a time. Each exchange is split in two so a UI can
// echo the user's message immediately and do the network part later:
//
//	pending, err := session.Begin(text) // optimistic echo, now AwaitingResponse
//	reply := session.Resolve(ctx, pending) // network call, back to Idle
//
// Send does both in one call.
package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/skillforge/internal/api"
	"github.com/zjrosen/skillforge/internal/log"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// ContextWindow is the number of most recent user and assistant messages
// sent with each exchange, including the message being sent.
const ContextWindow = 6

// FailedResponseText is shown when the server answers without any usable text.
const FailedResponseText = "Failed to get response"

// Sentinel errors returned by Begin and Send.
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("waiting for the previous response")
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleError entries are shown in the transcript but never sent as context.
	RoleError Role = "error"
)

// Message is one transcript entry.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// State is the exchange state of a session.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	}
	return "unknown"
}

// Interactor sends one exchange to the server. api.Client implements it.
type Interactor interface {
	Interact(ctx context.Context, req api.InteractRequest) (api.InteractResponse, error)
}

// Pending is an exchange started by Begin and not yet resolved.
type Pending struct {
	Message string
	// History is the context window, ending with Message.
	History []Message
	epoch   uint64
}

// Session is a conversation with one persona. It is safe for concurrent use.
type Session struct {
	id                string
	persona           Persona
	client            Interactor
	tracer            trace.Tracer
	now               func() time.Time
	discardAfterClear bool

	mu         sync.Mutex
	state      State
	transcript []Message
	// epoch counts Clear calls so a late response can be recognized.
	epoch uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDiscardAfterClear drops a response that arrives after Clear instead of
// appending it to the cleared transcript.
func WithDiscardAfterClear() SessionOption {
	return func(s *Session) {
		s.discardAfterClear = true
	}
}

// WithClock overrides the time source used for local timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession starts an idle conversation with persona.
func NewSession(persona Persona, client Interactor, opts ...SessionOption) *Session {
	s := &Session{
		id:      uuid.NewString(),
		persona: persona,
		client:  client,
		tracer:  otel.Tracer("github.com/zjrosen/skillforge/internal/agents"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Persona returns the persona this session talks to.
func (s *Session) Persona() Persona { return s.persona }

// State returns the current exchange state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the transcript entries after the intro.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Begin appends the user's message and marks the session busy. Blank text
// returns ErrEmptyMessage and a busy session returns ErrBusy; in both cases
// nothing changes.
func (s *Session) Begin(text string) (Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pending{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return Pending{}, ErrBusy
	}

	s.transcript = append(s.transcript, Message{Role: RoleUser, Content: text, Timestamp: s.now()})
	s.state = StateAwaitingResponse

	log.Debug(log.CatAgent, "Exchange started", "session", s.id, "agent", s.persona.Type)
	return Pending{Message: text, History: s.contextWindowLocked(), epoch: s.epoch}, nil
}

// contextWindowLocked returns the last ContextWindow user and assistant
// messages. Callers must hold s.mu.
func (s *Session) contextWindowLocked() []Message {
	var conversation []Message
	for _, m := range s.transcript {
		if m.Role != RoleError {
			conversation = append(conversation, m)
		}
	}
	if len(conversation) > ContextWindow {
		conversation = conversation[len(conversation)-ContextWindow:]
	}
	out := make([]Message, len(conversation))
	copy(out, conversation)
	return out
}

// Resolve performs the network half of an exchange started by Begin and
// returns the entry it produced: the assistant's reply or an error entry.
// The session is Idle afterwards whatever the outcome.
func (s *Session) Resolve(ctx context.Context, p Pending) Message {
	ctx, span := s.tracer.Start(ctx, "agent.exchange", trace.WithAttributes(
		attribute.String("agent.session_id", s.id),
		attribute.String("agent.type", s.persona.Type),
		attribute.Int("agent.context_size", len(p.History)),
	))
	defer span.End()

	history := make([]api.HistoryMessage, len(p.History))
	for i, m := range p.History {
		history[i] = api.HistoryMessage{Role: string(m.Role), Content: m.Content}
	}

	resp, err := s.client.Interact(ctx, api.InteractRequest{
		AgentType:           s.persona.Type,
		Message:             p.Message,
		ConversationHistory: history,
	})

	var entry Message
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatAgent, "Exchange failed", err, "session", s.id)
		entry = Message{Role: RoleError, Content: api.UserMessage(err, FailedResponseText), Timestamp: s.now()}
	case strings.TrimSpace(resp.Response) == "":
		span.SetStatus(codes.Error, "empty response")
		log.Warn(log.CatAgent, "Exchange returned no text", "session", s.id)
		entry = Message{Role: RoleError, Content: FailedResponseText, Timestamp: s.now()}
	default:
		entry = Message{Role: RoleAssistant, Content: resp.Response, Timestamp: s.replyTime(resp.Timestamp)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	if s.discardAfterClear && p.epoch != s.epoch {
		log.Debug(log.CatAgent, "Discarding response after clear", "session", s.id)
		return entry
	}
	s.transcript = append(s.transcript, entry)
	return entry
}

// replyTime uses the server's timestamp when it parses, else the local clock.
func (s *Session) replyTime(raw string) time.Time {
	if ts := wfdomain.ParseTimestamp(raw); !ts.IsZero() {
		return ts.Time
	}
	return s.now()
}

// Send runs a whole exchange.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	p, err := s.Begin(text)
	if err != nil {
		return Message{}, err
	}
	return s.Resolve(ctx, p), nil
}

// Clear resets the transcript to the persona intro. It is allowed while an
// exchange is in flight; the exchange is not cancelled and the session stays
// busy until it resolves.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
	s.epoch++
	log.Debug(log.CatAgent, "Conversation cleared", "session", s.id)
}
