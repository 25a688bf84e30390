package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dev-chat/chat"
	"dev-chat/models"
	"dev-chat/storage"
)

// contextWindow bounds how much history is sent to the reply engine.
// The full transcript still goes back to the caller for display.
const contextWindow = 20

// titleMaxRunes caps the auto-generated session title taken from the
// first prompt.
const titleMaxRunes = 50

// ErrInvalidRequest marks caller mistakes (missing session id, blank
// prompt, blank title). It is the only error class the HTTP layer maps
// to a 4xx.
var ErrInvalidRequest = errors.New("invalid request")

// ChatService sequences a chat turn: persist the user message, window
// the context, generate a reply, persist it, and auto-title the session
// on its first exchange.
type ChatService struct {
	store  storage.Store
	engine *chat.Engine
}

func NewChatService(store storage.Store, engine *chat.Engine) *ChatService {
	return &ChatService{store: store, engine: engine}
}

// TurnResult carries the generated reply plus the full transcript.
type TurnResult struct {
	Reply    string
	Messages []models.Message
}

// HandleTurn runs one exchange in the session. Provider failures never
// surface here; the engine absorbs them into degraded replies.
func (s *ChatService) HandleTurn(ctx context.Context, sessionID, prompt string, cfg chat.GenerateConfig) (*TurnResult, error) {
	prompt = strings.TrimSpace(prompt)
	if sessionID == "" || prompt == "" {
		return nil, fmt.Errorf("%w: sessionId and prompt are required", ErrInvalidRequest)
	}

	if _, err := s.store.AddMessage(ctx, sessionID, models.RoleUser, prompt, time.Now()); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	recent, err := s.store.GetRecentMessages(ctx, sessionID, contextWindow)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}
	turns := make([]chat.Turn, len(recent))
	for i, m := range recent {
		turns[i] = chat.Turn{Role: m.Role, Content: m.Content}
	}

	reply := s.engine.Generate(ctx, turns, cfg)

	if _, err := s.store.AddMessage(ctx, sessionID, models.RoleAssistant, reply, time.Now()); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	all, err := s.store.GetAllMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	// First exchange completed: title the session after its opening prompt.
	if len(all) == 2 {
		if err := s.store.RenameSession(ctx, sessionID, truncate(prompt, titleMaxRunes)); err != nil {
			return nil, fmt.Errorf("auto-title session: %w", err)
		}
	}

	return &TurnResult{Reply: reply, Messages: all}, nil
}

// ListSessions returns all sessions newest-first.
func (s *ChatService) ListSessions(ctx context.Context) ([]models.Session, error) {
	return s.store.ListSessions(ctx)
}

// CreateSession creates a session with a fresh id. A blank title falls
// back to the default.
func (s *ChatService) CreateSession(ctx context.Context, title string) (models.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = models.DefaultSessionTitle
	}
	sess := models.Session{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateSession(ctx, sess.ID, sess.Title, sess.CreatedAt); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// RenameSession validates the title and renames the session. Renaming
// an unknown id is a no-op per store policy.
func (s *ChatService) RenameSession(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	return s.store.RenameSession(ctx, id, title)
}

// DeleteSession removes the session and, when that empties the session
// set, immediately creates a fresh default one so that the client always
// has somewhere to type.
func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return err
	}
	return s.EnsureDefaultSession(ctx, models.DefaultSessionTitle)
}

// GetTranscript returns the full chronological transcript.
func (s *ChatService) GetTranscript(ctx context.Context, sessionID string) ([]models.Message, error) {
	return s.store.GetAllMessages(ctx, sessionID)
}

// EnsureDefaultSession creates a session with the given title when the
// session set is empty. Called at startup and after deletes.
func (s *ChatService) EnsureDefaultSession(ctx context.Context, title string) error {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		return nil
	}
	return s.store.CreateSession(ctx, uuid.NewString(), title, time.Now())
}

// truncate returns s truncated to max runes.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
