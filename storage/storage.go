package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dev-chat/config"
	"dev-chat/models"
)

// Store integrity errors. Callers distinguish them with errors.Is.
var (
	// ErrDuplicateID is returned by CreateSession when the id already exists.
	ErrDuplicateID = errors.New("session id already exists")

	// ErrUnknownSession is returned by AddMessage when the session does not
	// exist (for example because it was deleted between requests).
	ErrUnknownSession = errors.New("unknown session")
)

// Store is the persistence capability for chat sessions and messages.
// Two backends implement it: a sqlite file store (default) and a mongo
// store. All mutations are atomic with respect to the backing store and
// safe for concurrent use across sessions; message id assignment is
// race-free.
//
// Policy notes, fixed across backends:
//   - RenameSession on an unknown id is a silent no-op, matching UPDATE
//     semantics. It never invents a session.
//   - AddMessage on an unknown id fails with ErrUnknownSession so a turn
//     can never write into a deleted conversation.
//   - DeleteSession is idempotent and cascades to the session's messages.
type Store interface {
	// ListSessions returns all sessions ordered by creation time
	// descending (newest first). An empty slice is a valid result.
	ListSessions(ctx context.Context) ([]models.Session, error)

	CreateSession(ctx context.Context, id, title string, createdAt time.Time) error
	RenameSession(ctx context.Context, id, title string) error
	DeleteSession(ctx context.Context, id string) error

	// AddMessage appends a message and returns its assigned id.
	AddMessage(ctx context.Context, sessionID, role, content string, createdAt time.Time) (int64, error)

	// GetRecentMessages returns at most limit of the most recent messages
	// for the session, in chronological (ascending) order: the windowed
	// tail of the transcript, not its head. limit <= 0 yields no rows.
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]models.Message, error)

	// GetAllMessages returns the full chronological transcript.
	GetAllMessages(ctx context.Context, sessionID string) ([]models.Message, error)

	CountMessages(ctx context.Context, sessionID string) (int64, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Open builds a Store from configuration. Unknown engines are an error
// rather than a silent default so a typo in config.yaml fails loudly.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch strings.ToLower(cfg.Engine) {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "chat.db"
		}
		return NewSQLiteStore(path)
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName)
	default:
		return nil, fmt.Errorf("unknown storage engine %q", cfg.Engine)
	}
}
