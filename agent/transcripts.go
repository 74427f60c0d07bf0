package agent

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory/sqlite3"
)

const anonymousSession = "anonymous"

// SqliteTranscripts keeps a per-session copy of every exchange. It is an
// audit trail only; chat state still travels with each request.
type SqliteTranscripts struct {
	db *sql.DB
}

func NewSqliteTranscripts(path string) (*SqliteTranscripts, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open transcripts db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open transcripts db: %w", err)
	}

	return &SqliteTranscripts{db: db}, nil
}

func (s *SqliteTranscripts) history(sessionID string) *sqlite3.SqliteChatMessageHistory {
	if sessionID == "" {
		sessionID = anonymousSession
	}

	return sqlite3.NewSqliteChatMessageHistory(
		sqlite3.WithSession(sessionID),
		sqlite3.WithDB(s.db),
	)
}

func (s *SqliteTranscripts) Record(ctx context.Context, sessionID, message, reply string) error {
	history := s.history(sessionID)

	if err := history.AddUserMessage(ctx, message); err != nil {
		return fmt.Errorf("record user message: %w", err)
	}
	if err := history.AddAIMessage(ctx, reply); err != nil {
		return fmt.Errorf("record reply: %w", err)
	}

	return nil
}

func (s *SqliteTranscripts) Messages(ctx context.Context, sessionID string) ([]llms.ChatMessage, error) {
	return s.history(sessionID).Messages(ctx)
}

func (s *SqliteTranscripts) Close() error {
	return s.db.Close()
}
