package agent

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestSqliteTranscripts(t *testing.T) {
	transcripts, err := NewSqliteTranscripts(filepath.Join(t.TempDir(), "chat_history.db"))
	if err != nil {
		t.Fatalf("open transcripts: %v", err)
	}
	defer transcripts.Close()

	ctx := context.Background()
	if err := transcripts.Record(ctx, "s1", "two burgers", "Added!"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := transcripts.Record(ctx, "s2", "fries", "Sure."); err != nil {
		t.Fatalf("record: %v", err)
	}

	msgs, err := transcripts.Messages(ctx, "s1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages for s1, got %d", len(msgs))
	}
	if msgs[0].GetType() != llms.ChatMessageTypeHuman || msgs[0].GetContent() != "two burgers" {
		t.Errorf("unexpected first message %v", msgs[0])
	}
	if msgs[1].GetType() != llms.ChatMessageTypeAI || msgs[1].GetContent() != "Added!" {
		t.Errorf("unexpected second message %v", msgs[1])
	}
}

func TestSqliteTranscriptsAnonymousSession(t *testing.T) {
	transcripts, err := NewSqliteTranscripts(filepath.Join(t.TempDir(), "chat_history.db"))
	if err != nil {
		t.Fatalf("open transcripts: %v", err)
	}
	defer transcripts.Close()

	ctx := context.Background()
	if err := transcripts.Record(ctx, "", "hello", "hi"); err != nil {
		t.Fatalf("record: %v", err)
	}

	msgs, err := transcripts.Messages(ctx, anonymousSession)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("expected 2 anonymous messages, got %d", len(msgs))
	}
}
