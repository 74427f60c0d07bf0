package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/imkonsowa/menu-concierge/models"
	"github.com/tmc/langchaingo/llms"
)

type fakeCall struct {
	messages []llms.MessageContent
	options  llms.CallOptions
}

// fakeModel replays queued responses in order and records every call.
type fakeModel struct {
	mu        sync.Mutex
	responses []*llms.ContentResponse
	errs      []error
	calls     []fakeCall
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	n := len(f.calls)
	f.calls = append(f.calls, fakeCall{messages: messages, options: opts})

	if n < len(f.errs) && f.errs[n] != nil {
		return nil, f.errs[n]
	}
	if n < len(f.responses) {
		return f.responses[n], nil
	}

	return nil, errors.New("fake model: no response queued")
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}
}

func toolResponse(name, args string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           "call_1",
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: name, Arguments: args},
		}},
	}}}
}

func testMenu(t *testing.T) *models.Index {
	t.Helper()

	cfg, err := models.Load("../models/testdata/restaurant-config.json")
	if err != nil {
		t.Fatalf("load menu: %v", err)
	}

	return models.NewIndex(cfg)
}

func newTestHandler(t *testing.T, model llms.Model, opts ...Option) *Handler {
	t.Helper()

	if model != nil {
		opts = append([]Option{WithModel(model)}, opts...)
	}

	h, err := NewHandler(testMenu(t), opts...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	return h
}

func messageText(msg llms.MessageContent) string {
	var out string
	for _, part := range msg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			out += text.Text
		}
	}

	return out
}
