package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imkonsowa/menu-concierge/events"
	"github.com/imkonsowa/menu-concierge/models"
	"github.com/imkonsowa/menu-concierge/ordering"
	"github.com/tmc/langchaingo/llms"
)

// TranscriptRecorder stores finished turns for later review.
type TranscriptRecorder interface {
	Record(ctx context.Context, sessionID, message, reply string) error
}

// CartPublisher announces cart state after each turn.
type CartPublisher interface {
	PublishCart(ctx context.Context, event events.CartEvent) error
}

type Handler struct {
	index *models.Index
	llm   llms.Model
	menu  string

	temperature       float64
	maxTokens         int
	followUpMaxTokens int
	maxHistory        int

	transcripts TranscriptRecorder
	publisher   CartPublisher
}

type Option func(*Handler)

// WithModel sets the chat model. Without one every request is rejected with
// ErrMissingCredential.
func WithModel(llm llms.Model) Option {
	return func(h *Handler) {
		h.llm = llm
	}
}

func WithTemperature(t float64) Option {
	return func(h *Handler) {
		h.temperature = t
	}
}

func WithMaxTokens(primary, followUp int) Option {
	return func(h *Handler) {
		if primary > 0 {
			h.maxTokens = primary
		}
		if followUp > 0 {
			h.followUpMaxTokens = followUp
		}
	}
}

func WithMaxHistory(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxHistory = n
		}
	}
}

func WithTranscripts(r TranscriptRecorder) Option {
	return func(h *Handler) {
		h.transcripts = r
	}
}

func WithCartEvents(p CartPublisher) Option {
	return func(h *Handler) {
		h.publisher = p
	}
}

func NewHandler(idx *models.Index, opts ...Option) (*Handler, error) {
	menu, err := menuContext(idx)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		index:             idx,
		menu:              menu,
		temperature:       0.7,
		maxTokens:         500,
		followUpMaxTokens: 300,
		maxHistory:        ordering.DefaultMaxHistory,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

func (h *Handler) Index() *models.Index {
	return h.index
}

func (h *Handler) Enabled() bool {
	return h.llm != nil
}

// Handle runs one chat turn. The request is never modified; the returned
// Response carries the complete next state for the caller to send back.
func (h *Handler) Handle(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrMessageRequired
	}
	if h.llm == nil {
		return nil, ErrMissingCredential
	}

	state := ordering.State{
		Cart:    req.Cart.Normalize(),
		History: req.ConversationHistory.Clone(),
		Preferences: ordering.Preferences{
			Allergens: nonNil(req.AllergyRestrictions),
			Dietary:   nonNil(req.DietaryPreferences),
		},
	}

	messages := h.buildMessages(systemPrompt(h.menu, state.Preferences), state.History, req.Message)

	content, err := h.llm.GenerateContent(
		ctx,
		messages,
		llms.WithTools(Tools),
		llms.WithTemperature(h.temperature),
		llms.WithMaxTokens(h.maxTokens),
	)
	if err != nil {
		slog.Error("primary model call failed", "session", req.SessionID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if content == nil || len(content.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUpstream)
	}

	choice := content.Choices[0]
	userMsg := ordering.Message{Role: ordering.RoleUser, Content: req.Message}

	var (
		reply     string
		operation string
	)

	if call := firstToolCall(choice); call != nil {
		operation = call.FunctionCall.Name

		next, result := ordering.Dispatch(h.index, state, call.FunctionCall.Name, call.FunctionCall.Arguments)
		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal function result: %w", err)
		}

		reply = h.followUp(ctx, messages, *call, string(payload))

		next.History = next.History.Append(
			userMsg,
			ordering.Message{Role: ordering.RoleFunction, Name: operation, Content: string(payload)},
			ordering.Message{Role: ordering.RoleAssistant, Content: reply},
		)
		state = next
	} else {
		reply = choice.Content
		if strings.TrimSpace(reply) == "" {
			reply = DefaultReply
		}

		state.History = state.History.Append(userMsg, ordering.Message{Role: ordering.RoleAssistant, Content: reply})
	}

	state.History = state.History.Trim(h.maxHistory)
	lines := ordering.LineItems(h.index, state.Cart)

	resp := &Response{
		Reply:               reply,
		Cart:                state.Cart,
		CartItems:           lines,
		CartTotal:           ordering.Total(lines),
		ConversationHistory: state.History,
		AllergyRestrictions: state.Preferences.Allergens,
		DietaryPreferences:  state.Preferences.Dietary,
		Operation:           operation,
	}
	if resp.Cart == nil {
		resp.Cart = ordering.Cart{}
	}

	slog.Info("chat turn completed",
		"session", req.SessionID,
		"operation", operation,
		"cart_items", len(lines),
		"cart_total", resp.CartTotal,
	)

	h.afterTurn(ctx, req, resp)

	return resp, nil
}

// followUp asks the model to phrase the function result for the customer.
// Any failure degrades to FallbackReply.
func (h *Handler) followUp(ctx context.Context, messages []llms.MessageContent, call llms.ToolCall, result string) string {
	followUp := make([]llms.MessageContent, 0, len(messages)+2)
	followUp = append(followUp, messages...)

	if call.ID == "" {
		// Legacy function calls carry no id to answer with a tool message.
		followUp = append(followUp, functionResult(call.FunctionCall.Name, result))
	} else {
		followUp = append(followUp,
			llms.MessageContent{
				Role:  llms.ChatMessageTypeAI,
				Parts: []llms.ContentPart{call},
			},
			llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: call.ID,
						Name:       call.FunctionCall.Name,
						Content:    result,
					},
				},
			},
		)
	}

	content, err := h.llm.GenerateContent(
		ctx,
		followUp,
		llms.WithTemperature(h.temperature),
		llms.WithMaxTokens(h.followUpMaxTokens),
	)
	if err != nil {
		slog.Warn("follow-up model call failed", "function", call.FunctionCall.Name, "error", err)
		return FallbackReply
	}
	if content == nil || len(content.Choices) == 0 || strings.TrimSpace(content.Choices[0].Content) == "" {
		return FallbackReply
	}

	return content.Choices[0].Content
}

func (h *Handler) buildMessages(system string, history ordering.History, message string) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))

	for _, msg := range history {
		switch msg.Role {
		case ordering.RoleAssistant:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		case ordering.RoleSystem:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case ordering.RoleFunction, "tool":
			// The originating tool call is not kept in history, so earlier
			// results are replayed as plain context.
			messages = append(messages, functionResult(msg.Name, msg.Content))
		default:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		}
	}

	return append(messages, llms.TextParts(llms.ChatMessageTypeHuman, message))
}

func functionResult(name, result string) llms.MessageContent {
	return llms.TextParts(llms.ChatMessageTypeSystem, fmt.Sprintf("Result of %s: %s", name, result))
}

func firstToolCall(choice *llms.ContentChoice) *llms.ToolCall {
	for i := range choice.ToolCalls {
		if choice.ToolCalls[i].FunctionCall != nil {
			return &choice.ToolCalls[i]
		}
	}
	if choice.FuncCall != nil {
		return &llms.ToolCall{Type: "function", FunctionCall: choice.FuncCall}
	}

	return nil
}

func (h *Handler) afterTurn(ctx context.Context, req Request, resp *Response) {
	if h.transcripts != nil {
		if err := h.transcripts.Record(ctx, req.SessionID, req.Message, resp.Reply); err != nil {
			slog.Warn("failed to record transcript", "session", req.SessionID, "error", err)
		}
	}

	if h.publisher != nil {
		event := events.CartEvent{
			SessionID: req.SessionID,
			Operation: resp.Operation,
			Cart:      resp.Cart,
			CartItems: resp.CartItems,
			CartTotal: resp.CartTotal,
			At:        time.Now().UTC(),
		}
		if err := h.publisher.PublishCart(ctx, event); err != nil {
			slog.Warn("failed to publish cart event", "session", req.SessionID, "error", err)
		}
	}
}
