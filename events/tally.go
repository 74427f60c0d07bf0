package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

type SessionTotal struct {
	Items int     `json:"items"`
	Total float64 `json:"total"`
}

// Tally follows the cart event stream and keeps the latest cart total per
// session plus a count of events per operation. It is safe for concurrent use.
type Tally struct {
	mu         sync.Mutex
	sessions   map[string]SessionTotal
	operations map[string]int
}

func NewTally() *Tally {
	return &Tally{
		sessions:   make(map[string]SessionTotal),
		operations: make(map[string]int),
	}
}

func (t *Tally) Handle(_ context.Context, payload []byte) error {
	var event CartEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode cart event: %w", err)
	}

	items := 0
	for _, line := range event.CartItems {
		items += line.Quantity
	}

	op := event.Operation
	if op == "" {
		op = "reply"
	}

	t.mu.Lock()
	t.sessions[event.SessionID] = SessionTotal{Items: items, Total: event.CartTotal}
	t.operations[op]++
	t.mu.Unlock()

	slog.Info("cart updated", "session", event.SessionID, "operation", op, "items", items, "total", event.CartTotal)

	return nil
}

func (t *Tally) Session(id string) (SessionTotal, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[id]
	return s, ok
}

func (t *Tally) Operations() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]int, len(t.operations))
	for k, v := range t.operations {
		out[k] = v
	}

	return out
}
