package events

import (
	"time"

	"github.com/imkonsowa/menu-concierge/ordering"
)

// CartEvent is the cart snapshot published after every chat turn.
type CartEvent struct {
	SessionID string              `json:"sessionId"`
	Operation string              `json:"operation,omitempty"`
	Cart      ordering.Cart       `json:"cart"`
	CartItems []ordering.LineItem `json:"cartItems"`
	CartTotal float64             `json:"cartTotal"`
	At        time.Time           `json:"at"`
}
