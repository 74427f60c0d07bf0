package agent

import (
	"errors"

	"github.com/imkonsowa/menu-concierge/ordering"
)

const (
	DefaultReply  = "I can help you order from our menu!"
	FallbackReply = "Done!"
)

var (
	ErrMessageRequired   = errors.New("message is required")
	ErrMissingCredential = errors.New("OpenAI API key not configured")
	ErrUpstream          = errors.New("OpenAI API error")
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeInternal      = "CHAT_AI_ERROR"
)

type Request struct {
	Message             string           `json:"message"`
	SessionID           string           `json:"sessionId"`
	Cart                ordering.Cart    `json:"cart"`
	ConversationHistory ordering.History `json:"conversationHistory"`
	AllergyRestrictions []string         `json:"allergyRestrictions"`
	DietaryPreferences  []string         `json:"dietaryPreferences"`
}

type Response struct {
	Reply               string              `json:"reply"`
	Cart                ordering.Cart       `json:"cart"`
	CartItems           []ordering.LineItem `json:"cartItems"`
	CartTotal           float64             `json:"cartTotal"`
	ConversationHistory ordering.History    `json:"conversationHistory"`
	AllergyRestrictions []string            `json:"allergyRestrictions"`
	DietaryPreferences  []string            `json:"dietaryPreferences"`

	// Operation is the function the model invoked this turn, if any.
	Operation string `json:"-"`
}

type SuccessEnvelope struct {
	Data *Response `json:"data"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
