package ordering

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleFunction  = "function"
)

// DefaultMaxHistory is the number of conversation entries kept between turns.
const DefaultMaxHistory = 20

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

type History []Message

func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)

	return out
}

func (h History) Append(msgs ...Message) History {
	out := make(History, 0, len(h)+len(msgs))
	out = append(out, h...)

	return append(out, msgs...)
}

// Trim keeps the most recent max entries, oldest dropped first.
func (h History) Trim(max int) History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	if len(h) <= max {
		return h.Clone()
	}

	return h[len(h)-max:].Clone()
}
