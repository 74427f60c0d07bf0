package ordering

// Preferences are the per-session allergy and dietary constraints. They are
// replaced wholesale, never merged.
type Preferences struct {
	Allergens []string `json:"allergyRestrictions"`
	Dietary   []string `json:"dietaryPreferences"`
}

func (p Preferences) Clone() Preferences {
	return Preferences{
		Allergens: cloneStrings(p.Allergens),
		Dietary:   cloneStrings(p.Dietary),
	}
}

// State is everything a caller round-trips between chat turns.
type State struct {
	Cart        Cart
	History     History
	Preferences Preferences
}

func (s State) Clone() State {
	return State{
		Cart:        s.Cart.Clone(),
		History:     s.History.Clone(),
		Preferences: s.Preferences.Clone(),
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)

	return out
}
