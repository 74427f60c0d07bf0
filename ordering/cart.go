package ordering

import "sort"

// Cart maps a menu item id to its quantity. Quantities are always >= 1; an
// entry that would drop to zero is removed. Cart values are never modified in
// place: every mutation returns a new Cart.
type Cart map[string]int

// Normalize drops entries with non-positive quantities, which callers may
// send back to us.
func (c Cart) Normalize() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		if qty > 0 {
			out[id] = qty
		}
	}

	return out
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}

	return out
}

func (c Cart) Quantity(id string) int {
	return c[id]
}

func (c Cart) Add(id string, qty int) Cart {
	out := c.Clone()
	out[id] += qty
	if out[id] <= 0 {
		delete(out, id)
	}

	return out
}

// Remove takes qty units of id out of the cart. A qty of -1, or one that is
// at least the current quantity, removes the entry entirely.
func (c Cart) Remove(id string, qty int) Cart {
	out := c.Clone()
	if qty == RemoveAll || qty >= out[id] {
		delete(out, id)
		return out
	}

	out[id] -= qty

	return out
}

func (c Cart) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
