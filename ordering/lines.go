package ordering

import (
	"math"

	"github.com/imkonsowa/menu-concierge/models"
)

type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// LineItems prices the cart against the menu, ordered by item id. Entries
// whose id is not on the menu are skipped.
func LineItems(idx *models.Index, cart Cart) []LineItem {
	lines := make([]LineItem, 0, len(cart))
	for _, id := range cart.IDs() {
		item, ok := idx.Lookup(id)
		qty := cart[id]
		if !ok || qty < 1 {
			continue
		}

		lines = append(lines, LineItem{
			ID:       id,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: qty,
			Total:    roundCents(item.Price * float64(qty)),
		})
	}

	return lines
}

func Total(lines []LineItem) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.Total
	}

	return roundCents(sum)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
