package ordering

import (
	"errors"
	"fmt"

	"github.com/imkonsowa/menu-concierge/models"
)

const (
	errItemNotFound  = "Item not found"
	errItemNotInCart = "Item not in cart"
	errBadQuantity   = "Quantity must be a positive whole number"
	errTooMany       = "Quantity exceeds the maximum per item"
)

// Apply runs op against state and returns the next state with the result for
// the model. The input state is left untouched. Failed operations return the
// state unchanged.
func Apply(idx *models.Index, state State, op Operation) (State, Result) {
	next := state.Clone()

	switch op := op.(type) {
	case AddToCart:
		item, ok := idx.Lookup(op.ItemID)
		if !ok {
			return next, ErrorResult{Error: errItemNotFound}
		}
		if op.Quantity < 1 {
			return next, ErrorResult{Error: errBadQuantity}
		}
		if op.Quantity > MaxQuantity-next.Cart.Quantity(op.ItemID) {
			return next, ErrorResult{Error: errTooMany}
		}

		next.Cart = next.Cart.Add(op.ItemID, op.Quantity)

		return next, AddedResult{
			Success:  true,
			Item:     item.Name,
			Quantity: op.Quantity,
			NewTotal: next.Cart.Quantity(op.ItemID),
			Price:    item.Price,
		}

	case RemoveFromCart:
		item, ok := idx.Lookup(op.ItemID)
		if !ok || next.Cart.Quantity(op.ItemID) == 0 {
			return next, ErrorResult{Error: errItemNotInCart}
		}
		if op.Quantity != RemoveAll && op.Quantity < 1 {
			return next, ErrorResult{Error: errBadQuantity}
		}

		next.Cart = next.Cart.Remove(op.ItemID, op.Quantity)
		remaining := next.Cart.Quantity(op.ItemID)

		return next, RemovedResult{
			Success:   true,
			Item:      item.Name,
			Removed:   remaining == 0,
			Remaining: remaining,
		}

	case ClearCart:
		next.Cart = Cart{}

		return next, ClearedResult{Success: true, Message: "Cart cleared"}

	case SearchMenu:
		return next, Search(idx, op)

	case SetDietaryRestrictions:
		next.Preferences = Preferences{
			Allergens: cloneStrings(op.Allergens),
			Dietary:   cloneStrings(op.DietaryPrefs),
		}

		return next, RestrictionsResult{
			Success:      true,
			Allergens:    next.Preferences.Allergens,
			DietaryPrefs: next.Preferences.Dietary,
		}
	}

	return next, ErrorResult{Error: "Unknown function"}
}

// Dispatch parses a raw function call and applies it. Parse failures become
// error results so they can be reported back to the model.
func Dispatch(idx *models.Index, state State, name, arguments string) (State, Result) {
	op, err := ParseOperation(name, arguments)
	if err != nil {
		if errors.Is(err, ErrUnknownOperation) {
			return state.Clone(), ErrorResult{Error: "Unknown function"}
		}

		return state.Clone(), ErrorResult{Error: fmt.Sprintf("Invalid arguments for %s", name)}
	}

	return Apply(idx, state, op)
}
