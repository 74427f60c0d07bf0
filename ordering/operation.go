package ordering

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	OpAddToCart              = "add_to_cart"
	OpRemoveFromCart         = "remove_from_cart"
	OpClearCart              = "clear_cart"
	OpSearchMenu             = "search_menu"
	OpSetDietaryRestrictions = "set_dietary_restrictions"
)

// RemoveAll is the remove_from_cart quantity meaning "every unit".
const RemoveAll = -1

// MaxQuantity bounds the quantity of a single function call and of a cart line.
const MaxQuantity = 1_000_000

var (
	ErrUnknownOperation = errors.New("unknown function")
	ErrInvalidArguments = errors.New("invalid function arguments")
)

// Operation is one of the functions the model may invoke. The concrete types
// below are the only implementations.
type Operation interface {
	Name() string
	isOperation()
}

type AddToCart struct {
	ItemID   string
	Quantity int
}

type RemoveFromCart struct {
	ItemID   string
	Quantity int
}

type ClearCart struct{}

type SearchMenu struct {
	ExcludeAllergens []string
	DietaryTags      []string
	MaxPrice         *float64
}

type SetDietaryRestrictions struct {
	Allergens    []string
	DietaryPrefs []string
}

func (AddToCart) Name() string              { return OpAddToCart }
func (RemoveFromCart) Name() string         { return OpRemoveFromCart }
func (ClearCart) Name() string              { return OpClearCart }
func (SearchMenu) Name() string             { return OpSearchMenu }
func (SetDietaryRestrictions) Name() string { return OpSetDietaryRestrictions }

func (AddToCart) isOperation()              {}
func (RemoveFromCart) isOperation()         {}
func (ClearCart) isOperation()              {}
func (SearchMenu) isOperation()             {}
func (SetDietaryRestrictions) isOperation() {}

type itemArgs struct {
	ItemID   string   `json:"item_id"`
	Quantity *float64 `json:"quantity"`
}

type searchArgs struct {
	ExcludeAllergens []string `json:"exclude_allergens"`
	DietaryTags      []string `json:"dietary_tags"`
	MaxPrice         *float64 `json:"max_price"`
}

type restrictionArgs struct {
	Allergens    []string `json:"allergens"`
	DietaryPrefs []string `json:"dietary_prefs"`
}

// ParseOperation decodes a model function call into its typed variant. An
// empty argument string is treated as "{}".
func ParseOperation(name, arguments string) (Operation, error) {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}

	switch name {
	case OpAddToCart:
		var args itemArgs
		if err := decodeArgs(arguments, &args); err != nil {
			return nil, err
		}
		qty, err := quantity(args.Quantity, 1)
		if err != nil {
			return nil, err
		}
		return AddToCart{ItemID: args.ItemID, Quantity: qty}, nil

	case OpRemoveFromCart:
		var args itemArgs
		if err := decodeArgs(arguments, &args); err != nil {
			return nil, err
		}
		qty, err := quantity(args.Quantity, RemoveAll)
		if err != nil {
			return nil, err
		}
		return RemoveFromCart{ItemID: args.ItemID, Quantity: qty}, nil

	case OpClearCart:
		return ClearCart{}, nil

	case OpSearchMenu:
		var args searchArgs
		if err := decodeArgs(arguments, &args); err != nil {
			return nil, err
		}
		return SearchMenu{
			ExcludeAllergens: args.ExcludeAllergens,
			DietaryTags:      args.DietaryTags,
			MaxPrice:         args.MaxPrice,
		}, nil

	case OpSetDietaryRestrictions:
		var args restrictionArgs
		if err := decodeArgs(arguments, &args); err != nil {
			return nil, err
		}
		return SetDietaryRestrictions{
			Allergens:    nonNil(args.Allergens),
			DietaryPrefs: nonNil(args.DietaryPrefs),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
}

func decodeArgs(arguments string, dst any) error {
	if err := json.Unmarshal([]byte(arguments), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}

	return nil
}

func quantity(v *float64, def int) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v != math.Trunc(*v) || math.IsInf(*v, 0) {
		return 0, fmt.Errorf("%w: quantity %v is not a whole number", ErrInvalidArguments, *v)
	}
	if math.Abs(*v) > MaxQuantity {
		return 0, fmt.Errorf("%w: quantity %v exceeds %d", ErrInvalidArguments, *v, MaxQuantity)
	}

	return int(*v), nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}

	return in
}
