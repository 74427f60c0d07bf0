package agent

import (
	"github.com/imkonsowa/menu-concierge/ordering"
	"github.com/tmc/langchaingo/llms"
)

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// Tools are the functions offered to the model on the primary call.
var Tools = []llms.Tool{
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ordering.OpAddToCart,
			Description: "Add an item to the customer's cart. Use this when the customer wants to order something.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item_id":  map[string]any{"type": "string", "description": "The ID of the menu item to add"},
					"quantity": map[string]any{"type": "number", "description": "The quantity to add (default 1)", "default": 1},
				},
				"required": []string{"item_id"},
			},
		},
	},
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ordering.OpRemoveFromCart,
			Description: "Remove an item from the customer's cart or reduce its quantity.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item_id":  map[string]any{"type": "string", "description": "The ID of the menu item to remove"},
					"quantity": map[string]any{"type": "number", "description": "The quantity to remove (default: all)", "default": ordering.RemoveAll},
				},
				"required": []string{"item_id"},
			},
		},
	},
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ordering.OpClearCart,
			Description: "Clear the entire cart.",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
	},
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ordering.OpSearchMenu,
			Description: "Search the menu for items matching criteria like allergens, dietary preferences, or price range.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"exclude_allergens": stringArray("Allergens to exclude from results"),
					"dietary_tags":      stringArray("Dietary tags to filter by (e.g., vegan, vegetarian, gluten-free)"),
					"max_price":         map[string]any{"type": "number", "description": "Maximum price for items"},
				},
			},
		},
	},
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ordering.OpSetDietaryRestrictions,
			Description: "Record customer's allergy or dietary restrictions for the session.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"allergens":     stringArray("List of allergens to avoid"),
					"dietary_prefs": stringArray("Dietary preferences like vegan, vegetarian, etc."),
				},
			},
		},
	},
}
