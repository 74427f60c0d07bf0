package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imkonsowa/menu-concierge/models"
	"github.com/imkonsowa/menu-concierge/ordering"
)

var RulesPrompt = `IMPORTANT RULES:
- You must ONLY recommend items that exist in the menu below
- NEVER make up items that aren't in the menu
- When a customer has allergens, filter ALL recommendations to exclude those allergens
- Be persuasive but honest about what we offer
- Use function calling for ALL cart operations`

type promptItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens"`
	Tags        []string `json:"tags"`
}

type promptCategory struct {
	Category string       `json:"category"`
	Items    []promptItem `json:"items"`
}

// menuContext renders the part of the system prompt that only depends on the
// menu, so it can be built once per handler.
func menuContext(idx *models.Index) (string, error) {
	cfg := idx.Config()

	categories := make([]promptCategory, 0, len(cfg.Menu.Categories))
	for _, category := range cfg.Menu.Categories {
		pc := promptCategory{Category: category.Name, Items: make([]promptItem, 0, len(category.Items))}
		for _, item := range category.Items {
			pc.Items = append(pc.Items, promptItem{
				ID:          item.ID,
				Name:        item.Name,
				Price:       item.Price,
				Description: item.Description,
				Allergens:   nonNil(item.Allergens),
				Tags:        nonNil(item.Tags),
			})
		}
		categories = append(categories, pc)
	}

	menu, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render menu: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(cfg.Prompts.SystemPrompt)
	sb.WriteString("\n\n")
	sb.WriteString(RulesPrompt)
	sb.WriteString("\n\nAvailable allergens in our menu: ")
	sb.WriteString(strings.Join(idx.Allergens(), ", "))
	sb.WriteString("\n\nCOMPLETE MENU:\n")
	sb.Write(menu)
	sb.WriteString("\n")

	return sb.String(), nil
}

func systemPrompt(menu string, prefs ordering.Preferences) string {
	var sb strings.Builder
	sb.WriteString(menu)

	if len(prefs.Allergens) > 0 {
		sb.WriteString("\nCUSTOMER ALLERGENS TO AVOID: ")
		sb.WriteString(strings.Join(prefs.Allergens, ", "))
		sb.WriteString("\n")
	}
	if len(prefs.Dietary) > 0 {
		sb.WriteString("\nCUSTOMER DIETARY PREFERENCES: ")
		sb.WriteString(strings.Join(prefs.Dietary, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}

	return in
}
