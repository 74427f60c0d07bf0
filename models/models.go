package models

import (
	"fmt"
	"strings"
)

type RestaurantInfo struct {
	Name     string            `json:"name,omitempty"`
	Location string            `json:"location,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Hours    map[string]string `json:"hours,omitempty"`
}

type Prompts struct {
	SystemPrompt   string `json:"systemPrompt"`
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (m *MenuItem) Stringify() string {
	return fmt.Sprintf("MenuItem: %s, ID: %s, Price: %.2f, Description: %s, Allergens: %s, Tags: %s",
		m.Name, m.ID, m.Price, m.Description, strings.Join(m.Allergens, ", "), strings.Join(m.Tags, ", "))
}

type Category struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

func (c *Category) Stringify() string {
	return fmt.Sprintf("Category: %s", c.Name)
}

type Menu struct {
	Categories []Category `json:"categories"`
}

// Configuration is the restaurant configuration file. It is read once per
// process and treated as read-only afterwards.
type Configuration struct {
	RestaurantInfo RestaurantInfo `json:"restaurantInfo"`
	Menu           Menu           `json:"menu"`
	Prompts        Prompts        `json:"prompts"`
}

// Validate rejects menus whose item ids collide or whose prices are negative.
func (c *Configuration) Validate() error {
	seen := make(map[string]string)
	for _, category := range c.Menu.Categories {
		for _, item := range category.Items {
			if item.ID == "" {
				return fmt.Errorf("item %q in category %q has no id", item.Name, category.Name)
			}
			if prev, ok := seen[item.ID]; ok {
				return fmt.Errorf("duplicate item id %q in categories %q and %q", item.ID, prev, category.Name)
			}
			if item.Price < 0 {
				return fmt.Errorf("item %q has negative price %.2f", item.ID, item.Price)
			}
			seen[item.ID] = category.Name
		}
	}

	return nil
}
