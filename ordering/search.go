package ordering

import (
	"strings"

	"github.com/imkonsowa/menu-concierge/models"
)

// MaxSearchResults caps the items returned by a menu search. Count still
// reports every match.
const MaxSearchResults = 10

// Search filters the menu in menu order. An item is excluded when any of its
// allergens contains an excluded term (case-insensitive substring), when it
// lacks any requested dietary tag (case-insensitive exact match), or when it
// costs more than MaxPrice.
func Search(idx *models.Index, q SearchMenu) SearchResult {
	result := SearchResult{Items: []SearchHit{}}

	for _, item := range idx.Items() {
		if !Matches(item.MenuItem, q) {
			continue
		}

		result.Count++
		if len(result.Items) < MaxSearchResults {
			result.Items = append(result.Items, SearchHit{
				ID:          item.ID,
				Name:        item.Name,
				Price:       item.Price,
				Description: item.Description,
			})
		}
	}

	return result
}

func Matches(item models.MenuItem, q SearchMenu) bool {
	if containsAllergen(item.Allergens, q.ExcludeAllergens) {
		return false
	}
	if !hasAllTags(item.Tags, q.DietaryTags) {
		return false
	}
	if q.MaxPrice != nil && item.Price > *q.MaxPrice {
		return false
	}

	return true
}

func containsAllergen(allergens, excluded []string) bool {
	for _, a := range allergens {
		a = strings.ToLower(a)
		for _, ex := range excluded {
			if strings.Contains(a, strings.ToLower(ex)) {
				return true
			}
		}
	}

	return false
}

func hasAllTags(tags, required []string) bool {
	for _, want := range required {
		found := false
		for _, tag := range tags {
			if strings.EqualFold(tag, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
