package models

import (
	"sort"
	"strings"
)

type IndexedItem struct {
	MenuItem
	Category string
}

// Index is a read-only id lookup over a Configuration.
type Index struct {
	config *Configuration
	items  map[string]IndexedItem
	order  []string
}

func NewIndex(cfg *Configuration) *Index {
	idx := &Index{
		config: cfg,
		items:  make(map[string]IndexedItem),
	}

	for _, category := range cfg.Menu.Categories {
		for _, item := range category.Items {
			if _, ok := idx.items[item.ID]; !ok {
				idx.order = append(idx.order, item.ID)
			}
			idx.items[item.ID] = IndexedItem{MenuItem: item, Category: category.Name}
		}
	}

	return idx
}

func (i *Index) Config() *Configuration {
	return i.config
}

func (i *Index) Lookup(id string) (IndexedItem, bool) {
	item, ok := i.items[id]
	return item, ok
}

// Items returns every menu item in menu order.
func (i *Index) Items() []IndexedItem {
	items := make([]IndexedItem, 0, len(i.order))
	for _, id := range i.order {
		items = append(items, i.items[id])
	}

	return items
}

func (i *Index) Len() int {
	return len(i.order)
}

// Allergens returns the sorted distinct allergen tags used by the menu.
func (i *Index) Allergens() []string {
	return i.distinct(func(item IndexedItem) []string { return item.Allergens })
}

// Tags returns the sorted distinct dietary tags used by the menu.
func (i *Index) Tags() []string {
	return i.distinct(func(item IndexedItem) []string { return item.Tags })
}

func (i *Index) distinct(pick func(IndexedItem) []string) []string {
	set := make(map[string]struct{})
	for _, item := range i.items {
		for _, v := range pick(item) {
			if v = strings.TrimSpace(v); v != "" {
				set[v] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}
