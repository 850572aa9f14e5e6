// Package catalog serves the storefront's static menu.
package catalog

import (
	"errors"

	"fastgrab/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrItemNotFound = errors.New("item not found")

type Provider struct {
	categories []domain.FoodCategory
	items      []domain.FoodItem
	byID       map[string]domain.FoodItem
}

func New(categories []domain.FoodCategory, items []domain.FoodItem) *Provider {
	byID := make(map[string]domain.FoodItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &Provider{categories: categories, items: items, byID: byID}
}

// Default returns the storefront menu.
func Default() *Provider {
	return New(defaultCategories, defaultItems)
}

func (p *Provider) Categories() []domain.FoodCategory {
	return append([]domain.FoodCategory(nil), p.categories...)
}

func (p *Provider) Items() []domain.FoodItem {
	return append([]domain.FoodItem(nil), p.items...)
}

func (p *Provider) ItemsByCategory(category string) []domain.FoodItem {
	var out []domain.FoodItem
	for _, item := range p.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func (p *Provider) Item(id string) (domain.FoodItem, error) {
	item, ok := p.byID[id]
	if !ok {
		return domain.FoodItem{}, ErrItemNotFound
	}
	return item, nil
}

func (p *Provider) ItemNames() []string {
	names := make([]string, 0, len(p.items))
	for _, item := range p.items {
		names = append(names, item.Name)
	}
	return names
}

// CategoryOf resolves an item name to its category, "" when unknown.
func (p *Provider) CategoryOf(name string) string {
	for _, item := range p.items {
		if item.Name == name {
			return item.Category
		}
	}
	return ""
}

var defaultCategories = []domain.FoodCategory{
	{ID: "pizza", Name: "Pizzas"},
	{ID: "drinks", Name: "Drinks"},
	{ID: "sides", Name: "Sides"},
	{ID: "soups", Name: "Soups"},
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var defaultItems = []domain.FoodItem{
	{
		ID:          "pizza-1",
		Name:        "Margherita Classic",
		Category:    "pizza",
		Price:       price("10.99"),
		Description: "Fresh mozzarella, San Marzano tomatoes and basil on a thin crust.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "margherita pizza",
		Flavors:     []string{"Classic Tomato", "Pesto Swirl", "Spicy Arrabiata"},
	},
	{
		ID:          "pizza-2",
		Name:        "Pepperoni Power",
		Category:    "pizza",
		Price:       price("12.99"),
		Description: "Loaded with spicy pepperoni and a three-cheese blend.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "pepperoni pizza",
		Flavors:     []string{"Classic Tomato", "Smoky BBQ"},
	},
	{
		ID:          "pizza-3",
		Name:        "Veggie Garden",
		Category:    "pizza",
		Price:       price("11.99"),
		Description: "Bell peppers, olives, mushrooms, red onions and sweet corn.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "veggie pizza",
		Flavors:     []string{"Classic Tomato", "Garlic Herb Olive Oil"},
	},
	{
		ID:          "pizza-4",
		Name:        "Hawaiian Breeze",
		Category:    "pizza",
		Price:       price("13.49"),
		Description: "Smoked ham, pineapple chunks and mozzarella.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "hawaiian pizza",
		Flavors:     []string{"Classic Tomato"},
	},
	{
		ID:          "drink-1",
		Name:        "Sparkling Cola",
		Category:    "drinks",
		Price:       price("1.99"),
		Description: "Ice-cold classic cola.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "cola drink",
	},
	{
		ID:          "drink-2",
		Name:        "Zesty Lemonade",
		Category:    "drinks",
		Price:       price("2.49"),
		Description: "Freshly squeezed lemonade with a hint of mint.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "lemonade glass",
	},
	{
		ID:          "drink-3",
		Name:        "Artisan Iced Coffee",
		Category:    "drinks",
		Price:       price("3.99"),
		Description: "Cold brew over ice with a splash of cream.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "iced coffee",
	},
	{
		ID:          "drink-4",
		Name:        "Orange Burst",
		Category:    "drinks",
		Price:       price("2.99"),
		Description: "Sparkling orange soda.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "orange soda",
	},
	{
		ID:          "side-1",
		Name:        "Golden Fries",
		Category:    "sides",
		Price:       price("3.49"),
		Description: "Crispy salted fries.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "french fries",
	},
	{
		ID:          "side-2",
		Name:        "Cheesy Garlic Breadsticks",
		Category:    "sides",
		Price:       price("4.99"),
		Description: "Oven-baked breadsticks with garlic butter and melted cheese.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "garlic bread",
	},
	{
		ID:          "side-3",
		Name:        "Crispy Onion Rings",
		Category:    "sides",
		Price:       price("4.29"),
		Description: "Beer-battered onion rings.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "onion rings",
	},
	{
		ID:          "side-4",
		Name:        "Chicken Wings (6pcs)",
		Category:    "sides",
		Price:       price("7.99"),
		Description: "Spicy buffalo wings with ranch dip.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "chicken wings",
	},
	{
		ID:          "soup-1",
		Name:        "Tomato Basil Soup",
		Category:    "soups",
		Price:       price("5.50"),
		Description: "Creamy tomato soup with fresh basil.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "tomato soup",
	},
	{
		ID:          "soup-2",
		Name:        "Chicken Noodle Soup",
		Category:    "soups",
		Price:       price("6.00"),
		Description: "Homestyle broth with chicken and egg noodles.",
		ImageURL:    "https://placehold.co/600x400.png",
		ImageHint:   "chicken soup",
	},
}
