package generator

import (
	"github.com/headply/restaurant-analysis/internal/domain"
)

// Categorias do cardápio padrão
const (
	CategoryStarters  = "Starters"
	CategoryMains     = "Mains"
	CategorySides     = "Sides"
	CategoryDesserts  = "Desserts"
	CategoryBeverages = "Beverages"
	CategoryKidsMenu  = "Kids Menu"
)

// DefaultCatalog é o cardápio usado pelo gerador: preço e custo base por item
var DefaultCatalog = []domain.MenuItem{
	{Name: "French Onion Soup", Category: CategoryStarters, BasePrice: 8.99, BaseCost: 2.50},
	{Name: "Caesar Salad", Category: CategoryStarters, BasePrice: 9.99, BaseCost: 3.20},
	{Name: "Buffalo Wings (8pc)", Category: CategoryStarters, BasePrice: 12.99, BaseCost: 5.50},
	{Name: "Calamari", Category: CategoryStarters, BasePrice: 13.99, BaseCost: 4.80},
	{Name: "Spinach Artichoke Dip", Category: CategoryStarters, BasePrice: 10.99, BaseCost: 3.50},
	{Name: "Bruschetta", Category: CategoryStarters, BasePrice: 8.99, BaseCost: 2.80},

	{Name: "Classic Burger", Category: CategoryMains, BasePrice: 14.99, BaseCost: 5.20},
	{Name: "BBQ Bacon Burger", Category: CategoryMains, BasePrice: 16.99, BaseCost: 6.50},
	{Name: "Grilled Chicken Sandwich", Category: CategoryMains, BasePrice: 13.99, BaseCost: 4.80},
	{Name: "Fish and Chips", Category: CategoryMains, BasePrice: 17.99, BaseCost: 7.20},
	{Name: "Ribeye Steak (12oz)", Category: CategoryMains, BasePrice: 32.99, BaseCost: 14.50},
	{Name: "Grilled Salmon", Category: CategoryMains, BasePrice: 24.99, BaseCost: 11.00},
	{Name: "Pasta Carbonara", Category: CategoryMains, BasePrice: 16.99, BaseCost: 5.50},
	{Name: "Vegetable Stir Fry", Category: CategoryMains, BasePrice: 14.99, BaseCost: 4.20},

	{Name: "French Fries", Category: CategorySides, BasePrice: 4.99, BaseCost: 1.20},
	{Name: "Onion Rings", Category: CategorySides, BasePrice: 5.99, BaseCost: 1.80},
	{Name: "Coleslaw", Category: CategorySides, BasePrice: 3.99, BaseCost: 1.00},
	{Name: "Sweet Potato Fries", Category: CategorySides, BasePrice: 5.99, BaseCost: 2.20},

	{Name: "Chocolate Lava Cake", Category: CategoryDesserts, BasePrice: 8.99, BaseCost: 2.80},
	{Name: "New York Cheesecake", Category: CategoryDesserts, BasePrice: 7.99, BaseCost: 2.40},
	{Name: "Ice Cream Sundae", Category: CategoryDesserts, BasePrice: 6.99, BaseCost: 1.80},
	{Name: "Apple Pie", Category: CategoryDesserts, BasePrice: 6.99, BaseCost: 2.00},

	{Name: "Soft Drink", Category: CategoryBeverages, BasePrice: 2.99, BaseCost: 0.50},
	{Name: "Iced Tea", Category: CategoryBeverages, BasePrice: 2.99, BaseCost: 0.40},
	{Name: "Coffee", Category: CategoryBeverages, BasePrice: 3.49, BaseCost: 0.60},
	{Name: "Craft Beer", Category: CategoryBeverages, BasePrice: 6.99, BaseCost: 1.50},
	{Name: "House Wine (Glass)", Category: CategoryBeverages, BasePrice: 8.99, BaseCost: 2.00},
	{Name: "Signature Cocktail", Category: CategoryBeverages, BasePrice: 11.99, BaseCost: 3.00},

	{Name: "Kids Burger & Fries", Category: CategoryKidsMenu, BasePrice: 7.99, BaseCost: 2.50},
	{Name: "Kids Chicken Tenders", Category: CategoryKidsMenu, BasePrice: 6.99, BaseCost: 2.20},
	{Name: "Kids Mac & Cheese", Category: CategoryKidsMenu, BasePrice: 6.49, BaseCost: 1.80},
}
