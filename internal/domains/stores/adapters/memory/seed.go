package memory

import "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"

var seedStores = []domain.Store{
	{
		ID:          "store-101",
		Name:        "Fresh Market Downtown",
		Address:     "123 Elm Street, Springfield, 10001",
		Location:    domain.Coordinate{Lat: 40.71268, Lng: -74.00622},
		Hours:       "8:00 AM - 9:00 PM",
		DeliveryEta: "45-60 min",
	},
	{
		ID:          "store-202",
		Name:        "Neighborhood Grocers",
		Address:     "456 Oak Avenue, Springfield, 10002",
		Location:    domain.Coordinate{Lat: 40.72285, Lng: -74.00111},
		Hours:       "7:00 AM - 10:00 PM",
		DeliveryEta: "30-45 min",
	},
	{
		ID:          "store-303",
		Name:        "MegaMart Springfield",
		Address:     "789 Pine Road, Springfield, 10003",
		Location:    domain.Coordinate{Lat: 40.73542, Lng: -73.99593},
		Hours:       "24 hours",
		DeliveryEta: "60-90 min",
	},
}

var seedInventory = map[string][]domain.InventoryItem{
	"store-101": {
		{
			SKU:               "APL-001",
			Name:              "Honeycrisp Apples",
			Description:       "Fresh locally sourced apples.",
			Category:          "Produce",
			Brand:             "Orchard Fresh",
			ImageURL:          "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce?auto=format&fit=crop&w=400&q=80",
			Unit:              "lb",
			Price:             2.39,
			QuantityAvailable: 140,
		},
		{
			SKU:               "MLK-002",
			Name:              "Organic Whole Milk",
			Description:       "1 gallon organic whole milk.",
			Category:          "Dairy",
			Brand:             "Green Valley Dairy",
			ImageURL:          "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?auto=format&fit=crop&w=400&q=80",
			Unit:              "gallon",
			Price:             5.19,
			QuantityAvailable: 55,
		},
		{
			SKU:               "BRT-003",
			Name:              "Sourdough Bread",
			Description:       "Artisan sourdough loaf baked daily.",
			Category:          "Bakery",
			Brand:             "Sunrise Baking Co.",
			ImageURL:          "https://images.unsplash.com/photo-1608198093002-ad4e005484ec?auto=format&fit=crop&w=400&q=80",
			Unit:              "each",
			Price:             4.5,
			QuantityAvailable: 36,
		},
		{
			SKU:               "SNK-021",
			Name:              "Trail Mix Variety Pack",
			Description:       "Assorted nuts, dried fruit, and chocolate.",
			Category:          "Snacks",
			Brand:             "TrailMix Co.",
			ImageURL:          "https://images.unsplash.com/photo-1589308078054-83216e1e4a62?auto=format&fit=crop&w=400&q=80",
			Unit:              "pack",
			Price:             7.79,
			QuantityAvailable: 90,
		},
		{
			SKU:               "CFE-020",
			Name:              "Cold Brew Coffee Concentrate",
			Description:       "Ready-to-mix cold brew concentrate.",
			Category:          "Beverages",
			Brand:             "BrewMaster Roasters",
			ImageURL:          "https://images.unsplash.com/photo-1470337458703-46ad1756a187?auto=format&fit=crop&w=400&q=80",
			Unit:              "32oz",
			Price:             12.59,
			QuantityAvailable: 60,
		},
		{
			SKU:               "FZN-062",
			Name:              "Frozen Berry Medley",
			Description:       "Blueberries, raspberries, and blackberries flash frozen at peak ripeness.",
			Category:          "Frozen",
			Brand:             "Harvest Freezer Co.",
			ImageURL:          "https://images.unsplash.com/photo-1502741338009-cac2772e18bc?auto=format&fit=crop&w=400&q=80",
			Unit:              "12oz",
			Price:             6.49,
			QuantityAvailable: 70,
		},
		{
			SKU:               "CHS-024",
			Name:              "Aged Cheddar Cheese",
			Description:       "12-month aged farmhouse cheddar.",
			Category:          "Dairy",
			Brand:             "Heritage Creamery",
			ImageURL:          "https://images.unsplash.com/photo-1551024601-bec78aea704b?auto=format&fit=crop&w=400&q=80",
			Unit:              "8oz",
			Price:             7.29,
			QuantityAvailable: 48,
		},
	},
	"store-202": {
		{
			SKU:               "APL-001",
			Name:              "Honeycrisp Apples",
			Description:       "Fresh locally sourced apples.",
			Category:          "Produce",
			Brand:             "Orchard Fresh",
			ImageURL:          "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce?auto=format&fit=crop&w=400&q=80",
			Unit:              "lb",
			Price:             2.58,
			QuantityAvailable: 120,
		},
		{
			SKU:               "VEG-010",
			Name:              "Mixed Salad Greens",
			Description:       "A mix of spinach, arugula, and kale.",
			Category:          "Produce",
			Brand:             "Leafy Greens Collective",
			ImageURL:          "https://images.unsplash.com/photo-1524592094714-0f0654e20314?auto=format&fit=crop&w=400&q=80",
			Unit:              "bag",
			Price:             4.09,
			QuantityAvailable: 80,
		},
		{
			SKU:               "EGG-012",
			Name:              "Free-Range Eggs",
			Description:       "One dozen large brown eggs.",
			Category:          "Dairy",
			Brand:             "Happy Hens Farm",
			ImageURL:          "https://images.unsplash.com/photo-1517959105821-eaf2591984d8?auto=format&fit=crop&w=400&q=80",
			Unit:              "dozen",
			Price:             4.85,
			QuantityAvailable: 100,
		},
		{
			SKU:               "SNK-021",
			Name:              "Trail Mix Variety Pack",
			Description:       "Assorted nuts, dried fruit, and chocolate.",
			Category:          "Snacks",
			Brand:             "TrailMix Co.",
			ImageURL:          "https://images.unsplash.com/photo-1589308078054-83216e1e4a62?auto=format&fit=crop&w=400&q=80",
			Unit:              "pack",
			Price:             8.39,
			QuantityAvailable: 95,
		},
		{
			SKU:               "CFE-020",
			Name:              "Cold Brew Coffee Concentrate",
			Description:       "Ready-to-mix cold brew concentrate.",
			Category:          "Beverages",
			Brand:             "BrewMaster Roasters",
			ImageURL:          "https://images.unsplash.com/photo-1470337458703-46ad1756a187?auto=format&fit=crop&w=400&q=80",
			Unit:              "32oz",
			Price:             12.89,
			QuantityAvailable: 52,
		},
		{
			SKU:               "DRK-090",
			Name:              "Sparkling Water Variety Pack",
			Description:       "12-pack of naturally flavored sparkling water.",
			Category:          "Beverages",
			Brand:             "Cascade Fizz",
			ImageURL:          "https://images.unsplash.com/photo-1527169402691-feff5539e52c?auto=format&fit=crop&w=400&q=80",
			Unit:              "12pk",
			Price:             6.29,
			QuantityAvailable: 130,
		},
		{
			SKU:               "HHL-075",
			Name:              "Bamboo Paper Towels",
			Description:       "Sustainably sourced, extra-absorbent paper towels.",
			Category:          "Household",
			Brand:             "EcoShine Home",
			ImageURL:          "https://images.unsplash.com/photo-1581578731548-c64695cc6952?auto=format&fit=crop&w=400&q=80",
			Unit:              "6pk",
			Price:             5.99,
			QuantityAvailable: 60,
		},
	},
	"store-303": {
		{
			SKU:               "APL-001",
			Name:              "Honeycrisp Apples",
			Description:       "Fresh locally sourced apples.",
			Category:          "Produce",
			Brand:             "Orchard Fresh",
			ImageURL:          "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce?auto=format&fit=crop&w=400&q=80",
			Unit:              "lb",
			Price:             2.52,
			QuantityAvailable: 150,
		},
		{
			SKU:               "VEG-010",
			Name:              "Mixed Salad Greens",
			Description:       "A mix of spinach, arugula, and kale.",
			Category:          "Produce",
			Brand:             "Leafy Greens Collective",
			ImageURL:          "https://images.unsplash.com/photo-1524592094714-0f0654e20314?auto=format&fit=crop&w=400&q=80",
			Unit:              "bag",
			Price:             3.89,
			QuantityAvailable: 135,
		},
		{
			SKU:               "CFE-020",
			Name:              "Cold Brew Coffee Concentrate",
			Description:       "Ready-to-mix cold brew concentrate.",
			Category:          "Beverages",
			Brand:             "BrewMaster Roasters",
			ImageURL:          "https://images.unsplash.com/photo-1470337458703-46ad1756a187?auto=format&fit=crop&w=400&q=80",
			Unit:              "32oz",
			Price:             12.39,
			QuantityAvailable: 58,
		},
		{
			SKU:               "CLN-022",
			Name:              "Eco-Friendly Dish Soap",
			Description:       "Biodegradable citrus-scented dish soap.",
			Category:          "Household",
			Brand:             "EcoShine Home",
			ImageURL:          "https://images.unsplash.com/photo-1615485290382-7275d6b9a369?auto=format&fit=crop&w=400&q=80",
			Unit:              "16oz",
			Price:             3.89,
			QuantityAvailable: 80,
		},
		{
			SKU:               "FZN-062",
			Name:              "Frozen Berry Medley",
			Description:       "Blueberries, raspberries, and blackberries flash frozen at peak ripeness.",
			Category:          "Frozen",
			Brand:             "Harvest Freezer Co.",
			ImageURL:          "https://images.unsplash.com/photo-1502741338009-cac2772e18bc?auto=format&fit=crop&w=400&q=80",
			Unit:              "12oz",
			Price:             6.19,
			QuantityAvailable: 90,
		},
		{
			SKU:               "PRD-055",
			Name:              "Plant Power Smoothie Packs",
			Description:       "Ready-to-blend smoothies with spinach, mango, and chia.",
			Category:          "Frozen",
			Brand:             "VitalBlend",
			ImageURL:          "https://images.unsplash.com/photo-1497534446932-c925b458314e?auto=format&fit=crop&w=400&q=80",
			Unit:              "4ct",
			Price:             8.49,
			QuantityAvailable: 65,
		},
		{
			SKU:               "DRK-090",
			Name:              "Sparkling Water Variety Pack",
			Description:       "12-pack of naturally flavored sparkling water.",
			Category:          "Beverages",
			Brand:             "Cascade Fizz",
			ImageURL:          "https://images.unsplash.com/photo-1527169402691-feff5539e52c?auto=format&fit=crop&w=400&q=80",
			Unit:              "12pk",
			Price:             5.99,
			QuantityAvailable: 160,
		},
	},
}
