package store

import "campus-canteen/models"

// The bundled menu ships with the binary so the local store works with an
// empty database. Default items can be overridden or tombstoned but the
// originals are never mutated; both helpers return fresh copies.

var defaultCategories = []models.Category{
	{ID: "breakfast", Name: "Breakfast", Tagline: "Start the day right", Icon: "🌅", SortOrder: 0},
	{ID: "chaat", Name: "Chaat & Snacks", Tagline: "Quick bites", Icon: "🥟", SortOrder: 1},
	{ID: "mains", Name: "Mains", Tagline: "Full plates", Icon: "🍛", SortOrder: 2},
	{ID: "rolls", Name: "Rolls & Wraps", Icon: "🌯", SortOrder: 3},
	{ID: "beverages", Name: "Beverages", Tagline: "Hot & cold", Icon: "🥤", SortOrder: 4},
	{ID: "desserts", Name: "Desserts", Icon: "🍨", SortOrder: 5},
}

var defaultMenuItems = []models.MenuItem{
	{
		ID: "poha", Name: "Poha", CategoryID: "breakfast", Price: 40,
		Description: "Flattened rice with onions, peanuts and a squeeze of lime",
		Tags:        []string{models.TagReadyFast},
		IsAvailable: true,
	},
	{
		ID: "masala-dosa", Name: "Masala Dosa", CategoryID: "breakfast", Price: 70,
		Description: "Crisp dosa with spiced potato filling, sambar and chutney",
		Tags:        []string{models.TagBestSeller},
		IsAvailable: true,
		AddOns: []models.AddOn{
			{ID: "extra-chutney", Name: "Extra Chutney", Price: 10},
			{ID: "ghee-roast", Name: "Ghee Roast", Price: 20},
		},
	},
	{
		ID: "samosa-plate", Name: "Samosa (2 pc)", CategoryID: "chaat", Price: 30,
		Description: "Golden fried, served with tamarind and mint chutney",
		Tags:        []string{models.TagBestSeller, models.TagReadyFast},
		IsAvailable: true,
	},
	{
		ID: "pani-puri", Name: "Pani Puri", CategoryID: "chaat", Price: 40,
		Description: "Six puris with spicy and sweet water",
		IsAvailable: true,
	},
	{
		ID: "bhel-puri", Name: "Bhel Puri", CategoryID: "chaat", Price: 45,
		Description: "Puffed rice tossed with chutneys and sev",
		IsAvailable: true,
	},
	{
		ID: "chole-bhature", Name: "Chole Bhature", CategoryID: "mains", Price: 90,
		Description: "Spiced chickpeas with two fluffy bhature",
		Tags:        []string{models.TagBestSeller},
		IsAvailable: true,
		Extras: []models.Extra{
			{ID: "extra-bhatura", Name: "Extra Bhatura", Price: 20},
		},
	},
	{
		ID: "paneer-thali", Name: "Paneer Thali", CategoryID: "mains", Price: 130,
		Description: "Paneer curry, dal, rice, two rotis and salad",
		IsAvailable: true,
		AddOns: []models.AddOn{
			{ID: "extra-paneer", Name: "Extra Paneer", Price: 30},
		},
	},
	{
		ID: "veg-biryani", Name: "Veg Biryani", CategoryID: "mains", Price: 110,
		Description: "Fragrant basmati rice with seasonal vegetables and raita",
		IsAvailable: true,
		Extras: []models.Extra{
			{ID: "raita", Name: "Extra Raita", Price: 15},
		},
	},
	{
		ID: "paneer-roll", Name: "Paneer Tikka Roll", CategoryID: "rolls", Price: 80,
		Description: "Char-grilled paneer wrapped in rumali roti",
		Tags:        []string{models.TagReadyFast},
		IsAvailable: true,
		AddOns: []models.AddOn{
			{ID: "extra-cheese", Name: "Extra Cheese", Price: 15},
		},
	},
	{
		ID: "egg-roll", Name: "Egg Roll", CategoryID: "rolls", Price: 60,
		Description: "Double egg wrap with onions and green chutney",
		IsAvailable: true,
	},
	{
		ID: "masala-chai", Name: "Masala Chai", CategoryID: "beverages", Price: 15,
		Description: "Kadak chai brewed with ginger and cardamom",
		Tags:        []string{models.TagBestSeller, models.TagReadyFast},
		IsAvailable: true,
	},
	{
		ID: "cold-coffee", Name: "Cold Coffee", CategoryID: "beverages", Price: 50,
		Description: "Blended with ice cream, served chilled",
		IsAvailable: true,
	},
	{
		ID: "fresh-lime-soda", Name: "Fresh Lime Soda", CategoryID: "beverages", Price: 30,
		Description: "Sweet, salted or mixed",
		IsAvailable: true,
	},
	{
		ID: "gulab-jamun", Name: "Gulab Jamun (2 pc)", CategoryID: "desserts", Price: 35,
		Description: "Warm, soaked in cardamom syrup",
		IsAvailable: true,
	},
	{
		ID: "kulfi", Name: "Matka Kulfi", CategoryID: "desserts", Price: 45,
		Description: "Slow-reduced milk kulfi set in a clay pot",
		IsAvailable: true,
	},
}

var defaultMenuItemIDs = func() map[string]struct{} {
	ids := make(map[string]struct{}, len(defaultMenuItems))
	for _, item := range defaultMenuItems {
		ids[item.ID] = struct{}{}
	}
	return ids
}()

func DefaultCategories() []models.Category {
	out := make([]models.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

func DefaultMenuItems() []models.MenuItem {
	out := make([]models.MenuItem, len(defaultMenuItems))
	copy(out, defaultMenuItems)
	return out
}

// IsDefaultMenuItem reports whether the id belongs to the bundled menu.
func IsDefaultMenuItem(id string) bool {
	_, ok := defaultMenuItemIDs[id]
	return ok
}
