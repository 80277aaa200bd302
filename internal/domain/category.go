package domain

// Category represents a class of bookable resources
type Category struct {
	ID     int64
	Name   string // English
	NameRu string
	NameUz string
}

// LocalizedName returns the category name for the language, English by default
func (c *Category) LocalizedName(lang Language) string {
	switch lang {
	case LanguageRu:
		if c.NameRu != "" {
			return c.NameRu
		}
	case LanguageUz:
		if c.NameUz != "" {
			return c.NameUz
		}
	}
	return c.Name
}

// Capacity returns the capacity ceiling of the category
func (c *Category) Capacity() int {
	return CapacityOf(c.ID)
}

// CapacityOf returns the capacity ceiling for a category id.
// Unknown ids get DefaultCapacity.
func CapacityOf(categoryID int64) int {
	if capacity, ok := categoryCapacity[categoryID]; ok {
		return capacity
	}
	return DefaultCapacity
}

// DefaultCategories returns the seed set in insertion order
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Air tickets", NameRu: "Авиабилеты", NameUz: "Aviabiletlar"},
		{ID: 2, Name: "Hotels", NameRu: "Отели и гостиницы", NameUz: "Mehmonxonalar"},
		{ID: 3, Name: "Restaurants", NameRu: "Столик в ресторане", NameUz: "Restoranlar"},
		{ID: 4, Name: "Museums", NameRu: "Музеи", NameUz: "Muzeylar"},
		{ID: 5, Name: "Special-events", NameRu: "Special-events", NameUz: "Special-events"},
	}
}
