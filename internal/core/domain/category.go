package domain

// Fallback category IDs used when the catalog cannot be fetched.
const (
	CategoryCostCenter = "cc"
	CategoryWBS        = "wbs"
)

// Category is a named searchable domain.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Catalog is the set of categories offered by the search source.
type Catalog struct {
	Categories []Category `json:"dataTypes"`
	DefaultID  string     `json:"defaultType"`

	// Fallback is true when the catalog was substituted after a load failure.
	Fallback bool `json:"-"`
}

// FallbackCatalog returns the hardcoded catalog used when the source's
// configuration endpoint is unavailable.
func FallbackCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{ID: CategoryCostCenter, Name: "Cost Centers", Description: "Company cost centers", Icon: "💰"},
			{ID: CategoryWBS, Name: "WBS Elements", Description: "Work Breakdown Structure", Icon: "📊"},
		},
		DefaultID: CategoryCostCenter,
		Fallback:  true,
	}
}

// Find returns the category with the given ID.
func (c Catalog) Find(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Default returns the default category ID, falling back to the first
// category and then to the cost center category.
func (c Catalog) Default() string {
	if c.DefaultID != "" {
		return c.DefaultID
	}
	if len(c.Categories) > 0 {
		return c.Categories[0].ID
	}
	return CategoryCostCenter
}

// Next returns the ID of the category after id, wrapping around.
// If id is unknown the default is returned.
func (c Catalog) Next(id string) string {
	return c.step(id, 1)
}

// Prev returns the ID of the category before id, wrapping around.
func (c Catalog) Prev(id string) string {
	return c.step(id, -1)
}

func (c Catalog) step(id string, delta int) string {
	n := len(c.Categories)
	if n == 0 {
		return c.Default()
	}
	for i, cat := range c.Categories {
		if cat.ID == id {
			return c.Categories[((i+delta)%n+n)%n].ID
		}
	}
	return c.Default()
}

// DisplayName returns the category name, or the ID if unknown.
func (c Catalog) DisplayName(id string) string {
	if cat, ok := c.Find(id); ok && cat.Name != "" {
		return cat.Name
	}
	return id
}
