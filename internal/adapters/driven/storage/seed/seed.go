// Package seed provides the content served by the demo search backend:
// a built-in data set and a loader for TOML seed files.
package seed

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
)

// Default returns the built-in cost center and WBS data set.
func Default() driven.CatalogSeed {
	catalog := domain.FallbackCatalog()
	catalog.Fallback = false

	return driven.CatalogSeed{
		Catalog: catalog,
		Items: map[string][]domain.ResultItem{
			domain.CategoryCostCenter: {
				{Value: "1000", Label: "1000 - IT Department"},
				{Value: "2000", Label: "2000 - Finance Department"},
				{Value: "3000", Label: "3000 - Marketing Department"},
				{Value: "4000", Label: "4000 - Operations"},
				{Value: "5000", Label: "5000 - Human Resources"},
			},
			domain.CategoryWBS: {
				{Value: "WBS001", Label: "WBS001 - Project Alpha"},
				{Value: "WBS002", Label: "WBS002 - Project Beta"},
				{Value: "WBS003", Label: "WBS003 - Project Gamma"},
				{Value: "WBS004", Label: "WBS004 - Project Delta"},
				{Value: "WBS005", Label: "WBS005 - Project Epsilon"},
			},
		},
	}
}

// file is the on-disk seed format.
//
//	default = "cc"
//
//	[[categories]]
//	id = "cc"
//	name = "Cost Centers"
//
//	[[categories.items]]
//	value = "1000"
//	label = "1000 - IT Department"
type file struct {
	Default    string         `toml:"default"`
	Categories []fileCategory `toml:"categories"`
}

type fileCategory struct {
	ID          string     `toml:"id"`
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	Icon        string     `toml:"icon"`
	Items       []fileItem `toml:"items"`
}

type fileItem struct {
	Value string `toml:"value"`
	Label string `toml:"label"`
}

// Load reads a TOML seed file.
func Load(path string) (driven.CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return driven.CatalogSeed{}, fmt.Errorf("read seed: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML seed content.
func Parse(data []byte) (driven.CatalogSeed, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return driven.CatalogSeed{}, fmt.Errorf("%w: parse seed: %w", domain.ErrInvalidInput, err)
	}
	if len(f.Categories) == 0 {
		return driven.CatalogSeed{}, fmt.Errorf("%w: seed defines no categories", domain.ErrInvalidInput)
	}

	out := driven.CatalogSeed{
		Catalog: domain.Catalog{DefaultID: f.Default},
		Items:   make(map[string][]domain.ResultItem, len(f.Categories)),
	}

	for _, c := range f.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return driven.CatalogSeed{}, fmt.Errorf("%w: category without id", domain.ErrInvalidInput)
		}
		if _, dup := out.Items[id]; dup {
			return driven.CatalogSeed{}, fmt.Errorf("%w: duplicate category %q", domain.ErrInvalidInput, id)
		}

		name := c.Name
		if name == "" {
			name = id
		}
		out.Catalog.Categories = append(out.Catalog.Categories, domain.Category{
			ID:          id,
			Name:        name,
			Description: c.Description,
			Icon:        c.Icon,
		})

		items := make([]domain.ResultItem, 0, len(c.Items))
		for _, it := range c.Items {
			label := it.Label
			if label == "" {
				label = it.Value
			}
			items = append(items, domain.ResultItem{Value: it.Value, Label: label})
		}
		out.Items[id] = items
	}

	if out.Catalog.DefaultID == "" {
		out.Catalog.DefaultID = out.Catalog.Categories[0].ID
	}
	if _, ok := out.Catalog.Find(out.Catalog.DefaultID); !ok {
		return driven.CatalogSeed{}, fmt.Errorf("%w: default category %q is not defined",
			domain.ErrInvalidInput, out.Catalog.DefaultID)
	}
	return out, nil
}
