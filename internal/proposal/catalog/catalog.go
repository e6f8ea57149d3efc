// Package catalog holds the read-only service catalog: categories of priced,
// approach-dependent service items. The catalog is embedded in the binary and
// validated once at load time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"proposal-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// Recurring marks an item billed monthly instead of once.
type Recurring struct {
	Monthly int `json:"monthly"`
}

// Item is one service line. Items are values; the catalog never hands out
// references into its own storage.
type Item struct {
	ID          string              `json:"id"`
	Label       string              `json:"label"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Days        ByApproach[float64] `json:"days"`
	Price       ByApproach[int]     `json:"price"`
	Recurring   *Recurring          `json:"recurring,omitempty"`
	Essential   bool                `json:"essential"`
}

// IsRecurring reports whether the item contributes to the monthly total
// instead of the one-off total.
func (i Item) IsRecurring() bool {
	return i.Recurring != nil
}

// Monthly returns the recurring monthly cost, zero for one-off items.
func (i Item) Monthly() int {
	if i.Recurring == nil {
		return 0
	}
	return i.Recurring.Monthly
}

func (i Item) clone() Item {
	if i.Recurring != nil {
		r := *i.Recurring
		i.Recurring = &r
	}
	return i
}

// Category is an ordered group of items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
}

func (c Category) clone() Category {
	items := make([]Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = it.clone()
	}
	c.Items = items
	return c
}

// Catalog is immutable after Load.
type Catalog struct {
	version    string
	categories []Category
	items      []Item
	itemIndex  map[string]int
	ownerIndex map[string]int
	catIndex   map[string]int
}

type document struct {
	Version    string     `json:"version"`
	Categories []Category `json:"categories"`
}

//go:embed catalog.json
var catalogJSON []byte

//go:embed catalog.schema.json
var catalogSchema []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded restaurant catalog. A malformed embedded
// catalog is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(catalogJSON)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded catalog.json: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewCatalogInvalidError([]string{err.Error()})
	}

	if problems := checkInvariants(doc); len(problems) > 0 {
		return nil, errors.NewCatalogInvalidError(problems)
	}

	c := &Catalog{
		version:    doc.Version,
		categories: doc.Categories,
		itemIndex:  make(map[string]int),
		ownerIndex: make(map[string]int),
		catIndex:   make(map[string]int, len(doc.Categories)),
	}
	for ci, cat := range doc.Categories {
		c.catIndex[cat.ID] = ci
		for _, it := range cat.Items {
			c.itemIndex[it.ID] = len(c.items)
			c.ownerIndex[it.ID] = ci
			c.items = append(c.items, it)
		}
	}
	return c, nil
}

func validateSchema(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return errors.NewCatalogInvalidError([]string{err.Error()})
	}
	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return errors.NewCatalogInvalidError(problems)
	}
	return nil
}

func checkInvariants(doc document) []string {
	var problems []string
	seenItems := make(map[string]string)
	seenCats := make(map[string]bool)

	for _, cat := range doc.Categories {
		if seenCats[cat.ID] {
			problems = append(problems, fmt.Sprintf("duplicate category id %q", cat.ID))
		}
		seenCats[cat.ID] = true

		for _, it := range cat.Items {
			if owner, dup := seenItems[it.ID]; dup {
				problems = append(problems, fmt.Sprintf("duplicate item id %q in %q and %q", it.ID, owner, cat.ID))
			}
			seenItems[it.ID] = cat.ID

			if it.Category != cat.ID {
				problems = append(problems, fmt.Sprintf("item %q declares category %q but is listed under %q", it.ID, it.Category, cat.ID))
			}
			if it.IsRecurring() {
				for _, a := range Approaches() {
					if it.Price.For(a) != 0 || it.Days.For(a) != 0 {
						problems = append(problems, fmt.Sprintf("recurring item %q has non-zero %s price or days", it.ID, a))
						break
					}
				}
			}
		}
	}
	return problems
}

func (c *Catalog) Version() string {
	return c.version
}

// Categories returns the categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.clone()
	}
	return out
}

// Items returns every item in catalog order, regardless of category.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.clone()
	}
	return out
}

// Len is the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Contains(itemID string) bool {
	_, ok := c.itemIndex[itemID]
	return ok
}

func (c *Catalog) Item(itemID string) (Item, bool) {
	i, ok := c.itemIndex[itemID]
	if !ok {
		return Item{}, false
	}
	return c.items[i].clone(), true
}

func (c *Catalog) Category(categoryID string) (Category, bool) {
	i, ok := c.catIndex[categoryID]
	if !ok {
		return Category{}, false
	}
	return c.categories[i].clone(), true
}

// CategoryOf returns the category owning itemID.
func (c *Catalog) CategoryOf(itemID string) (Category, bool) {
	i, ok := c.ownerIndex[itemID]
	if !ok {
		return Category{}, false
	}
	return c.categories[i].clone(), true
}

// CategoryItemIDs returns the ids of a category's items in order, nil for an
// unknown category.
func (c *Catalog) CategoryItemIDs(categoryID string) []string {
	i, ok := c.catIndex[categoryID]
	if !ok {
		return nil
	}
	ids := make([]string, len(c.categories[i].Items))
	for j, it := range c.categories[i].Items {
		ids[j] = it.ID
	}
	return ids
}

// Each calls fn for every item in catalog order without copying the catalog.
func (c *Catalog) Each(fn func(categoryName string, item Item)) {
	for _, cat := range c.categories {
		for _, it := range cat.Items {
			fn(cat.Name, it.clone())
		}
	}
}
