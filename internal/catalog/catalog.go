// Package catalog serves the read-only restaurant menu.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/pkg/slug"
)

//go:embed menu.yaml
var defaultMenu string

// MinQueryLength is the shortest query Search answers.
const MinQueryLength = 2

type menuFile struct {
	Items []menuEntry `yaml:"items"`
}

// menuEntry mirrors the data attributes of a menu card; the price is text.
type menuEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
	Image    string `yaml:"img"`
}

// Catalog is an immutable, ordered menu.
type Catalog struct {
	items      []domain.MenuItem
	byID       map[string]int
	categories []string
}

// Default returns the menu compiled into the binary.
func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultMenu))
}

// LoadFile reads a menu from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a YAML menu. Entries without a name are rejected; a missing id
// is derived from the name. Prices that do not parse become 0.
func Load(r io.Reader) (*Catalog, error) {
	var file menuFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(file.Items))}
	seenCategory := make(map[string]bool)

	for i, e := range file.Items {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("menu entry %d: name is required", i)
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = slug.Generate(name)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("menu entry %d: duplicate id %q", i, id)
		}
		category := strings.ToLower(strings.TrimSpace(e.Category))

		c.byID[id] = len(c.items)
		c.items = append(c.items, domain.MenuItem{
			ID:       id,
			Name:     name,
			Price:    domain.ParsePrice(e.Price).InexactFloat64(),
			Category: category,
			Image:    e.Image,
		})
		if category != "" && !seenCategory[category] {
			seenCategory[category] = true
			c.categories = append(c.categories, category)
		}
	}
	return c, nil
}

// All returns every item in menu order.
func (c *Catalog) All() []domain.MenuItem {
	return append([]domain.MenuItem(nil), c.items...)
}

// ErrEmptyMenu is reported by Check when there is nothing to order.
var ErrEmptyMenu = errors.New("menu has no items")

// Check is a readiness probe: an empty menu leaves the site usable but bare.
func (c *Catalog) Check(context.Context) error {
	if len(c.items) == 0 {
		return ErrEmptyMenu
	}
	return nil
}

// Find looks an item up by id.
func (c *Catalog) Find(id string) (domain.MenuItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.MenuItem{}, false
	}
	return c.items[i], true
}

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Filter returns the items of one category. "", "*" and "all" select the
// whole menu; matching ignores case. A leading "." as used by filter buttons
// is ignored too.
func (c *Catalog) Filter(category string) []domain.MenuItem {
	category = strings.ToLower(strings.TrimSpace(category))
	category = strings.TrimPrefix(category, ".")
	if category == "" || category == "*" || category == "all" {
		return c.All()
	}

	out := []domain.MenuItem{}
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search returns items whose name or category contains query, ignoring case
// and surrounding spaces. Queries shorter than MinQueryLength return nothing.
func (c *Catalog) Search(query string) []domain.MenuItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []domain.MenuItem{}
	if len([]rune(query)) < MinQueryLength {
		return out
	}

	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), query) || strings.Contains(item.Category, query) {
			out = append(out, item)
		}
	}
	return out
}
