package catalog

import (
	"fmt"
	"strings"
)

// Entry pairs the literal key a user replies with and its display label.
type Entry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Catalog is an ordered key→label mapping. Keys are matched verbatim
// against user input, never parsed as numbers.
type Catalog struct {
	name    string
	entries []Entry
	index   map[string]string
}

// New validates the entries and builds a Catalog. Meant to run at startup
// so a malformed menu fails the boot instead of a conversation.
func New(name string, entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %q has no entries", name)
	}

	index := make(map[string]string, len(entries))
	for i, e := range entries {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return nil, fmt.Errorf("catalog %q entry %d has an empty key", name, i)
		}
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("catalog %q key %q has an empty label", name, key)
		}
		if _, dup := index[key]; dup {
			return nil, fmt.Errorf("catalog %q has duplicate key %q", name, key)
		}
		index[key] = e.Label
	}

	return &Catalog{
		name:    name,
		entries: append([]Entry(nil), entries...),
		index:   index,
	}, nil
}

// Name returns the catalog identifier used in logs.
func (c *Catalog) Name() string {
	return c.name
}

// Lookup resolves a verbatim user reply to its label.
func (c *Catalog) Lookup(key string) (string, bool) {
	label, ok := c.index[key]
	return label, ok
}

// Entries returns the entries in menu order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// SeedServices provides the default painting service menu.
func SeedServices() []Entry {
	return []Entry{
		{Key: "1", Label: "Interior house painting"},
		{Key: "2", Label: "Exterior house painting"},
		{Key: "3", Label: "Villa painting service"},
		{Key: "4", Label: "Decorative wall painting"},
		{Key: "5", Label: "Kids room painting"},
		{Key: "6", Label: "Commercial building painting"},
		{Key: "7", Label: "Office painting"},
		{Key: "8", Label: "Apartment paint"},
		{Key: "9", Label: "Home painting"},
		{Key: "10", Label: "other options"},
	}
}

// SeedSlots provides the default site visit time slots.
func SeedSlots() []Entry {
	return []Entry{
		{Key: "1", Label: "Today 6-8 pm"},
		{Key: "2", Label: "Tomorrow 10-12 am"},
		{Key: "3", Label: "Tomorrow 4-6 pm"},
	}
}
