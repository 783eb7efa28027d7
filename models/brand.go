package models

import "strings"

type Brand struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Catalog is the set of brands discovered for a run, in page order.
type Catalog []Brand

// Lookup matches name exactly, ignoring case and surrounding whitespace.
func (c Catalog) Lookup(name string) (Brand, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Brand{}, false
	}
	for _, b := range c {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Brand{}, false
}

func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, b := range c {
		names[i] = b.Name
	}
	return names
}

// Selection is what a selection provider hands back to the core.
type Selection struct {
	Brand Brand
	Pages int
}
