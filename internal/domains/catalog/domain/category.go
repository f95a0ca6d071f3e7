package domain

import "strings"

// Category groups products, e.g. "Tablet" in the "Hardware" department.
type Category struct {
	ID          int64
	Name        string
	Department  string
	Description string
}

func NewCategory(id int64, name, department, description string) (*Category, error) {
	c := &Category{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Department:  strings.TrimSpace(department),
		Description: strings.TrimSpace(description),
	}
	if c.Name == "" {
		return nil, ErrEmptyName
	}
	return c, nil
}

// Supplier is the vendor a product is sourced from.
type Supplier struct {
	ID          int64
	Name        string
	Description string
}

func NewSupplier(id int64, name, description string) (*Supplier, error) {
	s := &Supplier{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if s.Name == "" {
		return nil, ErrEmptyName
	}
	return s, nil
}
