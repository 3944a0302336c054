package domain

import "strings"

type Category struct {
	ID   int64
	Name string
}

func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 50 {
		return nil, ErrValidation("category name must be 3-50 chars")
	}
	return &Category{Name: name}, nil
}

func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 50 {
		return ErrValidation("category name must be 3-50 chars")
	}
	c.Name = name
	return nil
}
