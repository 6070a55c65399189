// Package category holds catalog categories. Names are unique.
package category

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory constructor")

type Category struct {
	id          kernel.UUID
	name        string
	description string

	isConstructed bool
}

func NewCategory(id kernel.UUID, name, description string) (*Category, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("category name")
	}
	return &Category{
		id:            id,
		name:          name,
		description:   strings.TrimSpace(description),
		isConstructed: true,
	}, nil
}

func (c *Category) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCategoryIsNotConstructed
	}
	return nil
}

func (c *Category) ID() kernel.UUID     { return c.id }
func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }
