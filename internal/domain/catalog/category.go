package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// Category groups products; categories form a tree via ParentID
type Category struct {
	shared.BaseEntity
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

// NewCategory creates a category. An empty slug is derived from the name.
func NewCategory(name, slug string, parentID *uuid.UUID) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity()}
	if err := c.Update(name, slug); err != nil {
		return nil, err
	}
	if err := c.SetParent(parentID); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes name and slug
func (c *Category) Update(name, slug string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateSlug(slug); err != nil {
		return err
	}
	c.Name = name
	c.Slug = slug
	c.Touch()
	return nil
}

// SetParent moves the category under another one; nil makes it a root
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.Touch()
	return nil
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 255 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" || len(slug) > 255 || !slugRegex.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug may contain only lowercase letters, digits, hyphens and underscores")
	}
	return nil
}
