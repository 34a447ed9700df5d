package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CategoryService manages product categories. Names are unique.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryPatch carries optional category fields.
type CategoryPatch struct {
	Name        *string
	Description *string
	Image       *string
}

// List returns every category. The result is never nil.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a category, rejecting a name that is already taken.
func (s *CategoryService) Create(ctx context.Context, name, description, image string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.ensureFree(ctx, name, ""); err != nil {
		return nil, err
	}
	c := &models.Category{Name: name, Description: description, Image: image}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("category '%s': %w", name, ErrDuplicateCategory)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// Update applies the provided fields of patch to a category.
func (s *CategoryService) Update(ctx context.Context, id string, patch CategoryPatch) (*models.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		if name != c.Name {
			if err := s.ensureFree(ctx, name, c.ID); err != nil {
				return nil, err
			}
		}
		c.Name = name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Image != nil {
		c.Image = *patch.Image
	}
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("category '%s': %w", c.Name, ErrDuplicateCategory)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// Delete removes a category by ID.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CategoryService) ensureFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID != selfID:
		return fmt.Errorf("category '%s': %w", name, ErrDuplicateCategory)
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("failed to look up category: %w", err)
	}
	return nil
}
