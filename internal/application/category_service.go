package application

import (
	"context"
	"errors"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

// CategoryService manages the category catalogue. Creation is idempotent on
// name; deletion is admin-only and enforced at the routing layer.
type CategoryService struct {
	Categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{Categories: categories}
}

// Create returns the existing category when the name is already taken, so
// repeated creates converge on one row per name.
func (s *CategoryService) Create(ctx context.Context, name string) (*entity.Category, error) {
	if c, err := s.Categories.GetByName(ctx, name); err == nil {
		return c, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	c := &entity.Category{Name: name, Slug: Slugify(name)}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
