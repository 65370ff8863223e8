package repository

import (
	"context"

	"marketplace-backend/internal/domain/entity"
)

// ProductFilter narrows and paginates product listings. Zero values mean
// "no constraint"; Status defaults to published at the service layer.
type ProductFilter struct {
	CategoryID string
	MinPrice   float64
	MaxPrice   float64
	Status     string
	SellerID   string
	Sort       string // "created_at" or "-created_at", "price" or "-price"
	Page       int
	Limit      int
}

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]entity.Product, int, error)
	Update(ctx context.Context, p *entity.Product) error
	UpdateStatus(ctx context.Context, id, status string) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Delete(ctx context.Context, id string) error
}
