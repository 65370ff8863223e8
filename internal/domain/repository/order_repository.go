package repository

import (
	"context"

	"marketplace-backend/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]entity.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.Review, error)
	CountByAuthorAndProduct(ctx context.Context, authorID, productID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type FavouriteRepository interface {
	Get(ctx context.Context, userID, productID string) (*entity.Favourite, error)
	Create(ctx context.Context, f *entity.Favourite) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]entity.Favourite, error)
}
