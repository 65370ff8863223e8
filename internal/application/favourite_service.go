package application

import (
	"context"
	"errors"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

// FavouriteService manages saved products.
type FavouriteService struct {
	Favourites repository.FavouriteRepository
	Products   repository.ProductRepository
}

func NewFavouriteService(favourites repository.FavouriteRepository, products repository.ProductRepository) *FavouriteService {
	return &FavouriteService{Favourites: favourites, Products: products}
}

// Toggle saves the product for the user, or removes the save if it already
// exists. It reports whether the product is saved afterwards.
func (s *FavouriteService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	existing, err := s.Favourites.Get(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.Favourites.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, repository.ErrNotFound):
		f := &entity.Favourite{UserID: userID, ProductID: productID}
		if err := s.Favourites.Create(ctx, f); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

func (s *FavouriteService) ListByUser(ctx context.Context, userID string) ([]entity.Favourite, error) {
	return s.Favourites.ListByUser(ctx, userID)
}
