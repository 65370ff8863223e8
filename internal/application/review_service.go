package application

import (
	"context"
	"errors"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

// maxReviewsPerProduct caps how many reviews one user may leave on a
// single product.
const maxReviewsPerProduct = 3

// ReviewService manages product reviews.
type ReviewService struct {
	Reviews  repository.ReviewRepository
	Products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{Reviews: reviews, Products: products}
}

// Create adds a review, enforcing the per-user cap on the product.
func (s *ReviewService) Create(ctx context.Context, authorID, productID, comment string) (*entity.Review, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	n, err := s.Reviews.CountByAuthorAndProduct(ctx, authorID, productID)
	if err != nil {
		return nil, err
	}
	if n >= maxReviewsPerProduct {
		return nil, ErrReviewLimit
	}

	r := &entity.Review{Comment: comment, AuthorID: authorID, ProductID: productID}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return s.Reviews.GetByID(ctx, r.ID)
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	return s.Reviews.ListByProduct(ctx, productID)
}

// Delete removes a review; only its author may do so.
func (s *ReviewService) Delete(ctx context.Context, actorID, id string) error {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if r.AuthorID != actorID {
		return ErrForbidden
	}
	return s.Reviews.Delete(ctx, id)
}
