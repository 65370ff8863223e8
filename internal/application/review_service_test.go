package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type memReviewRepo struct {
	reviews map[string]*entity.Review
	nextID  int
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[string]*entity.Review{}}
}

func (m *memReviewRepo) Create(_ context.Context, r *entity.Review) error {
	m.nextID++
	r.ID = fmt.Sprintf("review-%d", m.nextID)
	r.CreatedAt = time.Now()
	cp := *r
	m.reviews[r.ID] = &cp
	return nil
}

func (m *memReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReviewRepo) ListByProduct(_ context.Context, productID string) ([]entity.Review, error) {
	var out []entity.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReviewRepo) CountByAuthorAndProduct(_ context.Context, authorID, productID string) (int, error) {
	n := 0
	for _, r := range m.reviews {
		if r.AuthorID == authorID && r.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (m *memReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func TestReviewCreateCap(t *testing.T) {
	products := newMemProductRepo()
	reviews := newMemReviewRepo()
	svc := NewReviewService(reviews, products)
	ctx := context.Background()

	p := seedProduct(t, products, "seller-1", entity.ProductPublished, 10)

	for i := 0; i < maxReviewsPerProduct; i++ {
		if _, err := svc.Create(ctx, "user-1", p.ID, "nice"); err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
	}
	if _, err := svc.Create(ctx, "user-1", p.ID, "one too many"); !errors.Is(err, ErrReviewLimit) {
		t.Errorf("over the cap: got %v, want ErrReviewLimit", err)
	}

	// The cap is per user per product.
	if _, err := svc.Create(ctx, "user-2", p.ID, "fine by me"); err != nil {
		t.Errorf("other user blocked: %v", err)
	}
	p2 := seedProduct(t, products, "seller-1", entity.ProductPublished, 10)
	if _, err := svc.Create(ctx, "user-1", p2.ID, "fresh product"); err != nil {
		t.Errorf("other product blocked: %v", err)
	}
}

func TestReviewCreateUnknownProduct(t *testing.T) {
	svc := NewReviewService(newMemReviewRepo(), newMemProductRepo())
	if _, err := svc.Create(context.Background(), "user-1", "missing", "hello"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestReviewDelete(t *testing.T) {
	products := newMemProductRepo()
	reviews := newMemReviewRepo()
	svc := NewReviewService(reviews, products)
	ctx := context.Background()

	p := seedProduct(t, products, "seller-1", entity.ProductPublished, 10)
	r, err := svc.Create(ctx, "author-1", p.ID, "mine")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "someone-else", r.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, "author-1", r.ID); err != nil {
		t.Errorf("own delete: %v", err)
	}
	if err := svc.Delete(ctx, "author-1", r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}
