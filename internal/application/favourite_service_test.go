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

type memFavouriteRepo struct {
	favourites map[string]*entity.Favourite
	nextID     int
}

func newMemFavouriteRepo() *memFavouriteRepo {
	return &memFavouriteRepo{favourites: map[string]*entity.Favourite{}}
}

func (m *memFavouriteRepo) Get(_ context.Context, userID, productID string) (*entity.Favourite, error) {
	for _, f := range m.favourites {
		if f.UserID == userID && f.ProductID == productID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memFavouriteRepo) Create(_ context.Context, f *entity.Favourite) error {
	m.nextID++
	f.ID = fmt.Sprintf("fav-%d", m.nextID)
	f.CreatedAt = time.Now()
	cp := *f
	m.favourites[f.ID] = &cp
	return nil
}

func (m *memFavouriteRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.favourites[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.favourites, id)
	return nil
}

func (m *memFavouriteRepo) ListByUser(_ context.Context, userID string) ([]entity.Favourite, error) {
	var out []entity.Favourite
	for _, f := range m.favourites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func TestFavouriteToggle(t *testing.T) {
	products := newMemProductRepo()
	favs := newMemFavouriteRepo()
	svc := NewFavouriteService(favs, products)
	ctx := context.Background()

	p := seedProduct(t, products, "seller-1", entity.ProductPublished, 10)

	saved, err := svc.Toggle(ctx, "user-1", p.ID)
	if err != nil || !saved {
		t.Fatalf("first toggle: saved=%v err=%v", saved, err)
	}
	list, _ := svc.ListByUser(ctx, "user-1")
	if len(list) != 1 {
		t.Fatalf("favourites = %d, want 1", len(list))
	}

	saved, err = svc.Toggle(ctx, "user-1", p.ID)
	if err != nil || saved {
		t.Fatalf("second toggle: saved=%v err=%v", saved, err)
	}
	list, _ = svc.ListByUser(ctx, "user-1")
	if len(list) != 0 {
		t.Fatalf("favourites = %d, want 0", len(list))
	}

	if _, err := svc.Toggle(ctx, "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product: got %v, want ErrNotFound", err)
	}
}
