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

type memCategoryRepo struct {
	categories map[string]*entity.Category
	nextID     int
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]*entity.Category{}}
}

func (m *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	m.nextID++
	c.ID = fmt.Sprintf("cat-%d", m.nextID)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func newTestProductService() (*ProductService, *memProductRepo, *memCategoryRepo) {
	products := newMemProductRepo()
	categories := newMemCategoryRepo()
	// no search backend in unit tests; the service must degrade cleanly
	svc := NewProductService(products, categories, nil, "products", quietLogger())
	return svc, products, categories
}

func TestProductCreateWithNewCategoryName(t *testing.T) {
	svc, _, categories := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "seller-1", ProductInput{
		Title:        "City Bike",
		Price:        120,
		CategoryName: "Sports & Outdoors",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != entity.ProductDraft {
		t.Errorf("default status = %q, want draft", p.Status)
	}

	cat, err := categories.GetByName(ctx, "Sports & Outdoors")
	if err != nil {
		t.Fatalf("category not created: %v", err)
	}
	if cat.Slug != "sports-outdoors" {
		t.Errorf("slug = %q, want sports-outdoors", cat.Slug)
	}
	if p.CategoryID != cat.ID {
		t.Errorf("product category = %q, want %q", p.CategoryID, cat.ID)
	}

	// Reusing the name does not duplicate the category.
	p2, err := svc.Create(ctx, "seller-1", ProductInput{Title: "Helmet", Price: 30, CategoryName: "Sports & Outdoors"})
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if p2.CategoryID != cat.ID {
		t.Errorf("second product category = %q, want %q", p2.CategoryID, cat.ID)
	}
}

func TestProductOwnership(t *testing.T) {
	svc, _, _ := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "seller-1", ProductInput{Title: "Lamp", Price: 15, CategoryName: "Home"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, "someone-else", p.ID, ProductInput{Title: "Stolen"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign update: got %v, want ErrForbidden", err)
	}
	if _, err := svc.UpdateStatus(ctx, "someone-else", p.ID, entity.ProductPublished); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign status change: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, "someone-else", p.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete: got %v, want ErrForbidden", err)
	}

	got, err := svc.UpdateStatus(ctx, "seller-1", p.ID, entity.ProductPublished)
	if err != nil {
		t.Fatalf("own status change: %v", err)
	}
	if got.Status != entity.ProductPublished {
		t.Errorf("status = %q", got.Status)
	}
	if _, err := svc.UpdateStatus(ctx, "seller-1", p.ID, "melted"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bad status: got %v, want ErrInvalidStatus", err)
	}
}

func TestProductListDefaultsToPublished(t *testing.T) {
	svc, products, _ := newTestProductService()
	ctx := context.Background()

	seedProduct(t, products, "seller-1", entity.ProductDraft, 10)
	seedProduct(t, products, "seller-1", entity.ProductPublished, 10)
	seedProduct(t, products, "seller-2", entity.ProductSold, 10)

	items, total, err := svc.List(ctx, repository.ProductFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Status != entity.ProductPublished {
		t.Errorf("items=%d total=%d", len(items), total)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Electronics", "electronics"},
		{"Home & Garden", "home-garden"},
		{"  Spaced  Out  ", "spaced-out"},
		{"Crème brûlée!!", "cr-me-br-l-e"},
		{"100% Cotton", "100-cotton"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
