package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

// ProductService manages listings. Writes go to the primary store first;
// the search index is updated best-effort afterwards and never blocks or
// fails a write.
type ProductService struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	ES         *elasticsearch.Client
	ESIndex    string
	Logger     *logrus.Logger
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProductService {
	return &ProductService{Products: products, Categories: categories, ES: es, ESIndex: esIndex, Logger: logger}
}

type ProductInput struct {
	Title        string
	Description  string
	Price        float64
	CategoryID   string
	CategoryName string
	Status       string
	Images       []string
}

// Create makes a listing for the seller. The category may be given by ID or
// by name; an unknown name is created on the fly with a derived slug.
func (s *ProductService) Create(ctx context.Context, sellerID string, in ProductInput) (*entity.Product, error) {
	categoryID, err := s.resolveCategory(ctx, in.CategoryID, in.CategoryName)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.ProductDraft
	}
	if !entity.ValidProductStatus(status) {
		return nil, ErrInvalidStatus
	}

	p := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Status:      status,
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Images:      in.Images,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}

	p, err = s.Products.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns a page of listings. Without an explicit status filter only
// published listings are shown; drafts stay private to their seller.
func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int, error) {
	if f.Status == "" {
		f.Status = entity.ProductPublished
	} else if !entity.ValidProductStatus(f.Status) {
		return nil, 0, ErrInvalidStatus
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.Products.List(ctx, f)
}

// ListMine returns all of the seller's own listings regardless of status.
func (s *ProductService) ListMine(ctx context.Context, sellerID string, page, limit int) ([]entity.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Products.List(ctx, repository.ProductFilter{SellerID: sellerID, Page: page, Limit: limit})
}

// Update edits a listing; only its seller may do so.
func (s *ProductService) Update(ctx context.Context, actorID, id string, in ProductInput) (*entity.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != actorID {
		return nil, ErrForbidden
	}

	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.CategoryID != "" || in.CategoryName != "" {
		categoryID, err := s.resolveCategory(ctx, in.CategoryID, in.CategoryName)
		if err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if in.Images != nil {
		p.Images = in.Images
	}

	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	p, err = s.Products.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// UpdateStatus moves a listing between draft, published, sold and archived.
func (s *ProductService) UpdateStatus(ctx context.Context, actorID, id, status string) (*entity.Product, error) {
	if !entity.ValidProductStatus(status) {
		return nil, ErrInvalidStatus
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != actorID {
		return nil, ErrForbidden
	}
	p, err = s.Products.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Delete removes a listing; only its seller may do so.
func (s *ProductService) Delete(ctx context.Context, actorID, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.SellerID != actorID {
		return ErrForbidden
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return err
	}
	s.deindex(ctx, id)
	return nil
}

// productDoc is the search-index projection of a listing.
type productDoc struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	SellerID     string  `json:"seller_id"`
}

// Search runs a full-text query over published listings. When the search
// backend is not configured it degrades to a primary-store listing.
func (s *ProductService) Search(ctx context.Context, query string, page, limit int) ([]entity.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if s.ES == nil || strings.TrimSpace(query) == "" {
		return s.List(ctx, repository.ProductFilter{Page: page, Limit: limit})
	}

	body := map[string]any{
		"from": (page - 1) * limit,
		"size": limit,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  query,
						"fields": []string{"title^2", "description", "category_name"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": entity.ProductPublished},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, 0, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	// Hydrate hits from the primary store so responses carry the same shape
	// as regular listings. Stale index entries are skipped.
	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p, err := s.Products.GetByID(ctx, h.Source.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, parsed.Hits.Total.Value, nil
}

func (s *ProductService) index(ctx context.Context, p *entity.Product) {
	if s.ES == nil {
		return
	}
	doc := productDoc{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Status:      p.Status,
		CategoryID:  p.CategoryID,
		SellerID:    p.SellerID,
	}
	if p.Category != nil {
		doc.CategoryName = p.Category.Name
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		s.logIndexErr(p.ID, err)
		return
	}
	res, err := s.ES.Index(s.ESIndex, bytes.NewReader(payload),
		s.ES.Index.WithDocumentID(p.ID),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		s.logIndexErr(p.ID, err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logIndexErr(p.ID, fmt.Errorf("index: %s", res.Status()))
	}
}

func (s *ProductService) deindex(ctx context.Context, id string) {
	if s.ES == nil {
		return
	}
	res, err := s.ES.Delete(s.ESIndex, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		s.logIndexErr(id, err)
		return
	}
	res.Body.Close()
}

func (s *ProductService) logIndexErr(id string, err error) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", id).Warn("search index update failed")
	}
}

// resolveCategory returns the category ID for an explicit ID or a name,
// creating the category when the name is new.
func (s *ProductService) resolveCategory(ctx context.Context, id, name string) (string, error) {
	if id != "" {
		c, err := s.Categories.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
		return c.ID, nil
	}
	if name == "" {
		return "", ErrNotFound
	}
	c, err := s.Categories.GetByName(ctx, name)
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	nc := &entity.Category{Name: name, Slug: Slugify(name)}
	if err := s.Categories.Create(ctx, nc); err != nil {
		return "", err
	}
	return nc.ID, nil
}

// Slugify lowercases a name and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
