package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productSelect = `
	SELECT p.id, p.title, p.description, p.price, p.status, p.seller_id, p.category_id,
	       p.images, p.created_at, p.updated_at,
	       c.name, c.slug,
	       u.name, u.email, u.avatar_url
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.seller_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	var catName, catSlug string
	var sellerName, sellerEmail, sellerAvatar string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Status, &p.SellerID, &p.CategoryID,
		&p.Images, &p.CreatedAt, &p.UpdatedAt,
		&catName, &catSlug,
		&sellerName, &sellerEmail, &sellerAvatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Category = &entity.Category{ID: p.CategoryID, Name: catName, Slug: catSlug}
	p.Seller = &entity.Redacted{ID: p.SellerID, Name: sellerName, Email: sellerEmail, AvatarURL: sellerAvatar}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if p.Status == "" {
		p.Status = entity.ProductDraft
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, description, price, status, seller_id, category_id, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Price, p.Status, p.SellerID, p.CategoryID, p.Images)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int, error) {
	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "p.status = "+arg(f.Status))
	}
	if f.CategoryID != "" {
		where = append(where, "p.category_id = "+arg(f.CategoryID))
	}
	if f.SellerID != "" {
		where = append(where, "p.seller_id = "+arg(f.SellerID))
	}
	if f.MinPrice > 0 {
		where = append(where, "p.price >= "+arg(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		where = append(where, "p.price <= "+arg(f.MaxPrice))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM products p WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "p.created_at DESC"
	switch f.Sort {
	case "created_at":
		order = "p.created_at ASC"
	case "price":
		order = "p.price ASC"
	case "-price":
		order = "p.price DESC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	q := productSelect + " WHERE " + cond + " ORDER BY " + order +
		" LIMIT " + arg(limit) + " OFFSET " + arg((page-1)*limit)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET title = $1, description = $2, price = $3, status = $4, category_id = $5,
		    images = $6, updated_at = $7
		WHERE id = $8
	`, p.Title, p.Description, p.Price, p.Status, p.CategoryID, p.Images, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Product, error) {
	if _, err := r.pool.Exec(ctx, `
		UPDATE products SET status = $1, updated_at = now() WHERE id = $2
	`, status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
