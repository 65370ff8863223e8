package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderSelect = `
	SELECT o.id, o.buyer_id, o.seller_id, o.product_id, o.quantity, o.total_price,
	       o.status, o.type, o.created_at, o.updated_at,
	       p.title, p.price, p.images,
	       b.name, b.email,
	       s.name, s.email, s.avatar_url
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN users b ON b.id = o.buyer_id
	JOIN users s ON s.id = o.seller_id`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	o := &entity.Order{Product: &entity.Product{}, Buyer: &entity.Redacted{}, Seller: &entity.Redacted{}}
	err := row.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.Quantity, &o.TotalPrice,
		&o.Status, &o.Type, &o.CreatedAt, &o.UpdatedAt,
		&o.Product.Title, &o.Product.Price, &o.Product.Images,
		&o.Buyer.Name, &o.Buyer.Email,
		&o.Seller.Name, &o.Seller.Email, &o.Seller.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	o.Product.ID = o.ProductID
	o.Buyer.ID = o.BuyerID
	o.Seller.ID = o.SellerID
	return o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (buyer_id, seller_id, product_id, quantity, total_price, status, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, o.BuyerID, o.SellerID, o.ProductID, o.Quantity, o.TotalPrice, o.Status, o.Type)
	return row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
}

func (r *OrderRepository) listBy(ctx context.Context, column, id string) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, orderSelect+` WHERE o.`+column+` = $1 ORDER BY o.created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]entity.Order, error) {
	return r.listBy(ctx, "buyer_id", buyerID)
}

func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID string) ([]entity.Order, error) {
	return r.listBy(ctx, "seller_id", sellerID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
