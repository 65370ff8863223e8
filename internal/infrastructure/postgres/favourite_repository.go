package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type FavouriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavouriteRepository(pool *pgxpool.Pool) *FavouriteRepository {
	return &FavouriteRepository{pool: pool}
}

func (r *FavouriteRepository) Get(ctx context.Context, userID, productID string) (*entity.Favourite, error) {
	f := &entity.Favourite{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, product_id, created_at
		FROM favourites WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *FavouriteRepository) Create(ctx context.Context, f *entity.Favourite) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO favourites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO UPDATE SET created_at = favourites.created_at
		RETURNING id, created_at
	`, f.UserID, f.ProductID)
	return row.Scan(&f.ID, &f.CreatedAt)
}

func (r *FavouriteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM favourites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FavouriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Favourite, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.id, f.user_id, f.product_id, f.created_at,
		       p.title, p.price, p.images, p.status
		FROM favourites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Favourite
	for rows.Next() {
		f := entity.Favourite{Product: &entity.Product{}}
		if err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt,
			&f.Product.Title, &f.Product.Price, &f.Product.Images, &f.Product.Status); err != nil {
			return nil, err
		}
		f.Product.ID = f.ProductID
		out = append(out, f)
	}
	return out, rows.Err()
}

var _ repository.FavouriteRepository = (*FavouriteRepository)(nil)
