package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewSelect = `
	SELECT r.id, r.comment, r.author_id, r.product_id, r.created_at, u.name
	FROM reviews r
	JOIN users u ON u.id = r.author_id`

func scanReview(row pgx.Row) (*entity.Review, error) {
	rv := &entity.Review{}
	var authorName string
	if err := row.Scan(&rv.ID, &rv.Comment, &rv.AuthorID, &rv.ProductID, &rv.CreatedAt, &authorName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	rv.Author = &entity.Redacted{ID: rv.AuthorID, Name: authorName}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (comment, author_id, product_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rv.Comment, rv.AuthorID, rv.ProductID)
	return row.Scan(&rv.ID, &rv.CreatedAt)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+` WHERE r.product_id = $1 ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) CountByAuthorAndProduct(ctx context.Context, authorID, productID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM reviews WHERE author_id = $1 AND product_id = $2`,
		authorID, productID).Scan(&n)
	return n, err
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
