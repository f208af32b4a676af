package repository

import (
	"context"
	"database/sql"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	q := `INSERT INTO reviews (product_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, review.ProductID, review.UserID, review.Rating, review.Comment)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	review.ID = id
	return review, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	review := &entity.Review{}
	var comment sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, product_id, user_id, rating, comment, created_at FROM reviews WHERE id = ?`, id).
		Scan(&review.ID, &review.ProductID, &review.UserID, &review.Rating, &comment, &review.CreatedAt)
	if err != nil {
		return nil, err
	}
	review.Comment = comment.String
	return review, nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]entity.Review, error) {
	q := `SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.created_at, u.name, p.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN products p ON p.id = r.product_id
		WHERE r.product_id = ?
		ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *ReviewRepository) List(ctx context.Context, spec query.Spec) ([]entity.Review, error) {
	q, args := spec.SQL(`SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.created_at, u.name, p.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN products p ON p.id = r.product_id`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *ReviewRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	q := `SELECT COUNT(*) FROM reviews r JOIN users u ON u.id = r.user_id JOIN products p ON p.id = r.product_id`
	if where != "" {
		q += " WHERE " + where
	}
	var total int64
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&total)
	return total, err
}

func (r *ReviewRepository) Update(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	q := `UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, review.Rating, review.Comment, review.ID)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	return err
}

func scanReviews(rows *sql.Rows) ([]entity.Review, error) {
	var reviews []entity.Review
	for rows.Next() {
		var rv entity.Review
		var comment sql.NullString
		err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &comment, &rv.CreatedAt, &rv.UserName, &rv.ProductName)
		if err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
