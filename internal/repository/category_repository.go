package repository

import (
	"context"
	"database/sql"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	q := `INSERT INTO categories (name, slug, description, image) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, category.Name, category.Slug, category.Description, category.Image)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	category.ID = id
	return category, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	q := `SELECT id, name, slug, description, image, created_at FROM categories WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	q := `SELECT id, name, slug, description, image, created_at FROM categories WHERE slug = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, slug))
}

func (r *CategoryRepository) List(ctx context.Context, spec query.Spec) ([]entity.Category, error) {
	q, args := spec.SQL(`SELECT id, name, slug, description, image, created_at FROM categories`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var c entity.Category
		var desc, image sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &desc, &image, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Description, c.Image = desc.String, image.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "categories", where, args)
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	q := `UPDATE categories SET name = ?, slug = ?, description = ?, image = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, category.Name, category.Slug, category.Description, category.Image, category.ID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (r *CategoryRepository) scanOne(row *sql.Row) (*entity.Category, error) {
	category := &entity.Category{}
	var desc, image sql.NullString
	err := row.Scan(&category.ID, &category.Name, &category.Slug, &desc, &image, &category.CreatedAt)
	if err != nil {
		return nil, err
	}
	category.Description, category.Image = desc.String, image.String
	return category, nil
}
