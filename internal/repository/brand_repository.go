package repository

import (
	"context"
	"database/sql"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type BrandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) *BrandRepository {
	return &BrandRepository{db}
}

func (r *BrandRepository) Create(ctx context.Context, brand *entity.Brand) (*entity.Brand, error) {
	q := `INSERT INTO brands (name, slug, country, logo_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, brand.Name, brand.Slug, brand.Country, brand.LogoURL)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	brand.ID = id
	return brand, nil
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	q := `SELECT id, name, slug, country, logo_url, created_at FROM brands WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *BrandRepository) GetBySlug(ctx context.Context, slug string) (*entity.Brand, error) {
	q := `SELECT id, name, slug, country, logo_url, created_at FROM brands WHERE slug = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, slug))
}

func (r *BrandRepository) List(ctx context.Context, spec query.Spec) ([]entity.Brand, error) {
	q, args := spec.SQL(`SELECT id, name, slug, country, logo_url, created_at FROM brands`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []entity.Brand
	for rows.Next() {
		var b entity.Brand
		var country, logo sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &country, &logo, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Country, b.LogoURL = country.String, logo.String
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "brands", where, args)
}

func (r *BrandRepository) Update(ctx context.Context, brand *entity.Brand) (*entity.Brand, error) {
	q := `UPDATE brands SET name = ?, slug = ?, country = ?, logo_url = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, brand.Name, brand.Slug, brand.Country, brand.LogoURL, brand.ID)
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	return err
}

func (r *BrandRepository) scanOne(row *sql.Row) (*entity.Brand, error) {
	brand := &entity.Brand{}
	var country, logo sql.NullString
	err := row.Scan(&brand.ID, &brand.Name, &brand.Slug, &country, &logo, &brand.CreatedAt)
	if err != nil {
		return nil, err
	}
	brand.Country, brand.LogoURL = country.String, logo.String
	return brand, nil
}
