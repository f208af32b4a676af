package repository

import (
	"context"
	"database/sql"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

const productColumns = `id, name, slug, description, short_desc, long_desc, price, discount, stock, thumb_image,
	is_new, is_featured, is_trending, is_best_seller, is_active, brand_id, category_id, created_at`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	q := `INSERT INTO products (name, slug, description, short_desc, long_desc, price, discount, stock, thumb_image,
		is_new, is_featured, is_trending, is_best_seller, is_active, brand_id, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Slug, p.Description, p.ShortDesc, p.LongDesc, p.Price, p.Discount,
		p.Stock, p.ThumbImage, p.IsNew, p.IsFeatured, p.IsTrending, p.IsBestSeller, p.IsActive, p.BrandID, p.CategoryID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return r.withVariants(ctx, row)
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)
	return r.withVariants(ctx, row)
}

func (r *ProductRepository) List(ctx context.Context, spec query.Spec) ([]entity.Product, error) {
	q, args := spec.SQL(`SELECT ` + productColumns + ` FROM products`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "products", where, args)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	q := `UPDATE products SET name = ?, slug = ?, description = ?, short_desc = ?, long_desc = ?, price = ?,
		discount = ?, stock = ?, thumb_image = ?, is_new = ?, is_featured = ?, is_trending = ?, is_best_seller = ?,
		is_active = ?, brand_id = ?, category_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, p.Name, p.Slug, p.Description, p.ShortDesc, p.LongDesc, p.Price, p.Discount,
		p.Stock, p.ThumbImage, p.IsNew, p.IsFeatured, p.IsTrending, p.IsBestSeller, p.IsActive, p.BrandID, p.CategoryID, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// BestSellers ranks products by units sold across completed orders.
func (r *ProductRepository) BestSellers(ctx context.Context, limit, offset int) ([]entity.BestSeller, error) {
	q := `SELECT p.id, p.name, p.slug, p.description, p.short_desc, p.long_desc, p.price, p.discount, p.stock,
		p.thumb_image, p.is_new, p.is_featured, p.is_trending, p.is_best_seller, p.is_active, p.brand_id, p.category_id,
		p.created_at, SUM(oi.quantity) AS total_sold
		FROM products p
		JOIN product_variants v ON v.product_id = p.id
		JOIN order_items oi ON oi.variant_id = v.id
		JOIN orders o ON o.id = oi.order_id AND o.status = 'COMPLETED'
		GROUP BY p.id
		ORDER BY total_sold DESC
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []entity.BestSeller
	for rows.Next() {
		var s entity.BestSeller
		var desc, shortDesc, longDesc, thumb sql.NullString
		p := &s.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Slug, &desc, &shortDesc, &longDesc, &p.Price, &p.Discount, &p.Stock,
			&thumb, &p.IsNew, &p.IsFeatured, &p.IsTrending, &p.IsBestSeller, &p.IsActive, &p.BrandID, &p.CategoryID,
			&p.CreatedAt, &s.TotalSold)
		if err != nil {
			return nil, err
		}
		p.Description, p.ShortDesc, p.LongDesc, p.ThumbImage = desc.String, shortDesc.String, longDesc.String, thumb.String
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *ProductRepository) withVariants(ctx context.Context, row *sql.Row) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}

	q := `SELECT id, product_id, sku, size, image, price, stock, low_stock_threshold, created_at
		FROM product_variants WHERE product_id = ?`
	rows, err := r.db.QueryContext(ctx, q, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, *v)
	}
	return p, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*entity.Product, error) {
	p := &entity.Product{}
	var desc, shortDesc, longDesc, thumb sql.NullString
	err := s.Scan(&p.ID, &p.Name, &p.Slug, &desc, &shortDesc, &longDesc, &p.Price, &p.Discount, &p.Stock, &thumb,
		&p.IsNew, &p.IsFeatured, &p.IsTrending, &p.IsBestSeller, &p.IsActive, &p.BrandID, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Description, p.ShortDesc, p.LongDesc, p.ThumbImage = desc.String, shortDesc.String, longDesc.String, thumb.String
	return p, nil
}
