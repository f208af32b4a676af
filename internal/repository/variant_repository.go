package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

const variantColumns = `id, product_id, sku, size, image, price, stock, low_stock_threshold, created_at`

type VariantRepository struct {
	db *sql.DB
}

func NewVariantRepository(db *sql.DB) *VariantRepository {
	return &VariantRepository{db}
}

func (r *VariantRepository) Create(ctx context.Context, v *entity.Variant) (*entity.Variant, error) {
	q := `INSERT INTO product_variants (product_id, sku, size, image, price, stock, low_stock_threshold) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.ProductID, v.SKU, v.Size, v.Image, v.Price, v.Stock, v.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	v.ID = id
	return v, nil
}

func (r *VariantRepository) GetByID(ctx context.Context, id int64) (*entity.Variant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id = ?`, id)
	return scanVariant(row)
}

func (r *VariantRepository) GetBySKU(ctx context.Context, sku string) (*entity.Variant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE sku = ?`, sku)
	return scanVariant(row)
}

func (r *VariantRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	return variants, rows.Err()
}

func (r *VariantRepository) List(ctx context.Context, spec query.Spec) ([]entity.Variant, error) {
	q, args := spec.SQL(`SELECT ` + variantColumns + ` FROM product_variants`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	return variants, rows.Err()
}

func (r *VariantRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "product_variants", where, args)
}

func (r *VariantRepository) Update(ctx context.Context, v *entity.Variant) (*entity.Variant, error) {
	q := `UPDATE product_variants SET sku = ?, size = ?, image = ?, price = ?, stock = ?, low_stock_threshold = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, v.SKU, v.Size, v.Image, v.Price, v.Stock, v.LowStockThreshold, v.ID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VariantRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM product_variants WHERE id = ?`, id)
	return err
}

// ReserveStock decrements stock only when enough is available; the second
// return value reports whether the reservation applied.
func (r *VariantRepository) ReserveStock(ctx context.Context, id int64, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE product_variants SET stock = stock - ? WHERE id = ? AND stock >= ?`, qty, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *VariantRepository) ReleaseStock(ctx context.Context, id int64, qty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE product_variants SET stock = stock + ? WHERE id = ?`, qty, id)
	return err
}

func scanVariant(s scanner) (*entity.Variant, error) {
	v := &entity.Variant{}
	var image sql.NullString
	err := s.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Size, &image, &v.Price, &v.Stock, &v.LowStockThreshold, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.Image = image.String
	return v, nil
}
