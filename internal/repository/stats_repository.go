package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db}
}

// OrderWindow aggregates order count and revenue since the given time.
// Cancelled orders are excluded from revenue.
func (r *StatsRepository) OrderWindow(ctx context.Context, since time.Time) (int64, float64, error) {
	var orders int64
	var revenue float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status != 'CANCELLED' THEN amount ELSE 0 END), 0)
		FROM orders WHERE order_date >= ?`, since).
		Scan(&orders, &revenue)
	return orders, revenue, err
}

type VariantCount struct {
	VariantID   int64  `json:"variant_id"`
	ProductName string `json:"product_name"`
	Total       int    `json:"total"`
}

func (r *StatsRepository) TopSoldVariants(ctx context.Context, limit int) ([]VariantCount, error) {
	q := `SELECT oi.variant_id, oi.product_name, SUM(oi.quantity) AS total
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status = 'COMPLETED'
		GROUP BY oi.variant_id, oi.product_name
		ORDER BY total DESC
		LIMIT ?`
	return r.queryCounts(ctx, q, limit)
}

func (r *StatsRepository) TopCancelledVariants(ctx context.Context, limit int) ([]VariantCount, error) {
	q := `SELECT oi.variant_id, oi.product_name, SUM(oi.quantity) AS total
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status = 'CANCELLED'
		GROUP BY oi.variant_id, oi.product_name
		ORDER BY total DESC
		LIMIT ?`
	return r.queryCounts(ctx, q, limit)
}

func (r *StatsRepository) UserCounts(ctx context.Context) (map[entity.UserRole]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[entity.UserRole]int64)
	for rows.Next() {
		var role entity.UserRole
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

func (r *StatsRepository) queryCounts(ctx context.Context, q string, limit int) ([]VariantCount, error) {
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []VariantCount
	for rows.Next() {
		var vc VariantCount
		if err := rows.Scan(&vc.VariantID, &vc.ProductName, &vc.Total); err != nil {
			return nil, err
		}
		counts = append(counts, vc)
	}
	return counts, rows.Err()
}
